/*
Copyright The Artifact Wagon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*Package cli describes the operating environment for the artifact-wagon CLI.

Settings are read from ARTIFACT_WAGON_* environment variables and may be
overridden by command line flags.
*/
package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repository"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/wagonpath"
)

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	// Repository is the locator, or the name of an entry in RepositoryConfig.
	Repository string
	// Host is the remote host artifacts are transferred with.
	Host string
	// AccessToken, when set, is used instead of the application default credentials.
	AccessToken string
	// Timeout bounds each request; zero means no limit.
	Timeout time.Duration
	// Debug indicates whether or not the wagon is running in Debug mode.
	Debug bool
	// RepositoryConfig is the path to the repositories file.
	RepositoryConfig string
	// MetricsFile, when set, receives transfer metrics in the Prometheus text format.
	MetricsFile string
}

func New() *EnvSettings {
	env := &EnvSettings{
		Repository:       os.Getenv("ARTIFACT_WAGON_REPOSITORY"),
		Host:             envOr("ARTIFACT_WAGON_HOST", repository.DefaultHost),
		AccessToken:      os.Getenv("ARTIFACT_WAGON_ACCESS_TOKEN"),
		RepositoryConfig: envOr("ARTIFACT_WAGON_REPOSITORY_CONFIG", wagonpath.RepositoryFile()),
		MetricsFile:      os.Getenv("ARTIFACT_WAGON_METRICS_FILE"),
	}
	env.Debug, _ = strconv.ParseBool(os.Getenv("ARTIFACT_WAGON_DEBUG"))
	env.Timeout, _ = time.ParseDuration(os.Getenv("ARTIFACT_WAGON_TIMEOUT"))
	return env
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&s.Repository, "repository", "r", s.Repository, "repository locator or name from the repositories file")
	fs.StringVar(&s.Host, "host", s.Host, "remote host to transfer artifacts with")
	fs.StringVar(&s.AccessToken, "access-token", s.AccessToken, "OAuth2 access token to use instead of application default credentials")
	fs.DurationVar(&s.Timeout, "timeout", s.Timeout, "time to wait for each request, 0 for no limit")
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
	fs.StringVar(&s.RepositoryConfig, "repository-config", s.RepositoryConfig, "path to the file containing repository names and locators")
	fs.StringVar(&s.MetricsFile, "metrics-file", s.MetricsFile, "write transfer metrics to this file in Prometheus text format")
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

// EnvVars returns the effective settings as environment variables.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		"ARTIFACT_WAGON_BIN":               os.Args[0],
		"ARTIFACT_WAGON_CONFIG_HOME":       wagonpath.ConfigPath(""),
		"ARTIFACT_WAGON_REPOSITORY":        s.Repository,
		"ARTIFACT_WAGON_HOST":              s.Host,
		"ARTIFACT_WAGON_TIMEOUT":           s.Timeout.String(),
		"ARTIFACT_WAGON_DEBUG":             fmt.Sprint(s.Debug),
		"ARTIFACT_WAGON_REPOSITORY_CONFIG": s.RepositoryConfig,
		"ARTIFACT_WAGON_METRICS_FILE":      s.MetricsFile,
	}
}
