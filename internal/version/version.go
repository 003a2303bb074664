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

// Package version reports the build of the wagon and the User-Agent it
// presents to the repository.
package version // import "github.com/yihanzhen/artifact-registry-maven-tools/internal/version"

import (
	"runtime"
	"strings"
)

// Both are set with -ldflags "-X" at release time.
var (
	version   = "v0.1.0"
	gitCommit = ""
)

// BuildInfo describes the running wagon.
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	UserAgent string `json:"user_agent"`
	Platform  string `json:"platform"`
}

// GetVersion returns the semver of the build.
func GetVersion() string {
	return version
}

// GetUserAgent returns the User-Agent sent with every artifact request,
// for example "artifact-wagon/0.1.0 (linux/amd64)".
func GetUserAgent() string {
	return "artifact-wagon/" + strings.TrimPrefix(version, "v") + " (" + platform() + ")"
}

// Get returns the build info.
func Get() BuildInfo {
	return BuildInfo{
		Version:   version,
		GitCommit: gitCommit,
		UserAgent: GetUserAgent(),
		Platform:  platform(),
	}
}

func platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}
