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

package main // import "github.com/yihanzhen/artifact-registry-maven-tools/cmd/artifact-wagon"

import (
	"os"

	"github.com/yihanzhen/artifact-registry-maven-tools/internal/logging"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/cli"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/transfer"
)

var (
	settings = cli.New()
	logger   = logging.NewLogger(os.Stderr, false)
)

// exit codes let calling build tools tell a missing artifact from a denied
// or failed transfer without parsing messages.
const (
	exitFailure      = 1
	exitNotFound     = 2
	exitUnauthorized = 3
)

func main() {
	cmd := newRootCmd(os.Stdout, os.Args[1:])
	if err := cmd.Execute(); err != nil {
		logger.Debugf("%+v", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case transfer.IsNotFound(err):
		return exitNotFound
	case transfer.IsAuthorization(err):
		return exitUnauthorized
	default:
		return exitFailure
	}
}
