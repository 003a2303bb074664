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

package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yihanzhen/artifact-registry-maven-tools/internal/logging"
)

var globalUsage = `Transfer build artifacts to and from a cloud hosted artifact repository.

Repositories are addressed with a locator of the form

	<scheme>://projects/<project_id>/repositories/<repository_id>

or by the name of an entry added with 'artifact-wagon repo add'.

Requests are signed with the application default credentials when they are
available and sent unauthenticated otherwise.

Environment variables:

| Name                               | Description                                              |
|------------------------------------|----------------------------------------------------------|
| $ARTIFACT_WAGON_REPOSITORY         | repository locator or name used when --repository is unset |
| $ARTIFACT_WAGON_HOST               | remote host (default maven.pkg.dev)                      |
| $ARTIFACT_WAGON_ACCESS_TOKEN       | access token used instead of default credentials         |
| $ARTIFACT_WAGON_TIMEOUT            | per request timeout, e.g. 5m                             |
| $ARTIFACT_WAGON_DEBUG              | enable verbose output                                    |
| $ARTIFACT_WAGON_CONFIG_HOME        | configuration directory                                  |
| $ARTIFACT_WAGON_REPOSITORY_CONFIG  | path to the repositories file                            |
| $ARTIFACT_WAGON_METRICS_FILE       | write transfer metrics to this file                      |
`

func newRootCmd(out io.Writer, args []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "artifact-wagon",
		Short:        "Transfer artifacts with a cloud artifact repository.",
		Long:         globalUsage,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger = logging.NewLogger(cmd.ErrOrStderr(), settings.Debug)
		},
	}
	flags := cmd.PersistentFlags()
	settings.AddFlags(flags)

	cmd.SetOut(out)
	cmd.SetArgs(args)

	cmd.AddCommand(
		newGetCmd(out),
		newPutCmd(out),
		newURLCmd(out),
		newRepoCmd(out),
		newEnvCmd(out),
		newVersionCmd(out),
	)
	return cmd
}
