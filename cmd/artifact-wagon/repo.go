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

	"github.com/yihanzhen/artifact-registry-maven-tools/cmd/artifact-wagon/require"
)

var repoHelm = `
This command consists of multiple subcommands to manage named repositories.

A named repository stores a locator together with the host and TLS settings
used to reach it, so that '--repository NAME' can be used in place of the
full locator.
`

func newRepoCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo add|remove|list [ARGS]",
		Short: "add, list and remove named repositories",
		Long:  repoHelm,
		Args:  require.NoArgs,
	}

	cmd.AddCommand(newRepoAddCmd(out))
	cmd.AddCommand(newRepoListCmd(out))
	cmd.AddCommand(newRepoRemoveCmd(out))

	return cmd
}
