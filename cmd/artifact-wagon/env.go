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
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yihanzhen/artifact-registry-maven-tools/cmd/artifact-wagon/require"
)

var envHelp = `
Env prints out all the environment information in use by artifact-wagon.
`

func newEnvCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env [NAME]",
		Short: "artifact-wagon client environment information",
		Long:  envHelp,
		Args:  require.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return sortedEnvVarKeys(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			envVars := settings.EnvVars()

			if len(args) == 0 {
				for _, k := range sortedEnvVarKeys() {
					fmt.Fprintf(out, "%s=\"%s\"\n", k, envVars[k])
				}
				return nil
			}
			fmt.Fprintf(out, "%s\n", envVars[args[0]])
			return nil
		},
	}
	return cmd
}

func sortedEnvVarKeys() []string {
	envVars := settings.EnvVars()

	keys := make([]string, 0, len(envVars))
	for k := range envVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
