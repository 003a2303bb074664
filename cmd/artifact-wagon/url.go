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

	"github.com/spf13/cobra"

	"github.com/yihanzhen/artifact-registry-maven-tools/cmd/artifact-wagon/require"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/auth"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/transfer"
)

const urlDesc = `
Print the https URL an artifact is transferred with.

No request is made and no credentials are looked up.
`

func newURLCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url [ARTIFACT]",
		Short: "print the URL of an artifact",
		Long:  urlDesc,
		Args:  require.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locator, entry, err := resolveRepository(settings.Repository)
			if err != nil {
				return err
			}
			w := transfer.New(locator,
				transfer.WithHost(resolveHost(entry)),
				transfer.WithCredentialsFinder(auth.None()),
			)
			if err := w.Connect(); err != nil {
				return err
			}
			defer w.Disconnect()

			u, err := w.URL(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(out, u)
			return nil
		},
	}
	return cmd
}
