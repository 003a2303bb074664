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

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yihanzhen/artifact-registry-maven-tools/cmd/artifact-wagon/require"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repo"
)

type repoRemoveOptions struct {
	names    []string
	repoFile string
}

func newRepoRemoveCmd(out io.Writer) *cobra.Command {
	o := &repoRemoveOptions{}
	cmd := &cobra.Command{
		Use:     "remove [NAME...]",
		Aliases: []string{"rm"},
		Short:   "remove one or more named repositories",
		Args:    require.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.repoFile = settings.RepositoryConfig
			o.names = args
			return o.run(out)
		},
	}
	return cmd
}

func (o *repoRemoveOptions) run(out io.Writer) error {
	err := repo.Modify(o.repoFile, func(f *repo.File) error {
		for _, name := range o.names {
			if !f.Remove(name) {
				return errors.Errorf("no repo named %q found", name)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, name := range o.names {
		fmt.Fprintf(out, "%q has been removed from your repositories\n", name)
	}
	return nil
}
