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
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yihanzhen/artifact-registry-maven-tools/cmd/artifact-wagon/require"
)

const getDesc = `
Download an artifact from the repository.

The artifact is addressed by its path inside the repository, for example
com/example/lib/1.0/lib-1.0.jar. If DESTINATION is an existing directory the
artifact is saved there under its own file name. Use '-' as DESTINATION to
write the artifact to standard output.

	$ artifact-wagon get -r buildartifacts://projects/p/repositories/r com/example/lib/1.0/lib-1.0.pom .
`

type getOptions struct {
	tlsOptions
	artifact    string
	destination string
}

func newGetCmd(out io.Writer) *cobra.Command {
	o := &getOptions{}

	cmd := &cobra.Command{
		Use:     "get [ARTIFACT] [DESTINATION]",
		Short:   "download an artifact from the repository",
		Long:    getDesc,
		Aliases: []string{"fetch"},
		Args:    require.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.artifact, o.destination = args[0], args[1]
			if o.destination == "-" {
				// status lines must not end up in the artifact
				return o.run(out, cmd.ErrOrStderr())
			}
			return o.run(out, out)
		},
	}

	o.tlsOptions.addFlags(cmd.Flags())
	return cmd
}

func (o *getOptions) run(out, status io.Writer) (err error) {
	s, err := connect(status, &o.tlsOptions)
	if err != nil {
		return err
	}
	defer func() { err = s.close(err) }()

	if o.destination == "-" {
		return s.Get(o.artifact, out)
	}

	dst := o.destination
	if fi, statErr := os.Stat(dst); statErr == nil && fi.IsDir() {
		dst = filepath.Join(dst, path.Base(o.artifact))
	}
	if err := s.GetFile(o.artifact, dst); err != nil {
		return err
	}
	fmt.Fprintf(status, "Saved %s\n", dst)
	return nil
}
