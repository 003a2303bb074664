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
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yihanzhen/artifact-registry-maven-tools/cmd/artifact-wagon/require"
)

const putDesc = `
Upload a file to the repository.

ARTIFACT is the path the file is stored under inside the repository. Use '-'
as SOURCE to upload standard input; its length is not known up front so the
request body is sent chunked.

	$ artifact-wagon put -r buildartifacts://projects/p/repositories/r target/lib-1.0.jar com/example/lib/1.0/lib-1.0.jar
`

type putOptions struct {
	tlsOptions
	source   string
	artifact string
}

func newPutCmd(out io.Writer) *cobra.Command {
	o := &putOptions{}

	cmd := &cobra.Command{
		Use:     "put [SOURCE] [ARTIFACT]",
		Short:   "upload a file to the repository",
		Long:    putDesc,
		Aliases: []string{"deploy"},
		Args:    require.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.source, o.artifact = args[0], args[1]
			return o.run(out, cmd.InOrStdin())
		},
	}

	o.tlsOptions.addFlags(cmd.Flags())
	return cmd
}

func (o *putOptions) run(out io.Writer, in io.Reader) (err error) {
	s, err := connect(out, &o.tlsOptions)
	if err != nil {
		return err
	}
	defer func() { err = s.close(err) }()

	if o.source == "-" {
		return s.Put(in, o.artifact, -1, time.Now())
	}
	if fi, statErr := os.Stat(o.source); statErr == nil && fi.IsDir() {
		return errors.Errorf("%s is a directory", o.source)
	}
	return s.PutFile(o.source, o.artifact)
}
