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

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/yihanzhen/artifact-registry-maven-tools/cmd/artifact-wagon/require"
	"github.com/yihanzhen/artifact-registry-maven-tools/internal/version"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/cli/output"
)

const versionDesc = `
Show the version for artifact-wagon.

The table lists the release version, the commit it was built from when
known, the User-Agent header sent with every artifact request and the
platform the binary was built for. Use -o json or -o yaml for a
machine-readable form.

The --short flag prints only the version and --user-agent prints only the
User-Agent header.
`

type versionOptions struct {
	short     bool
	userAgent bool
	outfmt    output.Format
}

func newVersionCmd(out io.Writer) *cobra.Command {
	o := &versionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the client version information",
		Long:  versionDesc,
		Args:  require.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(out)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&o.short, "short", false, "print the version number")
	f.BoolVar(&o.userAgent, "user-agent", false, "print the User-Agent header")
	bindOutputFlag(cmd, &o.outfmt)

	return cmd
}

func (o *versionOptions) run(out io.Writer) error {
	switch {
	case o.userAgent:
		fmt.Fprintln(out, version.GetUserAgent())
		return nil
	case o.short:
		fmt.Fprintln(out, version.GetVersion())
		return nil
	}
	return o.outfmt.Write(out, versionWriter(version.Get()))
}

type versionWriter version.BuildInfo

func (v versionWriter) WriteTable(out io.Writer) error {
	table := uitable.New()
	table.AddRow("VERSION:", v.Version)
	if v.GitCommit != "" {
		table.AddRow("GIT COMMIT:", v.GitCommit)
	}
	table.AddRow("USER AGENT:", v.UserAgent)
	table.AddRow("PLATFORM:", v.Platform)
	return output.EncodeTable(out, table)
}

func (v versionWriter) WriteJSON(out io.Writer) error {
	return output.EncodeJSON(out, version.BuildInfo(v))
}

func (v versionWriter) WriteYAML(out io.Writer) error {
	return output.EncodeYAML(out, version.BuildInfo(v))
}
