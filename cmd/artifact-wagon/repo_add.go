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

type repoAddOptions struct {
	name     string
	url      string
	host     string
	noUpdate bool

	certFile              string
	keyFile               string
	caFile                string
	insecureSkipTLSverify bool

	repoFile string
}

func newRepoAddCmd(out io.Writer) *cobra.Command {
	o := &repoAddOptions{}

	cmd := &cobra.Command{
		Use:   "add [NAME] [LOCATOR]",
		Short: "add a named repository",
		Args:  require.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.name = args[0]
			o.url = args[1]
			o.repoFile = settings.RepositoryConfig
			return o.run(out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.host, "repo-host", "", "remote host for this repository, if not the default")
	f.BoolVar(&o.noUpdate, "no-update", false, "raise error if repo is already registered")
	f.StringVar(&o.certFile, "cert-file", "", "identify HTTPS client using this SSL certificate file")
	f.StringVar(&o.keyFile, "key-file", "", "identify HTTPS client using this SSL key file")
	f.StringVar(&o.caFile, "ca-file", "", "verify certificates of HTTPS-enabled servers using this CA bundle")
	f.BoolVar(&o.insecureSkipTLSverify, "insecure-skip-tls-verify", false, "skip tls certificate checks for the repository")

	return cmd
}

func (o *repoAddOptions) run(out io.Writer) error {
	entry := &repo.Entry{
		Name:                  o.name,
		URL:                   o.url,
		Host:                  o.host,
		CertFile:              o.certFile,
		KeyFile:               o.keyFile,
		CAFile:                o.caFile,
		InsecureSkipTLSVerify: o.insecureSkipTLSverify,
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	err := repo.Modify(o.repoFile, func(f *repo.File) error {
		if existing := f.Get(o.name); existing != nil {
			if o.noUpdate {
				return errors.Errorf("repository name (%s) already exists, please specify a different name", o.name)
			}
			if *existing == *entry {
				return nil
			}
		}
		f.Update(entry)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%q has been added to your repositories\n", o.name)
	return nil
}
