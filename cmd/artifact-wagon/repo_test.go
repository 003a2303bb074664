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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repo"
)

func TestRepoAddListRemove(t *testing.T) {
	testEnv(t)
	repoFile := filepath.Join(t.TempDir(), "repositories.yaml")
	t.Setenv("ARTIFACT_WAGON_REPOSITORY_CONFIG", repoFile)

	runTestCmd(t, []cmdTestCase{{
		name:      "list without repositories",
		cmd:       "repo list",
		wantError: true,
	}, {
		name:    "add",
		cmd:     "repo add libs " + testLocator + " --repo-host europe-maven.pkg.dev",
		wantOut: []string{`"libs" has been added to your repositories`},
	}, {
		name:    "add again updates",
		cmd:     "repo add libs " + testLocator + " --repo-host us-maven.pkg.dev",
		wantOut: []string{`"libs" has been added to your repositories`},
	}, {
		name:      "add again without update",
		cmd:       "repo add libs " + testLocator + " --no-update",
		wantError: true,
	}, {
		name:      "add malformed",
		cmd:       "repo add bad gs://bucket",
		wantError: true,
	}, {
		name:    "list",
		cmd:     "repo list",
		wantOut: []string{"NAME", "libs", testLocator, "us-maven.pkg.dev"},
	}, {
		name:   "list json",
		cmd:    "repo list -o json",
		golden: "output/repo-list-json.txt",
	}, {
		name:    "url by name",
		cmd:     "url -r libs a.jar",
		wantOut: []string{"https://us-maven.pkg.dev/my-project/my-repo/a.jar"},
	}, {
		name:    "url by name with explicit host",
		cmd:     "url -r libs --host example.com a.jar",
		wantOut: []string{"https://example.com/my-project/my-repo/a.jar"},
	}, {
		name:    "remove",
		cmd:     "repo remove libs",
		wantOut: []string{`"libs" has been removed from your repositories`},
	}, {
		name:      "remove unknown",
		cmd:       "repo rm libs",
		wantError: true,
	}, {
		name:    "list json when empty",
		cmd:     "repo list -o json",
		wantOut: []string{"[]"},
	}})

	f, err := repo.LoadFile(repoFile)
	require.NoError(t, err)
	assert.Empty(t, f.Repositories)
}

func TestGetCmdNamedRepository(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)
	srv.put("a/b.txt", "named")
	t.Setenv("ARTIFACT_WAGON_REPOSITORY_CONFIG", filepath.Join(t.TempDir(), "repositories.yaml"))

	_, _, err := executeCommandC("repo add test " + testLocator +
		" --repo-host " + srv.Listener.Addr().String() + " --ca-file " + srv.caFile)
	require.NoError(t, err)

	_, out, err := executeCommandC("get -r test a/b.txt -")
	require.NoError(t, err)
	assert.Contains(t, out, "named")
}
