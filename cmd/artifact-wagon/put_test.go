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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/transfer"
)

func TestPutCmd(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)

	src := filepath.Join(t.TempDir(), "lib-1.0.jar")
	require.NoError(t, os.WriteFile(src, []byte("jar bytes"), 0o644))

	runTestCmd(t, []cmdTestCase{{
		name:    "upload file",
		cmd:     "put " + srv.flags() + " " + src + " com/example/lib/1.0/lib-1.0.jar",
		wantOut: []string{"Uploaded to " + testLocator + ": com/example/lib/1.0/lib-1.0.jar (9 B"},
	}, {
		name:      "missing source",
		cmd:       "put " + srv.flags() + " " + filepath.Join(t.TempDir(), "nope.jar") + " com/example/nope.jar",
		wantError: true,
	}, {
		name:      "directory source",
		cmd:       "put " + srv.flags() + " " + t.TempDir() + " com/example/dir.jar",
		wantError: true,
	}})

	got, ok := srv.get("com/example/lib/1.0/lib-1.0.jar")
	require.True(t, ok)
	assert.Equal(t, "jar bytes", got)
	_, ok = srv.get("com/example/nope.jar")
	assert.False(t, ok)
}

func TestPutCmdStdin(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)

	_, out, err := executeCommandStdinC(strings.NewReader("from stdin"), "put "+srv.flags()+" - a/b.txt")
	require.NoError(t, err)
	assertGolden(t, out, "output/put-stdin.txt")

	got, ok := srv.get("a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "from stdin", got)
}

func TestPutCmdForbidden(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)

	_, _, err := executeCommandStdinC(strings.NewReader("x"), "put "+srv.flags()+" - locked/artifact.jar")
	require.Error(t, err)
	assert.True(t, transfer.IsAuthorization(err))
	assert.Equal(t, exitUnauthorized, exitCode(err))
}
