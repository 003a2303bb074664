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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repository"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/transfer"
)

func TestGetCmd(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)
	srv.put("com/example/lib/1.0/lib-1.0.pom", "<project/>")

	dir := t.TempDir()
	dst := filepath.Join(dir, "lib.pom")

	runTestCmd(t, []cmdTestCase{{
		name:    "download to file",
		cmd:     "get " + srv.flags() + " com/example/lib/1.0/lib-1.0.pom " + dst,
		wantOut: []string{"Downloaded from " + testLocator + ": com/example/lib/1.0/lib-1.0.pom (10 B", "Saved " + dst},
	}, {
		name:    "download into directory",
		cmd:     "get " + srv.flags() + " com/example/lib/1.0/lib-1.0.pom " + dir,
		wantOut: []string{"Saved " + filepath.Join(dir, "lib-1.0.pom")},
	}, {
		name:      "missing artifact",
		cmd:       "get " + srv.flags() + " com/example/missing.jar " + filepath.Join(dir, "missing.jar"),
		wantError: true,
	}, {
		name:      "requires two arguments",
		cmd:       "get " + srv.flags() + " com/example/lib/1.0/lib-1.0.pom",
		wantError: true,
	}})

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "<project/>", string(data))
	assert.FileExists(t, filepath.Join(dir, "lib-1.0.pom"))
	assert.NoFileExists(t, filepath.Join(dir, "missing.jar"))
}

func TestGetCmdStdout(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)
	srv.put("a/b.txt", "hello\n")

	_, out, err := executeCommandC("get " + srv.flags() + " a/b.txt -")
	require.NoError(t, err)
	assertGolden(t, out, "output/get-stdout.txt")
}

func TestGetCmdNotFound(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)

	_, _, err := executeCommandC("get " + srv.flags() + " a/b.txt -")
	require.Error(t, err)
	assert.True(t, transfer.IsNotFound(err))
	assert.Equal(t, exitNotFound, exitCode(err))
}

func TestGetCmdAccessToken(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)
	srv.put("a/b.txt", "hello")

	_, _, err := executeCommandC("get " + srv.flags() + " --access-token tok a/b.txt -")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer tok"}, srv.authHeaders())
}

func TestGetCmdUnsignedWithoutCredentials(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)
	srv.put("a/b.txt", "hello")

	_, _, err := executeCommandC("get " + srv.flags() + " a/b.txt -")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, srv.authHeaders())
}

func TestGetCmdUntrustedServer(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)
	srv.put("a/b.txt", "hello")

	cmd := "get --repository " + testLocator + " --host " + srv.Listener.Addr().String() + " a/b.txt -"
	_, _, err := executeCommandC(cmd)
	require.Error(t, err)
	assert.True(t, transfer.IsTransferFailed(err))

	_, out, err := executeCommandC(cmd + " --insecure-skip-tls-verify")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestGetCmdMetrics(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)
	srv.put("a/b.txt", "hello")
	metricsFile := filepath.Join(t.TempDir(), "wagon.prom")

	_, _, err := executeCommandC("get " + srv.flags() + " --metrics-file " + metricsFile + " a/b.txt -")
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `request="get",success="true"} 1`)
	assert.Contains(t, string(data), `artifact_wagon_transferred_bytes_total{request="get"} 5`)
}

func TestGetCmdBadLocator(t *testing.T) {
	testEnv(t)

	_, _, err := executeCommandC("get --repository gs://bucket/path a/b.txt -")
	require.Error(t, err)
	assert.True(t, transfer.IsConfiguration(err))
	assert.Contains(t, err.Error(), repository.InvalidLocatorMessage)
}

func TestGetCmdNoRepository(t *testing.T) {
	testEnv(t)

	_, _, err := executeCommandC("get a/b.txt -")
	assert.ErrorContains(t, err, "no repository given")
}

func TestGetCmdDebug(t *testing.T) {
	testEnv(t)
	srv := newArtifactServer(t)
	srv.put("a/b.txt", "hello")

	_, out, err := executeCommandC("get " + srv.flags() + " --debug a/b.txt -")
	require.NoError(t, err)
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, "no credentials found")
}
