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
	"bytes"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/cli"
)

const testLocator = "artifactregistry://projects/my-project/repositories/my-repo"

// cmdTestCase describes a command line and what it should produce.
type cmdTestCase struct {
	name      string
	cmd       string
	wantError bool
	// golden is the file under testdata the output must match.
	golden string
	// wantOut lists substrings the combined output must contain.
	wantOut []string
}

func runTestCmd(t *testing.T, tests []cmdTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Logf("running cmd: %s", tt.cmd)
			_, out, err := executeCommandC(tt.cmd)
			if tt.wantError && err == nil {
				t.Errorf("expected error, got success with the following output:\n%s", out)
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no error, got: '%v'", err)
			}
			if tt.golden != "" {
				assertGolden(t, out, tt.golden)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func executeCommandC(cmd string) (*cobra.Command, string, error) {
	return executeCommandStdinC(nil, cmd)
}

func executeCommandStdinC(in io.Reader, cmd string) (*cobra.Command, string, error) {
	args, err := shellwords.Parse(cmd)
	if err != nil {
		return nil, "", err
	}

	settings = cli.New()
	buf := new(bytes.Buffer)

	root := newRootCmd(buf, args)
	root.SetOut(buf)
	root.SetErr(buf)
	if in != nil {
		root.SetIn(in)
	}

	c, err := root.ExecuteC()
	return c, buf.String(), err
}

// testEnv isolates a test from the caller's configuration and credentials.
func testEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ARTIFACT_WAGON_CONFIG_HOME", dir)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", filepath.Join(dir, "missing.json"))
	for _, name := range []string{
		"ARTIFACT_WAGON_REPOSITORY",
		"ARTIFACT_WAGON_HOST",
		"ARTIFACT_WAGON_ACCESS_TOKEN",
		"ARTIFACT_WAGON_TIMEOUT",
		"ARTIFACT_WAGON_DEBUG",
		"ARTIFACT_WAGON_REPOSITORY_CONFIG",
		"ARTIFACT_WAGON_METRICS_FILE",
	} {
		t.Setenv(name, "")
	}
}

// artifactServer is an in-memory repository served over TLS under
// /my-project/my-repo/.
type artifactServer struct {
	*httptest.Server
	caFile string

	mu        sync.Mutex
	artifacts map[string][]byte
	auth      []string
}

func newArtifactServer(t *testing.T) *artifactServer {
	t.Helper()
	s := &artifactServer{artifacts: map[string][]byte{}}
	s.Server = httptest.NewTLSServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)

	s.caFile = filepath.Join(t.TempDir(), "ca.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: s.Certificate().Raw})
	if err := os.WriteFile(s.caFile, pemBytes, 0o600); err != nil {
		t.Fatal(err)
	}
	return s
}

func (s *artifactServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = append(s.auth, r.Header.Get("Authorization"))

	name, ok := strings.CutPrefix(r.URL.Path, "/my-project/my-repo/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		data, ok := s.artifacts[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	case http.MethodPut:
		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if name == "locked/artifact.jar" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		s.artifacts[name] = data
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *artifactServer) put(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[name] = []byte(content)
}

func (s *artifactServer) get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.artifacts[name]
	return string(data), ok
}

func (s *artifactServer) authHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.auth...)
}

// flags addresses the server with the given repository.
func (s *artifactServer) flags() string {
	return "--repository " + testLocator + " --host " + s.Listener.Addr().String() + " --ca-file " + s.caFile
}
