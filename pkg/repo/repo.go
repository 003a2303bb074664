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

package repo // import "github.com/yihanzhen/artifact-registry-maven-tools/pkg/repo"

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/yihanzhen/artifact-registry-maven-tools/internal/fileutil"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repository"
)

// APIVersionV1 is the API version of the repositories file.
const APIVersionV1 = "v1"

// Entry is one named repository in the repositories file.
type Entry struct {
	Name string `json:"name"`
	// URL is the repository locator, projects/<id>/repositories/<id> behind any scheme.
	URL                   string `json:"url"`
	Host                  string `json:"host,omitempty"`
	CertFile              string `json:"certFile,omitempty"`
	KeyFile               string `json:"keyFile,omitempty"`
	CAFile                string `json:"caFile,omitempty"`
	InsecureSkipTLSVerify bool   `json:"insecure_skip_tls_verify,omitempty"`
}

// Validate checks that the entry has a name and a well formed locator.
func (e *Entry) Validate() error {
	if e.Name == "" {
		return errors.New("repository name must not be empty")
	}
	if strings.Contains(e.Name, "/") {
		return errors.Errorf("repository name (%s) contains '/', please specify a different name without '/'", e.Name)
	}
	if _, err := repository.Parse(e.URL); err != nil {
		return errors.Wrapf(err, "repository %q", e.Name)
	}
	return nil
}

// File represents the repositories.yaml file
type File struct {
	APIVersion   string    `json:"apiVersion"`
	Generated    time.Time `json:"generated"`
	Repositories []*Entry  `json:"repositories"`
}

// NewFile generates an empty repositories file.
//
// Generated and APIVersion are automatically set.
func NewFile() *File {
	return &File{
		APIVersion:   APIVersionV1,
		Generated:    time.Now(),
		Repositories: []*Entry{},
	}
}

// LoadFile takes a file at the given path and returns a File object.
// A missing file yields an empty File.
func LoadFile(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewFile(), nil
		}
		return nil, errors.Wrapf(err, "couldn't load repositories file (%s)", path)
	}

	r := NewFile()
	if err := yaml.Unmarshal(b, r); err != nil {
		return nil, errors.Wrapf(err, "couldn't parse repositories file (%s)", path)
	}
	if r.APIVersion == "" {
		r.APIVersion = APIVersionV1
	}
	return r, nil
}

// Add adds one or more repo entries to a repo file.
func (r *File) Add(re ...*Entry) {
	r.Repositories = append(r.Repositories, re...)
}

// Update attempts to replace one or more repo entries in a repo file. If an
// entry with the same name doesn't exist in the repo file it will add it.
func (r *File) Update(re ...*Entry) {
	for _, target := range re {
		if !r.replace(target) {
			r.Add(target)
		}
	}
}

func (r *File) replace(target *Entry) bool {
	for j, repo := range r.Repositories {
		if repo.Name == target.Name {
			r.Repositories[j] = target
			return true
		}
	}
	return false
}

// Has returns true if the given name is already a repository name.
func (r *File) Has(name string) bool {
	return r.Get(name) != nil
}

// Get returns the entry with the given name, or nil.
func (r *File) Get(name string) *Entry {
	for _, entry := range r.Repositories {
		if entry.Name == name {
			return entry
		}
	}
	return nil
}

// Remove removes the entry from the list of repositories.
func (r *File) Remove(name string) bool {
	cp := []*Entry{}
	found := false
	for _, rf := range r.Repositories {
		if rf.Name == name {
			found = true
			continue
		}
		cp = append(cp, rf)
	}
	r.Repositories = cp
	return found
}

// WriteFile writes a repositories file to the given path.
func (r *File) WriteFile(path string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(path, bytes.NewReader(data), perm)
}

// Modify loads the repositories file at path, applies fn and writes the
// result back while holding a file lock next to path.
func Modify(path string, fn func(*File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	fileLock := flock.New(lockPath(path))
	lockCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	locked, err := fileLock.TryLockContext(lockCtx, time.Second)
	if err == nil && locked {
		defer fileLock.Unlock()
	}
	if err != nil {
		return errors.Wrapf(err, "unable to lock %s", path)
	}

	f, err := LoadFile(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		return err
	}
	f.Generated = time.Now()
	return f.WriteFile(path, 0o644)
}

func lockPath(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && len(ext) < len(path) {
		return strings.TrimSuffix(path, ext) + ".lock"
	}
	return path + ".lock"
}
