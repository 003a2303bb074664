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

/*
Package repository resolves repository locators into the project and repository
pair that identifies a remote artifact repository.

A locator has exactly one accepted shape:

	<scheme>://projects/<project_id>/repositories/<repository_id>

The scheme is not interpreted. Everything else is matched structurally: no
normalization, case folding or percent-decoding takes place.
*/
package repository

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// DefaultHost is the remote host artifacts are transferred to and from.
const DefaultHost = "maven.pkg.dev"

const (
	projectsHost       = "projects"
	repositoriesMarker = "repositories"
)

// InvalidLocatorMessage is the message returned for every malformed locator.
const InvalidLocatorMessage = "the locator must be formatted as `<scheme>://projects/<project_id>/repositories/<repository_id>`"

// ConfigError indicates that a locator could not be resolved.
type ConfigError struct {
	Locator string
	Err     error
}

func (e *ConfigError) Error() string {
	return InvalidLocatorMessage
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Identity is the project and repository pair a locator resolves to.
type Identity struct {
	ProjectID    string
	RepositoryID string
}

// Parse resolves a locator into an Identity.
func Parse(locator string) (Identity, error) {
	invalid := func(reason string) (Identity, error) {
		return Identity{}, &ConfigError{Locator: locator, Err: errors.New(reason)}
	}

	u, err := url.Parse(locator)
	if err != nil {
		return Identity{}, &ConfigError{Locator: locator, Err: err}
	}
	if u.Scheme == "" {
		return invalid("missing scheme")
	}
	if u.Host != projectsHost {
		return invalid("host must be " + projectsHost)
	}
	if u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return invalid("unexpected query, fragment or user info")
	}

	parts := trimTrailingEmpty(strings.Split(u.EscapedPath(), "/"))
	if len(parts) != 4 {
		return invalid("wrong number of path segments")
	}
	if parts[0] != "" || parts[2] != repositoriesMarker {
		return invalid("path must be /<project_id>/repositories/<repository_id>")
	}
	if parts[1] == "" || parts[3] == "" {
		return invalid("empty project or repository id")
	}
	return Identity{ProjectID: parts[1], RepositoryID: parts[3]}, nil
}

// trimTrailingEmpty drops empty trailing segments so a locator ending in a
// slash resolves the same as one without.
func trimTrailingEmpty(parts []string) []string {
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return parts[:n]
}

// Segments returns the URL path segments addressing artifactPath.
func (id Identity) Segments(artifactPath string) []string {
	segments := []string{id.ProjectID, id.RepositoryID}
	return append(segments, strings.Split(artifactPath, "/")...)
}

// URL builds the absolute https URL for artifactPath on host.
func (id Identity) URL(host, artifactPath string) *url.URL {
	return &url.URL{
		Scheme: "https",
		Host:   host,
		Path:   "/" + strings.Join(id.Segments(artifactPath), "/"),
	}
}

func (id Identity) String() string {
	return "projects/" + id.ProjectID + "/repositories/" + id.RepositoryID
}
