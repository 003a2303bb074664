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

// Package wagonpath builds the paths of the wagon's configuration files.
package wagonpath

import (
	"os"
	"path/filepath"
)

const (
	// ConfigHomeEnvVar overrides the configuration directory.
	ConfigHomeEnvVar = "ARTIFACT_WAGON_CONFIG_HOME"

	// XDGConfigHomeEnvVar is the XDG base directory variable for configuration.
	XDGConfigHomeEnvVar = "XDG_CONFIG_HOME"
)

// lazypath is a lazy-loaded path buffer for the XDG base directory specification.
type lazypath string

// configPath resolves, in order, the wagon specific variable, the XDG
// variable and finally the platform default configuration directory.
func (l lazypath) configPath(elem ...string) string {
	if base := os.Getenv(ConfigHomeEnvVar); base != "" {
		return filepath.Join(base, filepath.Join(elem...))
	}
	base := os.Getenv(XDGConfigHomeEnvVar)
	if base == "" {
		base = configHome()
	}
	return filepath.Join(base, string(l), filepath.Join(elem...))
}

func configHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

const lp = lazypath("artifact-wagon")

// ConfigPath returns the path where the wagon stores configuration.
func ConfigPath(elem ...string) string {
	return lp.configPath(elem...)
}

// RepositoryFile returns the path to the repositories.yaml file.
func RepositoryFile() string {
	return ConfigPath("repositories.yaml")
}
