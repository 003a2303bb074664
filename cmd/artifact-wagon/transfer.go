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
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/yihanzhen/artifact-registry-maven-tools/internal/metrics"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/auth"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repo"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repository"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/transfer"
)

// tlsOptions are the per command TLS flags. Values set here take precedence
// over the ones stored with a named repository.
type tlsOptions struct {
	certFile              string
	keyFile               string
	caFile                string
	insecureSkipTLSverify bool
}

func (o *tlsOptions) addFlags(f *pflag.FlagSet) {
	f.StringVar(&o.certFile, "cert-file", "", "identify HTTPS client using this SSL certificate file")
	f.StringVar(&o.keyFile, "key-file", "", "identify HTTPS client using this SSL key file")
	f.StringVar(&o.caFile, "ca-file", "", "verify certificates of HTTPS-enabled servers using this CA bundle")
	f.BoolVar(&o.insecureSkipTLSverify, "insecure-skip-tls-verify", false, "skip tls certificate checks for the transfer")
}

// session is a connected wagon plus the bookkeeping that has to happen once
// the command is done with it.
type session struct {
	*transfer.Wagon
	name     string
	recorder *metrics.Recorder
}

// resolveRepository turns settings.Repository into a locator. A value with a
// scheme is used as is; anything else is looked up by name.
func resolveRepository(name string) (string, *repo.Entry, error) {
	if name == "" {
		return "", nil, errors.New("no repository given, use --repository or $ARTIFACT_WAGON_REPOSITORY")
	}
	if strings.Contains(name, "://") {
		return name, nil, nil
	}
	f, err := repo.LoadFile(settings.RepositoryConfig)
	if err != nil {
		return "", nil, err
	}
	entry := f.Get(name)
	if entry == nil {
		return "", nil, errors.Errorf("no repository named %q found in %s", name, settings.RepositoryConfig)
	}
	return entry.URL, entry, nil
}

// resolveHost prefers an explicitly configured host over the one stored with
// the repository entry.
func resolveHost(entry *repo.Entry) string {
	if entry != nil && entry.Host != "" && settings.Host == repository.DefaultHost {
		return entry.Host
	}
	return settings.Host
}

// connect builds a wagon from the environment settings and connects it.
func connect(out io.Writer, tlsOpts *tlsOptions) (*session, error) {
	locator, entry, err := resolveRepository(settings.Repository)
	if err != nil {
		return nil, err
	}

	host := resolveHost(entry)
	certFile, keyFile, caFile := tlsOpts.certFile, tlsOpts.keyFile, tlsOpts.caFile
	insecure := tlsOpts.insecureSkipTLSverify
	if entry != nil {
		if certFile == "" && keyFile == "" {
			certFile, keyFile = entry.CertFile, entry.KeyFile
		}
		if caFile == "" {
			caFile = entry.CAFile
		}
		insecure = insecure || entry.InsecureSkipTLSVerify
	}

	s := &session{name: settings.Repository}
	opts := []transfer.Option{
		transfer.WithHost(host),
		transfer.WithTimeout(settings.Timeout),
		transfer.WithTLSClientConfig(certFile, keyFile, caFile),
		transfer.WithInsecureSkipVerifyTLS(insecure),
		transfer.WithLogger(logger),
		transfer.WithListener(&consoleListener{out: out, repository: s.name, host: host}),
	}
	if settings.AccessToken != "" {
		opts = append(opts, transfer.WithSigner(auth.NewStaticSigner(settings.AccessToken)))
	}
	if settings.MetricsFile != "" {
		s.recorder = metrics.NewRecorder()
		opts = append(opts, transfer.WithListener(s.recorder))
	}

	s.Wagon = transfer.New(locator, opts...)
	if err := s.Connect(); err != nil {
		return nil, err
	}
	if !s.HasCredentials() {
		logger.Debugf("no credentials found, see %s", auth.CredentialsHelpURL)
	}
	return s, nil
}

// close disconnects and flushes metrics. The transfer error, if any, wins
// over errors raised while closing.
func (s *session) close(err error) error {
	if derr := s.Disconnect(); derr != nil && err == nil {
		err = derr
	}
	if s.recorder != nil {
		if merr := s.recorder.WriteTextfile(settings.MetricsFile); merr != nil {
			if err == nil {
				return errors.Wrap(merr, "writing metrics")
			}
			logger.WithError(merr).Warn("unable to write metrics")
		}
	}
	return err
}

// consoleListener reports transfers the way build tools print them.
type consoleListener struct {
	out        io.Writer
	repository string
	host       string
	started    time.Time
}

func (l *consoleListener) verb(e transfer.Event, done bool) string {
	switch {
	case e.Request == transfer.RequestPut && done:
		return "Uploaded to"
	case e.Request == transfer.RequestPut:
		return "Uploading to"
	case done:
		return "Downloaded from"
	default:
		return "Downloading from"
	}
}

func (l *consoleListener) TransferInitiated(e transfer.Event) {
	l.started = time.Now()
	logger.WithField("resource", e.Resource.Name).Debugf("%s %s", l.verb(e, false), l.repository)
}

func (l *consoleListener) TransferStarted(transfer.Event) {}

func (l *consoleListener) TransferCompleted(e transfer.Event) {
	elapsed := time.Since(l.started).Round(time.Millisecond)
	if e.Resource.ContentLength >= 0 {
		fmt.Fprintf(l.out, "%s %s: %s (%d B in %s)\n", l.verb(e, true), l.repository, e.Resource.Name, e.Resource.ContentLength, elapsed)
		return
	}
	fmt.Fprintf(l.out, "%s %s: %s (%s)\n", l.verb(e, true), l.repository, e.Resource.Name, elapsed)
}

func (l *consoleListener) TransferError(e transfer.Event) {
	logger.WithFields(logrus.Fields{
		"resource": e.Resource.Name,
		"host":     l.host,
	}).WithError(e.Err).Debug("transfer failed")
}
