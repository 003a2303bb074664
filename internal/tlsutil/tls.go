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

package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

type configOptions struct {
	insecureSkipVerify        bool
	certPEMBlock, keyPEMBlock []byte
	caPEMBlock                []byte
}

// Option configures the client TLS configuration built by NewClientConfig.
type Option func(*configOptions) error

func WithInsecureSkipVerify(insecureSkipVerify bool) Option {
	return func(o *configOptions) error {
		o.insecureSkipVerify = insecureSkipVerify
		return nil
	}
}

// WithCertKeyPairFiles loads a client certificate. Both paths empty is a no-op.
func WithCertKeyPairFiles(certFile, keyFile string) Option {
	return func(o *configOptions) error {
		if certFile == "" && keyFile == "" {
			return nil
		}
		cert, err := os.ReadFile(certFile)
		if err != nil {
			return errors.Wrapf(err, "unable to read cert file %q", certFile)
		}
		key, err := os.ReadFile(keyFile)
		if err != nil {
			return errors.Wrapf(err, "unable to read key file %q", keyFile)
		}
		o.certPEMBlock, o.keyPEMBlock = cert, key
		return nil
	}
}

// WithCAFile adds the certificates in caFile to the trusted roots.
func WithCAFile(caFile string) Option {
	return func(o *configOptions) error {
		if caFile == "" {
			return nil
		}
		ca, err := os.ReadFile(caFile)
		if err != nil {
			return errors.Wrapf(err, "can't read CA file %q", caFile)
		}
		o.caPEMBlock = ca
		return nil
	}
}

// NewClientConfig builds a client tls.Config. Every failing option is reported.
func NewClientConfig(opts ...Option) (*tls.Config, error) {
	o := configOptions{}

	var result *multierror.Error
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		InsecureSkipVerify: o.insecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}

	if len(o.certPEMBlock) > 0 && len(o.keyPEMBlock) > 0 {
		cert, err := tls.X509KeyPair(o.certPEMBlock, o.keyPEMBlock)
		if err != nil {
			return nil, errors.Wrap(err, "unable to load cert from key pair")
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if len(o.caPEMBlock) > 0 {
		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(o.caPEMBlock) {
			return nil, errors.New("failed to append certificates from pem block")
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}

// NewTransport returns a proxy-aware transport using cfg.
func NewTransport(cfg *tls.Config) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.TLSClientConfig = cfg
	return t
}
