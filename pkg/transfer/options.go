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

package transfer

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/auth"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repository"
)

// DefaultBufferSize is the size of the buffer used to move artifact bytes.
const DefaultBufferSize = 32 * 1024

// options are the parameters a Wagon is constructed with.
type options struct {
	host                  string
	client                *http.Client
	transport             http.RoundTripper
	timeout               time.Duration
	certFile              string
	keyFile               string
	caFile                string
	insecureSkipVerifyTLS bool
	userAgent             string
	finder                auth.Finder
	log                   logrus.FieldLogger
	listeners             Listeners
	bufferSize            int
}

// Option allows overriding the defaults used by a Wagon.
type Option func(*options)

// WithHost sets the remote host. Requests are always made over https.
func WithHost(host string) Option {
	return func(opts *options) {
		opts.host = host
	}
}

// WithHTTPClient supplies the client used for all requests. It takes
// precedence over WithTransport, WithTimeout and the TLS options.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *options) {
		opts.client = client
	}
}

// WithTransport sets the round tripper requests are sent through.
func WithTransport(transport http.RoundTripper) Option {
	return func(opts *options) {
		opts.transport = transport
	}
}

// WithTimeout bounds each request, including reading its body. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *options) {
		opts.timeout = timeout
	}
}

// WithTLSClientConfig sets the client certificate pair and the CA bundle.
func WithTLSClientConfig(certFile, keyFile, caFile string) Option {
	return func(opts *options) {
		opts.certFile = certFile
		opts.keyFile = keyFile
		opts.caFile = caFile
	}
}

// WithInsecureSkipVerifyTLS determines if a TLS Certificate will be checked
func WithInsecureSkipVerifyTLS(insecureSkipVerifyTLS bool) Option {
	return func(opts *options) {
		opts.insecureSkipVerifyTLS = insecureSkipVerifyTLS
	}
}

// WithUserAgent sets the request's User-Agent header to use the provided agent name.
func WithUserAgent(userAgent string) Option {
	return func(opts *options) {
		opts.userAgent = userAgent
	}
}

// WithCredentialsFinder replaces the application default credentials lookup.
func WithCredentialsFinder(finder auth.Finder) Option {
	return func(opts *options) {
		opts.finder = finder
	}
}

// WithSigner uses s for every request instead of looking up credentials.
func WithSigner(s auth.Signer) Option {
	return WithCredentialsFinder(auth.Static(s))
}

// WithLogger sets the logger requests and credential lookups are reported to.
// It defaults to the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(opts *options) {
		opts.log = log
	}
}

// WithListener registers a listener for transfer events. It may be given
// more than once.
func WithListener(l Listener) Option {
	return func(opts *options) {
		opts.listeners = append(opts.listeners, l)
	}
}

// WithBufferSize sets the size of the buffer artifact bytes are copied
// through. Values below one keep DefaultBufferSize.
func WithBufferSize(size int) Option {
	return func(opts *options) {
		if size > 0 {
			opts.bufferSize = size
		}
	}
}

func defaultOptions() options {
	return options{
		host:       repository.DefaultHost,
		finder:     auth.ApplicationDefault(),
		log:        logrus.StandardLogger(),
		bufferSize: DefaultBufferSize,
	}
}
