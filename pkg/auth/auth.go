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
Package auth provides the signing capability used to attach credentials to
outgoing artifact requests.
*/
package auth

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// CloudPlatformScope is requested when looking up application default credentials.
const CloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// CredentialsHelpURL documents how application default credentials are provisioned.
const CredentialsHelpURL = "https://developers.google.com/accounts/docs/application-default-credentials"

// Signer decorates an outgoing request with proof of identity.
type Signer interface {
	Sign(req *http.Request) error
}

// Finder looks up ambient credentials and returns a Signer for them.
type Finder func(ctx context.Context) (Signer, error)

// TokenSigner signs requests with a bearer token from an oauth2.TokenSource.
type TokenSigner struct {
	source oauth2.TokenSource
}

// NewTokenSigner returns a Signer backed by ts. Tokens are cached and refreshed
// as they expire.
func NewTokenSigner(ts oauth2.TokenSource) *TokenSigner {
	return &TokenSigner{source: oauth2.ReuseTokenSource(nil, ts)}
}

// NewStaticSigner returns a Signer that always presents accessToken.
func NewStaticSigner(accessToken string) *TokenSigner {
	return NewTokenSigner(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))
}

// Sign implements Signer.
func (s *TokenSigner) Sign(req *http.Request) error {
	token, err := s.source.Token()
	if err != nil {
		return errors.Wrap(err, "unable to obtain access token")
	}
	token.SetAuthHeader(req)
	return nil
}

// ApplicationDefault returns a Finder for the application default credentials.
// With no scopes, CloudPlatformScope is requested.
func ApplicationDefault(scopes ...string) Finder {
	if len(scopes) == 0 {
		scopes = []string{CloudPlatformScope}
	}
	return func(ctx context.Context) (Signer, error) {
		creds, err := google.FindDefaultCredentials(ctx, scopes...)
		if err != nil {
			return nil, err
		}
		return NewTokenSigner(creds.TokenSource), nil
	}
}

// Static returns a Finder that always yields s.
func Static(s Signer) Finder {
	return func(context.Context) (Signer, error) {
		return s, nil
	}
}

// None returns a Finder that never finds credentials.
func None() Finder {
	return func(context.Context) (Signer, error) {
		return nil, errors.New("no credentials configured")
	}
}
