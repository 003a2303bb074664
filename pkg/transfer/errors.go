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
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/auth"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repository"
)

// Kind classifies a transfer failure. Callers branch on the kind to decide
// whether to retry, prompt for credentials, or treat an artifact as unpublished.
type Kind int

const (
	// KindTransferFailed covers unexpected statuses and I/O failures.
	KindTransferFailed Kind = iota
	// KindAuthorization is returned for 401 and 403 responses.
	KindAuthorization
	// KindResourceNotFound is returned for 404 responses.
	KindResourceNotFound
	// KindConfiguration is returned for a malformed repository locator.
	KindConfiguration
	// KindConnection is returned when a connection could not be opened.
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindResourceNotFound:
		return "resource not found"
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	default:
		return "transfer failed"
	}
}

const (
	msgPermissionDenied = "permission denied on remote repository (or it may not exist)."
	msgNoCredentials    = "the request had no credentials because the application default credentials are not available. See " + auth.CredentialsHelpURL + " for more information."
	msgNotFound         = "the remote resource does not exist."
	msgRemoteError      = "received an error from the remote server."
	msgSendFailed       = "failed to send request to remote server."
	msgUploadFailed     = "error uploading file."
	msgDownloadFailed   = "error writing downloaded file."
)

// Error is the error type returned by every Wagon operation.
type Error struct {
	Kind Kind
	// Message is the human readable description of the failure.
	Message string
	// StatusCode is the HTTP status received, or zero if no response arrived.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil || e.Err.Error() == e.Message {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", strings.TrimSuffix(e.Message, "."), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MapStatus classifies an HTTP status code.
func MapStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindResourceNotFound
	default:
		return KindTransferFailed
	}
}

// StatusError builds the error for a response with an unsuccessful status.
// hadSigner only changes the message of authorization failures.
func StatusError(code int, hadSigner bool, cause error) *Error {
	kind := MapStatus(code)
	var msg string
	switch kind {
	case KindAuthorization:
		var b strings.Builder
		b.WriteString(msgPermissionDenied)
		if !hadSigner {
			b.WriteString(" ")
			b.WriteString(msgNoCredentials)
		}
		msg = b.String()
	case KindResourceNotFound:
		msg = msgNotFound
	default:
		msg = msgRemoteError
	}
	return &Error{Kind: kind, Message: msg, StatusCode: code, Err: cause}
}

// sendError is returned when no response was received at all.
func sendError(cause error) *Error {
	return &Error{Kind: KindTransferFailed, Message: msgSendFailed, Err: cause}
}

func kindOf(err error) (Kind, bool) {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind, true
	}
	return 0, false
}

// IsAuthorization reports whether err is an authorization failure.
func IsAuthorization(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindAuthorization
}

// IsNotFound reports whether err means the remote artifact does not exist.
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindResourceNotFound
}

// IsTransferFailed reports whether err is a generic transfer failure.
func IsTransferFailed(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTransferFailed
}

// IsConfiguration reports whether err stems from a malformed locator. The
// configuration error may sit below a connection error in the chain.
func IsConfiguration(err error) bool {
	var cerr *repository.ConfigError
	if errors.As(err, &cerr) {
		return true
	}
	for err != nil {
		var terr *Error
		if !errors.As(err, &terr) {
			return false
		}
		if terr.Kind == KindConfiguration {
			return true
		}
		err = terr.Err
	}
	return false
}

// configError reports a malformed locator found while connecting.
func configError(cause error) *Error {
	cfg := &Error{Kind: KindConfiguration, Message: cause.Error(), Err: cause}
	return &Error{Kind: KindConnection, Message: cfg.Message, Err: cfg}
}
