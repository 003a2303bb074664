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
Package transfer moves single artifacts to and from a remote artifact
repository over https.

A Wagon is opened with Connect, used for any number of sequential Get and Put
calls, and released with Disconnect. It is not safe for concurrent use.
*/
package transfer

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yihanzhen/artifact-registry-maven-tools/internal/tlsutil"
	"github.com/yihanzhen/artifact-registry-maven-tools/internal/version"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/auth"
	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/repository"
)

// Wagon transfers artifacts for one repository.
type Wagon struct {
	locator string
	opts    options

	identity       repository.Identity
	signer         auth.Signer
	hasCredentials bool
	client         *http.Client
}

// New returns a Wagon for the repository named by locator. No I/O happens
// until Connect is called.
func New(locator string, opts ...Option) *Wagon {
	w := &Wagon{locator: locator, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&w.opts)
	}
	return w
}

// Connect looks up ambient credentials and resolves the locator.
//
// Missing credentials are not an error: requests are then sent unsigned and a
// denied request reports why. A malformed locator fails with KindConnection.
func (w *Wagon) Connect() error {
	client, err := w.httpClient()
	if err != nil {
		return &Error{Kind: KindConnection, Message: "unable to create HTTP client", Err: err}
	}

	w.signer, w.hasCredentials = nil, false
	if w.opts.finder != nil {
		signer, err := w.opts.finder(context.Background())
		switch {
		case err != nil:
			w.opts.log.WithError(err).Debug("credentials not available, falling back to unauthenticated requests")
		case signer != nil:
			w.signer, w.hasCredentials = signer, true
		}
	}

	id, err := repository.Parse(w.locator)
	if err != nil {
		return configError(err)
	}

	w.identity = id
	w.client = client
	w.opts.log.WithFields(logrus.Fields{
		"repository":  id.String(),
		"host":        w.opts.host,
		"credentials": w.hasCredentials,
	}).Debug("connected")
	return nil
}

// Disconnect releases the connection. It is safe to call without Connect.
func (w *Wagon) Disconnect() error {
	if w.client != nil {
		w.client.CloseIdleConnections()
	}
	w.client = nil
	w.signer = nil
	return nil
}

// HasCredentials reports whether Connect found credentials to sign with.
func (w *Wagon) HasCredentials() bool {
	return w.hasCredentials
}

// Identity returns the repository resolved by Connect.
func (w *Wagon) Identity() repository.Identity {
	return w.identity
}

// URL returns the https URL artifactPath is transferred with.
func (w *Wagon) URL(artifactPath string) (string, error) {
	if err := w.checkConnected(); err != nil {
		return "", err
	}
	return w.identity.URL(w.opts.host, artifactPath).String(), nil
}

// Get downloads artifactPath into dst.
func (w *Wagon) Get(artifactPath string, dst io.Writer) error {
	_, err := w.GetIfNewer(artifactPath, dst, time.Time{})
	return err
}

// GetIfNewer downloads artifactPath into dst. The remote offers no conditional
// get, so the transfer always happens and true is returned on success.
func (w *Wagon) GetIfNewer(artifactPath string, dst io.Writer, _ time.Time) (bool, error) {
	res := &Resource{Name: artifactPath, ContentLength: -1}
	if err := w.get(res, dst, "", nil); err != nil {
		return false, err
	}
	return true, nil
}

// chtimes stamps downloaded files; replaced in tests.
var chtimes = os.Chtimes

// GetFile downloads artifactPath to destination. The bytes are written to a
// temporary file next to destination which is renamed into place on success.
func (w *Wagon) GetFile(artifactPath, destination string) error {
	dir := filepath.Dir(destination)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Kind: KindTransferFailed, Message: msgDownloadFailed, Err: err}
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(destination)+".*.tmp")
	if err != nil {
		return &Error{Kind: KindTransferFailed, Message: msgDownloadFailed, Err: err}
	}
	defer os.Remove(tmp.Name())

	res := &Resource{Name: artifactPath, ContentLength: -1}
	finish := func() error {
		if err := tmp.Close(); err != nil {
			return err
		}
		if err := os.Rename(tmp.Name(), destination); err != nil {
			return err
		}
		if !res.LastModified.IsZero() {
			if err := chtimes(destination, res.LastModified, res.LastModified); err != nil {
				w.opts.log.WithError(err).WithField("path", destination).Debug("unable to set modification time")
			}
		}
		return nil
	}
	err = w.get(res, tmp, destination, finish)
	if err != nil {
		tmp.Close()
	}
	return err
}

func (w *Wagon) get(res *Resource, dst io.Writer, localPath string, finish func() error) error {
	ev := Event{Request: RequestGet, Resource: res, LocalPath: localPath}
	w.fire(EventInitiated, ev)
	w.fire(EventStarted, ev)

	if err := w.download(res, dst, ev, finish); err != nil {
		ev.Err = err
		w.fire(EventError, ev)
		return err
	}
	w.fire(EventCompleted, ev)
	return nil
}

func (w *Wagon) download(res *Resource, dst io.Writer, ev Event, finish func() error) error {
	if err := w.checkConnected(); err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodGet, w.identity.URL(w.opts.host, res.Name).String(), nil)
	if err != nil {
		return sendError(err)
	}
	resp, err := w.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	res.ContentLength = resp.ContentLength
	if lm, err := http.ParseTime(resp.Header.Get("Last-Modified")); err == nil {
		res.LastModified = lm
	}

	pw := &progressWriter{w: dst, notify: func(n int) { w.opts.listeners.progress(ev, n) }}
	if _, err := io.CopyBuffer(pw, resp.Body, make([]byte, w.opts.bufferSize)); err != nil {
		if pw.err != nil {
			return &Error{Kind: KindTransferFailed, Message: msgDownloadFailed, Err: pw.err}
		}
		return &Error{Kind: KindTransferFailed, Message: msgRemoteError, StatusCode: resp.StatusCode, Err: err}
	}
	if finish != nil {
		if err := finish(); err != nil {
			return &Error{Kind: KindTransferFailed, Message: msgDownloadFailed, Err: err}
		}
	}
	return nil
}

// Put uploads length bytes read from src to artifactPath. A negative or zero
// length sends the body chunked; pass http.NoBody to upload an empty artifact.
// modTime is reported to listeners only.
//
// If src is an io.Seeker the request can be replayed by the transport.
func (w *Wagon) Put(src io.Reader, artifactPath string, length int64, modTime time.Time) error {
	if length == 0 && src != http.NoBody {
		// Only http.NoBody says the artifact is empty; a zero hint on any
		// other reader is treated as unknown and the source is streamed.
		length = -1
	}
	open := func() (io.ReadCloser, error) {
		return io.NopCloser(src), nil
	}
	var reopen func() (io.ReadCloser, error)
	if seeker, ok := src.(io.Seeker); ok {
		start, err := seeker.Seek(0, io.SeekCurrent)
		if err == nil {
			reopen = func() (io.ReadCloser, error) {
				if _, err := seeker.Seek(start, io.SeekStart); err != nil {
					return nil, err
				}
				return io.NopCloser(src), nil
			}
		}
	}
	return w.put(artifactPath, "", length, modTime, open, reopen)
}

// PutFile uploads the file at source to artifactPath.
func (w *Wagon) PutFile(source, artifactPath string) error {
	length := int64(-1)
	var modTime time.Time
	if fi, err := os.Stat(source); err == nil {
		length, modTime = fi.Size(), fi.ModTime()
	}
	open := func() (io.ReadCloser, error) {
		return os.Open(source)
	}
	return w.put(artifactPath, source, length, modTime, open, open)
}

func (w *Wagon) put(artifactPath, localPath string, length int64, modTime time.Time, open, reopen func() (io.ReadCloser, error)) error {
	res := &Resource{Name: artifactPath, ContentLength: -1}
	ev := Event{Request: RequestPut, Resource: res, LocalPath: localPath}
	w.fire(EventInitiated, ev)

	res.ContentLength = length
	res.LastModified = modTime

	fail := func(err error) error {
		ev.Err = err
		w.fire(EventError, ev)
		return err
	}

	if err := w.checkConnected(); err != nil {
		w.fire(EventStarted, ev)
		return fail(err)
	}
	u := w.identity.URL(w.opts.host, res.Name)
	w.fire(EventStarted, ev)

	if err := w.upload(u, res, ev, open, reopen); err != nil {
		return fail(err)
	}
	w.fire(EventCompleted, ev)
	return nil
}

func (w *Wagon) upload(u *url.URL, res *Resource, ev Event, open, reopen func() (io.ReadCloser, error)) error {
	state := &uploadState{}
	notify := func(n int) { w.opts.listeners.progress(ev, n) }

	rc, err := open()
	if err != nil {
		return state.fail(err)
	}

	req, err := http.NewRequest(http.MethodPut, u.String(), nil)
	if err != nil {
		rc.Close()
		return sendError(err)
	}
	if res.ContentLength == 0 {
		rc.Close()
		req.Body = http.NoBody
	} else {
		req.Body = &sourceBody{rc: rc, state: state, notify: notify}
		req.ContentLength = res.ContentLength
		if reopen != nil {
			req.GetBody = func() (io.ReadCloser, error) {
				rc, err := reopen()
				if err != nil {
					return nil, state.fail(err)
				}
				return &sourceBody{rc: rc, state: state, notify: notify}, nil
			}
		}
	}

	resp, err := w.do(req)
	if serr := state.failure(); serr != nil {
		if err == nil {
			resp.Body.Close()
		}
		return serr
	}
	if err != nil {
		return err
	}
	return discard(resp)
}

// do signs and sends req. Responses without a 2xx status are closed and
// returned as errors.
func (w *Wagon) do(req *http.Request) (*http.Response, error) {
	userAgent := version.GetUserAgent()
	if w.opts.userAgent != "" {
		userAgent = w.opts.userAgent
	}
	req.Header.Set("User-Agent", userAgent)

	if w.signer != nil {
		if err := w.signer.Sign(req); err != nil {
			return nil, sendError(err)
		}
	}

	log := w.opts.log.WithFields(logrus.Fields{"url": req.URL.String(), "method": req.Method})
	log.Debug("do request")

	resp, err := w.client.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, sendError(err)
	}
	log.WithFields(logrus.Fields{
		"status":         resp.Status,
		"content-length": resp.ContentLength,
	}).Debug("fetch response received")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		discard(resp)
		cause := errors.Errorf("%s %s: %s", req.Method, req.URL.Redacted(), resp.Status)
		return nil, StatusError(resp.StatusCode, w.hasCredentials, cause)
	}
	return resp, nil
}

func (w *Wagon) checkConnected() error {
	if w.client == nil {
		return &Error{Kind: KindConnection, Message: "not connected to a repository"}
	}
	return nil
}

func (w *Wagon) fire(t EventType, ev Event) {
	ev.Type = t
	w.opts.listeners.fire(ev)
}

func (w *Wagon) httpClient() (*http.Client, error) {
	if w.opts.client != nil {
		return w.opts.client, nil
	}
	if w.opts.transport != nil {
		return &http.Client{Transport: w.opts.transport, Timeout: w.opts.timeout}, nil
	}

	cfg, err := tlsutil.NewClientConfig(
		tlsutil.WithInsecureSkipVerify(w.opts.insecureSkipVerifyTLS),
		tlsutil.WithCertKeyPairFiles(w.opts.certFile, w.opts.keyFile),
		tlsutil.WithCAFile(w.opts.caFile),
	)
	if err != nil {
		return nil, errors.Wrap(err, "can't create TLS config for client")
	}
	return &http.Client{Transport: tlsutil.NewTransport(cfg), Timeout: w.opts.timeout}, nil
}

func discard(resp *http.Response) error {
	_, err := io.Copy(io.Discard, resp.Body)
	if cerr := resp.Body.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &Error{Kind: KindTransferFailed, Message: msgRemoteError, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

type progressWriter struct {
	w      io.Writer
	notify func(int)
	err    error
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	if n > 0 {
		p.notify(n)
	}
	if err != nil {
		p.err = err
	}
	return n, err
}

// uploadState holds the first failure raised by the upload source. The
// transport reads request bodies on its own goroutine.
type uploadState struct {
	mu  sync.Mutex
	err error
}

// fail records err as the upload's failure and returns the recorded error.
// Errors that already carry a Kind are kept as they are.
func (s *uploadState) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		var terr *Error
		if errors.As(err, &terr) {
			s.err = terr
		} else {
			s.err = &Error{Kind: KindTransferFailed, Message: msgUploadFailed, Err: err}
		}
	}
	return s.err
}

func (s *uploadState) failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// sourceBody streams the upload source into the request as the transport
// asks for it.
type sourceBody struct {
	rc     io.ReadCloser
	state  *uploadState
	notify func(int)
}

func (b *sourceBody) Read(p []byte) (int, error) {
	n, err := b.rc.Read(p)
	if n > 0 {
		b.notify(n)
	}
	if err != nil && err != io.EOF {
		b.state.fail(err)
	}
	return n, err
}

func (b *sourceBody) Close() error {
	return b.rc.Close()
}
