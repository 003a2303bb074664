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

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/transfer"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	clock := time.Unix(0, 0)
	r.now = func() time.Time { return clock }

	ok := transfer.Event{Request: transfer.RequestGet, Resource: &transfer.Resource{Name: "a.jar"}}
	r.TransferInitiated(ok)
	r.TransferStarted(ok)
	assert.Equal(t, float64(1), testutil.ToFloat64(r.activeTransfers))
	r.TransferProgress(ok, 100)
	r.TransferProgress(ok, 24)
	clock = clock.Add(2 * time.Second)
	r.TransferCompleted(ok)

	failed := transfer.Event{
		Request:  transfer.RequestPut,
		Resource: &transfer.Resource{Name: "b.jar"},
		Err:      transfer.StatusError(403, false, nil),
	}
	r.TransferStarted(failed)
	r.TransferError(failed)

	assert.Equal(t, float64(0), testutil.ToFloat64(r.activeTransfers))
	assert.Equal(t, float64(124), testutil.ToFloat64(r.bytesTotal.WithLabelValues("get")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.transfersTotal.WithLabelValues("get", "true", "")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.transfersTotal.WithLabelValues("put", "false", "authorization")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.transferDuration))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	e := transfer.Event{Request: transfer.RequestPut, Resource: &transfer.Resource{Name: "c.pom"}}
	r.TransferStarted(e)
	r.TransferCompleted(e)

	path := filepath.Join(t.TempDir(), "wagon.prom")
	require.NoError(t, r.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `artifact_wagon_transfers_total{kind="",request="put",success="true"} 1`))
}
