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
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yihanzhen/artifact-registry-maven-tools/pkg/transfer"
)

// Recorder records transfer metrics. It implements transfer.Listener and
// transfer.ProgressListener.
type Recorder struct {
	registry *prometheus.Registry

	transfersTotal   *prometheus.CounterVec
	transferDuration *prometheus.HistogramVec
	bytesTotal       *prometheus.CounterVec
	activeTransfers  prometheus.Gauge

	mu      sync.Mutex
	started map[*transfer.Resource]time.Time
	now     func() time.Time
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transfersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artifact_wagon_transfers_total",
				Help: "Total number of artifact transfers by direction and outcome",
			},
			[]string{"request", "success", "kind"},
		),
		transferDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "artifact_wagon_transfer_duration_seconds",
				Help:    "Duration of artifact transfers in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
			},
			[]string{"request", "success"},
		),
		bytesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "artifact_wagon_transferred_bytes_total",
				Help: "Total number of artifact bytes moved",
			},
			[]string{"request"},
		),
		activeTransfers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "artifact_wagon_active_transfers",
				Help: "Number of transfers currently in flight",
			},
		),
		started: map[*transfer.Resource]time.Time{},
		now:     time.Now,
	}

	r.registry.MustRegister(
		r.transfersTotal,
		r.transferDuration,
		r.bytesTotal,
		r.activeTransfers,
	)
	return r
}

// Registry returns the registry the metrics are registered with.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// TransferInitiated implements transfer.Listener.
func (r *Recorder) TransferInitiated(transfer.Event) {}

// TransferStarted implements transfer.Listener.
func (r *Recorder) TransferStarted(e transfer.Event) {
	r.mu.Lock()
	r.started[e.Resource] = r.now()
	r.mu.Unlock()
	r.activeTransfers.Inc()
}

// TransferCompleted implements transfer.Listener.
func (r *Recorder) TransferCompleted(e transfer.Event) {
	r.finish(e, true, "")
}

// TransferError implements transfer.Listener.
func (r *Recorder) TransferError(e transfer.Event) {
	kind := "unknown"
	var terr *transfer.Error
	if errors.As(e.Err, &terr) {
		kind = terr.Kind.String()
	}
	r.finish(e, false, kind)
}

// TransferProgress implements transfer.ProgressListener.
func (r *Recorder) TransferProgress(e transfer.Event, n int) {
	r.bytesTotal.WithLabelValues(e.Request.String()).Add(float64(n))
}

func (r *Recorder) finish(e transfer.Event, success bool, kind string) {
	r.mu.Lock()
	start, ok := r.started[e.Resource]
	delete(r.started, e.Resource)
	r.mu.Unlock()

	successLabel := strconv.FormatBool(success)
	r.transfersTotal.WithLabelValues(e.Request.String(), successLabel, kind).Inc()
	if ok {
		r.activeTransfers.Dec()
		r.transferDuration.WithLabelValues(e.Request.String(), successLabel).Observe(r.now().Sub(start).Seconds())
	}
}
