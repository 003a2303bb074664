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

import "time"

// RequestType is the direction of a transfer.
type RequestType int

const (
	// RequestGet downloads an artifact from the repository.
	RequestGet RequestType = iota
	// RequestPut uploads an artifact to the repository.
	RequestPut
)

func (r RequestType) String() string {
	if r == RequestPut {
		return "put"
	}
	return "get"
}

// EventType identifies a point in the transfer lifecycle.
type EventType int

const (
	// EventInitiated is fired before anything is checked or sent.
	EventInitiated EventType = iota
	// EventStarted is fired once the request is about to be sent.
	EventStarted
	// EventProgress is fired for every chunk of bytes moved.
	EventProgress
	// EventCompleted is fired after a successful transfer.
	EventCompleted
	// EventError is fired after a failed transfer.
	EventError
)

func (e EventType) String() string {
	switch e {
	case EventInitiated:
		return "initiated"
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	default:
		return "error"
	}
}

// Resource describes the artifact being transferred.
type Resource struct {
	// Name is the artifact path relative to the repository.
	Name string
	// ContentLength is the size in bytes, or -1 when unknown.
	ContentLength int64
	// LastModified is informational and may be zero.
	LastModified time.Time
}

// Event is delivered to listeners at each lifecycle point.
type Event struct {
	Type     EventType
	Request  RequestType
	Resource *Resource
	// LocalPath is the local file involved, if the transfer is file based.
	LocalPath string
	// Err is set for EventError.
	Err error
}

// Listener receives lifecycle notifications. For every transfer the calls are
// made in the order initiated, started, then exactly one of completed or error.
type Listener interface {
	TransferInitiated(Event)
	TransferStarted(Event)
	TransferCompleted(Event)
	TransferError(Event)
}

// ProgressListener is implemented by listeners that also want to observe the
// bytes moved by a transfer.
type ProgressListener interface {
	TransferProgress(e Event, n int)
}

// Listeners fans notifications out to every registered listener.
type Listeners []Listener

func (ls Listeners) fire(e Event) {
	for _, l := range ls {
		switch e.Type {
		case EventInitiated:
			l.TransferInitiated(e)
		case EventStarted:
			l.TransferStarted(e)
		case EventCompleted:
			l.TransferCompleted(e)
		case EventError:
			l.TransferError(e)
		}
	}
}

func (ls Listeners) progress(e Event, n int) {
	e.Type = EventProgress
	for _, l := range ls {
		if pl, ok := l.(ProgressListener); ok {
			pl.TransferProgress(e, n)
		}
	}
}
