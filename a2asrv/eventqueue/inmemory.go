// Copyright 2026 The A2A Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package eventqueue

import (
	"context"
	"sync/atomic"

	"github.com/a2akit/scriptedagent/a2a"
)

const defaultBufferSize = 1024

type memoryOptions struct {
	bufferSize int
}

// MemoryOption is a functional option for configuring an in-memory queue.
type MemoryOption func(*memoryOptions)

// WithBufferSize configures the size of the event buffer for the in-memory queue.
func WithBufferSize(size int) MemoryOption {
	return func(opts *memoryOptions) {
		opts.bufferSize = size
	}
}

// Memory is a channel-backed event queue safe for concurrent use.
// Enqueue order is preserved per writer, readers are allowed to drain buffered
// events after the queue is closed.
type Memory struct {
	events chan a2a.Event

	closed    atomic.Bool
	closeChan chan struct{}
}

var _ Queue = (*Memory)(nil)
var _ Reader = (*Memory)(nil)

// NewMemory creates a new in-memory event queue.
func NewMemory(opts ...MemoryOption) *Memory {
	options := &memoryOptions{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		opt(options)
	}
	return &Memory{
		events:    make(chan a2a.Event, options.bufferSize),
		closeChan: make(chan struct{}),
	}
}

// Write implements [Queue] interface.
func (q *Memory) Write(ctx context.Context, event a2a.Event) error {
	if q.closed.Load() {
		return ErrQueueClosed
	}

	select {
	case q.events <- event:
		return nil
	case <-q.closeChan:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Read implements [Reader] interface.
func (q *Memory) Read(ctx context.Context) (a2a.Event, error) {
	select {
	case event := <-q.events:
		return event, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-q.closeChan:
		// queue closed, drain what is already buffered
		select {
		case event := <-q.events:
			return event, nil
		default:
			return nil, ErrQueueClosed
		}
	}
}

// Close implements [Queue] and [Reader] interfaces. It is safe to call multiple times.
func (q *Memory) Close() error {
	if q.closed.CompareAndSwap(false, true) {
		close(q.closeChan)
	}
	return nil
}
