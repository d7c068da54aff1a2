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

// Package eventqueue defines the event sink an [a2asrv.AgentExecutor] writes
// lifecycle events to, and an in-memory order-preserving implementation.
package eventqueue

import (
	"context"
	"errors"

	"github.com/a2akit/scriptedagent/a2a"
)

// ErrQueueClosed indicates that the event queue has been closed.
var ErrQueueClosed = errors.New("queue is closed")

// Queue defines the interface for writing events to a queue.
// An agent executor translates agent responses to Messages, Tasks or task update events
// and enqueues them in the order a downstream consumer must observe them.
type Queue interface {
	// Write enqueues an event or blocks if a bounded queue is full.
	Write(ctx context.Context, event a2a.Event) error

	// Close shuts down a connection to the queue.
	Close() error
}

// Reader defines the interface for reading events from a queue.
// The server stack reads events written by an agent executor.
type Reader interface {
	// Read dequeues an event or blocks if the queue is empty.
	Read(ctx context.Context) (a2a.Event, error)

	// Close shuts down a connection to the queue.
	Close() error
}
