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

package a2a

import "errors"

// https://a2a-protocol.org/latest/specification/#8-error-handling
var (
	// ErrTaskNotFound indicates that a task with the provided ID was not found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotCancelable indicates that the task was in a state where it could not be canceled.
	ErrTaskNotCancelable = errors.New("task cannot be canceled")

	// ErrInvalidAgentResponse indicates that the agent emitted an event sequence that
	// does not conform to the task lifecycle contract.
	ErrInvalidAgentResponse = errors.New("invalid agent response")

	// ErrConcurrentTaskModification indicates that the task was modified by another
	// writer while an update was in flight.
	ErrConcurrentTaskModification = errors.New("concurrent task modification")

	// ErrVersionNotSupported indicates that the A2A protocol version specified by a peer
	// is not supported by the agent.
	ErrVersionNotSupported = errors.New("this version is not supported")
)
