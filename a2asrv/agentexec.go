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

// Package a2asrv defines the server-side surface an agent plugs into: the
// request context describing one invocation and the executor contract for
// translating agent behavior into A2A lifecycle events.
package a2asrv

import (
	"context"

	"github.com/a2akit/scriptedagent/a2asrv/eventqueue"
)

// AgentExecutor implementations translate agent outputs to A2A events and write
// them to the provided event queue. The [RequestContext] should be used as the
// [a2a.TaskInfoProvider] argument for event constructor functions, for example:
//
//	a2a.NewSubmittedTask(reqCtx, reqCtx.Message)
//	a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateWorking, msg)
//
// The host stack stops processing events after one of these:
//   - An [a2a.Message] with any payload.
//   - An [a2a.Task] or [a2a.TaskStatusUpdateEvent] carrying a terminal state or
//     an explicit final flag.
//
// A queue write failure is fatal for the invocation: implementations return it
// to the host without retrying and without rolling back already written events.
type AgentExecutor interface {
	// Execute invokes the agent passing information about the request which triggered
	// the execution, translates agent outputs to A2A events and enqueues them in the
	// order a consumer must observe them. The host may run invocations for different
	// requests concurrently.
	Execute(ctx context.Context, reqCtx *RequestContext, q eventqueue.Queue) error

	// Cancel is called when a client requests the agent to stop working on a task.
	// The simplest implementation can emit an [a2a.TaskStatusUpdateEvent] with
	// [a2a.TaskStateCanceled] and the final flag set.
	Cancel(ctx context.Context, reqCtx *RequestContext, q eventqueue.Queue) error
}
