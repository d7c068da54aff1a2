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

package a2asrv

import (
	"fmt"

	"github.com/a2akit/scriptedagent/a2a"
)

// RequestContext provides information about an incoming A2A request to [AgentExecutor].
// It is immutable for the duration of one invocation.
type RequestContext struct {
	// Message is the message which triggered the execution. nil for a cancelation request.
	Message *a2a.Message
	// TaskID is an ID of the task or a newly generated id in case Message did not reference any Task.
	TaskID a2a.TaskID
	// StoredTask is present if the request referenced an already known task.
	StoredTask *a2a.Task
	// ContextID is an identifier for maintaining context across multiple related tasks or interactions.
	// Matches the Task ContextID.
	ContextID string
	// Metadata of the request which triggered the call.
	Metadata map[string]any
}

var _ a2a.TaskInfoProvider = (*RequestContext)(nil)

// NewRequestContext builds a [RequestContext] for the provided message, generating
// task and context ids when the message does not carry them.
func NewRequestContext(msg *a2a.Message) (*RequestContext, error) {
	if msg == nil {
		return nil, fmt.Errorf("message must not be nil")
	}

	taskID := msg.TaskID
	if taskID == "" {
		taskID = a2a.NewTaskID()
	}
	contextID := msg.ContextID
	if contextID == "" {
		contextID = a2a.NewContextID()
	}

	return &RequestContext{
		Message:   msg,
		TaskID:    taskID,
		ContextID: contextID,
	}, nil
}

// TaskInfo returns information used for associating events with a task.
func (rc *RequestContext) TaskInfo() a2a.TaskInfo {
	return a2a.TaskInfo{TaskID: rc.TaskID, ContextID: rc.ContextID}
}
