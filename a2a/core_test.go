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

import (
	"testing"
)

func TestNewSubmittedTask(t *testing.T) {
	msg := NewMessage(MessageRoleUser, NewTextPart("do task"))
	msg.TaskID = "task-1"
	msg.ContextID = "ctx-1"

	task := NewSubmittedTask(msg, msg)

	if task.ID != "task-1" {
		t.Errorf("task.ID = %q, want %q", task.ID, "task-1")
	}
	if task.ContextID != "ctx-1" {
		t.Errorf("task.ContextID = %q, want %q", task.ContextID, "ctx-1")
	}
	if task.Status.State != TaskStateSubmitted {
		t.Errorf("task.Status.State = %q, want %q", task.Status.State, TaskStateSubmitted)
	}
	if task.Status.Timestamp == nil {
		t.Error("task.Status.Timestamp = nil, want construction time")
	}
	if len(task.History) != 1 || task.History[0] != msg {
		t.Errorf("task.History = %v, want [initial message]", task.History)
	}
}

func TestNewSubmittedTaskGeneratesMissingIDs(t *testing.T) {
	msg := NewMessage(MessageRoleUser, NewTextPart("do task"))

	task := NewSubmittedTask(msg, msg)

	if task.ID == "" {
		t.Error("task.ID is empty, want generated id")
	}
	if task.ContextID == "" {
		t.Error("task.ContextID is empty, want generated id")
	}
}

func TestNewStatusUpdateEventCarriesTaskInfo(t *testing.T) {
	info := TaskInfo{TaskID: "task-1", ContextID: "ctx-1"}
	msg := NewMessageForTask(MessageRoleAgent, info, NewTextPart("Working on task"))

	event := NewStatusUpdateEvent(info, TaskStateWorking, msg)

	if event.TaskID != info.TaskID || event.ContextID != info.ContextID {
		t.Errorf("event ids = (%q, %q), want (%q, %q)", event.TaskID, event.ContextID, info.TaskID, info.ContextID)
	}
	if event.Final {
		t.Error("event.Final = true, want false by default")
	}
	if event.Status.Message != msg {
		t.Error("event.Status.Message does not carry the provided message")
	}
	if event.Status.Timestamp == nil {
		t.Error("event.Status.Timestamp = nil, want construction time")
	}
}

func TestTaskStateTerminal(t *testing.T) {
	testCases := []struct {
		state TaskState
		want  bool
	}{
		{TaskStateSubmitted, false},
		{TaskStateWorking, false},
		{TaskStateInputRequired, false},
		{TaskStateUnknown, false},
		{TaskStateUnspecified, false},
		{TaskStateCompleted, true},
		{TaskStateCanceled, true},
		{TaskStateFailed, true},
		{TaskStateRejected, true},
	}

	for _, tc := range testCases {
		if got := tc.state.Terminal(); got != tc.want {
			t.Errorf("TaskState(%q).Terminal() = %v, want %v", tc.state, got, tc.want)
		}
	}
}

func TestPartContentHelpers(t *testing.T) {
	textPart := NewTextPart("hello")
	if got := textPart.Text(); got != "hello" {
		t.Errorf("Part.Text() = %q, want %q", got, "hello")
	}
	if got := textPart.Data(); got != nil {
		t.Errorf("Part.Data() = %v, want nil for a text part", got)
	}

	dataPart := NewDataPart(map[string]any{"k": "v"})
	if got := dataPart.Text(); got != "" {
		t.Errorf("Part.Text() = %q, want empty for a data part", got)
	}
	if got := dataPart.Data(); got == nil {
		t.Error("Part.Data() = nil, want the stored value")
	}
}
