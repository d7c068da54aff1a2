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

package taskupdate

import (
	"errors"
	"testing"

	"github.com/a2akit/scriptedagent/a2a"
	"github.com/a2akit/scriptedagent/a2asrv/taskstore"
)

func newTestSetup(t *testing.T) (*a2a.Message, a2a.TaskInfo, *Manager, *taskstore.InMemory) {
	t.Helper()
	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.NewTextPart("do task"))
	msg.TaskID = a2a.NewTaskID()
	msg.ContextID = a2a.NewContextID()
	info := msg.TaskInfo()
	store := taskstore.NewInMemory(nil)
	return msg, info, NewManager(store, info, nil), store
}

func TestProcessTaskCreatesStoredTask(t *testing.T) {
	msg, _, mgr, store := newTestSetup(t)
	task := a2a.NewSubmittedTask(msg, msg)

	stored, err := mgr.Process(t.Context(), task)
	if err != nil {
		t.Fatalf("mgr.Process() error = %v", err)
	}
	if stored == nil || stored.Task.Status.State != a2a.TaskStateSubmitted {
		t.Fatalf("mgr.Process() = %v, want stored submitted task", stored)
	}

	fromStore, err := store.Get(t.Context(), task.ID)
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	if fromStore.Task.Status.State != a2a.TaskStateSubmitted {
		t.Errorf("stored state = %q, want %q", fromStore.Task.Status.State, a2a.TaskStateSubmitted)
	}
}

func TestProcessStatusUpdateFoldsMessageIntoHistory(t *testing.T) {
	msg, info, mgr, _ := newTestSetup(t)
	task := a2a.NewSubmittedTask(msg, msg)

	if _, err := mgr.Process(t.Context(), task); err != nil {
		t.Fatalf("mgr.Process(task) error = %v", err)
	}

	working := a2a.NewStatusUpdateEvent(info, a2a.TaskStateWorking,
		a2a.NewMessageForTask(a2a.MessageRoleAgent, info, a2a.NewTextPart("Working on task")))
	stored, err := mgr.Process(t.Context(), working)
	if err != nil {
		t.Fatalf("mgr.Process(working) error = %v", err)
	}
	if stored.Task.Status.State != a2a.TaskStateWorking {
		t.Errorf("state = %q, want %q", stored.Task.Status.State, a2a.TaskStateWorking)
	}

	completed := a2a.NewStatusUpdateEvent(info, a2a.TaskStateCompleted,
		a2a.NewMessageForTask(a2a.MessageRoleAgent, info, a2a.NewTextPart("Task completed")))
	completed.Final = true
	stored, err = mgr.Process(t.Context(), completed)
	if err != nil {
		t.Fatalf("mgr.Process(completed) error = %v", err)
	}

	// original message plus the folded working status message
	if got := len(stored.Task.History); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}
	if stored.Task.Status.State != a2a.TaskStateCompleted {
		t.Errorf("state = %q, want %q", stored.Task.Status.State, a2a.TaskStateCompleted)
	}
}

func TestProcessStatusUpdateBeforeTask(t *testing.T) {
	_, info, mgr, _ := newTestSetup(t)

	update := a2a.NewStatusUpdateEvent(info, a2a.TaskStateWorking, nil)
	if _, err := mgr.Process(t.Context(), update); !errors.Is(err, a2a.ErrInvalidAgentResponse) {
		t.Errorf("mgr.Process() error = %v, want ErrInvalidAgentResponse", err)
	}
}

func TestProcessMessageReply(t *testing.T) {
	_, _, mgr, _ := newTestSetup(t)

	reply := a2a.NewMessage(a2a.MessageRoleAgent, a2a.NewTextPart("Hello World"))
	stored, err := mgr.Process(t.Context(), reply)
	if err != nil {
		t.Fatalf("mgr.Process() error = %v", err)
	}
	if stored != nil {
		t.Errorf("mgr.Process() = %v, want nil for message reply", stored)
	}
}

func TestProcessMessageAfterTask(t *testing.T) {
	msg, _, mgr, _ := newTestSetup(t)

	if _, err := mgr.Process(t.Context(), a2a.NewSubmittedTask(msg, msg)); err != nil {
		t.Fatalf("mgr.Process(task) error = %v", err)
	}

	reply := a2a.NewMessage(a2a.MessageRoleAgent, a2a.NewTextPart("too late"))
	if _, err := mgr.Process(t.Context(), reply); !errors.Is(err, a2a.ErrInvalidAgentResponse) {
		t.Errorf("mgr.Process() error = %v, want ErrInvalidAgentResponse", err)
	}
}

func TestProcessRejectsMismatchedIDs(t *testing.T) {
	msg, _, mgr, _ := newTestSetup(t)

	other := a2a.NewMessage(a2a.MessageRoleUser, a2a.NewTextPart("do task"))
	other.TaskID = a2a.NewTaskID()
	other.ContextID = msg.ContextID

	task := a2a.NewSubmittedTask(other, other)
	if _, err := mgr.Process(t.Context(), task); !errors.Is(err, a2a.ErrInvalidAgentResponse) {
		t.Errorf("mgr.Process() error = %v, want ErrInvalidAgentResponse", err)
	}
}

func TestCancelRetriesOnConcurrentModification(t *testing.T) {
	msg, info, mgr, store := newTestSetup(t)
	task := a2a.NewSubmittedTask(msg, msg)

	if _, err := mgr.Process(t.Context(), task); err != nil {
		t.Fatalf("mgr.Process(task) error = %v", err)
	}

	// another writer moves the task forward behind the manager's back
	stored, err := store.Get(t.Context(), task.ID)
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	stored.Task.Status.State = a2a.TaskStateWorking
	if _, err := store.Update(t.Context(), &taskstore.UpdateRequest{Task: stored.Task, PrevVersion: stored.Version}); err != nil {
		t.Fatalf("store.Update() error = %v", err)
	}

	cancel := a2a.NewStatusUpdateEvent(info, a2a.TaskStateCanceled,
		a2a.NewMessageForTask(a2a.MessageRoleAgent, info, a2a.NewTextPart("Task canceled")))
	cancel.Final = true

	result, err := mgr.Process(t.Context(), cancel)
	if err != nil {
		t.Fatalf("mgr.Process(cancel) error = %v", err)
	}
	if result.Task.Status.State != a2a.TaskStateCanceled {
		t.Errorf("state = %q, want %q", result.Task.Status.State, a2a.TaskStateCanceled)
	}
}

func TestCancelFailsWhenTaskAlreadyTerminal(t *testing.T) {
	msg, info, mgr, store := newTestSetup(t)
	task := a2a.NewSubmittedTask(msg, msg)

	if _, err := mgr.Process(t.Context(), task); err != nil {
		t.Fatalf("mgr.Process(task) error = %v", err)
	}

	// another writer completes the task behind the manager's back
	stored, err := store.Get(t.Context(), task.ID)
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	stored.Task.Status.State = a2a.TaskStateCompleted
	if _, err := store.Update(t.Context(), &taskstore.UpdateRequest{Task: stored.Task, PrevVersion: stored.Version}); err != nil {
		t.Fatalf("store.Update() error = %v", err)
	}

	cancel := a2a.NewStatusUpdateEvent(info, a2a.TaskStateCanceled, nil)
	cancel.Final = true

	if _, err := mgr.Process(t.Context(), cancel); !errors.Is(err, a2a.ErrTaskNotCancelable) {
		t.Errorf("mgr.Process(cancel) error = %v, want ErrTaskNotCancelable", err)
	}
}

func TestSetTaskFailed(t *testing.T) {
	msg, _, mgr, _ := newTestSetup(t)

	if _, err := mgr.SetTaskFailed(t.Context(), nil, errors.New("boom")); err == nil {
		t.Error("SetTaskFailed() before task creation error = nil, want error")
	}

	if _, err := mgr.Process(t.Context(), a2a.NewSubmittedTask(msg, msg)); err != nil {
		t.Fatalf("mgr.Process(task) error = %v", err)
	}

	stored, err := mgr.SetTaskFailed(t.Context(), nil, errors.New("boom"))
	if err != nil {
		t.Fatalf("SetTaskFailed() error = %v", err)
	}
	if stored.Task.Status.State != a2a.TaskStateFailed {
		t.Errorf("state = %q, want %q", stored.Task.Status.State, a2a.TaskStateFailed)
	}
}

func TestIsFinal(t *testing.T) {
	info := a2a.TaskInfo{TaskID: "task-1", ContextID: "ctx-1"}

	explicitFinal := a2a.NewStatusUpdateEvent(info, a2a.TaskStateWorking, nil)
	explicitFinal.Final = true

	testCases := []struct {
		name  string
		event a2a.Event
		want  bool
	}{
		{"message", a2a.NewMessage(a2a.MessageRoleAgent, a2a.NewTextPart("hi")), true},
		{"working update", a2a.NewStatusUpdateEvent(info, a2a.TaskStateWorking, nil), false},
		{"completed update", a2a.NewStatusUpdateEvent(info, a2a.TaskStateCompleted, nil), true},
		{"canceled update", a2a.NewStatusUpdateEvent(info, a2a.TaskStateCanceled, nil), true},
		{"input required update", a2a.NewStatusUpdateEvent(info, a2a.TaskStateInputRequired, nil), true},
		{"explicit final flag", explicitFinal, true},
		{"submitted task", &a2a.Task{ID: "task-1", ContextID: "ctx-1", Status: a2a.TaskStatus{State: a2a.TaskStateSubmitted}}, false},
		{"completed task", &a2a.Task{ID: "task-1", ContextID: "ctx-1", Status: a2a.TaskStatus{State: a2a.TaskStateCompleted}}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFinal(tc.event); got != tc.want {
				t.Errorf("IsFinal() = %v, want %v", got, tc.want)
			}
		})
	}
}
