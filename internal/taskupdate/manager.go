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

// Package taskupdate folds agent event streams into task snapshots persisted
// in a task store.
package taskupdate

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/a2akit/scriptedagent/a2a"
	"github.com/a2akit/scriptedagent/a2asrv/taskstore"
	"github.com/a2akit/scriptedagent/internal/utils"
	"github.com/a2akit/scriptedagent/log"
)

const maxCancelationAttempts = 10

// Manager is used for processing [a2a.Event]s related to an [a2a.Task]. It updates
// the Task accordingly and uses [taskstore.Store] to store the new state.
type Manager struct {
	taskInfo   a2a.TaskInfo
	lastStored *taskstore.StoredTask
	store      taskstore.Store
}

// NewManager is a [Manager] constructor function. The task argument carries the
// last stored state if the task already exists, nil otherwise.
func NewManager(store taskstore.Store, info a2a.TaskInfo, task *taskstore.StoredTask) *Manager {
	return &Manager{
		taskInfo:   info,
		lastStored: task,
		store:      store,
	}
}

// Task returns the latest stored snapshot of the managed task, nil if no task was stored yet.
func (mgr *Manager) Task() *a2a.Task {
	if mgr.lastStored == nil {
		return nil
	}
	return mgr.lastStored.Task
}

// Process validates the event associated with the managed [a2a.Task] and integrates
// the new state into it. A (nil, nil) result means the event did not produce a stored
// task update, which is the case for plain [a2a.Message] replies.
func (mgr *Manager) Process(ctx context.Context, event a2a.Event) (*taskstore.StoredTask, error) {
	if _, ok := event.(*a2a.Message); ok {
		if mgr.lastStored != nil {
			return nil, fmt.Errorf("message not allowed after task was stored: %w", a2a.ErrInvalidAgentResponse)
		}
		return nil, nil
	}

	if v, ok := event.(*a2a.Task); ok {
		if err := mgr.validate(v); err != nil {
			return nil, err
		}
		return mgr.saveTask(ctx, v, event)
	}

	if mgr.lastStored == nil {
		return nil, fmt.Errorf("first event must be a Task or a message: %w", a2a.ErrInvalidAgentResponse)
	}

	switch v := event.(type) {
	case *a2a.TaskStatusUpdateEvent:
		if err := mgr.validate(v); err != nil {
			return nil, err
		}
		return mgr.updateStatus(ctx, v)

	default:
		return nil, fmt.Errorf("unexpected event type %T", v)
	}
}

// SetTaskFailed attempts to move the Task to failed state and returns it in case of a success.
func (mgr *Manager) SetTaskFailed(ctx context.Context, event a2a.Event, cause error) (*taskstore.StoredTask, error) {
	if mgr.lastStored == nil {
		return nil, fmt.Errorf("execution failed before a task was created: %w", cause)
	}

	task := *mgr.lastStored.Task // copy to update task status

	// do not store cause.Error() as part of status to not disclose the cause to clients
	task.Status = a2a.TaskStatus{State: a2a.TaskStateFailed}

	if _, err := mgr.saveTask(ctx, &task, event); err != nil {
		return nil, fmt.Errorf("failed to store failed task state: %w: %w", err, cause)
	}

	log.Info(ctx, "task moved to failed state", "cause", cause.Error())
	return mgr.lastStored, nil
}

func (mgr *Manager) updateStatus(ctx context.Context, event *a2a.TaskStatusUpdateEvent) (*taskstore.StoredTask, error) {
	lastStored, err := utils.DeepCopy(mgr.lastStored)
	if err != nil {
		return nil, err
	}

	for range maxCancelationAttempts {
		task := lastStored.Task
		if task.Status.Message != nil {
			task.History = append(task.History, task.Status.Message)
		}
		if event.Metadata != nil {
			if task.Metadata == nil {
				task.Metadata = make(map[string]any)
			}
			maps.Copy(task.Metadata, event.Metadata)
		}
		task.Status = event.Status

		vt, err := mgr.saveVersionedTask(ctx, task, event, lastStored.Version)
		if err == nil {
			return vt, nil
		}

		// Cancelation may race with an active execution updating the same task. Refetch and
		// retry until the cancel applies or the task reaches another terminal state.
		if !errors.Is(err, taskstore.ErrConcurrentModification) || event.Status.State != a2a.TaskStateCanceled {
			return nil, err
		}

		storedTask, getErr := mgr.store.Get(ctx, event.TaskID)
		if getErr != nil {
			return nil, fmt.Errorf("failed to get task: %w", getErr)
		}

		if storedTask.Task.Status.State == a2a.TaskStateCanceled {
			mgr.lastStored = storedTask
			return mgr.lastStored, nil
		}
		if storedTask.Task.Status.State.Terminal() {
			return nil, fmt.Errorf("task moved to %q before it could be canceled: %w", storedTask.Task.Status.State, a2a.ErrTaskNotCancelable)
		}

		lastStored = storedTask
	}

	return nil, fmt.Errorf("max task cancelation attempts reached")
}

func (mgr *Manager) saveTask(ctx context.Context, task *a2a.Task, event a2a.Event) (*taskstore.StoredTask, error) {
	version := taskstore.TaskVersionMissing
	if mgr.lastStored != nil {
		version = mgr.lastStored.Version
	}
	return mgr.saveVersionedTask(ctx, task, event, version)
}

func (mgr *Manager) saveVersionedTask(ctx context.Context, task *a2a.Task, event a2a.Event, prevVersion taskstore.TaskVersion) (*taskstore.StoredTask, error) {
	var version taskstore.TaskVersion
	var err error
	if prevVersion == taskstore.TaskVersionMissing && mgr.lastStored == nil {
		version, err = mgr.store.Create(ctx, task)
	} else {
		version, err = mgr.store.Update(ctx, &taskstore.UpdateRequest{
			Task:        task,
			Event:       event,
			PrevVersion: prevVersion,
		})
	}
	if err != nil {
		return nil, err
	}

	mgr.lastStored = &taskstore.StoredTask{Task: task, Version: version}
	return mgr.lastStored, nil
}

func (mgr *Manager) validate(event a2a.Event) error {
	info := event.TaskInfo()
	if info.TaskID != mgr.taskInfo.TaskID {
		return fmt.Errorf("event task id %q does not match %q: %w", info.TaskID, mgr.taskInfo.TaskID, a2a.ErrInvalidAgentResponse)
	}
	if info.ContextID != mgr.taskInfo.ContextID {
		return fmt.Errorf("event context id %q does not match %q: %w", info.ContextID, mgr.taskInfo.ContextID, a2a.ErrInvalidAgentResponse)
	}
	return nil
}
