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

// Package harness drives an [a2asrv.AgentExecutor] through a local in-memory
// event pipeline: the executor produces lifecycle events into a queue while a
// consumer folds them into task snapshots, the way a hosting A2A server stack
// would. It exists so executor behavior can be exercised and observed without
// any transport.
package harness

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/a2akit/scriptedagent/a2a"
	"github.com/a2akit/scriptedagent/a2asrv"
	"github.com/a2akit/scriptedagent/a2asrv/eventqueue"
	"github.com/a2akit/scriptedagent/a2asrv/taskstore"
	"github.com/a2akit/scriptedagent/internal/taskupdate"
	"github.com/a2akit/scriptedagent/log"
)

// Result describes one driven invocation.
type Result struct {
	// Events is the full event sequence in the order it was observed on the queue.
	Events []a2a.Event
	// Reply is set when the executor answered with a plain message instead of a task.
	Reply *a2a.Message
	// Task is the latest stored snapshot of the task the invocation produced or
	// updated, nil when no task was involved.
	Task *a2a.Task
}

// Runner wires an [a2asrv.AgentExecutor] to an in-memory queue and a task store.
// A zero queue buffer means the default queue size is used. Runner is safe for
// concurrent use, each invocation gets a dedicated queue.
type Runner struct {
	executor   a2asrv.AgentExecutor
	store      taskstore.Store
	bufferSize int
}

// Option is a functional option for configuring a [Runner].
type Option func(*Runner)

// WithStore overrides the task store events are folded into. Defaults to a
// fresh in-memory store.
func WithStore(store taskstore.Store) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithQueueBufferSize overrides the event queue buffer used per invocation.
func WithQueueBufferSize(size int) Option {
	return func(r *Runner) {
		r.bufferSize = size
	}
}

// NewRunner creates a [Runner] for the provided executor.
func NewRunner(executor a2asrv.AgentExecutor, opts ...Option) *Runner {
	r := &Runner{executor: executor}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = taskstore.NewInMemory(nil)
	}
	return r
}

// Store returns the task store invocation results are folded into.
func (r *Runner) Store() taskstore.Store {
	return r.store
}

// Run builds a request context for the message and drives the executor's
// Execute through the pipeline, returning the observed events and the
// resulting task snapshot or message reply.
func (r *Runner) Run(ctx context.Context, msg *a2a.Message) (*Result, error) {
	reqCtx, err := a2asrv.NewRequestContext(msg)
	if err != nil {
		return nil, err
	}

	stored, err := r.loadStored(ctx, reqCtx.TaskID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		reqCtx.StoredTask = stored.Task
	}

	return r.drive(ctx, reqCtx, stored, func(ctx context.Context, q eventqueue.Queue) error {
		return r.executor.Execute(ctx, reqCtx, q)
	})
}

// Cancel drives the executor's Cancel entry point for the referenced task.
// The task does not need to exist: events emitted for an unknown task are
// recorded but not folded into the store.
func (r *Runner) Cancel(ctx context.Context, info a2a.TaskInfo) (*Result, error) {
	reqCtx := &a2asrv.RequestContext{TaskID: info.TaskID, ContextID: info.ContextID}

	stored, err := r.loadStored(ctx, info.TaskID)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		reqCtx.StoredTask = stored.Task
	}

	return r.drive(ctx, reqCtx, stored, func(ctx context.Context, q eventqueue.Queue) error {
		return r.executor.Cancel(ctx, reqCtx, q)
	})
}

func (r *Runner) loadStored(ctx context.Context, tid a2a.TaskID) (*taskstore.StoredTask, error) {
	stored, err := r.store.Get(ctx, tid)
	if errors.Is(err, a2a.ErrTaskNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("task loading failed: %w", err)
	}
	return stored, nil
}

type produceFunc func(ctx context.Context, q eventqueue.Queue) error

func (r *Runner) drive(ctx context.Context, reqCtx *a2asrv.RequestContext, stored *taskstore.StoredTask, produce produceFunc) (*Result, error) {
	var queueOpts []eventqueue.MemoryOption
	if r.bufferSize > 0 {
		queueOpts = append(queueOpts, eventqueue.WithBufferSize(r.bufferSize))
	}
	queue := eventqueue.NewMemory(queueOpts...)

	// Fold events only when the invocation can reference a stored task. Cancel
	// events for unknown tasks are observed without updating the store.
	var mgr *taskupdate.Manager
	if reqCtx.Message != nil || stored != nil {
		mgr = taskupdate.NewManager(r.store, reqCtx.TaskInfo(), stored)
	}

	result := &Result{}
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer queue.Close()
		return produce(gctx, queue)
	})

	group.Go(func() error {
		// The producer always closes the queue on exit, so draining with a
		// detached context terminates and keeps every written event observable
		// even when the run is aborted.
		readCtx := context.WithoutCancel(gctx)
		for {
			event, err := queue.Read(readCtx)
			if errors.Is(err, eventqueue.ErrQueueClosed) {
				return nil
			}
			if err != nil {
				return err
			}

			result.Events = append(result.Events, event)
			if msg, ok := event.(*a2a.Message); ok {
				result.Reply = msg
			} else if mgr == nil {
				log.Debug(readCtx, "skipping event for unknown task", "task_id", event.TaskInfo().TaskID)
			} else if _, err := mgr.Process(readCtx, event); err != nil {
				return fmt.Errorf("event processing failed: %w", err)
			}

			// The host contract ends processing at the first final event;
			// anything written after it is ignored.
			if taskupdate.IsFinal(event) {
				return nil
			}
		}
	})

	if err := group.Wait(); err != nil {
		if mgr != nil && mgr.Task() != nil && !mgr.Task().Status.State.Terminal() {
			// The write must survive the cancelation that aborted the run.
			failCtx := context.WithoutCancel(ctx)
			if _, ferr := mgr.SetTaskFailed(failCtx, mgr.Task(), err); ferr != nil {
				log.Warn(failCtx, "failed to record task failure", "error", ferr)
			}
		}
		return nil, err
	}

	if mgr != nil {
		result.Task = mgr.Task()
	}
	return result, nil
}
