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

package scripted

import (
	"context"
	"fmt"
	"time"

	"github.com/a2akit/scriptedagent/a2a"
	"github.com/a2akit/scriptedagent/a2asrv"
	"github.com/a2akit/scriptedagent/a2asrv/eventqueue"
	"github.com/a2akit/scriptedagent/log"
)

const (
	defaultStepDelay = 200 * time.Millisecond
	progressSteps    = 4
)

// Sleeper suspends execution for the provided duration. It returns the context
// error when the context is canceled before the duration elapses.
type Sleeper func(ctx context.Context, d time.Duration) error

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Executor is a deterministic [a2asrv.AgentExecutor] playing canned task
// lifecycle scenarios selected by the inbound message text. It holds no state
// across invocations and is safe for concurrent use.
type Executor struct {
	stepDelay time.Duration
	sleep     Sleeper
}

var _ a2asrv.AgentExecutor = (*Executor)(nil)

// Option is a functional option for configuring an [Executor].
type Option func(*Executor)

// WithStepDelay overrides the pause between long-running progress updates.
func WithStepDelay(d time.Duration) Option {
	return func(e *Executor) {
		e.stepDelay = d
	}
}

// WithSleeper overrides the suspension primitive used between long-running
// progress updates. Tests inject a fake to avoid real-time waits.
func WithSleeper(s Sleeper) Option {
	return func(e *Executor) {
		e.sleep = s
	}
}

// NewExecutor creates an [Executor] with a real-time 200ms progress pause.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		stepDelay: defaultStepDelay,
		sleep:     sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute implements [a2asrv.AgentExecutor]. It resolves the scenario triggered
// by the request message and emits the scenario's event sequence to the queue.
// A queue write failure aborts the invocation; already written events are not
// rolled back.
func (e *Executor) Execute(ctx context.Context, reqCtx *a2asrv.RequestContext, q eventqueue.Queue) error {
	scenario := ResolveScenario(reqCtx.Message)
	log.Info(ctx, "playing scenario", "scenario", scenario.String(), "task_id", reqCtx.TaskID)

	switch scenario {
	case ScenarioGreeting:
		return e.sayHello(ctx, reqCtx, q)
	case ScenarioShortTask:
		return e.doTask(ctx, reqCtx, q)
	case ScenarioCancelableTask:
		return e.doCancelableTask(ctx, reqCtx, q)
	case ScenarioLongRunningTask:
		return e.doLongRunningTask(ctx, reqCtx, q)
	default:
		return e.apologize(ctx, q)
	}
}

// Cancel implements [a2asrv.AgentExecutor]. It unconditionally emits a single
// terminal canceled update for the referenced task. No check is made that the
// task exists or was ever started, which allows exercising cancelation of
// unknown and already finished tasks.
func (e *Executor) Cancel(ctx context.Context, reqCtx *a2asrv.RequestContext, q eventqueue.Queue) error {
	event := a2a.NewStatusUpdateEvent(reqCtx, a2a.TaskStateCanceled,
		a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx, a2a.NewTextPart("Task canceled")))
	event.Final = true
	if err := q.Write(ctx, event); err != nil {
		return fmt.Errorf("failed to write canceled update: %w", err)
	}
	return nil
}

// sayHello emits one plain agent message tagged with the inbound task and context ids.
func (e *Executor) sayHello(ctx context.Context, reqCtx *a2asrv.RequestContext, q eventqueue.Queue) error {
	msg := a2a.NewMessageForTask(a2a.MessageRoleAgent, reqCtx.Message, a2a.NewTextPart("Hello World"))
	if err := q.Write(ctx, msg); err != nil {
		return fmt.Errorf("failed to write greeting: %w", err)
	}
	return nil
}

// doTask runs a task through submitted, working and completed synchronously.
func (e *Executor) doTask(ctx context.Context, reqCtx *a2asrv.RequestContext, q eventqueue.Queue) error {
	task := a2a.NewSubmittedTask(reqCtx, reqCtx.Message)
	if err := q.Write(ctx, task); err != nil {
		return fmt.Errorf("failed to write submitted task: %w", err)
	}

	working := a2a.NewStatusUpdateEvent(task, a2a.TaskStateWorking,
		a2a.NewMessageForTask(a2a.MessageRoleAgent, task, a2a.NewTextPart("Working on task")))
	if err := q.Write(ctx, working); err != nil {
		return fmt.Errorf("failed to write working update: %w", err)
	}

	completed := a2a.NewStatusUpdateEvent(task, a2a.TaskStateCompleted,
		a2a.NewMessageForTask(a2a.MessageRoleAgent, task, a2a.NewTextPart("Task completed")))
	completed.Final = true
	if err := q.Write(ctx, completed); err != nil {
		return fmt.Errorf("failed to write completed update: %w", err)
	}
	return nil
}

// doCancelableTask submits a task and leaves it open for a later out-of-band cancelation.
func (e *Executor) doCancelableTask(ctx context.Context, reqCtx *a2asrv.RequestContext, q eventqueue.Queue) error {
	task := a2a.NewSubmittedTask(reqCtx, reqCtx.Message)
	if err := q.Write(ctx, task); err != nil {
		return fmt.Errorf("failed to write submitted task: %w", err)
	}
	return nil
}

// doLongRunningTask submits a task and emits progress updates separated by a
// cooperative real-time pause. The task is intentionally never finalized so
// clients can exercise their own timeout and cancelation handling.
func (e *Executor) doLongRunningTask(ctx context.Context, reqCtx *a2asrv.RequestContext, q eventqueue.Queue) error {
	task := a2a.NewSubmittedTask(reqCtx, reqCtx.Message)
	if err := q.Write(ctx, task); err != nil {
		return fmt.Errorf("failed to write submitted task: %w", err)
	}

	for i := range progressSteps {
		if err := e.sleep(ctx, e.stepDelay); err != nil {
			return err
		}

		update := a2a.NewStatusUpdateEvent(task, a2a.TaskStateWorking,
			a2a.NewMessageForTask(a2a.MessageRoleAgent, task, a2a.NewTextPart(fmt.Sprintf("Still working %d", i))))
		if err := q.Write(ctx, update); err != nil {
			return fmt.Errorf("failed to write progress update %d: %w", i, err)
		}
	}
	return nil
}

// apologize emits one plain agent message with no task or context ids attached.
func (e *Executor) apologize(ctx context.Context, q eventqueue.Queue) error {
	msg := a2a.NewMessage(a2a.MessageRoleAgent, a2a.NewTextPart("Sorry, I don't understand you"))
	if err := q.Write(ctx, msg); err != nil {
		return fmt.Errorf("failed to write fallback message: %w", err)
	}
	return nil
}
