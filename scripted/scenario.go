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

// Package scripted provides a deterministic [a2asrv.AgentExecutor] used to
// exercise A2A server event-queue and task-lifecycle plumbing. Each supported
// input selects one canned behavior emitting a fixed lifecycle event sequence.
package scripted

import (
	"github.com/a2akit/scriptedagent/a2a"
)

// Scenario identifies one of the canned behaviors the executor can play.
type Scenario int

const (
	// ScenarioUnknown is played for any input that is not a known trigger phrase.
	ScenarioUnknown Scenario = iota
	// ScenarioGreeting replies with a single plain message and no task.
	ScenarioGreeting
	// ScenarioShortTask runs a task from submitted to completed synchronously.
	ScenarioShortTask
	// ScenarioCancelableTask submits a task and leaves it open for an
	// out-of-band cancelation.
	ScenarioCancelableTask
	// ScenarioLongRunningTask submits a task and emits periodic progress
	// updates without ever finalizing it.
	ScenarioLongRunningTask
)

// String returns a human-readable scenario name.
func (s Scenario) String() string {
	switch s {
	case ScenarioGreeting:
		return "greeting"
	case ScenarioShortTask:
		return "short-task"
	case ScenarioCancelableTask:
		return "cancelable-task"
	case ScenarioLongRunningTask:
		return "long-running-task"
	default:
		return "unknown"
	}
}

// Trigger phrases are matched exactly and case-sensitively against the text of
// the first message part.
var scenarioByInput = map[string]Scenario{
	"hello world":          ScenarioGreeting,
	"do task":              ScenarioShortTask,
	"do cancelable task":   ScenarioCancelableTask,
	"do long-running task": ScenarioLongRunningTask,
}

// ResolveScenario maps an inbound message to the scenario it triggers.
// Unrecognized input, including an empty message, resolves to [ScenarioUnknown].
func ResolveScenario(msg *a2a.Message) Scenario {
	return scenarioByInput[userInput(msg)]
}

// userInput extracts the text the scenario dispatch matches against: the
// concatenated text parts of the message.
func userInput(msg *a2a.Message) string {
	if msg == nil {
		return ""
	}
	var text string
	for _, part := range msg.Parts {
		text += part.Text()
	}
	return text
}
