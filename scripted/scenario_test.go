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
	"testing"

	"github.com/a2akit/scriptedagent/a2a"
)

func TestResolveScenario(t *testing.T) {
	testCases := []struct {
		input string
		want  Scenario
	}{
		{"hello world", ScenarioGreeting},
		{"do task", ScenarioShortTask},
		{"do cancelable task", ScenarioCancelableTask},
		{"do long-running task", ScenarioLongRunningTask},
		{"", ScenarioUnknown},
		{"xyz", ScenarioUnknown},
		// matching is exact and case-sensitive
		{"Hello World", ScenarioUnknown},
		{"do task ", ScenarioUnknown},
		{"DO TASK", ScenarioUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.NewTextPart(tc.input))
			if got := ResolveScenario(msg); got != tc.want {
				t.Errorf("ResolveScenario(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestResolveScenarioNilMessage(t *testing.T) {
	if got := ResolveScenario(nil); got != ScenarioUnknown {
		t.Errorf("ResolveScenario(nil) = %v, want ScenarioUnknown", got)
	}
}

func TestResolveScenarioMultipleTextParts(t *testing.T) {
	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.NewTextPart("do "), a2a.NewTextPart("task"))
	if got := ResolveScenario(msg); got != ScenarioShortTask {
		t.Errorf("ResolveScenario() = %v, want ScenarioShortTask", got)
	}
}

func TestScenarioString(t *testing.T) {
	testCases := []struct {
		scenario Scenario
		want     string
	}{
		{ScenarioGreeting, "greeting"},
		{ScenarioShortTask, "short-task"},
		{ScenarioCancelableTask, "cancelable-task"},
		{ScenarioLongRunningTask, "long-running-task"},
		{ScenarioUnknown, "unknown"},
	}

	for _, tc := range testCases {
		if got := tc.scenario.String(); got != tc.want {
			t.Errorf("Scenario.String() = %q, want %q", got, tc.want)
		}
	}
}
