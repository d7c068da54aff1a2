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

// Package main runs one scripted agent invocation from the command line and
// prints the observed event sequence as JSON lines.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/a2akit/scriptedagent/a2a"
	"github.com/a2akit/scriptedagent/a2asrv/taskstore"
	"github.com/a2akit/scriptedagent/harness"
	"github.com/a2akit/scriptedagent/scripted"
)

var (
	input     = flag.String("input", "hello world", "User input to send to the agent.")
	stepDelay = flag.Duration("step-delay", 0, "Override the pause between long-running progress updates.")
	timeout   = flag.Duration("timeout", 30*time.Second, "Give up on the invocation after this long.")
	cancel    = flag.Bool("cancel", false, "Cancel the produced task after the run completes.")
	storeDSN  = flag.String("store-dsn", "", "MySQL DSN for a shared task store. Defaults to an in-memory store.")
	verbose   = flag.Bool("v", false, "Enable debug logging.")
)

func main() {
	flag.Parse()
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := context.WithTimeout(context.Background(), *timeout)
	defer stop()

	var opts []scripted.Option
	if *stepDelay > 0 {
		opts = append(opts, scripted.WithStepDelay(*stepDelay))
	}

	var runnerOpts []harness.Option
	if *storeDSN != "" {
		store, err := taskstore.Open(*storeDSN)
		if err != nil {
			log.Fatalf("Failed to open task store: %v", err)
		}
		runnerOpts = append(runnerOpts, harness.WithStore(store))
	}
	runner := harness.NewRunner(scripted.NewExecutor(opts...), runnerOpts...)

	msg := a2a.NewMessage(a2a.MessageRoleUser, a2a.NewTextPart(*input))
	result, err := runner.Run(ctx, msg)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	printEvents(result.Events)

	if *cancel {
		if result.Task == nil {
			log.Fatalf("Nothing to cancel: the input %q did not produce a task", *input)
		}
		canceled, err := runner.Cancel(ctx, result.Task.TaskInfo())
		if err != nil {
			log.Fatalf("Cancel failed: %v", err)
		}
		printEvents(canceled.Events)
	}
}

func printEvents(events []a2a.Event) {
	enc := json.NewEncoder(os.Stdout)
	for _, event := range events {
		if err := enc.Encode(a2a.StreamResponse{Event: event}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode event: %v\n", err)
		}
	}
}
