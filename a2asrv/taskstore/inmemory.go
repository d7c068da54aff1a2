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

package taskstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/a2akit/scriptedagent/a2a"
	"github.com/a2akit/scriptedagent/internal/utils"
)

type storedTask struct {
	task        *a2a.Task
	version     TaskVersion
	lastUpdated time.Time
}

// InMemoryStoreConfig is a configuration for [InMemory] store.
type InMemoryStoreConfig struct {
	// TimeProvider overrides the clock used for update timestamps. Defaults to time.Now.
	TimeProvider func() time.Time
}

// InMemory is an implementation of [Store] which stores tasks in memory.
// This means that store contents do not survive process restarts.
type InMemory struct {
	mu    sync.RWMutex
	tasks map[a2a.TaskID]*storedTask

	config InMemoryStoreConfig
}

var _ Store = (*InMemory)(nil)

// NewInMemory creates an empty [InMemory] store.
func NewInMemory(config *InMemoryStoreConfig) *InMemory {
	m := &InMemory{tasks: make(map[a2a.TaskID]*storedTask)}

	if config != nil {
		m.config = *config
	}

	if m.config.TimeProvider == nil {
		m.config.TimeProvider = time.Now
	}

	return m
}

// Create implements [Store] interface.
func (s *InMemory) Create(ctx context.Context, task *a2a.Task) (TaskVersion, error) {
	if err := validateTask(task); err != nil {
		return TaskVersionMissing, err
	}

	copy, err := utils.DeepCopy(task)
	if err != nil {
		return TaskVersionMissing, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if stored := s.tasks[task.ID]; stored != nil {
		return TaskVersionMissing, ErrTaskAlreadyExists
	}

	version := TaskVersion(1)
	s.tasks[task.ID] = &storedTask{
		task:        copy,
		version:     version,
		lastUpdated: s.config.TimeProvider(),
	}
	return version, nil
}

// Update implements [Store] interface.
func (s *InMemory) Update(ctx context.Context, req *UpdateRequest) (TaskVersion, error) {
	if err := validateTask(req.Task); err != nil {
		return TaskVersionMissing, err
	}

	copy, err := utils.DeepCopy(req.Task)
	if err != nil {
		return TaskVersionMissing, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.tasks[req.Task.ID]
	if stored == nil {
		return TaskVersionMissing, a2a.ErrTaskNotFound
	}

	if req.PrevVersion != TaskVersionMissing && stored.version != req.PrevVersion {
		return TaskVersionMissing, ErrConcurrentModification
	}

	version := stored.version + 1
	s.tasks[req.Task.ID] = &storedTask{
		task:        copy,
		version:     version,
		lastUpdated: s.config.TimeProvider(),
	}
	return version, nil
}

// Get implements [Store] interface.
func (s *InMemory) Get(ctx context.Context, taskID a2a.TaskID) (*StoredTask, error) {
	s.mu.RLock()
	stored, ok := s.tasks[taskID]
	s.mu.RUnlock()

	if !ok {
		return nil, a2a.ErrTaskNotFound
	}

	task, err := utils.DeepCopy(stored.task)
	if err != nil {
		return nil, fmt.Errorf("task copy failed: %w", err)
	}

	return &StoredTask{Task: task, Version: stored.version}, nil
}

func validateTask(task *a2a.Task) error {
	if task == nil {
		return fmt.Errorf("task must not be nil")
	}
	if task.ID == "" {
		return fmt.Errorf("task id must not be empty")
	}
	if task.ContextID == "" {
		return fmt.Errorf("task context id must not be empty")
	}
	return nil
}
