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
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// registers the "mysql" database/sql driver used by Open
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/a2akit/scriptedagent/a2a"
	"github.com/a2akit/scriptedagent/log"
)

// Schema is the DDL required by [SQL]. The task table holds the latest snapshot
// per task with a version column for optimistic concurrency, the task_event
// table is an append-only journal of the events that produced each version.
const Schema = `
CREATE TABLE IF NOT EXISTS task (
	id VARCHAR(64) PRIMARY KEY,
	state VARCHAR(32) NOT NULL,
	last_updated BIGINT NOT NULL,
	task_json MEDIUMTEXT NOT NULL,
	protocol_version VARCHAR(16) NOT NULL
);
CREATE TABLE IF NOT EXISTS task_event (
	id VARCHAR(64) PRIMARY KEY,
	task_id VARCHAR(64) NOT NULL,
	type VARCHAR(32) NOT NULL,
	task_version BIGINT NOT NULL,
	event_json MEDIUMTEXT NOT NULL,
	INDEX idx_task_event_task_id (task_id)
);
`

// SQL is an implementation of [Store] backed by a relational database.
// Task snapshots are stored as JSON with a version column used for optimistic
// concurrency control, so the store is safe to share between processes.
type SQL struct {
	db      *sql.DB
	version a2a.ProtocolVersion
}

var _ Store = (*SQL)(nil)

// NewSQL creates a [SQL] store on top of an existing database handle.
func NewSQL(db *sql.DB, version a2a.ProtocolVersion) *SQL {
	return &SQL{db: db, version: version}
}

// Open connects to a MySQL database using the provided DSN and returns a [SQL]
// store for it.
func Open(dsn string) (*SQL, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return NewSQL(db, a2a.Version), nil
}

// Create implements [Store] interface.
func (s *SQL) Create(ctx context.Context, task *a2a.Task) (TaskVersion, error) {
	if err := validateTask(task); err != nil {
		return TaskVersionMissing, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskVersionMissing, err
	}
	defer rollbackTx(ctx, tx)

	newVersion := time.Now().UnixNano()

	taskJSON, err := json.Marshal(task)
	if err != nil {
		return TaskVersionMissing, fmt.Errorf("failed to marshal task: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
			INSERT INTO task (id, state, last_updated, task_json, protocol_version)
			VALUES (?, ?, ?, ?, ?)
		`, task.ID, task.Status.State, newVersion, string(taskJSON), s.version)

	if err != nil {
		return TaskVersionMissing, fmt.Errorf("failed to insert task: %w", err)
	}

	if err := s.insertEvent(ctx, tx, task.ID, TaskVersion(newVersion), task); err != nil {
		return TaskVersionMissing, fmt.Errorf("failed to insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return TaskVersionMissing, err
	}

	return TaskVersion(newVersion), nil
}

// Update implements [Store] interface.
func (s *SQL) Update(ctx context.Context, req *UpdateRequest) (TaskVersion, error) {
	if err := validateTask(req.Task); err != nil {
		return TaskVersionMissing, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TaskVersionMissing, err
	}
	defer rollbackTx(ctx, tx)

	task, prevVersion := req.Task, req.PrevVersion
	newVersion := time.Now().UnixNano()
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return TaskVersionMissing, fmt.Errorf("failed to marshal task: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
			UPDATE task SET
				state = ?,
				last_updated = ?,
				task_json = ?
			WHERE id = ? AND last_updated = ?
		`, task.Status.State, newVersion, string(taskJSON), task.ID, int64(prevVersion))

	if err != nil {
		return TaskVersionMissing, fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return TaskVersionMissing, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return TaskVersionMissing, ErrConcurrentModification
	}

	if err := s.insertEvent(ctx, tx, task.ID, TaskVersion(newVersion), req.Event); err != nil {
		return TaskVersionMissing, fmt.Errorf("failed to insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return TaskVersionMissing, err
	}

	return TaskVersion(newVersion), nil
}

// Get implements [Store] interface.
func (s *SQL) Get(ctx context.Context, taskID a2a.TaskID) (*StoredTask, error) {
	var taskJSON, protocolVersion string
	var version int64
	err := s.db.QueryRowContext(ctx, "SELECT task_json, last_updated, protocol_version FROM task WHERE id = ?", taskID).Scan(&taskJSON, &version, &protocolVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, a2a.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	// Rows written by an incompatible module version cannot be interpreted safely.
	if err := a2a.CheckSupported(a2a.ProtocolVersion(protocolVersion)); err != nil {
		return nil, fmt.Errorf("task %q: %w", taskID, err)
	}

	var task a2a.Task
	if err := json.Unmarshal([]byte(taskJSON), &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task: %w", err)
	}

	return &StoredTask{
		Task:    &task,
		Version: TaskVersion(version),
	}, nil
}

func (s *SQL) insertEvent(ctx context.Context, tx *sql.Tx, taskID a2a.TaskID, version TaskVersion, event a2a.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	eventID, eventType := uuid.Must(uuid.NewV7()).String(), getEventType(event)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO task_event (id, task_id, type, task_version, event_json)
		VALUES (?, ?, ?, ?, ?)
	`, eventID, taskID, eventType, version, string(eventJSON))
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

func getEventType(e a2a.Event) string {
	switch e.(type) {
	case *a2a.Message:
		return "message"
	case *a2a.Task:
		return "task"
	case *a2a.TaskStatusUpdateEvent:
		return "status-update"
	default:
		return "unknown"
	}
}

func rollbackTx(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Warn(ctx, "transaction rollback failed", "error", err)
	}
}
