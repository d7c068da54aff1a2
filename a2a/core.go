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

// Package a2a defines the lifecycle subset of A2A protocol core types emitted
// and consumed by scripted test agents: messages, tasks, task statuses and
// task status update events.
package a2a

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// TaskInfoProvider provides information about the Task.
type TaskInfoProvider interface {
	// TaskInfo returns information about the task.
	TaskInfo() TaskInfo
}

// TaskInfo represents information about the Task and the group of interactions it belongs to.
// Values might be empty which means the TaskInfoProvider is not associated with any tasks.
// An example would be the first user message.
type TaskInfo struct {
	// TaskID is an id of the task.
	TaskID TaskID
	// ContextID is an id of the interactions group the task belong to.
	ContextID string
}

// TaskInfo implements TaskInfoProvider so that the struct can be passed to core type constructor functions.
// For example: a2a.NewMessageForTask(role, a2a.TaskInfo{...}).
func (ti TaskInfo) TaskInfo() TaskInfo {
	return ti
}

// Event interface is used to represent types an agent executor can emit to an event queue.
type Event interface {
	TaskInfoProvider

	isEvent()
}

func (*Message) isEvent()               {}
func (*Task) isEvent()                  {}
func (*TaskStatusUpdateEvent) isEvent() {}

// StreamResponse is a wrapper around Event with a single field matching the event type name.
// It is used when a wire-shaped representation of an event sequence is needed, for example
// when recorded events are printed or stored as JSON.
type StreamResponse struct {
	// Event is the wrapped event.
	Event
}

// MarshalJSON implements json.Marshaler.
func (sr StreamResponse) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)
	switch v := sr.Event.(type) {
	case *Message:
		m["message"] = v
	case *Task:
		m["task"] = v
	case *TaskStatusUpdateEvent:
		m["statusUpdate"] = v
	default:
		return nil, fmt.Errorf("unknown event type: %T", v)
	}
	return json.Marshal(m)
}

// UnmarshalJSON implements json.Unmarshaler.
func (sr *StreamResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if v, ok := raw["message"]; ok {
		var msg Message
		if err := json.Unmarshal(v, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal Message event: %w", err)
		}
		sr.Event = &msg
	} else if v, ok := raw["task"]; ok {
		var task Task
		if err := json.Unmarshal(v, &task); err != nil {
			return fmt.Errorf("failed to unmarshal Task event: %w", err)
		}
		sr.Event = &task
	} else if v, ok := raw["statusUpdate"]; ok {
		var statusUpdate TaskStatusUpdateEvent
		if err := json.Unmarshal(v, &statusUpdate); err != nil {
			return fmt.Errorf("failed to unmarshal TaskStatusUpdateEvent: %w", err)
		}
		sr.Event = &statusUpdate
	} else {
		return fmt.Errorf("unknown event type: %v", raw)
	}
	return nil
}

// MessageRole represents a set of possible values that identify the message sender.
type MessageRole string

// MessageRole constants.
const (
	// MessageRoleUnspecified is an unspecified message role.
	MessageRoleUnspecified MessageRole = ""
	// MessageRoleAgent is an agent message role.
	MessageRoleAgent MessageRole = "agent"
	// MessageRoleUser is a user message role.
	MessageRoleUser MessageRole = "user"
)

// NewMessageID generates a new random message identifier.
func NewMessageID() string {
	return newUUIDString()
}

var _ Event = (*Message)(nil)

// Message represents a single message in the conversation between a user and an agent.
type Message struct {
	// ID is a unique identifier for the message, typically a UUID, generated by the sender.
	ID string `json:"messageId" yaml:"messageId" mapstructure:"messageId"`

	// ContextID is the context identifier for this message, used to group related interactions.
	// An empty string means the message doesn't reference any context.
	ContextID string `json:"contextId,omitempty" yaml:"contextId,omitempty" mapstructure:"contextId,omitempty"`

	// Metadata is an optional metadata for extensions. The key is an extension-specific identifier.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty" mapstructure:"metadata,omitempty"`

	// Parts is an array of content parts that form the message body.
	Parts ContentParts `json:"parts" yaml:"parts" mapstructure:"parts"`

	// Role identifies the sender of the message.
	Role MessageRole `json:"role" yaml:"role" mapstructure:"role"`

	// TaskID is the identifier of the task this message is part of. Can be omitted for the
	// first message of a new task.
	// An empty string means the message doesn't reference any Task.
	TaskID TaskID `json:"taskId,omitempty" yaml:"taskId,omitempty" mapstructure:"taskId,omitempty"`
}

// NewMessage creates a new message with a random identifier.
func NewMessage(role MessageRole, parts ...*Part) *Message {
	return &Message{
		ID:    NewMessageID(),
		Role:  role,
		Parts: parts,
	}
}

// NewMessageForTask creates a new message with a random identifier that references the provided Task.
func NewMessageForTask(role MessageRole, infoProvider TaskInfoProvider, parts ...*Part) *Message {
	taskInfo := infoProvider.TaskInfo()
	return &Message{
		ID:        NewMessageID(),
		Role:      role,
		TaskID:    taskInfo.TaskID,
		ContextID: taskInfo.ContextID,
		Parts:     parts,
	}
}

// TaskInfo implements TaskInfoProvider.
func (m *Message) TaskInfo() TaskInfo {
	return TaskInfo{TaskID: m.TaskID, ContextID: m.ContextID}
}

// TaskID is a unique identifier for the task, generated by the server for a new task.
type TaskID string

// NewTaskID generates a new random task identifier.
func NewTaskID() TaskID {
	return TaskID(newUUIDString())
}

// NewContextID generates a new random context identifier.
func NewContextID() string {
	return newUUIDString()
}

// TaskState defines a set of possible task states.
type TaskState string

const (
	// TaskStateUnspecified represents a missing TaskState value.
	TaskStateUnspecified TaskState = ""
	// TaskStateCanceled means the task has been canceled by the user.
	TaskStateCanceled TaskState = "CANCELED"
	// TaskStateCompleted means the task has been successfully completed.
	TaskStateCompleted TaskState = "COMPLETED"
	// TaskStateFailed means the task failed due to an error during execution.
	TaskStateFailed TaskState = "FAILED"
	// TaskStateInputRequired means the task is paused and waiting for input from the user.
	TaskStateInputRequired TaskState = "INPUT_REQUIRED"
	// TaskStateRejected means the task was rejected by the agent and was not started.
	TaskStateRejected TaskState = "REJECTED"
	// TaskStateSubmitted means the task has been submitted and is awaiting execution.
	TaskStateSubmitted TaskState = "SUBMITTED"
	// TaskStateUnknown means the task is in an unknown or indeterminate state.
	TaskStateUnknown TaskState = "UNKNOWN"
	// TaskStateWorking means the agent is actively working on the task.
	TaskStateWorking TaskState = "WORKING"
)

// Terminal returns true for states in which a Task becomes immutable, i.e. no further
// changes to the Task are permitted.
func (ts TaskState) Terminal() bool {
	return ts == TaskStateCompleted ||
		ts == TaskStateCanceled ||
		ts == TaskStateFailed ||
		ts == TaskStateRejected
}

var _ Event = (*Task)(nil)

// Task represents a single, stateful operation or conversation between a client and an agent.
type Task struct {
	// ID is a unique identifier for the task, generated by the server for a new task.
	ID TaskID `json:"id" yaml:"id" mapstructure:"id"`

	// ContextID is a server-generated identifier for maintaining context across multiple related
	// tasks or interactions. Required to be non empty.
	ContextID string `json:"contextId" yaml:"contextId" mapstructure:"contextId"`

	// History is an array of messages exchanged during the task, representing the conversation history.
	History []*Message `json:"history,omitempty" yaml:"history,omitempty" mapstructure:"history,omitempty"`

	// Metadata is an optional metadata for extensions. The key is an extension-specific identifier.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty" mapstructure:"metadata,omitempty"`

	// Status is the current status of the task, including its state and a descriptive message.
	Status TaskStatus `json:"status" yaml:"status" mapstructure:"status"`
}

// NewSubmittedTask is a utility for creating a Task in submitted state from the initial Message.
// New values are generated for task and context id when they are missing. The status carries
// a UTC wall-clock timestamp taken at construction time.
func NewSubmittedTask(infoProvider TaskInfoProvider, initialMessage *Message) *Task {
	taskInfo := infoProvider.TaskInfo()
	taskID := taskInfo.TaskID
	if taskID == "" {
		taskID = NewTaskID()
	}
	contextID := taskInfo.ContextID
	if contextID == "" {
		contextID = NewContextID()
	}
	now := time.Now().UTC()
	return &Task{
		ID:        taskID,
		ContextID: contextID,
		Status:    TaskStatus{State: TaskStateSubmitted, Timestamp: &now},
		History:   []*Message{initialMessage},
	}
}

// TaskStatus represents the status of a task at a specific point in time.
type TaskStatus struct {
	// Message is an optional, human-readable message providing more details about the current status.
	Message *Message `json:"message,omitempty" yaml:"message,omitempty" mapstructure:"message,omitempty"`

	// State is the current state of the task's lifecycle.
	State TaskState `json:"state" yaml:"state" mapstructure:"state"`

	// Timestamp is a datetime indicating when this status was recorded.
	Timestamp *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty" mapstructure:"timestamp,omitempty"`
}

// TaskInfo implements TaskInfoProvider.
func (t *Task) TaskInfo() TaskInfo {
	return TaskInfo{TaskID: t.ID, ContextID: t.ContextID}
}

var _ Event = (*TaskStatusUpdateEvent)(nil)

// TaskStatusUpdateEvent is an event sent by the agent to notify the client of a change
// in a task's status. This is typically used in streaming or subscription models.
type TaskStatusUpdateEvent struct {
	// ContextID is the context ID associated with the task. Required to be non-empty.
	ContextID string `json:"contextId" yaml:"contextId" mapstructure:"contextId"`

	// Final indicates this is the terminal status update for the task. No further updates
	// are expected after an event with Final set to true.
	Final bool `json:"final,omitempty" yaml:"final,omitempty" mapstructure:"final,omitempty"`

	// Status is the new status of the task.
	Status TaskStatus `json:"status" yaml:"status" mapstructure:"status"`

	// TaskID is the ID of the task that was updated.
	TaskID TaskID `json:"taskId" yaml:"taskId" mapstructure:"taskId"`

	// Metadata is an optional metadata for extensions.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty" mapstructure:"metadata,omitempty"`
}

// NewStatusUpdateEvent creates a TaskStatusUpdateEvent that references the provided Task.
// The status carries a UTC wall-clock timestamp taken at construction time.
func NewStatusUpdateEvent(infoProvider TaskInfoProvider, state TaskState, msg *Message) *TaskStatusUpdateEvent {
	now := time.Now().UTC()
	taskInfo := infoProvider.TaskInfo()
	return &TaskStatusUpdateEvent{
		ContextID: taskInfo.ContextID,
		TaskID:    taskInfo.TaskID,
		Status: TaskStatus{
			State:     state,
			Message:   msg,
			Timestamp: &now,
		},
	}
}

// TaskInfo implements TaskInfoProvider.
func (e *TaskStatusUpdateEvent) TaskInfo() TaskInfo {
	return TaskInfo{TaskID: e.TaskID, ContextID: e.ContextID}
}

// ContentParts is an array of content parts that form the message body.
type ContentParts []*Part

// MarshalJSON implements json.Marshaler.
func (j ContentParts) MarshalJSON() ([]byte, error) {
	return json.Marshal([]*Part(j))
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *ContentParts) UnmarshalJSON(b []byte) error {
	var parts []*Part
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	*j = ContentParts(parts)
	return nil
}

// Part is a discriminated union representing a part of a message, which can be
// text or structured data.
type Part struct {
	// Types that are valid to be assigned to Content are [Text] and [Data].
	Content PartContent `json:"content" yaml:"content" mapstructure:"content"`

	// MediaType is the media type of the part content (e.g. "text/plain", "application/json").
	MediaType string `json:"mediaType,omitempty" yaml:"mediaType,omitempty" mapstructure:"mediaType,omitempty"`

	// Metadata is the optional metadata associated with this part.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty" mapstructure:"metadata,omitempty"`
}

// NewTextPart creates a Part that contains text.
func NewTextPart(text string) *Part {
	return &Part{Content: Text(text)}
}

// NewDataPart creates a Part that contains structured data.
func NewDataPart(data any) *Part {
	return &Part{Content: Data{Value: data}}
}

// Text is a helper that returns the text content of the part if it is a Text part.
func (p *Part) Text() string {
	if v, ok := p.Content.(Text); ok {
		return string(v)
	}
	return ""
}

// Data is a helper that returns the data content of the part if it is a Data part.
func (p *Part) Data() any {
	if v, ok := p.Content.(Data); ok {
		return v.Value
	}
	return nil
}

// PartContent is a sealed discriminated type union for supported part content types.
// It exists to specify which types can be assigned to the [Part.Content] field.
type PartContent interface {
	isPartContent()
}

func (Text) isPartContent() {}
func (Data) isPartContent() {}

func init() {
	gob.Register(Text(""))
	gob.Register(Data{})
	gob.Register(map[string]any{})
	gob.Register([]any{})
}

// Text represents content of a Part carrying text.
type Text string

// Data represents content of a Part carrying structured data.
type Data struct {
	Value any
}

// MarshalJSON custom serializer that flattens Content into the Part object.
func (p Part) MarshalJSON() ([]byte, error) {
	m := make(map[string]any)

	switch v := p.Content.(type) {
	case Text:
		m["text"] = string(v)
	case Data:
		m["data"] = v.Value
	}

	if p.MediaType != "" {
		m["mediaType"] = p.MediaType
	}

	maps.Copy(m, p.Metadata)

	return json.Marshal(m)
}

// UnmarshalJSON custom deserializer that hydrates Content from flattened fields.
func (p *Part) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	if v, ok := raw["text"].(string); ok {
		p.Content = Text(v)
		delete(raw, "text")
	} else if v, ok := raw["data"]; ok {
		p.Content = Data{Value: v}
		delete(raw, "data")
	}

	if mediaType, ok := raw["mediaType"].(string); ok {
		p.MediaType = mediaType
		delete(raw, "mediaType")
	}
	if len(raw) > 0 {
		p.Metadata = make(map[string]any)
		for k, v := range raw {
			p.Metadata[k] = v
		}
	}
	return nil
}

// Time-based UUID generally improves index update performance if ID field is indexed in a persistent store.
func newUUIDString() string {
	return uuid.Must(uuid.NewV7()).String()
}
