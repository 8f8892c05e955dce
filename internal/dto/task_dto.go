package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/ahmetcoskunkizilkaya/taskboard-backend/internal/models"
	"github.com/google/uuid"
)

var jsonNull = []byte("null")

// OptionalUUID distinguishes an absent JSON field from an explicit null.
// Set is true whenever the field appeared in the request body; Value is nil
// for an explicit null.
type OptionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Value = nil
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

func (o OptionalUUID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Status      string     `json:"status"`
}

// UpdateTaskRequest carries a partial patch. Empty title/description mean
// "leave unchanged"; AssignedTo is tri-state (absent, null, id).
type UpdateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	AssignedTo  OptionalUUID `json:"assigned_to"`
}

// TaskResponse is a task joined with the identity summaries of its assignee
// and finisher.
type TaskResponse struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Assignee    *UserSummary      `json:"assigned_to"`
	FinishedAt  *time.Time        `json:"finished_at"`
	Finisher    *UserSummary      `json:"finished_by"`
	CreatedAt   time.Time         `json:"created_at"`
}

func NewTaskResponse(t *models.Task, assignee, finisher *models.User) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Assignee:    NewUserSummary(assignee),
		FinishedAt:  t.FinishedAt,
		Finisher:    NewUserSummary(finisher),
		CreatedAt:   t.CreatedAt,
	}
}

type TaskEnvelope struct {
	Task TaskResponse `json:"task"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

type DeletedTaskResponse struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}
