package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the closed set of task states. Input is matched
// case-insensitively and stored in this normalized form.
type TaskStatus string

const (
	StatusToDo       TaskStatus = "to-do"
	StatusInProgress TaskStatus = "in progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists every valid status, in lifecycle order.
var TaskStatuses = []TaskStatus{StatusToDo, StatusInProgress, StatusBlocked, StatusDone}

// NormalizeStatus lowercases and trims raw input and reports whether it
// names a valid status.
func NormalizeStatus(raw string) (TaskStatus, bool) {
	s := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, valid := range TaskStatuses {
		if s == valid {
			return s, true
		}
	}
	return "", false
}

// Task is a unit of work. AssignedTo and FinishedBy are weak references to
// User IDs; deleting a user nulls AssignedTo on their tasks. Tasks carry a
// creation timestamp only.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"size:20;not null;default:'to-do'" json:"status"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to"`
	FinishedAt  *time.Time `json:"finished_at"`
	FinishedBy  *uuid.UUID `gorm:"type:uuid" json:"finished_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Done reports whether the task is in the done state.
func (t *Task) Done() bool {
	return t.Status == StatusDone
}

// ApplyStatusTransition moves t to newStatus and maintains the derived
// completion fields: entering done stamps FinishedAt and credits the actor
// as FinishedBy unless someone already holds the credit; any status other
// than done clears both fields.
func ApplyStatusTransition(t *Task, newStatus TaskStatus, actorID uuid.UUID, now time.Time) {
	t.Status = newStatus
	if newStatus == StatusDone {
		if t.FinishedAt == nil {
			t.FinishedAt = &now
		}
		if t.FinishedBy == nil {
			id := actorID
			t.FinishedBy = &id
		}
		return
	}
	t.FinishedAt = nil
	t.FinishedBy = nil
}
