package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  TaskStatus
		ok    bool
	}{
		{"lowercase", "to-do", StatusToDo, true},
		{"uppercase", "DONE", StatusDone, true},
		{"mixed case with space", "In Progress", StatusInProgress, true},
		{"blocked", "blocked", StatusBlocked, true},
		{"surrounding whitespace", "  done  ", StatusDone, true},
		{"unknown value", "cancelled", "", false},
		{"empty", "", "", false},
		{"partial match", "to-d", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeStatus(tt.input)
			if ok != tt.ok {
				t.Fatalf("NormalizeStatus(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Fatalf("NormalizeStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyStatusTransition_EnterDone(t *testing.T) {
	actor := uuid.New()
	now := time.Now().UTC()

	task := Task{ID: uuid.New(), Title: "Ship release", Status: StatusToDo}
	ApplyStatusTransition(&task, StatusDone, actor, now)

	if task.Status != StatusDone {
		t.Fatalf("status = %q, want %q", task.Status, StatusDone)
	}
	if task.FinishedAt == nil || !task.FinishedAt.Equal(now) {
		t.Fatalf("FinishedAt = %v, want %v", task.FinishedAt, now)
	}
	if task.FinishedBy == nil || *task.FinishedBy != actor {
		t.Fatalf("FinishedBy = %v, want %v", task.FinishedBy, actor)
	}
}

func TestApplyStatusTransition_FirstCompleterWins(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	start := time.Now().UTC()

	task := Task{ID: uuid.New(), Title: "Ship release"}
	ApplyStatusTransition(&task, StatusDone, first, start)

	// Re-saving while already done must not reassign credit.
	later := start.Add(time.Hour)
	ApplyStatusTransition(&task, StatusDone, second, later)

	if *task.FinishedBy != first {
		t.Fatalf("FinishedBy = %v, want first completer %v", *task.FinishedBy, first)
	}
	if !task.FinishedAt.Equal(start) {
		t.Fatalf("FinishedAt = %v, want original %v", task.FinishedAt, start)
	}
}

func TestApplyStatusTransition_LeavingDoneClearsBoth(t *testing.T) {
	actor := uuid.New()
	now := time.Now().UTC()

	task := Task{ID: uuid.New(), Title: "Ship release"}
	ApplyStatusTransition(&task, StatusDone, actor, now)
	ApplyStatusTransition(&task, StatusBlocked, actor, now.Add(time.Minute))

	if task.Status != StatusBlocked {
		t.Fatalf("status = %q, want %q", task.Status, StatusBlocked)
	}
	if task.FinishedAt != nil || task.FinishedBy != nil {
		t.Fatalf("expected cleared completion fields, got FinishedAt=%v FinishedBy=%v", task.FinishedAt, task.FinishedBy)
	}
}

func TestApplyStatusTransition_ReenterDoneAssignsNewFinisher(t *testing.T) {
	first := uuid.New()
	admin := uuid.New()
	now := time.Now().UTC()

	task := Task{ID: uuid.New(), Title: "Ship release"}
	ApplyStatusTransition(&task, StatusDone, first, now)
	ApplyStatusTransition(&task, StatusBlocked, admin, now.Add(time.Minute))
	ApplyStatusTransition(&task, StatusDone, admin, now.Add(2*time.Minute))

	if *task.FinishedBy != admin {
		t.Fatalf("FinishedBy = %v, want %v after re-entering done", *task.FinishedBy, admin)
	}
}

func TestApplyStatusTransition_DoneIffFinishedAt(t *testing.T) {
	actor := uuid.New()
	now := time.Now().UTC()
	task := Task{ID: uuid.New(), Title: "Ship release"}

	for _, status := range TaskStatuses {
		ApplyStatusTransition(&task, status, actor, now)
		if task.Done() != (task.FinishedAt != nil) {
			t.Fatalf("status %q: done=%v but FinishedAt=%v", status, task.Done(), task.FinishedAt)
		}
		if !task.Done() && task.FinishedBy != nil {
			t.Fatalf("status %q: FinishedBy set while not done", status)
		}
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAdmin.Valid() {
		t.Fatal("expected user and admin to be valid roles")
	}
	if Role("superuser").Valid() || Role("").Valid() {
		t.Fatal("expected unknown roles to be invalid")
	}
}
