package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

func TestOptionalUUID_Absent(t *testing.T) {
	var req UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"title":"x"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.AssignedTo.Set {
		t.Fatal("absent field should not be marked as set")
	}
}

func TestOptionalUUID_ExplicitNull(t *testing.T) {
	var req UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"assigned_to":null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.AssignedTo.Set {
		t.Fatal("explicit null should be marked as set")
	}
	if req.AssignedTo.Value != nil {
		t.Fatalf("explicit null should have nil value, got %v", req.AssignedTo.Value)
	}
}

func TestOptionalUUID_Value(t *testing.T) {
	id := uuid.New()
	var req UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"assigned_to":"`+id.String()+`"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !req.AssignedTo.Set || req.AssignedTo.Value == nil {
		t.Fatal("expected set field with value")
	}
	if *req.AssignedTo.Value != id {
		t.Fatalf("value = %v, want %v", *req.AssignedTo.Value, id)
	}
}

func TestOptionalUUID_Malformed(t *testing.T) {
	var req UpdateTaskRequest
	if err := json.Unmarshal([]byte(`{"assigned_to":"not-a-uuid"}`), &req); err == nil {
		t.Fatal("expected error for malformed uuid")
	}
}
