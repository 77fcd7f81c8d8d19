package store

import (
	"errors"
	"testing"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

func TestAssignID(t *testing.T) {
	var rec project.Record
	if err := AssignID(&rec); err != nil || rec.ID == "" {
		t.Fatalf("AssignID on empty id: %q, %v", rec.ID, err)
	}

	rec = project.Record{ID: " 6BA7B810-9DAD-11D1-80B4-00C04FD430C8 "}
	if err := AssignID(&rec); err != nil {
		t.Fatalf("AssignID: %v", err)
	}
	if rec.ID != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("id not normalized: %q", rec.ID)
	}

	rec = project.Record{ID: "project-7"}
	if err := AssignID(&rec); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestNewIDUnique(t *testing.T) {
	if NewID() == NewID() {
		t.Error("ids should be unique")
	}
}
