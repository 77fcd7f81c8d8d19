// Package store persists project records for the CLI. Schedules are always
// rebuilt from records and never stored.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/project"
)

// RecordSource is the interface for reading and saving project records.
type RecordSource interface {
	Close() error

	// Get returns internalerr.ErrNotFound when no record has the id.
	Get(ctx context.Context, id string) (project.Record, error)
	List(ctx context.Context) ([]Summary, error)
	// Put saves rec, minting an id when rec.ID is empty, and returns the id.
	Put(ctx context.Context, rec project.Record) (string, error)
}

// Summary is a record listing entry.
type Summary struct {
	ID        string
	Name      string
	UpdatedAt time.Time
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}

// NormalizeID parses id as a UUID and returns its canonical form.
func NormalizeID(id string) (string, error) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("%w: record id %q: %v", internalerr.ErrInvalidInput, id, err)
	}
	return u.String(), nil
}

// AssignID fills rec.ID when empty and normalizes it otherwise.
func AssignID(rec *project.Record) error {
	if strings.TrimSpace(rec.ID) == "" {
		rec.ID = NewID()
		return nil
	}
	id, err := NormalizeID(rec.ID)
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}
