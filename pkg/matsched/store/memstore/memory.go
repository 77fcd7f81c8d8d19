package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/project"
	"github.com/cognicore/matsched/pkg/matsched/store"
)

type entry struct {
	name    string
	payload []byte
	updated time.Time
}

// Store is an in-memory implementation of store.RecordSource for tests.
// Records are kept as JSON so callers never share state with the store.
type Store struct {
	mu      sync.RWMutex
	records map[string]entry
	now     func() time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{records: make(map[string]entry), now: time.Now}
}

// Close implements store.RecordSource.
func (s *Store) Close() error { return nil }

// Get implements store.RecordSource.
func (s *Store) Get(ctx context.Context, id string) (project.Record, error) {
	key, err := store.NormalizeID(id)
	if err != nil {
		return project.Record{}, err
	}
	s.mu.RLock()
	e, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return project.Record{}, fmt.Errorf("record %s: %w", key, internalerr.ErrNotFound)
	}
	return project.Decode(e.payload)
}

// List implements store.RecordSource, ordered by id.
func (s *Store) List(ctx context.Context) ([]store.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]store.Summary, 0, len(s.records))
	for id, e := range s.records {
		out = append(out, store.Summary{ID: id, Name: e.name, UpdatedAt: e.updated})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Put implements store.RecordSource.
func (s *Store) Put(ctx context.Context, rec project.Record) (string, error) {
	if err := store.AssignID(&rec); err != nil {
		return "", err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	s.mu.Lock()
	s.records[rec.ID] = entry{name: rec.Name, payload: payload, updated: s.now().UTC()}
	s.mu.Unlock()
	return rec.ID, nil
}
