package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cognicore/matsched/pkg/matsched/internalerr"
	"github.com/cognicore/matsched/pkg/matsched/project"
	"github.com/cognicore/matsched/pkg/matsched/store"
)

func openTemp(t *testing.T) (store.RecordSource, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.db")
	st, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st, path
}

func TestSchemaCreationIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open database: %v", err)
	}
	defer db.Close()

	for i := 0; i < 3; i++ {
		if err := initSchema(ctx, db); err != nil {
			t.Fatalf("initSchema iteration %d: %v", i, err)
		}
	}
	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&count)
	if err != nil {
		t.Fatalf("Count tables: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 table, got %d", count)
	}
}

func TestPutGetPersists(t *testing.T) {
	ctx := context.Background()
	st, path := openTemp(t)

	rec, err := project.Decode([]byte(`{
		"name": "Warehouse",
		"boqSections": [{"title": "Slab", "items": [{"description": "Concrete", "category": "Concrete", "quantity": "12.5", "rate": 90}]}],
		"specifications": {"concreteMixRatio": "1:2:4", "includeWastage": true}
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, err := st.Put(ctx, rec)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	st.Close()

	st2, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st2.Close()

	got, err := st2.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	item := got.BOQSections[0].Items[0]
	if got.Name != "Warehouse" || item.Quantity.Value != 12.5 || !item.Rate.Valid {
		t.Errorf("record = %+v", got)
	}
	if got.Specifications == nil || got.Specifications.ConcreteMixRatio != "1:2:4" {
		t.Errorf("specifications = %+v", got.Specifications)
	}
}

func TestGetErrors(t *testing.T) {
	ctx := context.Background()
	st, _ := openTemp(t)
	if _, err := st.Get(ctx, store.NewID()); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := st.Get(ctx, "12"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestListAndUpsert(t *testing.T) {
	ctx := context.Background()
	st, _ := openTemp(t)
	id, err := st.Put(ctx, project.Record{Name: "draft"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := st.Put(ctx, project.Record{ID: id, Name: "final"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	list, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Name != "final" || list[0].UpdatedAt.IsZero() {
		t.Errorf("list = %+v", list)
	}
}
