// File path: internal/sqlite/store_test.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := Config{Path: filepath.Join(t.TempDir(), "catalog.db")}
	cfg.applyDefaults()
	store, err := OpenWithConfig(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordStartAndFetch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.RecordStart(ctx, "Hydra Serum", []string{"description", "faq"}, "data/inputs/input_hydra.json")
	if err != nil {
		t.Fatalf("record start: %v", err)
	}
	run, err := store.RunByID(ctx, id)
	if err != nil {
		t.Fatalf("run by id: %v", err)
	}
	if run.ProductName != "Hydra Serum" || run.Status != StatusRunning {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Operations != "description,faq" {
		t.Fatalf("unexpected operations %q", run.Operations)
	}
}

func TestRecordFinishOutcomes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	okID, err := store.RecordStart(ctx, "Serum A", []string{"faq"}, "")
	if err != nil {
		t.Fatalf("record start: %v", err)
	}
	if err := store.RecordFinish(ctx, okID, nil, "data/outputs/output_a.json", 1250); err != nil {
		t.Fatalf("record finish: %v", err)
	}
	run, err := store.RunByID(ctx, okID)
	if err != nil {
		t.Fatalf("run by id: %v", err)
	}
	if run.Status != StatusCompleted || run.OutputPath != "data/outputs/output_a.json" || run.DurationMS != 1250 {
		t.Fatalf("unexpected completed run: %+v", run)
	}

	failID, err := store.RecordStart(ctx, "Serum B", []string{"faq"}, "")
	if err != nil {
		t.Fatalf("record start: %v", err)
	}
	if err := store.RecordFinish(ctx, failID, errors.New("model unavailable"), "", 90); err != nil {
		t.Fatalf("record finish: %v", err)
	}
	failed, err := store.RunByID(ctx, failID)
	if err != nil {
		t.Fatalf("run by id: %v", err)
	}
	if failed.Status != StatusFailed || failed.Error != "model unavailable" {
		t.Fatalf("unexpected failed run: %+v", failed)
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		if _, err := store.RecordStart(ctx, name, []string{"faq"}, ""); err != nil {
			t.Fatalf("record start %s: %v", name, err)
		}
	}
	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ProductName != "Third" || runs[1].ProductName != "Second" {
		t.Fatalf("unexpected order: %+v", runs)
	}
}

func TestRunsByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doneID, err := store.RecordStart(ctx, "Done", []string{"faq"}, "")
	if err != nil {
		t.Fatalf("record start: %v", err)
	}
	if err := store.RecordFinish(ctx, doneID, nil, "", 10); err != nil {
		t.Fatalf("record finish: %v", err)
	}
	if _, err := store.RecordStart(ctx, "Pending", []string{"faq"}, ""); err != nil {
		t.Fatalf("record start: %v", err)
	}

	completed, err := store.RunsByStatus(ctx, StatusCompleted, 10)
	if err != nil {
		t.Fatalf("runs by status: %v", err)
	}
	if len(completed) != 1 || completed[0].ProductName != "Done" {
		t.Fatalf("unexpected completed runs: %+v", completed)
	}
}

func TestAuditTrail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.RecordStart(ctx, "Audited", []string{"description"}, "")
	if err != nil {
		t.Fatalf("record start: %v", err)
	}
	if err := store.RecordFinish(ctx, id, errors.New("boom"), "", 5); err != nil {
		t.Fatalf("record finish: %v", err)
	}
	rows, err := store.AuditForRun(ctx, id)
	if err != nil {
		t.Fatalf("audit for run: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(rows))
	}
	if rows[0].Action != "run_started" || rows[1].Action != "run_failed" {
		t.Fatalf("unexpected audit actions: %+v", rows)
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.RunByID(context.Background(), 999); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}
