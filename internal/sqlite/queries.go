// File path: internal/sqlite/queries.go
package sqlite

import (
	"context"
	"fmt"
	"strings"
)

const defaultListLimit = 50

// RecordStart inserts a new run in the running state and returns its id.
func (s *Store) RecordStart(ctx context.Context, productName string, operations []string, inputPath string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("sqlite store not initialised")
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(product_name, operations, status, error, input_path, output_path, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(productName), strings.Join(operations, ","), StatusRunning, "", inputPath, "", int64(0))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	if err := s.RecordAudit(ctx, id, "run_started", strings.Join(operations, ",")); err != nil {
		return 0, err
	}
	return id, nil
}

// RecordFinish marks a run completed or failed and stores its outcome.
func (s *Store) RecordFinish(ctx context.Context, id int64, runErr error, outputPath string, durationMS int64) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	status := StatusCompleted
	detail := ""
	if runErr != nil {
		status = StatusFailed
		detail = runErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, output_path = ?, duration_ms = ? WHERE id = ?`,
		status, detail, outputPath, durationMS, id)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	action := "run_completed"
	if runErr != nil {
		action = "run_failed"
	}
	return s.RecordAudit(ctx, id, action, detail)
}

// RecordAudit appends a lifecycle event for a run.
func (s *Store) RecordAudit(ctx context.Context, runID int64, action, detail string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store not initialised")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit(run_id, action, detail) VALUES (?, ?, ?)`,
		runID, action, detail)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	runs := []Run{}
	if err := s.db.SelectContext(ctx, &runs, `SELECT * FROM runs ORDER BY id DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	return runs, nil
}

// RunsByStatus returns recent runs filtered by status, newest first.
func (s *Store) RunsByStatus(ctx context.Context, status string, limit int) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	runs := []Run{}
	if err := s.db.SelectContext(ctx, &runs, `SELECT * FROM runs WHERE status = ? ORDER BY id DESC LIMIT ?`, status, limit); err != nil {
		return nil, fmt.Errorf("select runs by status: %w", err)
	}
	return runs, nil
}

// RunByID retrieves a single run. Returns sql.ErrNoRows when absent.
func (s *Store) RunByID(ctx context.Context, id int64) (*Run, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	var run Run
	if err := s.db.GetContext(ctx, &run, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// AuditForRun lists the lifecycle events recorded for a run.
func (s *Store) AuditForRun(ctx context.Context, runID int64) ([]AuditRow, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store not initialised")
	}
	rows := []AuditRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM audit WHERE run_id = ? ORDER BY id`, runID); err != nil {
		return nil, fmt.Errorf("select audit: %w", err)
	}
	return rows, nil
}
