// File path: internal/sqlite/types.go
package sqlite

import "time"

// Run statuses recorded in the catalog.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run represents one pipeline execution row.
type Run struct {
	ID          int64     `db:"id"`
	ProductName string    `db:"product_name"`
	Operations  string    `db:"operations"`
	Status      string    `db:"status"`
	Error       string    `db:"error"`
	InputPath   string    `db:"input_path"`
	OutputPath  string    `db:"output_path"`
	DurationMS  int64     `db:"duration_ms"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// AuditRow represents a run lifecycle event.
type AuditRow struct {
	ID        int64     `db:"id"`
	RunID     *int64    `db:"run_id"`
	Action    string    `db:"action"`
	Detail    string    `db:"detail"`
	CreatedAt time.Time `db:"created_at"`
}
