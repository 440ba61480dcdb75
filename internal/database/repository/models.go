package repository

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx so repositories can join a
// caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Setting represents a settings row.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Change represents a setting_changes row.
type Change struct {
	ID        string
	Key       string
	OldValue  string
	NewValue  string
	ChangedAt time.Time
}
