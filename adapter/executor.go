package adapter

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks

// Executor is the subset of *sql.DB the adapter needs
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
