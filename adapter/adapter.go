// Package adapter runs dialect-aware schema operations against a live
// database connection.
package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alc6/h2schema/dialect"
)

// ErrExplainUnsupported is returned by Explain for dialects without EXPLAIN support.
var ErrExplainUnsupported = errors.New("explain is not supported by this dialect")

// Config holds the connection-level settings the adapter reads.
type Config struct {
	// Schema scopes table and column listings. Empty means every
	// schema except INFORMATION_SCHEMA.
	Schema string
}

// Index represents a non-primary index
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// ColumnOptions describes a column change.
type ColumnOptions struct {
	Limit     sql.NullInt64
	Precision sql.NullInt64
	Scale     sql.NullInt64

	// Default is applied when HasDefault is set; a nil Default means NULL.
	Default    any
	HasDefault bool

	// Null is applied when valid.
	Null sql.NullBool
}

// includesDefault reports whether a default change was requested. A NOT NULL
// change with a nil default does not count.
func (o ColumnOptions) includesDefault() bool {
	return o.HasDefault && !(o.Null.Valid && !o.Null.Bool && o.Default == nil)
}

// Adapter binds a dialect to an Executor.
type Adapter struct {
	db      Executor
	dialect dialect.Dialect
	schema  string
	logger  *slog.Logger
}

// New creates an adapter. A nil logger uses slog.Default().
func New(db Executor, d dialect.Dialect, cfg Config, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		db:      db,
		dialect: d,
		schema:  cfg.Schema,
		logger:  logger,
	}
}

// Name returns the adapter name reported by the dialect.
func (a *Adapter) Name() string {
	return a.dialect.Name()
}

// Dialect returns the dialect used for type mapping and quoting.
func (a *Adapter) Dialect() dialect.Dialect {
	return a.dialect
}

// Schema returns the configured schema, "" when unset.
func (a *Adapter) Schema() string {
	return a.schema
}

// Execute runs a statement that returns no rows.
func (a *Adapter) Execute(ctx context.Context, stmt string, args ...any) error {
	a.logger.Debug("executing statement", "sql", stmt)
	if _, err := a.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to execute %q: %w", stmt, err)
	}
	return nil
}

// TypeToSQL is a shorthand for the dialect's DDL type emitter.
func (a *Adapter) TypeToSQL(t dialect.Type, opts ColumnOptions) (string, error) {
	return a.dialect.TypeToSQL(t, opts.Limit, opts.Precision, opts.Scale)
}

// Quote renders value as a literal of the adapter's dialect.
func (a *Adapter) Quote(value any) string {
	return a.dialect.Quote(value, nil)
}

// normalizeIdentifier lower-cases names the database folded to upper case.
func normalizeIdentifier(name string) string {
	if name == strings.ToUpper(name) {
		return strings.ToLower(name)
	}
	return name
}
