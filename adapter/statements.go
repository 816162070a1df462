package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alc6/h2schema/dialect"
)

// ChangeColumn alters a column's type, then its default and nullability when
// requested. Each step is a separate statement and a failure leaves the
// earlier steps applied.
func (a *Adapter) ChangeColumn(ctx context.Context, table, column string, t dialect.Type, opts ColumnOptions) error {
	sqlType, err := a.TypeToSQL(t, opts)
	if err != nil {
		return fmt.Errorf("failed to change column %s.%s: %w", table, column, err)
	}

	if err := a.Execute(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s", table, column, sqlType)); err != nil {
		return err
	}
	if opts.includesDefault() {
		if err := a.ChangeColumnDefault(ctx, table, column, opts.Default); err != nil {
			return err
		}
	}
	if opts.Null.Valid {
		if err := a.ChangeColumnNull(ctx, table, column, opts.Null.Bool, opts.Default); err != nil {
			return err
		}
	}
	return nil
}

// ChangeColumnDefault sets a column default; a nil value sets DEFAULT NULL.
func (a *Adapter) ChangeColumnDefault(ctx context.Context, table, column string, value any) error {
	return a.Execute(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s", table, column, a.Quote(value)))
}

// ChangeColumnNull toggles a NOT NULL constraint. When forbidding NULL with a
// non-nil default, existing NULL rows are back-filled first so the
// constraint can be applied.
func (a *Adapter) ChangeColumnNull(ctx context.Context, table, column string, null bool, value any) error {
	if !null && value != nil {
		backfill := fmt.Sprintf("UPDATE %s SET %s=%s WHERE %s IS NULL", table, column, a.Quote(value), column)
		if err := a.Execute(ctx, backfill); err != nil {
			return err
		}
	}

	constraint := "SET NOT NULL"
	if null {
		constraint = "SET NULL"
	}
	return a.Execute(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s", table, column, constraint))
}

func (a *Adapter) RenameColumn(ctx context.Context, table, column, newName string) error {
	return a.Execute(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s RENAME TO %s", table, column, newName))
}

func (a *Adapter) RenameTable(ctx context.Context, table, newName string) error {
	return a.Execute(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s", table, newName))
}

func (a *Adapter) RemoveIndex(ctx context.Context, name string) error {
	return a.Execute(ctx, "DROP INDEX "+a.dialect.QuoteColumnName(name))
}

// SupportsExplain reports whether Explain can be used.
func (a *Adapter) SupportsExplain() bool {
	return a.dialect.SupportsExplain()
}

// Explain returns the query plan for query, one line per value of the first
// result row.
func (a *Adapter) Explain(ctx context.Context, query string, args ...any) (string, error) {
	if !a.SupportsExplain() {
		return "", ErrExplainUnsupported
	}

	stmt := "EXPLAIN " + query
	a.logger.Debug("explaining query", "sql", stmt)

	rows, err := a.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return "", fmt.Errorf("failed to explain query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("failed to read explain columns: %w", err)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", fmt.Errorf("failed to explain query: %w", err)
		}
		return "", fmt.Errorf("explain returned no rows")
	}

	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return "", fmt.Errorf("failed to scan explain output: %w", err)
	}

	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = v.String
	}
	return strings.Join(lines, "\n"), nil
}
