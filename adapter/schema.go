package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alc6/h2schema/dialect"
)

// schemaClause scopes a query on column to the configured schema. next is the
// placeholder index the clause may use.
func (a *Adapter) schemaClause(column string, next int) (string, []any) {
	if a.schema == "" {
		return column + " <> 'INFORMATION_SCHEMA'", nil
	}
	return fmt.Sprintf("UPPER(%s) = UPPER($%d)", column, next), []any{a.schema}
}

// Tables lists base tables in the configured schema.
func (a *Adapter) Tables(ctx context.Context) ([]string, error) {
	clause, args := a.schemaClause("TABLE_SCHEMA", 1)
	query := `
		SELECT TABLE_NAME
		FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_TYPE IN ('TABLE', 'BASE TABLE')
		AND ` + clause + `
		ORDER BY TABLE_NAME
	`

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, normalizeIdentifier(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	a.logger.Debug("listed tables", "schema", a.schema, "count", len(tables))
	return tables, nil
}

// Columns lists the columns of table in ordinal order, normalized by the dialect.
func (a *Adapter) Columns(ctx context.Context, table string) ([]dialect.Column, error) {
	clause, args := a.schemaClause("c.TABLE_SCHEMA", 2)
	query := `
		SELECT
			c.COLUMN_NAME,
			c.TYPE_NAME,
			c.CHARACTER_MAXIMUM_LENGTH,
			c.NUMERIC_PRECISION,
			c.NUMERIC_SCALE,
			c.IS_NULLABLE,
			c.COLUMN_DEFAULT,
			EXISTS (
				SELECT 1 FROM INFORMATION_SCHEMA.INDEXES i
				WHERE i.TABLE_SCHEMA = c.TABLE_SCHEMA
				AND i.TABLE_NAME = c.TABLE_NAME
				AND i.COLUMN_NAME = c.COLUMN_NAME
				AND i.PRIMARY_KEY = TRUE
			) AS IS_PRIMARY_KEY
		FROM INFORMATION_SCHEMA.COLUMNS c
		WHERE UPPER(c.TABLE_NAME) = UPPER($1)
		AND ` + clause + `
		ORDER BY c.ORDINAL_POSITION
	`

	rows, err := a.db.QueryContext(ctx, query, append([]any{table}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns for table %s: %w", table, err)
	}
	defer rows.Close()

	var columns []dialect.Column
	for rows.Next() {
		var (
			col                      dialect.Column
			typeName, nullable       string
			length, precision, scale sql.NullInt64
		)
		if err := rows.Scan(&col.Name, &typeName, &length, &precision, &scale, &nullable, &col.Default, &col.PrimaryKey); err != nil {
			return nil, fmt.Errorf("failed to scan column of table %s: %w", table, err)
		}

		col.Name = normalizeIdentifier(col.Name)
		col.SQLType = reportedType(typeName, length, precision, scale)
		col.Size = length
		col.Nullable = strings.EqualFold(nullable, "YES")
		dialect.NormalizeColumn(a.dialect, &col)
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list columns for table %s: %w", table, err)
	}

	return columns, nil
}

// reportedType spells a column type the way the JDBC metadata does,
// size suffix included, so the dialect can repair it.
func reportedType(typeName string, length, precision, scale sql.NullInt64) string {
	size := length
	if !size.Valid {
		size = precision
	}
	if !size.Valid || size.Int64 <= 0 {
		return typeName
	}

	upper := strings.ToUpper(typeName)
	if scale.Valid && (scale.Int64 > 0 || strings.HasPrefix(upper, "DECIMAL") || strings.HasPrefix(upper, "NUMERIC")) {
		return fmt.Sprintf("%s(%d,%d)", typeName, size.Int64, scale.Int64)
	}
	return fmt.Sprintf("%s(%d)", typeName, size.Int64)
}

// Indexes lists the non-primary indexes of table with their columns in order.
func (a *Adapter) Indexes(ctx context.Context, table string) ([]Index, error) {
	clause, args := a.schemaClause("TABLE_SCHEMA", 2)
	query := `
		SELECT INDEX_NAME, COLUMN_NAME, NON_UNIQUE
		FROM INFORMATION_SCHEMA.INDEXES
		WHERE UPPER(TABLE_NAME) = UPPER($1)
		AND ` + clause + `
		AND PRIMARY_KEY = FALSE
		ORDER BY INDEX_NAME, ORDINAL_POSITION
	`

	rows, err := a.db.QueryContext(ctx, query, append([]any{table}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes for table %s: %w", table, err)
	}
	defer rows.Close()

	var indexes []Index
	for rows.Next() {
		var name, column string
		var nonUnique bool
		if err := rows.Scan(&name, &column, &nonUnique); err != nil {
			return nil, fmt.Errorf("failed to scan index of table %s: %w", table, err)
		}

		name = normalizeIdentifier(name)
		column = normalizeIdentifier(column)
		if n := len(indexes); n > 0 && indexes[n-1].Name == name {
			indexes[n-1].Columns = append(indexes[n-1].Columns, column)
			continue
		}
		indexes = append(indexes, Index{Name: name, Columns: []string{column}, Unique: !nonUnique})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list indexes for table %s: %w", table, err)
	}

	return indexes, nil
}

// CurrentSchema returns the session's current schema.
func (a *Adapter) CurrentSchema(ctx context.Context) (string, error) {
	var schema sql.NullString
	if err := a.db.QueryRowContext(ctx, "CALL SCHEMA()").Scan(&schema); err != nil {
		return "", fmt.Errorf("failed to read current schema: %w", err)
	}
	return schema.String, nil
}

// LastInsertID returns the last identity value generated in this session.
func (a *Adapter) LastInsertID(ctx context.Context) (int64, error) {
	var id sql.NullInt64
	if err := a.db.QueryRowContext(ctx, "CALL IDENTITY()").Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read last insert id: %w", err)
	}
	return id.Int64, nil
}
