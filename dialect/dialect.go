// Package dialect maps abstract column types to database-specific SQL and
// repairs the column metadata drivers report during introspection.
//
// Dialects compose by delegation: H2 handles its own quirks and hands
// everything else to HSQLDB, which in turn falls back to the generic rules.
package dialect

import (
	"database/sql"
	"strings"
)

// Dialect is the capability contract every SQL dialect implements.
type Dialect interface {
	// Name returns the adapter name, e.g. "H2".
	Name() string

	// NativeDatabaseTypes returns a copy of the abstract-to-native type table.
	NativeDatabaseTypes() map[Type]NativeType

	// TypeToSQL emits the native DDL type token for an abstract type.
	TypeToSQL(t Type, limit, precision, scale sql.NullInt64) (string, error)

	// ExtractLimit returns the canonical type name and byte limit for a
	// driver-reported type string.
	ExtractLimit(sqlType string) (string, sql.NullInt64)

	// SimplifiedType classifies a native type string into an abstract type.
	SimplifiedType(sqlType string) Type

	// DefaultValue strips driver artifacts from a reported column default.
	DefaultValue(raw sql.NullString) sql.NullString

	// Quote renders value as a SQL literal. col may be nil.
	Quote(value any, col *Column) string

	// QuoteColumnName renders an identifier for embedding in SQL.
	QuoteColumnName(name string) string

	// SupportsExplain reports whether EXPLAIN output can be retrieved.
	SupportsExplain() bool
}

// NormalizeColumn rewrites col in place from its reported SQLType and
// Default. Applying it to an already normalized column is a no-op.
func NormalizeColumn(d Dialect, col *Column) {
	reported := col.SQLType
	col.Type = d.SimplifiedType(reported)
	col.SQLType, col.Limit = d.ExtractLimit(reported)
	// DATETIME canonicalizes to date, which would reclassify on a second pass.
	if d.SimplifiedType(col.SQLType) != col.Type {
		col.SQLType = strings.ToLower(reported)
	}
	col.Precision, col.Scale = extractPrecisionScale(col.SQLType)
	col.Default = d.DefaultValue(col.Default)
}
