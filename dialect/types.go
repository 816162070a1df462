package dialect

import "database/sql"

// Type is an abstract column type symbol understood by every dialect.
type Type string

const (
	TypePrimaryKey           Type = "primary_key"
	TypeBoolean              Type = "boolean"
	TypeTinyInt              Type = "tinyint"
	TypeSmallInt             Type = "smallint"
	TypeBigInt               Type = "bigint"
	TypeInteger              Type = "integer"
	TypeDecimal              Type = "decimal"
	TypeFloat                Type = "float"
	TypeDouble               Type = "double"
	TypeReal                 Type = "real"
	TypeDate                 Type = "date"
	TypeTime                 Type = "time"
	TypeDateTime             Type = "datetime"
	TypeTimestamp            Type = "timestamp"
	TypeBinary               Type = "binary"
	TypeString               Type = "string"
	TypeChar                 Type = "char"
	TypeBlob                 Type = "blob"
	TypeText                 Type = "text"
	TypeClob                 Type = "clob"
	TypeUUID                 Type = "uuid"
	TypeOther                Type = "other"
	TypeArray                Type = "array"
	TypeVarcharCaseSensitive Type = "varchar_casesensitive"
	TypeVarcharIgnoreCase    Type = "varchar_ignorecase"

	// TypeUnknown is returned by classifiers when no rule matches.
	TypeUnknown Type = ""
)

// NativeType describes how an abstract type is spelled in a database.
type NativeType struct {
	Name string
	// Limit is the default limit appended as "name(limit)". Zero means none.
	Limit int64
}

// Column is the metadata of one column as read during introspection.
type Column struct {
	Name string
	// SQLType holds the driver-reported type until NormalizeColumn replaces
	// it with the canonical lowercase name. The lowercased reported type is
	// kept when the canonical name would classify differently.
	SQLType string
	// Size is the reported character or byte length. NormalizeColumn does
	// not touch it.
	Size       sql.NullInt64
	Limit      sql.NullInt64
	Precision  sql.NullInt64
	Scale      sql.NullInt64
	Type       Type
	Default    sql.NullString
	Nullable   bool
	PrimaryKey bool
}

// Int returns a valid sql.NullInt64 holding n.
func Int(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: true}
}

func copyNatives(src map[Type]NativeType) map[Type]NativeType {
	dst := make(map[Type]NativeType, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
