package dialect

import (
	"database/sql"
	"regexp"
	"strings"
)

const hsqldbName = "HSQLDB"

var hsqldbNativeTypes = map[Type]NativeType{
	TypePrimaryKey: {Name: "integer GENERATED BY DEFAULT AS IDENTITY(START WITH 0) PRIMARY KEY"},
	TypeString:     {Name: "varchar", Limit: 255},
	TypeText:       {Name: "longvarchar"},
	TypeInteger:    {Name: "integer"},
	TypeFloat:      {Name: "float"},
	TypeDecimal:    {Name: "decimal"},
	TypeDateTime:   {Name: "timestamp"},
	TypeTimestamp:  {Name: "timestamp"},
	TypeTime:       {Name: "time"},
	TypeDate:       {Name: "date"},
	TypeBinary:     {Name: "binary"},
	TypeBoolean:    {Name: "boolean"},
}

var hsqldbTypeRules = []typeRule{
	{regexp.MustCompile(`(?i)longvarchar`), TypeText},
	{regexp.MustCompile(`(?i)tinyint`), TypeBoolean},
	{regexp.MustCompile(`(?i)real`), TypeFloat},
	{regexp.MustCompile(`(?i)decimal`), TypeDecimal},
}

// HSQLDB is the dialect of the HyperSQL embedded database. It also serves
// as the parent of H2, which shares most of its limitations.
type HSQLDB struct {
	natives map[Type]NativeType
	// child dialects emit DDL from their own native table
	childNatives bool
}

var _ Dialect = (*HSQLDB)(nil)

// NewHSQLDB creates the HSQLDB dialect.
func NewHSQLDB() *HSQLDB {
	return &HSQLDB{natives: hsqldbNativeTypes}
}

func newHSQLDBParent(natives map[Type]NativeType) *HSQLDB {
	return &HSQLDB{natives: natives, childNatives: true}
}

func (d *HSQLDB) Name() string { return hsqldbName }

func (d *HSQLDB) NativeDatabaseTypes() map[Type]NativeType {
	return copyNatives(d.natives)
}

// TypeToSQL emits bare "integer" when a limit is given, since HSQLDB
// rejects width suffixes on integers.
func (d *HSQLDB) TypeToSQL(t Type, limit, precision, scale sql.NullInt64) (string, error) {
	if !d.childNatives && t == TypeInteger && limit.Valid {
		return string(t), nil
	}
	return baseTypeToSQL(d.natives, t, limit, precision, scale)
}

func (d *HSQLDB) ExtractLimit(sqlType string) (string, sql.NullInt64) {
	return baseExtractLimit(sqlType)
}

func (d *HSQLDB) SimplifiedType(sqlType string) Type {
	if t, ok := matchType(hsqldbTypeRules, sqlType); ok {
		return t
	}
	return baseSimplifiedType(sqlType)
}

func (d *HSQLDB) DefaultValue(raw sql.NullString) sql.NullString {
	return raw
}

// Quote handles strings bound for typed columns and defers the rest to the
// generic literal rules.
func (d *HSQLDB) Quote(value any, col *Column) string {
	switch v := value.(type) {
	case string:
		var colType Type
		if col != nil {
			colType = col.Type
		}
		switch colType {
		case TypeBinary:
			return quotedBinary([]byte(v))
		case TypeInteger:
			return numericText(v, false)
		case TypeFloat:
			return numericText(v, true)
		}
		return "'" + quoteString(v) + "'"
	case bool:
		if v {
			return "true"
		}
		return "false"
	}
	return baseQuote(value)
}

// QuoteColumnName upper-cases and double-quotes names HSQLDB would
// otherwise misparse.
func (d *HSQLDB) QuoteColumnName(name string) string {
	if strings.Contains(name, "-") {
		return `"` + strings.ToUpper(name) + `"`
	}
	return name
}

func (d *HSQLDB) SupportsExplain() bool { return false }
