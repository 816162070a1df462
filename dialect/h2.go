package dialect

import (
	"database/sql"
	"regexp"
	"strings"
)

// AdapterName is the name H2 reports to the abstraction layer.
const AdapterName = "H2"

// BinaryLimit is the byte size at which binary columns become blobs.
const BinaryLimit = 2 * 1024 * 1024

var h2NativeTypes = map[Type]NativeType{
	TypePrimaryKey:           {Name: "bigint identity"},
	TypeBoolean:              {Name: "boolean"},
	TypeTinyInt:              {Name: "tinyint", Limit: 1},
	TypeSmallInt:             {Name: "smallint", Limit: 2},
	TypeBigInt:               {Name: "bigint", Limit: 8},
	TypeInteger:              {Name: "int", Limit: 4},
	TypeDecimal:              {Name: "decimal"},
	TypeFloat:                {Name: "float", Limit: 8},
	TypeDouble:               {Name: "double", Limit: 8},
	TypeReal:                 {Name: "real", Limit: 4},
	TypeDate:                 {Name: "date"},
	TypeTime:                 {Name: "time"},
	TypeTimestamp:            {Name: "timestamp"},
	TypeBinary:               {Name: "binary"},
	TypeString:               {Name: "varchar", Limit: 255},
	TypeChar:                 {Name: "char"},
	TypeBlob:                 {Name: "blob"},
	TypeText:                 {Name: "clob"},
	TypeClob:                 {Name: "clob"},
	TypeUUID:                 {Name: "uuid"},
	TypeOther:                {Name: "other"},
	TypeArray:                {Name: "array"},
	TypeVarcharCaseSensitive: {Name: "VARCHAR_CASESENSITIVE"},
	TypeVarcharIgnoreCase:    {Name: "VARCHAR_IGNORECASE"},
}

// The driver reports types with bogus precision suffixes, e.g. BIGINT(19).
// Order matters: time must come after timestamp.
var h2LimitRules = []limitRule{
	{regexp.MustCompile(`(?i)^tinyint`), "tinyint", Int(1)},
	{regexp.MustCompile(`(?i)^smallint|int2`), "smallint", Int(2)},
	{regexp.MustCompile(`(?i)^bigint|int8`), "bigint", Int(8)},
	{regexp.MustCompile(`(?i)^int|int4`), "int", Int(4)},
	{regexp.MustCompile(`(?i)^double`), "double", Int(8)},
	{regexp.MustCompile(`(?i)^real`), "real", Int(4)},
	{regexp.MustCompile(`(?i)^date`), "date", sql.NullInt64{}},
	{regexp.MustCompile(`(?i)^timestamp`), "timestamp", sql.NullInt64{}},
	{regexp.MustCompile(`(?i)^time`), "time", sql.NullInt64{}},
	{regexp.MustCompile(`(?i)^boolean`), "boolean", sql.NullInt64{}},
	{regexp.MustCompile(`(?i)^binary|bytea`), "binary", Int(BinaryLimit)},
	{regexp.MustCompile(`(?i)blob|image|oid`), "blob", sql.NullInt64{}},
	{regexp.MustCompile(`(?i)clob|text`), "clob", sql.NullInt64{}},
	{regexp.MustCompile(`(?i)^decimal\(65535,32767\)`), "decimal", sql.NullInt64{}},
}

var h2TypeRules = []typeRule{
	{regexp.MustCompile(`(?i)^bit|bool`), TypeBoolean},
	{regexp.MustCompile(`(?i)^signed|year`), TypeInteger},
	{regexp.MustCompile(`(?i)^real|double`), TypeFloat},
	{regexp.MustCompile(`(?i)^varchar`), TypeString},
	{regexp.MustCompile(`(?i)^binary|raw|bytea`), TypeBinary},
	{regexp.MustCompile(`(?i)^blob|image|oid`), TypeBinary},
}

var (
	identityDefault = regexp.MustCompile(`(?i)^\(NEXT VALUE FOR`)
	quotedDefault   = regexp.MustCompile(`(?s)^'(.*)'$`)
)

// H2 is the dialect of the H2 database. DDL emission and quoting fall back
// to HSQLDB; column metadata rules fall back to the generic rules.
type H2 struct {
	parent *HSQLDB
}

var _ Dialect = (*H2)(nil)

// NewH2 creates the H2 dialect.
func NewH2() *H2 {
	return &H2{parent: newHSQLDBParent(h2NativeTypes)}
}

func (d *H2) Name() string { return AdapterName }

func (d *H2) NativeDatabaseTypes() map[Type]NativeType {
	return copyNatives(h2NativeTypes)
}

func (d *H2) TypeToSQL(t Type, limit, precision, scale sql.NullInt64) (string, error) {
	switch t {
	case TypeInteger:
		if !limit.Valid {
			return "int", nil
		}
		switch n := limit.Int64; {
		case n == 1:
			return "tinyint", nil
		case n == 2:
			return "smallint", nil
		case n == 3 || n == 4:
			return "int", nil
		case n >= 5 && n <= 8:
			return "bigint", nil
		}
		return "", &LimitError{Type: t, Limit: limit}
	case TypeFloat:
		if limit.Valid {
			switch n := limit.Int64; {
			case n >= 1 && n <= 4:
				return "real", nil
			case n >= 5 && n <= 8:
				return "double", nil
			}
		}
		return "", &LimitError{Type: t, Limit: limit}
	case TypeBinary:
		if limit.Valid && limit.Int64 < BinaryLimit {
			return "binary", nil
		}
		return "blob", nil
	}
	return d.parent.TypeToSQL(t, limit, precision, scale)
}

// ExtractLimit always lower-cases the reported type, since the driver's
// spelling is not trusted.
func (d *H2) ExtractLimit(sqlType string) (string, sql.NullInt64) {
	lower := strings.ToLower(sqlType)
	if r, ok := matchLimit(h2LimitRules, lower); ok {
		return r.canonical, r.limit
	}
	return baseExtractLimit(lower)
}

func (d *H2) SimplifiedType(sqlType string) Type {
	if t, ok := matchType(h2TypeRules, sqlType); ok {
		return t
	}
	return baseSimplifiedType(sqlType)
}

func (d *H2) DefaultValue(raw sql.NullString) sql.NullString {
	if !raw.Valid {
		return raw
	}
	if identityDefault.MatchString(raw.String) {
		return sql.NullString{}
	}
	if m := quotedDefault.FindStringSubmatch(raw.String); m != nil {
		return sql.NullString{String: m[1], Valid: true}
	}
	return raw
}

func (d *H2) Quote(value any, col *Column) string {
	if s, ok := value.(string); ok && s == "" {
		return "''"
	}
	return d.parent.Quote(value, col)
}

func (d *H2) QuoteColumnName(name string) string {
	return d.parent.QuoteColumnName(name)
}

func (d *H2) SupportsExplain() bool { return true }
