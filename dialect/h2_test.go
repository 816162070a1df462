package dialect

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestH2TypeToSQLInteger(t *testing.T) {
	d := NewH2()

	tests := []struct {
		limit    sql.NullInt64
		expected string
	}{
		{sql.NullInt64{}, "int"},
		{Int(1), "tinyint"},
		{Int(2), "smallint"},
		{Int(3), "int"},
		{Int(4), "int"},
		{Int(5), "bigint"},
		{Int(8), "bigint"},
	}

	for _, tt := range tests {
		got, err := d.TypeToSQL(TypeInteger, tt.limit, sql.NullInt64{}, sql.NullInt64{})
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "limit %v", tt.limit)
	}

	t.Run("out_of_range", func(t *testing.T) {
		for _, n := range []int64{0, 9, 16, -1} {
			_, err := d.TypeToSQL(TypeInteger, Int(n), sql.NullInt64{}, sql.NullInt64{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLimit))

			var limitErr *LimitError
			require.True(t, errors.As(err, &limitErr))
			assert.Equal(t, TypeInteger, limitErr.Type)
		}

		_, err := d.TypeToSQL(TypeInteger, Int(9), sql.NullInt64{}, sql.NullInt64{})
		assert.EqualError(t, err, "no integer type has byte size 9")
	})
}

func TestH2TypeToSQLFloat(t *testing.T) {
	d := NewH2()

	for n := int64(1); n <= 4; n++ {
		got, err := d.TypeToSQL(TypeFloat, Int(n), sql.NullInt64{}, sql.NullInt64{})
		require.NoError(t, err)
		assert.Equal(t, "real", got)
	}
	for n := int64(5); n <= 8; n++ {
		got, err := d.TypeToSQL(TypeFloat, Int(n), sql.NullInt64{}, sql.NullInt64{})
		require.NoError(t, err)
		assert.Equal(t, "double", got)
	}

	t.Run("out_of_range", func(t *testing.T) {
		_, err := d.TypeToSQL(TypeFloat, Int(0), sql.NullInt64{}, sql.NullInt64{})
		assert.EqualError(t, err, "no float type has byte size 0")

		_, err = d.TypeToSQL(TypeFloat, Int(9), sql.NullInt64{}, sql.NullInt64{})
		assert.ErrorIs(t, err, ErrInvalidLimit)

		_, err = d.TypeToSQL(TypeFloat, sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{})
		assert.EqualError(t, err, "no float type has byte size nil")
	})
}

func TestH2TypeToSQLBinary(t *testing.T) {
	d := NewH2()

	got, err := d.TypeToSQL(TypeBinary, Int(BinaryLimit-1), sql.NullInt64{}, sql.NullInt64{})
	require.NoError(t, err)
	assert.Equal(t, "binary", got)

	got, err = d.TypeToSQL(TypeBinary, Int(BinaryLimit), sql.NullInt64{}, sql.NullInt64{})
	require.NoError(t, err)
	assert.Equal(t, "blob", got)

	got, err = d.TypeToSQL(TypeBinary, Int(BinaryLimit*4), sql.NullInt64{}, sql.NullInt64{})
	require.NoError(t, err)
	assert.Equal(t, "blob", got)

	got, err = d.TypeToSQL(TypeBinary, sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{})
	require.NoError(t, err)
	assert.Equal(t, "blob", got)
}

func TestH2TypeToSQLDelegates(t *testing.T) {
	d := NewH2()

	tests := []struct {
		name      string
		typ       Type
		limit     sql.NullInt64
		precision sql.NullInt64
		scale     sql.NullInt64
		expected  string
	}{
		{name: "primary_key", typ: TypePrimaryKey, limit: Int(8), expected: "bigint identity"},
		{name: "string_default_limit", typ: TypeString, expected: "varchar(255)"},
		{name: "string_custom_limit", typ: TypeString, limit: Int(40), expected: "varchar(40)"},
		{name: "text", typ: TypeText, expected: "clob"},
		{name: "boolean", typ: TypeBoolean, expected: "boolean"},
		{name: "timestamp", typ: TypeTimestamp, expected: "timestamp"},
		{name: "uuid", typ: TypeUUID, expected: "uuid"},
		{name: "bigint_symbol", typ: TypeBigInt, expected: "bigint(8)"},
		{name: "ignorecase", typ: TypeVarcharIgnoreCase, expected: "VARCHAR_IGNORECASE"},
		{name: "decimal_plain", typ: TypeDecimal, expected: "decimal"},
		{name: "decimal_precision", typ: TypeDecimal, precision: Int(10), expected: "decimal(10)"},
		{name: "decimal_precision_scale", typ: TypeDecimal, precision: Int(10), scale: Int(2), expected: "decimal(10,2)"},
		{name: "unknown_symbol", typ: Type("geometry"), expected: "geometry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.TypeToSQL(tt.typ, tt.limit, tt.precision, tt.scale)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("decimal_scale_without_precision", func(t *testing.T) {
		_, err := d.TypeToSQL(TypeDecimal, sql.NullInt64{}, sql.NullInt64{}, Int(2))
		assert.ErrorIs(t, err, ErrMissingPrecision)
	})
}

func TestH2ExtractLimit(t *testing.T) {
	d := NewH2()

	tests := []struct {
		reported  string
		canonical string
		limit     sql.NullInt64
	}{
		{"TINYINT(3)", "tinyint", Int(1)},
		{"SMALLINT(5)", "smallint", Int(2)},
		{"INT2", "smallint", Int(2)},
		{"BIGINT(19)", "bigint", Int(8)},
		{"INT8", "bigint", Int(8)},
		{"INTEGER(10)", "int", Int(4)},
		{"INT4", "int", Int(4)},
		{"DOUBLE(17)", "double", Int(8)},
		{"REAL(7)", "real", Int(4)},
		{"DATE(8)", "date", sql.NullInt64{}},
		{"TIMESTAMP(23)", "timestamp", sql.NullInt64{}},
		{"TIME(6)", "time", sql.NullInt64{}},
		{"BOOLEAN(1)", "boolean", sql.NullInt64{}},
		{"BINARY(2147483647)", "binary", Int(BinaryLimit)},
		{"BYTEA", "binary", Int(BinaryLimit)},
		{"BLOB(2147483647)", "blob", sql.NullInt64{}},
		{"IMAGE", "blob", sql.NullInt64{}},
		{"CLOB(2147483647)", "clob", sql.NullInt64{}},
		{"TEXT", "clob", sql.NullInt64{}},
		{"DECIMAL(65535,32767)", "decimal", sql.NullInt64{}},
		{"DECIMAL(10,2)", "decimal(10,2)", Int(10)},
		{"VARCHAR(255)", "varchar(255)", Int(255)},
		{"UUID", "uuid", sql.NullInt64{}},
	}

	for _, tt := range tests {
		t.Run(tt.reported, func(t *testing.T) {
			canonical, limit := d.ExtractLimit(tt.reported)
			assert.Equal(t, tt.canonical, canonical)
			assert.Equal(t, tt.limit, limit)
		})
	}
}

func TestH2ExtractLimitIdempotent(t *testing.T) {
	d := NewH2()

	for _, reported := range []string{
		"BIGINT(19)", "TINYINT(3)", "INTEGER(10)", "DOUBLE(17)", "BINARY(255)",
		"CLOB(2147483647)", "DECIMAL(65535,32767)", "DECIMAL(10,2)", "VARCHAR(255)", "TIMESTAMP(23)",
	} {
		canonical, limit := d.ExtractLimit(reported)
		again, againLimit := d.ExtractLimit(canonical)
		assert.Equal(t, canonical, again, reported)
		assert.Equal(t, limit, againLimit, reported)
	}

	canonical, limit := d.ExtractLimit("BIGINT(19)")
	assert.Equal(t, "bigint", canonical)
	assert.Equal(t, Int(8), limit)
}

func TestNormalizeColumnIdempotent(t *testing.T) {
	d := NewH2()

	for _, reported := range []string{
		"TINYINT(3)", "SMALLINT(5)", "INT2", "BIGINT(19)", "INT8", "INTEGER(10)", "INT4",
		"DOUBLE(17)", "DOUBLE PRECISION", "REAL(7)", "DATE", "DATETIME", "TIMESTAMP(23)",
		"TIMESTAMP WITH TIME ZONE", "TIME(8)", "BOOLEAN(1)", "BINARY(16)", "BYTEA",
		"BLOB", "IMAGE", "OID", "CLOB(2147483647)", "TEXT", "DECIMAL(65535,32767)",
		"DECIMAL(10,2)", "VARCHAR(255)", "UUID",
	} {
		first := Column{SQLType: reported}
		NormalizeColumn(d, &first)

		second := first
		NormalizeColumn(d, &second)

		assert.Equal(t, first, second, reported)
		assert.Equal(t, d.SimplifiedType(reported), second.Type, reported)
	}
}

func TestH2SimplifiedType(t *testing.T) {
	d := NewH2()

	tests := []struct {
		sqlType  string
		expected Type
	}{
		{"BIT", TypeBoolean},
		{"BOOLEAN(1)", TypeBoolean},
		{"SIGNED", TypeInteger},
		{"YEAR", TypeInteger},
		{"REAL(7)", TypeFloat},
		{"DOUBLE(17)", TypeFloat},
		{"VARCHAR(255)", TypeString},
		{"VARCHAR_IGNORECASE(40)", TypeString},
		{"BINARY(16)", TypeBinary},
		{"RAW", TypeBinary},
		{"BYTEA", TypeBinary},
		{"BLOB", TypeBinary},
		{"IMAGE", TypeBinary},
		{"OID", TypeBinary},
		{"BIGINT(19)", TypeInteger},
		{"TINYINT(3)", TypeInteger},
		{"DECIMAL(10,2)", TypeDecimal},
		{"DECIMAL(10)", TypeInteger},
		{"DECIMAL(65535,32767)", TypeDecimal},
		{"decimal", TypeDecimal},
		{"TIMESTAMP(23)", TypeTimestamp},
		{"TIME", TypeTime},
		{"DATE", TypeDate},
		{"CLOB", TypeText},
		{"CHAR(10)", TypeString},
		{"UUID", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.sqlType, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.SimplifiedType(tt.sqlType))
		})
	}
}

func TestH2DefaultValue(t *testing.T) {
	d := NewH2()

	t.Run("identity_sequence", func(t *testing.T) {
		got := d.DefaultValue(sql.NullString{String: "(NEXT VALUE FOR SEQ1)", Valid: true})
		assert.False(t, got.Valid)

		got = d.DefaultValue(sql.NullString{String: "(next value for PUBLIC.SYSTEM_SEQUENCE_1)", Valid: true})
		assert.False(t, got.Valid)
	})

	t.Run("quoted_string", func(t *testing.T) {
		got := d.DefaultValue(sql.NullString{String: "'abc'", Valid: true})
		assert.Equal(t, sql.NullString{String: "abc", Valid: true}, got)

		got = d.DefaultValue(sql.NullString{String: "''", Valid: true})
		assert.Equal(t, sql.NullString{String: "", Valid: true}, got)
	})

	t.Run("pass_through", func(t *testing.T) {
		got := d.DefaultValue(sql.NullString{String: "5", Valid: true})
		assert.Equal(t, sql.NullString{String: "5", Valid: true}, got)

		got = d.DefaultValue(sql.NullString{String: "CURRENT_TIMESTAMP()", Valid: true})
		assert.Equal(t, "CURRENT_TIMESTAMP()", got.String)
	})

	t.Run("absent", func(t *testing.T) {
		assert.False(t, d.DefaultValue(sql.NullString{}).Valid)
	})
}

func TestH2Quote(t *testing.T) {
	d := NewH2()

	assert.Equal(t, "''", d.Quote("", nil))
	assert.Equal(t, "''", d.Quote("", &Column{Type: TypeBinary}))
	assert.Equal(t, d.parent.Quote("abc", nil), d.Quote("abc", nil))
	assert.Equal(t, "'it''s'", d.Quote("it's", nil))
	assert.Equal(t, "NULL", d.Quote(nil, nil))
	assert.Equal(t, "true", d.Quote(true, nil))
	assert.Equal(t, "42", d.Quote(42, nil))
	assert.Equal(t, "X'6869'", d.Quote("hi", &Column{Type: TypeBinary}))
}

func TestH2NativeDatabaseTypes(t *testing.T) {
	d := NewH2()

	types := d.NativeDatabaseTypes()
	assert.Equal(t, NativeType{Name: "int", Limit: 4}, types[TypeInteger])
	assert.Equal(t, NativeType{Name: "bigint identity"}, types[TypePrimaryKey])
	assert.Equal(t, NativeType{Name: "clob"}, types[TypeText])
	assert.Len(t, types, 24)

	t.Run("copy_on_read", func(t *testing.T) {
		types[TypeInteger] = NativeType{Name: "broken"}
		delete(types, TypeString)

		fresh := d.NativeDatabaseTypes()
		assert.Equal(t, "int", fresh[TypeInteger].Name)
		assert.Contains(t, fresh, TypeString)
	})
}

func TestH2Capabilities(t *testing.T) {
	d := NewH2()
	assert.Equal(t, "H2", d.Name())
	assert.True(t, d.SupportsExplain())
	assert.Equal(t, `"USER-ID"`, d.QuoteColumnName("user-id"))
	assert.Equal(t, "email", d.QuoteColumnName("email"))
}

func TestNormalizeColumn(t *testing.T) {
	d := NewH2()

	tests := []struct {
		name     string
		column   Column
		expected Column
	}{
		{
			name:   "bigint_identity",
			column: Column{Name: "id", SQLType: "BIGINT(19)", Default: sql.NullString{String: "(NEXT VALUE FOR PUBLIC.SEQ)", Valid: true}},
			expected: Column{
				Name: "id", SQLType: "bigint", Limit: Int(8), Type: TypeInteger,
			},
		},
		{
			name:   "varchar_with_default",
			column: Column{Name: "name", SQLType: "VARCHAR(40)", Default: sql.NullString{String: "'anon'", Valid: true}, Nullable: true},
			expected: Column{
				Name: "name", SQLType: "varchar(40)", Limit: Int(40), Type: TypeString,
				Default: sql.NullString{String: "anon", Valid: true}, Nullable: true,
			},
		},
		{
			name:   "decimal_sentinel",
			column: Column{Name: "amount", SQLType: "DECIMAL(65535,32767)"},
			expected: Column{
				Name: "amount", SQLType: "decimal", Type: TypeDecimal,
			},
		},
		{
			name:   "datetime_keeps_classification",
			column: Column{Name: "seen_at", SQLType: "DATETIME"},
			expected: Column{
				Name: "seen_at", SQLType: "datetime", Type: TypeDateTime,
			},
		},
		{
			name:   "decimal_precise",
			column: Column{Name: "price", SQLType: "DECIMAL(10,2)"},
			expected: Column{
				Name: "price", SQLType: "decimal(10,2)", Limit: Int(10), Precision: Int(10), Scale: Int(2), Type: TypeDecimal,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := tt.column
			NormalizeColumn(d, &col)
			assert.Equal(t, tt.expected, col)

			again := col
			NormalizeColumn(d, &again)
			assert.Equal(t, col, again)
		})
	}
}
