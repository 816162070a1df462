package dialect

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Generic rules shared by every dialect. Specific dialects consult these
// last, after their own tables.

var (
	limitSuffix    = regexp.MustCompile(`\((.*)\)`)
	leadingInt     = regexp.MustCompile(`^\s*[-+]?\d+`)
	leadingFloat   = regexp.MustCompile(`^\s*[-+]?\d+(\.\d+)?([eE][-+]?\d+)?`)
	decimalPattern = regexp.MustCompile(`(?i)decimal|numeric|number`)
	precisionScale = regexp.MustCompile(`(?i)^(?:numeric|decimal|number)\((\d+)(?:,(\d+))?\)`)
	scaleOnly      = regexp.MustCompile(`\((\d+)\)`)
	scaleWithPrec  = regexp.MustCompile(`\((\d+),(\d+)\)`)
)

// baseTypeRules is consulted after decimal detection, which depends on scale.
var baseTypeRules = []typeRule{
	{regexp.MustCompile(`(?i)datetime`), TypeDateTime},
	{regexp.MustCompile(`(?i)timestamp`), TypeTimestamp},
	{regexp.MustCompile(`(?i)time`), TypeTime},
	{regexp.MustCompile(`(?i)date`), TypeDate},
	{regexp.MustCompile(`(?i)clob|text`), TypeText},
	{regexp.MustCompile(`(?i)blob|binary`), TypeBinary},
	{regexp.MustCompile(`(?i)char|string`), TypeString},
	{regexp.MustCompile(`(?i)boolean`), TypeBoolean},
}

var (
	baseIntPattern   = regexp.MustCompile(`(?i)int`)
	baseFloatPattern = regexp.MustCompile(`(?i)float|double`)
)

func baseSimplifiedType(sqlType string) Type {
	switch {
	case baseIntPattern.MatchString(sqlType):
		return TypeInteger
	case baseFloatPattern.MatchString(sqlType):
		return TypeFloat
	case decimalPattern.MatchString(sqlType):
		if s := extractScale(sqlType); s.Valid && s.Int64 == 0 {
			return TypeInteger
		}
		return TypeDecimal
	}
	t, _ := matchType(baseTypeRules, sqlType)
	return t
}

// baseExtractLimit reads the integer prefix of a parenthesised suffix.
func baseExtractLimit(sqlType string) (string, sql.NullInt64) {
	m := limitSuffix.FindStringSubmatch(sqlType)
	if m == nil {
		return sqlType, sql.NullInt64{}
	}
	digits := leadingInt.FindString(m[1])
	if digits == "" {
		return sqlType, sql.NullInt64{}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(digits), 10, 64)
	if err != nil {
		return sqlType, sql.NullInt64{}
	}
	return sqlType, Int(n)
}

func extractScale(sqlType string) sql.NullInt64 {
	if scaleOnly.MatchString(sqlType) {
		return Int(0)
	}
	if m := scaleWithPrec.FindStringSubmatch(sqlType); m != nil {
		n, _ := strconv.ParseInt(m[2], 10, 64)
		return Int(n)
	}
	return sql.NullInt64{}
}

func extractPrecisionScale(sqlType string) (precision, scale sql.NullInt64) {
	m := precisionScale.FindStringSubmatch(sqlType)
	if m == nil {
		return precision, scale
	}
	p, _ := strconv.ParseInt(m[1], 10, 64)
	precision = Int(p)
	scale = Int(0)
	if m[2] != "" {
		s, _ := strconv.ParseInt(m[2], 10, 64)
		scale = Int(s)
	}
	return precision, scale
}

func baseTypeToSQL(natives map[Type]NativeType, t Type, limit, precision, scale sql.NullInt64) (string, error) {
	native, ok := natives[t]
	if !ok {
		return string(t), nil
	}

	name := native.Name
	switch {
	case t == TypePrimaryKey:
		return name, nil
	case t == TypeDecimal:
		if precision.Valid {
			if scale.Valid {
				return fmt.Sprintf("%s(%d,%d)", name, precision.Int64, scale.Int64), nil
			}
			return fmt.Sprintf("%s(%d)", name, precision.Int64), nil
		}
		if scale.Valid {
			return "", ErrMissingPrecision
		}
		return name, nil
	}

	if !limit.Valid && native.Limit > 0 {
		limit = Int(native.Limit)
	}
	if limit.Valid {
		return fmt.Sprintf("%s(%d)", name, limit.Int64), nil
	}
	return name, nil
}

// quoteString doubles embedded single quotes.
func quoteString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func quotedBinary(b []byte) string {
	return "X'" + hex.EncodeToString(b) + "'"
}

func quotedDate(t time.Time) string {
	return "'" + t.Format("2006-01-02 15:04:05.999999") + "'"
}

func baseQuote(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + quoteString(v) + "'"
	case []byte:
		return quotedBinary(v)
	case bool:
		if v {
			return "'t'"
		}
		return "'f'"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return quotedDate(v)
	case *time.Time:
		if v == nil {
			return "NULL"
		}
		return quotedDate(*v)
	case sql.NullString:
		if !v.Valid {
			return "NULL"
		}
		return baseQuote(v.String)
	case sql.NullInt64:
		if !v.Valid {
			return "NULL"
		}
		return baseQuote(v.Int64)
	case fmt.Stringer:
		return baseQuote(v.String())
	default:
		return baseQuote(fmt.Sprintf("%v", v))
	}
}

// numericText mirrors string-to-number coercion: the longest numeric
// prefix, or zero when there is none.
func numericText(s string, float bool) string {
	if float {
		m := strings.TrimSpace(leadingFloat.FindString(s))
		if m == "" {
			return "0.0"
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return "0.0"
		}
		text := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		return text
	}
	m := strings.TrimSpace(leadingInt.FindString(s))
	if m == "" {
		return "0"
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return "0"
	}
	return strconv.FormatInt(n, 10)
}
