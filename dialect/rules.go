package dialect

import (
	"database/sql"
	"regexp"
)

// limitRule maps a reported type pattern to a canonical name and byte limit.
type limitRule struct {
	pattern   *regexp.Regexp
	canonical string
	limit     sql.NullInt64
}

// typeRule maps a native type pattern to an abstract type.
type typeRule struct {
	pattern *regexp.Regexp
	typ     Type
}

func matchLimit(rules []limitRule, sqlType string) (limitRule, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(sqlType) {
			return r, true
		}
	}
	return limitRule{}, false
}

func matchType(rules []typeRule, sqlType string) (Type, bool) {
	for _, r := range rules {
		if r.pattern.MatchString(sqlType) {
			return r.typ, true
		}
	}
	return TypeUnknown, false
}
