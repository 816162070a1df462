package dialect

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrInvalidLimit is wrapped by every LimitError.
	ErrInvalidLimit = errors.New("invalid byte size")

	// ErrMissingPrecision is returned when a decimal scale is given without a precision.
	ErrMissingPrecision = errors.New("error adding decimal column: precision cannot be empty if scale is specified")
)

// LimitError is returned by TypeToSQL when no native type of the requested
// family has the requested byte size.
type LimitError struct {
	Type  Type
	Limit sql.NullInt64
}

func (e *LimitError) Error() string {
	size := "nil"
	if e.Limit.Valid {
		size = fmt.Sprintf("%d", e.Limit.Int64)
	}
	return fmt.Sprintf("no %s type has byte size %s", e.Type, size)
}

func (e *LimitError) Unwrap() error {
	return ErrInvalidLimit
}
