package tablestore

import (
	"errors"
	"fmt"
)

// Store-defined error codes. Database errors keep their SQLSTATE, so
// CodeUniqueViolation matches Postgres 23505.
const (
	CodeUniqueViolation = "23505"
	CodeUnknownTable    = "unknown_table"
	CodeUnknownColumn   = "unknown_column"
	CodeBadRequest      = "bad_request"
	CodeUnauthorized    = "unauthorized"
	CodeStorage         = "storage_error"
)

// Error is a store-level failure as reported by the service.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("tablestore: %s (code %s)", e.Message, e.Code)
}

// IsUniqueViolation reports whether the error is a uniqueness violation
// on a unique column (duplicate email, for instance).
func (e *Error) IsUniqueViolation() bool {
	return e.Code == CodeUniqueViolation
}

// ErrNoRows is returned by SelectSingle when zero rows match.
var ErrNoRows = errors.New("tablestore: no rows")

// errorEnvelope is the JSON shape of a non-2xx response body.
type errorEnvelope struct {
	Error *Error `json:"error"`
}
