// Package errors implements Quill's error taxonomy: a closed set of
// sentinel errors for every failure kind named in the specification,
// plus context-carrying struct types that wrap them.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind.
var (
	// ErrUnableToOpen indicates the database file could not be opened or created.
	ErrUnableToOpen = errors.New("unable to open")
	// ErrInterfaceMisuse indicates an API-order violation reached the engine.
	ErrInterfaceMisuse = errors.New("interface misuse")
	// ErrUnableToExecuteQuery indicates the engine rejected the SQL text.
	ErrUnableToExecuteQuery = errors.New("unable to execute query")
	// ErrUnmetConstraint indicates a unique or NOT NULL violation.
	ErrUnmetConstraint = errors.New("unmet constraint")
	// ErrBindParameterNotFound indicates a named placeholder is absent from the compiled statement.
	ErrBindParameterNotFound = errors.New("bind parameter not found")
	// ErrMismatchedType indicates a column/field type incompatibility during extraction.
	ErrMismatchedType = errors.New("mismatched type")
	// ErrMismatchedSize indicates a payload size incompatible with the field descriptor.
	ErrMismatchedSize = errors.New("mismatched size")
	// ErrMismatchedValue indicates a value outside the domain the field descriptor allows.
	ErrMismatchedValue = errors.New("mismatched value")
	// ErrUnexpectedNullValue indicates a NULL column read against a non-optional field.
	ErrUnexpectedNullValue = errors.New("unexpected null value")
	// ErrMismatchedFields indicates a column-count or label-set mismatch between engine and shape.
	ErrMismatchedFields = errors.New("mismatched fields")
	// ErrFailedIntegrityChecks indicates PRAGMA integrity_check returned a non-ok result.
	ErrFailedIntegrityChecks = errors.New("failed integrity checks")
	// ErrInvalidFunctionChain indicates a builder step was invoked out of order.
	ErrInvalidFunctionChain = errors.New("invalid function chain")
	// ErrMismatchedConstraint indicates an Update/Delete gate (Exact/All) mismatch against when().
	ErrMismatchedConstraint = errors.New("mismatched constraint")
	// ErrInvalidNamingConvention indicates a filter/sort field absent from its shape.
	ErrInvalidNamingConvention = errors.New("invalid naming convention")
	// ErrMalformedURN indicates a UUID URN string failed to parse.
	ErrMalformedURN = errors.New("malformed urn string")
	// ErrInvalidHexCharacter indicates a non-hex character inside a UUID URN string.
	ErrInvalidHexCharacter = errors.New("invalid hex character")
)

// QueryError carries the SQL text and engine-reported context for a
// failure surfaced while executing or preparing a statement.
type QueryError struct {
	SQL     string // the statement text involved
	Message string // the engine's err_msg() context
	Err     error  // the underlying sentinel (ErrUnableToExecuteQuery or ErrUnmetConstraint)
}

func (e *QueryError) Error() string {
	if e.SQL != "" {
		return fmt.Sprintf("%v: %s (sql: %s)", e.Err, e.Message, e.SQL)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *QueryError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnableToExecuteQuery
}

// NewQuery creates a QueryError wrapping ErrUnableToExecuteQuery.
func NewQuery(sql, message string) *QueryError {
	return &QueryError{SQL: sql, Message: message, Err: ErrUnableToExecuteQuery}
}

// NewConstraint creates a QueryError wrapping ErrUnmetConstraint.
func NewConstraint(sql, message string) *QueryError {
	return &QueryError{SQL: sql, Message: message, Err: ErrUnmetConstraint}
}

// ShapeError carries the shape name, field label, and reason for a
// failure detected at shape-analysis (build) time, never at runtime.
type ShapeError struct {
	Shape  string // shape type name (model/view/filter)
	Field  string // offending field label, if any
	Reason string // human-readable reason
	Err    error  // underlying sentinel
}

func (e *ShapeError) Error() string {
	switch {
	case e.Shape != "" && e.Field != "":
		return fmt.Sprintf("%v: shape %s, field %s: %s", e.Err, e.Shape, e.Field, e.Reason)
	case e.Shape != "":
		return fmt.Sprintf("%v: shape %s: %s", e.Err, e.Shape, e.Reason)
	default:
		return fmt.Sprintf("%v: %s", e.Err, e.Reason)
	}
}

func (e *ShapeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidNamingConvention
}

// NewShape creates a ShapeError wrapping the given sentinel.
func NewShape(sentinel error, shape, field, reason string) *ShapeError {
	return &ShapeError{Shape: shape, Field: field, Reason: reason, Err: sentinel}
}

// FieldError carries the field label and reason for a bind/extract
// failure discovered while walking a record value.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: field %s: %s", e.Unwrap(), e.Field, e.Reason)
	}
	return fmt.Sprintf("%v: %s", e.Unwrap(), e.Reason)
}

func (e *FieldError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrMismatchedType
}

// NewField creates a FieldError wrapping the given sentinel.
func NewField(sentinel error, field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason, Err: sentinel}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
