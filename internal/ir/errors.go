package ir

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes query errors.
type ErrorCode string

const (
	// ErrCodeMultipleValues indicates Get found other than exactly one item.
	ErrCodeMultipleValues ErrorCode = "MULTIPLE_VALUES_RETURNED"

	// ErrCodeUnsupportedOperator indicates an operator keyword outside the
	// supported set.
	ErrCodeUnsupportedOperator ErrorCode = "UNSUPPORTED_OPERATOR"

	// ErrCodeAttributeNotFound indicates a path segment does not exist on an item.
	ErrCodeAttributeNotFound ErrorCode = "ATTRIBUTE_NOT_FOUND"

	// ErrCodeTypeMismatch indicates values that cannot be compared or measured.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeInvalidValue indicates an expected value unusable with its operator.
	ErrCodeInvalidValue ErrorCode = "INVALID_VALUE"

	// ErrCodeInvalidPath indicates an empty path or path segment.
	ErrCodeInvalidPath ErrorCode = "INVALID_PATH"
)

// Error is the structured error returned by every filterator operation.
//
// Code identifies the category. Path and Operator are set when the error
// is tied to a specific constraint or order key. Cause carries errors
// returned by user callables.
type Error struct {
	Code     ErrorCode
	Message  string
	Path     string
	Operator string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
// This lets callers match against code-only sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// HasCode reports whether err (or anything it wraps) is an *Error with code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// NewMultipleValuesError reports a Get that matched n items.
func NewMultipleValuesError(n int) *Error {
	return &Error{
		Code:    ErrCodeMultipleValues,
		Message: fmt.Sprintf("expected exactly one value, got %d", n),
	}
}

// NewUnsupportedOperatorError reports an operator keyword outside the supported set.
func NewUnsupportedOperatorError(path, keyword string) *Error {
	return &Error{
		Code:     ErrCodeUnsupportedOperator,
		Message:  fmt.Sprintf("keyword %q is not supported", keyword),
		Path:     path,
		Operator: keyword,
	}
}

// NewAttributeNotFoundError reports a missing path segment.
func NewAttributeNotFoundError(path, segment string, item any) *Error {
	return &Error{
		Code:    ErrCodeAttributeNotFound,
		Message: fmt.Sprintf("%T has no attribute %q", item, segment),
		Path:    path,
	}
}

// NewTypeMismatchError reports an operation that is undefined for the given values.
func NewTypeMismatchError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeTypeMismatch,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewInvalidValueError reports an expected value that cannot serve its operator.
func NewInvalidValueError(path, keyword, format string, args ...any) *Error {
	return &Error{
		Code:     ErrCodeInvalidValue,
		Message:  fmt.Sprintf(format, args...),
		Path:     path,
		Operator: keyword,
	}
}

// NewInvalidPathError reports a malformed path.
func NewInvalidPathError(path, reason string) *Error {
	return &Error{
		Code:    ErrCodeInvalidPath,
		Message: reason,
		Path:    path,
	}
}

// WithPath returns a copy of err annotated with path when err is an *Error
// without one. Other errors are returned unchanged.
func WithPath(err error, path string) error {
	var e *Error
	if !errors.As(err, &e) || e.Path != "" {
		return err
	}
	annotated := *e
	annotated.Path = path
	return &annotated
}
