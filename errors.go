package filterator

import (
	"errors"

	"github.com/roach88/filterator/internal/ir"
)

// Error is the structured error returned by every query operation.
type Error = ir.Error

// ErrorCode categorizes an Error.
type ErrorCode = ir.ErrorCode

// Sentinels for errors.Is. They match any Error with the same code.
var (
	ErrMultipleValuesReturned = &Error{Code: ir.ErrCodeMultipleValues}
	ErrUnsupportedOperator    = &Error{Code: ir.ErrCodeUnsupportedOperator}
	ErrAttributeNotFound      = &Error{Code: ir.ErrCodeAttributeNotFound}
	ErrTypeMismatch           = &Error{Code: ir.ErrCodeTypeMismatch}
	ErrInvalidValue           = &Error{Code: ir.ErrCodeInvalidValue}
	ErrInvalidPath            = &Error{Code: ir.ErrCodeInvalidPath}
)

// IsMultipleValuesReturned returns true if Get found other than exactly one item.
func IsMultipleValuesReturned(err error) bool {
	return ir.HasCode(err, ir.ErrCodeMultipleValues)
}

// IsAttributeNotFound returns true if a path segment was missing on an item.
func IsAttributeNotFound(err error) bool {
	return ir.HasCode(err, ir.ErrCodeAttributeNotFound)
}

// IsTypeMismatch returns true if values could not be compared or measured.
func IsTypeMismatch(err error) bool {
	return ir.HasCode(err, ir.ErrCodeTypeMismatch)
}

// IsInvalidQuery returns true for errors raised while building constraints
// or order keys, before any item was evaluated.
func IsInvalidQuery(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case ir.ErrCodeUnsupportedOperator, ir.ErrCodeInvalidValue, ir.ErrCodeInvalidPath:
		return true
	}
	return false
}
