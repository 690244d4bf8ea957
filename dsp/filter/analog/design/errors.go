package design

import (
	"errors"
	"fmt"
)

// Code classifies design failures.
type Code string

const (
	// InvalidParams reports parameters rejected before any computation.
	InvalidParams Code = "INVALID_PARAMS"
	// CalculationError reports a failure inside the synthesis pipeline.
	CalculationError Code = "CALCULATION_ERROR"
)

// Error is the failure variant of a design. Details is diagnostic text
// only.
type Error struct {
	Code    Code   `json:"code" enum:"INVALID_PARAMS,CALCULATION_ERROR"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

func invalid(format string, args ...any) *Error {
	return &Error{Code: InvalidParams, Message: fmt.Sprintf(format, args...)}
}

func calculation(err error) *Error {
	return &Error{
		Code:    CalculationError,
		Message: err.Error(),
		Details: fmt.Sprintf("%T: %v", innermost(err), err),
	}
}

func innermost(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}

		err = next
	}
}

// IsInvalidParams reports whether err is an INVALID_PARAMS design error.
func IsInvalidParams(err error) bool { return hasCode(err, InvalidParams) }

// IsCalculationError reports whether err is a CALCULATION_ERROR design error.
func IsCalculationError(err error) bool { return hasCode(err, CalculationError) }

func hasCode(err error, code Code) bool {
	var e *Error

	return errors.As(err, &e) && e.Code == code
}
