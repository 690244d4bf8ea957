package server

import (
	"errors"
	"net/http"

	"github.com/cwbudde/filterforge/dsp/filter/analog/design"
)

// DesignError is the failure body of the design operations, identical to the
// error variant of design.Outcome.
type DesignError struct {
	Error *design.Error `json:"error"`
}

// statusError is a huma.StatusError whose JSON form is DesignError.
type statusError struct {
	status int
	Err    *design.Error `json:"error"`
}

func (e *statusError) Error() string  { return e.Err.Error() }
func (e *statusError) GetStatus() int { return e.status }

// newDesignError maps INVALID_PARAMS to 422 and everything else to 500.
func newDesignError(err error) error {
	var de *design.Error
	if !errors.As(err, &de) {
		de = &design.Error{Code: design.CalculationError, Message: err.Error()}
	}

	status := http.StatusInternalServerError
	if de.Code == design.InvalidParams {
		status = http.StatusUnprocessableEntity
	}

	return &statusError{status: status, Err: de}
}
