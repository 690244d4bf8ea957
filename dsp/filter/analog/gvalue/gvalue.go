// Package gvalue computes normalized ladder prototype element values
// ("g-values") for a unit-impedance, unit-cutoff lowpass ladder.
//
// Butterworth and Chebyshev I use closed forms, Chebyshev II reuses the
// Chebyshev I recurrence through an equivalent ripple, Bessel reads a table,
// and Elliptic is extracted from the prototype transfer function by a Cauer
// continued-fraction expansion. Every function returns exactly order values,
// all strictly positive.
package gvalue

import (
	"errors"
	"fmt"

	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

var (
	// ErrInvalidOrder is returned for an order < 1.
	ErrInvalidOrder = errors.New("gvalue: order must be >= 1")
	// ErrInvalidRipple is returned for a non-positive passband ripple.
	ErrInvalidRipple = errors.New("gvalue: passband ripple must be positive")
	// ErrInvalidAttenuation is returned for a non-positive stopband attenuation.
	ErrInvalidAttenuation = errors.New("gvalue: stopband attenuation must be positive")
)

// Values dispatches to the element-value rule of the approximation.
// ripple and attenuation are in dB.
func Values(a prototype.Approximation, order int, ripple, attenuation float64) ([]float64, error) {
	switch a {
	case prototype.Butterworth:
		return Butterworth(order)
	case prototype.Chebyshev1:
		return Chebyshev1(order, ripple)
	case prototype.Chebyshev2:
		return Chebyshev2(order, attenuation)
	case prototype.Bessel:
		return Bessel(order)
	case prototype.Elliptic:
		return Elliptic(order, ripple, attenuation)
	default:
		return nil, fmt.Errorf("gvalue: %w: %q", prototype.ErrUnknownApproximation, string(a))
	}
}

func checkOrder(order int) error {
	if order < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	return nil
}
