package design

import (
	"math"

	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

const (
	maxOrder       = 10
	minActiveOrder = 2
)

// Validate checks p in a fixed order and reports the first violation as an
// INVALID_PARAMS error.
//
//nolint:cyclop
func Validate(p Params) error {
	kind := p.FilterType.Canonical()

	switch kind {
	case Active:
		switch p.Characteristics {
		case LPF, HPF, BPF:
		default:
			return invalid("Sallen-Key does not support '%s'. Use LPF, HPF, or BPF.", p.Characteristics)
		}

		if p.Order < minActiveOrder || p.Order > maxOrder {
			return invalid("Filter order must be between %d and %d.", minActiveOrder, maxOrder)
		}

		if p.Order%2 != 0 {
			return invalid("Sallen-Key requires an even order (2, 4, 6, 8, 10).")
		}
	case Passive:
		if p.Order < 1 || p.Order > maxOrder {
			return invalid("Filter order must be between 1 and %d.", maxOrder)
		}

		if !positive(p.Source()) || !positive(p.Load()) {
			return invalid("Impedance must be positive.")
		}
	default:
		return invalid("Unknown filter type: %s", p.FilterType)
	}

	switch p.Characteristics {
	case LPF, HPF:
		if !positive(p.CutoffFrequency) {
			return invalid("Cutoff frequency must be positive.")
		}
	case BPF, BEF:
		if !positive(p.CenterFrequency) {
			return invalid("Center frequency must be positive.")
		}

		if !positive(p.Bandwidth) {
			return invalid("Bandwidth must be positive.")
		}
	case APF:
		if !positive(p.CenterFrequency) {
			return invalid("Center frequency must be positive.")
		}
	default:
		return invalid("Unknown characteristics: %s", p.Characteristics)
	}

	if p.Characteristics == APF {
		return nil
	}

	if _, err := prototype.ParseApproximation(string(p.Approximation)); err != nil {
		return invalid("Unknown approximation: %s", p.Approximation)
	}

	if p.Approximation.NeedsRipple() && !positive(p.Ripple()) {
		return invalid("Passband ripple must be positive.")
	}

	if p.Approximation.NeedsAttenuation() && !positive(p.Attenuation()) {
		return invalid("Stopband attenuation must be positive.")
	}

	return nil
}

// positive rejects zero, negative, NaN and infinite values.
func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

