// Package prototype places the poles and zeros of the classical analog
// approximations (Butterworth, Chebyshev I/II, Bessel, Elliptic) and turns
// them into lowpass, highpass, bandpass or bandstop transfer functions.
//
// All frequencies are angular (rad/s). Prototypes are normalized to a unit
// corner frequency before the band transform is applied:
//
//   - Butterworth and Bessel: -3 dB at 1 rad/s (Bessel uses magnitude
//     normalization).
//   - Chebyshev I and Elliptic: the passband ripple edge at 1 rad/s.
//   - Chebyshev II: the stopband edge at 1 rad/s.
//
// The package also evaluates transfer functions on the imaginary axis and
// groups a factored transfer function into second-order sections.
package prototype

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/filterforge/dsp/filter/analog/poly"
)

var (
	// ErrInvalidOrder is returned for a non-positive or unsupported order.
	ErrInvalidOrder = errors.New("prototype: invalid filter order")
	// ErrInvalidRipple is returned when a passband ripple is required but not positive.
	ErrInvalidRipple = errors.New("prototype: passband ripple must be positive")
	// ErrInvalidAttenuation is returned for a non-positive stopband attenuation
	// or, for elliptic designs, one that does not exceed the ripple.
	ErrInvalidAttenuation = errors.New("prototype: invalid stopband attenuation")
	// ErrInvalidCorner is returned for missing, non-positive or unordered corner frequencies.
	ErrInvalidCorner = errors.New("prototype: invalid corner frequency")
	// ErrUnknownApproximation is returned for an approximation name outside the closed set.
	ErrUnknownApproximation = errors.New("prototype: unknown approximation")
	// ErrDegenerate is returned when a computation produces a non-finite or
	// otherwise unusable result.
	ErrDegenerate = errors.New("prototype: degenerate result")
	// ErrUnpairedRoot is returned when a complex root has no matching conjugate.
	ErrUnpairedRoot = errors.New("prototype: complex root without conjugate")
)

// Approximation names a pole-placement rule.
type Approximation string

// Recognized approximations.
const (
	Butterworth Approximation = "butterworth"
	Chebyshev1  Approximation = "chebyshev1"
	Chebyshev2  Approximation = "chebyshev2"
	Bessel      Approximation = "bessel"
	Elliptic    Approximation = "elliptic"
)

// Approximations lists every recognized approximation in declaration order.
func Approximations() []Approximation {
	return []Approximation{Butterworth, Chebyshev1, Chebyshev2, Bessel, Elliptic}
}

// ParseApproximation maps a name onto the closed set of approximations.
func ParseApproximation(name string) (Approximation, error) {
	for _, a := range Approximations() {
		if string(a) == name {
			return a, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownApproximation, name)
}

// NeedsRipple reports whether the approximation is parameterized by a passband ripple.
func (a Approximation) NeedsRipple() bool { return a == Chebyshev1 || a == Elliptic }

// NeedsAttenuation reports whether the approximation is parameterized by a
// stopband attenuation.
func (a Approximation) NeedsAttenuation() bool { return a == Chebyshev2 || a == Elliptic }

// BandType selects the frequency transform applied to the lowpass prototype.
type BandType int

// Band types.
const (
	Lowpass BandType = iota
	Highpass
	Bandpass
	Bandstop
)

func (b BandType) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return fmt.Sprintf("BandType(%d)", int(b))
	}
}

// Corners is the number of corner frequencies the band type expects.
func (b BandType) Corners() int {
	if b == Bandpass || b == Bandstop {
		return 2
	}

	return 1
}

// ZPK is a factored transfer function k * prod(s - z) / prod(s - p).
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Degree is the pole excess len(p) - len(z).
func (z ZPK) Degree() int { return len(z.Poles) - len(z.Zeros) }

// TransferFunction expands the factors into descending-power polynomials.
func (z ZPK) TransferFunction() TransferFunction {
	return TransferFunction{
		Num: poly.FromRoots(z.Zeros, z.Gain).Coeffs(),
		Den: poly.FromRoots(z.Poles, 1).Coeffs(),
	}
}

// Stable reports whether every pole lies in the closed left half-plane.
func (z ZPK) Stable() bool {
	for _, p := range z.Poles {
		if real(p) > 0 {
			return false
		}
	}

	return true
}

// TransferFunction holds numerator and denominator coefficients in
// descending powers of s.
type TransferFunction struct {
	Num []float64
	Den []float64
}

// Validate checks that the denominator is a non-zero polynomial and every
// coefficient is finite.
func (tf TransferFunction) Validate() error {
	num := poly.New(tf.Num...)
	den := poly.New(tf.Den...)

	if len(tf.Num) == 0 || len(tf.Den) == 0 {
		return fmt.Errorf("%w: empty polynomial", ErrDegenerate)
	}

	if !num.Finite() || !den.Finite() {
		return fmt.Errorf("%w: non-finite coefficient", ErrDegenerate)
	}

	if den.IsZero(0) {
		return fmt.Errorf("%w: zero denominator", ErrDegenerate)
	}

	return nil
}

// Filter is a designed analog filter in both factored and expanded form.
type Filter struct {
	ZPK ZPK
	TF  TransferFunction
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteComplex(v complex128) bool { return finite(real(v)) && finite(imag(v)) }
