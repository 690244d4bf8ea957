package gvalue

import (
	"fmt"
	"math"

	"github.com/cwbudde/filterforge/dsp/core"
)

// Butterworth returns g_k = 2 sin((2k-1) pi / 2N), k = 1..N.
func Butterworth(order int) ([]float64, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}

	return butterworth(order), nil
}

func butterworth(n int) []float64 {
	g := make([]float64, n)
	for k := range n {
		g[k] = 2 * math.Sin(float64(2*k+1)*math.Pi/float64(2*n))
	}

	return g
}

// Chebyshev1 returns the equal-ripple ladder values for a passband ripple in
// dB, using the forward recurrence
//
//	g1 = 2 a1 / sinh(beta)
//	gk = 4 a(k-1) a(k) / (b(k-1) g(k-1))
//
// with a(k) = sin((2k-1) pi / 2N), b(k) = sinh^2(beta) + sin^2(k pi / N) and
// beta = asinh(1/eps) / N.
func Chebyshev1(order int, rippleDB float64) ([]float64, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}

	if !(rippleDB > 0) || math.IsInf(rippleDB, 0) {
		return nil, fmt.Errorf("%w: %v dB", ErrInvalidRipple, rippleDB)
	}

	n := float64(order)
	eps := math.Sqrt(core.DBPowerToLinear(rippleDB) - 1)
	beta := math.Asinh(1/eps) / n
	sh := math.Sinh(beta)

	g := make([]float64, order)

	var aPrev, bPrev float64

	for k := 1; k <= order; k++ {
		a := math.Sin(float64(2*k-1) * math.Pi / (2 * n))
		s := math.Sin(float64(k) * math.Pi / n)
		b := sh*sh + s*s

		if k == 1 {
			g[0] = 2 * a / sh
		} else {
			g[k-1] = 4 * aPrev * a / (bPrev * g[k-2])
		}

		aPrev, bPrev = a, b
	}

	return g, nil
}

// Chebyshev2 maps the stopband attenuation to an equivalent Chebyshev I
// ripple,
//
//	ripple = 10 log10(1 + 1/(10^(attenuation/10) - 1))
//
// and reuses the Chebyshev I recurrence. This is an approximation of the
// inverse Chebyshev ladder, not an exact synthesis: the result is an
// all-pole ladder with a matching passband edge, and the finite stopband
// zeros are not realized.
func Chebyshev2(order int, attenuationDB float64) ([]float64, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}

	if !(attenuationDB > 0) || math.IsInf(attenuationDB, 0) {
		return nil, fmt.Errorf("%w: %v dB", ErrInvalidAttenuation, attenuationDB)
	}

	return Chebyshev1(order, EquivalentRipple(attenuationDB))
}

// EquivalentRipple is the Chebyshev I ripple (dB) used for a Chebyshev II
// design with the given stopband attenuation (dB).
func EquivalentRipple(attenuationDB float64) float64 {
	return 10 * math.Log10(1+1/(core.DBPowerToLinear(attenuationDB)-1))
}
