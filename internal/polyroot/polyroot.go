// Package polyroot finds the roots of real polynomials for the analog filter
// packages and cleans them up into exact real values and conjugate pairs.
package polyroot

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (zero polynomial, non-finite coefficients, convergence failure).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// Roots returns all roots of a real polynomial given in descending power
// order. Leading zeros are ignored and trailing zeros become exact roots at
// the origin. The remaining factor is rescaled so its constant and leading
// terms have equal magnitude before iterating, which keeps band-pass
// denominators (coefficients spanning many decades) well conditioned.
//
//nolint:cyclop
func Roots(desc []float64) ([]complex128, error) {
	start := 0
	for start < len(desc) && desc[start] == 0 {
		start++
	}

	if start == len(desc) {
		return nil, ErrDegeneratePolynomial
	}

	c := desc[start:]
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrDegeneratePolynomial
		}
	}

	end := len(c)
	for end > 1 && c[end-1] == 0 {
		end--
	}

	zeroRoots := len(c) - end
	c = c[:end]
	n := len(c) - 1

	out := make([]complex128, 0, n+zeroRoots)

	switch n {
	case 0:
	case 1:
		out = append(out, complex(-c[1]/c[0], 0))
	case 2:
		r1, r2 := quadraticRoots(c[0], c[1], c[2])
		out = append(out, r1, r2)
	default:
		scale := math.Pow(math.Abs(c[n]/c[0]), 1/float64(n))
		if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
			scale = 1
		}

		norm := make([]complex128, n+1)
		pow := 1.0

		for i := range norm {
			norm[i] = complex(c[i]/(c[0]*pow), 0)
			pow *= scale
		}

		roots, err := DurandKerner(norm)
		if err != nil {
			return nil, err
		}

		for _, r := range roots {
			r = polish(norm, r)
			out = append(out, r*complex(scale, 0))
		}
	}

	for range zeroRoots {
		out = append(out, 0)
	}

	return SnapReal(out, realTol), nil
}

const realTol = 1e-9

// quadraticRoots solves a*x^2 + b*x + c = 0 with the cancellation-free form.
func quadraticRoots(a, b, c float64) (complex128, complex128) {
	disc := b*b - 4*a*c
	if disc >= 0 {
		sq := math.Sqrt(disc)

		q := -0.5 * (b + math.Copysign(sq, b))
		if q == 0 {
			return 0, 0
		}

		return complex(q/a, 0), complex(c/q, 0)
	}

	re := -b / (2 * a)
	im := math.Sqrt(-disc) / (2 * math.Abs(a))

	return complex(re, im), complex(re, -im)
}

// polish refines a root with a few Newton steps, keeping the best estimate.
func polish(coeff []complex128, x complex128) complex128 {
	best := x
	bestRes := cmplx.Abs(PolyEval(coeff, x))

	for range 4 {
		f, df := evalWithDerivative(coeff, x)
		if df == 0 {
			break
		}

		x -= f / df

		res := cmplx.Abs(PolyEval(coeff, x))
		if res >= bestRes {
			break
		}

		best, bestRes = x, res
	}

	return best
}

func evalWithDerivative(coeff []complex128, x complex128) (complex128, complex128) {
	p := coeff[0]
	var dp complex128

	for i := 1; i < len(coeff); i++ {
		dp = dp*x + p
		p = p*x + coeff[i]
	}

	return p, dp
}

// SnapReal returns a copy of roots where values with a negligible imaginary
// part (relative to their magnitude) are made exactly real and near-conjugate
// pairs are made exact conjugates.
func SnapReal(roots []complex128, tol float64) []complex128 {
	out := make([]complex128, len(roots))
	copy(out, roots)

	for i, r := range out {
		if math.Abs(imag(r)) <= tol*math.Max(1, cmplx.Abs(r)) {
			out[i] = complex(real(r), 0)
		}
	}

	used := make([]bool, len(out))

	for i := range out {
		if used[i] || imag(out[i]) == 0 {
			continue
		}

		for j := i + 1; j < len(out); j++ {
			if used[j] || imag(out[j]) == 0 {
				continue
			}

			if IsConjugate(out[i], out[j], ConjugateTol) {
				re := 0.5 * (real(out[i]) + real(out[j]))
				im := 0.5 * (math.Abs(imag(out[i])) + math.Abs(imag(out[j])))
				out[i] = complex(re, math.Copysign(im, imag(out[i])))
				out[j] = cmplx.Conj(out[i])
				used[i], used[j] = true, true

				break
			}
		}
	}

	return out
}

// DurandKerner finds all roots of a polynomial by simultaneous
// Weierstrass iteration. Coefficients are in descending power order and need
// not be monic.
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 || coeff[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	monic := make([]complex128, len(coeff))
	for i, c := range coeff {
		monic[i] = c / coeff[0]
	}

	n := len(monic) - 1
	roots := initialGuesses(monic)

	const (
		maxIter = 800
		stepTol = 1e-13
	)

	for range maxIter {
		if weierstrassStep(monic, roots) < stepTol {
			return roots, nil
		}
	}

	// Clusters of repeated roots converge slowly; accept a small residual.
	for _, r := range roots[:n] {
		if cmplx.Abs(PolyEval(monic, r)) >= 1e-6 {
			return nil, fmt.Errorf("%w: no convergence after %d iterations", ErrDegeneratePolynomial, maxIter)
		}
	}

	return roots, nil
}

// initialGuesses spreads n starting points over a slightly irregular spiral
// just outside the Cauchy-style radius max|c_i|, so no two start equal.
func initialGuesses(monic []complex128) []complex128 {
	n := len(monic) - 1

	radius := 1.0
	for _, c := range monic[1:] {
		radius = math.Max(radius, cmplx.Abs(c))
	}

	out := make([]complex128, n)
	for i := range out {
		frac := float64(i) / float64(n)
		out[i] = cmplx.Rect(radius*(1+0.1*frac), 2*math.Pi*frac+0.3)
	}

	return out
}

// weierstrassStep updates roots in place and returns the largest
// correction applied.
func weierstrassStep(monic, roots []complex128) float64 {
	largest := 0.0

	for i, ri := range roots {
		prod := complex(1, 0)
		for j, rj := range roots {
			if i != j {
				prod *= ri - rj
			}
		}

		if prod == 0 {
			roots[i] += complex(1e-10, 1e-10)
			continue
		}

		delta := PolyEval(monic, ri) / prod
		roots[i] -= delta
		largest = math.Max(largest, cmplx.Abs(delta))
	}

	return largest
}

// PolyEval evaluates a descending-power polynomial at x (Horner).
func PolyEval(coeff []complex128, x complex128) complex128 {
	var v complex128
	for _, c := range coeff {
		v = v*x + c
	}

	return v
}

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// IsConjugate reports whether b is the conjugate of a within the relative
// tolerance tol.
func IsConjugate(a, b complex128, tol float64) bool {
	re := math.Abs(real(a) - real(b))
	im := math.Abs(imag(a) + imag(b))

	return re <= tol*math.Max(1, math.Abs(real(a))) && im <= tol*math.Max(1, math.Abs(imag(a)))
}
