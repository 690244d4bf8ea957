package gvalue

import (
	"fmt"
	"math"

	"github.com/cwbudde/filterforge/dsp/filter/analog/poly"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

// negligible is the magnitude below which a divisor counts as exhausted.
const negligible = 1e-15

// Elliptic extracts element values from the unit-cutoff elliptic prototype.
func Elliptic(order int, rippleDB, attenuationDB float64) ([]float64, error) {
	return FromPrototype(prototype.Elliptic, order, rippleDB, attenuationDB)
}

// FromPrototype expands the even and odd parts of the unit-cutoff lowpass
// denominator into a continued fraction
//
//	Z(s) = g1 s + 1/(g2 s + 1/(g3 s + ...))
//
// by repeated long division, taking |s coefficient| of every quotient (or
// its constant term if it has none). The part with the higher degree is
// the first dividend. If fewer than order values come out, or any value is
// not finite and positive, the Butterworth values are returned instead.
// Errors from the prototype itself are passed through.
func FromPrototype(a prototype.Approximation, order int, rippleDB, attenuationDB float64) ([]float64, error) {
	if err := checkOrder(order); err != nil {
		return nil, err
	}

	zpk, err := prototype.NormalizedLowpass(a, order, rippleDB, attenuationDB)
	if err != nil {
		return nil, fmt.Errorf("gvalue: %w", err)
	}

	g, ok := Extract(poly.New(zpk.TransferFunction().Den...), order)
	if !ok {
		return butterworth(order), nil
	}

	return g, nil
}

// Extract runs the continued-fraction expansion of den's even/odd parts and
// reports whether it produced max usable values.
func Extract(den poly.Poly, maxValues int) ([]float64, bool) {
	even, odd := den.EvenOdd()

	num, div := even.Trim(0), odd.Trim(0)
	if div.Degree() > num.Degree() {
		num, div = div, num
	}

	g := make([]float64, 0, maxValues)

	for range maxValues {
		if div.IsZero(negligible) {
			break
		}

		q, r, err := num.DivMod(div)
		if err != nil {
			break
		}

		v := math.Abs(q.Coeff(0))
		if q.Len() >= 2 {
			v = math.Abs(q.Coeff(1))
		}

		g = append(g, v)
		num, div = div, r
	}

	if len(g) < maxValues {
		return nil, false
	}

	for _, v := range g {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, false
		}
	}

	return g, true
}
