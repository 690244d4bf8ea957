// Package poly implements immutable real polynomials in descending power
// order, the coefficient layout used for analog transfer functions.
//
// Every operation returns a fresh Poly; inputs are never modified, so values
// can be passed around and reused without aliasing concerns.
package poly

import (
	"errors"
	"math"
)

// ErrDivideByZero is returned when dividing by the zero polynomial.
var ErrDivideByZero = errors.New("poly: division by zero polynomial")

// Poly holds coefficients in descending powers of s: c[0]*s^n + ... + c[n].
type Poly struct {
	c []float64
}

// New copies coeff (descending powers) into a polynomial. Leading zeros are
// kept until Trim is called, so the declared length survives.
func New(coeff ...float64) Poly {
	c := make([]float64, len(coeff))
	copy(c, coeff)

	return Poly{c: c}
}

// FromRoots returns k * prod(s - r) with the real part of every coefficient.
func FromRoots(roots []complex128, k float64) Poly {
	acc := []complex128{1}

	for _, r := range roots {
		next := make([]complex128, len(acc)+1)
		for i, v := range acc {
			next[i] += v
			next[i+1] -= v * r
		}

		acc = next
	}

	c := make([]float64, len(acc))
	for i, v := range acc {
		c[i] = k * real(v)
	}

	return Poly{c: c}
}

// Coeffs returns a copy of the descending coefficients.
func (p Poly) Coeffs() []float64 {
	out := make([]float64, len(p.c))
	copy(out, p.c)

	return out
}

// Len is the number of stored coefficients.
func (p Poly) Len() int { return len(p.c) }

// Degree of the trimmed polynomial; -1 for the zero polynomial.
func (p Poly) Degree() int {
	t := p.Trim(0)

	if len(t.c) == 1 && t.c[0] == 0 {
		return -1
	}

	return len(t.c) - 1
}

// IsZero reports whether every coefficient has magnitude <= tol.
func (p Poly) IsZero(tol float64) bool {
	for _, v := range p.c {
		if math.Abs(v) > tol {
			return false
		}
	}

	return true
}

// Trim drops leading coefficients with magnitude <= tol. The zero polynomial
// trims to a single 0 coefficient.
func (p Poly) Trim(tol float64) Poly {
	i := 0
	for i < len(p.c)-1 && math.Abs(p.c[i]) <= tol {
		i++
	}

	if len(p.c) == 0 {
		return Poly{c: []float64{0}}
	}

	return New(p.c[i:]...)
}

// Mul returns p*q.
func (p Poly) Mul(q Poly) Poly {
	if len(p.c) == 0 || len(q.c) == 0 {
		return Poly{c: []float64{0}}
	}

	out := make([]float64, len(p.c)+len(q.c)-1)
	for i, a := range p.c {
		for j, b := range q.c {
			out[i+j] += a * b
		}
	}

	return Poly{c: out}
}

// Scale returns k*p.
func (p Poly) Scale(k float64) Poly {
	out := make([]float64, len(p.c))
	for i, v := range p.c {
		out[i] = k * v
	}

	return Poly{c: out}
}

// DivMod performs polynomial long division p = q*d + r. Both operands are
// trimmed of exact leading zeros first; the remainder has degree lower than
// d and is itself trimmed.
func (p Poly) DivMod(d Poly) (Poly, Poly, error) {
	num := p.Trim(0)
	den := d.Trim(0)

	if den.IsZero(0) {
		return Poly{}, Poly{}, ErrDivideByZero
	}

	if len(num.c) < len(den.c) {
		return New(0), num, nil
	}

	rem := num.Coeffs()
	quo := make([]float64, len(num.c)-len(den.c)+1)
	lead := den.c[0]

	for i := range quo {
		f := rem[i] / lead
		quo[i] = f

		for j, v := range den.c {
			rem[i+j] -= f * v
		}
	}

	r := New(rem[len(quo):]...)
	if len(r.c) == 0 {
		r = New(0)
	}

	return Poly{c: quo}, r.Trim(0), nil
}

// Coeff returns the coefficient of s^k (0 when out of range).
func (p Poly) Coeff(k int) float64 {
	i := len(p.c) - 1 - k
	if i < 0 || i >= len(p.c) {
		return 0
	}

	return p.c[i]
}

// EvenOdd splits p into the parts holding only even and only odd powers of s.
// Both keep p's length so the powers line up.
func (p Poly) EvenOdd() (Poly, Poly) {
	n := len(p.c) - 1
	even := make([]float64, len(p.c))
	odd := make([]float64, len(p.c))

	for i, v := range p.c {
		if (n-i)%2 == 0 {
			even[i] = v
		} else {
			odd[i] = v
		}
	}

	return Poly{c: even}, Poly{c: odd}
}

// Eval evaluates p at a complex point using Horner's method.
func (p Poly) Eval(x complex128) complex128 {
	var v complex128
	for _, c := range p.c {
		v = v*x + complex(c, 0)
	}

	return v
}

// EvalJW evaluates p on the imaginary axis at s = jw.
func (p Poly) EvalJW(w float64) complex128 {
	return p.Eval(complex(0, w))
}

// Finite reports whether every coefficient is finite.
func (p Poly) Finite() bool {
	for _, v := range p.c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// MaxAbs returns the largest coefficient magnitude.
func (p Poly) MaxAbs() float64 {
	m := 0.0
	for _, v := range p.c {
		m = math.Max(m, math.Abs(v))
	}

	return m
}

// ComplexProduct returns prod(-r) over roots, the constant term of the monic
// polynomial with those roots.
func ComplexProduct(roots []complex128) complex128 {
	acc := complex(1, 0)
	for _, r := range roots {
		acc *= -r
	}

	return acc
}
