// Package latex renders analog transfer functions for display.
package latex

import (
	"math"
	"strconv"
	"strings"
)

// pruneRatio drops terms smaller than this fraction of the largest
// coefficient of their polynomial.
const pruneRatio = 1e-15

// TransferFunction renders num/den (descending powers of s) as
// "H(s) = \frac{N}{D}" with four significant digits per coefficient.
func TransferFunction(num, den []float64) string {
	return `H(s) = \frac{` + Polynomial(num) + `}{` + Polynomial(den) + `}`
}

// Polynomial renders coefficients in descending powers of s. Terms below
// 1e-15 times the largest magnitude are omitted; an empty result is "0".
func Polynomial(coeffs []float64) string {
	maxAbs := 0.0
	for _, c := range coeffs {
		maxAbs = math.Max(maxAbs, math.Abs(c))
	}

	threshold := maxAbs * pruneRatio

	var b strings.Builder

	for i, c := range coeffs {
		if c == 0 || math.Abs(c) < threshold {
			continue
		}

		power := len(coeffs) - 1 - i
		neg := c < 0

		switch {
		case b.Len() == 0 && neg:
			b.WriteString("-")
		case b.Len() > 0 && neg:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}

		b.WriteString(term(math.Abs(c), power))
	}

	if b.Len() == 0 {
		return "0"
	}

	return b.String()
}

func term(mag float64, power int) string {
	var coef string

	if mag != 1 || power == 0 {
		coef = Number(mag)
	}

	switch power {
	case 0:
		return coef
	case 1:
		return join(coef, "s")
	default:
		return join(coef, "s^{"+strconv.Itoa(power)+"}")
	}
}

func join(coef, s string) string {
	if coef == "" {
		return s
	}

	return coef + " " + s
}

// Number formats v with four significant digits, using
// "m \cdot 10^{e}" for very large or small magnitudes.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return `\text{` + strconv.FormatFloat(v, 'g', -1, 64) + `}`
	}

	s := strconv.FormatFloat(v, 'g', 4, 64)

	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}

	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}

	return mant + ` \cdot 10^{` + strconv.Itoa(e) + `}`
}
