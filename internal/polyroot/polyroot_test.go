package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
	"testing"
)

func almostEqual(valA, valB, tol float64) bool {
	if valA == valB {
		return true
	}

	diff := math.Abs(valA - valB)
	if tol > 0 && tol < 1 {
		mag := math.Max(math.Abs(valA), math.Abs(valB))
		if mag > 1 {
			return diff/mag < tol
		}
	}

	return diff < tol
}

func TestDurandKerner_Quadratic(t *testing.T) {
	// z^2 - 3z + 2 = (z-1)(z-2), roots at 1 and 2
	coeff := []complex128{1, -3, 2}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	r := [2]float64{real(roots[0]), real(roots[1])}
	if r[0] > r[1] {
		r[0], r[1] = r[1], r[0]
	}

	if !almostEqual(r[0], 1.0, 1e-10) || !almostEqual(r[1], 2.0, 1e-10) {
		t.Errorf("expected roots {1,2}, got {%v, %v}", r[0], r[1])
	}
}

func TestDurandKerner_Quartic(t *testing.T) {
	// (z^2 - 1)(z^2 - 4) = z^4 - 5z^2 + 4, roots: -2, -1, 1, 2
	coeff := []complex128{1, 0, -5, 0, 4}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-8 {
			t.Errorf("root %d: p(%v) = %v, expected ~0", i, r, val)
		}
	}
}

func TestDurandKerner_ConjugatePairRoots(t *testing.T) {
	// z^4 + 1 has roots at e^{i*pi/4 * (2k+1)}, k=0..3
	coeff := []complex128{1, 0, 0, 0, 1}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}

	for i, r := range roots {
		if !almostEqual(cmplx.Abs(r), 1.0, 1e-9) {
			t.Errorf("root %d: |r|=%v, expected 1.0", i, cmplx.Abs(r))
		}
	}
}

func TestPolyEval(t *testing.T) {
	// p(z) = 2z^3 - 3z + 5, p(2) = 16 - 6 + 5 = 15
	coeff := []complex128{2, 0, -3, 5}

	val := PolyEval(coeff, 2)
	if !almostEqual(real(val), 15, 1e-12) || !almostEqual(imag(val), 0, 1e-12) {
		t.Errorf("PolyEval: expected 15, got %v", val)
	}
}

func TestDurandKerner_RejectsDegenerate(t *testing.T) {
	for _, coeff := range [][]complex128{nil, {1}, {0, 1, 2}} {
		if _, err := DurandKerner(coeff); !errors.Is(err, ErrDegeneratePolynomial) {
			t.Fatalf("%v: expected ErrDegeneratePolynomial, got %v", coeff, err)
		}
	}
}

func TestDurandKerner_NonMonic(t *testing.T) {
	// 2(z - 3)(z + 0.5) = 2z^2 - 5z - 3
	roots, err := DurandKerner([]complex128{2, -5, -3})
	if err != nil {
		t.Fatal(err)
	}

	sortByReal(roots)

	if !almostEqual(real(roots[0]), -0.5, 1e-10) || !almostEqual(real(roots[1]), 3, 1e-10) {
		t.Fatalf("roots = %v", roots)
	}
}

func TestInitialGuesses_Distinct(t *testing.T) {
	g := initialGuesses([]complex128{1, 0, 0, 0, 0, -1})
	if len(g) != 5 {
		t.Fatalf("len = %d", len(g))
	}

	for i := range g {
		for j := i + 1; j < len(g); j++ {
			if cmplx.Abs(g[i]-g[j]) < 1e-3 {
				t.Fatalf("guesses %d and %d coincide: %v", i, j, g[i])
			}
		}
	}
}

func TestIsConjugate(t *testing.T) {
	tests := []struct {
		name string
		a, b complex128
		want bool
	}{
		{"exact conjugates", complex(1, 2), complex(1, -2), true},
		{"near conjugates", complex(1, 2), complex(1.0+1e-9, -2.0+1e-9), true},
		{"not conjugates", complex(1, 2), complex(2, -2), false},
		{"real values", complex(5, 0), complex(5, 0), true},
		{"zero", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsConjugate(tt.a, tt.b, ConjugateTol)
			if got != tt.want {
				t.Errorf("IsConjugate(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// ============================================================
// Durand-Kerner stress tests
// ============================================================

func TestDurandKerner_UnitCircleRoots(t *testing.T) {
	// z^4 - 1, roots: 1, -1, i, -i
	coeff := []complex128{1, 0, 0, 0, -1}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		if !almostEqual(cmplx.Abs(r), 1.0, 1e-8) {
			t.Errorf("root %d: |r|=%v, expected 1.0", i, cmplx.Abs(r))
		}

		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-7 {
			t.Errorf("root %d: p(r) = %v, expected ~0", i, val)
		}
	}
}

// ============================================================
// Real-coefficient roots
// ============================================================

func sortByReal(r []complex128) {
	sort.Slice(r, func(i, j int) bool {
		if real(r[i]) != real(r[j]) {
			return real(r[i]) < real(r[j])
		}

		return imag(r[i]) < imag(r[j])
	})
}

func TestRoots_TrailingZerosBecomeOriginRoots(t *testing.T) {
	// s^3 + 2s^2 = s^2 (s + 2)
	roots, err := Roots([]float64{1, 2, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(roots))
	}

	sortByReal(roots)

	if roots[0] != -2 || roots[1] != 0 || roots[2] != 0 {
		t.Fatalf("unexpected roots %v", roots)
	}
}

func TestRoots_LeadingZerosIgnored(t *testing.T) {
	roots, err := Roots([]float64{0, 0, 1, -3, 2})
	if err != nil {
		t.Fatal(err)
	}

	sortByReal(roots)

	if len(roots) != 2 || !almostEqual(real(roots[0]), 1, 1e-12) || !almostEqual(real(roots[1]), 2, 1e-12) {
		t.Fatalf("unexpected roots %v", roots)
	}
}

func TestRoots_ZeroPolynomial(t *testing.T) {
	if _, err := Roots([]float64{0, 0}); !errors.Is(err, ErrDegeneratePolynomial) {
		t.Fatalf("expected ErrDegeneratePolynomial, got %v", err)
	}

	if _, err := Roots([]float64{1, math.NaN()}); !errors.Is(err, ErrDegeneratePolynomial) {
		t.Fatalf("expected ErrDegeneratePolynomial for NaN, got %v", err)
	}
}

func TestRoots_ConstantHasNoRoots(t *testing.T) {
	roots, err := Roots([]float64{4})
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 0 {
		t.Fatalf("expected no roots, got %v", roots)
	}
}

func TestRoots_ComplexQuadratic(t *testing.T) {
	// s^2 + 2s + 5: roots -1 +/- 2j
	roots, err := Roots([]float64{1, 2, 5})
	if err != nil {
		t.Fatal(err)
	}

	sortByReal(roots)

	if roots[0] != complex(-1, -2) || roots[1] != complex(-1, 2) {
		t.Fatalf("unexpected roots %v", roots)
	}
}

func TestRoots_WideCoefficientRange(t *testing.T) {
	// Poles of a band-pass section pair around 2*pi*1 kHz.
	w := 2 * math.Pi * 1000
	want := []complex128{
		complex(-300, w*1.05), complex(-300, -w*1.05),
		complex(-280, w*0.95), complex(-280, -w*0.95),
		complex(-150, w), complex(-150, -w),
	}

	coeff := expand(want)

	roots, err := Roots(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != len(want) {
		t.Fatalf("expected %d roots, got %d", len(want), len(roots))
	}

	for _, r := range want {
		best := math.MaxFloat64
		for _, got := range roots {
			best = math.Min(best, cmplx.Abs(got-r))
		}

		if best > 1e-6*w {
			t.Errorf("root %v not recovered (closest distance %g)", r, best)
		}
	}

	for _, r := range roots {
		if imag(r) == 0 {
			t.Errorf("complex root snapped to real axis: %v", r)
		}
	}
}

func TestSnapReal_MakesExactConjugates(t *testing.T) {
	in := []complex128{complex(-1, 2+1e-9), complex(-1+1e-9, -2), complex(3, 1e-12)}

	out := SnapReal(in, 1e-9)

	if out[1] != cmplx.Conj(out[0]) {
		t.Fatalf("expected exact conjugates, got %v %v", out[0], out[1])
	}

	if imag(out[2]) != 0 {
		t.Fatalf("expected real root, got %v", out[2])
	}

	if in[2] != complex(3, 1e-12) {
		t.Fatal("input slice was modified")
	}
}

func expand(roots []complex128) []float64 {
	poly := []complex128{1}

	for _, r := range roots {
		next := make([]complex128, len(poly)+1)
		for i, c := range poly {
			next[i] += c
			next[i+1] -= c * r
		}

		poly = next
	}

	out := make([]float64, len(poly))
	for i, c := range poly {
		out[i] = real(c)
	}

	return out
}
