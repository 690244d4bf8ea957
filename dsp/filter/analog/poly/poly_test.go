package poly

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/filterforge/internal/testutil"
)

func TestFromRoots_ConjugatePair(t *testing.T) {
	// (s - (-1+j)) (s - (-1-j)) = s^2 + 2s + 2
	p := FromRoots([]complex128{complex(-1, 1), complex(-1, -1)}, 3)
	testutil.RequireSliceNearlyEqual(t, p.Coeffs(), []float64{3, 6, 6}, 1e-15)
}

func TestFromRoots_Empty(t *testing.T) {
	p := FromRoots(nil, 2.5)
	testutil.RequireSliceNearlyEqual(t, p.Coeffs(), []float64{2.5}, 0)
}

func TestNew_CopiesInput(t *testing.T) {
	in := []float64{1, 2, 3}
	p := New(in...)
	in[0] = 99

	if p.Coeffs()[0] != 1 {
		t.Fatal("New aliases its input")
	}

	c := p.Coeffs()
	c[1] = 42

	if p.Coeff(1) != 2 {
		t.Fatal("Coeffs aliases internal storage")
	}
}

func TestDegreeAndTrim(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
		degree int
		trim   []float64
	}{
		{"cubic", []float64{1, 0, 0, 1}, 3, []float64{1, 0, 0, 1}},
		{"leading zeros", []float64{0, 0, 2, 1}, 1, []float64{2, 1}},
		{"constant", []float64{5}, 0, []float64{5}},
		{"zero", []float64{0, 0}, -1, []float64{0}},
		{"empty", nil, -1, []float64{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.coeffs...)
			if got := p.Degree(); got != tt.degree {
				t.Fatalf("Degree = %d, want %d", got, tt.degree)
			}

			testutil.RequireSliceNearlyEqual(t, p.Trim(0).Coeffs(), tt.trim, 0)
		})
	}
}

func TestMulAndScale(t *testing.T) {
	p := New(1, 1)  // s + 1
	q := New(1, -1) // s - 1

	testutil.RequireSliceNearlyEqual(t, p.Mul(q).Coeffs(), []float64{1, 0, -1}, 0)
	testutil.RequireSliceNearlyEqual(t, p.Scale(-2).Coeffs(), []float64{-2, -2}, 0)
}

func TestDivMod(t *testing.T) {
	// s^3 + 2s^2 + 3s + 4 = (s + 1)(s^2 + s + 2) + 2
	q, r, err := New(1, 2, 3, 4).DivMod(New(1, 1))
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, q.Coeffs(), []float64{1, 1, 2}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, r.Coeffs(), []float64{2}, 1e-15)

	back := q.Mul(New(1, 1)).Coeffs()
	back[len(back)-1] += r.Coeff(0)
	testutil.RequireSliceNearlyEqual(t, back, []float64{1, 2, 3, 4}, 1e-15)
}

func TestDivMod_LowerDegreeNumerator(t *testing.T) {
	q, r, err := New(2, 1).DivMod(New(1, 0, 1))
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, q.Coeffs(), []float64{0}, 0)
	testutil.RequireSliceNearlyEqual(t, r.Coeffs(), []float64{2, 1}, 0)
}

func TestDivMod_ByZero(t *testing.T) {
	if _, _, err := New(1, 2).DivMod(New(0, 0)); !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
}

func TestCoeff(t *testing.T) {
	p := New(4, 3, 2)

	for k, want := range map[int]float64{0: 2, 1: 3, 2: 4, 3: 0, -1: 0} {
		if got := p.Coeff(k); got != want {
			t.Fatalf("Coeff(%d) = %v, want %v", k, got, want)
		}
	}
}

func TestEvenOdd(t *testing.T) {
	// s^4 + 2s^3 + 3s^2 + 4s + 5
	even, odd := New(1, 2, 3, 4, 5).EvenOdd()

	testutil.RequireSliceNearlyEqual(t, even.Coeffs(), []float64{1, 0, 3, 0, 5}, 0)
	testutil.RequireSliceNearlyEqual(t, odd.Coeffs(), []float64{0, 2, 0, 4, 0}, 0)
}

func TestEval(t *testing.T) {
	p := New(1, 2, 2) // s^2 + 2s + 2

	if got := p.Eval(complex(-1, 1)); cmplx.Abs(got) > 1e-15 {
		t.Fatalf("root evaluates to %v", got)
	}

	// At s = j: -1 + 2j + 2 = 1 + 2j.
	if got := p.EvalJW(1); cmplx.Abs(got-complex(1, 2)) > 1e-15 {
		t.Fatalf("EvalJW(1) = %v", got)
	}
}

func TestFiniteAndMaxAbs(t *testing.T) {
	if !New(1, -7, 3).Finite() {
		t.Fatal("finite polynomial reported non-finite")
	}

	if New(1, math.NaN()).Finite() || New(math.Inf(-1)).Finite() {
		t.Fatal("non-finite polynomial reported finite")
	}

	if got := New(1, -7, 3).MaxAbs(); got != 7 {
		t.Fatalf("MaxAbs = %v", got)
	}
}

func TestComplexProduct(t *testing.T) {
	got := ComplexProduct([]complex128{complex(-1, 1), complex(-1, -1), -3})
	if cmplx.Abs(got-6) > 1e-15 {
		t.Fatalf("got %v, want 6", got)
	}
}
