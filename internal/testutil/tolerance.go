// Package testutil holds the numeric assertions shared by the engine tests.
package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails tb at the first index where got and want are
// more than eps apart. Component lists and response arrays must also agree in
// length.
func RequireSliceNearlyEqual(tb testing.TB, got, want []float64, eps float64) {
	tb.Helper()
	requireClose(tb, got, want, func(float64) float64 { return eps })
}

// RequireRelNearlyEqual is RequireSliceNearlyEqual with a tolerance of rel
// scaled by max(|want|, 1), for values spanning many decades such as
// capacitances next to resistances.
func RequireRelNearlyEqual(tb testing.TB, got, want []float64, rel float64) {
	tb.Helper()
	requireClose(tb, got, want, func(w float64) float64 { return rel * math.Max(math.Abs(w), 1) })
}

func requireClose(tb testing.TB, got, want []float64, tol func(want float64) float64) {
	tb.Helper()

	if len(got) != len(want) {
		tb.Fatalf("got %d values, want %d", len(got), len(want))
	}

	for i, w := range want {
		if d := math.Abs(got[i] - w); !(d <= tol(w)) {
			tb.Fatalf("value %d: got %v, want %v (off by %v)", i, got[i], w, d)
		}
	}
}

// RequireFinite fails tb on the first NaN or infinity, as produced by a
// response evaluated on a pole.
func RequireFinite(tb testing.TB, data []float64) {
	tb.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tb.Fatalf("value %d is %v", i, v)
		}
	}
}

// RequireStrictlyIncreasing fails tb unless data is a strictly ascending grid.
func RequireStrictlyIncreasing(tb testing.TB, data []float64) {
	tb.Helper()

	for i := 1; i < len(data); i++ {
		if !(data[i] > data[i-1]) {
			tb.Fatalf("value %d: %v follows %v", i, data[i], data[i-1])
		}
	}
}

// RequirePositive fails tb on any component value that is not a finite
// positive number.
func RequirePositive(tb testing.TB, data []float64) {
	tb.Helper()

	for i, v := range data {
		if !(v > 0) || math.IsInf(v, 0) {
			tb.Fatalf("value %d: %v is not a usable component value", i, v)
		}
	}
}
