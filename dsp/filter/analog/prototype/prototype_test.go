package prototype

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/filterforge/dsp/filter/analog/poly"
	"github.com/cwbudde/filterforge/internal/testutil"
)

func magDB(tf TransferFunction, w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(Evaluate(tf, []float64{w})[0]))
}

func mustDesign(t *testing.T, req Request) Filter {
	t.Helper()

	f, err := Design(req)
	if err != nil {
		t.Fatalf("Design(%+v): %v", req, err)
	}

	return f
}

// ---------------------------------------------------------------------------
// Lowpass prototypes
// ---------------------------------------------------------------------------

func TestButterworth_ThirdOrderCoefficients(t *testing.T) {
	f := mustDesign(t, Request{Approximation: Butterworth, Order: 3, Band: Lowpass, Corner: []float64{1}})

	testutil.RequireSliceNearlyEqual(t, f.TF.Num, []float64{1}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, f.TF.Den, []float64{1, 2, 2, 1}, 1e-12)
}

func TestChebyshev1_SecondOrderOneDBRipple(t *testing.T) {
	f := mustDesign(t, Request{Approximation: Chebyshev1, Order: 2, Band: Lowpass, Corner: []float64{1}, Ripple: 1})

	testutil.RequireSliceNearlyEqual(t, f.TF.Num, []float64{0.98261229}, 1e-5)
	testutil.RequireSliceNearlyEqual(t, f.TF.Den, []float64{1, 1.09773433, 1.10251033}, 1e-5)
}

func TestChebyshev1_RippleEdgeAtCorner(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 5, 8} {
		f := mustDesign(t, Request{Approximation: Chebyshev1, Order: order, Band: Lowpass, Corner: []float64{1}, Ripple: 0.5})

		if got := magDB(f.TF, 1); math.Abs(got+0.5) > 1e-6 {
			t.Fatalf("order %d: |H(j1)| = %.6f dB, want -0.5", order, got)
		}
	}
}

func TestChebyshev2_StopbandEdgeAtCorner(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 7} {
		f := mustDesign(t, Request{Approximation: Chebyshev2, Order: order, Band: Lowpass, Corner: []float64{1}, Attenuation: 40})

		if got := magDB(f.TF, 1); math.Abs(got+40) > 1e-6 {
			t.Fatalf("order %d: |H(j1)| = %.6f dB, want -40", order, got)
		}

		if got := magDB(f.TF, 1e-4); math.Abs(got) > 1e-3 {
			t.Fatalf("order %d: DC gain %.6f dB, want 0", order, got)
		}

		for _, z := range f.ZPK.Zeros {
			if real(z) != 0 {
				t.Fatalf("order %d: zero %v off the imaginary axis", order, z)
			}
		}
	}
}

func TestBessel_MagnitudeNormalized(t *testing.T) {
	for order := 1; order <= MaxBesselOrder; order++ {
		f := mustDesign(t, Request{Approximation: Bessel, Order: order, Band: Lowpass, Corner: []float64{1}})

		if got := magDB(f.TF, 1); math.Abs(got+3.0103) > 0.01 {
			t.Fatalf("order %d: |H(j1)| = %.4f dB, want -3.01", order, got)
		}

		if got := magDB(f.TF, 1e-6); math.Abs(got) > 1e-9 {
			t.Fatalf("order %d: DC gain %.3g dB, want 0", order, got)
		}
	}
}

func TestBessel_OrderAboveTableRejected(t *testing.T) {
	_, err := NormalizedLowpass(Bessel, MaxBesselOrder+1, 0, 0)
	if !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("expected ErrInvalidOrder, got %v", err)
	}
}

func TestElliptic_RippleAndStopband(t *testing.T) {
	for _, order := range []int{1, 2, 3, 4, 5, 6} {
		f := mustDesign(t, Request{
			Approximation: Elliptic, Order: order, Band: Lowpass, Corner: []float64{1},
			Ripple: 1, Attenuation: 40,
		})

		if got := magDB(f.TF, 1); math.Abs(got+1) > 1e-4 {
			t.Fatalf("order %d: |H(j1)| = %.6f dB, want -1", order, got)
		}

		for _, w := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
			if got := magDB(f.TF, w); got > 1e-6 || got < -1-1e-6 {
				t.Fatalf("order %d: passband gain %.6f dB at w=%v outside [-1, 0]", order, got, w)
			}
		}

		if !f.ZPK.Stable() {
			t.Fatalf("order %d: unstable poles %v", order, f.ZPK.Poles)
		}

		if order >= 2 && len(f.ZPK.Zeros) == 0 {
			t.Fatalf("order %d: expected finite transmission zeros", order)
		}
	}
}

func TestElliptic_AttenuationMustExceedRipple(t *testing.T) {
	_, err := NormalizedLowpass(Elliptic, 4, 3, 3)
	if !errors.Is(err, ErrInvalidAttenuation) {
		t.Fatalf("expected ErrInvalidAttenuation, got %v", err)
	}
}

func TestLowpass_ParameterValidation(t *testing.T) {
	tests := []struct {
		name string
		a    Approximation
		n    int
		rp   float64
		rs   float64
		want error
	}{
		{"zero order", Butterworth, 0, 0, 0, ErrInvalidOrder},
		{"chebyshev1 no ripple", Chebyshev1, 3, 0, 0, ErrInvalidRipple},
		{"chebyshev2 no attenuation", Chebyshev2, 3, 0, 0, ErrInvalidAttenuation},
		{"elliptic no ripple", Elliptic, 3, 0, 40, ErrInvalidRipple},
		{"unknown", Approximation("legendre"), 3, 0, 0, ErrUnknownApproximation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NormalizedLowpass(tt.a, tt.n, tt.rp, tt.rs); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseApproximation(t *testing.T) {
	for _, a := range Approximations() {
		got, err := ParseApproximation(string(a))
		if err != nil || got != a {
			t.Fatalf("ParseApproximation(%q) = %q, %v", a, got, err)
		}
	}

	if _, err := ParseApproximation("gaussian"); !errors.Is(err, ErrUnknownApproximation) {
		t.Fatalf("expected ErrUnknownApproximation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Band transforms
// ---------------------------------------------------------------------------

func TestHighpass_SecondOrderButterworth(t *testing.T) {
	f := mustDesign(t, Request{Approximation: Butterworth, Order: 2, Band: Highpass, Corner: []float64{10}})

	testutil.RequireSliceNearlyEqual(t, f.TF.Num, []float64{1, 0, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, f.TF.Den, []float64{1, 10 * math.Sqrt2, 100}, 1e-10)

	if got := magDB(f.TF, 10); math.Abs(got+3.0103) > 1e-3 {
		t.Fatalf("|H(j wc)| = %.4f dB, want -3.01", got)
	}
}

func TestBandTransforms_DenominatorLength(t *testing.T) {
	for _, a := range Approximations() {
		for order := 1; order <= 10; order++ {
			for _, band := range []BandType{Lowpass, Highpass, Bandpass, Bandstop} {
				corner := []float64{2 * math.Pi * 1000}
				want := order + 1

				if band.Corners() == 2 {
					corner = []float64{2 * math.Pi * 800, 2 * math.Pi * 1250}
					want = 2*order + 1
				}

				f := mustDesign(t, Request{
					Approximation: a, Order: order, Band: band, Corner: corner,
					Ripple: 1, Attenuation: 40,
				})

				if len(f.TF.Den) != want {
					t.Fatalf("%s %v order %d: len(den)=%d, want %d", a, band, order, len(f.TF.Den), want)
				}

				if !f.ZPK.Stable() {
					t.Fatalf("%s %v order %d: unstable", a, band, order)
				}

				testutil.RequireFinite(t, f.TF.Num)
				testutil.RequireFinite(t, f.TF.Den)
			}
		}
	}
}

func TestBandpass_PeakAtGeometricCentre(t *testing.T) {
	lo, hi := 2*math.Pi*800.0, 2*math.Pi*1250.0
	f := mustDesign(t, Request{Approximation: Butterworth, Order: 3, Band: Bandpass, Corner: []float64{lo, hi}})

	wo, _ := BandEdges(lo, hi)

	if got := magDB(f.TF, wo); math.Abs(got) > 1e-6 {
		t.Fatalf("centre gain %.3g dB, want 0", got)
	}

	for _, w := range []float64{lo, hi} {
		if got := magDB(f.TF, w); math.Abs(got+3.0103) > 1e-3 {
			t.Fatalf("edge gain %.4f dB at %v, want -3.01", got, w)
		}
	}
}

func TestBandstop_NotchAtCentre(t *testing.T) {
	lo, hi := 2*math.Pi*900.0, 2*math.Pi*1100.0
	f := mustDesign(t, Request{Approximation: Chebyshev1, Order: 2, Band: Bandstop, Corner: []float64{lo, hi}, Ripple: 0.5})

	wo, _ := BandEdges(lo, hi)

	if got := magDB(f.TF, wo); got > -120 {
		t.Fatalf("centre gain %.1f dB, expected a notch", got)
	}

	if got := magDB(f.TF, 10); math.Abs(got) > 0.51 {
		t.Fatalf("low-frequency gain %.3f dB outside the ripple band", got)
	}
}

func TestDesign_CornerValidation(t *testing.T) {
	tests := []struct {
		name   string
		band   BandType
		corner []float64
	}{
		{"missing", Lowpass, nil},
		{"negative", Highpass, []float64{-1}},
		{"single edge for band", Bandpass, []float64{10}},
		{"reversed band", Bandstop, []float64{20, 10}},
		{"infinite", Lowpass, []float64{math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Design(Request{Approximation: Butterworth, Order: 2, Band: tt.band, Corner: tt.corner})
			if !errors.Is(err, ErrInvalidCorner) {
				t.Fatalf("expected ErrInvalidCorner, got %v", err)
			}
		})
	}
}

func TestLowpassToHighpass_RejectsOriginRoots(t *testing.T) {
	_, err := LowpassToHighpass(ZPK{Poles: []complex128{0}, Gain: 1}, 1)
	if !errors.Is(err, ErrDegenerate) {
		t.Fatalf("expected ErrDegenerate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Factorization and sections
// ---------------------------------------------------------------------------

func TestFactor_RecoversPoles(t *testing.T) {
	f := mustDesign(t, Request{Approximation: Chebyshev1, Order: 5, Band: Lowpass, Corner: []float64{2 * math.Pi * 1000}, Ripple: 1})

	got, err := Factor(f.TF)
	if err != nil {
		t.Fatal(err)
	}

	if len(got.Poles) != 5 || len(got.Zeros) != 0 {
		t.Fatalf("got %d poles / %d zeros", len(got.Poles), len(got.Zeros))
	}

	for _, want := range f.ZPK.Poles {
		best := math.Inf(1)
		for _, p := range got.Poles {
			best = math.Min(best, cmplx.Abs(p-want))
		}

		if best > 1e-6*cmplx.Abs(want) {
			t.Fatalf("pole %v not recovered (distance %g)", want, best)
		}
	}

	if math.Abs(got.Gain-f.ZPK.Gain) > 1e-9*math.Abs(f.ZPK.Gain) {
		t.Fatalf("gain %v, want %v", got.Gain, f.ZPK.Gain)
	}
}

func TestSections_ProductMatchesTransferFunction(t *testing.T) {
	f := mustDesign(t, Request{Approximation: Elliptic, Order: 4, Band: Lowpass, Corner: []float64{1}, Ripple: 0.5, Attenuation: 50})

	secs, err := Sections(f.ZPK)
	if err != nil {
		t.Fatal(err)
	}

	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}

	num := poly.New(1)
	den := poly.New(1)

	for _, s := range secs {
		num = num.Mul(poly.New(s.B[:]...))
		den = den.Mul(poly.New(s.A[:]...))
	}

	testutil.RequireSliceNearlyEqual(t, num.Trim(0).Coeffs(), f.TF.Num, 1e-9)
	testutil.RequireSliceNearlyEqual(t, den.Coeffs(), f.TF.Den, 1e-9)
}

func TestSections_WorstPoleLast(t *testing.T) {
	// Poles at |p| = 0.5 and |p| = 3: the one nearer the unit circle goes last.
	zpk := ZPK{
		Poles: []complex128{complex(-0.3, 0.4), complex(-0.3, -0.4), complex(-1, 2.8284271247461903), complex(-1, -2.8284271247461903)},
		Gain:  2,
	}

	secs, err := Sections(zpk)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(secs[1].A[2]-0.25) > 1e-12 {
		t.Fatalf("last section a2 = %v, want 0.25", secs[1].A[2])
	}

	if math.Abs(secs[0].A[2]-9) > 1e-9 {
		t.Fatalf("first section a2 = %v, want 9", secs[0].A[2])
	}

	if secs[0].B != [3]float64{2, 0, 0} || secs[1].B != [3]float64{1, 0, 0} {
		t.Fatalf("unexpected numerators %v %v", secs[0].B, secs[1].B)
	}
}

func TestSections_OddOrderPadsWithOriginPole(t *testing.T) {
	f := mustDesign(t, Request{Approximation: Butterworth, Order: 3, Band: Lowpass, Corner: []float64{2}})

	secs, err := Sections(f.ZPK)
	if err != nil {
		t.Fatal(err)
	}

	if len(secs) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(secs))
	}

	degenerate := 0

	for _, s := range secs {
		if s.A[2] == 0 {
			degenerate++
		}
	}

	if degenerate != 1 {
		t.Fatalf("expected exactly one section with a pole at the origin, got %d", degenerate)
	}
}

func TestSections_UnpairedComplexRoot(t *testing.T) {
	_, err := Sections(ZPK{Poles: []complex128{complex(-1, 1), complex(-2, -1)}, Gain: 1})
	if !errors.Is(err, ErrUnpairedRoot) {
		t.Fatalf("expected ErrUnpairedRoot, got %v", err)
	}
}

func TestSections_GainOnly(t *testing.T) {
	secs, err := Sections(ZPK{Gain: 3})
	if err != nil {
		t.Fatal(err)
	}

	if len(secs) != 1 || secs[0].B[0] != 3 || secs[0].A[0] != 1 {
		t.Fatalf("unexpected sections %+v", secs)
	}
}

func TestFactorize_BandpassIsStable(t *testing.T) {
	for _, a := range Approximations() {
		f := mustDesign(t, Request{
			Approximation: a, Order: 6, Band: Bandpass,
			Corner: []float64{2 * math.Pi * 950, 2 * math.Pi * 1050}, Ripple: 1, Attenuation: 40,
		})

		secs, err := Factorize(f.TF)
		if err != nil {
			t.Fatalf("%s: %v", a, err)
		}

		if len(secs) != 6 {
			t.Fatalf("%s: expected 6 sections, got %d", a, len(secs))
		}

		for i, s := range secs {
			if s.A[1] < 0 || s.A[2] <= 0 {
				t.Fatalf("%s: section %d denominator %v has right half-plane roots", a, i, s.A)
			}
		}
	}
}

func TestNormalizedLowpass_MatchesUnitCornerDesign(t *testing.T) {
	for _, a := range Approximations() {
		zpk, err := NormalizedLowpass(a, 4, 1, 40)
		if err != nil {
			t.Fatalf("%s: %v", a, err)
		}

		f := mustDesign(t, Request{
			Approximation: a, Order: 4, Band: Lowpass, Corner: []float64{1},
			Ripple: 1, Attenuation: 40,
		})

		for _, w := range []float64{0.1, 0.5, 1, 2} {
			want := magDB(f.TF, w)
			if got := magDB(zpk.TransferFunction(), w); math.Abs(got-want) > 1e-9 {
				t.Fatalf("%s at w=%v: %.9f dB, want %.9f", a, w, got, want)
			}
		}
	}
}
