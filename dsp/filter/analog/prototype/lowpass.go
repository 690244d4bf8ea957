package prototype

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/filterforge/dsp/filter/analog/poly"
)

// MaxBesselOrder is the highest order covered by the Bessel pole table.
const MaxBesselOrder = 10

// NormalizedLowpass returns the unit-corner lowpass prototype for the approximation.
// ripple and attenuation are in dB and only consulted by the approximations
// that need them.
func NormalizedLowpass(a Approximation, order int, ripple, attenuation float64) (ZPK, error) {
	if order < 1 {
		return ZPK{}, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if a.NeedsRipple() && !(ripple > 0) {
		return ZPK{}, fmt.Errorf("%w: %v dB", ErrInvalidRipple, ripple)
	}

	if a.NeedsAttenuation() && !(attenuation > 0) {
		return ZPK{}, fmt.Errorf("%w: %v dB", ErrInvalidAttenuation, attenuation)
	}

	switch a {
	case Butterworth:
		return butterworthLowpass(order), nil
	case Chebyshev1:
		return chebyshev1Lowpass(order, ripple), nil
	case Chebyshev2:
		return chebyshev2Lowpass(order, attenuation), nil
	case Bessel:
		if order > MaxBesselOrder {
			return ZPK{}, fmt.Errorf("%w: bessel supports orders 1..%d, got %d", ErrInvalidOrder, MaxBesselOrder, order)
		}

		return besselLowpass(order), nil
	case Elliptic:
		if attenuation <= ripple {
			return ZPK{}, fmt.Errorf("%w: %v dB must exceed the %v dB passband ripple", ErrInvalidAttenuation, attenuation, ripple)
		}

		zpk, ok := ellipticLowpass(order, ripple, attenuation)
		if !ok {
			return ZPK{}, fmt.Errorf("%w: elliptic prototype (order %d, rp %v, rs %v)", ErrDegenerate, order, ripple, attenuation)
		}

		return zpk, nil
	default:
		return ZPK{}, fmt.Errorf("%w: %q", ErrUnknownApproximation, string(a))
	}
}

// symmetricIndices returns m = -n+1, -n+3, ..., n-1.
func symmetricIndices(n int) []float64 {
	out := make([]float64, 0, n)
	for m := -n + 1; m < n; m += 2 {
		out = append(out, float64(m))
	}

	return out
}

// butterworthLowpass places the poles evenly on the left unit semicircle.
func butterworthLowpass(n int) ZPK {
	poles := make([]complex128, 0, n)
	for _, m := range symmetricIndices(n) {
		poles = append(poles, -cmplx.Exp(complex(0, math.Pi*m/float64(2*n))))
	}

	return ZPK{Poles: poles, Gain: 1}
}

// chebyshev1Lowpass places the poles on an ellipse so the passband ripples
// between 0 and -ripple dB up to 1 rad/s.
func chebyshev1Lowpass(n int, ripple float64) ZPK {
	eps := math.Sqrt(dbToMinusOne(ripple))
	mu := math.Asinh(1/eps) / float64(n)

	poles := make([]complex128, 0, n)
	for _, m := range symmetricIndices(n) {
		theta := math.Pi * m / float64(2*n)
		poles = append(poles, -cmplx.Sinh(complex(mu, theta)))
	}

	k := real(poly.ComplexProduct(poles))
	if n%2 == 0 {
		k /= math.Sqrt(1 + eps*eps)
	}

	return ZPK{Poles: poles, Gain: k}
}

// chebyshev2Lowpass is the inverse Chebyshev response: flat passband and an
// equiripple stopband at least attenuation dB down from 1 rad/s upwards.
func chebyshev2Lowpass(n int, attenuation float64) ZPK {
	de := 1 / math.Sqrt(dbToMinusOne(attenuation))
	mu := math.Asinh(1/de) / float64(n)

	zeros := make([]complex128, 0, n)
	for _, m := range symmetricIndices(n) {
		if m == 0 {
			continue
		}

		z := complex(0, 1) / complex(math.Sin(m*math.Pi/float64(2*n)), 0)
		zeros = append(zeros, -cmplx.Conj(z))
	}

	poles := make([]complex128, 0, n)
	for _, m := range symmetricIndices(n) {
		p := -cmplx.Exp(complex(0, math.Pi*m/float64(2*n)))
		p = complex(math.Sinh(mu)*real(p), math.Cosh(mu)*imag(p))
		poles = append(poles, 1/p)
	}

	k := real(poly.ComplexProduct(poles) / poly.ComplexProduct(zeros))

	return ZPK{Zeros: zeros, Poles: poles, Gain: k}
}

// besselLowpass scales the delay-normalized table so the magnitude is -3 dB
// at 1 rad/s and sets the gain for unity response at DC.
func besselLowpass(n int) ZPK {
	scale := besselMagnitudeScale[n]
	poles := make([]complex128, 0, n)

	for _, p := range besselDelayPoles[n] {
		q := p / complex(scale, 0)

		poles = append(poles, q)
		if imag(q) != 0 {
			poles = append(poles, cmplx.Conj(q))
		}
	}

	return ZPK{Poles: poles, Gain: real(poly.ComplexProduct(poles))}
}

// dbToMinusOne returns 10^(db/10) - 1 without cancellation for small db.
func dbToMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10)
}

// besselDelayPoles are the delay-normalized Bessel poles for orders 1..10,
// one per conjugate pair (positive imaginary part) with the real pole last
// for odd orders.
//
// Source: C.R. Bond, "Bessel Filter Constants".
var besselDelayPoles = [MaxBesselOrder + 1][]complex128{
	{},
	{complex(-1.0, 0)},
	{complex(-1.5, 0.8660254038)},
	{complex(-1.8389073227, 1.7543809598), complex(-2.3221853546, 0)},
	{complex(-2.1037893972, 2.6574180419), complex(-2.8962106028, 0.8672341289)},
	{
		complex(-2.3246743032, 3.5710229203),
		complex(-3.3519563992, 1.7426614162),
		complex(-3.6467385953, 0),
	},
	{
		complex(-2.5159322478, 4.4926729537),
		complex(-3.7357083563, 2.6262723114),
		complex(-4.2483593959, 0.8675096732),
	},
	{
		complex(-2.6856768789, 5.4206941307),
		complex(-4.0701391636, 3.5171740477),
		complex(-4.7582905282, 1.7392860613),
		complex(-4.9717868585, 0),
	},
	{
		complex(-2.8389839177, 6.3539112470),
		complex(-4.3682892668, 4.4144425006),
		complex(-5.2048407906, 2.6161751538),
		complex(-5.5878860022, 0.8676144454),
	},
	{
		complex(-2.9792607983, 7.2914651564),
		complex(-4.6384398714, 5.3172716754),
		complex(-5.6044218195, 3.4981415816),
		complex(-6.1293679040, 1.7378483835),
		complex(-6.2970079817, 0),
	},
	{
		complex(-3.1088931555, 8.2324678728),
		complex(-4.8862195924, 6.2249854825),
		complex(-5.9675283089, 4.3849471924),
		complex(-6.6152909655, 2.6115679208),
		complex(-6.9220449048, 0.8676594792),
	},
}

// besselMagnitudeScale is the -3 dB frequency of each delay-normalized
// Bessel filter.
var besselMagnitudeScale = [MaxBesselOrder + 1]float64{
	0,
	1.0,
	1.36165412871613,
	1.75567236868121,
	2.11391767490422,
	2.42741070215263,
	2.70339506120292,
	2.95172214703872,
	3.17961723751065,
	3.39169313891166,
	3.59098059456916,
}
