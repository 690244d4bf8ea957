package prototype

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/filterforge/dsp/filter/analog/poly"
)

// LowpassToLowpass moves a unit-corner lowpass to corner wo (s -> s/wo).
func LowpassToLowpass(z ZPK, wo float64) ZPK {
	w := complex(wo, 0)

	return ZPK{
		Zeros: mapRoots(z.Zeros, func(r complex128) complex128 { return r * w }),
		Poles: mapRoots(z.Poles, func(r complex128) complex128 { return r * w }),
		Gain:  z.Gain * math.Pow(wo, float64(z.Degree())),
	}
}

// LowpassToHighpass maps a unit-corner lowpass to a highpass with corner wo
// (s -> wo/s). The pole excess becomes zeros at the origin.
func LowpassToHighpass(z ZPK, wo float64) (ZPK, error) {
	if err := nonZeroRoots(z); err != nil {
		return ZPK{}, err
	}

	w := complex(wo, 0)
	zeros := mapRoots(z.Zeros, func(r complex128) complex128 { return w / r })

	for range z.Degree() {
		zeros = append(zeros, 0)
	}

	return ZPK{
		Zeros: zeros,
		Poles: mapRoots(z.Poles, func(r complex128) complex128 { return w / r }),
		Gain:  z.Gain * real(poly.ComplexProduct(z.Zeros)/poly.ComplexProduct(z.Poles)),
	}, nil
}

// LowpassToBandpass maps a unit-corner lowpass to a bandpass centred on wo
// with bandwidth bw (s -> (s^2 + wo^2) / (s*bw)). The order doubles.
func LowpassToBandpass(z ZPK, wo, bw float64) ZPK {
	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	split := func(roots []complex128) []complex128 {
		out := make([]complex128, 0, 2*len(roots))
		lo := make([]complex128, 0, len(roots))

		for _, r := range roots {
			s := r * half
			d := cmplx.Sqrt(s*s - wo2)
			out = append(out, s+d)
			lo = append(lo, s-d)
		}

		return append(out, lo...)
	}

	zeros := split(z.Zeros)
	for range z.Degree() {
		zeros = append(zeros, 0)
	}

	return ZPK{
		Zeros: zeros,
		Poles: split(z.Poles),
		Gain:  z.Gain * math.Pow(bw, float64(z.Degree())),
	}
}

// LowpassToBandstop maps a unit-corner lowpass to a bandstop centred on wo
// with stopband width bw (s -> s*bw / (s^2 + wo^2)). The pole excess becomes
// zero pairs at +/-j*wo.
func LowpassToBandstop(z ZPK, wo, bw float64) (ZPK, error) {
	if err := nonZeroRoots(z); err != nil {
		return ZPK{}, err
	}

	half := complex(bw/2, 0)
	wo2 := complex(wo*wo, 0)

	split := func(roots []complex128) []complex128 {
		out := make([]complex128, 0, 2*len(roots))
		lo := make([]complex128, 0, len(roots))

		for _, r := range roots {
			s := half / r
			d := cmplx.Sqrt(s*s - wo2)
			out = append(out, s+d)
			lo = append(lo, s-d)
		}

		return append(out, lo...)
	}

	zeros := split(z.Zeros)
	for range z.Degree() {
		zeros = append(zeros, complex(0, wo))
	}

	for range z.Degree() {
		zeros = append(zeros, complex(0, -wo))
	}

	return ZPK{
		Zeros: zeros,
		Poles: split(z.Poles),
		Gain:  z.Gain * real(poly.ComplexProduct(z.Zeros)/poly.ComplexProduct(z.Poles)),
	}, nil
}

// BandEdges converts a band pair into the geometric centre and width used by
// the bandpass and bandstop transforms.
func BandEdges(low, high float64) (wo, bw float64) {
	return math.Sqrt(low * high), high - low
}

func mapRoots(roots []complex128, f func(complex128) complex128) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = f(r)
	}

	return out
}

func nonZeroRoots(z ZPK) error {
	if z.Degree() < 0 {
		return fmt.Errorf("%w: more zeros than poles", ErrDegenerate)
	}

	for _, r := range z.Zeros {
		if r == 0 {
			return fmt.Errorf("%w: zero at the origin cannot be inverted", ErrDegenerate)
		}
	}

	for _, r := range z.Poles {
		if r == 0 {
			return fmt.Errorf("%w: pole at the origin cannot be inverted", ErrDegenerate)
		}
	}

	return nil
}
