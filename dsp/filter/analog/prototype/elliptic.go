package prototype

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/filterforge/dsp/filter/analog/poly"
)

const machineEps = 2.220446049250313e-16

// ellipticLowpass places the poles and imaginary-axis zeros of an order-n
// elliptic (Cauer) lowpass with ripple dB passband ripple up to 1 rad/s and
// at least attenuation dB in the stopband.
//
//nolint:funlen,cyclop
func ellipticLowpass(n int, ripple, attenuation float64) (ZPK, bool) {
	epsSq := dbToMinusOne(ripple)
	stopSq := dbToMinusOne(attenuation)

	if !(epsSq > 0) || !(stopSq > 0) {
		return ZPK{}, false
	}

	m1 := epsSq / stopSq
	if !(m1 > 0 && m1 < 1) {
		return ZPK{}, false
	}

	if n == 1 {
		p := -math.Sqrt(1 / epsSq)
		return ZPK{Poles: []complex128{complex(p, 0)}, Gain: -p}, true
	}

	m := ellipticDegree(n, m1)
	if !(m > 0 && m < 1) {
		return ZPK{}, false
	}

	kmod := math.Sqrt(m)
	capK := completeK(kmod)
	capK1 := completeK(math.Sqrt(m1))

	if capK == 0 || capK1 == 0 || !finite(capK) || !finite(capK1) {
		return ZPK{}, false
	}

	half := (n + 1) / 2
	sn := make([]float64, 0, half)
	cn := make([]float64, 0, half)
	dn := make([]float64, 0, half)
	zeroBase := make([]complex128, 0, half)

	for j := 1 - n%2; j < n; j += 2 {
		s, c, d, ok := jacobiSCD(float64(j)*capK/float64(n), kmod)
		if !ok {
			return ZPK{}, false
		}

		sn = append(sn, s)
		cn = append(cn, c)
		dn = append(dn, d)

		if math.Abs(s) > machineEps {
			zeroBase = append(zeroBase, complex(0, 1/(kmod*s)))
		}
	}

	r := arcSCImag(1/math.Sqrt(epsSq), m1)
	if !(r > 0) || !finite(r) {
		return ZPK{}, false
	}

	v0 := capK * r / (float64(n) * capK1)

	sv, cv, dv, ok := jacobiSCD(v0, math.Sqrt(1-m))
	if !ok {
		return ZPK{}, false
	}

	poleBase := make([]complex128, len(sn))
	for i := range sn {
		den := 1 - (dn[i]*sv)*(dn[i]*sv)
		if math.Abs(den) <= machineEps {
			return ZPK{}, false
		}

		poleBase[i] = -complex(cn[i]*dn[i]*sv*cv, sn[i]*dv) / complex(den, 0)
	}

	poles := append(make([]complex128, 0, n), poleBase...)

	if n%2 == 1 {
		norm := 0.0
		for _, p := range poleBase {
			norm += real(p * cmplx.Conj(p))
		}

		thr := machineEps * math.Sqrt(norm)

		for i, p := range poleBase {
			if math.Abs(imag(p)) > thr {
				poles = append(poles, cmplx.Conj(p))
			} else {
				poles[i] = complex(real(p), 0)
			}
		}
	} else {
		for _, p := range poleBase {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	zeros := make([]complex128, 0, 2*len(zeroBase))
	for _, z := range zeroBase {
		zeros = append(zeros, z, cmplx.Conj(z))
	}

	prodZ := poly.ComplexProduct(zeros)
	if prodZ == 0 {
		return ZPK{}, false
	}

	gain := real(poly.ComplexProduct(poles) / prodZ)
	if n%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	if gain == 0 || !finite(gain) {
		return ZPK{}, false
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: gain}, true
}
