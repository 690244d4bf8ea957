package prototype

import (
	"math"
	"math/cmplx"
)

// Jacobi elliptic helpers used by the elliptic pole/zero placement. The
// functions evaluate sn and cd through the descending Landen sequence of
// moduli (Orfanidis, "Lecture Notes on Elliptic Filter Design").

const (
	landenTol    = 2.2e-16
	nomeTerms    = 7
	arcSNSteps   = 10
	arcImagCheck = 1e-7
	smallModulus = 1e-6
)

// landen returns the descending Landen moduli of k down to landenTol.
func landen(k float64) []float64 {
	if k == 0 || k == 1 {
		return []float64{k}
	}

	var seq []float64

	for k > landenTol {
		t := k / (1 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		seq = append(seq, k)
	}

	return seq
}

// completeK is the complete elliptic integral of the first kind K(k).
func completeK(k float64) float64 {
	switch {
	case k == 1:
		return math.Inf(1)
	case k > math.Sqrt(1-smallModulus*smallModulus):
		kp := math.Sqrt((1 - k) * (1 + k))
		l := -math.Log(kp / 4)

		return l + (l-1)*kp*kp/4
	}

	prod := math.Pi / 2
	for _, v := range landen(k) {
		prod *= 1 + v
	}

	return prod
}

// snNormalized evaluates sn(u*K, k) for real u.
func snNormalized(u, k float64) float64 {
	seq := landen(k)
	w := math.Sin(u * math.Pi / 2)

	for i := len(seq) - 1; i >= 0; i-- {
		w = (1 + seq[i]) * w / (1 + seq[i]*w*w)
	}

	return w
}

// cdNormalized evaluates cd(u*K, k) for real u.
func cdNormalized(u, k float64) float64 {
	seq := landen(k)
	w := math.Cos(u * math.Pi / 2)

	for i := len(seq) - 1; i >= 0; i-- {
		w = (1 + seq[i]) * w / (1 + seq[i]*w*w)
	}

	return w
}

// jacobiSCD returns sn, cn and dn at the real argument u for modulus k.
func jacobiSCD(u, k float64) (float64, float64, float64, bool) {
	if !(k >= 0 && k < 1) {
		return 0, 0, 0, false
	}

	capK := completeK(k)
	if capK == 0 || !finite(capK) {
		return 0, 0, 0, false
	}

	un := u / capK

	sn := snNormalized(un, k)
	if !finite(sn) {
		return 0, 0, 0, false
	}

	dn2 := 1 - k*k*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}

	dn := math.Sqrt(math.Max(dn2, 0))
	cn := cdNormalized(un, k) * dn

	return sn, cn, dn, true
}

// arcSCImag returns the real v with sc(v, sqrt(1-m)) = w, obtained as the
// imaginary part of arcsn(jw, m).
func arcSCImag(w, m float64) float64 {
	z := arcSN(complex(0, w), m)
	if math.Abs(real(z)) > arcImagCheck*math.Max(1, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1 - k) * (1 + k))
}

// arcSN is the inverse Jacobi sn for parameter m via ascending Landen steps.
func arcSN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return cmplx.NaN()
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcSNSteps - 1 {
		kn := ks[len(ks)-1]
		if kn == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1-kp)/(1+kp))
	}

	capK := math.Pi / 2
	for _, kn := range ks[1:] {
		capK *= real(1 + kn)
	}

	for i := range len(ks) - 1 {
		den := (1 + ks[i+1]) * (1 + complement(ks[i]*w))
		if den == 0 {
			return cmplx.NaN()
		}

		w = 2 * w / den
	}

	return complex(capK, 0) * (2 / math.Pi) * cmplx.Asin(w)
}

// ellipticDegree solves the degree equation for the modulus parameter m of
// an order-n elliptic filter with discrimination parameter m1, using the
// nome series.
func ellipticDegree(n int, m1 float64) float64 {
	if n <= 0 || !(m1 > 0 && m1 < 1) {
		return math.NaN()
	}

	k1 := completeK(math.Sqrt(m1))
	k1p := completeK(math.Sqrt(1 - m1))

	if !(k1 > 0) || !(k1p > 0) || !finite(k1) || !finite(k1p) {
		return math.NaN()
	}

	q := math.Pow(math.Exp(-math.Pi*k1p/k1), 1/float64(n))

	num := 0.0
	for i := range nomeTerms {
		num += math.Pow(q, float64(i*(i+1)))
	}

	den := 1.0
	for i := 1; i < nomeTerms; i++ {
		den += 2 * math.Pow(q, float64(i*i))
	}

	return 16 * q * math.Pow(num/den, 4)
}
