package prototype

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/filterforge/dsp/filter/analog/poly"
	"github.com/cwbudde/filterforge/internal/polyroot"
)

// Section is one second-order factor of a cascade:
//
//	(B[0] s^2 + B[1] s + B[2]) / (A[0] s^2 + A[1] s + A[2])
type Section struct {
	B [3]float64
	A [3]float64
}

// pairTol is the relative tolerance used to classify roots as real and to
// match conjugate pairs. It is looser than machine precision so roots
// recovered numerically from expanded polynomials still pair up.
const pairTol = 1e-10

// Factor recovers the zeros, poles and gain of an expanded transfer function.
func Factor(tf TransferFunction) (ZPK, error) {
	if err := tf.Validate(); err != nil {
		return ZPK{}, err
	}

	num := poly.New(tf.Num...).Trim(0)
	den := poly.New(tf.Den...).Trim(0)

	zeros := []complex128{}

	if !num.IsZero(0) {
		var err error

		zeros, err = polyroot.Roots(num.Coeffs())
		if err != nil {
			return ZPK{}, fmt.Errorf("prototype: numerator roots: %w", err)
		}
	}

	poles, err := polyroot.Roots(den.Coeffs())
	if err != nil {
		return ZPK{}, fmt.Errorf("prototype: denominator roots: %w", err)
	}

	return ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  num.Coeffs()[0] / den.Coeffs()[0],
	}, nil
}

// Factorize groups an expanded transfer function into second-order sections.
func Factorize(tf TransferFunction) ([]Section, error) {
	zpk, err := Factor(tf)
	if err != nil {
		return nil, err
	}

	return Sections(zpk)
}

// Sections groups a factored transfer function into second-order sections
// with nearest pairing:
//
//   - zeros and poles are padded with roots at the origin to equal,
//     even count;
//   - poles are consumed starting from the one closest to the unit circle,
//     always together with its conjugate (or the next such real pole);
//   - each pole pair takes the zeros nearest to its first pole;
//   - sections are filled from last to first, so the poles closest to the
//     unit circle end up at the end of the cascade;
//   - the overall gain is applied to the numerator of the first section.
//
//nolint:funlen,cyclop
func Sections(z ZPK) ([]Section, error) {
	if len(z.Zeros) == 0 && len(z.Poles) == 0 {
		return []Section{{B: [3]float64{z.Gain, 0, 0}, A: [3]float64{1, 0, 0}}}, nil
	}

	zeros := append([]complex128(nil), z.Zeros...)
	poles := append([]complex128(nil), z.Poles...)

	for len(poles) < len(zeros) {
		poles = append(poles, 0)
	}

	for len(zeros) < len(poles) {
		zeros = append(zeros, 0)
	}

	n := (len(poles) + 1) / 2

	if len(poles)%2 == 1 {
		poles = append(poles, 0)
		zeros = append(zeros, 0)
	}

	zs, err := conjugateRepresentatives(zeros)
	if err != nil {
		return nil, err
	}

	ps, err := conjugateRepresentatives(poles)
	if err != nil {
		return nil, err
	}

	out := make([]Section, n)

	for si := n - 1; si >= 0; si-- {
		i := worstPole(ps)
		p1 := ps[i]
		ps = removeAt(ps, i)

		switch {
		case isReal(p1) && countReal(ps) == 0:
			// Last real pole: pair with a real zero and pad both with origin roots.
			if len(zs) == 0 {
				out[si] = quadSection(nil, []complex128{p1, 0})

				continue
			}

			j := nearestRoot(zs, p1, wantReal)
			z1 := zs[j]
			zs = removeAt(zs, j)
			out[si] = quadSection([]complex128{z1, 0}, []complex128{p1, 0})

		case len(ps)+1 == len(zs) && !isReal(p1) && countReal(ps) == 1 && countReal(zs) == 1:
			// One real pole and one real zero remain for later; this complex
			// pole must take a complex zero.
			j := nearestRoot(zs, p1, wantComplex)
			z1 := zs[j]
			zs = removeAt(zs, j)
			out[si] = quadSection(
				[]complex128{z1, cmplx.Conj(z1)},
				[]complex128{p1, cmplx.Conj(p1)},
			)

		default:
			var p2 complex128

			if isReal(p1) {
				k := worstRealPole(ps)
				p2 = ps[k]
				ps = removeAt(ps, k)
			} else {
				p2 = cmplx.Conj(p1)
			}

			if len(zs) == 0 {
				out[si] = quadSection(nil, []complex128{p1, p2})

				continue
			}

			j := nearestRoot(zs, p1, wantAny)
			z1 := zs[j]
			zs = removeAt(zs, j)

			switch {
			case !isReal(z1):
				out[si] = quadSection([]complex128{z1, cmplx.Conj(z1)}, []complex128{p1, p2})
			case len(zs) > 0:
				j2 := nearestRoot(zs, p1, wantReal)
				z2 := zs[j2]
				zs = removeAt(zs, j2)
				out[si] = quadSection([]complex128{z1, z2}, []complex128{p1, p2})
			default:
				out[si] = quadSection([]complex128{z1}, []complex128{p1, p2})
			}
		}
	}

	for i := range out[0].B {
		out[0].B[i] *= z.Gain
	}

	return out, nil
}

// conjugateRepresentatives keeps one member (positive imaginary part) of
// every conjugate pair, averaged with its partner, followed by the real
// roots in ascending order.
func conjugateRepresentatives(roots []complex128) ([]complex128, error) {
	sorted := append([]complex128(nil), roots...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if real(sorted[i]) != real(sorted[j]) {
			return real(sorted[i]) < real(sorted[j])
		}

		return math.Abs(imag(sorted[i])) < math.Abs(imag(sorted[j]))
	})

	var pos, neg []complex128

	reals := make([]complex128, 0, len(sorted))

	for _, r := range sorted {
		switch {
		case math.Abs(imag(r)) <= pairTol*cmplx.Abs(r):
			reals = append(reals, complex(real(r), 0))
		case imag(r) > 0:
			pos = append(pos, r)
		default:
			neg = append(neg, r)
		}
	}

	if len(pos) != len(neg) {
		return nil, fmt.Errorf("%w: %d upper vs %d lower half-plane roots", ErrUnpairedRoot, len(pos), len(neg))
	}

	used := make([]bool, len(neg))
	out := make([]complex128, 0, len(pos)+len(reals))

	for _, p := range pos {
		best, bestDist := -1, math.Inf(1)

		for j, q := range neg {
			if used[j] {
				continue
			}

			if d := cmplx.Abs(q - cmplx.Conj(p)); d < bestDist {
				best, bestDist = j, d
			}
		}

		if best < 0 || bestDist > pairTol*math.Max(cmplx.Abs(neg[best]), 1) {
			return nil, fmt.Errorf("%w: %v", ErrUnpairedRoot, p)
		}

		used[best] = true
		out = append(out, (p+cmplx.Conj(neg[best]))/2)
	}

	return append(out, reals...), nil
}

type rootKind int

const (
	wantAny rootKind = iota
	wantReal
	wantComplex
)

// nearestRoot returns the index of the root of the requested kind closest
// to target. When no root of that kind exists the closest root of any kind
// is used.
func nearestRoot(roots []complex128, target complex128, kind rootKind) int {
	idx := make([]int, len(roots))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return cmplx.Abs(roots[idx[a]]-target) < cmplx.Abs(roots[idx[b]]-target)
	})

	for _, i := range idx {
		switch kind {
		case wantAny:
			return i
		case wantReal:
			if isReal(roots[i]) {
				return i
			}
		case wantComplex:
			if !isReal(roots[i]) {
				return i
			}
		}
	}

	return idx[0]
}

// worstPole is the pole closest to the unit circle.
func worstPole(roots []complex128) int {
	best, bestDist := 0, math.Inf(1)

	for i, r := range roots {
		if d := math.Abs(1 - cmplx.Abs(r)); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

func worstRealPole(roots []complex128) int {
	best, bestDist := -1, math.Inf(1)

	for i, r := range roots {
		if !isReal(r) {
			continue
		}

		if d := math.Abs(1 - cmplx.Abs(r)); d < bestDist {
			best, bestDist = i, d
		}
	}

	return best
}

func quadSection(zeros, poles []complex128) Section {
	var s Section

	b := poly.FromRoots(zeros, 1).Coeffs()
	a := poly.FromRoots(poles, 1).Coeffs()

	copy(s.B[3-len(b):], b)
	copy(s.A[3-len(a):], a)

	return s
}

func isReal(r complex128) bool { return imag(r) == 0 }

func countReal(roots []complex128) int {
	n := 0

	for _, r := range roots {
		if isReal(r) {
			n++
		}
	}

	return n
}

func removeAt(roots []complex128, i int) []complex128 {
	out := make([]complex128, 0, len(roots)-1)
	out = append(out, roots[:i]...)

	return append(out, roots[i+1:]...)
}
