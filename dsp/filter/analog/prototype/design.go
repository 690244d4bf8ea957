package prototype

import (
	"fmt"
	"math"
)

// Request describes an analog filter to design.
type Request struct {
	Approximation Approximation
	Order         int
	Band          BandType
	// Corner holds one angular frequency for lowpass/highpass and the
	// (low, high) band edges for bandpass/bandstop, in rad/s.
	Corner      []float64
	Ripple      float64 // passband ripple in dB
	Attenuation float64 // stopband attenuation in dB
}

// Design builds the lowpass prototype for req and applies the band
// transform. Band pairs are transformed around wo = sqrt(low*high) with
// bw = high - low; no prewarping is applied.
func Design(req Request) (Filter, error) {
	if err := checkCorners(req.Band, req.Corner); err != nil {
		return Filter{}, err
	}

	lp, err := NormalizedLowpass(req.Approximation, req.Order, req.Ripple, req.Attenuation)
	if err != nil {
		return Filter{}, err
	}

	var zpk ZPK

	switch req.Band {
	case Lowpass:
		zpk = LowpassToLowpass(lp, req.Corner[0])
	case Highpass:
		zpk, err = LowpassToHighpass(lp, req.Corner[0])
	case Bandpass:
		wo, bw := BandEdges(req.Corner[0], req.Corner[1])
		zpk = LowpassToBandpass(lp, wo, bw)
	case Bandstop:
		wo, bw := BandEdges(req.Corner[0], req.Corner[1])
		zpk, err = LowpassToBandstop(lp, wo, bw)
	default:
		return Filter{}, fmt.Errorf("%w: band type %v", ErrInvalidCorner, req.Band)
	}

	if err != nil {
		return Filter{}, err
	}

	if err := checkZPK(zpk); err != nil {
		return Filter{}, err
	}

	tf := zpk.TransferFunction()
	if err := tf.Validate(); err != nil {
		return Filter{}, err
	}

	return Filter{ZPK: zpk, TF: tf}, nil
}

func checkCorners(band BandType, corner []float64) error {
	if len(corner) != band.Corners() {
		return fmt.Errorf("%w: %v needs %d corner frequencies, got %d", ErrInvalidCorner, band, band.Corners(), len(corner))
	}

	for _, w := range corner {
		if !(w > 0) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: %v rad/s", ErrInvalidCorner, w)
		}
	}

	if len(corner) == 2 && !(corner[1] > corner[0]) {
		return fmt.Errorf("%w: band edges %v must be increasing", ErrInvalidCorner, corner)
	}

	return nil
}

func checkZPK(z ZPK) error {
	if !finite(z.Gain) {
		return fmt.Errorf("%w: gain %v", ErrDegenerate, z.Gain)
	}

	for _, r := range z.Zeros {
		if !finiteComplex(r) {
			return fmt.Errorf("%w: zero %v", ErrDegenerate, r)
		}
	}

	for _, r := range z.Poles {
		if !finiteComplex(r) {
			return fmt.Errorf("%w: pole %v", ErrDegenerate, r)
		}
	}

	return nil
}
