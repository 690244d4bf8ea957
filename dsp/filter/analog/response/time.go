package response

import (
	"errors"
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/filterforge/dsp/core"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

var (
	// ErrInvalidLength is returned when the impulse length is not a power of two >= 4.
	ErrInvalidLength = errors.New("response: impulse length must be a power of two >= 4")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("response: sample rate must be positive")
)

// TimeResponse is a band-limited impulse response and its running integral.
type TimeResponse struct {
	SampleRate float64   `json:"sampleRate"`
	Time       []float64 `json:"time"`    // seconds
	Impulse    []float64 `json:"impulse"` // 1/s
	Step       []float64 `json:"step"`
}

// Impulse approximates the impulse response of tf by sampling H(jw) on n/2+1
// equally spaced bins up to sampleRate/2 and inverse transforming the
// Hermitian spectrum. The response is periodic in n/sampleRate, so the
// window should be long compared with the filter's settling time. The step
// response is the running integral of the impulse response; its final
// value equals H(0).
func Impulse(tf prototype.TransferFunction, sampleRate float64, n int) (TimeResponse, error) {
	if n < 4 || n&(n-1) != 0 {
		return TimeResponse{}, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return TimeResponse{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	half := n / 2
	w := make([]float64, half+1)

	for k := range w {
		w[k] = core.AngularFrequency(float64(k) * sampleRate / float64(n))
	}

	h := prototype.Evaluate(tf, w)

	bins := make([]complex128, n)
	bins[0] = complex(real(h[0]), 0)
	bins[half] = complex(real(h[half]), 0)

	for k := 1; k < half; k++ {
		bins[k] = h[k]
		bins[n-k] = cmplx.Conj(h[k])
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return TimeResponse{}, fmt.Errorf("response: fft plan: %w", err)
	}

	td := make([]complex128, n)
	if err := plan.Inverse(td, bins); err != nil {
		return TimeResponse{}, fmt.Errorf("response: inverse fft: %w", err)
	}

	raw := make([]float64, n)
	for i, v := range td {
		raw[i] = real(v)
	}

	impulse := make([]float64, n)
	vecmath.ScaleBlock(impulse, raw, sampleRate)

	step := make([]float64, n)
	acc := 0.0

	for i, v := range raw {
		acc += v
		step[i] = acc
	}

	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) / sampleRate
	}

	return TimeResponse{SampleRate: sampleRate, Time: t, Impulse: impulse, Step: step}, nil
}
