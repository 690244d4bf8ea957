// Package response samples an analog transfer function on a logarithmic
// frequency grid and derives magnitude, unwrapped phase and group delay, plus
// band-limited impulse and step responses.
package response

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/filterforge/dsp/core"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

// DefaultPoints is the number of frequency samples in every design result.
const DefaultPoints = 500

// ErrInvalidWindow is returned for a non-positive or non-finite frequency window.
var ErrInvalidWindow = errors.New("response: invalid frequency window")

// FrequencyResponse holds parallel slices of equal length.
type FrequencyResponse struct {
	Frequencies []float64 `json:"frequencies"` // Hz, strictly increasing
	Magnitude   []float64 `json:"magnitude"`   // dB
	Phase       []float64 `json:"phase"`       // degrees, unwrapped
	GroupDelay  []float64 `json:"groupDelay"`  // seconds
}

// Len is the number of samples.
func (r FrequencyResponse) Len() int { return len(r.Frequencies) }

// Window is a frequency range in Hz.
type Window struct {
	Min float64
	Max float64
}

// CornerWindow spans two decades either side of a corner or centre
// frequency. Used for lowpass, highpass and allpass designs.
func CornerWindow(f float64) Window {
	return Window{Min: f * 0.01, Max: f * 100}
}

// BandWindow spans five bandwidths either side of f0, limited to two decades
// and floored at 1 Hz. If the floor leaves no room, the window is widened to
// two decades above the floor.
func BandWindow(f0, bandwidth float64) Window {
	lo := math.Max(math.Max(f0*0.01, f0-5*bandwidth), 1)
	hi := math.Min(f0*100, f0+5*bandwidth)

	if !(hi > lo) {
		hi = lo * 100
	}

	return Window{Min: lo, Max: hi}
}

// DefaultWindow covers 1 Hz to 1 MHz.
func DefaultWindow() Window { return Window{Min: 1, Max: 1e6} }

// Validate checks 0 < Min < Max < Inf.
func (w Window) Validate() error {
	if !(w.Min > 0) || !(w.Max > w.Min) || math.IsInf(w.Max, 0) {
		return fmt.Errorf("%w: [%v, %v] Hz", ErrInvalidWindow, w.Min, w.Max)
	}

	return nil
}

// LogSpace returns n frequencies spaced evenly in log10 between the window
// edges, endpoints included.
func LogSpace(w Window, n int) []float64 {
	if n <= 0 {
		return nil
	}

	lo, hi := math.Log10(w.Min), math.Log10(w.Max)
	out := make([]float64, n)

	if n == 1 {
		out[0] = w.Min
		return out
	}

	step := (hi - lo) / float64(n-1)
	for i := range n - 1 {
		out[i] = math.Pow(10, lo+float64(i)*step)
	}

	out[n-1] = math.Pow(10, hi)

	return out
}

// Compute evaluates tf at the given frequencies (Hz). floor is added to |H|
// before the dB conversion.
func Compute(tf prototype.TransferFunction, freqs []float64, floor float64) FrequencyResponse {
	n := len(freqs)
	w := make([]float64, n)

	for i, f := range freqs {
		w[i] = core.AngularFrequency(f)
	}

	h := prototype.Evaluate(tf, w)

	re := make([]float64, n)
	im := make([]float64, n)
	phase := make([]float64, n)

	for i, v := range h {
		re[i], im[i] = real(v), imag(v)
		phase[i] = math.Atan2(imag(v), real(v))
	}

	mag := make([]float64, n)
	vecmath.Magnitude(mag, re, im)

	for i := range mag {
		mag[i] = core.MagnitudeToDB(mag[i], floor)
	}

	phase = Unwrap(phase)
	delay := GroupDelay(w, phase)

	deg := make([]float64, n)
	vecmath.ScaleBlock(deg, phase, 180/math.Pi)

	return FrequencyResponse{
		Frequencies: append([]float64(nil), freqs...),
		Magnitude:   mag,
		Phase:       deg,
		GroupDelay:  delay,
	}
}

// Sample computes the response over n log-spaced points of the window.
func Sample(tf prototype.TransferFunction, win Window, n int, floor float64) (FrequencyResponse, error) {
	if err := win.Validate(); err != nil {
		return FrequencyResponse{}, err
	}

	return Compute(tf, LogSpace(win, n), floor), nil
}

// Unwrap removes 2*pi jumps between consecutive phase samples (radians).
// A jump of exactly pi keeps the direction of the raw difference.
func Unwrap(phase []float64) []float64 {
	out := append([]float64(nil), phase...)
	if len(out) < 2 {
		return out
	}

	correction := 0.0

	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		dm := math.Mod(d+math.Pi, 2*math.Pi)

		if dm < 0 {
			dm += 2 * math.Pi
		}

		dm -= math.Pi

		if dm == -math.Pi && d > 0 {
			dm = math.Pi
		}

		if math.Abs(d) >= math.Pi {
			correction += dm - d
		}

		out[i] = phase[i] + correction
	}

	return out
}

// GroupDelay is -d(phase)/d(w) by forward differences. The last sample
// repeats the previous difference; fewer than three samples give zeros.
func GroupDelay(w, phase []float64) []float64 {
	out := make([]float64, len(w))
	if len(w) < 3 {
		return out
	}

	for i := range len(w) - 1 {
		out[i] = -(phase[i+1] - phase[i]) / (w[i+1] - w[i])
	}

	out[len(out)-1] = out[len(out)-2]

	return out
}
