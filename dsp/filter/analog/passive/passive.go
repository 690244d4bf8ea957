// Package passive scales normalized ladder values into LC component values.
//
// Lowpass and highpass ladders place one element per g-value; bandpass and
// bandstop ladders turn every element into an L and C resonator pair. Even
// indices (0-based) are series positions, odd indices shunt positions, so
// the returned order is the physical order along the ladder.
package passive

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/filterforge/dsp/core"
	"github.com/cwbudde/filterforge/dsp/filter/analog/circuit"
)

var (
	// ErrInvalidValues is returned for an empty or non-positive g-value list.
	ErrInvalidValues = errors.New("passive: g-values must be non-empty and positive")
	// ErrInvalidFrequency is returned for a non-positive frequency or bandwidth.
	ErrInvalidFrequency = errors.New("passive: frequency must be positive")
	// ErrInvalidImpedance is returned for a non-positive impedance.
	ErrInvalidImpedance = errors.New("passive: impedance must be positive")
)

// Lowpass: series L = g Z / wc, shunt C = g / (Z wc).
func Lowpass(g []float64, cutoffHz, impedance float64) ([]circuit.Component, circuit.Topology, error) {
	if err := check(g, impedance, cutoffHz); err != nil {
		return nil, "", err
	}

	wc := core.AngularFrequency(cutoffHz)
	ids := circuit.NewCounter("")
	out := make([]circuit.Component, 0, len(g))

	for k, gk := range g {
		if k%2 == 0 {
			out = append(out, ids.Add(circuit.Inductor, gk*impedance/wc, circuit.Series))
		} else {
			out = append(out, ids.Add(circuit.Capacitor, gk/(impedance*wc), circuit.Shunt))
		}
	}

	return out, circuit.LadderT, nil
}

// Highpass is the frequency inversion of Lowpass: series C = 1/(g Z wc),
// shunt L = Z/(g wc).
func Highpass(g []float64, cutoffHz, impedance float64) ([]circuit.Component, circuit.Topology, error) {
	if err := check(g, impedance, cutoffHz); err != nil {
		return nil, "", err
	}

	wc := core.AngularFrequency(cutoffHz)
	ids := circuit.NewCounter("")
	out := make([]circuit.Component, 0, len(g))

	for k, gk := range g {
		if k%2 == 0 {
			out = append(out, ids.Add(circuit.Capacitor, 1/(gk*impedance*wc), circuit.Series))
		} else {
			out = append(out, ids.Add(circuit.Inductor, impedance/(gk*wc), circuit.Shunt))
		}
	}

	return out, circuit.LadderT, nil
}

// Bandpass replaces series elements with series-resonant L+C pairs
// (L = g Z/BW, C = BW/(g Z w0^2)) and shunt elements with parallel-resonant
// pairs (L = Z BW/(g w0^2), C = g/(Z BW)). Each pair is emitted L first.
func Bandpass(g []float64, centerHz, bandwidthHz, impedance float64) ([]circuit.Component, circuit.Topology, error) {
	if err := check(g, impedance, centerHz, bandwidthHz); err != nil {
		return nil, "", err
	}

	w0 := core.AngularFrequency(centerHz)
	bw := core.AngularFrequency(bandwidthHz)
	w02 := w0 * w0

	ids := circuit.NewCounter("")
	out := make([]circuit.Component, 0, 2*len(g))

	for k, gk := range g {
		if k%2 == 0 {
			out = append(out,
				ids.Add(circuit.Inductor, gk*impedance/bw, circuit.Series),
				ids.Add(circuit.Capacitor, bw/(gk*impedance*w02), circuit.Series),
			)
		} else {
			out = append(out,
				ids.Add(circuit.Inductor, impedance*bw/(gk*w02), circuit.Shunt),
				ids.Add(circuit.Capacitor, gk/(impedance*bw), circuit.Shunt),
			)
		}
	}

	return out, circuit.LadderT, nil
}

// Bandstop is the dual of Bandpass: series elements become parallel-resonant
// traps (L = g Z BW/w0^2, C = 1/(g Z BW)) and shunt elements become
// series-resonant traps (L = Z/(g BW), C = g BW/(Z w0^2)). Each trap
// resonates at w0. Tools that reuse the Bandpass element formulas for a
// band-stop ladder report different L and C values for the same g.
func Bandstop(g []float64, centerHz, bandwidthHz, impedance float64) ([]circuit.Component, circuit.Topology, error) {
	if err := check(g, impedance, centerHz, bandwidthHz); err != nil {
		return nil, "", err
	}

	w0 := core.AngularFrequency(centerHz)
	bw := core.AngularFrequency(bandwidthHz)
	w02 := w0 * w0

	ids := circuit.NewCounter("")
	out := make([]circuit.Component, 0, 2*len(g))

	for k, gk := range g {
		if k%2 == 0 {
			out = append(out,
				ids.Add(circuit.Inductor, gk*impedance*bw/w02, circuit.Series),
				ids.Add(circuit.Capacitor, 1/(gk*impedance*bw), circuit.Series),
			)
		} else {
			out = append(out,
				ids.Add(circuit.Inductor, impedance/(gk*bw), circuit.Shunt),
				ids.Add(circuit.Capacitor, gk*bw/(impedance*w02), circuit.Shunt),
			)
		}
	}

	return out, circuit.LadderT, nil
}

// Lattice returns order first-order allpass sections, each one series
// L = Z/w0 and one shunt C = 1/(Z w0).
func Lattice(order int, centerHz, impedance float64) ([]circuit.Component, circuit.Topology, error) {
	if order < 1 {
		return nil, "", fmt.Errorf("passive: lattice order must be >= 1, got %d", order)
	}

	if err := checkScale(impedance, centerHz); err != nil {
		return nil, "", err
	}

	w0 := core.AngularFrequency(centerHz)
	ids := circuit.NewCounter("")
	out := make([]circuit.Component, 0, 2*order)

	for range order {
		out = append(out,
			ids.Add(circuit.Inductor, impedance/w0, circuit.Series),
			ids.Add(circuit.Capacitor, 1/(impedance*w0), circuit.Shunt),
		)
	}

	return out, circuit.Lattice, nil
}

func check(g []float64, impedance float64, freqs ...float64) error {
	if len(g) == 0 {
		return ErrInvalidValues
	}

	for i, v := range g {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: g[%d] = %v", ErrInvalidValues, i, v)
		}
	}

	return checkScale(impedance, freqs...)
}

func checkScale(impedance float64, freqs ...float64) error {
	if !(impedance > 0) || math.IsInf(impedance, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidImpedance, impedance)
	}

	for _, f := range freqs {
		if !(f > 0) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidFrequency, f)
		}
	}

	return nil
}
