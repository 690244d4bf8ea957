// Package active maps second-order sections onto op-amp stages: unity-gain
// Sallen-Key stages for lowpass and highpass, multiple-feedback stages for
// bandpass.
package active

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/filterforge/dsp/core"
	"github.com/cwbudde/filterforge/dsp/filter/analog/circuit"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

const (
	// MinQ and MaxQ bound the quality factor of every stage.
	MinQ = 0.1
	MaxQ = 100.0
)

var (
	// ErrUnsupportedBand is returned for bands without a stage realization.
	ErrUnsupportedBand = errors.New("active: unsupported band")
	// ErrInvalidResistance is returned for a non-positive reference resistance.
	ErrInvalidResistance = errors.New("active: reference resistance must be positive")
)

// StageParams reads the natural frequency and quality factor of a section
// denominator a0 s^2 + a1 s + a2:
//
//	w0 = sqrt(a2/a0), Q = sqrt(a0 a2)/|a1|
//
// Q is MaxQ when a1 is zero and is clamped to [MinQ, MaxQ]. ok is false for
// sections without a second-order denominator (a0 or a2 zero).
func StageParams(s prototype.Section) (w0, q float64, ok bool) {
	a0, a1, a2 := s.A[0], s.A[1], s.A[2]
	if a0 == 0 || a2 == 0 {
		return 0, 0, false
	}

	w0 = math.Sqrt(math.Abs(a2 / a0))

	q = MaxQ
	if a1 != 0 {
		q = math.Sqrt(math.Abs(a0*a2)) / math.Abs(a1)
	}

	return w0, core.Clamp(q, MinQ, MaxQ), true
}

// LowpassStage sizes an equal-R Sallen-Key lowpass: R1 = R2 = rRef,
// feedback C1 = 2Q/(w0 R), grounded C2 = 1/(2Q w0 R).
func LowpassStage(w0, q, rRef float64) (r1, r2, c1, c2 float64) {
	r := rRef

	return r, r, 2 * q / (w0 * r), 1 / (2 * q * w0 * r)
}

// HighpassStage sizes an equal-C Sallen-Key highpass: C1 = C2 = 1/(w0 rRef),
// feedback R1 = 1/(2Q w0 C), grounded R2 = 2Q/(w0 C).
func HighpassStage(w0, q, rRef float64) (r1, r2, c1, c2 float64) {
	c := 1 / (w0 * rRef)

	return 1 / (2 * q * w0 * c), 2 * q / (w0 * c), c, c
}

// BandpassStage sizes a multiple-feedback bandpass with C1 = C2 = 1/(w0 rRef):
//
//	R1 = Q/(w0 C), R2 = Q/(max(2Q^2, 1) w0 C), R3 = 2Q/(w0 C)
func BandpassStage(w0, q, rRef float64) (r1, r2, r3, c1, c2 float64) {
	c := 1 / (w0 * rRef)
	wc := w0 * c

	return q / wc, q / (math.Max(2*q*q, 1) * wc), 2 * q / wc, c, c
}

// Synthesize emits one stage per section in cascade order. Sections without
// a second-order denominator are skipped; stage identifiers keep the
// section's position (S1_, S2_, ...).
func Synthesize(band prototype.BandType, sections []prototype.Section, rRef float64) ([]circuit.Component, error) {
	if !(rRef > 0) || math.IsInf(rRef, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResistance, rRef)
	}

	var stage func(ids *circuit.Counter, w0, q float64) []circuit.Component

	switch band {
	case prototype.Lowpass:
		stage = func(ids *circuit.Counter, w0, q float64) []circuit.Component {
			r1, r2, c1, c2 := LowpassStage(w0, q, rRef)

			return []circuit.Component{
				ids.Add(circuit.Resistor, r1, circuit.Series),
				ids.Add(circuit.Resistor, r2, circuit.Series),
				ids.Add(circuit.Capacitor, c1, circuit.Feedback),
				ids.Add(circuit.Capacitor, c2, circuit.Shunt),
			}
		}
	case prototype.Highpass:
		stage = func(ids *circuit.Counter, w0, q float64) []circuit.Component {
			r1, r2, c1, c2 := HighpassStage(w0, q, rRef)

			return []circuit.Component{
				ids.Add(circuit.Capacitor, c1, circuit.Series),
				ids.Add(circuit.Capacitor, c2, circuit.Series),
				ids.Add(circuit.Resistor, r1, circuit.Feedback),
				ids.Add(circuit.Resistor, r2, circuit.Shunt),
			}
		}
	case prototype.Bandpass:
		stage = func(ids *circuit.Counter, w0, q float64) []circuit.Component {
			r1, r2, r3, c1, c2 := BandpassStage(w0, q, rRef)

			return []circuit.Component{
				ids.Add(circuit.Resistor, r1, circuit.Series),
				ids.Add(circuit.Resistor, r2, circuit.Shunt),
				ids.Add(circuit.Resistor, r3, circuit.Series),
				ids.Add(circuit.Capacitor, c1, circuit.Series),
				ids.Add(circuit.Capacitor, c2, circuit.Feedback),
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBand, band)
	}

	out := make([]circuit.Component, 0, 6*len(sections))

	for i, s := range sections {
		w0, q, ok := StageParams(s)
		if !ok {
			continue
		}

		prefix := fmt.Sprintf("S%d_", i+1)
		out = append(out, stage(circuit.NewCounter(prefix), w0, q)...)
		out = append(out, circuit.Component{
			ID:       prefix + "U",
			Type:     circuit.OpAmp,
			Position: circuit.Active,
		})
	}

	return out, nil
}

// Stages counts the op-amps in a component list.
func Stages(cs []circuit.Component) int {
	n := 0

	for _, c := range cs {
		if c.Type == circuit.OpAmp {
			n++
		}
	}

	return n
}
