package design

import (
	"errors"
	"fmt"

	"github.com/cwbudde/filterforge/dsp/core"
	"github.com/cwbudde/filterforge/dsp/filter/analog/active"
	"github.com/cwbudde/filterforge/dsp/filter/analog/circuit"
	"github.com/cwbudde/filterforge/dsp/filter/analog/gvalue"
	"github.com/cwbudde/filterforge/dsp/filter/analog/latex"
	"github.com/cwbudde/filterforge/dsp/filter/analog/passive"
	"github.com/cwbudde/filterforge/dsp/filter/analog/poly"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
	"github.com/cwbudde/filterforge/dsp/filter/analog/response"
)

// minBandEdge is the floor (Hz) applied to the lower band edge.
const minBandEdge = 1.0

// Design validates p and computes the complete design. The returned error is
// always an *Error.
func Design(p Params, opts ...core.DesignOption) (*Result, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	p.FilterType = p.FilterType.Canonical()
	cfg := core.ApplyDesignOptions(opts...)

	res, err := run(p, cfg)
	if err != nil {
		return nil, calculation(err)
	}

	if err := checkFinite(res); err != nil {
		return nil, calculation(err)
	}

	return res, nil
}

// DesignOutcome wraps Design into the single-variant output shape.
func DesignOutcome(p Params, opts ...core.DesignOption) Outcome {
	res, err := Design(p, opts...)
	if err != nil {
		var e *Error
		if !errors.As(err, &e) {
			e = calculation(err)
		}

		return Outcome{Error: e}
	}

	return Outcome{Result: res}
}

func run(p Params, cfg core.DesignConfig) (*Result, error) {
	if p.Characteristics == APF {
		return guard(func() (*Result, error) { return allpass(p, cfg) })
	}

	return guard(func() (*Result, error) { return synthesize(p, cfg) })
}

// guard converts a panic in fn into an error.
func guard(fn func() (*Result, error)) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("design: internal fault: %v", r)
		}
	}()

	return fn()
}

// BandEdges returns the band edges (Hz) for a centre frequency and
// bandwidth. A non-positive lower edge is raised to 1 Hz.
func BandEdges(centerHz, bandwidthHz float64) (low, high float64) {
	low = centerHz - bandwidthHz/2
	high = centerHz + bandwidthHz/2

	if low <= 0 {
		low = minBandEdge
	}

	return low, high
}

// Window returns the frequency sampling window for the family.
func Window(p Params) response.Window {
	switch p.Characteristics {
	case LPF, HPF:
		return response.CornerWindow(p.CutoffFrequency)
	case BPF, BEF:
		return response.BandWindow(p.CenterFrequency, p.Bandwidth)
	case APF:
		return response.CornerWindow(p.CenterFrequency)
	default:
		return response.DefaultWindow()
	}
}

//nolint:funlen
func synthesize(p Params, cfg core.DesignConfig) (*Result, error) {
	band, ok := p.Characteristics.Band()
	if !ok {
		return nil, fmt.Errorf("design: no band transform for %q", p.Characteristics)
	}

	var corner []float64

	switch band {
	case prototype.Lowpass, prototype.Highpass:
		corner = []float64{core.AngularFrequency(p.CutoffFrequency)}
	default:
		lo, hi := BandEdges(p.CenterFrequency, p.Bandwidth)
		corner = []float64{core.AngularFrequency(lo), core.AngularFrequency(hi)}
	}

	f, err := prototype.Design(prototype.Request{
		Approximation: p.Approximation,
		Order:         p.Order,
		Band:          band,
		Corner:        corner,
		Ripple:        p.Ripple(),
		Attenuation:   p.Attenuation(),
	})
	if err != nil {
		return nil, err
	}

	win := Window(p)

	fr, err := response.Sample(f.TF, win, cfg.ResponsePoints, cfg.MagnitudeFloor)
	if err != nil {
		return nil, err
	}

	var (
		components []circuit.Component
		topology   circuit.Topology
	)

	if p.FilterType == Active {
		sections, err := prototype.Sections(f.ZPK)
		if err != nil {
			return nil, err
		}

		components, err = active.Synthesize(band, sections, cfg.ReferenceResistance)
		if err != nil {
			return nil, err
		}

		topology = circuit.SallenKey
	} else {
		g, err := gvalue.Values(p.Approximation, p.Order, p.Ripple(), p.Attenuation())
		if err != nil {
			return nil, err
		}

		components, topology, err = ladder(p, g)
		if err != nil {
			return nil, err
		}
	}

	return assemble(f.TF, fr, win, components, topology, cfg)
}

func ladder(p Params, g []float64) ([]circuit.Component, circuit.Topology, error) {
	z := p.Source()

	switch p.Characteristics {
	case LPF:
		return passive.Lowpass(g, p.CutoffFrequency, z)
	case HPF:
		return passive.Highpass(g, p.CutoffFrequency, z)
	case BPF:
		return passive.Bandpass(g, p.CenterFrequency, p.Bandwidth, z)
	case BEF:
		return passive.Bandstop(g, p.CenterFrequency, p.Bandwidth, z)
	default:
		return nil, "", fmt.Errorf("design: no ladder for %q", p.Characteristics)
	}
}

// AllpassTransferFunction cascades order sections (-s + w0)/(s + w0).
func AllpassTransferFunction(order int, centerHz float64) prototype.TransferFunction {
	w0 := core.AngularFrequency(centerHz)
	num, den := poly.New(1), poly.New(1)

	for range order {
		num = num.Mul(poly.New(-1, w0))
		den = den.Mul(poly.New(1, w0))
	}

	return prototype.TransferFunction{Num: num.Coeffs(), Den: den.Coeffs()}
}

func allpass(p Params, cfg core.DesignConfig) (*Result, error) {
	tf := AllpassTransferFunction(p.Order, p.CenterFrequency)
	win := Window(p)

	fr, err := response.Sample(tf, win, cfg.ResponsePoints, cfg.MagnitudeFloor)
	if err != nil {
		return nil, err
	}

	components, topology, err := passive.Lattice(p.Order, p.CenterFrequency, p.Source())
	if err != nil {
		return nil, err
	}

	return assemble(tf, fr, win, components, topology, cfg)
}

func assemble(
	tf prototype.TransferFunction,
	fr response.FrequencyResponse,
	win response.Window,
	components []circuit.Component,
	topology circuit.Topology,
	cfg core.DesignConfig,
) (*Result, error) {
	res := &Result{
		TransferFunction: TransferFunction{
			Numerator:   append([]float64(nil), tf.Num...),
			Denominator: append([]float64(nil), tf.Den...),
		},
		TransferFunctionLatex: latex.TransferFunction(tf.Num, tf.Den),
		FrequencyResponse:     fr,
		Components:            components,
		CircuitTopology:       topology,
	}

	if cfg.ImpulseLength > 0 {
		fs := cfg.ImpulseSampleRate
		if fs <= 0 {
			fs = 2 * win.Max
		}

		tr, err := response.Impulse(tf, fs, cfg.ImpulseLength)
		if err != nil {
			return nil, err
		}

		res.ImpulseResponse = &tr
	}

	return res, nil
}

func checkFinite(r *Result) error {
	fields := map[string][]float64{
		"numerator":   r.TransferFunction.Numerator,
		"denominator": r.TransferFunction.Denominator,
		"frequencies": r.FrequencyResponse.Frequencies,
		"magnitude":   r.FrequencyResponse.Magnitude,
		"phase":       r.FrequencyResponse.Phase,
		"group delay": r.FrequencyResponse.GroupDelay,
		"components":  circuit.Values(r.Components),
	}

	if r.ImpulseResponse != nil {
		fields["impulse"] = r.ImpulseResponse.Impulse
		fields["step"] = r.ImpulseResponse.Step
	}

	for _, name := range []string{
		"numerator", "denominator", "frequencies", "magnitude", "phase",
		"group delay", "components", "impulse", "step",
	} {
		if v, ok := fields[name]; ok && !core.AllFinite(v) {
			return fmt.Errorf("design: non-finite value in %s", name)
		}
	}

	return nil
}
