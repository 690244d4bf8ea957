package design

import (
	"encoding/json"

	"github.com/cwbudde/filterforge/dsp/filter/analog/circuit"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
	"github.com/cwbudde/filterforge/dsp/filter/analog/response"
)

// DefaultImpedance is the source and load impedance (ohms) used when the
// parameters leave them unset.
const DefaultImpedance = 50.0

// TopologyKind selects the passive or active realization.
type TopologyKind string

const (
	Passive TopologyKind = "passive"
	Active  TopologyKind = "active"
)

// topologyAliases maps the legacy literals onto the canonical kinds.
var topologyAliases = map[TopologyKind]TopologyKind{
	"lc_passive":        Passive,
	"active_sallen_key": Active,
}

// Canonical resolves legacy aliases. Unknown kinds are returned unchanged.
func (k TopologyKind) Canonical() TopologyKind {
	if c, ok := topologyAliases[k]; ok {
		return c
	}

	return k
}

// Family is the filter response family.
type Family string

const (
	LPF Family = "lpf"
	HPF Family = "hpf"
	BPF Family = "bpf"
	BEF Family = "bef"
	APF Family = "apf"
)

// Families lists every family.
func Families() []Family { return []Family{LPF, HPF, BPF, BEF, APF} }

// Band maps a family onto the prototype band transform. APF has none.
func (f Family) Band() (prototype.BandType, bool) {
	switch f {
	case LPF:
		return prototype.Lowpass, true
	case HPF:
		return prototype.Highpass, true
	case BPF:
		return prototype.Bandpass, true
	case BEF:
		return prototype.Bandstop, true
	default:
		return 0, false
	}
}

// Params are the inputs of one design. Frequencies are in Hz; zero means
// absent. Pointer fields are optional.
type Params struct {
	FilterType      TopologyKind            `json:"filterType" enum:"passive,active,lc_passive,active_sallen_key" doc:"Circuit realization"`
	Characteristics Family                  `json:"characteristics" enum:"lpf,hpf,bpf,bef,apf" doc:"Filter family"`
	Approximation   prototype.Approximation `json:"approximation,omitempty" enum:"butterworth,chebyshev1,chebyshev2,bessel,elliptic" doc:"Approximation (ignored for apf)"`
	Order           int                     `json:"order" doc:"Filter order: 1-10 passive, even 2-10 active"`

	CutoffFrequency float64 `json:"cutoffFrequency,omitempty" doc:"Cutoff frequency in Hz (lpf, hpf)"`
	CenterFrequency float64 `json:"centerFrequency,omitempty" doc:"Center frequency in Hz (bpf, bef, apf)"`
	Bandwidth       float64 `json:"bandwidth,omitempty" doc:"Bandwidth in Hz (bpf, bef)"`

	PassbandRipple      *float64 `json:"passbandRipple,omitempty" doc:"Passband ripple in dB (chebyshev1, elliptic)"`
	StopbandAttenuation *float64 `json:"stopbandAttenuation,omitempty" doc:"Stopband attenuation in dB (chebyshev2, elliptic)"`
	SourceImpedance     *float64 `json:"sourceImpedance,omitempty" doc:"Source impedance in ohms (passive, default 50)"`
	LoadImpedance       *float64 `json:"loadImpedance,omitempty" doc:"Load impedance in ohms (passive, informational, default 50)"`
	Gain                *float64 `json:"gain,omitempty" doc:"Stage gain (active, informational, default 1)"`
}

// Float returns a pointer to v, for the optional Params fields.
func Float(v float64) *float64 { return &v }

func deref(p *float64, def float64) float64 {
	if p == nil {
		return def
	}

	return *p
}

// Ripple is the passband ripple in dB, 0 when unset.
func (p Params) Ripple() float64 { return deref(p.PassbandRipple, 0) }

// Attenuation is the stopband attenuation in dB, 0 when unset.
func (p Params) Attenuation() float64 { return deref(p.StopbandAttenuation, 0) }

// Source is the source impedance, DefaultImpedance when unset.
func (p Params) Source() float64 { return deref(p.SourceImpedance, DefaultImpedance) }

// Load is the load impedance, DefaultImpedance when unset.
func (p Params) Load() float64 { return deref(p.LoadImpedance, DefaultImpedance) }

// TransferFunction holds coefficients in descending powers of s.
type TransferFunction struct {
	Numerator   []float64 `json:"numerator"`
	Denominator []float64 `json:"denominator"`
}

// Result is a complete design.
type Result struct {
	TransferFunction      TransferFunction           `json:"transferFunction"`
	TransferFunctionLatex string                     `json:"transferFunctionLatex"`
	FrequencyResponse     response.FrequencyResponse `json:"frequencyResponse"`
	Components            []circuit.Component        `json:"components"`
	CircuitTopology       circuit.Topology           `json:"circuitTopology" enum:"ladder-t,ladder-pi,lattice,sallen-key"`
	ImpulseResponse       *response.TimeResponse     `json:"impulseResponse,omitempty"`
}

// Outcome is the single output shape of a design call: the result fields
// on success, or only "error" on failure.
type Outcome struct {
	*Result
	Error *Error `json:"error,omitempty"`
}

// Err returns the error variant, or nil.
func (o Outcome) Err() error {
	if o.Error == nil {
		return nil
	}

	return o.Error
}

// MarshalJSON writes exactly one variant.
func (o Outcome) MarshalJSON() ([]byte, error) {
	if o.Error != nil {
		return json.Marshal(struct {
			Error *Error `json:"error"`
		}{o.Error})
	}

	if o.Result == nil {
		return []byte("null"), nil
	}

	return json.Marshal(o.Result)
}
