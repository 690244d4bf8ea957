package server

import (
	"time"

	"github.com/cwbudde/filterforge/dsp/filter/analog/design"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// DesignRequest carries the design parameters plus optional time-domain
// output.
type DesignRequest struct {
	Impulse    int     `query:"impulse" minimum:"0" maximum:"65536" doc:"Impulse/step response length (rounded up to a power of two, 0 = off)"`
	SampleRate float64 `query:"sampleRate" minimum:"0" doc:"Impulse response sample rate in Hz (0 = derived from the response window)"`
	Body       design.Params
}

// DesignResponse is a successful design.
type DesignResponse struct {
	Body *design.Result
}

// NotationRequest is a design written in the compact notation.
type NotationRequest struct {
	Body struct {
		Notation string `json:"notation" minLength:"1" example:"active lpf chebyshev1 n=4 fc=1k rp=0.5" doc:"Compact design notation"`
	}
}

// FactorizeRequest is an expanded transfer function.
type FactorizeRequest struct {
	Body struct {
		Numerator   []float64 `json:"numerator" minItems:"1" doc:"Numerator coefficients, descending powers of s"`
		Denominator []float64 `json:"denominator" minItems:"1" doc:"Denominator coefficients, descending powers of s"`
	}
}

// Root is a complex root.
type Root struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// Section is one biquad of a cascade.
type Section struct {
	B [3]float64 `json:"b" doc:"Numerator, descending powers of s"`
	A [3]float64 `json:"a" doc:"Denominator, descending powers of s"`
}

// FactorizeResponseBody is the factored transfer function.
type FactorizeResponseBody struct {
	Zeros    []Root    `json:"zeros"`
	Poles    []Root    `json:"poles"`
	Gain     float64   `json:"gain"`
	Stable   bool      `json:"stable" doc:"Every pole in the closed left half-plane"`
	Sections []Section `json:"sections" doc:"Second-order sections, poles nearest the jw axis last"`
}

// FactorizeResponse wraps FactorizeResponseBody.
type FactorizeResponse struct {
	Body FactorizeResponseBody
}

// ListResponse enumerates the accepted parameter values.
type ListResponse struct {
	Body struct {
		FilterTypes    []string `json:"filterTypes"`
		Families       []string `json:"characteristics"`
		Approximations []string `json:"approximations"`
		Topologies     []string `json:"circuitTopologies"`
	}
}
