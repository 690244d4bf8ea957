package server

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cwbudde/filterforge/dsp/core"
	"github.com/cwbudde/filterforge/dsp/filter/analog/circuit"
	"github.com/cwbudde/filterforge/dsp/filter/analog/design"
	"github.com/cwbudde/filterforge/dsp/filter/analog/notation"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

// Options tune the registered operations.
type Options struct {
	// ResponsePoints overrides the number of frequency samples when > 0.
	ResponsePoints int
}

type handler struct {
	opts Options
}

// Register adds every operation to api.
func Register(api huma.API, opts Options) {
	h := &handler{opts: opts}

	errSchema := api.OpenAPI().Components.Schemas.Schema(reflect.TypeOf(DesignError{}), true, "")
	statusErrors := map[string]*huma.Response{
		"422": {
			Description: "INVALID_PARAMS: parameters rejected before computation",
			Content:     map[string]*huma.MediaType{"application/json": {Schema: errSchema}},
		},
		"500": {
			Description: "CALCULATION_ERROR: synthesis failed",
			Content:     map[string]*huma.MediaType{"application/json": {Schema: errSchema}},
		},
	}

	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
		Tags:        []string{"Service"},
	}, h.Health)

	huma.Register(api, huma.Operation{
		OperationID:      "designFilter",
		Method:           http.MethodPost,
		Path:             "/api/design",
		Summary:          "Design a filter",
		Description:      "Computes the transfer function, frequency response and component values of an analog filter",
		Tags:             []string{"Design"},
		SkipValidateBody: true,
		Responses:        statusErrors,
	}, h.Design)

	huma.Register(api, huma.Operation{
		OperationID: "designFromNotation",
		Method:      http.MethodPost,
		Path:        "/api/design/notation",
		Summary:     "Design a filter from compact notation",
		Description: "Parses a line such as \"passive bpf butterworth n=3 f0=10k bw=2k\" and designs it",
		Tags:        []string{"Design"},
		Responses:   statusErrors,
	}, h.DesignNotation)

	huma.Register(api, huma.Operation{
		OperationID: "factorize",
		Method:      http.MethodPost,
		Path:        "/api/factorize",
		Summary:     "Factor a transfer function",
		Description: "Returns zeros, poles, gain and second-order sections of an expanded transfer function",
		Tags:        []string{"Analysis"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.Factorize)

	huma.Register(api, huma.Operation{
		OperationID: "listOptions",
		Method:      http.MethodGet,
		Path:        "/api/options",
		Summary:     "List parameter values",
		Description: "Enumerates filter types, families, approximations and circuit topologies",
		Tags:        []string{"Design"},
	}, h.List)
}

func (h *handler) Health(_ context.Context, _ *struct{}) (*HealthResponse, error) {
	resp := &HealthResponse{}
	resp.Body.Status = "healthy"
	resp.Body.Version = Version
	resp.Body.Time = time.Now()

	return resp, nil
}

func (h *handler) designOptions(impulse int, sampleRate float64) []core.DesignOption {
	opts := []core.DesignOption{core.WithResponsePoints(h.opts.ResponsePoints)}
	if impulse > 0 {
		opts = append(opts, core.WithImpulseResponse(impulse, sampleRate))
	}

	return opts
}

func (h *handler) Design(_ context.Context, in *DesignRequest) (*DesignResponse, error) {
	r, err := design.Design(in.Body, h.designOptions(in.Impulse, in.SampleRate)...)
	if err != nil {
		return nil, newDesignError(err)
	}

	return &DesignResponse{Body: r}, nil
}

func (h *handler) DesignNotation(_ context.Context, in *NotationRequest) (*DesignResponse, error) {
	p, err := notation.Parse(in.Body.Notation)
	if err != nil {
		return nil, newDesignError(&design.Error{Code: design.InvalidParams, Message: err.Error()})
	}

	r, err := design.Design(p, h.designOptions(0, 0)...)
	if err != nil {
		return nil, newDesignError(err)
	}

	return &DesignResponse{Body: r}, nil
}

func (h *handler) Factorize(_ context.Context, in *FactorizeRequest) (*FactorizeResponse, error) {
	tf := prototype.TransferFunction{Num: in.Body.Numerator, Den: in.Body.Denominator}

	zpk, err := prototype.Factor(tf)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Cannot factor transfer function", err)
	}

	sections, err := prototype.Sections(zpk)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity("Cannot group into second-order sections", err)
	}

	resp := &FactorizeResponse{}
	resp.Body.Zeros = roots(zpk.Zeros)
	resp.Body.Poles = roots(zpk.Poles)
	resp.Body.Gain = zpk.Gain
	resp.Body.Stable = zpk.Stable()
	resp.Body.Sections = make([]Section, len(sections))

	for i, s := range sections {
		resp.Body.Sections[i] = Section{B: s.B, A: s.A}
	}

	return resp, nil
}

func (h *handler) List(_ context.Context, _ *struct{}) (*ListResponse, error) {
	resp := &ListResponse{}
	resp.Body.FilterTypes = []string{string(design.Passive), string(design.Active)}

	for _, f := range design.Families() {
		resp.Body.Families = append(resp.Body.Families, string(f))
	}

	for _, a := range prototype.Approximations() {
		resp.Body.Approximations = append(resp.Body.Approximations, string(a))
	}

	for _, t := range circuit.Topologies() {
		resp.Body.Topologies = append(resp.Body.Topologies, string(t))
	}

	return resp, nil
}

func roots(in []complex128) []Root {
	out := make([]Root, len(in))
	for i, r := range in {
		out[i] = Root{Re: real(r), Im: imag(r)}
	}

	return out
}
