// Package notation parses and prints a one-line text form of design
// parameters:
//
//	[passive|active] <family> [approximation] key=value ...
//
// for example "active lpf chebyshev1 n=4 fc=1k rp=0.5". Values accept the
// SI suffixes p, n, u, m, k, M and G.
package notation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/filterforge/dsp/filter/analog/design"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

var (
	// ErrSyntax wraps grammar errors.
	ErrSyntax = errors.New("notation: syntax error")
	// ErrUnknownKey is returned for a setting name outside the key table.
	ErrUnknownKey = errors.New("notation: unknown key")
	// ErrInvalidValue is returned for a value that does not fit its key.
	ErrInvalidValue = errors.New("notation: invalid value")
)

var siSuffix = map[byte]float64{
	'p': 1e-12,
	'n': 1e-9,
	'u': 1e-6,
	'm': 1e-3,
	'k': 1e3,
	'M': 1e6,
	'G': 1e9,
}

// Parse converts a notation line into design parameters. The topology kind
// defaults to passive. Parameters are not validated beyond their syntax.
func Parse(line string) (design.Params, error) {
	st, err := parser.ParseString("", line)
	if err != nil {
		return design.Params{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	p := design.Params{
		FilterType:      design.Passive,
		Characteristics: design.Family(st.Family),
		Approximation:   prototype.Approximation(st.Approximation),
	}

	if st.Kind != "" {
		p.FilterType = design.TopologyKind(st.Kind).Canonical()
	}

	for _, s := range st.Settings {
		v, err := ParseValue(s.Value)
		if err != nil {
			return design.Params{}, fmt.Errorf("%s: %w", s.Key, err)
		}

		if err := assign(&p, s.Key, v); err != nil {
			return design.Params{}, err
		}
	}

	return p, nil
}

//nolint:cyclop
func assign(p *design.Params, key string, v float64) error {
	switch key {
	case "n", "order":
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return fmt.Errorf("%w: order %v is not an integer", ErrInvalidValue, v)
		}

		p.Order = int(v)
	case "fc", "cutoff":
		p.CutoffFrequency = v
	case "f0", "center":
		p.CenterFrequency = v
	case "bw", "bandwidth":
		p.Bandwidth = v
	case "rp", "ripple":
		p.PassbandRipple = design.Float(v)
	case "rs", "attenuation":
		p.StopbandAttenuation = design.Float(v)
	case "z", "zs", "rs_ohm", "source":
		p.SourceImpedance = design.Float(v)
	case "zl", "load":
		p.LoadImpedance = design.Float(v)
	case "gain":
		p.Gain = design.Float(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	return nil
}

// ParseValue reads a number with an optional SI suffix ("4.7k", "100n").
func ParseValue(s string) (float64, error) {
	scale := 1.0

	if n := len(s); n > 1 {
		if m, ok := siSuffix[s[n-1]]; ok {
			scale = m
			s = s[:n-1]
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, s)
	}

	return v * scale, nil
}

// Format prints p in notation form. Unset optional fields are omitted, so
// Parse(Format(p)) reproduces p for parameters built by Parse.
func Format(p design.Params) string {
	parts := []string{string(p.FilterType.Canonical()), string(p.Characteristics)}

	if p.Approximation != "" {
		parts = append(parts, string(p.Approximation))
	}

	parts = append(parts, "n="+strconv.Itoa(p.Order))

	add := func(key string, v float64) {
		parts = append(parts, key+"="+strconv.FormatFloat(v, 'g', -1, 64))
	}

	if p.CutoffFrequency != 0 {
		add("fc", p.CutoffFrequency)
	}

	if p.CenterFrequency != 0 {
		add("f0", p.CenterFrequency)
	}

	if p.Bandwidth != 0 {
		add("bw", p.Bandwidth)
	}

	for _, opt := range []struct {
		key string
		v   *float64
	}{
		{"rp", p.PassbandRipple},
		{"rs", p.StopbandAttenuation},
		{"z", p.SourceImpedance},
		{"zl", p.LoadImpedance},
		{"gain", p.Gain},
	} {
		if opt.v != nil {
			add(opt.key, *opt.v)
		}
	}

	return strings.Join(parts, " ")
}
