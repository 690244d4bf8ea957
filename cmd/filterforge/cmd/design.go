package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/filterforge/dsp/core"
	"github.com/cwbudde/filterforge/dsp/filter/analog/design"
	"github.com/cwbudde/filterforge/dsp/filter/analog/notation"
)

type designOptions struct {
	filterType    string
	family        string
	approximation string
	order         int
	settings      map[string]*string

	points     int
	impulse    int
	sampleRate float64
	format     string
}

// settingFlags maps flag names onto notation keys.
var settingFlags = []struct{ flag, key, usage string }{
	{"fc", "fc", "cutoff frequency in Hz (lpf, hpf)"},
	{"f0", "f0", "center frequency in Hz (bpf, bef, apf)"},
	{"bw", "bw", "bandwidth in Hz (bpf, bef)"},
	{"rp", "rp", "passband ripple in dB"},
	{"rs", "rs", "stopband attenuation in dB"},
	{"source", "z", "source impedance in ohms"},
	{"load", "zl", "load impedance in ohms"},
	{"gain", "gain", "active stage gain"},
}

func newDesignCmd(root *rootOptions) *cobra.Command {
	opts := &designOptions{settings: map[string]*string{}}

	c := &cobra.Command{
		Use:   "design [notation ...]",
		Short: "Design a filter and print the result",
		Long: `Design a filter from compact notation or flags and print the result as JSON
(the same shape as the HTTP API) or as a component table.

Values accept SI suffixes: p n u m k M G.

Examples:
  filterforge design passive lpf butterworth n=3 fc=1k
  filterforge design active bpf chebyshev1 n=4 f0=10k bw=2k rp=0.5 --format table
  filterforge design --family lpf --approx elliptic -n 5 --fc 1k --rp 1 --rs 40`,
		RunE: func(c *cobra.Command, args []string) error {
			return runDesign(c, root, opts, args)
		},
	}

	f := c.Flags()
	f.StringVar(&opts.filterType, "type", "passive", "circuit realization: passive, active")
	f.StringVar(&opts.family, "family", "", "filter family: lpf, hpf, bpf, bef, apf")
	f.StringVar(&opts.approximation, "approx", "", "approximation: butterworth, chebyshev1, chebyshev2, bessel, elliptic")
	f.IntVarP(&opts.order, "order", "n", 0, "filter order")

	for _, s := range settingFlags {
		opts.settings[s.key] = f.String(s.flag, "", s.usage)
	}

	f.IntVar(&opts.points, "points", 0, "frequency response points (default 500)")
	f.IntVar(&opts.impulse, "impulse", 0, "impulse/step response length, rounded up to a power of two")
	f.Float64Var(&opts.sampleRate, "sample-rate", 0, "impulse response sample rate in Hz")
	f.StringVarP(&opts.format, "format", "o", "json", "output format: json, table")

	return c
}

// notationLine builds the notation form of the flag values.
func (o *designOptions) notationLine() string {
	parts := []string{o.filterType, o.family}
	if o.approximation != "" {
		parts = append(parts, o.approximation)
	}

	parts = append(parts, "n="+strconv.Itoa(o.order))

	for _, s := range settingFlags {
		if v := *o.settings[s.key]; v != "" {
			parts = append(parts, s.key+"="+v)
		}
	}

	return strings.Join(parts, " ")
}

func runDesign(c *cobra.Command, root *rootOptions, opts *designOptions, args []string) error {
	line := strings.Join(args, " ")
	if line == "" {
		if opts.family == "" {
			return fmt.Errorf("either notation arguments or --family is required")
		}

		line = opts.notationLine()
	}

	p, err := notation.Parse(line)
	if err != nil {
		return err
	}

	root.log.Debug().Str("notation", notation.Format(p)).Msg("designing")

	designOpts := []core.DesignOption{core.WithResponsePoints(opts.points)}
	if opts.impulse > 0 {
		designOpts = append(designOpts, core.WithImpulseResponse(opts.impulse, opts.sampleRate))
	}

	outcome := design.DesignOutcome(p, designOpts...)
	if outcome.Error != nil {
		root.log.Debug().Str("code", string(outcome.Error.Code)).Str("details", outcome.Error.Details).Msg("design failed")
	}

	out := c.OutOrStdout()

	switch opts.format {
	case "json":
		if err := writeJSON(out, outcome); err != nil {
			return err
		}
	case "table":
		if outcome.Error == nil {
			if err := writeComponents(out, outcome.Result); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}

	return outcome.Err()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func writeComponents(w io.Writer, r *design.Result) error {
	if _, err := fmt.Fprintf(w, "H(s): %s\nTopology: %s\n\n", r.TransferFunctionLatex, r.CircuitTopology); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "ID\tType\tValue\tPosition\n--\t----\t-----\t--------\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, cmp := range r.Components {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.6g\t%s\n", cmp.ID, cmp.Type, cmp.Value, cmp.Position); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	return tw.Flush()
}
