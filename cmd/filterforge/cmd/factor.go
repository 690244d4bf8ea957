package cmd

import (
	"fmt"
	"io"
	"math/cmplx"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/filterforge/dsp/filter/analog/notation"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

func newFactorCmd(root *rootOptions) *cobra.Command {
	var num, den string

	c := &cobra.Command{
		Use:   "factor",
		Short: "Factor a transfer function into poles, zeros and biquads",
		Long: `Factor N(s)/D(s), given as comma-separated coefficients in descending powers
of s, into zeros, poles, gain and second-order sections.

Examples:
  filterforge factor --num 1 --den 1,2,2
  filterforge factor --num 1,0,0 --den 1,1.4142,1`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			tf := prototype.TransferFunction{}

			var err error
			if tf.Num, err = parseCoeffs(num); err != nil {
				return fmt.Errorf("--num: %w", err)
			}

			if tf.Den, err = parseCoeffs(den); err != nil {
				return fmt.Errorf("--den: %w", err)
			}

			root.log.Debug().Floats64("num", tf.Num).Floats64("den", tf.Den).Msg("factoring")

			zpk, err := prototype.Factor(tf)
			if err != nil {
				return err
			}

			sections, err := prototype.Sections(zpk)
			if err != nil {
				return err
			}

			return writeFactors(c.OutOrStdout(), zpk, sections)
		},
	}

	c.Flags().StringVar(&num, "num", "1", "numerator coefficients")
	c.Flags().StringVar(&den, "den", "", "denominator coefficients")
	_ = c.MarkFlagRequired("den")

	return c
}

func parseCoeffs(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, 0, len(fields))

	for _, f := range fields {
		v, err := notation.ParseValue(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func writeFactors(w io.Writer, zpk prototype.ZPK, sections []prototype.Section) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "Gain\t%.6g\nStable\t%t\n\n", zpk.Gain, zpk.Stable()); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "Root\tRe\tIm\t|r|\n----\t--\t--\t---\n"); err != nil {
		return err
	}

	for _, set := range []struct {
		label string
		roots []complex128
	}{{"zero", zpk.Zeros}, {"pole", zpk.Poles}} {
		for _, r := range set.roots {
			if _, err := fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%.6g\n", set.label, real(r), imag(r), cmplx.Abs(r)); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintf(tw, "\nSection\tb0\tb1\tb2\ta0\ta1\ta2\n-------\t--\t--\t--\t--\t--\t--\n"); err != nil {
		return err
	}

	for i, s := range sections {
		if _, err := fmt.Fprintf(tw, "%d\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n",
			i+1, s.B[0], s.B[1], s.B[2], s.A[0], s.A[1], s.A[2]); err != nil {
			return err
		}
	}

	return tw.Flush()
}
