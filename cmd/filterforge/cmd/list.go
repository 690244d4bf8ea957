package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/filterforge/dsp/filter/analog/circuit"
	"github.com/cwbudde/filterforge/dsp/filter/analog/design"
	"github.com/cwbudde/filterforge/dsp/filter/analog/prototype"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List filter types, families, approximations and topologies",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)

			rows := [][2]string{
				{"type", string(design.Passive)},
				{"type", string(design.Active)},
			}

			for _, f := range design.Families() {
				rows = append(rows, [2]string{"family", string(f)})
			}

			for _, a := range prototype.Approximations() {
				rows = append(rows, [2]string{"approximation", string(a)})
			}

			for _, t := range circuit.Topologies() {
				rows = append(rows, [2]string{"topology", string(t)})
			}

			if _, err := fmt.Fprintf(tw, "Kind\tValue\n----\t-----\n"); err != nil {
				return err
			}

			for _, r := range rows {
				if _, err := fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1]); err != nil {
					return err
				}
			}

			return tw.Flush()
		},
	}
}
