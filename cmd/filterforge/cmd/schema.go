package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/filterforge/internal/server"
)

func newSchemaCmd(root *rootOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI document of the design API",
		Long: `Print the OpenAPI 3.1 document describing the design parameters, results
and error shapes. Code generators consume it to build typed clients.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			doc, err := server.OpenAPI(format)
			if err != nil {
				return err
			}

			root.log.Debug().Int("bytes", len(doc)).Str("format", format).Msg("schema rendered")

			_, err = c.OutOrStdout().Write(append(doc, '\n'))

			return err
		},
	}

	c.Flags().StringVar(&format, "format", "json", "document format: json, yaml")

	return c
}
