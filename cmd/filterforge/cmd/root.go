package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version of the CLI.
const Version = "1.0.0"

type rootOptions struct {
	verbose  bool
	logLevel string
	log      zerolog.Logger
}

// NewRootCmd builds the command tree. stderr receives log output.
func NewRootCmd(stderr io.Writer) *cobra.Command {
	opts := &rootOptions{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "filterforge",
		Short: "Analog filter designer",
		Long: `Design passive LC ladder and active Sallen-Key filters, factor transfer
functions and serve the design engine over HTTP.

Examples:
  filterforge design passive lpf butterworth n=3 fc=1k      # Compact notation
  filterforge design --family bpf --approx bessel -n 4 --f0 10k --bw 2k
  filterforge factor --num 1 --den 1,2,2                   # Poles, zeros, sections
  filterforge schema --format yaml                         # OpenAPI document
  filterforge serve                                        # HTTP API`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, err := zerolog.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}

			if opts.verbose && level > zerolog.DebugLevel {
				level = zerolog.DebugLevel
			}

			opts.log = newLogger(stderr, level)

			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug logging)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newDesignCmd(opts),
		newFactorCmd(opts),
		newSchemaCmd(opts),
		newServeCmd(opts),
		newListCmd(),
	)

	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
