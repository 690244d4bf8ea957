package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/filterforge/internal/config"
	"github.com/cwbudde/filterforge/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the design API over HTTP",
		Long: `Start the HTTP API. Configuration comes from FILTERFORGE_* environment
variables and an optional .env.<env> file in the working directory:

  FILTERFORGE_PORT             listen port (8080)
  FILTERFORGE_ENV              environment name (dev)
  FILTERFORGE_ALLOWED_ORIGINS  comma-separated CORS origins
  FILTERFORGE_LOG_LEVEL        log level (info)
  FILTERFORGE_RESPONSE_POINTS  frequency response points (500)`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if port != "" {
				cfg.Server.Port = port
			}

			logger := serverLogger(cfg, root, c.Flags().Changed("log-level"))
			logger.Info().
				Strs("allowed_origins", cfg.Server.AllowedOrigins).
				Int("response_points", cfg.Design.ResponsePoints).
				Msg("configuration loaded")

			ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, logger).Run(ctx)
		},
	}

	c.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides FILTERFORGE_PORT)")

	return c
}

// serverLogger writes console output in dev and JSON otherwise. --verbose
// and an explicit --log-level take precedence over the configured level.
func serverLogger(cfg *config.Config, root *rootOptions, explicitLevel bool) zerolog.Logger {
	level := cfg.Log.Level
	if root.verbose {
		level = zerolog.DebugLevel
	} else if explicitLevel {
		level = root.log.GetLevel()
	}

	if cfg.Dev() {
		return newLogger(os.Stderr, level)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
