// Package config loads the hosting configuration of the CLI and HTTP server.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FILTERFORGE"

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Design DesignConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level zerolog.Level
}

// DesignConfig holds engine knobs exposed to operators
type DesignConfig struct {
	// ResponsePoints defaults to the engine's fixed 500. Setting
	// FILTERFORGE_RESPONSE_POINTS changes the length of every served response.
	ResponsePoints int
}

// Dev reports whether the server runs in the development environment.
func (c *Config) Dev() bool { return c.Server.Env == "dev" }

// Load reads configuration from defaults, an optional .env.<env> file in the
// working directory and FILTERFORGE_* environment variables, in increasing
// precedence.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory for the .env file.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RESPONSE_POINTS", 500)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, key := range []string{"PORT", "ENV", "ALLOWED_ORIGINS", "LOG_LEVEL", "RESPONSE_POINTS"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	env := v.GetString("ENV")
	if env == "" {
		env = "dev"
	}

	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read .env.%s: %w", env, err)
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("LOG_LEVEL")))
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}

	points := v.GetInt("RESPONSE_POINTS")
	if points < 2 {
		return nil, fmt.Errorf("config: response points must be at least 2, got %d", points)
	}

	var cfg Config
	cfg.Server.Port = v.GetString("PORT")
	cfg.Server.Env = env
	cfg.Server.AllowedOrigins = splitOrigins(v.GetString("ALLOWED_ORIGINS"))
	cfg.Log.Level = level
	cfg.Design.ResponsePoints = points

	return &cfg, nil
}

func splitOrigins(s string) []string {
	var out []string

	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}

	return out
}
