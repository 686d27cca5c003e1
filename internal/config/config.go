// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types and validates them so the
// rest of the application can rely on them at runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars onto Config, starting from DefaultConfig.
//   - Validate values so the app fails fast on bad config.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the BOXGEN_ prefix. The prefix is removed, the
	rest is lowercased and a double underscore marks one level of nesting:

	  BOXGEN_SERVER__PORT               -> server.port
	  BOXGEN_SERVER__READ_TIMEOUT       -> server.read_timeout
	  BOXGEN_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Single underscores stay part of the key, so keys like read_timeout keep
	working. List values are comma separated.
*/

const (
	// EnvPrefix is the prefix every config env var carries.
	EnvPrefix = "BOXGEN_"

	// ServiceName tags logs and APM data.
	ServiceName = "boxgen"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Mesh          MeshConfig           `koanf:"mesh" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are in seconds.
type ServerConfig struct {
	Port                 string   `koanf:"port" validate:"required"`
	ReadTimeout          int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout         int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout          int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins   []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
	CORSAllowCredentials bool     `koanf:"cors_allow_credentials"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero, the default, disables rate limiting. /health is never limited.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// MeshConfig controls how generated meshes are written out.
type MeshConfig struct {
	// HeaderComment fills the 80-byte binary STL header.
	HeaderComment string `koanf:"header_comment" validate:"max=80"`

	// SolidName is used for the mesh name (ASCII "solid" line).
	SolidName string `koanf:"solid_name" validate:"required"`

	// Filename is sent in the Content-Disposition header.
	Filename string `koanf:"filename" validate:"required"`
}

// DefaultConfig returns the configuration used when no env var overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{
			Env: "development",
		},
		Server: ServerConfig{
			Port:                 "8000",
			ReadTimeout:          30,
			WriteTimeout:         30,
			IdleTimeout:          60,
			CORSAllowedOrigins:   []string{"*"},
			CORSAllowCredentials: true,
			RateLimit:            0,
		},
		Mesh: MeshConfig{
			HeaderComment: "boxgen binary STL",
			SolidName:     "box",
			Filename:      "test.stl",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps an environment variable name onto a koanf key path.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and returns it.
//
// Behavior summary:
//   - Loads env vars with prefix BOXGEN_
//   - Unmarshals them over the defaults (keys that are not set keep their default)
//   - Validates struct tags, then the observability block's own rules
//   - Forces the observability service name and environment
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Observability can be nil only if someone built the struct by hand.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
