// Package config loads server configuration from defaults, an optional YAML
// file and environment variable overrides, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so values like "250ms" decode from both YAML
// and environment variables.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Decode implements envdecode.Decoder.
func (d *Duration) Decode(repr string) error {
	parsed, err := time.ParseDuration(repr)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", repr, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the runtime configuration for the API server.
type Config struct {
	// Port the HTTP server listens on.
	Port int `yaml:"port" env:"PORT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`

	// CORSOrigins lists allowed origins; "*" allows all.
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS"`

	// OperationLatency simulates asynchronous I/O on user operations.
	OperationLatency Duration `yaml:"operation_latency" env:"OPERATION_LATENCY"`

	// ReporterSchedule is the cron expression for the stats snapshot job.
	ReporterSchedule string `yaml:"reporter_schedule" env:"REPORTER_SCHEDULE"`

	// ShutdownTimeout bounds graceful HTTP server shutdown.
	ShutdownTimeout Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Port:             3000,
		LogLevel:         "info",
		LogFormat:        "text",
		CORSOrigins:      []string{"*"},
		ReporterSchedule: "@every 1m",
		ShutdownTimeout:  Duration(30 * time.Second),
	}
}

// Load starts from Default, overlays the optional file at path (skipped when
// empty or missing), then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Optional file; fall through to env and defaults.
		default:
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// envdecode reports ErrNoTargetFieldsAreSet when no variable is present;
	// a fully file-driven configuration is fine.
	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.OperationLatency < 0 {
		return fmt.Errorf("operation_latency must not be negative")
	}
	return nil
}
