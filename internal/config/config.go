// Package config loads runtime settings from the environment.
//
// The loading sequence is:
//  1. Load a .env file via godotenv (non-fatal if absent).
//  2. Populate Config from environment variables with envconfig.
//  3. Validate the struct with go-playground/validator.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// SecretString hides its value from fmt and logs.
type SecretString string

// String implements fmt.Stringer with a redacted value.
func (s SecretString) String() string {
	if s == "" {
		return ""
	}
	return "***REDACTED***"
}

// Unmask returns the raw value.
func (s SecretString) Unmask() string {
	return string(s)
}

// Config holds every setting the commands read from the environment.
type Config struct {
	CWAAPIKey  SecretString `envconfig:"CWA_API_KEY"`
	CWABaseURL string       `envconfig:"CWA_BASE_URL" default:"https://opendata.cwa.gov.tw" validate:"required,url"`

	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	DBPath   string `envconfig:"DB_PATH" default:"data/surf-terminal.db" validate:"required"`
	CacheDir string `envconfig:"CACHE_DIR" default:"data/cache" validate:"required"`
	RedisURL string `envconfig:"REDIS_URL" validate:"omitempty,url"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	HTTPTimeout        time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`
	WaveCacheFreshness time.Duration `envconfig:"WAVE_CACHE_FRESHNESS" default:"3h" validate:"gt=0"`
	WaveCacheMaxAge    time.Duration `envconfig:"WAVE_CACHE_MAX_AGE" default:"12h" validate:"gtefield=WaveCacheFreshness"`

	NearbyRadiusKm float64 `envconfig:"NEARBY_RADIUS_KM" default:"50" validate:"gt=0,lte=500"`
	ZonesShapefile string  `envconfig:"ZONES_SHAPEFILE"`
}

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	ErrMissingEnv ConfigErrorType = "MISSING_ENV"
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	ErrParsing    ConfigErrorType = "PARSING_FAILED"
)

// ConfigError is returned by Load to aid debugging.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads and validates the configuration. The CWA key is optional here;
// commands that call the API check it with RequireAPIKey.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return &cfg, nil
}

// RequireAPIKey reports a missing CWA_API_KEY.
func (c *Config) RequireAPIKey() error {
	if c.CWAAPIKey == "" {
		return &ConfigError{
			Type:    ErrMissingEnv,
			Message: "CWA_API_KEY is required; get one at https://opendata.cwa.gov.tw/user/authkey",
		}
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
