// Package config provides configuration loading and management using koanf.
//
// Configuration comes from two layers only: built-in defaults and a fixed set
// of environment variables. It is resolved once at startup and passed by
// pointer to whatever needs it.
package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServiceName identifies the service in logs and traces.
	DefaultServiceName = "teapot-service"

	// DefaultServerHost is the default listen address.
	DefaultServerHost = "0.0.0.0"

	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8000

	// DefaultQuotesFile is the default quotes document, relative to the working directory.
	DefaultQuotesFile = "config/teapot_quotes.json"

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Quotes    QuotesConfig    `koanf:"quotes"`
	Log       LogConfig       `koanf:"log"`
	Admin     AdminConfig     `koanf:"admin"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name string `koanf:"name" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"`
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// QuotesConfig locates the quotes document.
type QuotesConfig struct {
	File string `koanf:"file" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Requests turns the per-request log line on or off.
	Requests bool          `koanf:"requests"`
	Level    string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format   string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File     LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// AdminConfig controls the internal listener for probes and metrics.
// A zero port disables it.
type AdminConfig struct {
	Port int `koanf:"port" validate:"min=0,max=65535"`
}

// Enabled reports whether the admin listener should start.
func (a AdminConfig) Enabled() bool {
	return a.Port > 0
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// envKeys maps the recognised environment variables onto config keys.
// Variables not listed here are ignored.
var envKeys = map[string]string{
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"SHUTDOWN_TIMEOUT":            "server.shutdown_timeout",
	"QUOTES_FILE":                 "quotes.file",
	"LOG_ENABLED":                 "log.requests",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"LOG_FILE":                    "log.file.path",
	"ADMIN_PORT":                  "admin.port",
	"OTEL_ENABLED":                "telemetry.enabled",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "telemetry.endpoint",
	"OTEL_SAMPLING_RATE":          "telemetry.sampling_rate",
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name": DefaultServiceName,

		"server.host":             DefaultServerHost,
		"server.port":             DefaultServerPort,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",

		"quotes.file": DefaultQuotesFile,

		"log.requests":         true,
		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"admin.port": 0,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  DefaultServiceName,
		"telemetry.sampling_rate": 1.0,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables listed in envKeys
//  2. Default values
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Naming a log file is what switches file output on.
	if k.String("log.file.path") != "" {
		if err := k.Set("log.file.enabled", true); err != nil {
			return nil, fmt.Errorf("enabling log file: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envValue translates one environment variable into a config key and value.
// An empty key tells koanf to skip the variable. Empty values are skipped
// too, so a variable that is set but blank keeps its default.
func envValue(name, value string) (string, any) {
	key, ok := envKeys[name]
	if !ok {
		return "", nil
	}

	// Any value other than the literal "false" keeps request logging on.
	if key == "log.requests" {
		return key, value != "false"
	}

	if value == "" {
		return "", nil
	}

	return key, value
}
