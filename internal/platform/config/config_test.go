package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvUnset unsets every recognised variable for the duration of the test.
// t.Setenv registers the restore, the explicit unset makes the variable absent.
func clearEnvUnset(t *testing.T) {
	t.Helper()

	for name := range envKeys {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

// TestLoad_DefaultValues tests that hardcoded defaults are applied when no
// recognised variables are set.
func TestLoad_DefaultValues(t *testing.T) {
	clearEnvUnset(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultServiceName, cfg.App.Name)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, DefaultQuotesFile, cfg.Quotes.File)
	assert.True(t, cfg.Log.Requests)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Log.File.Enabled)
	assert.False(t, cfg.Admin.Enabled())
	assert.False(t, cfg.Telemetry.Enabled)
	require.NoError(t, cfg.Validate())
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	clearEnvUnset(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

// TestLoad_EnvVarOverrides tests that the recognised variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	clearEnvUnset(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("QUOTES_FILE", "/srv/teapot/quotes.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "pretty")
	t.Setenv("ADMIN_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, "/srv/teapot/quotes.json", cfg.Quotes.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "pretty", cfg.Log.Format)
	assert.True(t, cfg.Admin.Enabled())
	assert.Equal(t, 9100, cfg.Admin.Port)
}

// TestLoad_LogEnabled tests that only the literal "false" disables request logging.
func TestLoad_LogEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{value: "false", expected: false},
		{value: "true", expected: true},
		{value: "FALSE", expected: true},
		{value: "0", expected: true},
		{value: "no", expected: true},
		{value: "", expected: true},
	}

	for _, tt := range tests {
		t.Run("LOG_ENABLED="+tt.value, func(t *testing.T) {
			clearEnvUnset(t)
			t.Setenv("LOG_ENABLED", tt.value)

			cfg, err := Load()
			require.NoError(t, err)

			assert.Equal(t, tt.expected, cfg.Log.Requests)
		})
	}
}

// TestLoad_LogFileEnablesFileOutput tests that naming a log file turns file output on.
func TestLoad_LogFileEnablesFileOutput(t *testing.T) {
	clearEnvUnset(t)
	t.Setenv("LOG_FILE", "/var/log/teapot.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Log.File.Enabled)
	assert.Equal(t, "/var/log/teapot.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
}

// TestLoad_Telemetry tests that telemetry variables are parsed.
func TestLoad_Telemetry(t *testing.T) {
	clearEnvUnset(t)
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4317")
	t.Setenv("OTEL_SAMPLING_RATE", "0.25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "http://collector:4317", cfg.Telemetry.Endpoint)
	assert.InDelta(t, 0.25, cfg.Telemetry.SamplingRate, 1e-9)
	require.NoError(t, cfg.Validate())
}

// TestLoad_EmptyValuesKeepDefaults tests that a variable set to the empty
// string falls back to its default instead of failing validation.
func TestLoad_EmptyValuesKeepDefaults(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, cfg *Config)
	}{
		{name: "HOST", check: func(t *testing.T, cfg *Config) { assert.Equal(t, DefaultServerHost, cfg.Server.Host) }},
		{name: "PORT", check: func(t *testing.T, cfg *Config) { assert.Equal(t, DefaultServerPort, cfg.Server.Port) }},
		{name: "QUOTES_FILE", check: func(t *testing.T, cfg *Config) { assert.Equal(t, DefaultQuotesFile, cfg.Quotes.File) }},
		{name: "SHUTDOWN_TIMEOUT", check: func(t *testing.T, cfg *Config) { assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout) }},
		{name: "LOG_LEVEL", check: func(t *testing.T, cfg *Config) { assert.Equal(t, "info", cfg.Log.Level) }},
		{name: "LOG_FILE", check: func(t *testing.T, cfg *Config) { assert.False(t, cfg.Log.File.Enabled) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvUnset(t)
			t.Setenv(tt.name, "")

			cfg, err := Load()
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			tt.check(t, cfg)
		})
	}
}

// TestLoad_InvalidPort tests that a non-numeric port fails loading.
func TestLoad_InvalidPort(t *testing.T) {
	clearEnvUnset(t)
	t.Setenv("PORT", "teapot")

	_, err := Load()
	require.Error(t, err)
}

// TestLoad_IgnoresUnrelatedVariables tests that only the listed variables are read.
func TestLoad_IgnoresUnrelatedVariables(t *testing.T) {
	clearEnvUnset(t)
	t.Setenv("APP_SERVER_PORT", "1234")
	t.Setenv("SERVER_PORT", "1234")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
}

func TestEnvValue(t *testing.T) {
	key, value := envValue("PORT", "8080")
	assert.Equal(t, "server.port", key)
	assert.Equal(t, "8080", value)

	key, value = envValue("LOG_ENABLED", "false")
	assert.Equal(t, "log.requests", key)
	assert.Equal(t, false, value)

	key, value = envValue("LOG_ENABLED", "")
	assert.Equal(t, "log.requests", key)
	assert.Equal(t, true, value)

	key, _ = envValue("HOST", "")
	assert.Empty(t, key)

	key, _ = envValue("PATH", "/usr/bin")
	assert.Empty(t, key)
}
