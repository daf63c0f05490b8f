package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HABITQUEST_DB", "")
	t.Setenv("HABITQUEST_TZ", "")
	t.Setenv("HABITQUEST_PROVIDER", "")
	t.Setenv("HABITQUEST_MODEL", "")
	t.Setenv("HABITQUEST_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ProviderGemini, cfg.Coach.Provider)
	assert.Equal(t, DefaultGeminiModel, cfg.Coach.Model)
	assert.Equal(t, 3, cfg.Coach.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Coach.InitialBackoff)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `db_path: /tmp/hq.db
timezone: Europe/Berlin
coach:
  provider: anthropic
  initial_backoff: 500ms
  max_retries: 1
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("HABITQUEST_DB", "/data/override.db")
	t.Setenv("HABITQUEST_TZ", "")
	t.Setenv("HABITQUEST_PROVIDER", "")
	t.Setenv("HABITQUEST_MODEL", "")
	t.Setenv("HABITQUEST_LOG_LEVEL", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/override.db", cfg.DBPath)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, ProviderAnthropic, cfg.Coach.Provider)
	assert.Equal(t, DefaultAnthropicModel, cfg.Coach.Model)
	assert.Equal(t, "sk-test", cfg.Coach.APIKey)
	assert.Equal(t, 500*time.Millisecond, cfg.Coach.InitialBackoff)
	assert.Equal(t, 1, cfg.Coach.MaxRetries)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestApplyEnvGeminiKeyFallback(t *testing.T) {
	cfg := Default()
	cfg.applyEnv(envMap(map[string]string{"API_KEY": "fallback"}))
	assert.Equal(t, "fallback", cfg.Coach.APIKey)

	cfg = Default()
	cfg.applyEnv(envMap(map[string]string{"API_KEY": "fallback", "GEMINI_API_KEY": "primary"}))
	assert.Equal(t, "primary", cfg.Coach.APIKey)

	cfg = Default()
	cfg.Coach.APIKey = "from-file"
	cfg.applyEnv(envMap(map[string]string{"GEMINI_API_KEY": "primary"}))
	assert.Equal(t, "from-file", cfg.Coach.APIKey)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"provider", func(c *Config) { c.Coach.Provider = "openai" }},
		{"level", func(c *Config) { c.LogLevel = "loud" }},
		{"timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"retries", func(c *Config) { c.Coach.MaxRetries = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Timezone = "UTC"
	cfg.Coach.Model = "m"
	require.NoError(t, cfg.Save(path))

	t.Setenv("HABITQUEST_TZ", "")
	t.Setenv("HABITQUEST_MODEL", "")
	t.Setenv("HABITQUEST_PROVIDER", "")
	t.Setenv("HABITQUEST_LOG_LEVEL", "")
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", got.Timezone)
	assert.Equal(t, "m", got.Coach.Model)
	assert.Equal(t, 30*time.Second, got.Coach.MaxBackoff)
}
