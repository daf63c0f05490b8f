package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"

	DefaultGeminiModel    = "gemini-3-flash-preview"
	DefaultAnthropicModel = "claude-sonnet-4-5"
)

// ValidProviders lists the coach backends.
var ValidProviders = []string{ProviderGemini, ProviderAnthropic}

var validLevels = []string{"debug", "info", "warn", "error"}

type Config struct {
	DBPath   string      `yaml:"db_path"`
	Timezone string      `yaml:"timezone"`
	LogLevel string      `yaml:"log_level"`
	Coach    CoachConfig `yaml:"coach"`
}

type CoachConfig struct {
	Provider          string        `yaml:"provider"`
	Model             string        `yaml:"model"`
	APIKey            string        `yaml:"api_key"`
	MaxRetries        int           `yaml:"max_retries"`
	InitialBackoff    time.Duration `yaml:"initial_backoff"`
	MaxBackoff        time.Duration `yaml:"max_backoff"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
}

func Default() *Config {
	return &Config{
		Timezone: "Local",
		LogLevel: "warn",
		Coach: CoachConfig{
			Provider:          ProviderGemini,
			MaxRetries:        3,
			InitialBackoff:    2 * time.Second,
			MaxBackoff:        30 * time.Second,
			RequestsPerMinute: 30,
		},
	}
}

// DefaultPath is ~/.habitquest/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".habitquest", "config.yaml")
	}
	return filepath.Join(home, ".habitquest", "config.yaml")
}

// Load reads the YAML file at path and applies environment overrides. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv(os.Getenv)
	cfg.fillModel()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("HABITQUEST_DB"); v != "" {
		c.DBPath = v
	}
	if v := getenv("HABITQUEST_TZ"); v != "" {
		c.Timezone = v
	}
	if v := getenv("HABITQUEST_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv("HABITQUEST_PROVIDER"); v != "" {
		c.Coach.Provider = v
	}
	if v := getenv("HABITQUEST_MODEL"); v != "" {
		c.Coach.Model = v
	}

	// Keys only fill in a key that the file did not set, and only for the
	// provider they belong to.
	if c.Coach.APIKey != "" {
		return
	}
	switch strings.ToLower(c.Coach.Provider) {
	case ProviderAnthropic:
		c.Coach.APIKey = getenv("ANTHROPIC_API_KEY")
	default:
		if v := getenv("GEMINI_API_KEY"); v != "" {
			c.Coach.APIKey = v
		} else {
			c.Coach.APIKey = getenv("API_KEY")
		}
	}
}

func (c *Config) fillModel() {
	c.Coach.Provider = strings.ToLower(strings.TrimSpace(c.Coach.Provider))
	if c.Coach.Model != "" {
		return
	}
	switch c.Coach.Provider {
	case ProviderAnthropic:
		c.Coach.Model = DefaultAnthropicModel
	default:
		c.Coach.Model = DefaultGeminiModel
	}
}

// Validate checks the provider, log level, timezone and retry bounds. A missing
// API key is not an error here; the coach reports it when it is first used.
func (c *Config) Validate() error {
	if !slices.Contains(ValidProviders, c.Coach.Provider) {
		return fmt.Errorf("invalid coach provider %q (valid: %v)", c.Coach.Provider, ValidProviders)
	}
	if !slices.Contains(validLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level %q (valid: %v)", c.LogLevel, validLevels)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Coach.MaxRetries < 0 {
		return fmt.Errorf("coach.max_retries must be >= 0")
	}
	if c.Coach.InitialBackoff < 0 || c.Coach.MaxBackoff < 0 {
		return fmt.Errorf("coach backoff must be >= 0")
	}
	return nil
}

// Location resolves the canonical timezone every date calculation uses.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}
