// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting. Values come from defaults, then an
// optional JSON or YAML file, then environment variables.
type Config struct {
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Model provider
	LLMProvider     string `json:"llm_provider,omitempty" yaml:"llm_provider,omitempty"` // gemini or anthropic
	GeminiAPIKey    string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`
	AnthropicAPIKey string `json:"anthropic_api_key,omitempty" yaml:"anthropic_api_key,omitempty"`
	LLMModel        string `json:"llm_model,omitempty" yaml:"llm_model,omitempty"` // pins every tier when set

	// Hand-off storage
	HandoffBackend string `json:"handoff_backend,omitempty" yaml:"handoff_backend,omitempty"` // memory, redis or postgres
	RedisURL       string `json:"redis_url,omitempty" yaml:"redis_url,omitempty"`
	DatabaseURL    string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	HandoffTTL     string `json:"handoff_ttl,omitempty" yaml:"handoff_ttl,omitempty"` // Go duration, e.g. "24h"

	SessionSecret string `json:"session_secret,omitempty" yaml:"session_secret,omitempty"`
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	ChromePath    string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`

	RateLimitEnabled bool `json:"rate_limit_enabled,omitempty" yaml:"rate_limit_enabled,omitempty"`
	RateLimitPerHour int  `json:"rate_limit_per_hour,omitempty" yaml:"rate_limit_per_hour,omitempty"`
	RateLimitBurst   int  `json:"rate_limit_burst,omitempty" yaml:"rate_limit_burst,omitempty"`

	// RateLimitWhitelist is a comma separated list of client IPs that bypass limiting
	RateLimitWhitelist string `json:"rate_limit_whitelist,omitempty" yaml:"rate_limit_whitelist,omitempty"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return Config{
		Port:             8080,
		LLMProvider:      "gemini",
		HandoffBackend:   "memory",
		HandoffTTL:       "24h",
		LogLevel:         "info",
		RateLimitEnabled: true,
		RateLimitPerHour: 30,
		RateLimitBurst:   5,
	}
}

// Load builds the configuration from defaults, the optional file at path and
// the environment, in that order of increasing precedence.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads configuration from a JSON or YAML file, chosen by extension.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.AnthropicAPIKey == "" {
		result.AnthropicAPIKey = defaults.AnthropicAPIKey
	}
	if result.LLMModel == "" {
		result.LLMModel = defaults.LLMModel
	}
	if result.HandoffBackend == "" {
		result.HandoffBackend = defaults.HandoffBackend
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.HandoffTTL == "" {
		result.HandoffTTL = defaults.HandoffTTL
	}
	if result.SessionSecret == "" {
		result.SessionSecret = defaults.SessionSecret
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.RateLimitPerHour == 0 {
		result.RateLimitPerHour = defaults.RateLimitPerHour
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}
	if result.RateLimitWhitelist == "" {
		result.RateLimitWhitelist = defaults.RateLimitWhitelist
	}

	// Bools cannot distinguish unset from false; the file only turns limiting on
	result.RateLimitEnabled = result.RateLimitEnabled || defaults.RateLimitEnabled

	return result
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", key, err)
		}
		*dst = n
		return nil
	}

	if err := num("PORT", &c.Port); err != nil {
		return err
	}
	str("LLM_PROVIDER", &c.LLMProvider)
	str("GEMINI_API_KEY", &c.GeminiAPIKey)
	str("ANTHROPIC_API_KEY", &c.AnthropicAPIKey)
	str("LLM_MODEL", &c.LLMModel)
	str("HANDOFF_BACKEND", &c.HandoffBackend)
	str("REDIS_URL", &c.RedisURL)
	str("DATABASE_URL", &c.DatabaseURL)
	str("HANDOFF_TTL", &c.HandoffTTL)
	str("SESSION_SECRET", &c.SessionSecret)
	str("LOG_LEVEL", &c.LogLevel)
	str("CHROME_PATH", &c.ChromePath)
	str("RATE_LIMIT_WHITELIST", &c.RateLimitWhitelist)

	if v, ok := lookup("RATE_LIMIT_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_ENABLED: %v", err)
		}
		c.RateLimitEnabled = enabled
	}
	if err := num("RATE_LIMIT_PER_HOUR", &c.RateLimitPerHour); err != nil {
		return err
	}
	return num("RATE_LIMIT_BURST", &c.RateLimitBurst)
}

// APIKey returns the key for the configured provider
func (c *Config) APIKey() string {
	if c.LLMProvider == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// TTL returns the parsed hand-off lifetime
func (c *Config) TTL() time.Duration {
	d, err := time.ParseDuration(c.HandoffTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Validate checks that the configuration has usable values.
// requireModel is false for commands that never call a model.
func (c *Config) Validate(requireModel bool) error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port must be between 1 and 65535, got %d", c.Port)
	}

	switch c.LLMProvider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("config error: unknown llm_provider %q", c.LLMProvider)
	}
	if requireModel && c.APIKey() == "" {
		return fmt.Errorf("config error: an API key is required for provider %s", c.LLMProvider)
	}

	switch c.HandoffBackend {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("config error: redis_url is required for the redis handoff backend")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: database_url is required for the postgres handoff backend")
		}
	default:
		return fmt.Errorf("config error: unknown handoff_backend %q", c.HandoffBackend)
	}

	if d, err := time.ParseDuration(c.HandoffTTL); err != nil || d <= 0 {
		return fmt.Errorf("config error: handoff_ttl must be a positive duration, got %q", c.HandoffTTL)
	}

	if c.RateLimitEnabled && (c.RateLimitPerHour < 1 || c.RateLimitBurst < 1) {
		return fmt.Errorf("config error: rate limit per hour and burst must be at least 1")
	}

	return nil
}
