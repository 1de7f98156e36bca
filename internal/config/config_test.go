package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LLM_PROVIDER", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "LLM_MODEL",
		"HANDOFF_BACKEND", "REDIS_URL", "DATABASE_URL", "HANDOFF_TTL", "SESSION_SECRET",
		"LOG_LEVEL", "CHROME_PATH", "RATE_LIMIT_ENABLED", "RATE_LIMIT_PER_HOUR", "RATE_LIMIT_BURST",
		"RATE_LIMIT_WHITELIST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "memory", cfg.HandoffBackend)
	assert.Equal(t, 24*time.Hour, cfg.TTL())
	assert.True(t, cfg.RateLimitEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("HANDOFF_TTL", "2h")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "sk-ant-test", cfg.APIKey())
	assert.Equal(t, 2*time.Hour, cfg.TTL())
	assert.False(t, cfg.RateLimitEnabled)
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_BURST", "many")

	_, err := Load("")
	assert.ErrorContains(t, err, "RATE_LIMIT_BURST")
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)
	content := "port: 3000\nhandoff_backend: redis\nredis_url: redis://localhost:6379/0\nlog_level: debug\n"
	path := filepath.Join(t.TempDir(), "intern-ease.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "redis", cfg.HandoffBackend)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over file")
	assert.Equal(t, "24h", cfg.HandoffTTL, "defaults fill the rest")
}

func TestLoad_RateLimitWhitelist(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "intern-ease.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rate_limit_whitelist: 10.0.0.1, 10.0.0.2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1, 10.0.0.2", cfg.RateLimitWhitelist)

	t.Setenv("RATE_LIMIT_WHITELIST", "127.0.0.1")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.RateLimitWhitelist)
}

func TestLoadFile_ValidJSON(t *testing.T) {
	content := `{"port": 8181, "llm_model": "gemini-2.5-pro", "rate_limit_per_hour": 10}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLMModel)
	assert.Equal(t, 10, cfg.RateLimitPerHour)
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ invalid json }`), 0644))

	cfg, err := LoadFile(path)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to parse config JSON")
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0644))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse config YAML")
}

func TestLoadFile_FileNotFound(t *testing.T) {
	cfg, err := LoadFile("/nonexistent/path/config.json")
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadFile_EmptyPath(t *testing.T) {
	_, err := LoadFile("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Defaults()
		cfg.GeminiAPIKey = "key"
		return cfg
	}

	tests := []struct {
		name         string
		mutate       func(*Config)
		requireModel bool
		wantErr      string
	}{
		{name: "valid", mutate: func(*Config) {}, requireModel: true},
		{name: "missing key", mutate: func(c *Config) { c.GeminiAPIKey = "" }, requireModel: true, wantErr: "API key"},
		{name: "missing key without model", mutate: func(c *Config) { c.GeminiAPIKey = "" }},
		{name: "bad provider", mutate: func(c *Config) { c.LLMProvider = "openai" }, wantErr: "llm_provider"},
		{name: "redis without url", mutate: func(c *Config) { c.HandoffBackend = "redis" }, wantErr: "redis_url"},
		{name: "postgres without url", mutate: func(c *Config) { c.HandoffBackend = "postgres" }, wantErr: "database_url"},
		{name: "unknown backend", mutate: func(c *Config) { c.HandoffBackend = "s3" }, wantErr: "handoff_backend"},
		{name: "bad ttl", mutate: func(c *Config) { c.HandoffTTL = "forever" }, wantErr: "handoff_ttl"},
		{name: "bad port", mutate: func(c *Config) { c.Port = 0 }, wantErr: "port"},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimitBurst = 0 }, wantErr: "rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate(tt.requireModel)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
