package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig limits the generation endpoints to perHour submissions per client
// with the given burst. Everything else gets a lenient default.
func NewConfig(enabled bool, perHour, burst int, whitelist string) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       parseIPList(whitelist),
		EndpointConfigs: GenerationEndpointConfigs(perHour, burst),
	}
}

// GenerationEndpointConfigs returns the limits for the model-backed endpoints.
// Each submission costs three model calls.
func GenerationEndpointConfigs(perHour, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/generate", Method: "POST", Limit: perHour, Window: time.Hour, Burst: burst},
		{Path: "/generate/stream", Method: "POST", Limit: perHour, Window: time.Hour, Burst: burst},
		// PDF export launches a browser tab
		{Path: "/results/", Method: "GET", Limit: 120, Window: time.Hour, Burst: 10},
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}
