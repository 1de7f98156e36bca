// Package llm provides centralized LLM configuration and client abstractions.
// This package enables easy switching between model tiers and providers.
package llm

import "fmt"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short free-text outputs such as the outreach email
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: resume and cover letter JSON
	TierStandard ModelTier = "standard"
	// TierAdvanced is for reading long or media-heavy resumes
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderAnthropic is the Anthropic/Claude provider
	ProviderAnthropic Provider = "anthropic"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	MaxTokens   int
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.4,
		MaxTokens:   8192,
	}
}

// DefaultAnthropicConfig returns the default Claude configuration
func DefaultAnthropicConfig() *Config {
	return &Config{
		Provider: ProviderAnthropic,
		Models: map[ModelTier]string{
			TierLite:     "claude-3-5-haiku-latest",
			TierStandard: "claude-sonnet-4-0",
			TierAdvanced: "claude-opus-4-0",
		},
		Temperature: 0.4,
		MaxTokens:   8192,
	}
}

// ConfigFor returns the default configuration for a provider name.
func ConfigFor(provider string) (*Config, error) {
	switch Provider(provider) {
	case "", ProviderGemini:
		return DefaultGeminiConfig(), nil
	case ProviderAnthropic:
		return DefaultAnthropicConfig(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

// WithAllModels pins every tier to one model.
func (c *Config) WithAllModels(model string) *Config {
	out := c
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		out = out.WithModel(tier, model)
	}
	return out
}
