package llm

import (
	"context"
	"fmt"
)

// Media is an inline attachment sent alongside the prompt text
type Media struct {
	MIMEType string
	Data     []byte
}

// Request is a single prompt sent to a model tier
type Request struct {
	Prompt string
	Media  []Media
	Tier   ModelTier
}

// Client is an abstraction over LLM providers. Implementations must be safe
// for concurrent use; the server shares one client across submissions.
type Client interface {
	// GenerateContent returns the model's free-text answer
	GenerateContent(ctx context.Context, req Request) (string, error)
	// GenerateJSON asks for a JSON answer and strips markdown fences from it
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// APICallError represents a failed call to the model provider
type APICallError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s API call failed: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s API call failed: %s", e.Provider, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderAnthropic:
		return NewAnthropicClient(config, apiKey)
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
