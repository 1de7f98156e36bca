package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicPDFType = "application/pdf"

// anthropicImageTypes are the inline image types the Messages API accepts
var anthropicImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AnthropicClient implements Client for Anthropic Claude
type AnthropicClient struct {
	client anthropic.Client
	config *Config
}

// NewAnthropicClient creates a new Claude client
func NewAnthropicClient(config *Config, apiKey string) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &AnthropicClient{
		client: anthropic.NewClient(anthropicoption.WithAPIKey(apiKey)),
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *AnthropicClient) GenerateContent(ctx context.Context, req Request) (string, error) {
	return c.generate(ctx, req)
}

// GenerateJSON generates JSON content using the specified model tier.
// Claude has no JSON response mode; the prompt carries the instruction.
func (c *AnthropicClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	text, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

func (c *AnthropicClient) generate(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", &APICallError{Provider: ProviderAnthropic, Message: fmt.Sprintf("no model configured for tier %s", req.Tier)}
	}

	blocks, err := anthropicBlocks(req)
	if err != nil {
		return "", &APICallError{Provider: ProviderAnthropic, Message: "cannot encode request", Cause: err}
	}

	maxTokens := c.config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(modelName),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(float64(c.config.Temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", &APICallError{Provider: ProviderAnthropic, Message: "failed to generate content", Cause: err}
	}

	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	if sb.Len() == 0 {
		return "", &APICallError{Provider: ProviderAnthropic, Message: "no text content in response"}
	}
	return sb.String(), nil
}

func anthropicBlocks(req Request) ([]anthropic.ContentBlockParamUnion, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(req.Media)+1)
	for _, m := range req.Media {
		data := base64.StdEncoding.EncodeToString(m.Data)
		switch {
		case m.MIMEType == anthropicPDFType:
			blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: data}))
		case anthropicImageTypes[m.MIMEType]:
			blocks = append(blocks, anthropic.NewImageBlockBase64(m.MIMEType, data))
		default:
			return nil, fmt.Errorf("unsupported media type %s", m.MIMEType)
		}
	}
	return append(blocks, anthropic.NewTextBlock(req.Prompt)), nil
}

// GetModel returns the model name for a tier
func (c *AnthropicClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the SDK client holds no resources that need releasing
func (c *AnthropicClient) Close() error {
	return nil
}
