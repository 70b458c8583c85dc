package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient calls the Anthropic Messages API.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicClient creates a client for a claude-* model. An empty
// apiKey falls back to the SDK's ANTHROPIC_API_KEY resolution.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &AnthropicClient{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: 4096,
	}
}

// Generate implements Client.
func (c *AnthropicClient) Generate(ctx context.Context, systemInstruction, contents string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(contents)),
		},
	}
	if systemInstruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemInstruction}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
