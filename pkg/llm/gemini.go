package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient calls the Google GenAI API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a client for a gemini-* model. An empty apiKey
// falls back to the SDK's GEMINI_API_KEY / GOOGLE_API_KEY resolution.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate implements Client.
func (c *GeminiClient) Generate(ctx context.Context, systemInstruction, contents string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(contents), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}
