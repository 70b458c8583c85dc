package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Client is the remote generation boundary. Implementations send a single
// system-instructed prompt and return the model's text. The transcript
// replay that makes each call self-contained happens above this layer.
type Client interface {
	Generate(ctx context.Context, systemInstruction, contents string) (string, error)
}

// NewClient selects a backend by model prefix: "gemini*" models use the
// Google GenAI API, "claude*" models use the Anthropic API, and "mock"
// returns a canned client for dry runs. API keys are resolved from the
// standard environment variables of each SDK when not set in config.
func NewClient(ctx context.Context, model, apiKey string) (Client, error) {
	switch {
	case model == "mock" || os.Getenv("BELIEFSHIFT_MOCK_RESPONSE_FILE") != "":
		return NewMockClient(), nil
	case strings.HasPrefix(model, "gemini"):
		return NewGeminiClient(ctx, apiKey, model)
	case strings.HasPrefix(model, "claude"):
		return NewAnthropicClient(apiKey, model), nil
	default:
		return nil, fmt.Errorf("no backend for model %q (expected gemini*, claude*, or mock)", model)
	}
}

// MockClient implements a canned Client for testing and dry runs.
type MockClient struct {
	responseFile string
}

// NewMockClient creates a mock client. If BELIEFSHIFT_MOCK_RESPONSE_FILE
// is set, its content is returned for every non-credence call.
func NewMockClient() *MockClient {
	return &MockClient{
		responseFile: os.Getenv("BELIEFSHIFT_MOCK_RESPONSE_FILE"),
	}
}

// Generate implements Client. Credence questions get a parseable number
// so a mock run exercises the full debate loop end to end.
func (m *MockClient) Generate(ctx context.Context, systemInstruction, contents string) (string, error) {
	if strings.Contains(contents, "Answer only with a single number") {
		return "50", nil
	}

	if m.responseFile != "" {
		content, err := os.ReadFile(m.responseFile)
		if err != nil {
			return "", fmt.Errorf("read mock response: %w", err)
		}
		return string(content), nil
	}

	return "Mock response for: " + strings.Split(contents, "\n")[0], nil
}
