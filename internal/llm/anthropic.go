package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Messager is the slice of the Anthropic SDK the provider needs.
// Tests substitute a fake here.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	Model    string
	apiKey   string
	messages Messager
}

// NewAnthropicProvider creates an Anthropic provider reading the API
// key from the given environment variable.
func NewAnthropicProvider(model, apiKeyEnv string) *AnthropicProvider {
	p := &AnthropicProvider{
		Model:  model,
		apiKey: strings.TrimSpace(os.Getenv(apiKeyEnv)),
	}
	if p.apiKey != "" {
		c := anthropic.NewClient(option.WithAPIKey(p.apiKey))
		p.messages = &c.Messages
	}
	return p
}

// IsConfigured checks if the API key is set.
func (a *AnthropicProvider) IsConfigured() bool {
	return a.apiKey != ""
}

// Generate sends a prompt to Anthropic and returns the text response.
func (a *AnthropicProvider) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if a.messages == nil {
		return "", fmt.Errorf("anthropic API key not configured")
	}

	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.Model),
		MaxTokens:   int64(maxTokens),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0.3),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in anthropic response")
	}
	return sb.String(), nil
}
