package llm

import (
	"context"
	"fmt"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type fakeMessager struct {
	resp *anthropic.Message
	err  error
}

func (f *fakeMessager) New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	return f.resp, f.err
}

func TestAnthropicGenerateJoinsTextBlocks(t *testing.T) {
	p := &AnthropicProvider{
		Model:  "claude-sonnet-4-20250514",
		apiKey: "test-key",
		messages: &fakeMessager{resp: &anthropic.Message{
			Content: []anthropic.ContentBlockUnion{
				{Type: "text", Text: `{"company":`},
				{Type: "text", Text: ` {}}`},
			},
		}},
	}

	got, err := p.Generate(context.Background(), "extract", 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"company": {}}` {
		t.Errorf("unexpected response %q", got)
	}
}

func TestAnthropicGenerateErrors(t *testing.T) {
	p := &AnthropicProvider{
		Model:    "claude-sonnet-4-20250514",
		apiKey:   "test-key",
		messages: &fakeMessager{err: fmt.Errorf("status code: 529")},
	}
	if _, err := p.Generate(context.Background(), "extract", 1024); err == nil {
		t.Error("expected transport error to propagate")
	}

	empty := &AnthropicProvider{
		Model:    "claude-sonnet-4-20250514",
		apiKey:   "test-key",
		messages: &fakeMessager{resp: &anthropic.Message{}},
	}
	if _, err := empty.Generate(context.Background(), "extract", 1024); err == nil {
		t.Error("expected error for response without text content")
	}
}

func TestAnthropicNotConfigured(t *testing.T) {
	p := NewAnthropicProvider("claude-sonnet-4-20250514", "CRAIGSLIST_AGENT_TEST_UNSET_KEY")
	if p.IsConfigured() {
		t.Error("provider without key should not be configured")
	}
	if _, err := p.Generate(context.Background(), "extract", 1024); err == nil {
		t.Error("expected error when key missing")
	}
}
