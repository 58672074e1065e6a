package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/example/enscope/internal/ports/secondary"
)

// Anthropic generates text with Claude through langchaingo.
type Anthropic struct {
	model   llms.Model
	timeout time.Duration
}

// NewAnthropic creates an Anthropic generator.
func NewAnthropic(cfg Config) (*Anthropic, error) {
	opts := []anthropic.Option{
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	model, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create anthropic client: %w", err)
	}
	return &Anthropic{model: model, timeout: cfg.Timeout}, nil
}

// Generate sends one system+user exchange and returns the first choice.
func (a *Anthropic) Generate(ctx context.Context, req secondary.GenerateRequest) (string, error) {
	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.System),
		llms.TextParts(llms.ChatMessageTypeHuman, req.User),
	}
	resp, err := a.model.GenerateContent(ctx, messages, llms.WithMaxTokens(req.MaxTokens))
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("anthropic returned no choices")
	}
	return resp.Choices[0].Content, nil
}

var _ secondary.TextGenerator = (*Anthropic)(nil)
