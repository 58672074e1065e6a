package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/example/enscope/internal/ports/secondary"
)

// OpenAI generates text with an OpenAI-compatible chat completion API.
type OpenAI struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAI creates an OpenAI generator. BaseURL points it at a compatible
// endpoint such as a local gateway.
func NewOpenAI(cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Generate sends one system+user exchange and returns the first choice.
func (o *OpenAI) Generate(ctx context.Context, req secondary.GenerateRequest) (string, error) {
	ctx, cancel := withTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ secondary.TextGenerator = (*OpenAI)(nil)
