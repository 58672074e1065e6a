// Package llm adapts hosted language models to the secondary.TextGenerator port.
//
// New assembles the generator chain used by the application:
//
//	instrumented -> rate limited -> backend (anthropic | openai)
//
// When no API key is configured the backend is replaced by a generator that
// fails every call, so the rest of the application still starts.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/example/enscope/internal/ports/secondary"
)

const (
	BackendAnthropic = "anthropic"
	BackendOpenAI    = "openai"

	DefaultModel       = "claude-sonnet-4-20250514"
	DefaultOpenAIModel = openai.GPT4o
	DefaultTimeout     = 60 * time.Second
)

// DefaultModelFor returns the model used when none is configured.
func DefaultModelFor(backend string) string {
	if backend == BackendOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultModel
}

// ErrNotConfigured is returned by every call when no API key is set.
var ErrNotConfigured = errors.New("language model not configured: set llm.api_key or ANTHROPIC_API_KEY")

// Config selects and tunes the backend.
type Config struct {
	Backend           string
	Model             string
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int // 0 disables throttling
}

// New builds the generator chain for cfg.
func New(cfg Config, metrics secondary.MetricsRecorder, logger *zap.Logger) (secondary.TextGenerator, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModelFor(cfg.Backend)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var backend secondary.TextGenerator
	switch {
	case cfg.APIKey == "":
		logger.Warn("no language model API key configured; assistance and scoring are disabled")
		backend = Disabled{}
	case cfg.Backend == "" || cfg.Backend == BackendAnthropic:
		g, err := NewAnthropic(cfg)
		if err != nil {
			return nil, err
		}
		backend = g
	case cfg.Backend == BackendOpenAI:
		backend = NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.Backend)
	}

	if cfg.RequestsPerMinute > 0 {
		backend = NewRateLimited(backend, cfg.RequestsPerMinute)
	}
	return NewInstrumented(backend, metrics, logger), nil
}

// Disabled fails every request with ErrNotConfigured.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, req secondary.GenerateRequest) (string, error) {
	return "", ErrNotConfigured
}

// withTimeout bounds a single backend call.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

var _ secondary.TextGenerator = Disabled{}
