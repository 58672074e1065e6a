package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/example/enscope/internal/ports/secondary"
)

// Instrumented counts and logs every call to the wrapped generator.
type Instrumented struct {
	next    secondary.TextGenerator
	metrics secondary.MetricsRecorder
	logger  *zap.Logger
}

// NewInstrumented wraps next. A nil metrics recorder discards counts.
func NewInstrumented(next secondary.TextGenerator, metrics secondary.MetricsRecorder, logger *zap.Logger) *Instrumented {
	if metrics == nil {
		metrics = secondary.NopMetrics{}
	}
	return &Instrumented{next: next, metrics: metrics, logger: logger}
}

// Generate delegates and records the outcome under req.Operation.
func (i *Instrumented) Generate(ctx context.Context, req secondary.GenerateRequest) (string, error) {
	start := time.Now()
	text, err := i.next.Generate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		i.metrics.ObserveLLMRequest(req.Operation, secondary.OutcomeError)
		i.logger.Warn("llm request failed",
			zap.String("operation", req.Operation),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return "", err
	}

	i.metrics.ObserveLLMRequest(req.Operation, secondary.OutcomeSuccess)
	i.logger.Debug("llm request completed",
		zap.String("operation", req.Operation),
		zap.Duration("elapsed", elapsed),
		zap.Int("response_chars", len(text)))
	return text, nil
}

var _ secondary.TextGenerator = (*Instrumented)(nil)
