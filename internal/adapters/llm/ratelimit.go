package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/example/enscope/internal/ports/secondary"
)

// RateLimited throttles calls to the wrapped generator with a token bucket.
type RateLimited struct {
	next    secondary.TextGenerator
	limiter *rate.Limiter
}

// NewRateLimited allows requestsPerMinute calls per minute, with bursts of
// up to one tenth of that (at least one).
func NewRateLimited(next secondary.TextGenerator, requestsPerMinute int) *RateLimited {
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), burst),
	}
}

// Generate waits for a token, then delegates.
func (r *RateLimited) Generate(ctx context.Context, req secondary.GenerateRequest) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}
	return r.next.Generate(ctx, req)
}

var _ secondary.TextGenerator = (*RateLimited)(nil)
