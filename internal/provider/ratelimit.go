package provider

import (
	"context"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	QuoteProvider
	limiter *rate.Limiter
}

// WithRateLimit wraps p so every query waits on limiter first. Share one limiter between
// all wrappers that hit the same provider account.
func WithRateLimit(p QuoteProvider, limiter *rate.Limiter) QuoteProvider {
	if limiter == nil {
		return p
	}
	return &rateLimited{QuoteProvider: p, limiter: limiter}
}

func (r *rateLimited) QueryHistory(ctx context.Context, q Query) (*Table, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.QuoteProvider.QueryHistory(ctx, q)
}
