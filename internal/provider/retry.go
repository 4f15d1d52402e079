package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy configures WithRetry.
type RetryPolicy struct {
	MaxAttempts     int // total attempts including the first; <= 1 disables retry
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy matches the provider's tolerance for bursts: a few quick retries.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

type retrying struct {
	QuoteProvider
	policy RetryPolicy
}

// WithRetry wraps p so each QueryHistory is retried with exponential backoff.
// Errors marked Permanent and context errors are returned at once. The last error is
// returned unchanged.
func WithRetry(p QuoteProvider, policy RetryPolicy) QuoteProvider {
	if policy.MaxAttempts <= 1 {
		return p
	}
	return &retrying{QuoteProvider: p, policy: policy}
}

func (r *retrying) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if r.policy.InitialInterval > 0 {
		b.InitialInterval = r.policy.InitialInterval
	}
	if r.policy.MaxInterval > 0 {
		b.MaxInterval = r.policy.MaxInterval
	}
	b.MaxElapsedTime = 0 // bounded by attempts and ctx
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.policy.MaxAttempts-1)), ctx)
}

func (r *retrying) QueryHistory(ctx context.Context, q Query) (*Table, error) {
	var table *Table
	op := func() error {
		t, err := r.QuoteProvider.QueryHistory(ctx, q)
		if err != nil {
			if IsPermanent(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		table = t
		return nil
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("provider query failed, retrying",
			"provider", r.GetName(), "symbol", q.Symbol,
			"begin", q.Begin.Format("2006-01-02"), "end", q.End.Format("2006-01-02"),
			"wait", wait, "error", err)
	}
	if err := backoff.RetryNotify(op, r.newBackOff(ctx), notify); err != nil {
		return nil, err
	}
	return table, nil
}
