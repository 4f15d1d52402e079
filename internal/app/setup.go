package app

import (
	"fmt"
	"log/slog"

	"golang.org/x/time/rate"

	"quote-history/internal/provider"
	"quote-history/internal/provider/eastmoney"
)

// CreateProvider creates the EastMoney client wrapped with rate limiting and retry.
// The limiter may be nil. Caller must call Close on the result.
func CreateProvider(cfg *Config, limiter *rate.Limiter) (provider.QuoteProvider, error) {
	adjust, err := eastmoney.ParseAdjust(cfg.Adjust)
	if err != nil {
		return nil, err
	}
	client, err := eastmoney.NewClient(eastmoney.Options{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		Adjust:  adjust,
	})
	if err != nil {
		return nil, fmt.Errorf("create eastmoney client: %w", err)
	}
	// Retries pass through the limiter.
	var p provider.QuoteProvider = client
	p = provider.WithRateLimit(p, limiter)
	p = provider.WithRetry(p, cfg.RetryPolicy())
	slog.Info("wire", "provider", client.GetName(), "adjust", cfg.Adjust, "rate_per_sec", cfg.RatePerSec, "retry_max", cfg.RetryMax)
	return p, nil
}

// NewRateLimiter returns a limiter shared by all workers, or nil when RatePerSec is 0.
func NewRateLimiter(cfg *Config) *rate.Limiter {
	if cfg.RatePerSec <= 0 {
		return nil
	}
	burst := int(cfg.RatePerSec)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
}
