package app

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"quote-history/internal/crawl"
	"quote-history/internal/datafeed"
	"quote-history/internal/provider"
	"quote-history/internal/saver"
)

// EnvFile is the optional .env path handed to the injector.
type EnvFile string

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig(envFile EnvFile) (*Config, error) {
	return LoadConfig(string(envFile))
}

// ProvidePacketSaver creates PacketSaver from config (for Wire).
// Returns error if SaveFormat is not supported.
func ProvidePacketSaver(cfg *Config) (saver.PacketSaver, error) {
	ps := saver.NewPacketSaver(cfg.SaveFormat)
	if ps == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: %v)", cfg.SaveFormat, saver.Formats)
	}
	return ps, nil
}

// ProvideRateLimiter returns the limiter shared by every worker (for Wire). May be nil.
func ProvideRateLimiter(cfg *Config) *rate.Limiter {
	return NewRateLimiter(cfg)
}

// ProvideQuoteProvider creates the decorated provider (for Wire). The cleanup closes it.
func ProvideQuoteProvider(cfg *Config, limiter *rate.Limiter) (provider.QuoteProvider, func(), error) {
	p, err := CreateProvider(cfg, limiter)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := p.Close(); err != nil {
			slog.Warn("provider close", "error", err)
		}
	}
	return p, cleanup, nil
}

// ProvideFetcher creates the Window Driver (for Wire).
func ProvideFetcher(cfg *Config, p provider.QuoteProvider) *datafeed.Fetcher {
	return datafeed.NewFetcher(p, cfg.FetchOptions())
}

// ProvideRunner creates the batch runner (for Wire).
func ProvideRunner(cfg *Config, f *datafeed.Fetcher, ps saver.PacketSaver) *crawl.Runner {
	slog.Info("wire", "format", cfg.SaveFormat, "dir", cfg.SaveBaseDir(),
		"pattern", "{SYMBOL.EXCHANGE}/{symbol}_{interval}_{from}_to_{to}."+ps.Extension())
	return &crawl.Runner{
		Fetcher:      f,
		Saver:        ps,
		SaveDir:      cfg.SaveBaseDir(),
		ProgressPath: cfg.ProgressPath(),
		Workers:      cfg.Workers,
		LogLevel:     cfg.LogLevel,
		Heartbeat:    30 * time.Second,
	}
}
