//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"quote-history/internal/app"
)

// InitializeApp builds App (Config, Fetcher, Runner) via Wire.
// Caller must call cleanup when done.
func InitializeApp(envFile app.EnvFile) (*App, func(), error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvidePacketSaver,
		app.ProvideRateLimiter,
		app.ProvideQuoteProvider,
		app.ProvideFetcher,
		app.ProvideRunner,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
