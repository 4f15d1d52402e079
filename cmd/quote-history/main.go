package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"quote-history/internal/app"
	"quote-history/internal/crawl"
	"quote-history/internal/datafeed"
	"quote-history/internal/saver"
	"quote-history/internal/slogx"
)

// App holds application dependencies built by Wire.
type App struct {
	Config  *app.Config
	Fetcher *datafeed.Fetcher
	Saver   saver.PacketSaver
	Runner  *crawl.Runner
}

var envFile = flag.String("env", "", "optional .env file loaded before reading configuration")

func init() {
	slog.SetDefault(slogx.NewDefault("info"))
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&fetchCmd{}, "fetch")
	subcommands.Register(&batchCmd{}, "fetch")
	subcommands.Register(&batchCmd{daemon: true}, "fetch")
	subcommands.Register(&exchangesCmd{}, "info")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	status := subcommands.Execute(ctx)
	stop()
	os.Exit(int(status))
}

// initialize builds the App and switches the default logger to the configured level.
// The returned cleanup closes the provider and the log file.
func initialize() (*App, func(), error) {
	a, cleanup, err := InitializeApp(app.EnvFile(*envFile))
	if err != nil {
		return nil, nil, err
	}
	logger, closer := slogx.New(a.Config.LogLevel, slogx.FileOptions{Path: a.Config.LogFile})
	slog.SetDefault(logger)
	slog.Info("using data provider", "provider", a.Fetcher.ProviderName())
	return a, func() {
		cleanup()
		_ = closer.Close()
	}, nil
}
