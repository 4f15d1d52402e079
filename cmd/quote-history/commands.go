package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/subcommands"

	"quote-history/internal/app"
	"quote-history/internal/datafeed"
	"quote-history/internal/model"
	"quote-history/internal/saver"
)

const dayLayout = "2006-01-02"

func parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, s, datafeed.ChinaTZ)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

func todayString() string {
	return time.Now().In(datafeed.ChinaTZ).Format(dayLayout)
}

// fetchCmd runs one Window Driver fetch and prints or exports the bars.
type fetchCmd struct {
	symbol   string
	exchange string
	interval string
	start    string
	end      string
	out      string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch bar history for one instrument" }
func (*fetchCmd) Usage() string {
	return `fetch -symbol 600000 -exchange SSE -interval d -start 2024-01-01 [-end 2024-03-31] [-out bars.csv]:
  Fetch bars and print a summary, or export them when -out is given.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "instrument symbol, e.g. 600000 or IF2406")
	f.StringVar(&c.exchange, "exchange", "", "exchange, e.g. SSE, SZSE, CFFEX")
	f.StringVar(&c.interval, "interval", "d", "bar interval: 1m, 1h or d")
	f.StringVar(&c.start, "start", "", "first day (YYYY-MM-DD)")
	f.StringVar(&c.end, "end", todayString(), "last day (YYYY-MM-DD)")
	f.StringVar(&c.out, "out", "", "export path; format from extension (.csv, .json, .json.gz, .parquet)")
}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req, err := c.request()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	var ps saver.PacketSaver
	if c.out != "" {
		if ps = saverFor(c.out); ps == nil {
			fmt.Fprintf(os.Stderr, "unsupported export extension %q (use: %v)\n", c.out, saver.Formats)
			return subcommands.ExitUsageError
		}
	}

	a, cleanup, err := initialize()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	output := func(msg string) { fmt.Fprintln(os.Stderr, msg) }
	bars, err := a.Fetcher.QueryBarHistory(ctx, req, output)
	if err != nil {
		slog.Error("fetch failed", "symbol", req.Symbol, "exchange", req.Exchange, "error", err)
		return subcommands.ExitFailure
	}
	if len(bars) == 0 {
		fmt.Printf("%s.%s %s: no data between %s and %s\n", req.Symbol, req.Exchange, req.Interval, c.start, c.end)
		return subcommands.ExitSuccess
	}
	first, last := bars[0], bars[len(bars)-1]
	fmt.Printf("%s %s: %d bars, %s .. %s\n", first.VtSymbol(), req.Interval, len(bars),
		first.Datetime.Format("2006-01-02 15:04"), last.Datetime.Format("2006-01-02 15:04"))

	if ps != nil {
		if dir := filepath.Dir(c.out); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				slog.Error("failed to create export dir", "error", err)
				return subcommands.ExitFailure
			}
		}
		if err := ps.Save(bars, c.out); err != nil {
			slog.Error("export failed", "path", c.out, "error", err)
			return subcommands.ExitFailure
		}
		slog.Info("exported", "path", c.out, "bars", len(bars))
	}
	return subcommands.ExitSuccess
}

func (c *fetchCmd) request() (model.HistoryRequest, error) {
	if c.symbol == "" || c.exchange == "" || c.start == "" {
		return model.HistoryRequest{}, fmt.Errorf("-symbol, -exchange and -start are required")
	}
	ex, err := model.ParseExchange(c.exchange)
	if err != nil {
		return model.HistoryRequest{}, err
	}
	iv, err := model.ParseInterval(c.interval)
	if err != nil {
		return model.HistoryRequest{}, err
	}
	start, err := parseDay(c.start)
	if err != nil {
		return model.HistoryRequest{}, err
	}
	end, err := parseDay(c.end)
	if err != nil {
		return model.HistoryRequest{}, err
	}
	return model.HistoryRequest{Symbol: c.symbol, Exchange: ex, Interval: iv, Start: start, End: end}, nil
}

func saverFor(path string) saver.PacketSaver {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".json.gz") {
		return saver.NewPacketSaver("json.gz")
	}
	return saver.NewPacketSaver(strings.TrimPrefix(filepath.Ext(name), "."))
}

// batchCmd fetches every instrument of a symbols file, once or daily.
type batchCmd struct {
	daemon   bool
	symbols  string
	interval string
	from     string
	to       string
}

func (c *batchCmd) Name() string {
	if c.daemon {
		return "daemon"
	}
	return "batch"
}

func (c *batchCmd) Synopsis() string {
	if c.daemon {
		return "fetch a symbols file now and again every day at RUN_HOUR:RUN_MINUTE"
	}
	return "fetch every instrument of a symbols file"
}

func (c *batchCmd) Usage() string {
	return c.Name() + ` [-symbols symbols.txt] [-interval d] -from 2024-01-01 [-to 2024-03-31]:
  Fetch all instruments with WORKERS workers, resuming from the progress file.
`
}

func (c *batchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbols, "symbols", "", "symbols file (.txt or .json); defaults to SYMBOLS_FILE")
	f.StringVar(&c.interval, "interval", "d", "bar interval: 1m, 1h or d")
	f.StringVar(&c.from, "from", "", "first day (YYYY-MM-DD) for instruments without progress")
	if !c.daemon {
		f.StringVar(&c.to, "to", "", "last day (YYYY-MM-DD); defaults to today")
	}
}

func (c *batchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	iv, err := model.ParseInterval(c.interval)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.from == "" {
		fmt.Fprintln(os.Stderr, "-from is required")
		return subcommands.ExitUsageError
	}
	b := app.Batch{Interval: iv}
	if b.From, err = parseDay(c.from); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.to != "" {
		if b.To, err = parseDay(c.to); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	a, cleanup, err := initialize()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return subcommands.ExitFailure
	}
	defer cleanup()
	cfg := a.Config

	path := c.symbols
	if path == "" {
		path = cfg.SymbolsFile
	}
	if path == "" {
		slog.Error("no symbols file, set -symbols or SYMBOLS_FILE")
		return subcommands.ExitUsageError
	}
	if b.Targets, err = app.LoadTargetsFromFile(path); err != nil {
		slog.Error("failed to load symbols", "error", err)
		return subcommands.ExitFailure
	}
	if err := os.MkdirAll(cfg.SaveBaseDir(), 0755); err != nil {
		slog.Error("failed to create data dir", "error", err)
		return subcommands.ExitFailure
	}
	slog.Info("save dir", "dir", cfg.SaveBaseDir(), "format", cfg.SaveFormat, "workers", cfg.Workers)

	if c.daemon {
		app.RunFlow(ctx, cfg, a.Runner, b)
		return subcommands.ExitSuccess
	}
	sum := app.RunOnce(ctx, cfg, a.Runner, b)
	if sum.Failed > 0 || ctx.Err() != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// exchangesCmd lists the exchanges and intervals the provider supports.
type exchangesCmd struct{}

func (*exchangesCmd) Name() string             { return "exchanges" }
func (*exchangesCmd) Synopsis() string         { return "list supported exchanges and intervals" }
func (*exchangesCmd) Usage() string            { return "exchanges:\n  List supported exchanges and intervals.\n" }
func (*exchangesCmd) SetFlags(_ *flag.FlagSet) {}

func (*exchangesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, ex := range datafeed.SupportedExchanges() {
		code, _ := datafeed.MarketCode(ex)
		kind := "equity"
		if datafeed.IsFutures(ex) {
			kind = "futures"
		}
		fmt.Printf("%-6s market=%-4s %s\n", ex, code, kind)
	}
	var ivs []string
	for _, iv := range datafeed.SupportedIntervals() {
		ivs = append(ivs, string(iv))
	}
	fmt.Printf("intervals: %s\n", strings.Join(ivs, ", "))
	return subcommands.ExitSuccess
}
