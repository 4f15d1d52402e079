package datafeed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"quote-history/internal/model"
	"quote-history/internal/provider"
)

const defaultMaxPages = 1000

// OutputFunc receives one-line status messages meant for the host's user.
// When nil, messages go to slog.
type OutputFunc func(msg string)

// Options bounds a Fetcher.
type Options struct {
	// WindowDays caps each query window; 0 queries the whole remaining range at once.
	WindowDays int
	// MaxPages caps provider round trips per fetch; 0 uses the default, < 0 disables.
	MaxPages int
	// MaxElapsed caps wall time per fetch; 0 disables.
	MaxElapsed time.Duration
}

// Fetcher pages through a quote provider and returns normalized bars.
// A Fetcher holds no per-fetch state and may be shared.
type Fetcher struct {
	provider provider.QuoteProvider
	opts     Options
	now      func() time.Time
}

// NewFetcher creates a Fetcher over p.
func NewFetcher(p provider.QuoteProvider, opts Options) *Fetcher {
	if opts.MaxPages == 0 {
		opts.MaxPages = defaultMaxPages
	}
	return &Fetcher{provider: p, opts: opts, now: time.Now}
}

// ProviderName returns the name of the underlying provider.
func (f *Fetcher) ProviderName() string {
	return f.provider.GetName()
}

func emit(output OutputFunc, msg string) {
	if output != nil {
		output(msg)
		return
	}
	slog.Warn(msg)
}

// QueryBarHistory fetches all bars for req.
//
// Unsupported intervals and exchanges are reported once through output and return a nil
// slice with ErrUnsupportedInterval or ErrUnsupportedExchange. A range without data returns
// an empty, non-nil slice. Provider and malformed-row errors are returned unchanged and
// discard what was accumulated.
func (f *Fetcher) QueryBarHistory(ctx context.Context, req model.HistoryRequest, output OutputFunc) ([]model.Bar, error) {
	if !fetchIntervals[req.Interval] {
		emit(output, fmt.Sprintf("query bar history failed: unsupported interval %q, only 1m, 1h and d bars are available", req.Interval))
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedInterval, req.Interval)
	}
	market, ok := MarketCode(req.Exchange)
	if !ok {
		emit(output, fmt.Sprintf("query bar history failed: unsupported exchange %s", req.Exchange))
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExchange, req.Exchange)
	}
	code := intervalCodes[req.Interval]
	symbol := NormalizeSymbol(req.Symbol)
	fetchID := uuid.NewString()

	target := dateOf(req.End)
	cur := windowFrom(dateOf(req.Start), target, f.opts.WindowDays)
	started := f.now()
	bars := make([]model.Bar, 0)
	pages := 0

	for {
		if cur.exhausted() {
			if cur.reachedTarget(target) {
				break
			}
			cur = cur.next(target, f.opts.WindowDays)
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := f.checkBudget(pages, started); err != nil {
			return nil, err
		}

		page, err := f.queryPage(ctx, symbol, market, code, req, cur)
		pages++
		if err != nil {
			return nil, err
		}
		slog.Debug("fetch page",
			"fetch_id", fetchID, "symbol", symbol, "exchange", req.Exchange, "interval", req.Interval,
			"start", cur.Start.Format(dateLayout), "end", cur.End.Format(dateLayout),
			"page", pages, "bars", len(page))

		if len(page) > 0 {
			bars = append(bars, page...)
			first, last := page[0], page[len(page)-1]
			if sameDate(first.Datetime, last.Datetime) {
				if cur.reachedTarget(target) {
					break
				}
				cur = cur.next(target, f.opts.WindowDays)
				continue
			}
			cur = cur.after(LabelDate(last))
			continue
		}
		if cur.reachedTarget(target) {
			break
		}
		cur = cur.next(target, f.opts.WindowDays)
	}

	slog.Debug("fetch done", "fetch_id", fetchID, "symbol", symbol, "pages", pages, "bars", len(bars))
	return bars, nil
}

func (f *Fetcher) checkBudget(pages int, started time.Time) error {
	if f.opts.MaxPages > 0 && pages >= f.opts.MaxPages {
		return fmt.Errorf("%w: %d pages", ErrFetchBudgetExceeded, pages)
	}
	if f.opts.MaxElapsed > 0 {
		if elapsed := f.now().Sub(started); elapsed > f.opts.MaxElapsed {
			return fmt.Errorf("%w: %s elapsed after %d pages", ErrFetchBudgetExceeded, elapsed.Round(time.Millisecond), pages)
		}
	}
	return nil
}

func (f *Fetcher) queryPage(ctx context.Context, symbol, market string, code int, req model.HistoryRequest, cur pageCursor) ([]model.Bar, error) {
	table, err := f.provider.QueryHistory(ctx, provider.Query{
		Symbol: symbol,
		Market: market,
		Begin:  cur.Start,
		End:    cur.End,
		Code:   code,
	})
	if err != nil {
		return nil, err
	}
	return NormalizePage(symbol, req.Exchange, req.Interval, table)
}

// QueryPage runs a single provider round trip for [req.Start, req.End] and normalizes it.
// Unlike QueryBarHistory it does not page; it is the unit to wrap with retry or throttling.
func (f *Fetcher) QueryPage(ctx context.Context, req model.HistoryRequest) ([]model.Bar, error) {
	code, ok := IntervalCode(req.Interval)
	if !ok || !fetchIntervals[req.Interval] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedInterval, req.Interval)
	}
	market, ok := MarketCode(req.Exchange)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExchange, req.Exchange)
	}
	cur := pageCursor{Start: dateOf(req.Start), End: dateOf(req.End)}
	return f.queryPage(ctx, NormalizeSymbol(req.Symbol), market, code, req, cur)
}
