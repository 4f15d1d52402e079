package datafeed

import (
	"context"
	"time"

	"quote-history/internal/provider"
)

var testColumns = []string{"datetime", "open", "close", "high", "low", "volume", "turnover", "amount"}

func row(ts string) []string {
	return []string{ts, "10.0", "10.5", "10.8", "9.9", "1200", "12600.5", "3456"}
}

func table(stamps ...string) *provider.Table {
	t := &provider.Table{Columns: testColumns}
	for _, s := range stamps {
		t.Rows = append(t.Rows, row(s))
	}
	return t
}

// fakeProvider replays pages in order and records every query. Past the script it
// returns empty tables.
type fakeProvider struct {
	pages   []*provider.Table
	errs    []error
	queries []provider.Query
	respond func(q provider.Query) *provider.Table
}

func (f *fakeProvider) QueryHistory(ctx context.Context, q provider.Query) (*provider.Table, error) {
	i := len(f.queries)
	f.queries = append(f.queries, q)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if f.respond != nil {
		return f.respond(q), nil
	}
	if i < len(f.pages) {
		return f.pages[i], nil
	}
	return &provider.Table{Columns: testColumns}, nil
}

func (f *fakeProvider) GetName() string { return "fake" }
func (f *fakeProvider) Close() error    { return nil }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, ChinaTZ)
}

type outputRecorder struct {
	lines []string
}

func (o *outputRecorder) write(msg string) { o.lines = append(o.lines, msg) }
