package crawl

import (
	"fmt"
	"strings"

	"quote-history/internal/datafeed"
	"quote-history/internal/model"
)

// Target is one instrument to fetch.
type Target struct {
	Symbol   string
	Exchange model.Exchange
}

// Key returns "SYMBOL.EXCHANGE".
func (t Target) Key() string {
	return t.Symbol + "." + string(t.Exchange)
}

// ParseTarget accepts "600000.SSE", "SH.600000" or "SSE:600000".
func ParseTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	var a, b string
	if i := strings.IndexAny(s, ":."); i > 0 && i < len(s)-1 {
		a, b = s[:i], s[i+1:]
	} else {
		return Target{}, fmt.Errorf("target %q: want SYMBOL.EXCHANGE", s)
	}
	// Exchange first (SH.600000, SSE:600000) or last (600000.SSE).
	if ex, err := model.ParseExchange(a); err == nil {
		return Target{Symbol: datafeed.NormalizeSymbol(b), Exchange: ex}, nil
	}
	ex, err := model.ParseExchange(b)
	if err != nil {
		return Target{}, fmt.Errorf("target %q: %w", s, err)
	}
	return Target{Symbol: datafeed.NormalizeSymbol(a), Exchange: ex}, nil
}
