package datafeed

import (
	"sort"
	"strings"

	"quote-history/internal/model"
)

// marketCodes maps each supported exchange to the provider's market id (secid prefix).
var marketCodes = map[model.Exchange]string{
	model.CFFEX: "8",
	model.SHFE:  "113",
	model.DCE:   "114",
	model.CZCE:  "115",
	model.INE:   "142",
	model.SSE:   "1",
	model.SZSE:  "0",
	model.SEHK:  "116",
}

// futuresExchanges carry open interest and never emit the 09:29 auction bar.
var futuresExchanges = map[model.Exchange]bool{
	model.CFFEX: true,
	model.SHFE:  true,
	model.DCE:   true,
	model.CZCE:  true,
	model.INE:   true,
}

// intervalCodes maps intervals to the provider's klt parameter.
var intervalCodes = map[model.Interval]int{
	model.Minute: 1,
	model.Hour:   60,
	model.Daily:  101,
	model.Weekly: 102,
}

// fetchIntervals are the intervals QueryBarHistory accepts.
var fetchIntervals = map[model.Interval]bool{
	model.Minute: true,
	model.Hour:   true,
	model.Daily:  true,
}

// MarketCode returns the provider market id for exchange.
func MarketCode(exchange model.Exchange) (string, bool) {
	code, ok := marketCodes[exchange]
	return code, ok
}

// IntervalCode returns the provider interval code for interval.
func IntervalCode(interval model.Interval) (int, bool) {
	code, ok := intervalCodes[interval]
	return code, ok
}

// IsFutures reports whether exchange is a futures venue.
func IsFutures(exchange model.Exchange) bool {
	return futuresExchanges[exchange]
}

// SupportedExchanges returns the mapped exchanges, sorted.
func SupportedExchanges() []model.Exchange {
	out := make([]model.Exchange, 0, len(marketCodes))
	for e := range marketCodes {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SupportedIntervals returns the intervals QueryBarHistory accepts.
func SupportedIntervals() []model.Interval {
	return []model.Interval{model.Minute, model.Hour, model.Daily}
}

// NormalizeSymbol converts a host symbol to the provider's form.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
