package model

import "time"

// Source tags every bar produced by this adapter.
const Source = "EASTMONEY"

// Bar represents one OHLCV bar in the host platform's canonical form.
// Shared by the datafeed, the saver and serialization (json, parquet).
type Bar struct {
	Symbol       string    `json:"symbol" parquet:"symbol"`
	Exchange     Exchange  `json:"exchange" parquet:"exchange"`
	Interval     Interval  `json:"interval" parquet:"interval"`
	Datetime     time.Time `json:"datetime" parquet:"datetime"` // Asia/Shanghai wall clock
	Open         float64   `json:"open" parquet:"open"`
	High         float64   `json:"high" parquet:"high"`
	Low          float64   `json:"low" parquet:"low"`
	Close        float64   `json:"close" parquet:"close"`
	Volume       float64   `json:"volume" parquet:"volume"`
	Turnover     float64   `json:"turnover" parquet:"turnover"`
	OpenInterest float64   `json:"open_interest,omitempty" parquet:"open_interest,optional"` // futures only
	Source       string    `json:"source" parquet:"source"`
}

// VtSymbol returns "symbol.EXCHANGE", the key the host platform files bars under.
func (b Bar) VtSymbol() string {
	return b.Symbol + "." + string(b.Exchange)
}
