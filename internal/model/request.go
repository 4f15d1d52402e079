package model

import "time"

// HistoryRequest describes one bar history query from the host platform.
// The datafeed never modifies it.
type HistoryRequest struct {
	Symbol   string
	Exchange Exchange
	Interval Interval
	Start    time.Time
	End      time.Time
}
