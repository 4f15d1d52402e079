package provider

import (
	"context"
	"time"
)

// Query is one request to a quote provider, already translated to provider codes.
type Query struct {
	Symbol string
	Market string // provider market code for the exchange
	Begin  time.Time
	End    time.Time
	Code   int // provider interval code
}

// Table is the tabular result of a history query: named columns, one string cell per column.
// A nil or zero-row table means no data in range.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of rows. Safe on nil.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// QuoteProvider is the abstraction used by the datafeed when accessing a quote source.
// Implementations own their transport and resource cleanup.
type QuoteProvider interface {
	// QueryHistory returns bars for [Begin, End] (calendar days, inclusive).
	QueryHistory(ctx context.Context, q Query) (*Table, error)

	GetName() string
	Close() error
}
