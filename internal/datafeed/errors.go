package datafeed

import "errors"

var (
	// ErrUnsupportedInterval is returned for intervals other than 1m, 1h and d.
	ErrUnsupportedInterval = errors.New("unsupported interval")

	// ErrUnsupportedExchange is returned for exchanges without a provider market code.
	ErrUnsupportedExchange = errors.New("unsupported exchange")

	// ErrMalformedRow means a provider row broke the page schema.
	ErrMalformedRow = errors.New("malformed provider row")

	// ErrFetchBudgetExceeded means the page or time budget ran out before the range was exhausted.
	ErrFetchBudgetExceeded = errors.New("fetch budget exceeded")
)
