package datafeed

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/mitchellh/mapstructure"

	"quote-history/internal/model"
	"quote-history/internal/provider"
)

const (
	minuteLayout = "2006-01-02 15:04"
	dateLayout   = "2006-01-02"

	// labelOffset is subtracted from every provider timestamp: the provider labels a bar
	// by its close, the host by its open. Applied as-is to hourly and daily rows too.
	labelOffset = time.Minute
)

// ChinaTZ is the timezone attached to every bar.
var ChinaTZ = mustLoadLocation("Asia/Shanghai")

// LabelDate returns the calendar day the provider filed b under.
func LabelDate(b model.Bar) time.Time {
	return dateOf(b.Datetime.Add(labelOffset))
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// pageRow is the decoded schema of one provider row.
type pageRow struct {
	Datetime string  `mapstructure:"datetime"`
	Open     float64 `mapstructure:"open"`
	High     float64 `mapstructure:"high"`
	Low      float64 `mapstructure:"low"`
	Close    float64 `mapstructure:"close"`
	Volume   float64 `mapstructure:"volume"`
	Turnover float64 `mapstructure:"turnover"`
	Amount   float64 `mapstructure:"amount"`
}

var requiredColumns = []string{"datetime", "open", "high", "low", "close", "volume", "turnover"}

// pageSchema resolves column positions and builds the row decoder once per page.
type pageSchema struct {
	index map[string]int
	row   pageRow
	dec   *mapstructure.Decoder
}

func newPageSchema(columns []string) (*pageSchema, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[c] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedRow, c)
		}
	}
	s := &pageSchema{index: idx}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &s.row,
	})
	if err != nil {
		return nil, err
	}
	s.dec = dec
	return s, nil
}

// decode maps one row onto pageRow. Required cells must be present and non-blank;
// weak decoding would otherwise read "" as 0.
func (s *pageSchema) decode(i int, cells []string) (pageRow, error) {
	raw := make(map[string]interface{}, len(s.index))
	for name, pos := range s.index {
		if pos < len(cells) {
			raw[name] = cells[pos]
		}
	}
	for _, c := range requiredColumns {
		v, ok := raw[c]
		if !ok {
			return pageRow{}, fmt.Errorf("%w: row %d: missing cell %q", ErrMalformedRow, i, c)
		}
		if strings.TrimSpace(v.(string)) == "" {
			return pageRow{}, fmt.Errorf("%w: row %d: blank cell %q", ErrMalformedRow, i, c)
		}
	}

	s.row = pageRow{}
	if err := s.dec.Decode(raw); err != nil {
		return pageRow{}, fmt.Errorf("%w: row %d: %v", ErrMalformedRow, i, err)
	}
	return s.row, nil
}

// parseBarTime parses a provider timestamp (with or without clock time), shifts it back
// by labelOffset and places the wall clock in China time.
func parseBarTime(s string) (time.Time, error) {
	t, err := time.Parse(minuteLayout, s)
	if err != nil {
		t, err = time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: datetime %q", ErrMalformedRow, s)
		}
	}
	t = t.Add(-labelOffset)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, ChinaTZ), nil
}

func isAuctionBar(t time.Time) bool {
	return t.Hour() == 9 && t.Minute() == 29 && t.Second() == 0
}

// NormalizePage converts one provider page into host bars, in row order.
// Futures rows carry the provider amount as open interest; other rows stamped 09:29 are
// the pre-open auction and are dropped. Any malformed row fails the whole page.
func NormalizePage(symbol string, exchange model.Exchange, interval model.Interval, table *provider.Table) ([]model.Bar, error) {
	bars := make([]model.Bar, 0, table.Len())
	if table.Len() == 0 {
		return bars, nil
	}
	schema, err := newPageSchema(table.Columns)
	if err != nil {
		return nil, err
	}
	futures := IsFutures(exchange)

	for i, cells := range table.Rows {
		row, err := schema.decode(i, cells)
		if err != nil {
			return nil, err
		}
		dt, err := parseBarTime(row.Datetime)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		bar := model.Bar{
			Symbol:   symbol,
			Exchange: exchange,
			Interval: interval,
			Datetime: dt,
			Open:     row.Open,
			High:     row.High,
			Low:      row.Low,
			Close:    row.Close,
			Volume:   row.Volume,
			Turnover: row.Turnover,
			Source:   model.Source,
		}
		if futures {
			bar.OpenInterest = row.Amount
		} else if isAuctionBar(dt) {
			continue
		}
		bars = append(bars, bar)
	}
	return bars, nil
}
