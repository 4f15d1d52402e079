package saver

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"quote-history/internal/model"
)

var csvHeader = []string{"datetime", "symbol", "exchange", "interval", "open", "high", "low", "close", "volume", "turnover", "open_interest"}

// CSVSaver writes bars as CSV with a header row; datetime is RFC 3339 with offset.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(bars []model.Bar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, b := range bars {
		if err := w.Write([]string{
			b.Datetime.Format(time.RFC3339),
			b.Symbol,
			string(b.Exchange),
			string(b.Interval),
			floatStr(b.Open),
			floatStr(b.High),
			floatStr(b.Low),
			floatStr(b.Close),
			floatStr(b.Volume),
			floatStr(b.Turnover),
			floatStr(b.OpenInterest),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
