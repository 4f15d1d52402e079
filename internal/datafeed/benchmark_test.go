package datafeed

import (
	"context"
	"testing"
	"time"

	"quote-history/internal/model"
	"quote-history/internal/provider"
)

const benchMinuteBarsYear = 242 * 240 // trading days * minute bars

// minuteTable builds n minute rows starting 2024-01-02 09:31, 240 rows per day.
func minuteTable(n int) *provider.Table {
	t := &provider.Table{Columns: testColumns, Rows: make([][]string, 0, n)}
	day := time.Date(2024, 1, 2, 9, 31, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		ts := day.AddDate(0, 0, i/240).Add(time.Duration(i%240) * time.Minute)
		t.Rows = append(t.Rows, row(ts.Format(minuteLayout)))
	}
	return t
}

func BenchmarkNormalizePageYear(b *testing.B) {
	tbl := minuteTable(benchMinuteBarsYear)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NormalizePage("600000", model.SSE, model.Minute, tbl); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkQueryBarHistoryPaged(b *testing.B) {
	page := minuteTable(240 * 5)
	req := model.HistoryRequest{
		Symbol: "600000", Exchange: model.SSE, Interval: model.Minute,
		Start: day(2024, 1, 2), End: day(2024, 1, 31),
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Same five days on every call; the cursor still advances past them.
		fp := &fakeProvider{pages: []*provider.Table{page, page, page}}
		f := NewFetcher(fp, Options{})
		if _, err := f.QueryBarHistory(context.Background(), req, nil); err != nil {
			b.Fatal(err)
		}
	}
}
