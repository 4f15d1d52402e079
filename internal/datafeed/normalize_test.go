package datafeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-history/internal/model"
	"quote-history/internal/provider"
)

func TestNormalizePage_ShiftsOneMinuteIntoChinaTime(t *testing.T) {
	bars, err := NormalizePage("IF2406", model.CFFEX, model.Minute, table("2024-01-02 09:30"))
	require.NoError(t, err)
	require.Len(t, bars, 1)

	b := bars[0]
	assert.True(t, time.Date(2024, 1, 2, 9, 29, 0, 0, ChinaTZ).Equal(b.Datetime))
	assert.Equal(t, ChinaTZ, b.Datetime.Location())
	assert.Equal(t, "IF2406", b.Symbol)
	assert.Equal(t, model.CFFEX, b.Exchange)
	assert.Equal(t, model.Minute, b.Interval)
	assert.Equal(t, 10.0, b.Open)
	assert.Equal(t, 10.8, b.High)
	assert.Equal(t, 9.9, b.Low)
	assert.Equal(t, 10.5, b.Close)
	assert.Equal(t, 1200.0, b.Volume)
	assert.Equal(t, 12600.5, b.Turnover)
	assert.Equal(t, 3456.0, b.OpenInterest)
	assert.Equal(t, model.Source, b.Source)
}

func TestNormalizePage_DropsAuctionBarForEquities(t *testing.T) {
	page := table("2024-01-02 09:30", "2024-01-02 09:31", "2024-01-02 09:32")

	equity, err := NormalizePage("600000", model.SSE, model.Minute, page)
	require.NoError(t, err)
	require.Len(t, equity, 2)
	assert.Equal(t, 30, equity[0].Datetime.Minute())
	assert.Equal(t, 31, equity[1].Datetime.Minute())
	for _, b := range equity {
		assert.Zero(t, b.OpenInterest)
	}

	futures, err := NormalizePage("IF2406", model.CFFEX, model.Minute, page)
	require.NoError(t, err)
	require.Len(t, futures, 3)
	assert.Equal(t, 29, futures[0].Datetime.Minute())
	assert.Equal(t, 3456.0, futures[0].OpenInterest)
}

func TestNormalizePage_DateOnlyRows(t *testing.T) {
	bars, err := NormalizePage("000001", model.SZSE, model.Daily, table("2024-01-02"))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.True(t, time.Date(2024, 1, 1, 23, 59, 0, 0, ChinaTZ).Equal(bars[0].Datetime))
}

func TestNormalizePage_IsPure(t *testing.T) {
	page := table("2024-01-02 09:31", "2024-01-02 09:32", "2024-01-03 10:00")
	first, err := NormalizePage("600000", model.SSE, model.Minute, page)
	require.NoError(t, err)
	second, err := NormalizePage("600000", model.SSE, model.Minute, page)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizePage_Empty(t *testing.T) {
	for name, tbl := range map[string]*provider.Table{
		"nil":     nil,
		"no rows": {Columns: testColumns},
		"no cols": {},
	} {
		t.Run(name, func(t *testing.T) {
			bars, err := NormalizePage("600000", model.SSE, model.Minute, tbl)
			require.NoError(t, err)
			assert.NotNil(t, bars)
			assert.Empty(t, bars)
		})
	}
}

func TestNormalizePage_AmountIsOptional(t *testing.T) {
	page := &provider.Table{
		Columns: []string{"datetime", "open", "high", "low", "close", "volume", "turnover"},
		Rows:    [][]string{{"2024-01-02 21:01", "3800", "3810", "3799", "3805", "120", "4560000"}},
	}
	bars, err := NormalizePage("RB2405", model.SHFE, model.Minute, page)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Zero(t, bars[0].OpenInterest)
	assert.Equal(t, 3805.0, bars[0].Close)
}

func TestNormalizePage_RowsDoNotShareValues(t *testing.T) {
	page := &provider.Table{
		Columns: testColumns,
		Rows: [][]string{
			{"2024-01-02 21:01", "3800", "3805", "3810", "3799", "120", "4560000", "2500"},
			{"2024-01-02 21:02", "3805", "3801", "3806", "3800", "80", "3040000", ""},
		},
	}
	bars, err := NormalizePage("RB2405", model.SHFE, model.Minute, page)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 2500.0, bars[0].OpenInterest)
	assert.Zero(t, bars[1].OpenInterest)
	assert.Equal(t, 3801.0, bars[1].Close)
}

func TestNormalizePage_Malformed(t *testing.T) {
	cases := map[string]*provider.Table{
		"missing column": {
			Columns: []string{"datetime", "open", "high", "low", "close", "volume"},
			Rows:    [][]string{{"2024-01-02 09:31", "1", "1", "1", "1", "1"}},
		},
		"short row": {
			Columns: testColumns,
			Rows:    [][]string{{"2024-01-02 09:31", "1", "1"}},
		},
		"bad number": {
			Columns: testColumns,
			Rows:    [][]string{{"2024-01-02 09:31", "x", "1", "1", "1", "1", "1", "1"}},
		},
		"bad datetime": table("02/01/2024"),
		"blank cell": {
			Columns: testColumns,
			Rows:    [][]string{{"2024-01-02 09:31", "", "", "", "", "", "", ""}},
		},
		"blank close": {
			Columns: testColumns,
			Rows:    [][]string{{"2024-01-02 09:31", "10", " ", "11", "9", "100", "1000", "1"}},
		},
	}
	for name, tbl := range cases {
		t.Run(name, func(t *testing.T) {
			bars, err := NormalizePage("600000", model.SSE, model.Minute, tbl)
			assert.Nil(t, bars)
			assert.ErrorIs(t, err, ErrMalformedRow)
		})
	}
}

func TestNormalizePage_MalformedRowAfterGoodRows(t *testing.T) {
	page := table("2024-01-02 09:31", "2024-01-02 09:32")
	page.Rows = append(page.Rows, row("not a time"))
	bars, err := NormalizePage("600000", model.SSE, model.Minute, page)
	assert.Nil(t, bars)
	assert.ErrorIs(t, err, ErrMalformedRow)
	assert.Contains(t, err.Error(), "row 2")
}
