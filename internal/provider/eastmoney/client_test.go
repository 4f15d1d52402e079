package eastmoney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-history/internal/provider"
)

const minuteResponse = `{"rc":0,"rt":17,"data":{"code":"600000","market":1,"name":"PFYH","klines":[
"2024-01-02 09:30,6.58,6.58,6.58,6.58,1200,789600.00,0.00,0.00,0.00,0.00",
"2024-01-02 09:31,6.58,6.60,6.61,6.57,3400,2240000.00,0.61,0.30,0.02,0.01"]}}`

func TestQueryHistory_SendsQueryAndParsesRows(t *testing.T) {
	var got http.Header
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, klinePath, r.URL.Path)
		got = r.Header
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(minuteResponse))
	}))
	defer srv.Close()

	c, err := NewClient(Options{BaseURL: srv.URL, Token: "tok", Adjust: AdjustForward})
	require.NoError(t, err)
	defer c.Close()

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	table, err := c.QueryHistory(context.Background(), provider.Query{
		Symbol: "600000", Market: "1", Begin: day, End: day.AddDate(0, 0, 3), Code: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "1.600000", query["secid"])
	assert.Equal(t, "1", query["klt"])
	assert.Equal(t, "1", query["fqt"])
	assert.Equal(t, "20240102", query["beg"])
	assert.Equal(t, "20240105", query["end"])
	assert.Equal(t, "tok", query["ut"])
	assert.Contains(t, got.Get("Referer"), "eastmoney")

	require.Equal(t, 2, table.Len())
	assert.Equal(t, klineColumns, table.Columns)
	assert.Equal(t, "2024-01-02 09:31", table.Rows[1][0])
	assert.Equal(t, "6.60", table.Rows[1][2])
	assert.Len(t, table.Rows[1], 11)
}

func TestQueryHistory_NullDataIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rc":0,"data":null}`))
	}))
	defer srv.Close()

	c, err := NewClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	table, err := c.QueryHistory(context.Background(), provider.Query{Symbol: "IF2406", Market: "8", Code: 101})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestQueryHistory_StatusClassification(t *testing.T) {
	var status atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	c, err := NewClient(Options{BaseURL: srv.URL})
	require.NoError(t, err)

	status.Store(http.StatusBadRequest)
	_, err = c.QueryHistory(context.Background(), provider.Query{Symbol: "X", Market: "1", Code: 1})
	require.Error(t, err)
	assert.True(t, provider.IsPermanent(err))

	status.Store(http.StatusBadGateway)
	_, err = c.QueryHistory(context.Background(), provider.Query{Symbol: "X", Market: "1", Code: 1})
	require.Error(t, err)
	assert.False(t, provider.IsPermanent(err))

	status.Store(http.StatusTooManyRequests)
	_, err = c.QueryHistory(context.Background(), provider.Query{Symbol: "X", Market: "1", Code: 1})
	require.Error(t, err)
	assert.False(t, provider.IsPermanent(err))
}

func TestParseKlines(t *testing.T) {
	t.Run("futures trailing column", func(t *testing.T) {
		table, err := parseKlines([]byte(`{"rc":0,"data":{"klines":["2024-01-02 21:01,3800,3805,3810,3799,120,4560000,0.1,0.2,5,0.01,150230,extra"]}}`))
		require.NoError(t, err)
		require.Equal(t, 1, table.Len())
		assert.Len(t, table.Rows[0], len(klineColumns))
		assert.Equal(t, "150230", table.Rows[0][11])
	})
	t.Run("rejected by provider", func(t *testing.T) {
		_, err := parseKlines([]byte(`{"rc":102,"data":null}`))
		require.Error(t, err)
		assert.True(t, provider.IsPermanent(err))
	})
	t.Run("not json", func(t *testing.T) {
		_, err := parseKlines([]byte(`<html>`))
		require.Error(t, err)
		assert.False(t, provider.IsPermanent(err))
	})
}

func TestParseAdjust(t *testing.T) {
	for in, want := range map[string]Adjust{"": AdjustNone, "qfq": AdjustForward, "2": AdjustBackward, "Backward": AdjustBackward} {
		got, err := ParseAdjust(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseAdjust("both")
	assert.Error(t, err)
}
