package eastmoney

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"quote-history/internal/provider"
)

const klinePath = "/api/qt/stock/kline/get"

// Options configures a Client.
type Options struct {
	BaseURL string
	Token   string // ut parameter; empty uses the public token
	Adjust  Adjust
	Timeout time.Duration
}

// Client fetches kline history from the Eastmoney quote service.
type Client struct {
	http   *resty.Client
	token  string
	adjust Adjust
}

// NewClient constructs a Client with a shared HTTP transport.
func NewClient(opts Options) (*Client, error) {
	if opts.Adjust < AdjustNone || opts.Adjust > AdjustBackward {
		return nil, fmt.Errorf("invalid adjust %d", opts.Adjust)
	}
	return &Client{
		http:   newHTTPClient(opts.BaseURL, opts.Timeout),
		token:  opts.Token,
		adjust: opts.Adjust,
	}, nil
}

// GetName returns provider name
func (c *Client) GetName() string {
	return "EastMoney"
}

// Close closes idle connections
func (c *Client) Close() error {
	c.http.GetClient().CloseIdleConnections()
	return nil
}

func (c *Client) queryParams(q provider.Query) map[string]string {
	params := map[string]string{
		"secid":   q.Market + "." + q.Symbol,
		"fields1": fields1,
		"fields2": fields2,
		"klt":     strconv.Itoa(q.Code),
		"fqt":     strconv.Itoa(int(c.adjust)),
		"beg":     q.Begin.Format("20060102"),
		"end":     q.End.Format("20060102"),
	}
	if c.token != "" {
		params["ut"] = c.token
	}
	return params
}

// QueryHistory runs one kline request. Transport failures and 5xx are returned as plain
// errors; 4xx and provider-side rejections are marked provider.Permanent.
func (c *Client) QueryHistory(ctx context.Context, q provider.Query) (*provider.Table, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(c.queryParams(q)).
		Get(klinePath)
	if err != nil {
		return nil, fmt.Errorf("kline request %s.%s: %w", q.Market, q.Symbol, err)
	}
	if code := resp.StatusCode(); code != http.StatusOK {
		err := fmt.Errorf("kline API status %d: %s", code, truncate(resp.String(), 200))
		if code >= 400 && code < 500 && code != http.StatusTooManyRequests {
			return nil, provider.Permanent(err)
		}
		return nil, err
	}

	table, err := parseKlines(resp.Body())
	if err != nil {
		return nil, err
	}
	slog.Debug("kline page",
		"secid", q.Market+"."+q.Symbol, "klt", q.Code,
		"beg", q.Begin.Format("2006-01-02"), "end", q.End.Format("2006-01-02"),
		"rows", table.Len())
	return table, nil
}

// parseKlines converts a kline response body into a Table. A null data node means no data.
func parseKlines(body []byte) (*provider.Table, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("parse kline response: invalid JSON: %s", truncate(string(body), 200))
	}
	root := gjson.ParseBytes(body)
	if rc := root.Get("rc"); rc.Exists() && rc.Int() != 0 {
		return nil, provider.Permanent(fmt.Errorf("kline API rc=%d", rc.Int()))
	}

	table := &provider.Table{Columns: klineColumns}
	data := root.Get("data")
	if !data.Exists() || data.Type == gjson.Null {
		return table, nil
	}
	data.Get("klines").ForEach(func(_, k gjson.Result) bool {
		table.Rows = append(table.Rows, splitKline(k.String()))
		return true
	})
	return table, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
