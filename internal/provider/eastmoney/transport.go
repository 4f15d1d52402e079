package eastmoney

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://push2his.eastmoney.com"
	defaultTimeout = 30 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// baseTransportConfig returns the HTTP transport shared by kline clients.
func baseTransportConfig() *http.Transport {
	return &http.Transport{
		ResponseHeaderTimeout: defaultTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          4,
		MaxIdleConnsPerHost:   4,
	}
}

// newHTTPClient creates the resty client used for kline requests.
func newHTTPClient(baseURL string, timeout time.Duration) *resty.Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return resty.New().
		SetTransport(baseTransportConfig()).
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Referer", "https://quote.eastmoney.com/").
		SetHeader("Accept", "application/json")
}
