package collector

import (
	"net/http"
	"net/url"
	"time"
)

// HTTPClient is the subset of *http.Client the adapters use.
//
//go:generate mockgen -package=collector -destination=mock_http_client_test.go -source=http.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient creates a client with a 30s timeout and optional proxy.
func NewHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
