package collector

import (
	"io"
	"net/http"
	"strings"
)

// jsonResponse builds a response the adapters can consume.
func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}
