package collector

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"
)

// unboundedTotal stands in for the record count before the first page.
const unboundedTotal = math.MaxInt

// PageCursor walks an offset-paginated endpoint one page at a time:
//
//	for cur.Next(ctx) {
//		records := cur.Page()
//	}
//	if err := cur.Err(); err != nil { ... }
//
// Iteration stops once offset+limit reaches the total reported by the
// first response. After that Next issues no further requests.
type PageCursor struct {
	client HTTPClient
	apiURL string
	params url.Values
	limit  int
	offset int
	total  int
	pages  int
	page   []gjson.Result
	err    error
	done   bool
}

// NewPageCursor copies params and pins the page limit.
func NewPageCursor(client HTTPClient, apiURL string, params url.Values, limit int) *PageCursor {
	p := make(url.Values, len(params)+2)
	for k, v := range params {
		p[k] = append([]string(nil), v...)
	}
	p.Set("limit", strconv.Itoa(limit))
	return &PageCursor{
		client: client,
		apiURL: apiURL,
		params: p,
		limit:  limit,
		total:  unboundedTotal,
	}
}

// Next fetches the next page. It returns false when the sequence is
// exhausted or a request failed; Err tells the two apart.
func (c *PageCursor) Next(ctx context.Context) bool {
	if c.done {
		return false
	}
	if c.offset+c.limit >= c.total {
		c.finish(nil)
		return false
	}
	c.params.Set("offset", strconv.Itoa(c.offset))
	body, err := getJSON(ctx, c.client, c.apiURL, c.params)
	if err != nil {
		c.finish(err)
		return false
	}
	total := gjson.GetBytes(body, "pagination.total")
	if !total.Exists() {
		c.finish(fmt.Errorf("%w: missing pagination.total", ErrMalformedResponse))
		return false
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		c.finish(fmt.Errorf("%w: missing data array", ErrMalformedResponse))
		return false
	}
	c.total = int(total.Int())
	c.page = data.Array()
	c.pages++
	// The provider's offsets skip one record per page; kept as observed.
	c.offset += c.limit + 1
	return true
}

func (c *PageCursor) finish(err error) {
	c.done = true
	c.page = nil
	c.err = err
}

// Page returns the records of the current page.
func (c *PageCursor) Page() []gjson.Result { return c.page }

// Err returns the error that stopped iteration, or nil on normal exhaustion.
func (c *PageCursor) Err() error { return c.err }

// Offset returns the offset the next request would use.
func (c *PageCursor) Offset() int { return c.offset }

// Total returns the record count reported by the provider, or -1 before
// the first page.
func (c *PageCursor) Total() int {
	if c.total == unboundedTotal {
		return -1
	}
	return c.total
}

// Pages returns how many pages were fetched.
func (c *PageCursor) Pages() int { return c.pages }

// getJSON issues one GET and returns the validated JSON body.
func getJSON(ctx context.Context, client HTTPClient, apiURL string, params url.Values) ([]byte, error) {
	u := apiURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrProviderUnavailable, err)
	}
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return nil, fmt.Errorf("%w: %s: %s", ErrProviderUnavailable,
			gjson.GetBytes(body, "error.code").String(), msg.String())
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedResponse)
	}
	return body, nil
}
