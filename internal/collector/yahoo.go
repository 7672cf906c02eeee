package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"StockDatasets/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// yahooIntervals maps a frequency to the chart API interval parameter.
var yahooIntervals = map[model.Frequency]string{
	model.Daily:   "1d",
	model.Weekly:  "1wk",
	model.Monthly: "1mo",
}

// YahooOptions configures NewYahooAdapter. Zero values select the defaults.
type YahooOptions struct {
	Ticker          string
	Frequency       model.Frequency
	TrainingRange   model.DateRange
	ValidationRange model.DateRange
	Client          HTTPClient
	BaseURL         string
}

// YahooAdapter implements DatasetAdapter over the Yahoo Finance chart API,
// one request per date range.
type YahooAdapter struct {
	datasets
	frequency model.Frequency
	client    HTTPClient
	baseURL   string
}

var _ DatasetAdapter = (*YahooAdapter)(nil)

// NewYahooAdapter fetches the training and validation ranges and returns
// the ready adapter. Any fetch error is returned as is; nothing is retried.
func NewYahooAdapter(ctx context.Context, opts YahooOptions) (*YahooAdapter, error) {
	if opts.Ticker == "" {
		opts.Ticker = DefaultTicker
	}
	if opts.Frequency == "" {
		opts.Frequency = model.Daily
	}
	if !opts.Frequency.Valid() {
		return nil, fmt.Errorf("%w: frequency %q", ErrConfiguration, opts.Frequency)
	}
	if opts.TrainingRange.IsZero() {
		opts.TrainingRange = model.DefaultTrainingRange
	}
	if opts.ValidationRange.IsZero() {
		opts.ValidationRange = model.DefaultValidationRange
	}
	if opts.Client == nil {
		opts.Client = NewHTTPClient("")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = yahooBaseURL
	}

	a := &YahooAdapter{
		datasets:  datasets{ticker: opts.Ticker},
		frequency: opts.Frequency,
		client:    opts.Client,
		baseURL:   opts.BaseURL,
	}
	var err error
	if a.training, err = a.connectAndPrepare(ctx, opts.TrainingRange); err != nil {
		return nil, fmt.Errorf("yahoo training set: %w", err)
	}
	if a.validation, err = a.connectAndPrepare(ctx, opts.ValidationRange); err != nil {
		return nil, fmt.Errorf("yahoo validation set: %w", err)
	}
	log.Printf("[INFO] yahoo %s (%s): %d training rows, %d validation rows",
		a.ticker, a.frequency, len(a.training), len(a.validation))
	return a, nil
}

func (a *YahooAdapter) Name() string { return "yahoo" }

// Frequency returns the granularity the adapter was built with.
func (a *YahooAdapter) Frequency() model.Frequency { return a.frequency }

// connectAndPrepare fetches one range and keeps only formatted_date and close.
func (a *YahooAdapter) connectAndPrepare(ctx context.Context, r model.DateRange) (model.PriceSeries, error) {
	prices, err := a.fetchHistorical(ctx, r)
	if err != nil {
		return nil, err
	}
	series := make(model.PriceSeries, 0, len(prices))
	for _, p := range prices {
		series = append(series, model.PriceRow{Time: p.FormattedDate, Price: p.Close})
	}
	return series, nil
}

type yahooPrice struct {
	FormattedDate string
	Close         float64
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func at(values []interface{}, i int) interface{} {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func dateUnix(s string) (int64, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return 0, fmt.Errorf("%w: date %q: %v", ErrConfiguration, s, err)
	}
	return t.Unix(), nil
}

// fetchHistorical performs one chart request and returns the non-null
// closes in timestamp order.
func (a *YahooAdapter) fetchHistorical(ctx context.Context, r model.DateRange) ([]yahooPrice, error) {
	period1, err := dateUnix(r.From)
	if err != nil {
		return nil, err
	}
	period2, err := dateUnix(r.To)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("period1", strconv.FormatInt(period1, 10))
	q.Set("period2", strconv.FormatInt(period2, 10))
	q.Set("interval", yahooIntervals[a.frequency])
	q.Set("events", "div,splits")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", a.baseURL, url.PathEscape(a.ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo fetch: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: yahoo read body: %v", ErrProviderUnavailable, err)
	}

	var chart yahooChart
	decodeErr := json.Unmarshal(body, &chart)
	if decodeErr == nil && chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnknownTicker, a.ticker, chart.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: yahoo status %d, body: %s", ErrProviderUnavailable, resp.StatusCode, string(body))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: yahoo decode: %v", ErrMalformedResponse, decodeErr)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("%w: %s: no data between %s and %s", ErrUnknownTicker, a.ticker, r.From, r.To)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: yahoo: missing quote indicators", ErrMalformedResponse)
	}
	quote := result.Indicators.Quote[0]
	prices := make([]yahooPrice, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == nil {
			continue // halted sessions come back as null
		}
		prices = append(prices, yahooPrice{
			FormattedDate: time.Unix(ts, 0).UTC().Format(time.DateOnly),
			Close:         toFloat(c),
		})
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: %s: only null prices between %s and %s", ErrUnknownTicker, a.ticker, r.From, r.To)
	}
	return prices, nil
}
