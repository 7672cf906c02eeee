package collector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"StockDatasets/internal/model"
)

const (
	marketStackBaseURL = "http://api.marketstack.com/v1"
	// DefaultPageLimit is the number of records requested per page.
	DefaultPageLimit = 500
)

// MarketStackOptions configures NewMarketStackAdapter.
type MarketStackOptions struct {
	// Ticker may hold several comma separated symbols. Empty means no data.
	Ticker          string
	TrainingRange   model.DateRange
	ValidationRange model.DateRange
	AccessKey       string
	PageLimit       int
	Client          HTTPClient
	BaseURL         string
}

// MarketStackAdapter implements DatasetAdapter over the paginated
// Marketstack end-of-day endpoint. Records of every symbol in the
// response are merged into one series per symbol.
type MarketStackAdapter struct {
	datasets
	symbols   map[string]model.PriceSeries
	client    HTTPClient
	baseURL   string
	accessKey string
	limit     int
}

var _ DatasetAdapter = (*MarketStackAdapter)(nil)

// NewMarketStackAdapter fetches the training range and returns the ready
// adapter. The validation range is not fetched.
func NewMarketStackAdapter(ctx context.Context, opts MarketStackOptions) (*MarketStackAdapter, error) {
	if opts.TrainingRange.IsZero() {
		opts.TrainingRange = model.DefaultTrainingRange
	}
	if opts.PageLimit == 0 {
		opts.PageLimit = DefaultPageLimit
	}
	if opts.PageLimit < 0 {
		return nil, fmt.Errorf("%w: page limit %d", ErrConfiguration, opts.PageLimit)
	}
	if opts.Client == nil {
		opts.Client = NewHTTPClient("")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = marketStackBaseURL
	}

	a := &MarketStackAdapter{
		datasets:  datasets{ticker: opts.Ticker},
		client:    opts.Client,
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		accessKey: opts.AccessKey,
		limit:     opts.PageLimit,
	}
	records, err := a.connectAndPrepare(ctx, opts.TrainingRange)
	if err != nil {
		return nil, fmt.Errorf("marketstack training set: %w", err)
	}
	a.symbols = records
	a.training = records[a.primarySymbol()]
	return a, nil
}

func (a *MarketStackAdapter) Name() string { return "marketstack" }

// TrainingSets returns a copy of the per-symbol training series. It is
// nil when the adapter was built without a ticker.
func (a *MarketStackAdapter) TrainingSets() map[string]model.PriceSeries {
	return model.CloneSeriesMap(a.symbols)
}

// Symbols returns the symbols present in the training data, sorted.
func (a *MarketStackAdapter) Symbols() []string {
	out := make([]string, 0, len(a.symbols))
	for s := range a.symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// primarySymbol is the first symbol of a comma separated ticker, in the
// form used as a key of the symbols map.
func (a *MarketStackAdapter) primarySymbol() string {
	first, _, _ := strings.Cut(a.ticker, ",")
	return normalizeSymbol(first)
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// connectAndPrepare pages through the EOD endpoint and groups the records
// by symbol.
func (a *MarketStackAdapter) connectAndPrepare(ctx context.Context, r model.DateRange) (map[string]model.PriceSeries, error) {
	if a.ticker == "" {
		return nil, nil
	}
	if a.accessKey == "" {
		return nil, fmt.Errorf("%w: marketstack access key is required", ErrConfiguration)
	}

	params := map[string][]string{
		"access_key": {a.accessKey},
		"symbols":    {a.ticker},
		"date_from":  {r.From},
		"date_to":    {r.To},
	}
	records := map[string]model.PriceSeries{}
	cursor := NewPageCursor(a.client, a.baseURL+"/eod", params, a.limit)
	for cursor.Next(ctx) {
		for _, rec := range cursor.Page() {
			if err := appendRecord(records, rec); err != nil {
				return nil, err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	log.Printf("[INFO] marketstack %s: %d pages, %d symbols", a.ticker, cursor.Pages(), len(records))
	return records, nil
}

// appendRecord adds one EOD record to its symbol's series. Records with a
// null close are skipped.
func appendRecord(records map[string]model.PriceSeries, rec gjson.Result) error {
	symbol, price, date := rec.Get("symbol"), rec.Get("close"), rec.Get("date")
	if !symbol.Exists() || !price.Exists() || !date.Exists() {
		return fmt.Errorf("%w: eod record %s", ErrMalformedResponse, rec.Raw)
	}
	if price.Type == gjson.Null {
		return nil
	}
	if price.Type != gjson.Number {
		return fmt.Errorf("%w: eod close %s", ErrMalformedResponse, price.Raw)
	}
	key := normalizeSymbol(symbol.String())
	day, _, _ := strings.Cut(date.String(), "T")
	records[key] = append(records[key], model.PriceRow{
		Time:  day,
		Price: price.Float(),
	})
	return nil
}

// TickerQuery configures ListTickers.
type TickerQuery struct {
	AccessKey string
	Limit     int
	Client    HTTPClient
	BaseURL   string
}

// ListTickers fetches one page of the ticker directory and returns the
// symbols in response order.
func ListTickers(ctx context.Context, q TickerQuery) ([]string, error) {
	if q.AccessKey == "" {
		return nil, fmt.Errorf("%w: marketstack access key is required", ErrConfiguration)
	}
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Client == nil {
		q.Client = NewHTTPClient("")
	}
	if q.BaseURL == "" {
		q.BaseURL = marketStackBaseURL
	}
	params := map[string][]string{
		"access_key": {q.AccessKey},
		"limit":      {fmt.Sprint(q.Limit)},
	}
	body, err := getJSON(ctx, q.Client, strings.TrimRight(q.BaseURL, "/")+"/tickers", params)
	if err != nil {
		return nil, fmt.Errorf("marketstack tickers: %w", err)
	}
	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		return nil, fmt.Errorf("marketstack tickers: %w: missing data array", ErrMalformedResponse)
	}
	symbols := make([]string, 0, len(data.Array()))
	for _, rec := range data.Array() {
		symbols = append(symbols, rec.Get("symbol").String())
	}
	return symbols, nil
}
