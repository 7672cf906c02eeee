package model

// Canonical column names of a normalized price table.
const (
	ColumnTime   = "time"
	ColumnPrice  = "stock price"
	ColumnReturn = "Return"
)

// DateRange is a pair of ISO 8601 calendar dates. Whether To is inclusive
// is up to the provider.
type DateRange struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Default ranges used when an adapter is built without explicit ones.
var (
	DefaultTrainingRange   = DateRange{From: "2020-01-01", To: "2021-12-31"}
	DefaultValidationRange = DateRange{From: "2013-07-01", To: "2013-08-31"}
)

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool { return r.From == "" && r.To == "" }

// PriceRow is one (time, price) observation.
type PriceRow struct {
	Time  string  `json:"time"`
	Price float64 `json:"stock price"`
}

// PriceSeries is an ordered table of price rows, kept in provider order.
type PriceSeries []PriceRow

// Columns returns the column names of the table.
func (s PriceSeries) Columns() []string {
	return []string{ColumnTime, ColumnPrice}
}

// Len returns the row count.
func (s PriceSeries) Len() int { return len(s) }

// Clone returns an independent copy. A nil series stays nil.
func (s PriceSeries) Clone() PriceSeries {
	if s == nil {
		return nil
	}
	out := make(PriceSeries, len(s))
	copy(out, s)
	return out
}

// Times returns the time column.
func (s PriceSeries) Times() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Time
	}
	return out
}

// Prices returns the price column.
func (s PriceSeries) Prices() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Price
	}
	return out
}

// LabeledSeries pairs a display label with a price series.
type LabeledSeries struct {
	Label  string
	Series PriceSeries
}

// CloneSeriesMap deep-copies a symbol to series mapping. A nil map stays nil.
func CloneSeriesMap(m map[string]PriceSeries) map[string]PriceSeries {
	if m == nil {
		return nil
	}
	out := make(map[string]PriceSeries, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}
