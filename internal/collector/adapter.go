package collector

import "StockDatasets/internal/model"

// DefaultTicker is used when an adapter is built without a ticker.
const DefaultTicker = "PFE"

// DatasetAdapter exposes a training and a validation price series. Every
// call returns a fresh copy; mutating it never affects the adapter.
type DatasetAdapter interface {
	TrainingSet() model.PriceSeries
	ValidationSet() model.PriceSeries
}

// datasets holds the cached series shared by the concrete adapters.
type datasets struct {
	ticker     string
	training   model.PriceSeries
	validation model.PriceSeries
}

// Ticker returns the symbol the adapter was built for.
func (d *datasets) Ticker() string { return d.ticker }

// TrainingSet returns a copy of the training series.
func (d *datasets) TrainingSet() model.PriceSeries { return d.training.Clone() }

// ValidationSet returns a copy of the validation series.
func (d *datasets) ValidationSet() model.PriceSeries { return d.validation.Clone() }
