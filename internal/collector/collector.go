package collector

import (
	"context"
	"fmt"

	"StockDatasets/internal/calculator"
	"StockDatasets/internal/model"
)

// Factory builds an adapter for one frequency.
type Factory func(ctx context.Context, freq model.Frequency) (DatasetAdapter, error)

// YahooFactory returns a Factory that builds Yahoo adapters from base,
// overriding only the frequency.
func YahooFactory(base YahooOptions) Factory {
	return func(ctx context.Context, freq model.Frequency) (DatasetAdapter, error) {
		opts := base
		opts.Frequency = freq
		return NewYahooAdapter(ctx, opts)
	}
}

// StaticFactory returns a Factory serving generated data.
func StaticFactory(ticker string, basePrice float64) Factory {
	return func(_ context.Context, freq model.Frequency) (DatasetAdapter, error) {
		return NewStaticAdapter(ticker, freq, basePrice, nil, nil), nil
	}
}

// Reuse returns a Factory that serves adapter for freq and delegates every
// other frequency to factory.
func Reuse(factory Factory, freq model.Frequency, adapter DatasetAdapter) Factory {
	return func(ctx context.Context, f model.Frequency) (DatasetAdapter, error) {
		if f == freq {
			return adapter, nil
		}
		return factory(ctx, f)
	}
}

// Collector orchestrates adapter construction and return computation.
type Collector struct {
	Factory     Factory
	Frequencies []model.Frequency
}

// NewCollector creates a Collector over daily, weekly and monthly data.
func NewCollector(factory Factory) *Collector {
	return &Collector{Factory: factory, Frequencies: model.Frequencies}
}

// CollectPeriodicReturns builds one adapter per frequency, in order, and
// computes the returns of each training set independently.
func (c *Collector) CollectPeriodicReturns(ctx context.Context) ([]model.LabeledReturns, error) {
	sets := make([]calculator.FrequencySeries, 0, len(c.Frequencies))
	for _, freq := range c.Frequencies {
		adapter, err := c.Factory(ctx, freq)
		if err != nil {
			return nil, fmt.Errorf("build %s adapter: %w", freq, err)
		}
		sets = append(sets, calculator.FrequencySeries{
			Frequency: freq,
			Series:    adapter.TrainingSet(),
		})
	}
	return calculator.PeriodicReturns(sets), nil
}
