package collector

import (
	"time"

	"StockDatasets/internal/model"
)

// StaticAdapter serves fixed data for development and testing.
type StaticAdapter struct {
	datasets
}

var _ DatasetAdapter = (*StaticAdapter)(nil)

// NewStaticAdapter copies the given series. Nil series are replaced by a
// generated walk around basePrice with one row per step of freq.
func NewStaticAdapter(ticker string, freq model.Frequency, basePrice float64, training, validation model.PriceSeries) *StaticAdapter {
	if ticker == "" {
		ticker = DefaultTicker
	}
	if training == nil {
		training = generateSeries(basePrice, freq, model.DefaultTrainingRange.From, 24)
	}
	if validation == nil {
		validation = generateSeries(basePrice, freq, model.DefaultValidationRange.From, 8)
	}
	return &StaticAdapter{datasets{
		ticker:     ticker,
		training:   training.Clone(),
		validation: validation.Clone(),
	}}
}

func (s *StaticAdapter) Name() string { return "static" }

// generateSeries steps from a default range start, which always parses.
func generateSeries(basePrice float64, freq model.Frequency, from string, count int) model.PriceSeries {
	start, _ := time.Parse(time.DateOnly, from)
	rows := make(model.PriceSeries, count)
	for i := 0; i < count; i++ {
		var t time.Time
		switch freq {
		case model.Weekly:
			t = start.AddDate(0, 0, 7*i)
		case model.Monthly:
			t = start.AddDate(0, i, 0)
		default:
			t = start.AddDate(0, 0, i)
		}
		rows[i] = model.PriceRow{
			Time:  t.Format(time.DateOnly),
			Price: basePrice * (1 + float64(i-count/2)*0.001),
		}
	}
	return rows
}
