package calculator

import (
	"math"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"StockDatasets/internal/model"
)

var one = decimal.NewFromInt(1)

// ComputeReturns returns the series augmented with simple returns,
// Return[t] = price[t]/price[t-1] - 1. The first row has no return, and
// neither does a row whose previous price is zero or where either price
// is not finite. The input is not
// modified.
func ComputeReturns(series model.PriceSeries) model.ReturnSeries {
	out := make(model.ReturnSeries, len(series))
	for i, row := range series {
		out[i] = model.ReturnRow{Time: row.Time, Price: row.Price}
		if i == 0 {
			continue
		}
		prev := series[i-1].Price
		if prev == 0 || !finite(prev) || !finite(row.Price) {
			continue
		}
		r, _ := decimal.NewFromFloat(row.Price).
			Div(decimal.NewFromFloat(prev)).
			Sub(one).
			Float64()
		out[i].Return = null.FloatFrom(r)
	}
	return out
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// FrequencySeries is a price series fetched at one frequency.
type FrequencySeries struct {
	Frequency model.Frequency
	Series    model.PriceSeries
}

// PeriodicReturns computes returns for each series independently and
// labels them by frequency, keeping the input order.
func PeriodicReturns(sets []FrequencySeries) []model.LabeledReturns {
	out := make([]model.LabeledReturns, 0, len(sets))
	for _, s := range sets {
		out = append(out, model.LabeledReturns{
			Label:  s.Frequency.Label(),
			Series: ComputeReturns(s.Series),
		})
	}
	return out
}

// MeanReturn averages the valid returns of a series. ok is false when the
// series has none.
func MeanReturn(series model.ReturnSeries) (mean float64, ok bool) {
	sum, n := 0.0, 0
	for _, r := range series {
		if !r.Return.Valid {
			continue
		}
		sum += r.Return.Float64
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
