package report

import (
	"fmt"
	"strings"

	"StockDatasets/internal/calculator"
	"StockDatasets/internal/model"
)

// FormatSeries prints the shape of a price table and its first head rows.
func FormatSeries(name string, series model.PriceSeries, head int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("=== %s ===\n", name))
	b.WriteString(fmt.Sprintf("Shape: (%d, %d)\n", series.Len(), len(series.Columns())))
	if head <= 0 || len(series) == 0 {
		return b.String()
	}
	if head > len(series) {
		head = len(series)
	}
	b.WriteString(fmt.Sprintf("%10s  %12s\n", model.ColumnTime, model.ColumnPrice))
	for _, row := range series[:head] {
		b.WriteString(fmt.Sprintf("%10s  %12.4f\n", row.Time, row.Price))
	}
	return b.String()
}

// FormatReturns summarizes each period: row count and mean simple return.
func FormatReturns(ticker string, periodic []model.LabeledReturns) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("=== %s returns ===\n", ticker))
	for _, p := range periodic {
		mean, ok := calculator.MeanReturn(p.Series)
		if !ok {
			b.WriteString(fmt.Sprintf("%-8s rows=%d mean=n/a\n", p.Label, len(p.Series)))
			continue
		}
		b.WriteString(fmt.Sprintf("%-8s rows=%d mean=%+.4f%%\n", p.Label, len(p.Series), mean*100))
	}
	return b.String()
}
