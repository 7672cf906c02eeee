// Package visual renders price and return series as HTML line charts.
package visual

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"StockDatasets/internal/model"
)

const (
	colorPrice  = "#3b82f6"
	colorReturn = "#f472b6"

	chartWidthPx  = 760
	chartHeightPx = 420

	// missingValue is how echarts marks a gap in a line series.
	missingValue = "-"
)

// RenderPrices writes one price chart per security, in input order.
// column names the plotted series and the y axis; empty means
// model.ColumnPrice.
func RenderPrices(w io.Writer, records []model.LabeledSeries, column string) error {
	if column == "" {
		column = model.ColumnPrice
	}
	page := newPage()
	for _, rec := range records {
		if len(rec.Series) == 0 {
			continue
		}
		data := make([]opts.LineData, len(rec.Series))
		for i, row := range rec.Series {
			data[i] = opts.LineData{Value: row.Price}
		}
		line := newLine(rec.Label, column)
		line.SetXAxis(rec.Series.Times()).
			AddSeries(column, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorPrice}))
		page.AddCharts(line)
	}
	if len(page.Charts) == 0 {
		return fmt.Errorf("no price charts rendered")
	}
	return page.Render(w)
}

// RenderReturns writes one return chart per period, titled
// "<ticker> - <label> Returns", in input order.
func RenderReturns(w io.Writer, ticker string, periodic []model.LabeledReturns) error {
	page := newPage()
	for _, p := range periodic {
		if len(p.Series) == 0 {
			continue
		}
		data := make([]opts.LineData, len(p.Series))
		for i, row := range p.Series {
			if row.Return.Valid {
				data[i] = opts.LineData{Value: row.Return.Float64}
			} else {
				data[i] = opts.LineData{Value: missingValue}
			}
		}
		line := newLine(fmt.Sprintf("%s - %s Returns", ticker, p.Label), model.ColumnReturn)
		line.SetXAxis(p.Series.Times()).
			AddSeries(model.ColumnReturn, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: colorReturn}))
		page.AddCharts(line)
	}
	if len(page.Charts) == 0 {
		return fmt.Errorf("no return charts rendered for %s", ticker)
	}
	return page.Render(w)
}

// WriteFile creates path, including parent directories, and renders into it.
func WriteFile(path string, render func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create chart dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return render(f)
}

func newPage() *components.Page {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	return page
}

func newLine(title, yName string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  fmt.Sprintf("%dpx", chartWidthPx),
			Height: fmt.Sprintf("%dpx", chartHeightPx),
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
		charts.WithXAxisOpts(opts.XAxis{Name: model.ColumnTime, Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Scale: opts.Bool(true)}),
	)
	return line
}
