package visual

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/guregu/null/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockDatasets/internal/model"
)

func TestRenderPrices(t *testing.T) {
	records := []model.LabeledSeries{
		{Label: "Apple Inc", Series: model.PriceSeries{{Time: "2021-02-01", Price: 134.14}, {Time: "2021-02-02", Price: 134.99}}},
		{Label: "Google", Series: model.PriceSeries{{Time: "2021-02-01", Price: 1901.05}}},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderPrices(&buf, records, ""))

	html := buf.String()
	assert.Contains(t, html, "Apple Inc")
	assert.Contains(t, html, "Google")
	assert.Contains(t, html, "2021-02-02")
	assert.Contains(t, html, model.ColumnPrice)
}

func TestRenderPrices_Column(t *testing.T) {
	records := []model.LabeledSeries{
		{Label: "Pfizer", Series: model.PriceSeries{{Time: "2021-02-01", Price: 34.5}}},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderPrices(&buf, records, "adjusted close"))
	assert.Contains(t, buf.String(), "adjusted close")
}

func TestRenderPrices_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPrices(&buf, []model.LabeledSeries{{Label: "empty"}}, "")
	require.Error(t, err)
}

func TestRenderReturns(t *testing.T) {
	periodic := []model.LabeledReturns{
		{Label: "Daily", Series: model.ReturnSeries{
			{Time: "2021-02-01", Price: 100},
			{Time: "2021-02-02", Price: 110, Return: null.FloatFrom(0.1)},
		}},
		{Label: "Weekly", Series: model.ReturnSeries{{Time: "2021-02-01", Price: 100}}},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderReturns(&buf, "Pfizer", periodic))

	html := buf.String()
	assert.Contains(t, html, "Pfizer - Daily Returns")
	assert.Contains(t, html, "Pfizer - Weekly Returns")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prices.html")
	records := []model.LabeledSeries{
		{Label: "PFE", Series: model.PriceSeries{{Time: "2021-02-01", Price: 34.5}}},
	}
	err := WriteFile(path, func(w io.Writer) error { return RenderPrices(w, records, model.ColumnPrice) })
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "PFE")
}
