package model

import "github.com/guregu/null/v6"

// ReturnRow is a price row augmented with its simple return. Return is
// invalid when there is no previous observation.
type ReturnRow struct {
	Time   string     `json:"time"`
	Price  float64    `json:"stock price"`
	Return null.Float `json:"Return"`
}

// ReturnSeries is a price table with a Return column.
type ReturnSeries []ReturnRow

// Columns returns the column names of the table.
func (s ReturnSeries) Columns() []string {
	return []string{ColumnTime, ColumnPrice, ColumnReturn}
}

// Times returns the time column.
func (s ReturnSeries) Times() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = r.Time
	}
	return out
}

// LabeledReturns pairs a label such as "Daily" with its return series.
type LabeledReturns struct {
	Label  string
	Series ReturnSeries
}
