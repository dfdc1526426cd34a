package model

import "math"

// IndicatorSeries is a PriceSeries augmented with bar-aligned derived columns.
// Columns hold NaN for bars where the lookback window is not yet satisfied.
type IndicatorSeries struct {
	Symbol string
	Bars   []PriceBar

	SMA15     []float64
	SMA20     []float64
	BollUpper []float64
	BollLower []float64
	MACD      []float64
	Signal    []float64
	Hist      []float64
}

// Len returns the number of bars in the series.
func (s *IndicatorSeries) Len() int { return len(s.Bars) }

// FullyDefined reports whether every derived column has a value at index i.
func (s *IndicatorSeries) FullyDefined(i int) bool {
	if i < 0 || i >= len(s.Bars) {
		return false
	}
	for _, col := range [][]float64{s.SMA15, s.SMA20, s.BollUpper, s.BollLower, s.MACD, s.Signal, s.Hist} {
		if math.IsNaN(col[i]) {
			return false
		}
	}
	return true
}
