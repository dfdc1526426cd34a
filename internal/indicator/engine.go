package indicator

import (
	"errors"
	"math"

	"StockScreener/internal/model"
)

// MinBars is the minimum series length accepted by Compute. Callers must
// exclude shorter series before invoking the engine.
const MinBars = 35

const (
	sma15Window  = 15
	sma20Window  = 20
	bollWidth    = 2.0
	macdFastSpan = 12
	macdSlowSpan = 26
	signalSpan   = 9
)

// WarmupBars is the first index at which every derived column is defined:
// the slow MACD span plus a full signal span on top of it.
const WarmupBars = macdSlowSpan - 1 + signalSpan

// ErrInsufficientData indicates a series shorter than MinBars.
var ErrInsufficientData = errors.New("insufficient data for indicator computation")

// Compute derives all indicator columns from a price series. It is pure and
// deterministic: the input series is never modified, and identical input
// always yields identical output.
//
// Conventions: Bollinger deviation is the trailing-20 sample standard
// deviation; EMAs use a recursive seed (EMA[0] = close[0], alpha = 2/(span+1)).
func Compute(series *model.PriceSeries) (*model.IndicatorSeries, error) {
	if series.Len() < MinBars {
		return nil, ErrInsufficientData
	}

	closes := series.Closes()

	sma20 := rollingMean(closes, sma20Window)
	std20 := rollingStd(closes, sma20Window)
	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))
	for i := range closes {
		upper[i] = sma20[i] + bollWidth*std20[i]
		lower[i] = sma20[i] - bollWidth*std20[i]
	}

	fast := ema(closes, macdFastSpan)
	slow := ema(closes, macdSlowSpan)
	macd := make([]float64, len(closes))
	for i := range closes {
		macd[i] = fast[i] - slow[i]
	}
	signal := ema(macd, signalSpan)
	hist := make([]float64, len(closes))
	for i := range closes {
		hist[i] = macd[i] - signal[i]
	}

	// The recursive EMAs produce numbers from bar 0, but they are only
	// trustworthy once their lookback has been seen. Mark earlier bars
	// undefined rather than reporting half-warmed values.
	blankBefore(macd, macdSlowSpan-1)
	blankBefore(signal, WarmupBars)
	blankBefore(hist, WarmupBars)

	return &model.IndicatorSeries{
		Symbol:    series.Symbol,
		Bars:      series.Bars,
		SMA15:     rollingMean(closes, sma15Window),
		SMA20:     sma20,
		BollUpper: upper,
		BollLower: lower,
		MACD:      macd,
		Signal:    signal,
		Hist:      hist,
	}, nil
}

// rollingMean computes the trailing-window arithmetic mean, NaN before the
// window fills.
func rollingMean(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// rollingStd computes the trailing-window sample standard deviation
// (divisor n-1), NaN before the window fills.
func rollingStd(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	for i := window - 1; i < len(values); i++ {
		mean := 0.0
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(window)
		ss := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(window-1))
	}
	return out
}

// ema computes the exponentially weighted moving average with a recursive
// seed. NaN inputs are skipped so a partially defined column can be smoothed
// starting from its first defined value.
func ema(values []float64, span int) []float64 {
	out := nanSlice(len(values))
	alpha := 2.0 / float64(span+1)
	prev := math.NaN()
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(prev) {
			prev = v
		} else {
			prev = alpha*v + (1-alpha)*prev
		}
		out[i] = prev
	}
	return out
}

func blankBefore(values []float64, idx int) {
	for i := 0; i < idx && i < len(values); i++ {
		values[i] = math.NaN()
	}
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
