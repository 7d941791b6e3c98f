package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"StockAnalyzer/internal/model"
)

// Window lengths for the derived columns.
const (
	ShortWindow = 20
	LongWindow  = 50
)

// CalculateSMA computes the simple moving average of the last period prices.
// RollingMean applies it to every trailing window.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	return stat.Mean(prices[len(prices)-period:], nil), nil
}

// RollingMean returns the trailing mean over window for every position.
// The first window-1 entries, and any window containing NaN, are NaN.
func RollingMean(values []float64, window int) []float64 {
	return rolling(values, window, func(w []float64) float64 {
		v, err := CalculateSMA(w, window)
		if err != nil {
			return math.NaN()
		}
		return v
	})
}

// RollingStdDev returns the trailing sample standard deviation (n-1 denominator).
func RollingStdDev(values []float64, window int) []float64 {
	return rolling(values, window, func(w []float64) float64 {
		if len(w) < 2 {
			return math.NaN()
		}
		return stat.StdDev(w, nil)
	})
}

func rolling(values []float64, window int, fn func([]float64) float64) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		w := values[i-window+1 : i+1]
		if hasNaN(w) {
			continue
		}
		out[i] = fn(w)
	}
	return out
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// CalculateMovingAverages returns a copy of series with the 20- and 50-day SMA columns set.
func CalculateMovingAverages(series *model.PriceSeries) *model.PriceSeries {
	out := derive(series)
	closes := series.Closes()
	out.Indicators.SMA20 = RollingMean(closes, ShortWindow)
	out.Indicators.SMA50 = RollingMean(closes, LongWindow)
	return out
}

// derive makes a shallow copy of series with its own indicator columns.
func derive(series *model.PriceSeries) *model.PriceSeries {
	out := *series
	out.Indicators = series.Indicators.Clone()
	return &out
}
