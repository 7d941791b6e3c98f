// Package seasonal splits a price series into trend, seasonal and residual
// components with the classical multiplicative model.
package seasonal

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"StockAnalyzer/internal/model"
)

// DefaultPeriod is the number of trading days in a year.
const DefaultPeriod = 252

var (
	ErrInsufficientData = errors.New("insufficient data for seasonal decomposition")
	ErrNonPositive      = errors.New("multiplicative decomposition requires strictly positive values")
	ErrMissingValues    = errors.New("series contains missing values")
	ErrInvalidPeriod    = errors.New("period must be at least 2")
)

// DecomposeSeries decomposes the closing prices of series with DefaultPeriod.
func DecomposeSeries(series *model.PriceSeries) (*model.Decomposition, error) {
	return Decompose(series.Dates(), series.Closes(), DefaultPeriod)
}

// Decompose splits values into trend * seasonal * residual.
// At least two full periods of data are required.
func Decompose(dates []time.Time, values []float64, period int) (*model.Decomposition, error) {
	if period < 2 {
		return nil, ErrInvalidPeriod
	}
	if len(dates) != len(values) {
		return nil, fmt.Errorf("dates and values differ in length: %d != %d", len(dates), len(values))
	}
	if len(values) < 2*period {
		return nil, fmt.Errorf("%w: need %d observations (two periods of %d), got %d",
			ErrInsufficientData, 2*period, period, len(values))
	}
	for i, v := range values {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w at index %d", ErrMissingValues, i)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%w: %g at index %d", ErrNonPositive, v, i)
		}
	}

	trend := centeredMovingAverage(values, period)

	detrended := make([]float64, len(values))
	for i := range values {
		detrended[i] = values[i] / trend[i]
	}

	factors := seasonalFactors(detrended, period)
	seasonal := make([]float64, len(values))
	residual := make([]float64, len(values))
	for i := range values {
		seasonal[i] = factors[i%period]
		residual[i] = values[i] / (trend[i] * seasonal[i])
	}

	return &model.Decomposition{
		Dates:    append([]time.Time(nil), dates...),
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
		Period:   period,
	}, nil
}

// centeredMovingAverage applies a symmetric filter of length period (odd) or
// period+1 with half weights at both ends (even). Ends without a full window are NaN.
func centeredMovingAverage(values []float64, period int) []float64 {
	var weights []float64
	if period%2 == 0 {
		weights = make([]float64, period+1)
		for i := range weights {
			weights[i] = 1
		}
		weights[0], weights[period] = 0.5, 0.5
	} else {
		weights = make([]float64, period)
		for i := range weights {
			weights[i] = 1
		}
	}
	floats.Scale(1/float64(period), weights)

	half := len(weights) / 2
	out := make([]float64, len(values))
	for i := range out {
		if i < half || i+half >= len(values) {
			out[i] = math.NaN()
			continue
		}
		out[i] = floats.Dot(weights, values[i-half:i+half+1])
	}
	return out
}

// seasonalFactors averages the detrended values at each phase and rescales
// the factors so they average to 1.
func seasonalFactors(detrended []float64, period int) []float64 {
	factors := make([]float64, period)
	for phase := 0; phase < period; phase++ {
		var obs []float64
		for i := phase; i < len(detrended); i += period {
			if !math.IsNaN(detrended[i]) {
				obs = append(obs, detrended[i])
			}
		}
		factors[phase] = stat.Mean(obs, nil)
	}
	floats.Scale(1/stat.Mean(factors, nil), factors)
	return factors
}
