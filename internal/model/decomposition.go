package model

import "time"

// Decomposition is the multiplicative split value = trend * seasonal * residual.
// Trend and Residual are NaN for the first and last Period/2 entries.
type Decomposition struct {
	Dates    []time.Time
	Trend    []float64
	Seasonal []float64
	Residual []float64
	Period   int
}
