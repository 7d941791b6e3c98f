package model

import (
	"math"
	"time"
)

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// PriceSeries holds daily bars for one ticker, oldest first.
type PriceSeries struct {
	Symbol     string
	Bars       []OHLCV
	Source     string // "cache" or the fetcher name
	FetchedAt  time.Time
	Indicators *Indicators
}

// SourceCache marks a series that was served from the cache file.
const SourceCache = "cache"

// Len returns the number of bars.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes returns the closing prices in bar order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Dates returns the bar dates in order.
func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		dates[i] = b.Time
	}
	return dates
}

// LastDate returns the date of the most recent bar, or false for an empty series.
func (s *PriceSeries) LastDate() (time.Time, bool) {
	if s.Len() == 0 {
		return time.Time{}, false
	}
	return s.Bars[len(s.Bars)-1].Time, true
}

// FromCache reports whether the series was served without a fetch.
func (s *PriceSeries) FromCache() bool {
	return s != nil && s.Source == SourceCache
}

// Defined reports whether v holds a value; rolling columns use NaN for "no value yet".
func Defined(v float64) bool {
	return !math.IsNaN(v)
}

// Date truncates t to its calendar date in UTC.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
