package seasonal

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func syntheticSeries(n, period int, level float64) ([]time.Time, []float64) {
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, n)
	values := make([]float64, n)
	for i := range values {
		dates[i] = start.AddDate(0, 0, i)
		values[i] = level * (1 + 0.1*math.Sin(2*math.Pi*float64(i)/float64(period)))
	}
	return dates, values
}

func TestDecompose_InsufficientData(t *testing.T) {
	dates, values := syntheticSeries(2*DefaultPeriod-1, DefaultPeriod, 100)
	_, err := Decompose(dates, values, DefaultPeriod)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData))
	assert.Contains(t, err.Error(), "504")
}

func TestDecompose_RecoversPeriod(t *testing.T) {
	n := 3 * DefaultPeriod
	dates, values := syntheticSeries(n, DefaultPeriod, 100)
	dec, err := Decompose(dates, values, DefaultPeriod)
	require.NoError(t, err)
	assert.Equal(t, DefaultPeriod, dec.Period)
	require.Len(t, dec.Seasonal, n)

	for i := 0; i+DefaultPeriod < n; i++ {
		assert.Equal(t, dec.Seasonal[i], dec.Seasonal[i+DefaultPeriod], "seasonal must repeat every period at %d", i)
	}

	peak := 0
	for i := 1; i < DefaultPeriod; i++ {
		if dec.Seasonal[i] > dec.Seasonal[peak] {
			peak = i
		}
	}
	assert.Equal(t, DefaultPeriod/4, peak)
	assert.InDelta(t, 1.1, dec.Seasonal[peak], 1e-6)

	mean := 0.0
	for _, s := range dec.Seasonal[:DefaultPeriod] {
		mean += s
	}
	assert.InDelta(t, 1.0, mean/DefaultPeriod, 1e-9)
}

func TestDecompose_TrendUndefinedAtEnds(t *testing.T) {
	n := 2 * DefaultPeriod
	dates, values := syntheticSeries(n, DefaultPeriod, 50)
	dec, err := Decompose(dates, values, DefaultPeriod)
	require.NoError(t, err)

	half := DefaultPeriod / 2
	for i := 0; i < n; i++ {
		edge := i < half || i >= n-half
		assert.Equal(t, edge, math.IsNaN(dec.Trend[i]), "trend row %d", i)
		assert.Equal(t, edge, math.IsNaN(dec.Residual[i]), "residual row %d", i)
		if !edge {
			assert.InDelta(t, 50, dec.Trend[i], 1e-6)
			assert.InDelta(t, 1, dec.Residual[i], 1e-6)
		}
	}
}

func TestDecompose_OddPeriod(t *testing.T) {
	dates, values := syntheticSeries(40, 7, 10)
	dec, err := Decompose(dates, values, 7)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(dec.Trend[2]))
	assert.False(t, math.IsNaN(dec.Trend[3]))
	assert.False(t, math.IsNaN(dec.Trend[36]))
	assert.True(t, math.IsNaN(dec.Trend[37]))
}

func TestDecompose_RejectsBadValues(t *testing.T) {
	dates, values := syntheticSeries(20, 5, 10)

	values[3] = 0
	_, err := Decompose(dates, values, 5)
	assert.ErrorIs(t, err, ErrNonPositive)

	values[3] = math.NaN()
	_, err = Decompose(dates, values, 5)
	assert.ErrorIs(t, err, ErrMissingValues)

	_, err = Decompose(dates, values, 1)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = Decompose(dates[:3], values, 5)
	assert.Error(t, err)
}

func TestDecomposeSeries(t *testing.T) {
	dates, values := syntheticSeries(2*DefaultPeriod, DefaultPeriod, 100)
	bars := make([]model.OHLCV, len(values))
	for i := range bars {
		bars[i] = model.OHLCV{Time: dates[i], Close: values[i]}
	}
	dec, err := DecomposeSeries(&model.PriceSeries{Symbol: "SYN", Bars: bars})
	require.NoError(t, err)
	assert.Equal(t, dates, dec.Dates)

	_, err = DecomposeSeries(&model.PriceSeries{Symbol: "SYN", Bars: bars[:100]})
	assert.ErrorIs(t, err, ErrInsufficientData)
}
