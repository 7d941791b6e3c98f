package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"StockAnalyzer/internal/model"
)

var testSize = Size{Width: 4 * vg.Inch, Height: 3 * vg.Inch}

func TestRenderPrice(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 30
	bars := make([]model.OHLCV, n)
	sma := make([]float64, n)
	for i := range bars {
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Close: 100 + float64(i)}
		sma[i] = math.NaN()
		if i >= 19 {
			sma[i] = 100 + float64(i) - 9.5
		}
	}
	series := &model.PriceSeries{
		Symbol: "AAPL",
		Bars:   bars,
		Indicators: &model.Indicators{
			SMA20:   sma,
			SMA50:   make([]float64, 0),
			BBUpper: sma,
			BBLower: sma,
		},
	}

	img, err := RenderPrice(series, testSize)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, 0)
	assert.Greater(t, cfg.Height, 0)
}

func TestRenderPrice_Empty(t *testing.T) {
	_, err := RenderPrice(&model.PriceSeries{Symbol: "AAPL"}, testSize)
	assert.Error(t, err)
}

func TestRenderDecomposition(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 20
	dec := &model.Decomposition{Period: 4}
	for i := 0; i < n; i++ {
		dec.Dates = append(dec.Dates, start.AddDate(0, 0, i))
		trend := 100.0
		if i < 2 || i >= n-2 {
			trend = math.NaN()
		}
		dec.Trend = append(dec.Trend, trend)
		dec.Seasonal = append(dec.Seasonal, 1+0.1*math.Sin(float64(i)))
		dec.Residual = append(dec.Residual, trend/100)
	}

	img, err := RenderDecomposition(dec, testSize)
	require.NoError(t, err)
	_, err = png.DecodeConfig(bytes.NewReader(img))
	assert.NoError(t, err)
}

func TestRenderDecomposition_Nil(t *testing.T) {
	_, err := RenderDecomposition(nil, testSize)
	assert.Error(t, err)
}

func TestXYs_SkipsUndefined(t *testing.T) {
	dates := []time.Time{time.Unix(0, 0), time.Unix(86400, 0), time.Unix(172800, 0)}
	pts := xys(dates, []float64{math.NaN(), 2, 3})
	require.Len(t, pts, 2)
	assert.Equal(t, float64(86400), pts[0].X)
	assert.Equal(t, 2.0, pts[0].Y)
}
