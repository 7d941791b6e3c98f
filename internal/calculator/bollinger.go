package calculator

import "StockAnalyzer/internal/model"

// BandWidth is the number of standard deviations between the SMA and each band.
const BandWidth = 2.0

// CalculateBollingerBands returns a copy of series with upper and lower bands
// at SMA20 ± 2σ of the closing price over the same 20-day window.
func CalculateBollingerBands(series *model.PriceSeries) *model.PriceSeries {
	out := derive(series)
	closes := series.Closes()
	sma := out.Indicators.SMA20
	if len(sma) != len(closes) {
		sma = RollingMean(closes, ShortWindow)
		out.Indicators.SMA20 = sma
	}
	std := RollingStdDev(closes, ShortWindow)

	upper := make([]float64, len(closes))
	lower := make([]float64, len(closes))
	for i := range closes {
		upper[i] = sma[i] + BandWidth*std[i]
		lower[i] = sma[i] - BandWidth*std[i]
	}
	out.Indicators.BBUpper = upper
	out.Indicators.BBLower = lower
	return out
}

// Enrich applies every derived column in the order the charts expect.
func Enrich(series *model.PriceSeries) *model.PriceSeries {
	return CalculateBollingerBands(CalculateMovingAverages(series))
}
