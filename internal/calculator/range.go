package calculator

import (
	"errors"
	"math"

	"StockAnalyzer/internal/model"
)

// TradingDaysPerYear approximates one year of daily bars.
const TradingDaysPerYear = 252

// PriceRange summarises the recent trading range shown next to the charts.
type PriceRange struct {
	High     float64
	Low      float64
	Position float64 // where the last close sits between Low and High, 0.0 ~ 1.0
}

// Calculate52WeekRange scans the most recent 252 bars and returns the high and low.
func Calculate52WeekRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}
	start := len(bars) - TradingDaysPerYear
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars[start:] {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// CalculatePosition returns where current sits within [low, high], clamped to 0.0~1.0.
func CalculatePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Max(0, math.Min(1, pos)), nil
}

// Calculate52WeekSummary combines the 52-week range with the latest close.
func Calculate52WeekSummary(bars []model.OHLCV) (*PriceRange, error) {
	high, low, err := Calculate52WeekRange(bars)
	if err != nil {
		return nil, err
	}
	pos, err := CalculatePosition(bars[len(bars)-1].Close, high, low)
	if err != nil {
		return nil, err
	}
	return &PriceRange{High: high, Low: low, Position: pos}, nil
}
