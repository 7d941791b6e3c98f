package collector

import (
	"context"
	"sort"
	"time"

	"StockAnalyzer/internal/model"
)

// Fetcher defines the interface for fetching daily market data.
// start and end are calendar dates; both are inclusive.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}

// normalizeBars truncates bar times to dates, sorts them and drops duplicate dates,
// keeping the last bar seen for a date.
func normalizeBars(bars []model.OHLCV) []model.OHLCV {
	for i := range bars {
		bars[i].Time = model.Date(bars[i].Time)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
