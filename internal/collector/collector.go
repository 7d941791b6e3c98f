package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
)

// Collector serves price series through the per-ticker cache file,
// falling back to the Fetcher when the cache is missing or stale.
type Collector struct {
	Fetcher Fetcher
	Cache   *CacheStore
	Metrics *metrics.Metrics

	now   func() time.Time
	group singleflight.Group
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, cache *CacheStore, m *metrics.Metrics) *Collector {
	return &Collector{Fetcher: fetcher, Cache: cache, Metrics: m, now: time.Now}
}

// Collect returns the series for ticker covering start..end.
//
// A cache file whose last date is on or after end is returned as is, even when it
// does not reach back to start. Anything else triggers a full fetch that replaces
// the cache file; there is no merge with the previous content.
func (c *Collector) Collect(ctx context.Context, ticker string, start, end time.Time) (*model.PriceSeries, error) {
	start, end = model.Date(start), model.Date(end)
	key := ticker + "|" + end.Format("2006-01-02")
	// The shared call outlives any single caller; each caller waits on its own ctx.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		return c.collect(context.WithoutCancel(ctx), ticker, start, end)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		series := r.Val.(*model.PriceSeries)
		if r.Shared {
			cp := *series
			series = &cp
		}
		return series, nil
	}
}

func (c *Collector) collect(ctx context.Context, ticker string, start, end time.Time) (*model.PriceSeries, error) {
	if series, ok := c.loadFresh(ticker, end); ok {
		return series, nil
	}

	begin := time.Now()
	bars, err := c.Fetcher.FetchDailyBars(ctx, ticker, start, end)
	c.Metrics.Fetch(c.Fetcher.Name(), time.Since(begin), err)
	if err != nil {
		return nil, fmt.Errorf("fetch %s from %s: %w", ticker, c.Fetcher.Name(), err)
	}
	log.Info().
		Str("ticker", ticker).
		Str("source", c.Fetcher.Name()).
		Int("bars", len(bars)).
		Dur("took", time.Since(begin)).
		Msg("fetched daily bars")

	if err := c.Cache.Save(ticker, bars); err != nil {
		return nil, fmt.Errorf("save cache for %s: %w", ticker, err)
	}

	return &model.PriceSeries{
		Symbol:    ticker,
		Bars:      bars,
		Source:    c.Fetcher.Name(),
		FetchedAt: c.now(),
	}, nil
}

// loadFresh returns the cached series when its last date is not before end.
func (c *Collector) loadFresh(ticker string, end time.Time) (*model.PriceSeries, bool) {
	bars, exists, err := c.Cache.Load(ticker)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("ticker", ticker).Msg("cache unreadable, refetching")
		c.Metrics.CacheLookup("corrupt")
		return nil, false
	case !exists:
		c.Metrics.CacheLookup("miss")
		return nil, false
	}

	series := &model.PriceSeries{Symbol: ticker, Bars: bars, Source: model.SourceCache, FetchedAt: c.now()}
	last, ok := series.LastDate()
	if !ok || last.Before(end) {
		log.Debug().
			Str("ticker", ticker).
			Time("last", last).
			Time("end", end).
			Msg("cache stale")
		c.Metrics.CacheLookup("stale")
		return nil, false
	}
	c.Metrics.CacheLookup("hit")
	log.Debug().Str("ticker", ticker).Int("bars", len(bars)).Msg("cache hit")
	return series, true
}
