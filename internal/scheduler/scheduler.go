package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/analysis"
	"StockAnalyzer/internal/model"
)

// Scheduler refreshes the cache files of the watchlist tickers on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Source   analysis.SeriesSource
	Tickers  []string
	Lookback int // days of history requested per refresh
	Ctx      context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, src analysis.SeriesSource, tickers []string, lookbackDays int) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Source:   src,
		Tickers:  tickers,
		Lookback: lookbackDays,
		Ctx:      ctx,
		now:      time.Now,
	}
}

// Register adds the refresh task.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("entries", len(s.Cron.Entries())).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for a running refresh to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow refreshes every ticker immediately and returns how many failed.
func (s *Scheduler) RunNow() int {
	return s.refresh()
}

func (s *Scheduler) refreshTask() {
	s.refresh()
}

// refresh requests each ticker up to today; the collector refetches and rewrites
// any cache file whose last date is older than that.
func (s *Scheduler) refresh() int {
	end := model.Date(s.now())
	start := end.AddDate(0, 0, -s.Lookback)
	log.Info().Strs("tickers", s.Tickers).Time("end", end).Msg("running cache refresh")

	failed := 0
	for _, ticker := range s.Tickers {
		if s.Ctx.Err() != nil {
			log.Warn().Msg("cache refresh cancelled")
			return failed + 1
		}
		series, err := s.Source.Collect(s.Ctx, ticker, start, end)
		if err != nil {
			failed++
			log.Error().Err(err).Str("ticker", ticker).Msg("refresh failed")
			continue
		}
		log.Info().
			Str("ticker", ticker).
			Int("rows", series.Len()).
			Str("source", series.Source).
			Msg("refreshed")
	}
	return failed
}
