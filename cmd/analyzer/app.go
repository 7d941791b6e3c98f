package main

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot/vg"

	"StockAnalyzer/internal/analysis"
	"StockAnalyzer/internal/chart"
	"StockAnalyzer/internal/collector"
	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/recorder"
)

// app holds the wired components shared by the commands.
type app struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Service   *analysis.Service
}

func newApp(cfg *config.Config) *app {
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewVsTraderFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Str("cache_dir", cfg.Cache.Dir).Msg("data source ready")

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	m := metrics.NewMetrics()
	col := collector.NewCollector(fetcher, collector.NewCacheStore(cfg.Cache.Dir), m)
	size := chart.Size{
		Width:  vg.Length(cfg.Chart.WidthInches) * vg.Inch,
		Height: vg.Length(cfg.Chart.HeightInches) * vg.Inch,
	}
	return &app{
		Collector: col,
		Recorder:  rec,
		Metrics:   m,
		Service:   analysis.NewService(col, rec, m, size),
	}
}

func (a *app) Close() {
	if err := a.Recorder.Close(); err != nil {
		log.Warn().Err(err).Msg("close recorder")
	}
}
