// Package analysis runs one user action end to end: validate the form input,
// collect the price series, derive indicators, decompose and render charts.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/chart"
	"StockAnalyzer/internal/metrics"
	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/recorder"
	"StockAnalyzer/internal/seasonal"
	"StockAnalyzer/internal/validation"
)

// Status texts shown in the form's status readout.
const (
	StatusInvalidTicker    = "Invalid Ticker"
	StatusInvalidDate      = "Invalid Date Format"
	StatusInvalidDateRange = "Invalid Date Range"
	StatusCompleted        = "Analysis completed"
)

// SeriesSource supplies price series; *collector.Collector satisfies it.
type SeriesSource interface {
	Collect(ctx context.Context, ticker string, start, end time.Time) (*model.PriceSeries, error)
}

// Request is the raw form input.
type Request struct {
	Ticker    string
	StartDate string
	EndDate   string
}

// Result carries everything the form needs to display one completed analysis.
type Result struct {
	RunID              string
	Status             string
	Series             *model.PriceSeries
	Decomposition      *model.Decomposition
	Range              *calculator.PriceRange
	PriceChart         []byte // PNG
	DecompositionChart []byte // PNG
}

// ValidationError reports rejected form input; Status is the readout text.
type ValidationError struct {
	Status string
}

func (e *ValidationError) Error() string { return e.Status }

// StatusText converts a Run error into the text for the status readout.
func StatusText(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Status
	}
	if errors.Is(err, seasonal.ErrInsufficientData) {
		return "Not enough history: " + err.Error()
	}
	return "Error: " + err.Error()
}

// Service wires the analysis steps together.
type Service struct {
	Source    SeriesSource
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	ChartSize chart.Size
}

// NewService creates a Service. rec may be nil.
func NewService(src SeriesSource, rec recorder.Recorder, m *metrics.Metrics, size chart.Size) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{Source: src, Recorder: rec, Metrics: m, ChartSize: size}
}

// Run executes one analysis. Invalid input returns a *ValidationError before any fetch.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	began := time.Now()
	rec := &recorder.RunRecord{
		ID:        uuid.NewString(),
		Ticker:    req.Ticker,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		CreatedAt: began,
	}

	res, err := s.run(ctx, req, rec)

	rec.Duration = time.Since(began)
	if err != nil {
		rec.Error = err.Error()
		if rec.Status == "" {
			rec.Status = recorder.StatusAnalysisFailed
		}
		log.Warn().Err(err).Str("run_id", rec.ID).Str("ticker", req.Ticker).Msg("analysis failed")
	} else {
		rec.Status = recorder.StatusOK
		log.Info().
			Str("run_id", rec.ID).
			Str("ticker", req.Ticker).
			Int("rows", rec.Rows).
			Str("source", rec.Source).
			Dur("took", rec.Duration).
			Msg("analysis completed")
	}
	s.Metrics.Run(rec.Status, rec.Duration)
	if rerr := s.Recorder.RecordRun(rec); rerr != nil {
		log.Error().Err(rerr).Str("run_id", rec.ID).Msg("record run")
	}
	return res, err
}

func (s *Service) run(ctx context.Context, req Request, rec *recorder.RunRecord) (*Result, error) {
	start, end, err := validate(req)
	if err != nil {
		rec.Status = recorder.StatusInvalidInput
		return nil, err
	}

	series, err := s.Source.Collect(ctx, req.Ticker, start, end)
	if err != nil {
		rec.Status = recorder.StatusFetchFailed
		return nil, err
	}
	rec.Rows = series.Len()
	rec.Source = series.Source

	series = calculator.Enrich(series)

	dec, err := seasonal.DecomposeSeries(series)
	if err != nil {
		return nil, fmt.Errorf("decompose %s: %w", req.Ticker, err)
	}

	priceChart, err := chart.RenderPrice(series, s.ChartSize)
	if err != nil {
		return nil, fmt.Errorf("render price chart: %w", err)
	}
	decChart, err := chart.RenderDecomposition(dec, s.ChartSize)
	if err != nil {
		return nil, fmt.Errorf("render decomposition chart: %w", err)
	}

	rng, err := calculator.Calculate52WeekSummary(series.Bars)
	if err != nil {
		log.Warn().Err(err).Str("ticker", req.Ticker).Msg("52-week range unavailable")
	}

	return &Result{
		RunID:              rec.ID,
		Status:             StatusCompleted,
		Series:             series,
		Decomposition:      dec,
		Range:              rng,
		PriceChart:         priceChart,
		DecompositionChart: decChart,
	}, nil
}

func validate(req Request) (start, end time.Time, err error) {
	if !validation.ValidTicker(req.Ticker) {
		return start, end, &ValidationError{Status: StatusInvalidTicker}
	}
	if !validation.ValidDate(req.StartDate) || !validation.ValidDate(req.EndDate) {
		return start, end, &ValidationError{Status: StatusInvalidDate}
	}
	start, _ = validation.ParseDate(req.StartDate)
	end, _ = validation.ParseDate(req.EndDate)
	if start.After(end) {
		return start, end, &ValidationError{Status: StatusInvalidDateRange}
	}
	return start, end, nil
}
