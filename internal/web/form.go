package web

import (
	"context"
	"encoding/base64"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/analysis"
	"StockAnalyzer/internal/calculator"
	"StockAnalyzer/internal/recorder"
)

// Runner executes one analysis; *analysis.Service satisfies it.
type Runner interface {
	Run(ctx context.Context, req analysis.Request) (*analysis.Result, error)
}

// FormDefaults are the values the form starts with.
type FormDefaults struct {
	Tickers   []string
	StartDate string
	EndDate   string
}

// FormState is everything the page template renders. Each request builds its own.
type FormState struct {
	Tickers   []string
	Ticker    string
	StartDate string
	EndDate   string

	Status    string
	Failed    bool
	Range     *calculator.PriceRange
	Rows      int
	Source    string
	PriceImg  template.URL
	SeasonImg template.URL
	Runs      []recorder.RunRecord
}

// FormHandler serves the analysis form.
type FormHandler struct {
	Runner   Runner
	Recorder recorder.Recorder
	Defaults FormDefaults
}

// NewFormHandler creates a FormHandler. rec may be nil.
func NewFormHandler(runner Runner, rec recorder.Recorder, defaults FormDefaults) *FormHandler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &FormHandler{Runner: runner, Recorder: rec, Defaults: defaults}
}

func (h *FormHandler) newState() *FormState {
	st := &FormState{
		Tickers:   h.Defaults.Tickers,
		StartDate: h.Defaults.StartDate,
		EndDate:   h.Defaults.EndDate,
	}
	if len(h.Defaults.Tickers) > 0 {
		st.Ticker = h.Defaults.Tickers[0]
	}
	return st
}

// Show renders the empty form.
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, h.newState())
}

// Analyze runs the analysis for the submitted form and renders the outcome.
func (h *FormHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	st := h.newState()
	// validated verbatim; surrounding whitespace makes the input invalid
	st.Ticker = r.PostForm.Get("ticker")
	st.StartDate = r.PostForm.Get("start_date")
	st.EndDate = r.PostForm.Get("end_date")

	h.apply(r.Context(), st)
	h.render(w, st)
}

// apply runs the analysis for st and copies the outcome into it.
func (h *FormHandler) apply(ctx context.Context, st *FormState) {
	res, err := h.Runner.Run(ctx, analysis.Request{
		Ticker:    st.Ticker,
		StartDate: st.StartDate,
		EndDate:   st.EndDate,
	})
	if err != nil {
		st.Status = analysis.StatusText(err)
		st.Failed = true
		return
	}
	st.Status = res.Status
	st.Range = res.Range
	st.Rows = res.Series.Len()
	st.Source = res.Series.Source
	st.PriceImg = pngDataURL(res.PriceChart)
	st.SeasonImg = pngDataURL(res.DecompositionChart)
}

func (h *FormHandler) render(w http.ResponseWriter, st *FormState) {
	runs, err := h.Recorder.RecentRuns(10)
	if err != nil {
		log.Warn().Err(err).Msg("load recent runs")
	}
	st.Runs = runs

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, st); err != nil {
		log.Error().Err(err).Msg("render form")
	}
}

func pngDataURL(img []byte) template.URL {
	if len(img) == 0 {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img))
}
