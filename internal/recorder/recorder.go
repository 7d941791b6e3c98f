package recorder

import "time"

// Run status values.
const (
	StatusOK             = "ok"
	StatusInvalidInput   = "invalid_input"
	StatusFetchFailed    = "fetch_failed"
	StatusAnalysisFailed = "analysis_failed"
)

// RunRecord describes one analysis action triggered from the form, the CLI or the refresh job.
type RunRecord struct {
	ID        string
	Ticker    string
	StartDate string
	EndDate   string
	Rows      int
	Source    string // "cache" or fetcher name
	Status    string
	Error     string
	Duration  time.Duration
	CreatedAt time.Time
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
