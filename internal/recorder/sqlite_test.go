package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRecorder_RecordAndList(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "runs.db"))
	require.NoError(t, err)
	defer r.Close()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	runs := []RunRecord{
		{ID: "a", Ticker: "AAPL", StartDate: "2021-01-01", EndDate: "2021-12-31", Rows: 251, Source: "yahoo", Status: StatusOK, Duration: 1500 * time.Millisecond, CreatedAt: base},
		{ID: "b", Ticker: "aapl", Status: StatusInvalidInput, Error: "Invalid Ticker", CreatedAt: base.Add(time.Minute)},
		{ID: "c", Ticker: "MSFT", StartDate: "2021-01-01", EndDate: "2021-06-30", Source: "cache", Status: StatusAnalysisFailed, Error: "insufficient data", CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range runs {
		require.NoError(t, r.RecordRun(&runs[i]))
	}

	got, err := r.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "insufficient data", got[0].Error)

	all, err := r.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	first := all[2]
	assert.Equal(t, "AAPL", first.Ticker)
	assert.Equal(t, 251, first.Rows)
	assert.Equal(t, 1500*time.Millisecond, first.Duration)
	assert.True(t, first.CreatedAt.Equal(base))
}

func TestSQLiteRecorder_DuplicateID(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordRun(&RunRecord{ID: "x", Ticker: "AAPL", Status: StatusOK}))
	assert.Error(t, r.RecordRun(&RunRecord{ID: "x", Ticker: "AAPL", Status: StatusOK}))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordRun(&RunRecord{ID: "x"}))
	runs, err := r.RecentRuns(5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, r.Close())
}
