package collector

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAnalyzer/internal/model"
)

func TestCacheStore_RoundTripFormat(t *testing.T) {
	store := NewCacheStore(t.TempDir())
	bars := []model.OHLCV{
		{Time: day("2021-01-04"), Open: 133.52, High: 133.61, Low: 126.76, Close: 129.41, Volume: 143301900},
		{Time: day("2021-01-05"), Open: 128.89, High: 131.74, Low: 128.43, Close: 131.01, Volume: 97664900},
	}
	require.NoError(t, store.Save("AAPL", bars))

	raw, err := os.ReadFile(store.Path("AAPL"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Open,High,Low,Close,Volume", lines[0])
	assert.Equal(t, "2021-01-04,133.52,133.61,126.76,129.41,143301900", lines[1])

	got, exists, err := store.Load("AAPL")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, bars, got)
}

func TestCacheStore_LoadMissing(t *testing.T) {
	store := NewCacheStore(t.TempDir())
	bars, exists, err := store.Load("NONE")
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.Nil(t, bars)
}

func TestCacheStore_RejectsUnorderedDates(t *testing.T) {
	store := NewCacheStore(t.TempDir())
	content := "Date,Open,High,Low,Close,Volume\n" +
		"2021-01-05,1,1,1,1,1\n" +
		"2021-01-05,1,1,1,1,1\n"
	require.NoError(t, os.WriteFile(store.Path("DUP"), []byte(content), 0644))

	_, exists, err := store.Load("DUP")
	assert.True(t, exists)
	assert.Error(t, err)
}

func TestCacheStore_AcceptsFloatVolume(t *testing.T) {
	store := NewCacheStore(t.TempDir())
	content := "Date,Open,High,Low,Close,Volume\n2021-01-05,1,2,0.5,1.5,1200.0\n"
	require.NoError(t, os.WriteFile(store.Path("VOL"), []byte(content), 0644))

	bars, _, err := store.Load("VOL")
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, int64(1200), bars[0].Volume)
}

func TestCacheStore_SaveCreatesDir(t *testing.T) {
	store := NewCacheStore(t.TempDir() + "/nested/data")
	require.NoError(t, store.Save("AAPL", nil))
	bars, exists, err := store.Load("AAPL")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Empty(t, bars)
}

func TestNormalizeBars(t *testing.T) {
	in := []model.OHLCV{
		{Time: day("2021-01-05").Add(14 * 3600e9), Close: 2},
		{Time: day("2021-01-04").Add(14 * 3600e9), Close: 1},
		{Time: day("2021-01-05").Add(20 * 3600e9), Close: 3},
	}
	out := normalizeBars(in)
	require.Len(t, out, 2)
	assert.Equal(t, day("2021-01-04"), out[0].Time)
	assert.Equal(t, 3.0, out[1].Close)
}
