package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Cache.Dir)
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT", "AMZN"}, cfg.Form.Tickers)
	assert.Equal(t, "2021-01-01", cfg.Form.StartDate)
	assert.Equal(t, "2021-12-31", cfg.Form.EndDate)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Database.SQLitePath)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
cache:
  dir: /tmp/cache
form:
  tickers: [TSLA]
  start_date: "2020-01-01"
schedule:
  refresh_cron: "0 0 1 * * *"
log:
  format: json
`)
	t.Setenv("SQLITE_PATH", "/tmp/runs.db")
	t.Setenv("CRON_REFRESH", "0 0 2 * * *")
	t.Setenv("LOOKBACK_DAYS", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cache", cfg.Cache.Dir)
	assert.Equal(t, []string{"TSLA"}, cfg.Form.Tickers)
	assert.Equal(t, "2020-01-01", cfg.Form.StartDate)
	assert.Equal(t, "/tmp/runs.db", cfg.Database.SQLitePath)
	assert.Equal(t, "0 0 2 * * *", cfg.Schedule.RefreshCron)
	assert.Equal(t, 30, cfg.Schedule.LookbackDays)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "form: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"lowercase ticker", func(c *Config) { c.Form.Tickers = []string{"aapl"} }},
		{"bad start", func(c *Config) { c.Form.StartDate = "2021/01/01" }},
		{"bad end", func(c *Config) { c.Form.EndDate = "2021-02-30" }},
		{"zero chart", func(c *Config) { c.Chart.WidthInches = -1 }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load("../../configs/config.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	// refresh job is opt-in; it narrows cache files to lookback_days
	assert.Empty(t, cfg.Schedule.RefreshCron)
	assert.Equal(t, []string{"AAPL", "GOOG", "MSFT", "AMZN"}, cfg.Form.Tickers)
}
