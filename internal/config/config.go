package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"StockAnalyzer/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Cache struct {
		Dir string `yaml:"dir"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Form struct {
		Tickers   []string `yaml:"tickers"`
		StartDate string   `yaml:"start_date"`
		EndDate   string   `yaml:"end_date"`
	} `yaml:"form"`
	Chart struct {
		WidthInches  float64 `yaml:"width_inches"`
		HeightInches float64 `yaml:"height_inches"`
	} `yaml:"chart"`
	Schedule struct {
		RefreshCron  string `yaml:"refresh_cron"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Dir    string `yaml:"dir"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// .env is optional
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOOKBACK_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.LookbackDays = n
		}
	}

	// Defaults
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = "data"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Form.Tickers) == 0 {
		cfg.Form.Tickers = []string{"AAPL", "GOOG", "MSFT", "AMZN"}
	}
	if cfg.Form.StartDate == "" {
		cfg.Form.StartDate = "2021-01-01"
	}
	if cfg.Form.EndDate == "" {
		cfg.Form.EndDate = "2021-12-31"
	}
	if cfg.Chart.WidthInches == 0 {
		cfg.Chart.WidthInches = 8.5
	}
	if cfg.Chart.HeightInches == 0 {
		cfg.Chart.HeightInches = 9.5
	}
	if cfg.Schedule.LookbackDays == 0 {
		cfg.Schedule.LookbackDays = 3 * 365
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "pretty"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	for _, t := range c.Form.Tickers {
		if !validation.ValidTicker(t) {
			return fmt.Errorf("form.tickers: invalid ticker %q", t)
		}
	}
	if !validation.ValidDate(c.Form.StartDate) {
		return fmt.Errorf("form.start_date: invalid date %q", c.Form.StartDate)
	}
	if !validation.ValidDate(c.Form.EndDate) {
		return fmt.Errorf("form.end_date: invalid date %q", c.Form.EndDate)
	}
	if c.Chart.WidthInches <= 0 || c.Chart.HeightInches <= 0 {
		return fmt.Errorf("chart size must be positive")
	}
	if c.Schedule.LookbackDays <= 0 {
		return fmt.Errorf("schedule.lookback_days must be positive")
	}
	switch c.Log.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("log.format must be json or pretty, got %q", c.Log.Format)
	}
	return nil
}
