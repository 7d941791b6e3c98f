package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"StockAnalyzer/internal/config"
	"StockAnalyzer/internal/logger"
)

var (
	cfgPath string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Stock data analyzer: cached daily prices, moving averages, Bollinger Bands and seasonal decomposition",
	Long: `Stock data analyzer

Commands:
    serve     - browser form on server.addr
    analyze   - one-shot analysis, writes the two charts as PNG files
    refresh   - refresh cache files for the configured tickers (cron or --once)
    history   - list recent analysis runs
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(historyCmd)
}

func initConfig() error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if err := logger.Init(logger.Config{Level: c.Log.Level, Format: c.Log.Format, Dir: c.Log.Dir}); err != nil {
		return err
	}
	cfg = c
	return nil
}
