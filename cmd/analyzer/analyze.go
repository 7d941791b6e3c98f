package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"StockAnalyzer/internal/analysis"
)

var (
	analyzeTicker string
	analyzeStart  string
	analyzeEnd    string
	analyzeOut    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis and write the charts as PNG files",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		defer a.Close()

		req := analysis.Request{Ticker: analyzeTicker, StartDate: analyzeStart, EndDate: analyzeEnd}
		if req.Ticker == "" {
			req.Ticker = cfg.Form.Tickers[0]
		}
		if req.StartDate == "" {
			req.StartDate = cfg.Form.StartDate
		}
		if req.EndDate == "" {
			req.EndDate = cfg.Form.EndDate
		}

		res, err := a.Service.Run(cmd.Context(), req)
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), analysis.StatusText(err))
			return err
		}

		if err := os.MkdirAll(analyzeOut, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		files := map[string][]byte{
			req.Ticker + "_price.png":         res.PriceChart,
			req.Ticker + "_decomposition.png": res.DecompositionChart,
		}
		for name, data := range files {
			path := filepath.Join(analyzeOut, name)
			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d rows from %s)\n", res.Status, res.Series.Len(), res.Series.Source)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTicker, "ticker", "", "ticker symbol, 1-5 uppercase letters (default: first configured ticker)")
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "start date YYYY-MM-DD (default: form.start_date)")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "end date YYYY-MM-DD (default: form.end_date)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "charts", "output directory for PNG files")
}
