package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/scheduler"
)

var refreshOnce bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the cache files of the configured tickers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		sched := scheduler.NewScheduler(ctx, a.Collector, cfg.Form.Tickers, cfg.Schedule.LookbackDays)
		if refreshOnce {
			if failed := sched.RunNow(); failed > 0 {
				return fmt.Errorf("%d of %d tickers failed to refresh", failed, len(cfg.Form.Tickers))
			}
			return nil
		}

		if cfg.Schedule.RefreshCron == "" {
			return fmt.Errorf("schedule.refresh_cron is empty; use --once")
		}
		if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		log.Info().Str("cron", cfg.Schedule.RefreshCron).Msg("refresh job running. Press Ctrl+C to stop.")
		<-ctx.Done()
		log.Info().Msg("shutdown signal received, stopping...")
		return nil
	},
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshOnce, "once", false, "refresh immediately and exit")
}
