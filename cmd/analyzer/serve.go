package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"StockAnalyzer/internal/scheduler"
	"StockAnalyzer/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis form over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Schedule.RefreshCron != "" {
			sched := scheduler.NewScheduler(ctx, a.Collector, cfg.Form.Tickers, cfg.Schedule.LookbackDays)
			if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()
		}

		form := web.NewFormHandler(a.Service, a.Recorder, web.FormDefaults{
			Tickers:   cfg.Form.Tickers,
			StartDate: cfg.Form.StartDate,
			EndDate:   cfg.Form.EndDate,
		})
		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           web.NewRouter(form, a.Metrics.Handler()),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.Server.Addr).Msg("http server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("shutdown signal received, stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
