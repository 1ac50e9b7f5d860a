package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/easel/internal/wire"
)

// SyncCmd returns the sync command
func SyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reload every client and commission from disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			return wire.ReportAdapter().Sync(context.Background(), verbose)
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show details for skipped records")
	return cmd
}

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep reloading on an interval",
		Long: `Keep reloading clients and commissions on an interval until the time
limit passes or the command is interrupted.

Interval and limit default to sync.poll_interval and sync.poll_duration from
easel.yaml. With --metrics-addr, Prometheus metrics are served at /metrics
while watching.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			interval := cfg.Sync.PollInterval
			limit := cfg.Sync.PollDuration
			addr := cfg.Metrics.Addr
			if cmd.Flags().Changed("interval") {
				interval, _ = cmd.Flags().GetDuration("interval")
			}
			if cmd.Flags().Changed("limit") {
				limit, _ = cmd.Flags().GetDuration("limit")
			}
			if cmd.Flags().Changed("metrics-addr") {
				addr, _ = cmd.Flags().GetString("metrics-addr")
			}
			verbose, _ := cmd.Flags().GetBool("verbose")

			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr != "" {
				srv := newMetricsServer(addr)
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						wire.Logger().Error("metrics server stopped", zap.String("addr", addr), zap.Error(err))
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				fmt.Fprintf(cmd.OutOrStdout(), "Serving metrics on http://%s/metrics\n", addr)
			}

			return wire.ReportAdapter().Watch(ctx, interval, limit, verbose)
		},
	}
	cmd.Flags().Duration("interval", 0, "Time between reloads (default from config)")
	cmd.Flags().Duration("limit", 0, "Stop after this long (default from config)")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().BoolP("verbose", "v", false, "Show details for skipped records")
	return cmd
}

func newMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
