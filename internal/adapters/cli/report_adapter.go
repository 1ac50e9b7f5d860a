package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/example/easel/internal/ports/primary"
)

// ReportAdapter prints analytics and sync results.
type ReportAdapter struct {
	analytics primary.AnalyticsService
	sync      primary.SyncService
	out       io.Writer
}

// NewReportAdapter creates a new ReportAdapter.
func NewReportAdapter(analytics primary.AnalyticsService, sync primary.SyncService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{analytics: analytics, sync: sync, out: out}
}

// Stats prints the dashboard figures.
func (a *ReportAdapter) Stats(ctx context.Context, verbose bool) error {
	report, err := a.analytics.Report(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute stats: %w", err)
	}
	s := report.Summary

	fmt.Fprintf(a.out, "\nCommissions: %d (%d pending, %d in progress, %d completed)\n",
		s.TotalCommissions, s.Pending, s.InProgress, s.Completed)
	fmt.Fprintf(a.out, "Earned:      %s\n", FormatCents(s.TotalEarningsCents))
	fmt.Fprintf(a.out, "Potential:   %s\n", FormatCents(s.PotentialCents))
	fmt.Fprintf(a.out, "Average:     %s\n", FormatCents(s.AveragePriceCents))
	if s.Completed > 0 {
		fmt.Fprintf(a.out, "Avg. days to complete: %.1f\n", s.AverageDaysToComplete)
	}

	if len(report.Monthly) > 0 {
		months := make([]string, 0, len(report.Monthly))
		for m := range report.Monthly {
			months = append(months, m)
		}
		sort.Strings(months)
		fmt.Fprintln(a.out, "\nMonthly earnings:")
		for _, m := range months {
			fmt.Fprintf(a.out, "  %s  %s\n", m, FormatCents(report.Monthly[m]))
		}
	}
	fmt.Fprintln(a.out)
	printSkipped(a.out, report.Skipped, verbose)
	return nil
}

// Sync reloads everything once and prints the outcome.
func (a *ReportAdapter) Sync(ctx context.Context, verbose bool) error {
	a.sync.SyncNow(ctx)
	state := a.sync.State()
	if state.LastError != "" {
		return fmt.Errorf("sync failed: %s", state.LastError)
	}
	fmt.Fprintf(a.out, "%s Synced %d clients and %d commissions\n", okMark, len(state.Clients), len(state.Commissions))
	printSkipped(a.out, state.Skipped, verbose)
	return nil
}

// Watch polls until limit elapses or ctx is cancelled, then prints the
// last published state.
func (a *ReportAdapter) Watch(ctx context.Context, interval, limit time.Duration, verbose bool) error {
	fmt.Fprintf(a.out, "Watching for changes every %s (limit %s)\n", interval, limit)
	a.sync.Poll(ctx, interval, limit)

	state := a.sync.State()
	if state.LastError != "" {
		return fmt.Errorf("last sync failed: %s", state.LastError)
	}
	fmt.Fprintf(a.out, "%s %d syncs; %d clients and %d commissions as of %s\n",
		okMark, state.Runs, len(state.Clients), len(state.Commissions), state.LastSync.Format("15:04:05"))
	printSkipped(a.out, state.Skipped, verbose)
	return nil
}
