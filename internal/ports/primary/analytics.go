package primary

import (
	"context"

	"github.com/example/easel/internal/core/analytics"
	"github.com/example/easel/internal/models"
)

// AnalyticsService defines the primary port for business figures.
type AnalyticsService interface {
	// Report computes figures over every readable commission.
	Report(ctx context.Context) (*AnalyticsReport, error)
}

// AnalyticsReport is the summary plus per-month earnings.
type AnalyticsReport struct {
	Summary analytics.Summary
	Monthly map[string]int64
	Skipped []models.SkipDiagnostic
}
