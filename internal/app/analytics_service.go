package app

import (
	"context"

	"github.com/example/easel/internal/core/analytics"
	"github.com/example/easel/internal/ports/primary"
)

// AnalyticsServiceImpl implements the AnalyticsService interface.
type AnalyticsServiceImpl struct {
	store *PersistenceService
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store *PersistenceService) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{store: store}
}

var _ primary.AnalyticsService = (*AnalyticsServiceImpl)(nil)

// Report computes figures over every readable commission.
func (s *AnalyticsServiceImpl) Report(ctx context.Context) (*primary.AnalyticsReport, error) {
	contents, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	v := buildView(contents)
	return &primary.AnalyticsReport{
		Summary: analytics.Summarize(v.Commissions),
		Monthly: analytics.MonthlyEarnings(v.Commissions),
		Skipped: v.Skipped,
	}, nil
}
