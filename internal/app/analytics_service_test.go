package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/primary"
)

func TestAnalyticsService_Report(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestCommissionEnv(t)
	a, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Sketch", PriceCents: 1000})
	require.NoError(t, err)
	_, err = env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Icon", PriceCents: 3000})
	require.NoError(t, err)
	_, err = env.commissions.SetPaymentStatus(ctx, a.ID, models.PaymentFullyPaid)
	require.NoError(t, err)
	env.records.putRaw(models.BucketPending, "bad", `{"id":"bad","price_cents":5,"payment_status":"??"}`)

	report, err := NewAnalyticsService(env.store).Report(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.TotalCommissions)
	assert.Equal(t, 2, report.Summary.Pending)
	assert.Equal(t, int64(1000), report.Summary.TotalEarningsCents)
	assert.Equal(t, int64(4000), report.Summary.PotentialCents)
	assert.Equal(t, int64(2000), report.Summary.AveragePriceCents)
	assert.Equal(t, int64(1000), report.Monthly["2024-06"])
	assert.Len(t, report.Skipped, 1)
}
