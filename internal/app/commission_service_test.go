package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/easel/internal/core/schema"
	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/primary"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newTestCommissionEnv(t *testing.T) (*testEnv, *clock) {
	t.Helper()
	env := newTestEnv(zap.NewNop())
	clk := &clock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	env.commissions.now = clk.now
	env.clients.now = clk.now
	env.store.now = clk.now

	ids := []string{"cm1", "cm2", "cm3", "cm4"}
	env.commissions.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	env.clients.newID = func() string { return "cl1" }

	_, err := env.clients.CreateClient(context.Background(), primary.CreateClientRequest{Name: "Ada", Contact: "@ada_draws"})
	require.NoError(t, err)
	return env, clk
}

// clock is a manually advanced time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestCommissionService_CreateCommission(t *testing.T) {
	ctx := context.Background()
	env, clk := newTestCommissionEnv(t)

	c, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{
		ClientID:   "cl1",
		Type:       "Portrait",
		PriceCents: 4999,
	})
	require.NoError(t, err)

	assert.Equal(t, "cm1", c.ID)
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, models.PaymentNotPaid, c.PaymentStatus)
	assert.Equal(t, clk.t, c.Date)
	assert.Equal(t, "Ada", c.Client.Name)

	stored := env.records.stored(models.BucketPending, "cm1")
	assert.Equal(t, int64(4999), stored.PriceCents)
	assert.Equal(t, models.StoragePaymentNotPaid, stored.PaymentStatus)

	// Successful writes refresh the published state.
	require.Len(t, env.coordinator.State().Commissions, 1)
}

func TestCommissionService_CreateCommissionUnknownClient(t *testing.T) {
	env, _ := newTestCommissionEnv(t)

	_, err := env.commissions.CreateCommission(context.Background(), primary.CreateCommissionRequest{
		ClientID: "ghost",
		Type:     "Portrait",
	})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestCommissionService_CreateCommissionValidation(t *testing.T) {
	env, _ := newTestCommissionEnv(t)
	ctx := context.Background()

	_, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "  "})
	assert.Error(t, err)

	_, err = env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Icon", PriceCents: -1})
	assert.Error(t, err)
}

func TestCommissionService_WorkflowMovesBuckets(t *testing.T) {
	ctx := context.Background()
	env, clk := newTestCommissionEnv(t)
	created, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Portrait", PriceCents: 100})
	require.NoError(t, err)

	clk.advance(24 * time.Hour)
	started, err := env.commissions.StartCommission(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, started.Status)
	assert.True(t, env.records.has(models.BucketPending, created.ID))

	clk.advance(48 * time.Hour)
	completed, err := env.commissions.CompleteCommission(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	assert.True(t, created.Date.Equal(completed.OriginalDate))
	assert.True(t, clk.t.Equal(completed.CompletedDate))
	assert.False(t, env.records.has(models.BucketPending, created.ID))
	assert.True(t, env.records.has(models.BucketCompleted, created.ID))
}

func TestCommissionService_ReopenRestoresOriginalDate(t *testing.T) {
	ctx := context.Background()
	env, clk := newTestCommissionEnv(t)
	created, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Portrait", PriceCents: 100})
	require.NoError(t, err)

	clk.advance(time.Hour)
	_, err = env.commissions.StartCommission(ctx, created.ID)
	require.NoError(t, err)
	clk.advance(72 * time.Hour)
	_, err = env.commissions.CompleteCommission(ctx, created.ID)
	require.NoError(t, err)

	clk.advance(time.Hour)
	reopened, err := env.commissions.ReopenCommission(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, reopened.Status)
	assert.True(t, created.Date.Equal(reopened.Date), "date %v, want %v", reopened.Date, created.Date)
	assert.True(t, reopened.OriginalDate.IsZero())
	assert.True(t, reopened.CompletedDate.IsZero())
	assert.True(t, env.records.has(models.BucketPending, created.ID))
	assert.False(t, env.records.has(models.BucketCompleted, created.ID))

	got, err := env.commissions.GetCommission(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, created.Date.Equal(got.Date))
}

func TestCommissionService_RejectsSkippedTransition(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestCommissionEnv(t)
	created, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Portrait"})
	require.NoError(t, err)

	_, err = env.commissions.CompleteCommission(ctx, created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.commissions.ReopenCommission(ctx, created.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCommissionService_SetPaymentStatus(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestCommissionEnv(t)
	created, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Portrait"})
	require.NoError(t, err)

	paid, err := env.commissions.SetPaymentStatus(ctx, created.ID, models.PaymentHalfPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentHalfPaid, paid.PaymentStatus)
	assert.Equal(t, models.StoragePaymentHalfPaid, env.records.stored(models.BucketPending, created.ID).PaymentStatus)

	_, err = env.commissions.SetPaymentStatus(ctx, created.ID, models.PaymentStatus("paid-in-exposure"))
	assert.Error(t, err)
}

func TestCommissionService_UpdateCommission(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestCommissionEnv(t)
	created, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Portrait", PriceCents: 100})
	require.NoError(t, err)

	price := int64(2500)
	desc := "Full body, two characters"
	updated, err := env.commissions.UpdateCommission(ctx, primary.UpdateCommissionRequest{
		CommissionID: created.ID,
		PriceCents:   &price,
		Description:  &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2500), updated.PriceCents)
	assert.Equal(t, "Portrait", updated.Type)
	assert.Equal(t, desc, env.records.stored(models.BucketPending, created.ID).Description)
}

func TestCommissionService_ListCommissionsFilters(t *testing.T) {
	ctx := context.Background()
	env, clk := newTestCommissionEnv(t)
	first, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Sketch"})
	require.NoError(t, err)
	clk.advance(time.Hour)
	_, err = env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Icon"})
	require.NoError(t, err)
	_, err = env.commissions.StartCommission(ctx, first.ID)
	require.NoError(t, err)

	all, err := env.commissions.ListCommissions(ctx, primary.CommissionFilters{})
	require.NoError(t, err)
	require.Len(t, all.Commissions, 2)
	assert.Equal(t, "cm2", all.Commissions[0].ID)

	started, err := env.commissions.ListCommissions(ctx, primary.CommissionFilters{Status: models.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, started.Commissions, 1)
	assert.Equal(t, first.ID, started.Commissions[0].ID)

	none, err := env.commissions.ListCommissions(ctx, primary.CommissionFilters{ClientID: "someone-else"})
	require.NoError(t, err)
	assert.Empty(t, none.Commissions)
}

func TestCommissionService_DeleteCommission(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestCommissionEnv(t)
	created, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Portrait"})
	require.NoError(t, err)

	require.NoError(t, env.commissions.DeleteCommission(ctx, created.ID))
	assert.False(t, env.records.has(models.BucketPending, created.ID))

	err = env.commissions.DeleteCommission(ctx, created.ID)
	assert.ErrorIs(t, err, ErrCommissionNotFound)
}

func TestCommissionService_AttachImage(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestCommissionEnv(t)
	created, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Portrait"})
	require.NoError(t, err)

	c, err := env.commissions.AttachImage(ctx, primary.AttachImageRequest{
		CommissionID: created.ID,
		Filename:     "ref.png",
		Data:         pngHeader,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"images/cm1_ref.png"}, c.ImageURLs())
	assert.Equal(t, []string{"images/cm1_ref.png"}, env.records.stored(models.BucketPending, created.ID).Images)
	assert.Contains(t, env.records.images, "images/cm1_ref.png")
}

func TestCommissionService_AttachImageRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	env, _ := newTestCommissionEnv(t)
	created, err := env.commissions.CreateCommission(ctx, primary.CreateCommissionRequest{ClientID: "cl1", Type: "Portrait"})
	require.NoError(t, err)

	var verr *schema.ValidationError
	_, err = env.commissions.AttachImage(ctx, primary.AttachImageRequest{CommissionID: created.ID, Filename: "notes.txt", Data: pngHeader})
	assert.ErrorAs(t, err, &verr)

	_, err = env.commissions.AttachImage(ctx, primary.AttachImageRequest{CommissionID: created.ID, Filename: "ref.png", Data: []byte("plain text, not an image")})
	assert.ErrorAs(t, err, &verr)

	assert.Empty(t, env.records.images)
}
