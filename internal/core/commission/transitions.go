package commission

import (
	"time"

	"github.com/example/easel/internal/models"
)

// InitialStatus returns the status of a newly created commission.
func InitialStatus() models.CommissionStatus {
	return models.StatusPending
}

// InitialPaymentStatus returns the payment status of a newly created commission.
func InitialPaymentStatus() models.PaymentStatus {
	return models.PaymentNotPaid
}

// StatusTransitionResult is the commission after a transition plus the
// bucket move the transition implies, if any.
type StatusTransitionResult struct {
	Commission models.Commission
	FromBucket models.Bucket
	ToBucket   models.Bucket
}

// MovesBucket reports whether the transition relocates the stored record.
func (r StatusTransitionResult) MovesBucket() bool {
	return r.FromBucket != r.ToBucket
}

// ApplyStatusTransition applies a workflow transition.
// Completing records the display date as the original date and now as the
// completed date. Reopening restores the original date and clears both.
func ApplyStatusTransition(c models.Commission, newStatus models.CommissionStatus, now time.Time) StatusTransitionResult {
	result := StatusTransitionResult{FromBucket: c.Bucket()}

	switch {
	case newStatus == models.StatusCompleted && c.Status != models.StatusCompleted:
		c.OriginalDate = c.Date
		c.CompletedDate = now
	case newStatus != models.StatusCompleted && c.Status == models.StatusCompleted:
		if !c.OriginalDate.IsZero() {
			c.Date = c.OriginalDate
		}
		c.OriginalDate = time.Time{}
		c.CompletedDate = time.Time{}
	}
	c.Status = newStatus

	result.Commission = c
	result.ToBucket = c.Bucket()
	return result
}

// NewCommissionInput carries the user-supplied fields of a new commission.
type NewCommissionInput struct {
	ID          string
	Client      models.ClientSnapshot
	Type        string
	PriceCents  int64
	Description string
	References  []models.Reference
}

// NewCommission builds a pending, unpaid commission dated today.
func NewCommission(in NewCommissionInput, now time.Time) models.Commission {
	return models.Commission{
		ID:            in.ID,
		Client:        in.Client,
		Type:          in.Type,
		PriceCents:    in.PriceCents,
		Description:   in.Description,
		References:    in.References,
		Date:          now,
		PaymentStatus: InitialPaymentStatus(),
		Status:        InitialStatus(),
	}
}
