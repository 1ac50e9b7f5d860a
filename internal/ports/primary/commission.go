package primary

import (
	"context"

	"github.com/example/easel/internal/models"
)

// CommissionService defines the primary port for commission operations.
type CommissionService interface {
	// CreateCommission creates a pending, unpaid commission for a client.
	CreateCommission(ctx context.Context, req CreateCommissionRequest) (*models.Commission, error)

	// GetCommission retrieves a commission from either bucket.
	GetCommission(ctx context.Context, commissionID string) (*models.Commission, error)

	// ListCommissions lists commissions with optional filters.
	ListCommissions(ctx context.Context, filters CommissionFilters) (*CommissionList, error)

	// UpdateCommission updates the descriptive fields of a commission.
	UpdateCommission(ctx context.Context, req UpdateCommissionRequest) (*models.Commission, error)

	// StartCommission moves a pending commission to In Progress.
	StartCommission(ctx context.Context, commissionID string) (*models.Commission, error)

	// CompleteCommission marks an in-progress commission Completed.
	CompleteCommission(ctx context.Context, commissionID string) (*models.Commission, error)

	// ReopenCommission marks a completed commission incomplete again.
	ReopenCommission(ctx context.Context, commissionID string) (*models.Commission, error)

	// SetPaymentStatus changes the payment status at any workflow stage.
	SetPaymentStatus(ctx context.Context, commissionID string, status models.PaymentStatus) (*models.Commission, error)

	// DeleteCommission removes a commission from its bucket.
	DeleteCommission(ctx context.Context, commissionID string) error

	// AttachImage stores a reference image and adds it to the commission.
	AttachImage(ctx context.Context, req AttachImageRequest) (*models.Commission, error)
}

// CreateCommissionRequest contains parameters for creating a commission.
type CreateCommissionRequest struct {
	ClientID    string
	Type        string
	PriceCents  int64
	Description string
}

// UpdateCommissionRequest contains parameters for updating a commission.
// Nil fields are left unchanged.
type UpdateCommissionRequest struct {
	CommissionID string
	Type         *string
	PriceCents   *int64
	Description  *string
}

// AttachImageRequest contains parameters for attaching a reference image.
type AttachImageRequest struct {
	CommissionID string
	Filename     string
	Data         []byte
}

// CommissionFilters contains filter options for listing commissions.
type CommissionFilters struct {
	Status   models.CommissionStatus
	ClientID string
}

// CommissionList is a lenient listing with skip diagnostics.
type CommissionList struct {
	Commissions []models.Commission
	Skipped     []models.SkipDiagnostic
}
