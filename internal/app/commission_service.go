package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/easel/internal/core/commission"
	"github.com/example/easel/internal/core/mapper"
	"github.com/example/easel/internal/core/schema"
	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/primary"
	"github.com/example/easel/internal/ports/secondary"
)

// CommissionServiceImpl implements the CommissionService interface.
type CommissionServiceImpl struct {
	store   *PersistenceService
	images  secondary.ImageStore
	trigger *SyncTrigger
	log     *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewCommissionService creates a new CommissionService with injected dependencies.
func NewCommissionService(
	store *PersistenceService,
	images secondary.ImageStore,
	trigger *SyncTrigger,
	log *zap.Logger,
) *CommissionServiceImpl {
	return &CommissionServiceImpl{
		store:   store,
		images:  images,
		trigger: trigger,
		log:     log,
		now:     time.Now,
		newID:   commission.NewID,
	}
}

var _ primary.CommissionService = (*CommissionServiceImpl)(nil)

// CreateCommission creates a pending, unpaid commission for an existing client.
func (s *CommissionServiceImpl) CreateCommission(ctx context.Context, req primary.CreateCommissionRequest) (*models.Commission, error) {
	if strings.TrimSpace(req.Type) == "" {
		return nil, fmt.Errorf("commission type cannot be empty")
	}
	if req.PriceCents < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	rec, err := s.store.LoadClient(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("client %s: %w", req.ClientID, ErrClientNotFound)
	}
	client, err := mapper.ClientToDomain(*rec)
	if err != nil {
		return nil, fmt.Errorf("failed to read client %s: %w", req.ClientID, err)
	}

	now := s.now()
	c := commission.NewCommission(commission.NewCommissionInput{
		ID:          s.newID(),
		Client:      client.Snapshot(),
		Type:        strings.TrimSpace(req.Type),
		PriceCents:  req.PriceCents,
		Description: req.Description,
	}, now)

	if err := s.save(ctx, c, now); err != nil {
		return nil, err
	}
	s.trigger.Trigger(ctx)
	return &c, nil
}

// GetCommission retrieves a commission from either bucket.
func (s *CommissionServiceImpl) GetCommission(ctx context.Context, commissionID string) (*models.Commission, error) {
	c, err := s.load(ctx, commissionID)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.LoadClient(ctx, c.Client.ID)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		if client, err := mapper.ClientToDomain(*rec); err == nil {
			c.Client = client.Snapshot()
		}
	}
	return &c, nil
}

// ListCommissions lists commissions, newest first.
func (s *CommissionServiceImpl) ListCommissions(ctx context.Context, filters primary.CommissionFilters) (*primary.CommissionList, error) {
	contents, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	v := buildView(contents)

	out := make([]models.Commission, 0, len(v.Commissions))
	for _, c := range v.Commissions {
		if filters.Status != "" && c.Status != filters.Status {
			continue
		}
		if filters.ClientID != "" && c.Client.ID != filters.ClientID {
			continue
		}
		out = append(out, c)
	}
	return &primary.CommissionList{Commissions: out, Skipped: v.Skipped}, nil
}

// UpdateCommission updates the descriptive fields of a commission.
func (s *CommissionServiceImpl) UpdateCommission(ctx context.Context, req primary.UpdateCommissionRequest) (*models.Commission, error) {
	c, err := s.load(ctx, req.CommissionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		t := strings.TrimSpace(*req.Type)
		if t == "" {
			return nil, fmt.Errorf("commission type cannot be empty")
		}
		c.Type = t
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, fmt.Errorf("price cannot be negative")
		}
		c.PriceCents = *req.PriceCents
	}
	if req.Description != nil {
		c.Description = *req.Description
	}

	if err := s.save(ctx, c, s.now()); err != nil {
		return nil, err
	}
	s.trigger.Trigger(ctx)
	return &c, nil
}

// StartCommission moves a pending commission to In Progress.
func (s *CommissionServiceImpl) StartCommission(ctx context.Context, commissionID string) (*models.Commission, error) {
	return s.transition(ctx, commissionID, models.StatusInProgress)
}

// CompleteCommission marks an in-progress commission Completed.
func (s *CommissionServiceImpl) CompleteCommission(ctx context.Context, commissionID string) (*models.Commission, error) {
	return s.transition(ctx, commissionID, models.StatusCompleted)
}

// ReopenCommission marks a completed commission incomplete again.
func (s *CommissionServiceImpl) ReopenCommission(ctx context.Context, commissionID string) (*models.Commission, error) {
	return s.transition(ctx, commissionID, models.StatusPending)
}

func (s *CommissionServiceImpl) transition(ctx context.Context, commissionID string, to models.CommissionStatus) (*models.Commission, error) {
	c, err := s.load(ctx, commissionID)
	if err != nil {
		return nil, err
	}

	guard := commission.CanTransition(commission.TransitionContext{
		CommissionID: commissionID,
		From:         c.Status,
		To:           to,
	})
	if !guard.Allowed {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, guard.Reason)
	}

	now := s.now()
	result := commission.ApplyStatusTransition(c, to, now)
	if err := s.save(ctx, result.Commission, now); err != nil {
		return nil, err
	}
	if result.MovesBucket() {
		s.log.Info("commission moved",
			zap.String("id", commissionID),
			zap.String("from", string(result.FromBucket)),
			zap.String("to", string(result.ToBucket)),
		)
	}
	s.trigger.Trigger(ctx)
	return &result.Commission, nil
}

// SetPaymentStatus changes the payment status at any workflow stage.
func (s *CommissionServiceImpl) SetPaymentStatus(ctx context.Context, commissionID string, status models.PaymentStatus) (*models.Commission, error) {
	if _, err := mapper.PaymentToStorage(commissionID, status); err != nil {
		return nil, err
	}
	c, err := s.load(ctx, commissionID)
	if err != nil {
		return nil, err
	}
	c.PaymentStatus = status
	if err := s.save(ctx, c, s.now()); err != nil {
		return nil, err
	}
	s.trigger.Trigger(ctx)
	return &c, nil
}

// DeleteCommission removes a commission from whichever bucket holds it.
func (s *CommissionServiceImpl) DeleteCommission(ctx context.Context, commissionID string) error {
	_, bucket, err := s.store.LoadCommission(ctx, commissionID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCommission(ctx, commissionID, bucket); err != nil {
		return err
	}
	s.trigger.Trigger(ctx)
	return nil
}

// AttachImage validates and stores a reference image, then records it on
// the commission.
func (s *CommissionServiceImpl) AttachImage(ctx context.Context, req primary.AttachImageRequest) (*models.Commission, error) {
	if err := schema.ValidateFilename(req.Filename); err != nil {
		return nil, err
	}
	mime, err := schema.ValidateImageData(req.Data)
	if err != nil {
		return nil, err
	}

	c, err := s.load(ctx, req.CommissionID)
	if err != nil {
		return nil, err
	}
	ref, err := s.images.SaveImage(ctx, c.Client.Name, c.ID, req.Filename, req.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}
	s.log.Debug("image stored", zap.String("commission", c.ID), zap.String("path", ref), zap.String("mime", mime))

	c.References = append(c.References, models.Reference{Type: models.ReferenceImage, URL: ref})
	if err := s.save(ctx, c, s.now()); err != nil {
		return nil, err
	}
	s.trigger.Trigger(ctx)
	return &c, nil
}

func (s *CommissionServiceImpl) load(ctx context.Context, commissionID string) (models.Commission, error) {
	rec, _, err := s.store.LoadCommission(ctx, commissionID)
	if err != nil {
		return models.Commission{}, err
	}
	c, err := mapper.CommissionToDomain(*rec)
	if err != nil {
		return models.Commission{}, fmt.Errorf("failed to read commission %s: %w", commissionID, err)
	}
	return c, nil
}

func (s *CommissionServiceImpl) save(ctx context.Context, c models.Commission, now time.Time) error {
	rec, err := mapper.CommissionToStorage(c, now)
	if err != nil {
		return err
	}
	return s.store.SaveCommission(ctx, rec)
}
