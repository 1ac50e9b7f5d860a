package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/easel/internal/core/mapper"
	"github.com/example/easel/internal/core/schema"
	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/secondary"
)

// PersistenceService is the facade over the client and commission stores.
// Reads are lenient and report what they skipped; writes validate first.
type PersistenceService struct {
	clients     secondary.ClientStore
	commissions secondary.CommissionStore
	dataDir     string
	log         *zap.Logger
	now         func() time.Time
}

// NewPersistenceService creates a new PersistenceService.
func NewPersistenceService(clients secondary.ClientStore, commissions secondary.CommissionStore, dataDir string, log *zap.Logger) *PersistenceService {
	return &PersistenceService{
		clients:     clients,
		commissions: commissions,
		dataDir:     dataDir,
		log:         log,
		now:         time.Now,
	}
}

// DataDir returns the data directory backing the stores.
func (s *PersistenceService) DataDir() string {
	return s.dataDir
}

// SaveClient validates and writes a client record.
func (s *PersistenceService) SaveClient(ctx context.Context, rec models.StorageClient) error {
	if err := schema.ValidateStorageClient(rec); err != nil {
		return err
	}
	if err := s.clients.SaveClient(ctx, rec); err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

// LoadClient reads a client. A missing or unreadable record yields nil.
func (s *PersistenceService) LoadClient(ctx context.Context, id string) (*models.StorageClient, error) {
	raw, err := s.clients.LoadClient(ctx, id)
	if errors.Is(err, secondary.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	rec, err := schema.DecodeClient(raw.Data)
	if err != nil {
		s.log.Warn("unreadable client record", zap.String("source", raw.Source), zap.Error(err))
		return nil, nil
	}
	return &rec, nil
}

// LoadAllClients reads every client, skipping unreadable records.
func (s *PersistenceService) LoadAllClients(ctx context.Context) (schema.BatchResult[models.StorageClient], error) {
	raws, err := s.clients.LoadAllClients(ctx)
	if err != nil {
		return schema.BatchResult[models.StorageClient]{}, fmt.Errorf("failed to load clients: %w", err)
	}
	result := schema.DecodeClients(raws)
	s.logSkipped("clients", result.Skipped)
	return result, nil
}

// DeleteClient removes a client record.
func (s *PersistenceService) DeleteClient(ctx context.Context, id string) error {
	if err := s.clients.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// SaveCommission validates a commission and writes it into the bucket its
// status belongs to. A record currently stored in the other bucket is moved
// there first so it is never present in both.
func (s *PersistenceService) SaveCommission(ctx context.Context, rec models.StorageCommission) error {
	if err := schema.ValidateStorageCommission(rec); err != nil {
		return err
	}
	target := rec.Bucket()
	other := otherBucket(target)

	_, err := s.commissions.LoadCommission(ctx, other, rec.ID)
	switch {
	case err == nil:
		if err := s.commissions.MoveCommission(ctx, rec.ID, other, target); err != nil {
			return fmt.Errorf("failed to move commission: %w", err)
		}
	case !errors.Is(err, secondary.ErrRecordNotFound):
		return fmt.Errorf("failed to look up commission: %w", err)
	}

	if err := s.commissions.SaveCommission(ctx, target, rec); err != nil {
		return fmt.Errorf("failed to save commission: %w", err)
	}
	return nil
}

// LoadCommissions reads a bucket, skipping unreadable records. A record
// whose status disagrees with its bucket takes the bucket's status.
func (s *PersistenceService) LoadCommissions(ctx context.Context, bucket models.Bucket) (schema.BatchResult[models.StorageCommission], error) {
	if err := schema.ValidateBucket(bucket); err != nil {
		return schema.BatchResult[models.StorageCommission]{}, err
	}
	raws, err := s.commissions.LoadCommissions(ctx, bucket)
	if err != nil {
		return schema.BatchResult[models.StorageCommission]{}, fmt.Errorf("failed to load %s commissions: %w", bucket, err)
	}
	result := schema.DecodeCommissions(raws)
	for i := range result.Items {
		result.Items[i] = s.reconcile(result.Items[i], bucket)
	}
	s.logSkipped(string(bucket)+" commissions", result.Skipped)
	return result, nil
}

// LoadCommission finds a commission in either bucket.
func (s *PersistenceService) LoadCommission(ctx context.Context, id string) (*models.StorageCommission, models.Bucket, error) {
	for _, bucket := range []models.Bucket{models.BucketPending, models.BucketCompleted} {
		raw, err := s.commissions.LoadCommission(ctx, bucket, id)
		if errors.Is(err, secondary.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to load commission: %w", err)
		}
		rec, err := schema.DecodeCommission(raw.Data)
		if err != nil {
			s.log.Warn("unreadable commission record", zap.String("source", raw.Source), zap.Error(err))
			return nil, "", fmt.Errorf("commission %s: %w", id, ErrCommissionNotFound)
		}
		rec = s.reconcile(rec, bucket)
		return &rec, bucket, nil
	}
	return nil, "", fmt.Errorf("commission %s: %w", id, ErrCommissionNotFound)
}

// MoveCommission relocates a commission between buckets and then brings
// its status in line with the destination.
func (s *PersistenceService) MoveCommission(ctx context.Context, id string, from, to models.Bucket) error {
	if err := schema.ValidateBucket(from); err != nil {
		return err
	}
	if err := schema.ValidateBucket(to); err != nil {
		return err
	}
	if err := s.commissions.MoveCommission(ctx, id, from, to); err != nil {
		if errors.Is(err, secondary.ErrRecordNotFound) {
			return fmt.Errorf("commission %s in %s: %w", id, from, ErrCommissionNotFound)
		}
		return fmt.Errorf("failed to move commission: %w", err)
	}

	raw, err := s.commissions.LoadCommission(ctx, to, id)
	if err != nil {
		return fmt.Errorf("failed to reload moved commission: %w", err)
	}
	rec, err := schema.DecodeCommission(raw.Data)
	if err != nil {
		// Moved but unreadable; loads will keep skipping it.
		s.log.Warn("moved commission is unreadable", zap.String("source", raw.Source), zap.Error(err))
		return nil
	}
	if models.BucketForStorageStatus(rec.Status) == to {
		return nil
	}
	rec.Status = statusForBucket(to)
	rec.UpdatedAt = mapper.FormatTimestamp(s.now())
	if err := s.commissions.SaveCommission(ctx, to, rec); err != nil {
		return fmt.Errorf("failed to update moved commission: %w", err)
	}
	return nil
}

// DeleteCommission removes a commission from bucket.
func (s *PersistenceService) DeleteCommission(ctx context.Context, id string, bucket models.Bucket) error {
	if err := s.commissions.DeleteCommission(ctx, bucket, id); err != nil {
		if errors.Is(err, secondary.ErrRecordNotFound) {
			return fmt.Errorf("commission %s in %s: %w", id, bucket, ErrCommissionNotFound)
		}
		return fmt.Errorf("failed to delete commission: %w", err)
	}
	return nil
}

// StoreContents is every readable storage record plus what was skipped.
type StoreContents struct {
	Clients     []models.StorageClient
	Commissions []models.StorageCommission
	Skipped     []models.SkipDiagnostic
}

// LoadAll fetches clients and both commission buckets concurrently.
func (s *PersistenceService) LoadAll(ctx context.Context) (*StoreContents, error) {
	var (
		clients   schema.BatchResult[models.StorageClient]
		pending   schema.BatchResult[models.StorageCommission]
		completed schema.BatchResult[models.StorageCommission]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = s.LoadAllClients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = s.LoadCommissions(gctx, models.BucketPending)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.LoadCommissions(gctx, models.BucketCompleted)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &StoreContents{
		Clients:     clients.Items,
		Commissions: append(pending.Items, completed.Items...),
	}
	out.Skipped = append(out.Skipped, clients.Skipped...)
	out.Skipped = append(out.Skipped, pending.Skipped...)
	out.Skipped = append(out.Skipped, completed.Skipped...)
	return out, nil
}

func (s *PersistenceService) reconcile(rec models.StorageCommission, bucket models.Bucket) models.StorageCommission {
	if rec.Bucket() == bucket {
		return rec
	}
	s.log.Warn("commission status disagrees with its bucket; using bucket",
		zap.String("id", rec.ID),
		zap.String("status", rec.Status),
		zap.String("bucket", string(bucket)),
	)
	rec.Status = statusForBucket(bucket)
	return rec
}

func (s *PersistenceService) logSkipped(collection string, skipped []models.SkipDiagnostic) {
	for _, d := range skipped {
		s.log.Warn("skipped unreadable record",
			zap.String("collection", collection),
			zap.String("source", d.Source),
			zap.String("reason", d.Reason),
		)
	}
}

func otherBucket(b models.Bucket) models.Bucket {
	if b == models.BucketCompleted {
		return models.BucketPending
	}
	return models.BucketCompleted
}

func statusForBucket(b models.Bucket) string {
	if b == models.BucketCompleted {
		return models.StorageStatusCompleted
	}
	return models.StorageStatusPending
}
