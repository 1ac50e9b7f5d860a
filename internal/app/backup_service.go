package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/easel/internal/core/backup"
	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/primary"
)

// snapshotter captures the whole store before a destructive operation.
type snapshotter interface {
	CreateSnapshot(ctx context.Context, reason string) (string, error)
}

// BackupServiceImpl implements the BackupService interface.
type BackupServiceImpl struct {
	store    *PersistenceService
	backups  *BackupManager
	settings *SettingsServiceImpl
	trigger  *SyncTrigger
	log      *zap.Logger
	now      func() time.Time
}

// NewBackupService creates a new BackupService.
func NewBackupService(
	store *PersistenceService,
	backups *BackupManager,
	settings *SettingsServiceImpl,
	trigger *SyncTrigger,
	log *zap.Logger,
) *BackupServiceImpl {
	return &BackupServiceImpl{
		store:    store,
		backups:  backups,
		settings: settings,
		trigger:  trigger,
		log:      log,
		now:      time.Now,
	}
}

var _ primary.BackupService = (*BackupServiceImpl)(nil)

// CreateSnapshot captures settings and every readable record.
func (s *BackupServiceImpl) CreateSnapshot(ctx context.Context, reason string) (string, error) {
	contents, err := s.store.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read store for snapshot: %w", err)
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return "", err
	}

	snap := models.Snapshot{
		CreatedAt:   s.now().UTC(),
		Reason:      reason,
		Settings:    settings,
		Clients:     contents.Clients,
		Commissions: contents.Commissions,
	}
	key, err := s.backups.CreateEmergencySnapshot(ctx, snap)
	if err != nil {
		return key, fmt.Errorf("failed to create snapshot: %w", err)
	}
	return key, nil
}

// ListSnapshots describes every retained snapshot, newest first.
// Snapshots that no longer decode are listed with only their key and time.
func (s *BackupServiceImpl) ListSnapshots(ctx context.Context) ([]primary.SnapshotInfo, error) {
	keys, err := s.backups.ListEmergencySnapshots(ctx)
	if err != nil {
		return nil, err
	}

	infos := make([]primary.SnapshotInfo, 0, len(keys))
	for _, key := range keys {
		info := primary.SnapshotInfo{Key: key}
		if at, ok := backup.SnapshotTime(key); ok {
			info.CreatedAt = at
		}
		var snap models.Snapshot
		if err := s.backups.RestoreEmergencySnapshot(ctx, key, &snap); err != nil {
			s.log.Warn("unreadable snapshot", zap.String("key", key), zap.Error(err))
		} else {
			info.Reason = snap.Reason
			info.Clients = len(snap.Clients)
			info.Commissions = len(snap.Commissions)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// RestoreSnapshot writes a snapshot's settings and records back to the
// store. Records created since the snapshot are left in place.
func (s *BackupServiceImpl) RestoreSnapshot(ctx context.Context, key string) (*primary.RestoreResult, error) {
	var snap models.Snapshot
	if err := s.backups.RestoreEmergencySnapshot(ctx, key, &snap); err != nil {
		return nil, err
	}

	if err := s.settings.SaveSettings(ctx, snap.Settings); err != nil {
		return nil, fmt.Errorf("failed to restore settings: %w", err)
	}

	result := &primary.RestoreResult{Key: key}
	for _, rec := range snap.Clients {
		if err := s.store.SaveClient(ctx, rec); err != nil {
			return result, fmt.Errorf("failed to restore client %s: %w", rec.ID, err)
		}
		result.Clients++
	}
	for _, rec := range snap.Commissions {
		if err := s.store.SaveCommission(ctx, rec); err != nil {
			return result, fmt.Errorf("failed to restore commission %s: %w", rec.ID, err)
		}
		result.Commissions++
	}

	s.log.Info("snapshot restored",
		zap.String("key", key),
		zap.Int("clients", result.Clients),
		zap.Int("commissions", result.Commissions),
	)
	s.trigger.Trigger(ctx)
	return result, nil
}
