package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/example/easel/internal/core/backup"
	"github.com/example/easel/internal/core/sanitize"
	"github.com/example/easel/internal/metrics"
	"github.com/example/easel/internal/ports/secondary"
)

// BackupManager wraps the key/value store with a one-deep rollback copy per
// key and a rotating set of emergency snapshots.
type BackupManager struct {
	kv       secondary.KeyValueStore
	executor EffectExecutor
	log      *zap.Logger
	now      func() time.Time
}

// NewBackupManager creates a new BackupManager.
func NewBackupManager(kv secondary.KeyValueStore, executor EffectExecutor, log *zap.Logger) *BackupManager {
	return &BackupManager{
		kv:       kv,
		executor: executor,
		log:      log,
		now:      time.Now,
	}
}

// SaveWithBackup sanitizes data and stores it under key, first copying the
// current value of key into its backup slot. A current value that is not
// valid JSON is not copied, so a corrupt primary never replaces a good backup.
func (m *BackupManager) SaveWithBackup(ctx context.Context, key string, data any) (err error) {
	defer func() { metrics.RecordBackupWrite(err) }()

	encoded, err := sanitize.JSON(data)
	if err != nil {
		return err
	}

	old, err := m.kv.Get(ctx, key)
	hasOld := err == nil
	switch {
	case errors.Is(err, secondary.ErrRecordNotFound):
	case err != nil:
		return fmt.Errorf("failed to read current value of %s: %w", key, err)
	}
	if hasOld && !decodable(old) {
		m.log.Warn("current value is unreadable; keeping existing backup", zap.String("key", key))
		hasOld = false
	}

	plan := backup.PlanSave(backup.SaveInput{
		Key:      key,
		NewValue: encoded,
		OldValue: old,
		HasOld:   hasOld,
	})
	if err := m.executor.Execute(ctx, plan); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// LoadWithBackupFallback decodes the value of key into out, falling back to
// the backup slot when the primary is missing or unreadable. It returns false
// when neither decodes; out is only modified on success. out must be a
// non-nil pointer.
func (m *BackupManager) LoadWithBackupFallback(ctx context.Context, key string, out any) (bool, error) {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return false, fmt.Errorf("load %s: out must be a non-nil pointer", key)
	}

	ok, err := m.decodeKey(ctx, key, target)
	if err != nil || ok {
		return ok, err
	}

	m.log.Warn("primary value unavailable; trying backup", zap.String("key", key))
	ok, err = m.decodeKey(ctx, backup.BackupKey(key), target)
	if err != nil {
		return false, err
	}
	if ok {
		metrics.RecordFallback("backup")
		return true, nil
	}

	m.log.Warn("no readable value or backup", zap.String("key", key))
	metrics.RecordFallback("absent")
	return false, nil
}

func (m *BackupManager) decodeKey(ctx context.Context, key string, target reflect.Value) (bool, error) {
	raw, err := m.kv.Get(ctx, key)
	if errors.Is(err, secondary.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !decodable(raw) {
		return false, nil
	}

	// Decode over a copy of the current value so fields absent from the
	// stored JSON keep the caller's defaults.
	fresh := reflect.New(target.Elem().Type())
	fresh.Elem().Set(target.Elem())
	if err := json.Unmarshal(raw, fresh.Interface()); err != nil {
		m.log.Debug("value does not decode", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	target.Elem().Set(fresh.Elem())
	return true, nil
}

// decodable reports whether raw holds a non-null JSON value.
func decodable(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	return json.Valid(trimmed)
}

// CreateEmergencySnapshot stores data under a new timestamped snapshot key
// and prunes all but the newest snapshots. The new key is returned.
func (m *BackupManager) CreateEmergencySnapshot(ctx context.Context, data any) (string, error) {
	encoded, err := sanitize.JSON(data)
	if err != nil {
		return "", err
	}

	key := backup.SnapshotKey(m.now())
	if err := m.kv.Set(ctx, key, encoded); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	m.log.Info("emergency snapshot created", zap.String("key", key))

	if err := m.CleanupEmergencySnapshots(ctx); err != nil {
		return key, err
	}
	return key, nil
}

// CleanupEmergencySnapshots deletes every snapshot beyond the newest
// backup.KeepSnapshots.
func (m *BackupManager) CleanupEmergencySnapshots(ctx context.Context) error {
	keys, err := m.kv.Keys(ctx, backup.SnapshotPrefix)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	plan := backup.PlanSnapshotCleanup(keys, backup.KeepSnapshots)
	if len(plan) == 0 {
		return nil
	}
	if err := m.executor.Execute(ctx, plan); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}
	metrics.SnapshotsPruned.Add(float64(len(plan)))
	m.log.Debug("pruned emergency snapshots", zap.Int("deleted", len(plan)))
	return nil
}

// ListEmergencySnapshots returns the retained snapshot keys, newest first.
func (m *BackupManager) ListEmergencySnapshots(ctx context.Context) ([]string, error) {
	keys, err := m.kv.Keys(ctx, backup.SnapshotPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return backup.SortSnapshotKeys(keys), nil
}

// RestoreEmergencySnapshot decodes the snapshot stored under key into out.
func (m *BackupManager) RestoreEmergencySnapshot(ctx context.Context, key string, out any) error {
	if !backup.IsSnapshotKey(key) {
		return fmt.Errorf("%q is not a snapshot key", key)
	}
	raw, err := m.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return nil
}
