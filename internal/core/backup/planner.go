// Package backup contains the pure planning logic for backup-wrapped writes
// and emergency snapshot retention.
package backup

import (
	"sort"
	"strings"
	"time"

	"github.com/example/easel/internal/core/effects"
)

// KeepSnapshots is how many emergency snapshots survive a cleanup pass.
const KeepSnapshots = 3

// SnapshotPrefix prefixes every emergency snapshot key.
const SnapshotPrefix = "emergency_backup_"

// snapshotLayout sorts lexicographically in chronological order.
const snapshotLayout = "2006-01-02T15:04:05.000000000Z"

// BackupKey returns the key holding the rollback copy of key.
func BackupKey(key string) string {
	return key + "_backup"
}

// IsBackupKey reports whether key is a rollback slot.
func IsBackupKey(key string) bool {
	return strings.HasSuffix(key, "_backup") && !IsSnapshotKey(key)
}

// SnapshotKey returns the emergency snapshot key for the given instant.
func SnapshotKey(at time.Time) string {
	return SnapshotPrefix + at.UTC().Format(snapshotLayout)
}

// IsSnapshotKey reports whether key names an emergency snapshot.
func IsSnapshotKey(key string) bool {
	return strings.HasPrefix(key, SnapshotPrefix)
}

// SnapshotTime parses the instant embedded in a snapshot key.
func SnapshotTime(key string) (time.Time, bool) {
	if !IsSnapshotKey(key) {
		return time.Time{}, false
	}
	t, err := time.Parse(snapshotLayout, strings.TrimPrefix(key, SnapshotPrefix))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SaveInput contains everything needed to plan a backup-wrapped save.
// All values are pre-fetched by the caller.
type SaveInput struct {
	Key      string
	NewValue []byte
	OldValue []byte
	HasOld   bool
}

// PlanSave returns the ordered writes for a backup-wrapped save: the current
// value is copied into the backup slot strictly before the new value is written.
// With no current value the backup slot is left alone.
func PlanSave(in SaveInput) []effects.Effect {
	var plan []effects.Effect
	if in.HasOld {
		plan = append(plan, effects.KVEffect{
			Operation: effects.KVSet,
			Key:       BackupKey(in.Key),
			Value:     in.OldValue,
		})
	}
	plan = append(plan, effects.KVEffect{
		Operation: effects.KVSet,
		Key:       in.Key,
		Value:     in.NewValue,
	})
	return plan
}

// SortSnapshotKeys returns the snapshot keys among keys, newest first.
func SortSnapshotKeys(keys []string) []string {
	var snaps []string
	for _, k := range keys {
		if IsSnapshotKey(k) {
			snaps = append(snaps, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(snaps)))
	return snaps
}

// PlanSnapshotCleanup returns delete effects for every snapshot beyond the
// newest keep. Non-snapshot keys are ignored.
func PlanSnapshotCleanup(keys []string, keep int) []effects.Effect {
	if keep < 0 {
		keep = 0
	}
	snaps := SortSnapshotKeys(keys)
	if len(snaps) <= keep {
		return nil
	}
	plan := make([]effects.Effect, 0, len(snaps)-keep)
	for _, k := range snaps[keep:] {
		plan = append(plan, effects.KVEffect{Operation: effects.KVDelete, Key: k})
	}
	return plan
}
