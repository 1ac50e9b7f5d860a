package primary

import (
	"context"
	"time"
)

// BackupService defines the primary port for emergency snapshots.
type BackupService interface {
	// CreateSnapshot captures the whole store and prunes old snapshots.
	CreateSnapshot(ctx context.Context, reason string) (string, error)

	// ListSnapshots lists retained snapshots, newest first.
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)

	// RestoreSnapshot writes a snapshot's settings and records back.
	RestoreSnapshot(ctx context.Context, key string) (*RestoreResult, error)
}

// SnapshotInfo describes a retained emergency snapshot.
type SnapshotInfo struct {
	Key         string
	CreatedAt   time.Time
	Reason      string
	Clients     int
	Commissions int
}

// RestoreResult reports what a restore wrote back.
type RestoreResult struct {
	Key         string
	Clients     int
	Commissions int
}
