package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/easel/internal/ports/primary"
)

// BackupAdapter translates CLI operations to BackupService calls.
type BackupAdapter struct {
	service primary.BackupService
	out     io.Writer
}

// NewBackupAdapter creates a new BackupAdapter.
func NewBackupAdapter(service primary.BackupService, out io.Writer) *BackupAdapter {
	return &BackupAdapter{service: service, out: out}
}

// Snapshot captures the store.
func (a *BackupAdapter) Snapshot(ctx context.Context, reason string) error {
	if reason == "" {
		reason = "manual"
	}
	key, err := a.service.CreateSnapshot(ctx, reason)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Snapshot %s created\n", okMark, key)
	return nil
}

// List lists retained snapshots.
func (a *BackupAdapter) List(ctx context.Context) error {
	snaps, err := a.service.ListSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(a.out, "No snapshots found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-46s %-8s %-12s %s\n", "KEY", "CLIENTS", "COMMISSIONS", "REASON")
	fmt.Fprintln(a.out, rule)
	for _, s := range snaps {
		fmt.Fprintf(a.out, "%-46s %-8d %-12d %s\n", s.Key, s.Clients, s.Commissions, s.Reason)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Restore writes a snapshot back to the store.
func (a *BackupAdapter) Restore(ctx context.Context, key string) error {
	result, err := a.service.RestoreSnapshot(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	fmt.Fprintf(a.out, "%s Restored %d clients and %d commissions from %s\n", okMark, result.Clients, result.Commissions, result.Key)
	return nil
}
