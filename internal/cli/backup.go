package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/wire"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage emergency snapshots",
	Long: `Manage emergency snapshots of clients, commissions and settings.

Only the three most recent snapshots are kept.`,
}

var backupSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take a snapshot now",
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return wire.BackupAdapter().Snapshot(context.Background(), reason)
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.BackupAdapter().List(context.Background())
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore [snapshot-key]",
	Short: "Restore clients, commissions and settings from a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.BackupAdapter().Restore(context.Background(), args[0])
	},
}

// BackupCmd returns the backup command
func BackupCmd() *cobra.Command {
	backupSnapshotCmd.Flags().StringP("reason", "r", "", "Why the snapshot was taken")

	backupCmd.AddCommand(backupSnapshotCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)

	return backupCmd
}
