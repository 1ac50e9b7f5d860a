package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/cli"
	"github.com/example/easel/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "easel",
		Short:   "easel - commission ledger for freelance artists",
		Version: version.String(),
		Long: `easel keeps track of clients and the commissions you take from them.
Records are plain JSON files in the data directory, so they can be synced
or edited by other tools; settings and backups live in a small SQLite file
next to them.`,
		SilenceUsage: true,
	}

	// Records
	rootCmd.AddCommand(cli.ClientCmd())
	rootCmd.AddCommand(cli.CommissionCmd())
	rootCmd.AddCommand(cli.StatsCmd())

	// Persistence
	rootCmd.AddCommand(cli.SyncCmd())
	rootCmd.AddCommand(cli.WatchCmd())
	rootCmd.AddCommand(cli.BackupCmd())
	rootCmd.AddCommand(cli.DataCmd())

	// Setup
	rootCmd.AddCommand(cli.SettingsCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
