package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/wire"
)

// SettingsCmd returns the settings command
func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change application settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SettingsAdapter().Show(context.Background())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [key] [value]",
		Short: "Change a setting (display_name, animations_enabled, language)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.SettingsAdapter().Set(context.Background(), args[0], args[1])
		},
	})

	return cmd
}
