package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/wire"
)

// DataCmd returns the data command
func DataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Locate, export or import the data directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the data directory",
		Run: func(cmd *cobra.Command, args []string) {
			wire.DataAdapter().Path()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print the directory to copy for a backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DataAdapter().Export(context.Background())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import [directory]",
		Short: "Copy a previously exported data directory into place",
		Long: `Copy a previously exported data directory into place.

The directory must be an absolute path under /tmp, /var/tmp, ~/Downloads,
~/Documents or ~/Desktop. A snapshot is taken before anything is copied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.DataAdapter().Import(context.Background(), args[0])
		},
	})

	return cmd
}
