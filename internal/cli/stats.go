package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/wire"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show earnings and workload figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			return wire.ReportAdapter().Stats(context.Background(), verbose)
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Show details for skipped records")
	return cmd
}
