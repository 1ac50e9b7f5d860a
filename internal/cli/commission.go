package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/core/mapper"
	"github.com/example/easel/internal/ports/primary"
	"github.com/example/easel/internal/wire"
)

var commissionCmd = &cobra.Command{
	Use:     "commission",
	Aliases: []string{"cm"},
	Short:   "Manage commissions",
	Long:    "Create, list, and move commissions through pending, in progress and completed",
}

var commissionAddCmd = &cobra.Command{
	Use:   "add [client-id] [type] [price]",
	Short: "Add a new commission for a client",
	Long: `Add a new commission for a client.

Examples:
  easel commission add 3f2a... "Full body portrait" 120
  easel commission add 3f2a... Sketch 15.50 -d "Two characters, no background"`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		return wire.CommissionAdapter().Add(context.Background(), args[0], args[1], args[2], description)
	},
}

var commissionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List commissions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		clientID, _ := cmd.Flags().GetString("client")
		verbose, _ := cmd.Flags().GetBool("verbose")

		filters, err := commissionFilters(status, clientID)
		if err != nil {
			return err
		}
		return wire.CommissionAdapter().List(context.Background(), filters, verbose)
	},
}

var commissionShowCmd = &cobra.Command{
	Use:   "show [commission-id]",
	Short: "Show commission details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CommissionAdapter().Show(context.Background(), args[0])
	},
}

var commissionUpdateCmd = &cobra.Command{
	Use:   "update [commission-id]",
	Short: "Update commission type, price or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CommissionAdapter().Update(context.Background(), args[0],
			changedString(cmd, "type"), changedString(cmd, "price"), changedString(cmd, "description"))
	},
}

var commissionStartCmd = &cobra.Command{
	Use:   "start [commission-id]",
	Short: "Mark a pending commission as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CommissionAdapter().Start(context.Background(), args[0])
	},
}

var commissionCompleteCmd = &cobra.Command{
	Use:   "complete [commission-id]",
	Short: "Mark a commission as completed (moves it to history)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CommissionAdapter().Complete(context.Background(), args[0])
	},
}

var commissionReopenCmd = &cobra.Command{
	Use:   "reopen [commission-id]",
	Short: "Move a completed commission back to pending",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CommissionAdapter().Reopen(context.Background(), args[0])
	},
}

var commissionPayCmd = &cobra.Command{
	Use:       "pay [commission-id] [not-paid|half-paid|fully-paid]",
	Short:     "Set the payment status",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"not-paid", "half-paid", "fully-paid"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CommissionAdapter().Pay(context.Background(), args[0], args[1])
	},
}

var commissionDeleteCmd = &cobra.Command{
	Use:   "delete [commission-id]",
	Short: "Delete a commission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CommissionAdapter().Delete(context.Background(), args[0])
	},
}

var commissionAttachCmd = &cobra.Command{
	Use:   "attach [commission-id] [image-path]",
	Short: "Attach a reference image (jpeg, png, gif, bmp or webp, up to 10 MB)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.CommissionAdapter().Attach(context.Background(), args[0], args[1])
	},
}

// CommissionCmd returns the commission command
func CommissionCmd() *cobra.Command {
	commissionAddCmd.Flags().StringP("description", "d", "", "Commission description")
	commissionListCmd.Flags().StringP("status", "s", "", "Filter by status (pending, in-progress, completed)")
	commissionListCmd.Flags().StringP("client", "c", "", "Filter by client ID")
	commissionListCmd.Flags().BoolP("verbose", "v", false, "Show details for skipped records")
	commissionUpdateCmd.Flags().StringP("type", "t", "", "New commission type")
	commissionUpdateCmd.Flags().StringP("price", "p", "", "New price, e.g. 49.99")
	commissionUpdateCmd.Flags().StringP("description", "d", "", "New description")

	commissionCmd.AddCommand(commissionAddCmd)
	commissionCmd.AddCommand(commissionListCmd)
	commissionCmd.AddCommand(commissionShowCmd)
	commissionCmd.AddCommand(commissionUpdateCmd)
	commissionCmd.AddCommand(commissionStartCmd)
	commissionCmd.AddCommand(commissionCompleteCmd)
	commissionCmd.AddCommand(commissionReopenCmd)
	commissionCmd.AddCommand(commissionPayCmd)
	commissionCmd.AddCommand(commissionDeleteCmd)
	commissionCmd.AddCommand(commissionAttachCmd)

	return commissionCmd
}

// commissionFilters turns the list flags into service filters. Status uses
// the on-disk spelling.
func commissionFilters(status, clientID string) (primary.CommissionFilters, error) {
	filters := primary.CommissionFilters{ClientID: clientID}
	if status == "" {
		return filters, nil
	}
	st, err := mapper.StatusToDomain("", status)
	if err != nil {
		return filters, fmt.Errorf("invalid --status %q (want pending, in-progress or completed)", status)
	}
	filters.Status = st
	return filters, nil
}
