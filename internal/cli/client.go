package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/ports/primary"
	"github.com/example/easel/internal/wire"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
	Long:  "Add, list, and manage the clients you take commissions from",
}

var clientAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		contact, _ := cmd.Flags().GetString("contact")
		avatar, _ := cmd.Flags().GetString("avatar")
		notes, _ := cmd.Flags().GetString("notes")

		return wire.ClientAdapter().Add(ctx, primary.CreateClientRequest{
			Name:    args[0],
			Contact: contact,
			Avatar:  avatar,
			Notes:   notes,
		})
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		return wire.ClientAdapter().List(context.Background(), verbose)
	},
}

var clientShowCmd = &cobra.Command{
	Use:   "show [client-id]",
	Short: "Show client details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ClientAdapter().Show(context.Background(), args[0])
	},
}

var clientUpdateCmd = &cobra.Command{
	Use:   "update [client-id]",
	Short: "Update client name, contact, avatar or notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.UpdateClientRequest{
			ClientID: args[0],
			Name:     changedString(cmd, "name"),
			Contact:  changedString(cmd, "contact"),
			Avatar:   changedString(cmd, "avatar"),
			Notes:    changedString(cmd, "notes"),
		}
		return wire.ClientAdapter().Update(context.Background(), req)
	},
}

var clientDeleteCmd = &cobra.Command{
	Use:   "delete [client-id]",
	Short: "Delete a client",
	Long: `Delete a client.

A client that still has commissions can only be deleted with --force, which
takes a backup snapshot and then deletes the client's commissions too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return wire.ClientAdapter().Delete(context.Background(), args[0], force)
	},
}

// ClientCmd returns the client command
func ClientCmd() *cobra.Command {
	clientAddCmd.Flags().StringP("contact", "c", "", "Contact handle, email or phone")
	clientAddCmd.Flags().String("avatar", "", "Avatar image URL")
	clientAddCmd.Flags().StringP("notes", "n", "", "Free-form notes")
	clientListCmd.Flags().BoolP("verbose", "v", false, "Show details for skipped records")
	clientUpdateCmd.Flags().String("name", "", "New client name")
	clientUpdateCmd.Flags().StringP("contact", "c", "", "New contact")
	clientUpdateCmd.Flags().String("avatar", "", "New avatar URL")
	clientUpdateCmd.Flags().StringP("notes", "n", "", "New notes")
	clientDeleteCmd.Flags().BoolP("force", "f", false, "Delete the client's commissions as well")

	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientListCmd)
	clientCmd.AddCommand(clientShowCmd)
	clientCmd.AddCommand(clientUpdateCmd)
	clientCmd.AddCommand(clientDeleteCmd)

	return clientCmd
}

// changedString returns the flag value only when the user set it, so an
// explicit empty string can clear a field.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
