package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/easel/internal/ports/primary"
)

// ClientAdapter is a thin adapter that translates CLI operations to ClientService calls.
type ClientAdapter struct {
	service primary.ClientService
	out     io.Writer
}

// NewClientAdapter creates a new ClientAdapter with the given service.
func NewClientAdapter(service primary.ClientService, out io.Writer) *ClientAdapter {
	return &ClientAdapter{
		service: service,
		out:     out,
	}
}

// Add creates a new client.
func (a *ClientAdapter) Add(ctx context.Context, req primary.CreateClientRequest) error {
	client, err := a.service.CreateClient(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	fmt.Fprintf(a.out, "%s Created client %s: %s\n", okMark, client.ID, client.Name)
	return nil
}

// List lists every readable client.
func (a *ClientAdapter) List(ctx context.Context, verbose bool) error {
	list, err := a.service.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}

	if len(list.Clients) == 0 {
		fmt.Fprintln(a.out, "No clients found")
		printSkipped(a.out, list.Skipped, verbose)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-34s %-20s %-8s %-12s %s\n", "ID", "NAME", "CHANNEL", "COMMISSIONS", "CONTACT")
	fmt.Fprintln(a.out, rule)
	for _, c := range list.Clients {
		fmt.Fprintf(a.out, "%-34s %-20s %-8s %-12d %s\n", c.ID, c.Name, c.Channel, c.TotalCommissions, c.Contact)
	}
	fmt.Fprintln(a.out)
	printSkipped(a.out, list.Skipped, verbose)
	return nil
}

// Show displays details for a single client.
func (a *ClientAdapter) Show(ctx context.Context, clientID string) error {
	c, err := a.service.GetClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to get client: %w", err)
	}

	fmt.Fprintf(a.out, "\nClient: %s\n", c.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", c.Name)
	if c.Contact != "" {
		fmt.Fprintf(a.out, "Contact: %s (%s)\n", c.Contact, c.Channel)
	}
	fmt.Fprintf(a.out, "Joined:  %s\n", formatDate(c.JoinDate))
	fmt.Fprintf(a.out, "Commissions: %d\n", c.TotalCommissions)
	if !c.LastCommission.IsZero() {
		fmt.Fprintf(a.out, "Last commission: %s\n", formatDate(c.LastCommission))
	}
	if c.Notes != "" {
		fmt.Fprintf(a.out, "Notes: %s\n", c.Notes)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Update updates the fields set in req.
func (a *ClientAdapter) Update(ctx context.Context, req primary.UpdateClientRequest) error {
	if req.Name == nil && req.Contact == nil && req.Avatar == nil && req.Notes == nil {
		return fmt.Errorf("must specify at least one of --name, --contact, --avatar or --notes")
	}
	if _, err := a.service.UpdateClient(ctx, req); err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	fmt.Fprintf(a.out, "%s Client %s updated\n", okMark, req.ClientID)
	return nil
}

// Delete deletes a client.
func (a *ClientAdapter) Delete(ctx context.Context, clientID string, force bool) error {
	err := a.service.DeleteClient(ctx, primary.DeleteClientRequest{ClientID: clientID, Force: force})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Client %s deleted\n", okMark, clientID)
	return nil
}
