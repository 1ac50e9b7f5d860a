package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/primary"
)

// CommissionAdapter is a thin adapter that translates CLI operations to CommissionService calls.
type CommissionAdapter struct {
	service primary.CommissionService
	out     io.Writer
}

// NewCommissionAdapter creates a new CommissionAdapter with the given service.
func NewCommissionAdapter(service primary.CommissionService, out io.Writer) *CommissionAdapter {
	return &CommissionAdapter{
		service: service,
		out:     out,
	}
}

// Add creates a new commission. price is a decimal amount like "49.99".
func (a *CommissionAdapter) Add(ctx context.Context, clientID, kind, price, description string) error {
	cents, err := ParseCents(price)
	if err != nil {
		return err
	}
	c, err := a.service.CreateCommission(ctx, primary.CreateCommissionRequest{
		ClientID:    clientID,
		Type:        kind,
		PriceCents:  cents,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to create commission: %w", err)
	}
	fmt.Fprintf(a.out, "%s Created commission %s: %s for %s (%s)\n", okMark, c.ID, c.Type, c.Client.Name, FormatCents(c.PriceCents))
	return nil
}

// List lists commissions with optional filters.
func (a *CommissionAdapter) List(ctx context.Context, filters primary.CommissionFilters, verbose bool) error {
	list, err := a.service.ListCommissions(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list commissions: %w", err)
	}

	if len(list.Commissions) == 0 {
		fmt.Fprintln(a.out, "No commissions found")
		printSkipped(a.out, list.Skipped, verbose)
		return nil
	}

	fmt.Fprintf(a.out, "\n%-34s %-10s %-16s %-10s %-10s %s\n", "ID", "DATE", "CLIENT", "PRICE", "PAYMENT", "STATUS")
	fmt.Fprintln(a.out, rule)
	for _, c := range list.Commissions {
		fmt.Fprintf(a.out, "%-34s %-10s %-16s %-10s %-10s %s\n",
			c.ID, formatDate(c.Date), c.Client.Name, FormatCents(c.PriceCents), c.PaymentStatus, statusText(c.Status))
	}
	fmt.Fprintln(a.out)
	printSkipped(a.out, list.Skipped, verbose)
	return nil
}

// Show displays details for a single commission.
func (a *CommissionAdapter) Show(ctx context.Context, commissionID string) error {
	c, err := a.service.GetCommission(ctx, commissionID)
	if err != nil {
		return fmt.Errorf("failed to get commission: %w", err)
	}

	fmt.Fprintf(a.out, "\nCommission: %s\n", c.ID)
	fmt.Fprintf(a.out, "Type:    %s\n", c.Type)
	fmt.Fprintf(a.out, "Client:  %s (%s)\n", c.Client.Name, c.Client.ID)
	fmt.Fprintf(a.out, "Price:   %s\n", FormatCents(c.PriceCents))
	fmt.Fprintf(a.out, "Payment: %s\n", c.PaymentStatus)
	fmt.Fprintf(a.out, "Status:  %s\n", statusText(c.Status))
	fmt.Fprintf(a.out, "Date:    %s\n", formatDate(c.Date))
	if c.IsCompleted() {
		fmt.Fprintf(a.out, "Completed: %s\n", formatDate(c.CompletedDate))
	}
	if c.Description != "" {
		fmt.Fprintf(a.out, "Description: %s\n", c.Description)
	}
	if urls := c.ImageURLs(); len(urls) > 0 {
		fmt.Fprintln(a.out, "References:")
		for _, u := range urls {
			fmt.Fprintf(a.out, "  - %s\n", u)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// Update updates the descriptive fields of a commission.
func (a *CommissionAdapter) Update(ctx context.Context, commissionID string, kind, price, description *string) error {
	if kind == nil && price == nil && description == nil {
		return fmt.Errorf("must specify at least one of --type, --price or --description")
	}
	req := primary.UpdateCommissionRequest{CommissionID: commissionID, Type: kind, Description: description}
	if price != nil {
		cents, err := ParseCents(*price)
		if err != nil {
			return err
		}
		req.PriceCents = &cents
	}
	if _, err := a.service.UpdateCommission(ctx, req); err != nil {
		return fmt.Errorf("failed to update commission: %w", err)
	}
	fmt.Fprintf(a.out, "%s Commission %s updated\n", okMark, commissionID)
	return nil
}

// Start moves a commission to In Progress.
func (a *CommissionAdapter) Start(ctx context.Context, commissionID string) error {
	if _, err := a.service.StartCommission(ctx, commissionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Commission %s started\n", okMark, commissionID)
	return nil
}

// Complete marks a commission Completed.
func (a *CommissionAdapter) Complete(ctx context.Context, commissionID string) error {
	if _, err := a.service.CompleteCommission(ctx, commissionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Commission %s marked as complete\n", okMark, commissionID)
	return nil
}

// Reopen marks a completed commission incomplete.
func (a *CommissionAdapter) Reopen(ctx context.Context, commissionID string) error {
	c, err := a.service.ReopenCommission(ctx, commissionID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Commission %s reopened (dated %s)\n", okMark, commissionID, formatDate(c.Date))
	return nil
}

// Pay sets the payment status.
func (a *CommissionAdapter) Pay(ctx context.Context, commissionID, status string) error {
	c, err := a.service.SetPaymentStatus(ctx, commissionID, models.PaymentStatus(status))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Commission %s is now %s\n", okMark, commissionID, c.PaymentStatus)
	return nil
}

// Delete removes a commission.
func (a *CommissionAdapter) Delete(ctx context.Context, commissionID string) error {
	if err := a.service.DeleteCommission(ctx, commissionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s Commission %s deleted\n", okMark, commissionID)
	return nil
}

// Attach reads an image file from disk and attaches it to a commission.
func (a *CommissionAdapter) Attach(ctx context.Context, commissionID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	c, err := a.service.AttachImage(ctx, primary.AttachImageRequest{
		CommissionID: commissionID,
		Filename:     filepath.Base(path),
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to attach image: %w", err)
	}
	ref := filepath.Base(path)
	if urls := c.ImageURLs(); len(urls) > 0 {
		ref = urls[len(urls)-1]
	}
	fmt.Fprintf(a.out, "%s Attached %s to commission %s\n", okMark, ref, commissionID)
	return nil
}
