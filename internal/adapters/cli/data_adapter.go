package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/easel/internal/ports/primary"
)

// DataAdapter translates CLI operations to DataService calls.
type DataAdapter struct {
	service primary.DataService
	out     io.Writer
}

// NewDataAdapter creates a new DataAdapter.
func NewDataAdapter(service primary.DataService, out io.Writer) *DataAdapter {
	return &DataAdapter{service: service, out: out}
}

// Path prints the data directory.
func (a *DataAdapter) Path() {
	fmt.Fprintln(a.out, a.service.DataPath())
}

// Export prints the directory to copy for an export.
func (a *DataAdapter) Export(ctx context.Context) error {
	dir, err := a.service.Export(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Copy this directory to export your data:\n  %s\n", dir)
	return nil
}

// Import copies a directory into the data directory.
func (a *DataAdapter) Import(ctx context.Context, path string) error {
	if err := a.service.Import(ctx, path); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(a.out, "%s Imported %s\n", okMark, path)
	return nil
}
