package primary

import "context"

// DataService defines the primary port for data directory management.
type DataService interface {
	// DataPath returns the data directory.
	DataPath() string

	// Export returns the directory to copy for a manual export.
	Export(ctx context.Context) (string, error)

	// Import copies an allowed directory into the data directory.
	Import(ctx context.Context, path string) error
}
