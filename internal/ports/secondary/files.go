package secondary

import (
	"context"

	"github.com/example/easel/internal/core/datadir"
)

// FileSystem defines the secondary port for whole-directory operations
// used by data import.
type FileSystem interface {
	// DataDir returns the root of the record store.
	DataDir() string

	// Stat reports whether path exists and whether it is a directory.
	Stat(ctx context.Context, path string) (exists, isDir bool, err error)

	// ListTree returns every entry below root, parents before children.
	ListTree(ctx context.Context, root string) ([]datadir.Entry, error)

	// MkdirAll creates path and any missing parents.
	MkdirAll(ctx context.Context, path string, mode uint32) error

	// CopyFile copies src to dst atomically, overwriting dst.
	CopyFile(ctx context.Context, src, dst string, mode uint32) error
}
