// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/easel/internal/core/datadir"
	"github.com/example/easel/internal/ports/secondary"
)

// DataDirAdapter implements secondary.FileSystem for data directory operations.
type DataDirAdapter struct {
	dataDir string
}

// NewDataDirAdapter creates a new data directory adapter.
// If dataDir is empty, defaults to a Data folder next to the executable.
func NewDataDirAdapter(dataDir string) (*DataDirAdapter, error) {
	if dataDir == "" {
		def, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = def
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &DataDirAdapter{dataDir: dataDir}, nil
}

// DefaultDataDir returns <executable dir>/Data.
func DefaultDataDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "Data"), nil
}

// DataDir returns the data directory.
func (a *DataDirAdapter) DataDir() string {
	return a.dataDir
}

// Stat reports whether path exists and is a directory.
func (a *DataDirAdapter) Stat(ctx context.Context, path string) (bool, bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to check path: %w", err)
	}
	return true, info.IsDir(), nil
}

// ListTree walks root and returns its entries relative to root.
// Symlinks are skipped.
func (a *DataDirAdapter) ListTree(ctx context.Context, root string) ([]datadir.Entry, error) {
	var entries []datadir.Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, datadir.Entry{RelPath: filepath.ToSlash(rel), IsDir: d.IsDir()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}
	return entries, nil
}

// MkdirAll creates a directory with all parent directories.
func (a *DataDirAdapter) MkdirAll(ctx context.Context, path string, mode uint32) error {
	if err := os.MkdirAll(path, os.FileMode(mode)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// CopyFile copies src over dst via a temp file and rename.
func (a *DataDirAdapter) CopyFile(ctx context.Context, src, dst string, mode uint32) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	return writeFileAtomic(dst, data, os.FileMode(mode))
}

// Ensure DataDirAdapter implements the interface
var _ secondary.FileSystem = (*DataDirAdapter)(nil)
