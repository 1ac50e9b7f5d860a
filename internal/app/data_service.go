package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/example/easel/internal/core/datadir"
	"github.com/example/easel/internal/db"
	"github.com/example/easel/internal/ports/primary"
	"github.com/example/easel/internal/ports/secondary"
)

// DataServiceImpl implements the DataService interface.
type DataServiceImpl struct {
	fs        secondary.FileSystem
	executor  EffectExecutor
	snapshots snapshotter
	trigger   *SyncTrigger
	log       *zap.Logger
	homeDir   func() (string, error)
}

// NewDataService creates a new DataService.
func NewDataService(
	fs secondary.FileSystem,
	executor EffectExecutor,
	snapshots snapshotter,
	trigger *SyncTrigger,
	log *zap.Logger,
) *DataServiceImpl {
	return &DataServiceImpl{
		fs:        fs,
		executor:  executor,
		snapshots: snapshots,
		trigger:   trigger,
		log:       log,
		homeDir:   os.UserHomeDir,
	}
}

var _ primary.DataService = (*DataServiceImpl)(nil)

// DataPath returns the data directory.
func (s *DataServiceImpl) DataPath() string {
	return s.fs.DataDir()
}

// Export returns the data directory after checking that it exists.
func (s *DataServiceImpl) Export(ctx context.Context) (string, error) {
	dir := s.fs.DataDir()
	exists, isDir, err := s.fs.Stat(ctx, dir)
	if err != nil {
		return "", fmt.Errorf("failed to stat data directory: %w", err)
	}
	if !exists || !isDir {
		return "", fmt.Errorf("data directory %s does not exist", dir)
	}
	return dir, nil
}

// Import copies the contents of path into the data directory, overwriting
// files with the same name. The store is snapshotted first.
func (s *DataServiceImpl) Import(ctx context.Context, path string) error {
	exists, isDir, err := s.fs.Stat(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to stat import path: %w", err)
	}
	home, err := s.homeDir()
	if err != nil {
		s.log.Debug("no home directory; only temp locations allowed", zap.Error(err))
		home = ""
	}

	if err := datadir.ValidateImportPath(datadir.ImportContext{
		Path:    path,
		HomeDir: home,
		Exists:  exists,
		IsDir:   isDir,
	}); err != nil {
		return err
	}

	entries, err := s.fs.ListTree(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read import directory: %w", err)
	}

	key, err := s.snapshots.CreateSnapshot(ctx, "before import from "+path)
	if err != nil {
		return err
	}

	// The open key/value database is never overwritten.
	entries = datadir.ExcludeTopLevel(entries, db.FileName)
	plan := datadir.PlanImport(path, s.fs.DataDir(), entries)
	if err := s.executor.Execute(ctx, plan); err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}
	s.log.Info("data imported",
		zap.String("from", path),
		zap.Int("entries", len(entries)),
		zap.String("snapshot", key),
	)
	s.trigger.Trigger(ctx)
	return nil
}
