package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/easel/internal/core/schema"
	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/secondary"
)

// Top-level folders of the data directory.
const (
	ClientsDir  = "clients"
	PendingsDir = "pendings"
	HistoryDir  = "history"
	ImagesDir   = "images"
)

// RecordStore implements the client, commission and image ports on top of
// a directory of JSON files:
//
//	clients/<id>.json
//	pendings/<client>/<id>_<created_at>.json
//	history/<client>/<id>_<created_at>.json
//	pendings/<client>/images/<id>_<file>
type RecordStore struct {
	root string
}

// NewRecordStore creates a record store rooted at dataDir and makes sure
// the top-level folders exist.
func NewRecordStore(dataDir string) (*RecordStore, error) {
	for _, dir := range []string{ClientsDir, PendingsDir, HistoryDir} {
		if err := os.MkdirAll(filepath.Join(dataDir, dir), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s folder: %w", dir, err)
		}
	}
	return &RecordStore{root: dataDir}, nil
}

// Root returns the data directory.
func (s *RecordStore) Root() string {
	return s.root
}

// SanitizeName replaces characters that are unsafe in a path segment.
func SanitizeName(name string) string {
	return strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_",
	).Replace(name)
}

// SanitizeTimestamp makes a timestamp usable inside a file name.
func SanitizeTimestamp(ts string) string {
	return strings.NewReplacer(
		":", "-", "/", "-", "\\", "-", "*", "-", "?", "-",
		"\"", "-", "<", "-", ">", "-", "|", "-",
	).Replace(ts)
}

// CommissionFileName returns the file name a record is first written under.
func CommissionFileName(rec models.StorageCommission) string {
	return rec.ID + "_" + SanitizeTimestamp(rec.CreatedAt) + ".json"
}

// RecordIDFromFileName extracts the record ID from a commission file name.
// IDs may contain underscores, so everything before the last one is the ID.
func RecordIDFromFileName(name string) string {
	base := strings.TrimSuffix(name, ".json")
	if i := strings.LastIndex(base, "_"); i > 0 {
		return base[:i]
	}
	return base
}

func bucketDir(bucket models.Bucket) (string, error) {
	switch bucket {
	case models.BucketPending:
		return PendingsDir, nil
	case models.BucketCompleted:
		return HistoryDir, nil
	default:
		return "", fmt.Errorf("unknown bucket %q", bucket)
	}
}

// SaveClient writes clients/<id>.json atomically.
func (s *RecordStore) SaveClient(ctx context.Context, rec models.StorageClient) error {
	if err := schema.ValidateID(rec.ID); err != nil {
		return err
	}
	data, err := schema.EncodeClient(rec)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.clientPath(rec.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write client %s: %w", rec.ID, err)
	}
	return nil
}

// LoadClient reads clients/<id>.json.
func (s *RecordStore) LoadClient(ctx context.Context, id string) (models.RawRecord, error) {
	if err := schema.ValidateID(id); err != nil {
		return models.RawRecord{}, err
	}
	return s.readRecord(s.clientPath(id))
}

// LoadAllClients reads every file in clients/.
func (s *RecordStore) LoadAllClients(ctx context.Context) ([]models.RawRecord, error) {
	return s.readJSONFiles(filepath.Join(s.root, ClientsDir))
}

// DeleteClient removes clients/<id>.json.
func (s *RecordStore) DeleteClient(ctx context.Context, id string) error {
	if err := schema.ValidateID(id); err != nil {
		return err
	}
	return removeIfExists(s.clientPath(id))
}

// SaveCommission writes a commission into bucket. A record already stored
// under the same ID keeps its file; otherwise a new file is created.
func (s *RecordStore) SaveCommission(ctx context.Context, bucket models.Bucket, rec models.StorageCommission) error {
	if err := schema.ValidateID(rec.ID); err != nil {
		return err
	}
	dir, err := bucketDir(bucket)
	if err != nil {
		return err
	}
	data, err := schema.EncodeCommission(rec)
	if err != nil {
		return err
	}

	path, err := s.findCommission(bucket, rec.ID)
	if errors.Is(err, secondary.ErrRecordNotFound) {
		path = filepath.Join(s.root, dir, SanitizeName(rec.ClientName), CommissionFileName(rec))
	} else if err != nil {
		return err
	}

	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write commission %s: %w", rec.ID, err)
	}
	return nil
}

// LoadCommission reads a single commission from bucket.
func (s *RecordStore) LoadCommission(ctx context.Context, bucket models.Bucket, id string) (models.RawRecord, error) {
	if err := schema.ValidateID(id); err != nil {
		return models.RawRecord{}, err
	}
	path, err := s.findCommission(bucket, id)
	if err != nil {
		return models.RawRecord{}, err
	}
	return s.readRecord(path)
}

// LoadCommissions reads every commission file in bucket.
func (s *RecordStore) LoadCommissions(ctx context.Context, bucket models.Bucket) ([]models.RawRecord, error) {
	clientDirs, err := s.clientDirs(bucket)
	if err != nil {
		return nil, err
	}
	var out []models.RawRecord
	for _, dir := range clientDirs {
		recs, err := s.readJSONFiles(dir)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// MoveCommission renames the record's file into the other bucket, keeping
// its client folder and file name. The rename is the only step, so the
// record is never visible in both buckets or in neither.
func (s *RecordStore) MoveCommission(ctx context.Context, id string, from, to models.Bucket) error {
	if err := schema.ValidateID(id); err != nil {
		return err
	}
	fromDir, err := bucketDir(from)
	if err != nil {
		return err
	}
	toDir, err := bucketDir(to)
	if err != nil {
		return err
	}
	src, err := s.findCommission(from, id)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}

	rel, err := filepath.Rel(filepath.Join(s.root, fromDir), src)
	if err != nil {
		return fmt.Errorf("failed to resolve commission path: %w", err)
	}
	dst := filepath.Join(s.root, toDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to move commission %s: %w", id, err)
	}
	return nil
}

// DeleteCommission removes a commission file from bucket.
func (s *RecordStore) DeleteCommission(ctx context.Context, bucket models.Bucket, id string) error {
	if err := schema.ValidateID(id); err != nil {
		return err
	}
	path, err := s.findCommission(bucket, id)
	if err != nil {
		return err
	}
	return removeIfExists(path)
}

// SaveImage writes pendings/<client>/images/<id>_<file> and returns the
// reference path stored on the commission.
func (s *RecordStore) SaveImage(ctx context.Context, clientName, commissionID, filename string, data []byte) (string, error) {
	if err := schema.ValidateID(commissionID); err != nil {
		return "", err
	}
	name := commissionID + "_" + SanitizeName(filename)
	path := filepath.Join(s.root, PendingsDir, SanitizeName(clientName), ImagesDir, name)
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	return ImagesDir + "/" + name, nil
}

func (s *RecordStore) clientPath(id string) string {
	return filepath.Join(s.root, ClientsDir, id+".json")
}

func (s *RecordStore) clientDirs(bucket models.Bucket) ([]string, error) {
	dir, err := bucketDir(bucket)
	if err != nil {
		return nil, err
	}
	base := filepath.Join(s.root, dir)
	entries, err := os.ReadDir(base)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(base, e.Name()))
		}
	}
	return dirs, nil
}

func (s *RecordStore) findCommission(bucket models.Bucket, id string) (string, error) {
	dirs, err := s.clientDirs(bucket)
	if err != nil {
		return "", err
	}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return "", fmt.Errorf("failed to read directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
				continue
			}
			if RecordIDFromFileName(e.Name()) == id {
				return filepath.Join(dir, e.Name()), nil
			}
		}
	}
	return "", fmt.Errorf("commission %s in %s: %w", id, bucket, secondary.ErrRecordNotFound)
}

func (s *RecordStore) readRecord(path string) (models.RawRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.RawRecord{}, fmt.Errorf("%s: %w", s.rel(path), secondary.ErrRecordNotFound)
	}
	if err != nil {
		return models.RawRecord{}, fmt.Errorf("failed to read file: %w", err)
	}
	return models.RawRecord{Source: s.rel(path), Data: data}, nil
}

// readJSONFiles reads the *.json files directly inside dir, sorted by name.
func (s *RecordStore) readJSONFiles(dir string) ([]models.RawRecord, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []models.RawRecord
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		rec, err := s.readRecord(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *RecordStore) rel(path string) string {
	if r, err := filepath.Rel(s.root, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}

// writeFileAtomic writes to a temp file in the target directory, syncs it,
// then renames it over path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

var (
	_ secondary.ClientStore     = (*RecordStore)(nil)
	_ secondary.CommissionStore = (*RecordStore)(nil)
	_ secondary.ImageStore      = (*RecordStore)(nil)
)
