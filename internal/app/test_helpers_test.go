package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/example/easel/internal/core/datadir"
	"github.com/example/easel/internal/core/effects"
	"github.com/example/easel/internal/core/schema"
	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockRecordStore implements the client, commission and image stores in memory.
type mockRecordStore struct {
	mu          sync.Mutex
	clients     map[string][]byte
	commissions map[models.Bucket]map[string][]byte
	images      map[string][]byte

	// When set, bulk loads block until gate is closed.
	gate            chan struct{}
	clientLoads     atomic.Int32
	commissionLoads map[models.Bucket]*atomic.Int32

	saveErr error
	loadErr error
	moveErr error
}

func newMockRecordStore() *mockRecordStore {
	m := &mockRecordStore{
		clients:         make(map[string][]byte),
		commissions:     make(map[models.Bucket]map[string][]byte),
		images:          make(map[string][]byte),
		commissionLoads: make(map[models.Bucket]*atomic.Int32),
	}
	for _, b := range []models.Bucket{models.BucketPending, models.BucketCompleted} {
		m.commissions[b] = make(map[string][]byte)
		m.commissionLoads[b] = new(atomic.Int32)
	}
	return m
}

// putRaw stores undecoded bytes, bypassing validation.
func (m *mockRecordStore) putRaw(bucket models.Bucket, id, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commissions[bucket][id] = []byte(data)
}

func (m *mockRecordStore) putRawClient(id, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[id] = []byte(data)
}

func (m *mockRecordStore) has(bucket models.Bucket, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.commissions[bucket][id]
	return ok
}

func (m *mockRecordStore) stored(bucket models.Bucket, id string) models.StorageCommission {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, err := schema.DecodeCommission(m.commissions[bucket][id])
	if err != nil {
		panic(err)
	}
	return rec
}

func (m *mockRecordStore) wait() {
	m.mu.Lock()
	gate := m.gate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (m *mockRecordStore) SaveClient(ctx context.Context, rec models.StorageClient) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := schema.EncodeClient(rec)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[rec.ID] = data
	return nil
}

func (m *mockRecordStore) LoadClient(ctx context.Context, id string) (models.RawRecord, error) {
	if m.loadErr != nil {
		return models.RawRecord{}, m.loadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.clients[id]
	if !ok {
		return models.RawRecord{}, secondary.ErrRecordNotFound
	}
	return models.RawRecord{Source: "clients/" + id + ".json", Data: data}, nil
}

func (m *mockRecordStore) LoadAllClients(ctx context.Context) ([]models.RawRecord, error) {
	m.clientLoads.Add(1)
	m.wait()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedRaw("clients", m.clients), nil
}

func (m *mockRecordStore) DeleteClient(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, id)
	return nil
}

func (m *mockRecordStore) SaveCommission(ctx context.Context, bucket models.Bucket, rec models.StorageCommission) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	data, err := schema.EncodeCommission(rec)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commissions[bucket][rec.ID] = data
	return nil
}

func (m *mockRecordStore) LoadCommission(ctx context.Context, bucket models.Bucket, id string) (models.RawRecord, error) {
	if m.loadErr != nil {
		return models.RawRecord{}, m.loadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.commissions[bucket][id]
	if !ok {
		return models.RawRecord{}, secondary.ErrRecordNotFound
	}
	return models.RawRecord{Source: string(bucket) + "/" + id + ".json", Data: data}, nil
}

func (m *mockRecordStore) LoadCommissions(ctx context.Context, bucket models.Bucket) ([]models.RawRecord, error) {
	m.commissionLoads[bucket].Add(1)
	m.wait()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedRaw(string(bucket), m.commissions[bucket]), nil
}

func (m *mockRecordStore) MoveCommission(ctx context.Context, id string, from, to models.Bucket) error {
	if m.moveErr != nil {
		return m.moveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.commissions[from][id]
	if !ok {
		return secondary.ErrRecordNotFound
	}
	delete(m.commissions[from], id)
	m.commissions[to][id] = data
	return nil
}

func (m *mockRecordStore) DeleteCommission(ctx context.Context, bucket models.Bucket, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.commissions[bucket][id]; !ok {
		return secondary.ErrRecordNotFound
	}
	delete(m.commissions[bucket], id)
	return nil
}

func (m *mockRecordStore) SaveImage(ctx context.Context, clientName, commissionID, filename string, data []byte) (string, error) {
	ref := fmt.Sprintf("images/%s_%s", commissionID, filename)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[ref] = data
	return ref, nil
}

func sortedRaw(prefix string, recs map[string][]byte) []models.RawRecord {
	ids := make([]string, 0, len(recs))
	for id := range recs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]models.RawRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.RawRecord{Source: prefix + "/" + id + ".json", Data: recs[id]})
	}
	return out
}

// mockKeyValueStore implements secondary.KeyValueStore for testing.
type mockKeyValueStore struct {
	mu     sync.Mutex
	values map[string][]byte
	writes []string // keys in write order

	getErr error
	setErr error
	// failSetKey makes Set fail for one key only.
	failSetKey string
}

func newMockKeyValueStore() *mockKeyValueStore {
	return &mockKeyValueStore{values: make(map[string][]byte)}
}

func (m *mockKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, secondary.ErrRecordNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *mockKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.failSetKey != "" && key == m.failSetKey {
		return errors.New("disk full")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	m.writes = append(m.writes, key)
	return nil
}

func (m *mockKeyValueStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *mockKeyValueStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var keys []string
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// mockFileSystem implements secondary.FileSystem for testing.
type mockFileSystem struct {
	dataDir string
	dirs    map[string]bool // path -> exists as directory
	trees   map[string][]datadir.Entry
	copies  []effects.FileEffect
	mkdirs  []string
	statErr error
}

func newMockFileSystem(dataDir string) *mockFileSystem {
	return &mockFileSystem{
		dataDir: dataDir,
		dirs:    map[string]bool{dataDir: true},
		trees:   make(map[string][]datadir.Entry),
	}
}

func (m *mockFileSystem) DataDir() string { return m.dataDir }

func (m *mockFileSystem) Stat(ctx context.Context, path string) (bool, bool, error) {
	if m.statErr != nil {
		return false, false, m.statErr
	}
	isDir, ok := m.dirs[path]
	return ok, isDir, nil
}

func (m *mockFileSystem) ListTree(ctx context.Context, root string) ([]datadir.Entry, error) {
	return m.trees[root], nil
}

func (m *mockFileSystem) MkdirAll(ctx context.Context, path string, mode uint32) error {
	m.mkdirs = append(m.mkdirs, path)
	return nil
}

func (m *mockFileSystem) CopyFile(ctx context.Context, src, dst string, mode uint32) error {
	m.copies = append(m.copies, effects.FileEffect{Operation: effects.FileCopy, Source: src, Path: dst, Mode: mode})
	return nil
}

var (
	_ secondary.ClientStore     = (*mockRecordStore)(nil)
	_ secondary.CommissionStore = (*mockRecordStore)(nil)
	_ secondary.ImageStore      = (*mockRecordStore)(nil)
	_ secondary.KeyValueStore   = (*mockKeyValueStore)(nil)
	_ secondary.FileSystem      = (*mockFileSystem)(nil)
)

// ============================================================================
// Fixtures
// ============================================================================

// testEnv is a fully wired set of services over in-memory stores.
type testEnv struct {
	records     *mockRecordStore
	kv          *mockKeyValueStore
	fs          *mockFileSystem
	store       *PersistenceService
	backups     *BackupManager
	trigger     *SyncTrigger
	coordinator *SyncCoordinator
	settings    *SettingsServiceImpl
	backupSvc   *BackupServiceImpl
	clients     *ClientServiceImpl
	commissions *CommissionServiceImpl
}

func newTestEnv(log *zap.Logger) *testEnv {
	records := newMockRecordStore()
	kv := newMockKeyValueStore()
	fs := newMockFileSystem("/data")
	executor := NewEffectExecutor(kv, fs, log)

	store := NewPersistenceService(records, records, fs.DataDir(), log)
	backups := NewBackupManager(kv, executor, log)
	trigger := NewSyncTrigger(log)
	coordinator := NewSyncCoordinator(store, log)
	trigger.Register(coordinator.SyncNow)
	settings := NewSettingsService(backups, log)
	backupSvc := NewBackupService(store, backups, settings, trigger, log)

	return &testEnv{
		records:     records,
		kv:          kv,
		fs:          fs,
		store:       store,
		backups:     backups,
		trigger:     trigger,
		coordinator: coordinator,
		settings:    settings,
		backupSvc:   backupSvc,
		clients:     NewClientService(store, backupSvc, trigger, log),
		commissions: NewCommissionService(store, records, trigger, log),
	}
}

func storageCommission(id, clientID string, status, payment string) models.StorageCommission {
	return models.StorageCommission{
		ID:            id,
		ClientID:      clientID,
		ClientName:    "Ada",
		Title:         "Portrait",
		Description:   "Half body",
		PriceCents:    4999,
		PaymentStatus: payment,
		Status:        status,
		CreatedAt:     "2024-03-01T10:00:00Z",
		UpdatedAt:     "2024-03-05T10:00:00Z",
		Images:        []string{},
	}
}

func storageClient(id, name string) models.StorageClient {
	return models.StorageClient{
		ID:        id,
		Name:      name,
		Contact:   name + "@example.com",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
	}
}
