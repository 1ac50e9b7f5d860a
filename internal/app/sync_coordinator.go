package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/example/easel/internal/core/mapper"
	"github.com/example/easel/internal/metrics"
	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/primary"
)

// SyncCoordinator reloads every collection from storage and publishes the
// merged result. At most one reload runs at a time; overlapping requests
// are dropped, not queued.
type SyncCoordinator struct {
	store *PersistenceService
	log   *zap.Logger
	now   func() time.Time

	inFlight atomic.Bool

	mu    sync.RWMutex
	state models.SyncState
}

// NewSyncCoordinator creates a new SyncCoordinator.
func NewSyncCoordinator(store *PersistenceService, log *zap.Logger) *SyncCoordinator {
	return &SyncCoordinator{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

var _ primary.SyncService = (*SyncCoordinator)(nil)

// SyncNow reloads all collections unless a reload is already in flight.
// The reload is not cancelled by ctx.
func (c *SyncCoordinator) SyncNow(ctx context.Context) {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.log.Debug("sync already in flight; skipping")
		metrics.RecordSync("skipped", 0)
		return
	}
	defer c.inFlight.Store(false)

	start := c.now()
	contents, err := c.store.LoadAll(context.WithoutCancel(ctx))
	if err != nil {
		c.log.Error("sync failed", zap.Error(err))
		metrics.RecordSync("failed", 0)
		c.mu.Lock()
		c.state.LastError = err.Error()
		c.state.Runs++
		c.mu.Unlock()
		return
	}

	view := buildView(contents)
	for _, d := range view.Skipped {
		if d.Source == "" {
			c.log.Warn("skipped unmappable record", zap.String("id", d.RecordID), zap.String("reason", d.Reason))
		}
	}
	metrics.RecordSkipped("all", len(view.Skipped))

	c.mu.Lock()
	c.state = models.SyncState{
		Clients:     view.Clients,
		Commissions: view.Commissions,
		Skipped:     view.Skipped,
		LastSync:    c.now(),
		Runs:        c.state.Runs + 1,
	}
	c.mu.Unlock()

	metrics.RecordSync("completed", c.now().Sub(start))
	c.log.Debug("sync completed",
		zap.Int("clients", len(view.Clients)),
		zap.Int("commissions", len(view.Commissions)),
		zap.Int("skipped", len(view.Skipped)),
	)
}

// State returns the most recently published result.
func (c *SyncCoordinator) State() models.SyncState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Poll calls SyncNow every interval until limit has elapsed or ctx is done.
// Ticks that land while a reload is running are dropped by SyncNow. Poll
// returns once every reload it started has finished.
func (c *SyncCoordinator) Poll(ctx context.Context, interval, limit time.Duration) {
	if interval <= 0 {
		return
	}
	deadline := time.NewTimer(limit)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			return
		case <-ticker.C:
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.SyncNow(ctx)
			}()
		}
	}
}

// view is the mapped and merged form of the store contents.
type view struct {
	Clients     []models.Client
	Commissions []models.Commission
	Skipped     []models.SkipDiagnostic
}

func buildView(contents *StoreContents) view {
	clients, clientSkips := mapper.MapClients(contents.Clients)
	commissions, commissionSkips := mapper.MapCommissions(contents.Commissions)

	commissions = mapper.MergeClients(commissions, clients)
	clients = mapper.ApplyCommissionStats(clients, commissions)
	mapper.SortCommissions(commissions)

	skipped := append([]models.SkipDiagnostic{}, contents.Skipped...)
	skipped = append(skipped, clientSkips...)
	skipped = append(skipped, commissionSkips...)
	return view{Clients: clients, Commissions: commissions, Skipped: skipped}
}

// SyncTrigger lets mutating services request a reload without depending
// on the coordinator. Nothing is registered until wiring completes.
type SyncTrigger struct {
	mu  sync.RWMutex
	fn  func(context.Context)
	log *zap.Logger
}

// NewSyncTrigger creates an empty SyncTrigger.
func NewSyncTrigger(log *zap.Logger) *SyncTrigger {
	return &SyncTrigger{log: log}
}

// Register installs fn as the reload to run on Trigger.
func (t *SyncTrigger) Register(fn func(context.Context)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fn = fn
}

// Unregister removes the installed reload.
func (t *SyncTrigger) Unregister() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fn = nil
}

// Trigger runs the registered reload. With nothing registered it only
// logs a warning.
func (t *SyncTrigger) Trigger(ctx context.Context) {
	t.mu.RLock()
	fn := t.fn
	t.mu.RUnlock()

	if fn == nil {
		t.log.Warn("sync triggered but no sync function is registered")
		metrics.TriggersIgnored.Inc()
		return
	}
	fn(ctx)
}
