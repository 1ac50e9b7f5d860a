package primary

import (
	"context"
	"time"

	"github.com/example/easel/internal/models"
)

// SyncService defines the primary port for reloading all collections.
type SyncService interface {
	// SyncNow reloads everything unless a reload is already running, in
	// which case it returns immediately without doing anything.
	SyncNow(ctx context.Context)

	// State returns the most recently published reload result.
	State() models.SyncState

	// Poll calls SyncNow every interval until limit elapses or ctx is done.
	Poll(ctx context.Context, interval, limit time.Duration)
}
