package models

import "time"

// Snapshot is the content of an emergency snapshot: everything needed to
// rebuild the store as it was at CreatedAt.
type Snapshot struct {
	CreatedAt   time.Time           `json:"created_at"`
	Reason      string              `json:"reason,omitempty"`
	Settings    Settings            `json:"settings"`
	Clients     []StorageClient     `json:"clients"`
	Commissions []StorageCommission `json:"commissions"`
}

// SyncState is the result of the most recent reload of all collections.
type SyncState struct {
	Clients     []Client         `json:"clients"`
	Commissions []Commission     `json:"commissions"`
	Skipped     []SkipDiagnostic `json:"skipped,omitempty"`
	LastSync    time.Time        `json:"last_sync,omitzero"`
	LastError   string           `json:"last_error,omitempty"`
	Runs        int              `json:"runs"`
}
