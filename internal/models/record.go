package models

// RawRecord is an undecoded record as read from the record store.
type RawRecord struct {
	Source string // store-relative location, used in diagnostics
	Data   []byte
}

// SkipDiagnostic describes a record that was left out of a lenient load.
type SkipDiagnostic struct {
	Source   string `json:"source"`
	RecordID string `json:"record_id,omitempty"`
	Reason   string `json:"reason"`
}
