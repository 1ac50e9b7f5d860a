// Package effects defines effect types as data structures representing I/O operations.
// Planners in the core return effects; the app layer executes them in order.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// KV operations.
const (
	KVSet    = "set"
	KVDelete = "delete"
)

// KVEffect represents a write against the key/value store.
type KVEffect struct {
	Operation string // KVSet or KVDelete
	Key       string
	Value     []byte // For set operations
}

func (e KVEffect) EffectType() string { return "kv" }

// File operations.
const (
	FileMkdir = "mkdir"
	FileCopy  = "copy"
)

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string // FileMkdir or FileCopy
	Path      string // Destination
	Source    string // For copy operations
	Mode      uint32 // File permissions
}

func (e FileEffect) EffectType() string { return "file" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
