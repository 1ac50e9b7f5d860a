package commission

import (
	"strings"

	"github.com/google/uuid"
)

// FormatID renders a UUID as a record ID. Record IDs only allow
// alphanumerics and underscores, so the hyphens are dropped.
func FormatID(u uuid.UUID) string {
	return strings.ReplaceAll(u.String(), "-", "")
}

// NewID returns a fresh random record ID.
func NewID() string {
	return FormatID(uuid.New())
}
