package primary

import (
	"context"

	"github.com/example/easel/internal/models"
)

// SettingsService defines the primary port for user settings.
type SettingsService interface {
	// GetSettings returns the saved settings, or defaults when none are readable.
	GetSettings(ctx context.Context) (models.Settings, error)

	// SaveSettings persists settings through the backup-wrapped path.
	SaveSettings(ctx context.Context, settings models.Settings) error

	// SetSetting updates a single setting by its key name.
	SetSetting(ctx context.Context, key, value string) (models.Settings, error)
}
