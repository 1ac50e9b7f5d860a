package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/example/easel/internal/models"
	"github.com/example/easel/internal/ports/primary"
)

// SettingsKey is the key/value key the settings object is stored under.
const SettingsKey = "settings"

// Setting names accepted by SetSetting.
const (
	SettingDisplayName       = "display_name"
	SettingAnimationsEnabled = "animations_enabled"
	SettingLanguage          = "language"
)

const maxDisplayNameLength = 100

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	backups *BackupManager
	log     *zap.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(backups *BackupManager, log *zap.Logger) *SettingsServiceImpl {
	return &SettingsServiceImpl{backups: backups, log: log}
}

var _ primary.SettingsService = (*SettingsServiceImpl)(nil)

// GetSettings returns the stored settings, their backup, or the defaults.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (models.Settings, error) {
	settings := models.DefaultSettings()
	found, err := s.backups.LoadWithBackupFallback(ctx, SettingsKey, &settings)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !found {
		s.log.Debug("no stored settings; using defaults")
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings stores settings, keeping the previous value as backup.
func (s *SettingsServiceImpl) SaveSettings(ctx context.Context, settings models.Settings) error {
	if len(settings.DisplayName) > maxDisplayNameLength {
		return fmt.Errorf("display name too long (max %d chars)", maxDisplayNameLength)
	}
	if strings.TrimSpace(settings.Language) == "" {
		settings.Language = models.DefaultSettings().Language
	}
	return s.backups.SaveWithBackup(ctx, SettingsKey, settings)
}

// SetSetting updates one setting by name and saves the result.
func (s *SettingsServiceImpl) SetSetting(ctx context.Context, key, value string) (models.Settings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	switch key {
	case SettingDisplayName:
		settings.DisplayName = value
	case SettingAnimationsEnabled:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return models.Settings{}, fmt.Errorf("invalid value for %s: %q", key, value)
		}
		settings.AnimationsEnabled = enabled
	case SettingLanguage:
		if strings.TrimSpace(value) == "" {
			return models.Settings{}, fmt.Errorf("language cannot be empty")
		}
		settings.Language = value
	default:
		return models.Settings{}, fmt.Errorf("unknown setting %q (valid: %s, %s, %s)",
			key, SettingDisplayName, SettingAnimationsEnabled, SettingLanguage)
	}

	if err := s.SaveSettings(ctx, settings); err != nil {
		return models.Settings{}, err
	}
	return settings, nil
}
