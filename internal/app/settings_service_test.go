package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/easel/internal/models"
)

func TestSettingsService_DefaultsWhenNothingStored(t *testing.T) {
	env := newTestEnv(zap.NewNop())

	got, err := env.settings.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), got)
}

func TestSettingsService_PartialStoredSettingsKeepDefaults(t *testing.T) {
	env := newTestEnv(zap.NewNop())
	env.kv.values[SettingsKey] = []byte(`{"display_name":"Ada"}`)

	got, err := env.settings.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.True(t, got.AnimationsEnabled)
	assert.Equal(t, "en", got.Language)
}

func TestSettingsService_SetSetting(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(zap.NewNop())

	_, err := env.settings.SetSetting(ctx, SettingDisplayName, "Ada Draws")
	require.NoError(t, err)
	got, err := env.settings.SetSetting(ctx, SettingAnimationsEnabled, "false")
	require.NoError(t, err)

	assert.Equal(t, "Ada Draws", got.DisplayName)
	assert.False(t, got.AnimationsEnabled)

	reloaded, err := env.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestSettingsService_SetSettingRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(zap.NewNop())

	_, err := env.settings.SetSetting(ctx, "theme", "dark")
	assert.Error(t, err)
	_, err = env.settings.SetSetting(ctx, SettingAnimationsEnabled, "sometimes")
	assert.Error(t, err)
	_, err = env.settings.SetSetting(ctx, SettingLanguage, " ")
	assert.Error(t, err)
}

func TestSettingsService_CorruptSettingsUseBackup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(zap.NewNop())
	_, err := env.settings.SetSetting(ctx, SettingDisplayName, "v1")
	require.NoError(t, err)
	_, err = env.settings.SetSetting(ctx, SettingDisplayName, "v2")
	require.NoError(t, err)

	env.kv.values[SettingsKey] = []byte("{broken")

	got, err := env.settings.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v1", got.DisplayName)
}
