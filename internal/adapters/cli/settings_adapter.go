package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/easel/internal/ports/primary"
)

// SettingsAdapter translates CLI operations to SettingsService calls.
type SettingsAdapter struct {
	service primary.SettingsService
	out     io.Writer
}

// NewSettingsAdapter creates a new SettingsAdapter.
func NewSettingsAdapter(service primary.SettingsService, out io.Writer) *SettingsAdapter {
	return &SettingsAdapter{service: service, out: out}
}

// Show prints the current settings.
func (a *SettingsAdapter) Show(ctx context.Context) error {
	s, err := a.service.GetSettings(ctx)
	if err != nil {
		return err
	}
	name := s.DisplayName
	if name == "" {
		name = "(not set)"
	}
	fmt.Fprintf(a.out, "display_name:       %s\n", name)
	fmt.Fprintf(a.out, "animations_enabled: %t\n", s.AnimationsEnabled)
	fmt.Fprintf(a.out, "language:           %s\n", s.Language)
	return nil
}

// Set updates one setting.
func (a *SettingsAdapter) Set(ctx context.Context, key, value string) error {
	if _, err := a.service.SetSetting(ctx, key, value); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s = %s\n", okMark, key, value)
	return nil
}
