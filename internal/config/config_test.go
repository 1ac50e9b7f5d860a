package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"EASEL_DATA_DIR", "EASEL_LOG_LEVEL", "EASEL_LOG_FORMAT", "EASEL_METRICS_ADDR", "EASEL_POLL_INTERVAL", "EASEL_POLL_DURATION"} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DataDir != "" {
		t.Errorf("expected empty data dir, got %q", cfg.DataDir)
	}
	if cfg.Sync.PollInterval != 5*time.Second {
		t.Errorf("expected 5s poll interval, got %s", cfg.Sync.PollInterval)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("expected console format, got %q", cfg.Log.Format)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "data_dir: /srv/easel\nlog:\n  level: debug\n  format: json\nsync:\n  poll_interval: 2s\n  poll_duration: 1m\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DataDir != "/srv/easel" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Sync.PollInterval != 2*time.Second || cfg.Sync.PollDuration != time.Minute {
		t.Errorf("Sync = %+v", cfg.Sync)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("data_dir: /from/file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EASEL_DATA_DIR", "/from/env")
	t.Setenv("EASEL_POLL_INTERVAL", "250ms")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DataDir != "/from/env" {
		t.Errorf("DataDir = %q, want env value", cfg.DataDir)
	}
	if cfg.Sync.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %s", cfg.Sync.PollInterval)
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("EASEL_METRICS_ADDR")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("EASEL_METRICS_ADDR=127.0.0.1:9100\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("EASEL_METRICS_ADDR") })

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Metrics.Addr != "127.0.0.1:9100" {
		t.Errorf("Metrics.Addr = %q", cfg.Metrics.Addr)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "bad yaml", yaml: "log: [\n"},
		{name: "bad format", yaml: "log:\n  format: xml\n"},
		{name: "zero interval", yaml: "sync:\n  poll_interval: 0s\n"},
		{name: "bad env duration", env: map[string]string{"EASEL_POLL_DURATION": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			if tt.yaml != "" {
				if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.yaml), 0644); err != nil {
					t.Fatal(err)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(dir); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg := Default()
	cfg.DataDir = "/data"
	cfg.Sync.PollInterval = 3 * time.Second

	if err := SaveConfig(dir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.DataDir != "/data" || loaded.Sync.PollInterval != 3*time.Second {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("EASEL_CONFIG_DIR", "/etc/easel")
	dir, err := Dir()
	if err != nil || dir != "/etc/easel" {
		t.Errorf("Dir() = %q, %v; want /etc/easel", dir, err)
	}

	t.Setenv("EASEL_CONFIG_DIR", "")
	t.Setenv("HOME", "/home/artist")
	dir, err = Dir()
	if err != nil || dir != filepath.Join("/home/artist", ".easel") {
		t.Errorf("Dir() = %q, %v; want ~/.easel", dir, err)
	}
}
