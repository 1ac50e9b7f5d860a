package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/easel/internal/config"
	"github.com/example/easel/internal/metrics"
	"github.com/example/easel/internal/models"
)

func TestCommandTree(t *testing.T) {
	root := &cobra.Command{Use: "easel"}
	root.AddCommand(ClientCmd(), CommissionCmd(), SettingsCmd(), BackupCmd(),
		SyncCmd(), WatchCmd(), StatsCmd(), DataCmd(), ConfigCmd(), VersionCmd())

	tests := []struct {
		path  []string
		flags []string
	}{
		{[]string{"client", "add"}, []string{"contact", "avatar", "notes"}},
		{[]string{"client", "update"}, []string{"name", "contact", "avatar", "notes"}},
		{[]string{"client", "delete"}, []string{"force"}},
		{[]string{"commission", "list"}, []string{"status", "client", "verbose"}},
		{[]string{"commission", "update"}, []string{"type", "price", "description"}},
		{[]string{"commission", "pay"}, nil},
		{[]string{"commission", "attach"}, nil},
		{[]string{"cm", "reopen"}, nil},
		{[]string{"settings", "set"}, nil},
		{[]string{"backup", "snapshot"}, []string{"reason"}},
		{[]string{"backup", "restore"}, nil},
		{[]string{"watch"}, []string{"interval", "limit", "metrics-addr", "verbose"}},
		{[]string{"data", "import"}, nil},
		{[]string{"config", "init"}, []string{"force", "data-dir"}},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.path, " "), func(t *testing.T) {
			cmd, rest, err := root.Find(tt.path)
			if err != nil || len(rest) != 0 {
				t.Fatalf("Find(%v) = %v, %v, %v", tt.path, cmd, rest, err)
			}
			for _, f := range tt.flags {
				if cmd.Flags().Lookup(f) == nil {
					t.Errorf("missing flag --%s", f)
				}
			}
		})
	}
}

func TestCommissionFilters(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		want    models.CommissionStatus
		wantErr bool
	}{
		{name: "no status", status: "", want: ""},
		{name: "pending", status: "pending", want: models.StatusPending},
		{name: "in progress", status: "in-progress", want: models.StatusInProgress},
		{name: "completed", status: "completed", want: models.StatusCompleted},
		{name: "display spelling", status: "In Progress", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters, err := commissionFilters(tt.status, "c1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if filters.Status != tt.want || filters.ClientID != "c1" {
				t.Errorf("filters = %+v", filters)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := initConfig(cmd, dir, "/srv/easel", false); err != nil {
		t.Fatalf("initConfig failed: %v", err)
	}
	if !strings.Contains(buf.String(), filepath.Join(dir, config.FileName)) {
		t.Errorf("unexpected output %q", buf.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "data_dir: /srv/easel") {
		t.Errorf("config missing data dir:\n%s", data)
	}

	if err := initConfig(cmd, dir, "", false); err == nil {
		t.Error("expected error when config already exists")
	}
	if err := initConfig(cmd, dir, "", true); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestMetricsServer(t *testing.T) {
	metrics.RecordSync("completed", 10*time.Millisecond)

	srv := newMetricsServer("127.0.0.1:0")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "easel_sync_runs_total") {
		t.Error("expected sync counter in metrics output")
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status for / = %d, want 404", rec.Code)
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := VersionCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "easel dev") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
