package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		wantErr bool
	}{
		{"info", "console", false},
		{"debug", "json", false},
		{"WARN", "console", false},
		{"loud", "console", true},
	}
	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			l, err := New(tt.level, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			want, _ := zapcore.ParseLevel(tt.level)
			if !l.Core().Enabled(want) {
				t.Errorf("level %s should be enabled", want)
			}
			if want > zapcore.DebugLevel && l.Core().Enabled(want-1) {
				t.Errorf("level below %s should be disabled", want)
			}
		})
	}
}
