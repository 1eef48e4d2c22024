package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, slog.LevelInfo, "json"))
	logger.Info("Bill created", "bill_id", "b1")
	logger.Debug("hidden")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "Bill created" || entry["bill_id"] != "b1" {
		t.Errorf("unexpected entry: %v", entry)
	}

	buf.Reset()
	logger = slog.New(NewHandler(&buf, slog.LevelInfo, ""))
	logger.Info("Bill created", "bill_id", "b1")
	if !strings.Contains(buf.String(), "Bill created") || !strings.Contains(buf.String(), "b1") {
		t.Errorf("unexpected text output: %q", buf.String())
	}
}
