package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"opsdeck/internal/infra/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestOpenOutputTargets(t *testing.T) {
	w, closer, err := openOutput("stdout")
	if err != nil {
		t.Fatalf("openOutput(stdout): %v", err)
	}
	defer closer()
	if w != os.Stdout {
		t.Error("expected os.Stdout")
	}

	// Empty defaults to discard: a TUI must never log to the terminal.
	w, closer, err = openOutput("")
	if err != nil {
		t.Fatalf("openOutput(''): %v", err)
	}
	defer closer()
	if w != io.Discard {
		t.Error("expected io.Discard for empty output")
	}
}

func TestOpenOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opsdeck.log")

	log, closer, err := New(config.LoggerConfig{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Info("hello", "k", "v")
	if err := closer(); err != nil {
		t.Fatalf("closer: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opsdeck.log")

	log, closer, err := New(config.LoggerConfig{Level: "warn", Format: "text", Output: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Debug("dropped")
	log.Warn("kept")
	closer()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "dropped") {
		t.Error("debug entry should be filtered at warn level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("warn entry missing")
	}
}
