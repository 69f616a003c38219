package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, `log:
  level: info
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
	if cfg.Server.GRPCPort != DefaultGRPCPort {
		t.Errorf("grpc_port: got %d, want %d", cfg.Server.GRPCPort, DefaultGRPCPort)
	}
	if cfg.Dataset.Path != DefaultDatasetPath {
		t.Errorf("dataset.path: got %q, want %q", cfg.Dataset.Path, DefaultDatasetPath)
	}
	if cfg.Dataset.Watch {
		t.Error("dataset.watch: got true, want false")
	}
	if cfg.Render.Width != DefaultRenderWidth || cfg.Render.Height != DefaultRenderHeight {
		t.Errorf("render: got %dx%d, want %dx%d", cfg.Render.Width, cfg.Render.Height,
			DefaultRenderWidth, DefaultRenderHeight)
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `server:
  http_port: 9000
  grpc_port: 0
  shutdown_timeout: 3s
dataset:
  path: /data/launches.csv
  watch: true
render:
  width: 640
  height: 480
log:
  level: debug
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTPPort != 9000 {
		t.Errorf("http_port: got %d, want 9000", cfg.Server.HTTPPort)
	}
	if cfg.Server.GRPCPort != 0 {
		t.Errorf("grpc_port: got %d, want 0", cfg.Server.GRPCPort)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("shutdown_timeout: got %v, want 3s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Dataset.Path != "/data/launches.csv" || !cfg.Dataset.Watch {
		t.Errorf("dataset: got %+v", cfg.Dataset)
	}
	if cfg.Render.Width != 640 || cfg.Render.Height != 480 {
		t.Errorf("render: got %dx%d, want 640x480", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Log.SlogLevel() != slog.LevelDebug {
		t.Errorf("log level: got %v, want debug", cfg.Log.SlogLevel())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"http port out of range", "server:\n  http_port: 70000\n"},
		{"negative grpc port", "server:\n  grpc_port: -1\n"},
		{"port clash", "server:\n  http_port: 9000\n  grpc_port: 9000\n"},
		{"empty dataset path", "dataset:\n  path: \"  \"\n"},
		{"zero render width", "render:\n  width: 0\n"},
		{"unknown log level", "log:\n  level: verbose\n"},
		{"bad yaml", "server: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.content)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Server.HTTPPort != DefaultHTTPPort {
		t.Errorf("http_port: got %d, want %d", cfg.Server.HTTPPort, DefaultHTTPPort)
	}
}

func TestLoadOrDefault_InvalidFileStillFails(t *testing.T) {
	p := writeConfig(t, "log:\n  level: loud\n")
	if _, err := LoadOrDefault(p); err == nil {
		t.Fatal("expected error for invalid config, got nil")
	}
}
