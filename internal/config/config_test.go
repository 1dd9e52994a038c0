package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"kei/internal/config"
)

func TestLoadFullFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kei.toml")
	content := `[runtime]
color = "off"
trace = "heap.trace"
heap_debug = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Runtime.Color != "off" {
		t.Errorf("expected color off, got %q", cfg.Runtime.Color)
	}
	if cfg.Runtime.Trace != "heap.trace" {
		t.Errorf("expected trace path, got %q", cfg.Runtime.Trace)
	}
	if !cfg.Runtime.HeapDebug {
		t.Error("expected heap_debug true")
	}
}

func TestLoadEmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kei.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Runtime.Color != "auto" {
		t.Errorf("expected default color auto, got %q", cfg.Runtime.Color)
	}
	if cfg.Runtime.Trace != "" || cfg.Runtime.HeapDebug {
		t.Errorf("expected zero trace/heap_debug, got %+v", cfg.Runtime)
	}
}

func TestDiscoverMissingFile(t *testing.T) {
	cfg, err := config.Discover(t.TempDir())
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if cfg.Runtime.Color != "auto" {
		t.Errorf("expected defaults, got %+v", cfg.Runtime)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	want := filepath.Join(root, "kei.toml")
	if err := os.WriteFile(want, []byte("[runtime]\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	got, ok, err := config.Find(nested)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !ok {
		t.Fatal("expected to find kei.toml in ancestor")
	}
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kei.toml")
	if err := os.WriteFile(path, []byte("[runtime\ncolor="), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
