// Package config loads the optional kei.toml runtime options file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// File is the decoded kei.toml.
type File struct {
	Runtime Runtime `toml:"runtime"`
}

// Runtime holds the [runtime] table.
type Runtime struct {
	// Color controls diagnostic coloring: auto|on|off.
	Color string `toml:"color"`
	// Trace is a path to write the heap trace stream to, empty to disable.
	Trace string `toml:"trace"`
	// HeapDebug enables the live-allocation ledger and shutdown leak check.
	HeapDebug bool `toml:"heap_debug"`
}

// Default returns the configuration used when no kei.toml exists.
func Default() *File {
	return &File{Runtime: Runtime{Color: "auto"}}
}

// Find walks from startDir to the filesystem root looking for kei.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "kei.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the file at path, filling unset fields with defaults.
func Load(path string) (*File, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if cfg.Runtime.Color == "" {
		cfg.Runtime.Color = "auto"
	}
	return cfg, nil
}

// Discover finds and loads kei.toml starting at startDir. A missing file
// is not an error: the defaults are returned.
func Discover(startDir string) (*File, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
