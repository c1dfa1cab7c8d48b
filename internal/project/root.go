package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindClippyToml walks up from startDir to locate clippy.toml.
func FindClippyToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "clippy.toml")
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

// LoadFromDir finds and parses the nearest clippy.toml above startDir.
// Without one, the defaults apply and ok is false.
func LoadFromDir(startDir string) (cfg Config, manifestPath string, ok bool, err error) {
	manifestPath, ok, err = FindClippyToml(startDir)
	if err != nil || !ok {
		return DefaultConfig(), "", ok, err
	}
	cfg, err = LoadConfig(manifestPath)
	if err != nil {
		return DefaultConfig(), manifestPath, true, err
	}
	return cfg, manifestPath, true, nil
}
