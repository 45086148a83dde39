// Package filex contains filesystem helpers for the client's on-device
// data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataDir creates (if needed) and returns the per-install data
// directory, ~/.todokeeper. Everything the client persists lives under it.
func EnsureDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	dir := filepath.Join(home, ".todokeeper")

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// EnsureSubDir creates (if needed) and returns a subdirectory of parent.
func EnsureSubDir(parent, name string) (string, error) {
	dir := filepath.Join(parent, name)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
