// Package storage persists play preferences, the match ledger, and
// generated endgame tables in a Badger database.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir resolves the directory where fence keeps its files:
// $FENCE_DATA_DIR when set, otherwise a "fence" directory under the
// platform's user configuration location.
func DataDir() (string, error) {
	if dir := os.Getenv("FENCE_DATA_DIR"); dir != "" {
		return dir, ensureDir(dir)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	dir := filepath.Join(base, "fence")
	return dir, ensureDir(dir)
}

// DatabaseDir resolves the Badger database directory under DataDir.
func DatabaseDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	db := filepath.Join(dir, "db")
	return db, ensureDir(db)
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
