package outputs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Clean removes every entry in dir and returns how many were removed. A
// missing directory is not an error. Removal stops at the first failure.
func Clean(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("clean output: %w", err)
	}
	removed := 0
	for _, entry := range entries {
		target := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			return removed, fmt.Errorf("clean output: remove %s: %w", target, err)
		}
		removed++
	}
	return removed, nil
}
