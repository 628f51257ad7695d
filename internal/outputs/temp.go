package outputs

import (
	"fmt"
	"os"
	"sync"
)

// TempFile creates an empty scratch file and returns its path together with a
// cleanup function that removes it. Cleanup is idempotent and safe to defer.
func TempFile(dir, pattern string) (string, func(), error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", func() {}, fmt.Errorf("temp file: create dir: %w", err)
		}
	}
	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", func() {}, fmt.Errorf("temp file: %w", err)
	}
	path := file.Name()
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return "", func() {}, fmt.Errorf("temp file: %w", err)
	}
	var once sync.Once
	cleanup := func() {
		once.Do(func() { _ = os.Remove(path) })
	}
	return path, cleanup, nil
}
