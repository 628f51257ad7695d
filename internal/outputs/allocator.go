package outputs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the advisory lock guarding name allocation in a directory.
const LockFileName = ".hamremix.lock"

const maxReserveAttempts = 16

// Allocator reserves auto-incrementing file names in Dir.
type Allocator struct {
	Dir string
}

// Reserve picks the next free "<base>_NNN<ext>" name and creates it empty so
// concurrent runs cannot claim the same number. The caller overwrites or
// removes the reserved file.
func (a Allocator) Reserve(base, ext string) (string, error) {
	if a.Dir == "" {
		return "", errors.New("reserve output: directory not configured")
	}
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return "", fmt.Errorf("reserve output: create directory %q: %w", a.Dir, err)
	}

	lock := flock.New(filepath.Join(a.Dir, LockFileName))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("reserve output: lock %q: %w", a.Dir, err)
	}
	defer func() { _ = lock.Unlock() }()

	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		path, err := NextPath(a.Dir, base, ext)
		if err != nil {
			return "", err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			return "", fmt.Errorf("reserve output %q: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("reserve output %q: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("reserve output: no free name for %s in %s", base, a.Dir)
}
