package outputs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// numberWidth is the zero-padded width of the sequence number.
const numberWidth = 3

// NextPath returns the first unused "<base>_NNN<ext>" path in dir, starting at
// 001. A missing directory is treated as empty.
func NextPath(dir, base, ext string) (string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return "", errors.New("next path: empty base name")
	}
	ext = normalizeExt(ext)

	used, err := usedNumbers(dir, base, ext)
	if err != nil {
		return "", err
	}
	n := 1
	for used[n] {
		n++
	}
	return filepath.Join(dir, FormatName(base, n, ext)), nil
}

// FormatName renders the file name for sequence number n.
func FormatName(base string, n int, ext string) string {
	return fmt.Sprintf("%s_%0*d%s", base, numberWidth, n, normalizeExt(ext))
}

// ParseNumber extracts the sequence number from a "<base>_NNN<ext>" name.
func ParseNumber(name, base, ext string) (int, bool) {
	ext = normalizeExt(ext)
	prefix := base + "_"
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ext) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ext)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func usedNumbers(dir, base, ext string) (map[int]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[int]bool{}, nil
		}
		return nil, fmt.Errorf("read output dir: %w", err)
	}
	used := make(map[int]bool, len(entries))
	for _, entry := range entries {
		if n, ok := ParseNumber(entry.Name(), base, ext); ok {
			used[n] = true
		}
	}
	return used, nil
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}
