// Package outpath picks auto-incrementing output filenames so repeated
// runs accumulate artifacts instead of clobbering earlier ones.
package outpath

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// Next returns the next free "<prefix>NNN<ext>" path inside dir, where NNN
// is one more than the highest existing sequence number. The directory is
// created when missing.
func Next(dir, prefix, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	pattern, err := regexp.Compile("^" + regexp.QuoteMeta(prefix) + `(\d{3})` + regexp.QuoteMeta(ext) + "$")
	if err != nil {
		return "", fmt.Errorf("invalid output prefix %q: %w", prefix, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to scan output directory: %w", err)
	}

	maxSeq := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return filepath.Join(dir, fmt.Sprintf("%s%03d%s", prefix, maxSeq+1, ext)), nil
}
