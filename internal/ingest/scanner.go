package ingest

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ScanStats summarizes one directory scan.
type ScanStats struct {
	Scanned uint32
	Matched uint32
}

// ScanDirectory walks root and returns the absolute paths of every intake
// candidate, sorted for deterministic batch order. Hidden files and
// directories are skipped when skipHidden is set.
func ScanDirectory(ctx context.Context, root string, skipHidden bool) ([]string, ScanStats, error) {
	var stats ScanStats
	if strings.TrimSpace(root) == "" {
		return nil, stats, errors.New("root path is required")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if skipHidden && path != root && IsHidden(path) {
				return filepath.SkipDir
			}
			return nil
		}
		stats.Scanned++
		if skipHidden && IsHidden(path) {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		stats.Matched++
		files = append(files, abs)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	sort.Strings(files)
	return files, stats, nil
}
