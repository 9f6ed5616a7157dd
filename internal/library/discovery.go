package library

import (
	"context"
	"os"
	"path/filepath"

	"github.com/llehouerou/dancefloor/internal/player"
)

// fileInfo holds information about a discovered music file.
type fileInfo struct {
	path  string
	mtime int64
}

// discoverFiles walks root and returns all music files found.
// Unreadable entries are skipped; only a missing root is an error.
func discoverFiles(ctx context.Context, root string, report func(ScanProgress)) ([]fileInfo, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	var files []fileInfo
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Skip any walk errors - intentionally continuing to scan other paths
		if walkErr != nil {
			return nil //nolint:nilerr // intentionally skipping errors
		}
		if d.IsDir() || !player.IsMusicFile(path) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil //nolint:nilerr // intentionally skipping errors
		}

		files = append(files, fileInfo{path: path, mtime: info.ModTime().Unix()})
		if len(files)%100 == 0 {
			report(ScanProgress{Phase: "scanning", Current: len(files), CurrentFile: path})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
