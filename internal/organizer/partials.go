package organizer

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filmsort/internal/fileops"
	"filmsort/internal/logging"
)

// sweepStalePartials removes orphaned staging files left behind by an
// interrupted run. Only files older than maxAge go; a staging file younger
// than that may belong to a concurrent writer on another host.
func sweepStalePartials(libraryDir string, maxAge time.Duration, logger *slog.Logger) {
	libraryDir = strings.TrimSpace(libraryDir)
	if libraryDir == "" {
		return
	}
	cutoff := time.Now().Add(-maxAge)

	_ = filepath.WalkDir(libraryDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), fileops.PartialSuffix) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			logger.Warn("failed to remove stale staging file",
				logging.String("path", path),
				logging.Error(err),
			)
			return nil
		}
		logger.Info("removed stale staging file",
			logging.String("path", path),
			logging.Duration("age", time.Since(info.ModTime())),
		)
		return nil
	})
}
