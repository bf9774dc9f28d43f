// Package scan discovers candidate video files under the configured source
// directories.
package scan

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"filmsort/internal/fileops"
	"filmsort/internal/services"
)

// Options filters the walk. Extensions are compared case-insensitively and
// must carry the leading dot; MinSize is in bytes and screens out samples
// and extras.
type Options struct {
	Extensions []string
	MinSize    int64
}

// Candidate is one file worth organizing.
type Candidate struct {
	Path string
	Size int64
}

// Candidates walks root and returns matching video files in lexical order.
// Hidden entries and in-flight staging files are skipped.
func Candidates(root string, opts Options) ([]Candidate, error) {
	var found []Candidate
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && errors.Is(err, fs.ErrNotExist) {
				return services.Wrap(services.ErrSourceNotFound, "scan", "walk", root, err)
			}
			return services.Wrap(services.ErrIO, "scan", "walk", path, err)
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(name, fileops.PartialSuffix) {
			return nil
		}
		if !matchesExtension(name, opts.Extensions) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return services.Wrap(services.ErrIO, "scan", "stat", path, err)
		}
		if info.Size() < opts.MinSize {
			return nil
		}
		found = append(found, Candidate{Path: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func matchesExtension(name string, extensions []string) bool {
	ext := filepath.Ext(name)
	for _, allowed := range extensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}
