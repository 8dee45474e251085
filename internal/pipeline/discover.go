package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
)

// Discover walks root and returns every non-directory entry, sorted
// lexicographically for deterministic processing order. Classification
// happens later so unsupported files can be reported. Symlinked directories
// are not followed. Unreadable subdirectories are skipped; an unreadable
// root is an error.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
