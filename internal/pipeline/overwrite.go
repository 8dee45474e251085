package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// tempPath returns a hidden, unique sibling of path. Staying in the same
// directory keeps the final rename on one filesystem.
func tempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")
}

// replaceFile moves tmp over dst, carrying over dst's permission bits. On
// failure tmp is removed and dst is left as it was.
func replaceFile(tmp, dst string) error {
	fi, err := os.Stat(dst)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, fi.Mode().Perm()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace original: %w", err)
	}
	return nil
}
