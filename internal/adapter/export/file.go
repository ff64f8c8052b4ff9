package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// copyFile writes through a temp file and renames so a reader never sees a
// half-copied output.
func copyFile(ctx context.Context, src *os.File, t Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dest := filepath.FromSlash(t.Path)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".splice-export-*")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("copy to %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
