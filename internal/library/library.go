// Package library moves photos into the date-bucketed photo library.
package library

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/raphaelgruber/photo-import/internal/models"
)

// Library is a photo library rooted at Root, one directory per capture date.
type Library struct {
	Root string
}

// New creates a Library rooted at root.
func New(root string) *Library {
	return &Library{Root: root}
}

// Destination returns <Root>/<Date>/<NewFilename><original extension>.
func (l *Library) Destination(item *models.WorkItem) string {
	return filepath.Join(l.Root, item.Date, item.NewFilename+filepath.Ext(item.Filename))
}

// Relocate moves the item's source file to its destination and returns the
// absolute destination path. An existing destination is never overwritten.
func (l *Library) Relocate(item *models.WorkItem) (string, error) {
	if item.Date == "" {
		return "", fmt.Errorf("%w: %s has no capture date", models.ErrIO, item.Filename)
	}

	dest, err := filepath.Abs(l.Destination(item))
	if err != nil {
		return "", fmt.Errorf("%w: resolve destination: %w", models.ErrIO, err)
	}

	if _, err := os.Stat(item.Filename); err != nil {
		return "", fmt.Errorf("%w: source: %w", models.ErrIO, err)
	}

	if err := CheckFree(dest); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", fmt.Errorf("%w: create directory: %w", models.ErrIO, err)
	}

	if err := move(item.Filename, dest); err != nil {
		return "", fmt.Errorf("%w: move %s: %w", models.ErrIO, item.Filename, err)
	}

	return dest, nil
}

// CheckFree returns ErrDestinationExists when something already lives at path.
func CheckFree(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", models.ErrDestinationExists, path)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("%w: stat %s: %w", models.ErrIO, path, err)
	}
}

// move renames src to dst, copying across filesystems when needed.
func move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
