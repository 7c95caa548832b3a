// Package filex has the few filesystem helpers the CLI needs: a private
// data directory and checked opening of image uploads.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageSize bounds uploaded images.
const MaxImageSize = 5 << 20

var (
	ErrNotImage      = errors.New("unsupported image type")
	ErrImageTooLarge = errors.New("image too large")
)

var imageExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".webp": {},
}

// EnsureDir creates dir (and parents) with owner-only permissions and
// returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// DataDir returns the per-user directory for app, e.g.
// ~/.config/<app> on Linux. It is not created.
func DataDir(app string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, app), nil
}

// OpenImage opens path for upload after checking its extension and size.
// The caller closes the file.
func OpenImage(path string) (*os.File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageExtensions[ext]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotImage, ext)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, fi.Size())
	}
	return os.Open(path)
}
