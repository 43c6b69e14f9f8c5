package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir reads files relative to a base directory. Paths that resolve outside
// the base directory are rejected.
type Dir struct {
	base string // Absolute
}

// NewDir creates a reader rooted at base. An empty base means the process
// working directory at construction time.
func NewDir(base string) (*Dir, error) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("%w: working directory: %v", ErrInvalidConfig, err)
		}
		base = wd
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("%w: base directory %q: %v", ErrInvalidConfig, base, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: base directory %s: %v", ErrInvalidConfig, abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: base %s is not a directory", ErrInvalidConfig, abs)
	}

	return &Dir{base: abs}, nil
}

// WorkingDir is shorthand for NewDir("").
func WorkingDir() (*Dir, error) {
	return NewDir("")
}

func (d *Dir) Base() string {
	return d.base
}

// Resolve returns the absolute path that ReadFile would open for path.
func (d *Dir) Resolve(path string) (string, error) {
	abs := filepath.Join(d.base, filepath.Clean(filepath.FromSlash(path)))

	if abs != d.base && !strings.HasPrefix(abs, d.base+string(filepath.Separator)) {
		return abs, fmt.Errorf("%w: %s is outside %s", ErrInvalidPath, abs, d.base)
	}
	return abs, nil
}

func (d *Dir) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := d.Resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, abs)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, abs, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegular, abs)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadFailed, abs, err)
	}
	return content, nil
}
