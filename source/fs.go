package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// FS reads files from an fs.FS, typically an embed.FS holding query files.
type FS struct {
	fsys fs.FS
}

func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

func (f *FS) ReadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// fs.FS names are unrooted and slash separated
	clean := strings.TrimPrefix(path.Clean("/"+name), "/")
	if !fs.ValidPath(clean) || clean == "." {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, name)
	}

	info, err := fs.Stat(f.fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: fs:%s", ErrNotFound, clean)
		}
		return nil, fmt.Errorf("%w: fs:%s: %v", ErrReadFailed, clean, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: fs:%s", ErrNotRegular, clean)
	}

	content, err := fs.ReadFile(f.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("%w: fs:%s: %v", ErrReadFailed, clean, err)
	}
	return content, nil
}
