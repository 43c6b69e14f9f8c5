// Package source provides the file-reading capability used to inline
// {{{:path}}} markers. Readers are read-only and safe for concurrent use.
package source

import "context"

// Reader returns the full contents of the file at path.
type Reader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// ReaderFunc adapts a plain function to Reader.
type ReaderFunc func(ctx context.Context, path string) ([]byte, error)

func (f ReaderFunc) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}
