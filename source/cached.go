package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/Konsultn-Engineering/ebind/cache"
)

// Cached wraps a Reader with an LRU of file contents keyed by path.
// Useful when the same included files are bound over and over.
type Cached struct {
	reader Reader
	cache  *cache.ContentCache
}

func NewCached(r Reader, size int) (*Cached, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", ErrInvalidConfig)
	}
	c, err := cache.NewContentCache(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &Cached{reader: r, cache: c}, nil
}

// ReadFile returns the cached content for path. Concurrent misses share one
// read that runs under the context of whichever caller started it; when that
// caller goes away the others retry under their own context.
func (c *Cached) ReadFile(ctx context.Context, path string) ([]byte, error) {
	var (
		content []byte
		err     error
	)
	for attempt := 0; attempt < maxSharedRetries; attempt++ {
		content, err = c.cache.GetOrLoad(path, func() ([]byte, error) {
			return c.reader.ReadFile(ctx, path)
		})
		if err == nil || !isContextErr(err) || ctx.Err() != nil {
			break
		}
	}
	return content, err
}

// maxSharedRetries bounds reads of a path whose reader keeps reporting a
// context error the caller does not share.
const maxSharedRetries = 3

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Purge forgets every cached file, e.g. after query files change on disk.
func (c *Cached) Purge() {
	c.cache.Purge()
}
