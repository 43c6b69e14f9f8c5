package source

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedReadsOncePerPath(t *testing.T) {
	calls := map[string]int{}
	inner := ReaderFunc(func(_ context.Context, path string) ([]byte, error) {
		calls[path]++
		if path == "missing.sql" {
			return nil, ErrNotFound
		}
		return []byte("-- " + path), nil
	})

	c, err := NewCached(inner, 8)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := c.ReadFile(context.Background(), "a.sql")
		require.NoError(t, err)
		assert.Equal(t, "-- a.sql", string(got))
	}
	assert.Equal(t, 1, calls["a.sql"])

	for i := 0; i < 2; i++ {
		_, err := c.ReadFile(context.Background(), "missing.sql")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 2, calls["missing.sql"])

	c.Purge()
	_, err = c.ReadFile(context.Background(), "a.sql")
	require.NoError(t, err)
	assert.Equal(t, 2, calls["a.sql"])
}

func TestNewCachedValidation(t *testing.T) {
	_, err := NewCached(nil, 8)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewCached(NewFS(nil), 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCachedSharedLoadSurvivesOtherCallerCancel(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	inner := ReaderFunc(func(ctx context.Context, path string) ([]byte, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return nil, ctx.Err()
		}
		return []byte("SELECT 1"), nil
	})

	c, err := NewCached(inner, 8)
	require.NoError(t, err)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.ReadFile(ctxA, "q.sql")
		errA <- err
	}()
	<-started

	type result struct {
		content []byte
		err     error
	}
	resB := make(chan result, 1)
	go func() {
		content, err := c.ReadFile(context.Background(), "q.sql")
		resB <- result{content, err}
	}()

	cancelA()
	// Give the second caller time to join the in-flight read
	time.Sleep(50 * time.Millisecond)
	close(release)

	assert.ErrorIs(t, <-errA, context.Canceled)

	got := <-resB
	require.NoError(t, got.err)
	assert.Equal(t, "SELECT 1", string(got.content))
	assert.Equal(t, int32(2), calls.Load())
}

func TestCachedReturnsOwnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := NewCached(ReaderFunc(func(ctx context.Context, _ string) ([]byte, error) {
		return nil, ctx.Err()
	}), 8)
	require.NoError(t, err)

	_, err = c.ReadFile(ctx, "q.sql")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCachedStopsRetryingReaderTimeouts(t *testing.T) {
	var calls atomic.Int32
	c, err := NewCached(ReaderFunc(func(context.Context, string) ([]byte, error) {
		calls.Add(1)
		return nil, context.DeadlineExceeded
	}), 8)
	require.NoError(t, err)

	_, err = c.ReadFile(context.Background(), "slow.sql")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(3), calls.Load())
}
