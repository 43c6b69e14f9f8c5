package ebind

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/ebind/source"
)

func queries() fstest.MapFS {
	return fstest.MapFS{
		"q/base.sql":  {Data: []byte("SELECT * FROM {{:tbl}}")},
		"q/where.sql": {Data: []byte("WHERE id = {:id}")},
		"q/main.sql":  {Data: []byte("{{{:q/base.sql}}} {{{:q/where.sql}}}")},
	}
}

func TestInlineFiles(t *testing.T) {
	reader := WithReader(source.NewFS(queries()))

	t.Run("nested includes", func(t *testing.T) {
		res, err := Bind("{{{:q/main.sql}}}", Params{"tbl": "users", "id": 1}, reader)
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM users WHERE id = ?", res.SQL)
		assert.Equal(t, []any{1}, res.Params)
	})

	t.Run("path from params", func(t *testing.T) {
		res, err := Bind("SELECT 1 {{{:filter}}}", Params{"{{{:filter}}}": "q/where.sql", "id": 2}, reader)
		require.NoError(t, err)
		assert.Equal(t, "SELECT 1 WHERE id = ?", res.SQL)
		assert.Equal(t, []any{2}, res.Params)
	})

	t.Run("path from identifier key", func(t *testing.T) {
		res, err := Bind("{{{:filter}}}", Params{"filter": "q/where.sql", "id": 3}, reader)
		require.NoError(t, err)
		assert.Equal(t, "WHERE id = ?", res.SQL)
	})

	t.Run("content is verbatim", func(t *testing.T) {
		fsys := fstest.MapFS{"raw.sql": {Data: []byte("  -- keep\n\n")}}
		res, err := Bind("A{{{:raw.sql}}}B", nil, WithReader(source.NewFS(fsys)))
		require.NoError(t, err)
		assert.Equal(t, "A  -- keep\n\nB", res.SQL)
	})
}

func TestInlineFilesReadsEachMarkerOncePerPass(t *testing.T) {
	calls := map[string]int{}
	reader := source.ReaderFunc(func(_ context.Context, path string) ([]byte, error) {
		calls[path]++
		return []byte("x"), nil
	})

	res, err := Bind("{{{:a.sql}}} {{{:a.sql}}} {{{:b.sql}}}", nil, WithReader(reader))
	require.NoError(t, err)
	assert.Equal(t, "x x x", res.SQL)
	assert.Equal(t, map[string]int{"a.sql": 1, "b.sql": 1}, calls)
}

func TestInlineFilesFromWorkingDirectory(t *testing.T) {
	res, err := Bind("{{{:testdata/reports/active_users.sql}}}", Params{"tbl": "users", "active": true}, WithCompact(true))
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM users\n WHERE active = ?", res.SQL)
	assert.Equal(t, []any{true}, res.Params)
}

func TestInlineFilesSkipsReaderWithoutMarkers(t *testing.T) {
	reader := source.ReaderFunc(func(context.Context, string) ([]byte, error) {
		t.Fatal("reader must not be called")
		return nil, nil
	})

	res, err := Bind("SELECT {:a}", Params{"a": 1}, WithReader(reader))
	require.NoError(t, err)
	assert.Equal(t, "SELECT ?", res.SQL)
}

func TestFileInliningDisabled(t *testing.T) {
	reader := source.ReaderFunc(func(context.Context, string) ([]byte, error) {
		t.Fatal("reader must not be called")
		return nil, nil
	})

	res, err := Bind("SELECT * FROM t {{{:q/where.sql}}}", Params{"id": 1}, WithReader(reader), WithFileInlining(false))
	require.ErrorIs(t, err, ErrUnboundMarker)
	assert.Equal(t, Result{}, res)

	var berr *Error
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, PhaseFile, berr.Phase)
	assert.Equal(t, "{{{:q/where.sql}}}", berr.Marker)
	assert.Contains(t, err.Error(), "file inlining is disabled")

	res, err = Bind("SELECT * FROM t WHERE id = {:id}", Params{"id": 1}, WithReader(reader), WithFileInlining(false))
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE id = ?", res.SQL)

	res, err = Bind("{{{:q/where.sql}}}", Params{"id": 1}, WithReader(source.NewFS(queries())), WithFileInlining(false), WithFileInlining(true))
	require.NoError(t, err)
	assert.Equal(t, "WHERE id = ?", res.SQL)
}
