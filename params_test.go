package ebind

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/ebind/source"
)

const reportParams = `
tbl: users
cols: [id, name]
ids: [1, 2]
set:
  name: Ada
  active: true
"{:since}": 2024-01-01
`

func TestLoadParams(t *testing.T) {
	params, err := LoadParams([]byte(reportParams))
	require.NoError(t, err)

	res, err := Bind("SELECT {{:cols}} FROM {{:tbl}} WHERE id IN ({:ids})", params)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM users WHERE id IN (?, ?)", res.SQL)
	assert.Equal(t, []any{1, 2}, res.Params)

	res, err = Bind("UPDATE {{:tbl}} SET {:set}", params)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET active=?, name=?", res.SQL)
	assert.Equal(t, []any{true, "Ada"}, res.Params)
}

func TestLoadParamsEmptyAndInvalid(t *testing.T) {
	params, err := LoadParams(nil)
	require.NoError(t, err)
	assert.NotNil(t, params)
	assert.Empty(t, params)

	_, err = LoadParams([]byte("- just\n- a list\n"))
	assert.Error(t, err)
}

func TestReadParams(t *testing.T) {
	reader := source.NewFS(fstest.MapFS{"params/report.yaml": {Data: []byte(reportParams)}})

	params, err := ReadParams(context.Background(), reader, "params/report.yaml")
	require.NoError(t, err)
	assert.Equal(t, "users", params["tbl"])

	_, err = ReadParams(context.Background(), reader, "params/missing.yaml")
	require.ErrorIs(t, err, source.ErrNotFound)
}

func TestParamsMerge(t *testing.T) {
	base := Params{"a": 1, "b": 2}
	merged := base.Merge(Params{"b": 3})

	assert.Equal(t, Params{"a": 1, "b": 3}, merged)
	assert.Equal(t, 2, base["b"])
}
