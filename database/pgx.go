// Package database hands bound templates to pgx.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Konsultn-Engineering/ebind"
	"github.com/Konsultn-Engineering/ebind/dialect"
)

// Template implements pgx.QueryRewriter. Pass it as the only argument after
// the SQL text:
//
//	rows, err := conn.Query(ctx, "SELECT * FROM {{:tbl}} WHERE id IN ({:ids})", tpl)
type Template struct {
	binder *ebind.Binder
	params ebind.Params
}

// NewTemplate binds params with PostgreSQL numbered placeholders. Options are
// applied after the PostgreSQL dialect, so they may replace it.
func NewTemplate(params ebind.Params, options ...ebind.Option) *Template {
	opts := make([]ebind.Option, 0, len(options)+1)
	opts = append(opts, ebind.WithDialect(dialect.NewPostgresDialect()))
	opts = append(opts, options...)
	return &Template{binder: ebind.New(opts...), params: params}
}

// WithBinder creates a Template that shares an existing Binder.
func WithBinder(b *ebind.Binder, params ebind.Params) *Template {
	return &Template{binder: b, params: params}
}

// With returns a copy of t bound to other params.
func (t *Template) With(params ebind.Params) *Template {
	return &Template{binder: t.binder, params: params}
}

// RewriteQuery implements pgx.QueryRewriter.
func (t *Template) RewriteQuery(ctx context.Context, _ *pgx.Conn, sql string, args []any) (string, []any, error) {
	if len(args) > 0 {
		return "", nil, fmt.Errorf("ebind template takes no extra arguments, got %d", len(args))
	}

	res, err := t.binder.Bind(ctx, sql, t.params)
	if err != nil {
		return "", nil, err
	}
	return res.SQL, res.Params, nil
}

// Batch queues a bound template on b.
func (t *Template) Batch(ctx context.Context, b *pgx.Batch, sql string) error {
	res, err := t.binder.Bind(ctx, sql, t.params)
	if err != nil {
		return err
	}
	b.Queue(res.SQL, res.Params...)
	return nil
}

var _ pgx.QueryRewriter = (*Template)(nil)
