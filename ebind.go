// Package ebind expands SQL templates into prepared-statement text and an
// ordered parameter list.
//
// Templates carry three kinds of markers, resolved in this order:
//
//	{{{:path}}}  replaced by the contents of a file
//	{{:ident}}   replaced by raw text (table names, column lists)
//	{:ident}     replaced by placeholder tokens, the value is bound
//
// Structural text and the keys of maps bound to value markers are spliced
// without escaping and must never come from untrusted input. File inlining
// can be switched off with WithFileInlining.
package ebind

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Konsultn-Engineering/ebind/dialect"
	"github.com/Konsultn-Engineering/ebind/source"
)

// Result is a bound template ready for a prepared statement.
type Result struct {
	SQL    string
	Params []any
}

// Binder resolves templates. It is safe for concurrent use.
type Binder struct {
	placeholder PlaceholderFunc
	dialect     dialect.Dialect
	reader      source.Reader
	skipFiles   bool
	limits      Limits
	maxLength   int
	compact     bool
	log         zerolog.Logger
}

// New creates a Binder configured by options.
func New(options ...Option) *Binder {
	b := &Binder{
		placeholder: Static(DefaultMarker),
		dialect:     dialect.SQLite{},
		limits: Limits{
			File:       DefaultFileLoopLimit,
			Structural: DefaultStructuralLoopLimit,
			Value:      DefaultValueLoopLimit,
		},
		maxLength: DefaultMaxLength,
		log:       zerolog.Nop(),
	}

	for _, opt := range options {
		opt(b)
	}
	return b
}

// Bind resolves sql with a Binder built from options.
func Bind(sql string, params Params, options ...Option) (Result, error) {
	return New(options...).Bind(context.Background(), sql, params)
}

// BindContext is Bind with a caller supplied context.
func BindContext(ctx context.Context, sql string, params Params, options ...Option) (Result, error) {
	return New(options...).Bind(ctx, sql, params)
}

// Limits returns the pass bounds in effect.
func (b *Binder) Limits() Limits {
	return b.limits
}

// Dialect returns the dialect used for quoting and inline rendering.
func (b *Binder) Dialect() dialect.Dialect {
	return b.dialect
}

// Bind resolves all markers in sql. Nothing is returned on error.
func (b *Binder) Bind(ctx context.Context, sql string, params Params) (Result, error) {
	sql, values, err := b.resolve(ctx, sql, params, func(_ any, bound int) string {
		return b.placeholder(bound + 1)
	})
	if err != nil {
		return Result{}, err
	}

	b.log.Debug().Int("params", len(values)).Msg("template bound")
	return Result{SQL: sql, Params: values}, nil
}

// Inline resolves sql with values rendered as literals. The output is for
// logs and debugging; execute the result of Bind instead.
func (b *Binder) Inline(ctx context.Context, sql string, params Params) (string, error) {
	sql, _, err := b.resolve(ctx, sql, params, func(v any, _ int) string {
		return b.dialect.RenderValue(v)
	})
	return sql, err
}

func (b *Binder) resolve(ctx context.Context, sql string, params Params, emit emitter) (string, []any, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	sql, err := b.inlineFiles(ctx, sql, params)
	if err != nil {
		return "", nil, err
	}
	sql, err = b.substituteStructural(ctx, sql, params)
	if err != nil {
		return "", nil, err
	}
	sql, values, err := b.bindValues(ctx, sql, params, emit)
	if err != nil {
		return "", nil, err
	}

	if b.compact {
		sql = strings.TrimSpace(blankLines.ReplaceAllString(sql, "\n"))
	}
	if values == nil {
		values = []any{}
	}
	return sql, values, nil
}
