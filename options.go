package ebind

import (
	"github.com/rs/zerolog"

	"github.com/Konsultn-Engineering/ebind/dialect"
	"github.com/Konsultn-Engineering/ebind/source"
)

// Defaults applied by New.
const (
	DefaultMarker              = "?"
	DefaultFileLoopLimit       = 1000
	DefaultStructuralLoopLimit = 1000
	DefaultValueLoopLimit      = 10
	DefaultMaxLength           = 16 << 20
)

// PlaceholderFunc returns the token for the n-th bound value, counting from 1.
type PlaceholderFunc func(n int) string

// Static returns a PlaceholderFunc that always yields token.
func Static(token string) PlaceholderFunc {
	return func(int) string { return token }
}

// Limits bounds the number of passes each phase may take.
type Limits struct {
	File       int
	Structural int
	Value      int
}

type Option func(*Binder)

// WithMarker sets a fixed positional token such as "?" or "$1".
func WithMarker(token string) Option {
	return func(b *Binder) { b.placeholder = Static(token) }
}

// WithPlaceholder sets the token strategy, e.g. dialect.Postgres{}.Placeholder
func WithPlaceholder(fn PlaceholderFunc) Option {
	return func(b *Binder) {
		if fn != nil {
			b.placeholder = fn
		}
	}
}

// WithDialect uses d for identifier quoting, inline rendering and placeholder
// tokens. A later WithMarker or WithPlaceholder overrides the tokens only.
func WithDialect(d dialect.Dialect) Option {
	return func(b *Binder) {
		if d == nil {
			return
		}
		b.dialect = d
		b.placeholder = d.Placeholder
	}
}

// WithFileInlining turns file markers on or off. When off, a template that
// still holds a file marker fails with ErrUnboundMarker and nothing is read.
func WithFileInlining(enabled bool) Option {
	return func(b *Binder) { b.skipFiles = !enabled }
}

// WithReader sets where file markers are read from. The default reads
// relative to the process working directory.
func WithReader(r source.Reader) Option {
	return func(b *Binder) { b.reader = r }
}

func WithFileLoopLimit(n int) Option {
	return func(b *Binder) {
		if n > 0 {
			b.limits.File = n
		}
	}
}

func WithStructuralLoopLimit(n int) Option {
	return func(b *Binder) {
		if n > 0 {
			b.limits.Structural = n
		}
	}
}

func WithValueLoopLimit(n int) Option {
	return func(b *Binder) {
		if n > 0 {
			b.limits.Value = n
		}
	}
}

// WithMaxLength caps the size in bytes a template may grow to while markers
// are expanded.
func WithMaxLength(n int) Option {
	return func(b *Binder) {
		if n > 0 {
			b.maxLength = n
		}
	}
}

// WithCompact collapses blank lines and trims surrounding whitespace from the
// final SQL.
func WithCompact(enabled bool) Option {
	return func(b *Binder) { b.compact = enabled }
}

func WithLogger(log zerolog.Logger) Option {
	return func(b *Binder) { b.log = log }
}
