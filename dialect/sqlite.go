package dialect

import "fmt"

// SQLite uses MySQL-style `?` placeholders but ANSI identifier quoting.
type SQLite struct {
	Postgres
}

func NewSQLiteDialect() Dialect {
	return &SQLite{}
}

func (s SQLite) Name() string {
	return "sqlite"
}

func (s SQLite) Placeholder(n int) string {
	return "?"
}

func (s SQLite) RenderValue(v any) string {
	if b, ok := v.([]byte); ok {
		return fmt.Sprintf("X'%x'", b)
	}
	return renderLiteral(v)
}
