package dialect

import (
	"fmt"
	"sort"
	"strings"
)

// Dialect describes how a database spells placeholders, identifiers and literals.
type Dialect interface {
	Name() string
	QuoteIdentifier(name string) string
	// Placeholder returns the token for the n-th bound value, counting from 1.
	Placeholder(n int) string
	RenderValue(v any) string
}

var byDriver = map[string]func() Dialect{
	"postgres":  NewPostgresDialect,
	"pgx":       NewPostgresDialect,
	"cockroach": NewPostgresDialect,
	"mysql":     NewMySQLDialect,
	"tidb":      NewTiDBDialect,
	"sqlite":    NewSQLiteDialect,
	"sqlite3":   NewSQLiteDialect,
	"sqlserver": NewSQLServerDialect,
	"azuresql":  NewSQLServerDialect,
	"oracle":    NewOracleDialect,
	"godror":    NewOracleDialect,
}

// ByName returns the dialect registered for a database/sql driver name.
func ByName(name string) (Dialect, error) {
	ctor, ok := byDriver[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// Names lists the registered driver names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byDriver))
	for name := range byDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
