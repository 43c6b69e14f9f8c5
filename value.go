package ebind

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Params maps markers to values. Keys are either the full marker text
// ("{:id}", "{{:tbl}}", "{{{:inc}}}") or the bare payload ("id"); the full
// marker text wins when both are present.
//
// Value markers accept scalars, sequences (any slice or array except byte
// slices) and maps with string keys. Map keys become column names verbatim,
// like structural text. Structural markers accept strings, Ident, and
// sequences of those.
type Params map[string]any

func (p Params) lookup(marker, payload string) (any, bool) {
	if v, ok := p[marker]; ok {
		return v, true
	}
	v, ok := p[payload]
	return v, ok
}

// Ident is a structural value that is quoted with the binder's dialect
// before it is spliced into the template.
type Ident string

var valuerType = reflect.TypeOf((*driver.Valuer)(nil)).Elem()

// sequence reports whether v binds as a list and returns its elements.
func sequence(v any) ([]any, bool) {
	switch val := v.(type) {
	case nil, []byte, driver.Valuer:
		return nil, false
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 || rv.Type().Implements(valuerType) {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// assignments reports whether v is a map with string keys and returns its
// entries sorted by key.
func assignments(v any) ([]string, []any, bool) {
	if v == nil {
		return nil, nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, nil, false
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	vals := make([]any, len(keys))
	for i, k := range keys {
		vals[i] = rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
	}
	return keys, vals, true
}

// text renders a structural value verbatim.
func (b *Binder) text(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case Ident:
		return b.dialect.QuoteIdentifier(string(val))
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	}

	if items, ok := sequence(v); ok {
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = b.text(item)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
