package ebind

import (
	"context"
	"strings"
)

// emitter turns one bound value into the text that replaces it. bound is the
// number of values emitted before this one.
type emitter func(v any, bound int) string

// bindValues replaces {:ident} markers left to right and collects the values
// in the same order.
func (b *Binder) bindValues(ctx context.Context, sql string, params Params, emit emitter) (string, []any, error) {
	return b.converge(ctx, PhaseValue, valueMarker, b.limits.Value, sql, func(sql string, bound int) (string, []any, error) {
		var values []any
		next, err := replaceMarkers(sql, valueMarker, func(marker, payload string) (string, error) {
			v, ok := params.lookup(marker, payload)
			if !ok {
				return "", unbound(PhaseValue, marker)
			}

			tok := func(val any) string {
				values = append(values, val)
				return emit(val, bound+len(values)-1)
			}

			if keys, vals, ok := assignments(v); ok {
				parts := make([]string, len(keys))
				for i, k := range keys {
					parts[i] = k + "=" + tok(vals[i])
				}
				return strings.Join(parts, ", "), nil
			}
			if items, ok := sequence(v); ok {
				parts := make([]string, len(items))
				for i, item := range items {
					parts[i] = tok(item)
				}
				return strings.Join(parts, ", "), nil
			}
			return tok(v), nil
		})
		if err != nil {
			return "", nil, err
		}
		return next, values, nil
	})
}
