package ebind

import "context"

// substituteStructural splices raw text for {{:ident}} markers. Values are
// not escaped: callers must not let untrusted input reach them.
func (b *Binder) substituteStructural(ctx context.Context, sql string, params Params) (string, error) {
	out, _, err := b.converge(ctx, PhaseStructural, structuralMarker, b.limits.Structural, sql, func(sql string, _ int) (string, []any, error) {
		next, err := replaceMarkers(sql, structuralMarker, func(marker, payload string) (string, error) {
			v, ok := params.lookup(marker, payload)
			if !ok || v == nil {
				return "", unbound(PhaseStructural, marker)
			}
			return b.text(v), nil
		})
		return next, nil, err
	})
	return out, err
}
