package ebind

import (
	"context"
	"regexp"
	"strings"
)

// Marker shapes. Payloads are captured in group 1.
var (
	fileMarker       = regexp.MustCompile(`\{\{\{:([A-Za-z0-9/._-]+)\}\}\}`)
	structuralMarker = regexp.MustCompile(`\{\{:([A-Za-z][A-Za-z0-9_]*)\}\}`)
	valueMarker      = regexp.MustCompile(`\{:([A-Za-z][A-Za-z0-9_]*)\}`)

	blankLines = regexp.MustCompile(`\n\s*\n`)
)

// replaceMarkers rewrites every match of re in s from left to right. It stops
// at the first error and then returns no output.
func replaceMarkers(s string, re *regexp.Regexp, fn func(marker, payload string) (string, error)) (string, error) {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return s, nil
	}

	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for _, loc := range locs {
		rep, err := fn(s[loc[0]:loc[1]], s[loc[2]:loc[3]])
		if err != nil {
			return "", err
		}
		sb.WriteString(s[last:loc[0]])
		sb.WriteString(rep)
		last = loc[1]
	}
	sb.WriteString(s[last:])
	return sb.String(), nil
}

// pass is one full scan-and-replace over a template. bound is the number of
// values already bound by earlier passes; the returned values are new ones.
type pass func(sql string, bound int) (string, []any, error)

// converge runs fn until re no longer matches, allowing at most limit passes.
func (b *Binder) converge(ctx context.Context, phase Phase, re *regexp.Regexp, limit int, sql string, fn pass) (string, []any, error) {
	var values []any
	passes := 0
	for re.MatchString(sql) {
		if passes == limit {
			return "", nil, loopLimit(phase, limit)
		}
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}

		next, bound, err := fn(sql, len(values))
		if err != nil {
			return "", nil, err
		}
		if len(next) > b.maxLength {
			return "", nil, tooLong(phase, len(next), b.maxLength)
		}

		sql = next
		values = append(values, bound...)
		passes++
	}

	if passes > 0 {
		b.log.Debug().
			Str("phase", phase.String()).
			Int("passes", passes).
			Int("values", len(values)).
			Msg("phase resolved")
	}
	return sql, values, nil
}
