package ebind

import (
	"context"
	"fmt"

	"github.com/Konsultn-Engineering/ebind/source"
)

// inlineFiles replaces {{{:path}}} markers with file contents until none are
// left. Inlined content is scanned again, so includes may nest.
func (b *Binder) inlineFiles(ctx context.Context, sql string, params Params) (string, error) {
	if !fileMarker.MatchString(sql) {
		return sql, nil
	}
	if b.skipFiles {
		return "", &Error{
			Kind:   ErrUnboundMarker,
			Phase:  PhaseFile,
			Marker: fileMarker.FindString(sql),
			Cause:  errFilesDisabled,
		}
	}

	reader := b.reader
	if reader == nil {
		wd, err := source.WorkingDir()
		if err != nil {
			return "", &Error{Kind: ErrMissingFile, Phase: PhaseFile, Cause: err}
		}
		reader = wd
	}

	out, _, err := b.converge(ctx, PhaseFile, fileMarker, b.limits.File, sql, func(sql string, _ int) (string, []any, error) {
		// One read per distinct marker and pass
		contents := make(map[string]string)
		next, err := replaceMarkers(sql, fileMarker, func(marker, payload string) (string, error) {
			if content, ok := contents[marker]; ok {
				return content, nil
			}

			path := filePath(params, marker, payload)
			content, err := reader.ReadFile(ctx, path)
			if err != nil {
				if ctx.Err() != nil {
					return "", ctx.Err()
				}
				return "", &Error{Kind: ErrMissingFile, Phase: PhaseFile, Marker: marker, Path: path, Cause: err}
			}

			contents[marker] = string(content)
			return contents[marker], nil
		})
		return next, nil, err
	})
	return out, err
}

// filePath returns the bound path for a file marker, falling back to the
// marker's own payload.
func filePath(params Params, marker, payload string) string {
	v, ok := params.lookup(marker, payload)
	if !ok || v == nil {
		return payload
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
