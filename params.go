package ebind

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/ebind/source"
)

// LoadParams decodes a bind map from YAML. Sequences decode to []any and
// mappings to map[string]any, so they bind as lists and assignment maps.
func LoadParams(data []byte) (Params, error) {
	var params Params
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("decode params: %w", err)
	}
	if params == nil {
		params = Params{}
	}
	return params, nil
}

// ReadParams loads a YAML bind map through r.
func ReadParams(ctx context.Context, r source.Reader, path string) (Params, error) {
	data, err := r.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read params %s: %w", path, err)
	}
	return LoadParams(data)
}

// Merge returns a copy of p with other's entries layered on top.
func (p Params) Merge(other Params) Params {
	out := make(Params, len(p)+len(other))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
