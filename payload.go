package scalar

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

var errInvalidJSON = errors.New("scalar: payload is not valid JSON")

// RawJSON wraps an already serialized OpenAPI document so it can be used as
// a payload. The document is served compacted.
func RawJSON(b []byte) (json.RawMessage, error) {
	if !json.Valid(b) {
		return nil, errInvalidJSON
	}
	return json.RawMessage(b), nil
}

// FromYAML decodes a YAML OpenAPI document into a value that serializes to
// the equivalent JSON. Object keys are emitted in sorted order.
func FromYAML(b []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode openapi yaml: %w", err)
	}
	return jsonCompatible(doc), nil
}

// jsonCompatible rewrites map[any]any nodes, which YAML produces for
// non-string keys, into map[string]any.
func jsonCompatible(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = jsonCompatible(item)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return m
	case []any:
		for i, item := range t {
			t[i] = jsonCompatible(item)
		}
		return t
	default:
		return v
	}
}
