// Package export converts a parsed KSON schema value into the canonical
// github.com/google/jsonschema-go/jsonschema.Schema struct, for tooling
// that wants a standard JSON Schema document rather than KSON text.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/kson-lang/kson/value"
)

// ToJSONSchema converts schemaNode to a *jsonschema.Schema by marshaling
// its native-Go-value form through JSON, the same indirection the
// Draft-07 struct's own constructors use for arbitrary sub-schemas.
func ToJSONSchema(schemaNode *value.Node) (*jsonschema.Schema, error) {
	raw := toNative(schemaNode)

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("export: marshal intermediate value: %w", err)
	}

	var out jsonschema.Schema

	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("export: unmarshal into jsonschema.Schema: %w", err)
	}

	return &out, nil
}

// ToJSON renders schemaNode directly as canonical JSON Schema text.
func ToJSON(schemaNode *value.Node) (string, error) {
	schema, err := ToJSONSchema(schemaNode)
	if err != nil {
		return "", err
	}

	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export: marshal jsonschema.Schema: %w", err)
	}

	return string(b), nil
}

// toNative converts a value.Node into the plain Go value
// (map[string]any, []any, string, float64, bool, nil) that
// encoding/json expects, mirroring how numbers round-trip through JSON.
func toNative(n *value.Node) any {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case value.KindNull:
		return nil
	case value.KindBoolean:
		return n.Boolean
	case value.KindInteger:
		return n.Integer
	case value.KindDecimal:
		return n.Decimal
	case value.KindString:
		return n.StringValue
	case value.KindArray:
		out := make([]any, len(n.Elements))
		for i, e := range n.Elements {
			out[i] = toNative(e)
		}

		return out
	case value.KindObject:
		out := make(map[string]any, len(n.Properties))
		for _, p := range n.Properties {
			out[p.Key.StringValue] = toNative(p.Value)
		}

		return out
	case value.KindEmbed:
		return n.EmbedContent
	default:
		return nil
	}
}
