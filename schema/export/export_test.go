package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kson-lang/kson/parser"
	"github.com/kson-lang/kson/schema/export"
	"github.com/kson-lang/kson/value"
)

func mustParseValue(t *testing.T, src string) *value.Node {
	t.Helper()

	res := parser.Parse(src)
	require.False(t, res.Sink.HasErrors())
	require.NotNil(t, res.Value)

	return res.Value
}

func TestToJSONSchemaConvertsBasicFields(t *testing.T) {
	t.Parallel()

	n := mustParseValue(t, `{"type": "object", "title": "Pet", "required": ["name"]}`)

	out, err := export.ToJSONSchema(n)

	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Pet", out.Title)
	assert.Contains(t, out.Required, "name")
}

func TestToJSONRendersCanonicalText(t *testing.T) {
	t.Parallel()

	n := mustParseValue(t, `{"type": "string"}`)

	out, err := export.ToJSON(n)

	require.NoError(t, err)
	assert.Contains(t, out, `"type"`)
	assert.Contains(t, out, `"string"`)
}
