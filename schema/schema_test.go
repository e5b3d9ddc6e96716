package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/schema"
)

func mustParseSchema(t *testing.T, src string) *schema.Validator {
	t.Helper()

	v, sink := schema.ParseSchema(src)
	require.False(t, sink.HasErrors(), "unexpected schema parse errors: %v", sink.Messages())
	require.NotNil(t, v)

	return v
}

func TestValidateRequiredPropertyMissing(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`)

	msgs := v.Validate(`{"age": 30}`)

	require.Len(t, msgs, 1)
	assert.Equal(t, message.KindSchemaRequiredPropertyMissing, msgs[0].Kind)
	assert.Equal(t, []string{"name"}, msgs[0].Params)
}

func TestValidateTypeMismatch(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{"type": "string"}`)

	tcs := map[string]struct {
		doc       string
		wantError bool
	}{
		"matching string":  {doc: `"hello"`, wantError: false},
		"mismatched int":   {doc: `42`, wantError: true},
		"mismatched array": {doc: `[1, 2]`, wantError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			msgs := v.Validate(tc.doc)
			if tc.wantError {
				require.NotEmpty(t, msgs)
				assert.Equal(t, message.KindSchemaTypeMismatch, msgs[0].Kind)
			} else {
				assert.Empty(t, msgs)
			}
		})
	}
}

func TestValidateIntegerIsAlsoNumber(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{"type": "number"}`)

	assert.Empty(t, v.Validate(`5`))
	assert.Empty(t, v.Validate(`5.5`))
}

func TestValidateEnumAndConst(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{"enum": ["red", "green", "blue"]}`)

	assert.Empty(t, v.Validate(`"red"`))
	require.Len(t, v.Validate(`"purple"`), 1)

	cv := mustParseSchema(t, `{"const": 42}`)
	assert.Empty(t, cv.Validate(`42`))
	require.Len(t, cv.Validate(`43`), 1)
}

func TestValidateNumericBounds(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{"minimum": 0, "maximum": 10, "multipleOf": 2}`)

	assert.Empty(t, v.Validate(`4`))

	msgs := v.Validate(`-2`)
	require.NotEmpty(t, msgs)
	assert.Equal(t, message.KindSchemaMinimum, msgs[0].Kind)

	msgs = v.Validate(`11`)
	require.NotEmpty(t, msgs)
	assert.Equal(t, message.KindSchemaMaximum, msgs[0].Kind)

	msgs = v.Validate(`3`)
	require.NotEmpty(t, msgs)
	assert.Equal(t, message.KindSchemaMultipleOf, msgs[0].Kind)
}

func TestValidateArrayUniqueItems(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{"type": "array", "uniqueItems": true}`)

	assert.Empty(t, v.Validate(`[1, 2, 3]`))
	require.NotEmpty(t, v.Validate(`[1, 2, 1]`))
}

func TestValidateOneOf(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{"oneOf": [{"type": "string"}, {"type": "number"}]}`)

	assert.Empty(t, v.Validate(`"hello"`))
	assert.Empty(t, v.Validate(`5`))

	msgs := v.Validate(`true`)
	require.Len(t, msgs, 1)
	assert.Equal(t, message.KindSchemaOneOfNoMatch, msgs[0].Kind)
}

func TestValidateRefToDefinitions(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{
		"definitions": {"pos": {"type": "integer", "minimum": 0}},
		"type": "object",
		"properties": {"age": {"$ref": "#/definitions/pos"}}
	}`)

	assert.Empty(t, v.Validate(`{"age": 30}`))

	msgs := v.Validate(`{"age": -1}`)
	require.Len(t, msgs, 1)
	assert.Equal(t, message.KindSchemaMinimum, msgs[0].Kind)
}

func TestValidateAdditionalPropertiesFalse(t *testing.T) {
	t.Parallel()

	v := mustParseSchema(t, `{"type": "object", "properties": {"a": {"type": "string"}}, "additionalProperties": false}`)

	assert.Empty(t, v.Validate(`{"a": "x"}`))

	msgs := v.Validate(`{"a": "x", "b": 1}`)
	require.Len(t, msgs, 1)
	assert.Equal(t, message.KindSchemaAdditionalProperties, msgs[0].Kind)
}

func TestValidateSchemaAgainstDraft07MetaSchema(t *testing.T) {
	t.Parallel()

	// A $ref to the pre-registered Draft-07 meta-schema URI resolves, and a
	// well-formed schema document validates against it without error.
	v := mustParseSchema(t, `{"$ref": "http://json-schema.org/draft-07/schema"}`)

	assert.Empty(t, v.Validate(`{"type": "string"}`))
}
