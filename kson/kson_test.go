package kson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kson-lang/kson/format"
	"github.com/kson-lang/kson/kson"
	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/value"
)

func TestParseReturnsValueAndTokens(t *testing.T) {
	t.Parallel()

	res := kson.Parse(`{"a": 1}`)

	require.Empty(t, res.Messages)
	require.NotNil(t, res.Value)
	assert.Equal(t, value.KindObject, res.Value.Kind)
	assert.NotEmpty(t, res.Tokens)
}

func TestAnalyzeAlignedDocumentHasNoDiagnostics(t *testing.T) {
	t.Parallel()

	res := kson.Analyze("a: 1\nb: 2\n")

	require.NotNil(t, res.Value)
	assert.Empty(t, res.Errors)
}

func TestAnalyzeSurfacesMisalignment(t *testing.T) {
	t.Parallel()

	// "b" starts two columns later than "a", which the indent validator
	// flags as misaligned plain-object siblings.
	res := kson.Analyze("a: 1\n  b: 2\n")

	var sawWarning bool

	for _, m := range res.Errors {
		if m.Kind == message.KindObjectPropertiesMisaligned {
			sawWarning = true
		}
	}

	assert.True(t, sawWarning)
}

func TestFormatRoundTripsJSONToKSONSuperset(t *testing.T) {
	t.Parallel()

	out, msgs := kson.Format(`{"a": 1, "b": [2, 3]}`, format.Options{Style: format.Plain, Indent: format.SpacesIndent(2)})

	require.Empty(t, msgs)
	assert.Contains(t, out, "a: 1")
}

func TestToJSONEveryKSONDocumentIsAlsoValidJSONSuperset(t *testing.T) {
	t.Parallel()

	out, msgs := kson.ToJSON(`{"a": 1, "b": "x", "c": [true, null]}`)

	require.Empty(t, msgs)
	assert.JSONEq(t, `{"a": 1, "b": "x", "c": [true, null]}`, out)
}

func TestToYAMLProducesParseableNativeValues(t *testing.T) {
	t.Parallel()

	out, msgs := kson.ToYAML(`{"a": 1, "b": "x"}`)

	require.Empty(t, msgs)
	assert.Contains(t, out, "a: 1")
	assert.Contains(t, out, "b: x")
}

func TestParseSchemaThenValidate(t *testing.T) {
	t.Parallel()

	v, msgs := kson.ParseSchema(`{"type": "object", "required": ["name"]}`)

	require.Empty(t, msgs)
	require.NotNil(t, v)

	result := v.Validate(`{"name": "ava"}`)
	assert.Empty(t, result)

	result = v.Validate(`{}`)
	assert.NotEmpty(t, result)
}

func TestParseEmptyTextYieldsNilValueAndError(t *testing.T) {
	t.Parallel()

	res := kson.Parse("")

	assert.Nil(t, res.Value)
	require.NotEmpty(t, res.Messages)
}
