package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/parser"
	"github.com/kson-lang/kson/value"
)

func TestParseObjectLiteral(t *testing.T) {
	t.Parallel()

	res := parser.Parse(`{"name": "ava", "age": 3}`)

	require.False(t, res.Sink.HasErrors())
	require.NotNil(t, res.Value)
	require.Equal(t, value.KindObject, res.Value.Kind)
	require.Len(t, res.Value.Properties, 2)

	assert.Equal(t, "name", res.Value.Properties[0].Key.StringValue)
	assert.Equal(t, "ava", res.Value.Properties[0].Value.StringValue)

	age, ok := res.Value.PropertyLookup["age"]
	require.True(t, ok)
	assert.Equal(t, int64(3), age.Integer)
}

func TestParseArrayLiteral(t *testing.T) {
	t.Parallel()

	res := parser.Parse(`[1, 2, 3]`)

	require.False(t, res.Sink.HasErrors())
	require.NotNil(t, res.Value)
	require.Equal(t, value.KindArray, res.Value.Kind)
	require.Len(t, res.Value.Elements, 3)
}

func TestParseNestedStructure(t *testing.T) {
	t.Parallel()

	res := parser.Parse(`{"list": [1, {"nested": true}]}`)

	require.False(t, res.Sink.HasErrors())

	list, ok := res.Value.PropertyLookup["list"]
	require.True(t, ok)
	require.Len(t, list.Elements, 2)
	assert.Equal(t, value.KindObject, list.Elements[1].Kind)
}

func TestParsePlainObjectNoDelimiters(t *testing.T) {
	t.Parallel()

	res := parser.Parse("name: ava\nage: 3\n")

	require.False(t, res.Sink.HasErrors())
	require.NotNil(t, res.Value)
	require.Equal(t, value.KindObject, res.Value.Kind)
	assert.False(t, res.Value.Delimited)
	require.Len(t, res.Value.Properties, 2)
}

func TestParsePlainDashList(t *testing.T) {
	t.Parallel()

	res := parser.Parse("- 1\n- 2\n- 3\n")

	require.False(t, res.Sink.HasErrors())
	require.NotNil(t, res.Value)
	require.Equal(t, value.KindArray, res.Value.Kind)
	assert.False(t, res.Value.Delimited)
	require.Len(t, res.Value.Elements, 3)
}

func TestParseAngleBracketArrayIsDelimited(t *testing.T) {
	t.Parallel()

	res := parser.Parse("<\n  - 1\n  - 2\n>")

	require.False(t, res.Sink.HasErrors())
	require.NotNil(t, res.Value)
	require.Equal(t, value.KindArray, res.Value.Kind)
	assert.True(t, res.Value.Delimited)
	require.Len(t, res.Value.Elements, 2)
}

func TestParseExtraContentAfterDocument(t *testing.T) {
	t.Parallel()

	res := parser.Parse(`{"a": 1} garbage`)

	require.True(t, res.Sink.HasErrors())
	assert.Equal(t, message.KindExtraContent, res.Sink.Messages()[0].Kind)
}

func TestParseBlankSourceYieldsNilValue(t *testing.T) {
	t.Parallel()

	res := parser.Parse("")

	assert.Nil(t, res.Value)
	require.True(t, res.Sink.HasErrors())
}

func TestParseRetainsFullTokenStreamIncludingTrivia(t *testing.T) {
	t.Parallel()

	res := parser.Parse("1 # a comment\n")

	var sawComment bool

	for _, tok := range res.Tokens {
		if tok.IsTrivia() {
			sawComment = true
		}
	}

	assert.True(t, sawComment, "formatter relies on trivia tokens surviving in the stream")
}
