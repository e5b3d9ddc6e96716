package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kson-lang/kson/format"
	"github.com/kson-lang/kson/parser"
	"github.com/kson-lang/kson/stringtest"
)

func mustFormat(t *testing.T, src string, opts format.Options) string {
	t.Helper()

	res := parser.Parse(src)
	require.False(t, res.Sink.HasErrors(), "unexpected parse errors: %v", res.Sink.Messages())
	require.NotNil(t, res.Value)

	return format.Format(res.Value, res.Tokens, opts)
}

func TestFormatPlainBasics(t *testing.T) {
	t.Parallel()

	got := mustFormat(t, `{"name": "test", "value": 123}`, format.Options{Style: format.Plain, Indent: format.SpacesIndent(2)})

	want := stringtest.JoinLF("name: test", "value: 123", "")
	assert.Equal(t, want, got)
}

func TestFormatDelimitedList(t *testing.T) {
	t.Parallel()

	got := mustFormat(t, `{"name": "test", "list": [1, 2, 3]}`, format.Options{Style: format.Delimited, Indent: format.SpacesIndent(2)})

	want := stringtest.JoinLF(
		"{",
		"  name: test",
		"  list: <",
		"    - 1",
		"    - 2",
		"    - 3",
		"  >",
		"}",
		"",
	)
	assert.Equal(t, want, got)
}

func TestFormatCompactNested(t *testing.T) {
	t.Parallel()

	got := mustFormat(t, `{"list":[1,2,[3,4]],"key":"value"}`, format.Options{Style: format.Compact, Indent: format.SpacesIndent(2)})

	want := "list:[1 2 [3 4]]key:value\n"
	assert.Equal(t, want, got)
}

func TestFormatPlainDelimitedSourcePreservesContent(t *testing.T) {
	t.Parallel()

	// A source nested object written with explicit {} must still render
	// its full contents in Plain style, not collapse to "{}".
	got := mustFormat(t, `{"outer": {"inner": 1}}`, format.Options{Style: format.Plain, Indent: format.SpacesIndent(2)})

	want := stringtest.JoinLF("outer:", "  inner: 1", "")
	assert.Equal(t, want, got)
}

func TestFormatIdempotencePerStyle(t *testing.T) {
	t.Parallel()

	styles := []format.Style{format.Plain, format.Delimited, format.Compact}
	src := `{"a": 1, "b": [2, 3], "c": {"d": "e"}}`

	for _, style := range styles {
		opts := format.Options{Style: style, Indent: format.SpacesIndent(2)}

		first := mustFormat(t, src, opts)
		second := mustFormat(t, first, opts)

		assert.Equal(t, first, second, "style %v not idempotent", style)
	}
}

func TestFormatTabsIndent(t *testing.T) {
	t.Parallel()

	got := mustFormat(t, `{"a": {"b": 1}}`, format.Options{Style: format.Plain, Indent: format.TabsIndent()})

	want := stringtest.JoinLF("a:", "\tb: 1", "")
	assert.Equal(t, want, got)
}
