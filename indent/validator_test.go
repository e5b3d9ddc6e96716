package indent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kson-lang/kson/indent"
	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/position"
	"github.com/kson-lang/kson/value"
)

func at(line, col int) position.Location {
	p := position.Position{Line: line, Column: col}

	return position.Location{Start: p, End: p}
}

func strNode(s string, line, col int) *value.Node {
	return value.Str(s, s, value.Unquoted, at(line, col))
}

func TestCheckObjectAlignment(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		props     []value.Property
		wantKinds []message.Kind
	}{
		"aligned siblings": {
			props: []value.Property{
				{Key: strNode("a", 0, 0), Value: value.Int(1, "1", at(0, 3))},
				{Key: strNode("b", 1, 0), Value: value.Int(2, "2", at(1, 3))},
			},
		},
		"misaligned second property": {
			props: []value.Property{
				{Key: strNode("a", 0, 0), Value: value.Int(1, "1", at(0, 3))},
				{Key: strNode("b", 1, 2), Value: value.Int(2, "2", at(1, 5))},
			},
			wantKinds: []message.Kind{message.KindObjectPropertiesMisaligned},
		},
		"same-line sibling exempt": {
			props: []value.Property{
				{Key: strNode("a", 0, 0), Value: value.Int(1, "1", at(0, 3))},
				{Key: strNode("b", 0, 6), Value: value.Int(2, "2", at(0, 9))},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			obj := value.Obj(tc.props, at(0, 0), false)
			sink := message.NewSink()
			indent.Validate(obj, sink)

			require.Len(t, sink.Messages(), len(tc.wantKinds))

			for i, k := range tc.wantKinds {
				assert.Equal(t, k, sink.Messages()[i].Kind)
				assert.Equal(t, message.Warning, sink.Messages()[i].Severity)
			}
		})
	}
}

func TestCheckObjectAlignmentDelimitedExempt(t *testing.T) {
	t.Parallel()

	props := []value.Property{
		{Key: strNode("a", 0, 1), Value: value.Int(1, "1", at(0, 4))},
		{Key: strNode("b", 1, 10), Value: value.Int(2, "2", at(1, 13))},
	}

	obj := value.Obj(props, at(0, 0), true)
	sink := message.NewSink()
	indent.Validate(obj, sink)

	assert.Empty(t, sink.Messages())
}

func TestCheckArrayAlignment(t *testing.T) {
	t.Parallel()

	elems := []*value.Node{
		value.Int(1, "1", at(0, 2)),
		value.Int(2, "2", at(1, 4)),
	}

	arr := value.Arr(elems, at(0, 0), false)
	sink := message.NewSink()
	indent.Validate(arr, sink)

	require.Len(t, sink.Messages(), 1)
	assert.Equal(t, message.KindDashListItemsMisaligned, sink.Messages()[0].Kind)
}

func TestCheckObjectNesting(t *testing.T) {
	t.Parallel()

	t.Run("properly indented nested object", func(t *testing.T) {
		t.Parallel()

		nested := value.Obj([]value.Property{
			{Key: strNode("c", 1, 4), Value: value.Int(1, "1", at(1, 7))},
		}, at(1, 2), false)

		props := []value.Property{
			{Key: strNode("a", 0, 0), Value: nested},
		}

		obj := value.Obj(props, at(0, 0), false)
		sink := message.NewSink()
		indent.Validate(obj, sink)

		assert.Empty(t, sink.Messages())
	})

	t.Run("deceptive indent not past parent key", func(t *testing.T) {
		t.Parallel()

		nested := value.Obj([]value.Property{
			{Key: strNode("c", 1, 0), Value: value.Int(1, "1", at(1, 3))},
		}, at(1, 0), false)

		props := []value.Property{
			{Key: strNode("a", 0, 0), Value: nested},
		}

		obj := value.Obj(props, at(0, 0), false)
		sink := message.NewSink()
		indent.Validate(obj, sink)

		require.Len(t, sink.Messages(), 1)
		assert.Equal(t, message.KindObjectPropertyNestingIssue, sink.Messages()[0].Kind)
	})
}
