// Package indent implements the semantic indent/alignment validator:
// because commas and delimiters — not indentation — determine KSON's
// structure, this pass catches cases where indentation *lies* about the
// structure the parser actually produced (spec.md §4.3).
//
// The validator is a pure consumer of a successful parse: it never
// introduces parse errors, only Warning-severity alignment diagnostics.
package indent

import (
	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/value"
)

// Validate walks root and appends alignment diagnostics to sink.
func Validate(root *value.Node, sink *message.Sink) {
	if root == nil {
		return
	}

	walk(root, sink)
}

func walk(n *value.Node, sink *message.Sink) {
	switch n.Kind {
	case value.KindObject:
		if !n.Delimited {
			checkObjectAlignment(n, sink)
			checkObjectNesting(n, sink)
		}

		for _, p := range n.Properties {
			walk(p.Key, sink)
			walk(p.Value, sink)
		}

	case value.KindArray:
		if !n.Delimited {
			checkArrayAlignment(n, sink)
			checkArrayNesting(n, sink)
		}

		for _, e := range n.Elements {
			walk(e, sink)
		}
	}
}

// checkObjectAlignment implements OBJECT_PROPERTIES_MISALIGNED: siblings
// of a plain object must share the same starting column. A non-leading
// item on a line (i.e. one that isn't the first token on its physical
// source line among this object's properties) is exempt — it shares the
// line with a leading sibling and was never a candidate for column
// alignment in the first place.
func checkObjectAlignment(n *value.Node, sink *message.Sink) {
	if len(n.Properties) < 2 {
		return
	}

	anchorCol := n.Properties[0].Key.Location.Start.Column
	anchorLine := n.Properties[0].Key.Location.Start.Line

	for _, p := range n.Properties[1:] {
		loc := p.Key.Location
		if loc.Start.Line == anchorLine {
			// Shares a physical line with the previous leading item:
			// never considered misaligned (spec.md §4.3).
			anchorLine = loc.Start.Line

			continue
		}

		anchorLine = loc.Start.Line

		if loc.Start.Column != anchorCol {
			sink.Warning(message.KindObjectPropertiesMisaligned, loc)
		}
	}
}

// checkArrayAlignment implements DASH_LIST_ITEMS_MISALIGNED: analogous to
// checkObjectAlignment, anchored on the '-' column.
func checkArrayAlignment(n *value.Node, sink *message.Sink) {
	if len(n.Elements) < 2 {
		return
	}

	// The dash column isn't stored directly on the element (the element
	// is the dash's *value*); items parsed from the same plain dash list
	// all start their Location at the value, one column after "- ". We
	// approximate the anchor using the first element's column, which is
	// sound because siblings in a plain dash list share "- " width.
	anchorCol := n.Elements[0].Location.Start.Column
	anchorLine := n.Elements[0].Location.Start.Line

	for _, e := range n.Elements[1:] {
		loc := e.Location
		if loc.Start.Line == anchorLine {
			anchorLine = loc.Start.Line

			continue
		}

		anchorLine = loc.Start.Line

		if loc.Start.Column != anchorCol {
			sink.Warning(message.KindDashListItemsMisaligned, loc)
		}
	}
}

// checkObjectNesting implements OBJECT_PROPERTY_NESTING_ISSUE: a trailing
// ':' followed by newline (i.e. a property value that starts a new plain
// object on a later line) implies a nested object; the child's indent
// must be strictly greater than the parent's.
func checkObjectNesting(n *value.Node, sink *message.Sink) {
	for _, p := range n.Properties {
		if p.Value.Kind != value.KindObject || p.Value.Delimited {
			continue
		}

		if p.Value.Location.Start.Line == p.Key.Location.Start.Line {
			// Nested object starts on the same line as the key: not the
			// "trailing colon then newline" shape this rule targets.
			continue
		}

		if p.Value.Location.Start.Column <= p.Key.Location.Start.Column {
			sink.Warning(message.KindObjectPropertyNestingIssue, p.Value.Location)
		}
	}
}

// checkArrayNesting implements DASH_LIST_ITEMS_NESTING_ISSUE: a dash
// following only whitespace on the previous line indicates a nested list
// start; the nested items' indent must be strictly greater than the
// parent's.
func checkArrayNesting(n *value.Node, sink *message.Sink) {
	for _, e := range n.Elements {
		if e.Kind != value.KindArray || e.Delimited {
			continue
		}

		if e.Location.Start.Line == n.Location.Start.Line {
			continue
		}

		if e.Location.Start.Column <= n.Location.Start.Column {
			sink.Warning(message.KindDashListItemsNestingIssue, e.Location)
		}
	}
}
