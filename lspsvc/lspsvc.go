// Package lspsvc is the editor-service interface consumed by an external
// LSP server (spec.md §6): hover info, completions, and go-to-definition
// style navigation over a KSON document validated against a KSON schema.
// It carries no transport or protocol framing of its own — that stays an
// external concern — and is a thin wrapper over schema's document-to-
// schema path navigation.
package lspsvc

import (
	"strconv"
	"strings"

	"github.com/kson-lang/kson/parser"
	"github.com/kson-lang/kson/position"
	"github.com/kson-lang/kson/schema"
	"github.com/kson-lang/kson/value"
)

// CompletionKind classifies a CompletionItem.
type CompletionKind int

const (
	// Property means the item completes an object property name.
	Property CompletionKind = iota
	// Value means the item completes a property or array element value.
	Value
)

// CompletionItem is one suggestion offered at a cursor position.
type CompletionItem struct {
	Label         string
	Kind          CompletionKind
	Detail        string
	Documentation string
}

// GetSchemaInfoAtLocation renders hover markdown for the schema that
// applies at (line, column) in doc, or ("", false) if doc doesn't parse
// or nothing in schemaText resolves to that position.
func GetSchemaInfoAtLocation(doc, schemaText string, line, column int) (string, bool) {
	frames, ok := resolveAt(doc, schemaText, line, column)
	if !ok {
		return "", false
	}

	var b strings.Builder

	for i, f := range frames {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}

		b.WriteString(describeSchema(f.Node))
	}

	return b.String(), b.Len() > 0
}

// GetCompletionsAtLocation suggests property names (from the schema's
// `properties`) or enumerated values (from `enum`) applicable at (line,
// column) in doc; `patternProperties` yields no suggestions.
func GetCompletionsAtLocation(doc, schemaText string, line, column int) ([]CompletionItem, bool) {
	frames, ok := resolveAt(doc, schemaText, line, column)
	if !ok {
		return nil, false
	}

	var items []CompletionItem

	for _, f := range frames {
		items = append(items, completionsFor(f.Node)...)
	}

	return items, true
}

// GetSchemaLocationAtLocation returns the source ranges, within
// schemaText, of the schema node(s) that apply at (line, column) in doc.
func GetSchemaLocationAtLocation(doc, schemaText string, line, column int) ([]position.Location, bool) {
	frames, ok := resolveAt(doc, schemaText, line, column)
	if !ok {
		return nil, false
	}

	locs := make([]position.Location, len(frames))
	for i, f := range frames {
		locs[i] = f.Node.Location
	}

	return locs, true
}

// ResolveRefAtLocation resolves the $ref string literal at (line,
// column) in schemaText and returns the target node's location.
func ResolveRefAtLocation(schemaText string, line, column int) ([]position.Location, bool) {
	v, sink := schema.ParseSchema(schemaText)
	if v == nil || sink.HasErrors() {
		return nil, false
	}

	ref := findRefStringAt(v.Root(), position.Position{Line: line, Column: column})
	if ref == "" {
		return nil, false
	}

	target, ok := v.LookupRef(ref, v.RootURI())
	if !ok {
		return nil, false
	}

	return []position.Location{target.Location}, true
}

// resolveAt parses doc, locates the JSON Pointer path under (line,
// column), parses schemaText, and walks that path through the schema.
func resolveAt(doc, schemaText string, line, column int) ([]schema.ResolvedRef, bool) {
	docRes := parser.Parse(doc)
	if docRes.Value == nil {
		return nil, false
	}

	v, sink := schema.ParseSchema(schemaText)
	if v == nil || sink.HasErrors() {
		return nil, false
	}

	pointer, _ := locate(docRes.Value, position.Position{Line: line, Column: column})

	frames := v.ResolveDocumentPath(pointer)
	if len(frames) == 0 {
		return nil, false
	}

	return frames, true
}

// locate walks root, descending into whichever child's location contains
// pos, and returns the RFC 6901 pointer to the deepest such node along
// with the node itself.
func locate(root *value.Node, pos position.Position) (string, *value.Node) {
	var segs []string

	cur := root

	for {
		next, seg, ok := descend(cur, pos)
		if !ok {
			break
		}

		segs = append(segs, seg)
		cur = next
	}

	return "/" + strings.Join(segs, "/"), cur
}

func descend(cur *value.Node, pos position.Position) (*value.Node, string, bool) {
	switch cur.Kind {
	case value.KindObject:
		for _, p := range cur.Properties {
			span := position.Location{Start: p.Key.Location.Start, End: p.Value.Location.End}
			if span.Contains(position.Location{Start: pos, End: pos}) {
				return p.Value, escapePointerSegment(p.Key.StringValue), true
			}
		}
	case value.KindArray:
		for i, e := range cur.Elements {
			if e.Location.Contains(position.Location{Start: pos, End: pos}) {
				return e, strconv.Itoa(i), true
			}
		}
	}

	return nil, "", false
}

func escapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")

	return strings.ReplaceAll(s, "/", "~1")
}

// findRefStringAt finds a String node directly under a "$ref" property
// whose location contains pos, searching the whole schema tree.
func findRefStringAt(n *value.Node, pos position.Position) string {
	if n == nil {
		return ""
	}

	switch n.Kind {
	case value.KindObject:
		if refNode, ok := n.PropertyLookup["$ref"]; ok && refNode.Kind == value.KindString {
			if refNode.Location.Contains(position.Location{Start: pos, End: pos}) {
				return refNode.StringValue
			}
		}

		for _, p := range n.Properties {
			if found := findRefStringAt(p.Value, pos); found != "" {
				return found
			}
		}
	case value.KindArray:
		for _, e := range n.Elements {
			if found := findRefStringAt(e, pos); found != "" {
				return found
			}
		}
	}

	return ""
}

// describeSchema renders a short markdown blurb from a schema node's
// title/type/description keywords.
func describeSchema(n *value.Node) string {
	if n == nil || n.Kind != value.KindObject {
		return ""
	}

	var b strings.Builder

	if title, ok := n.PropertyLookup["title"]; ok && title.Kind == value.KindString {
		b.WriteString("**" + title.StringValue + "**\n\n")
	}

	if typ, ok := n.PropertyLookup["type"]; ok && typ.Kind == value.KindString {
		b.WriteString("type: `" + typ.StringValue + "`\n\n")
	}

	if desc, ok := n.PropertyLookup["description"]; ok && desc.Kind == value.KindString {
		b.WriteString(desc.StringValue)
	}

	return b.String()
}

// completionsFor derives completion items from one schema node's
// properties (for object positions) and enum (for scalar positions).
func completionsFor(n *value.Node) []CompletionItem {
	if n == nil || n.Kind != value.KindObject {
		return nil
	}

	var items []CompletionItem

	if props, ok := n.PropertyLookup["properties"]; ok && props.Kind == value.KindObject {
		for _, p := range props.Properties {
			items = append(items, CompletionItem{
				Label:         p.Key.StringValue,
				Kind:          Property,
				Detail:        schemaTypeHint(p.Value),
				Documentation: schemaDescription(p.Value),
			})
		}
	}

	if enum, ok := n.PropertyLookup["enum"]; ok && enum.Kind == value.KindArray {
		for _, e := range enum.Elements {
			items = append(items, CompletionItem{Label: literalLabel(e), Kind: Value})
		}
	}

	return items
}

func schemaTypeHint(n *value.Node) string {
	if n.Kind != value.KindObject {
		return ""
	}

	if typ, ok := n.PropertyLookup["type"]; ok && typ.Kind == value.KindString {
		return typ.StringValue
	}

	return ""
}

func schemaDescription(n *value.Node) string {
	if n.Kind != value.KindObject {
		return ""
	}

	if desc, ok := n.PropertyLookup["description"]; ok && desc.Kind == value.KindString {
		return desc.StringValue
	}

	return ""
}

func literalLabel(n *value.Node) string {
	switch n.Kind {
	case value.KindString:
		return n.StringValue
	case value.KindInteger:
		return n.IntegerText
	case value.KindDecimal:
		return n.DecimalText
	case value.KindBoolean:
		if n.Boolean {
			return "true"
		}

		return "false"
	case value.KindNull:
		return "null"
	default:
		return ""
	}
}
