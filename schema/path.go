package schema

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kson-lang/kson/value"
)

// ResolutionType annotates how a ResolvedRef was reached from the schema
// root (spec.md §4.5 "Resolved ref"/"Resolution type").
type ResolutionType int

const (
	ResolutionRoot ResolutionType = iota
	ResolutionProperty
	ResolutionPatternProperty
	ResolutionAdditionalProperty
	ResolutionArrayItems
	ResolutionAdditionalItems
	ResolutionCombinatorBranch
)

// ResolvedRef is one schema sub-tree reached while walking a document
// JSON Pointer through a schema, tagged with the base URI in effect at
// that point (needed to resolve any $ref nested further down).
type ResolvedRef struct {
	Node           *value.Node
	BaseURI        string
	ResolutionType ResolutionType
}

// ResolveDocumentPath implements the document-to-schema path navigation
// algorithm from spec.md §4.5: walk pointer's tokens, interpreting each
// as an array index or a property name, descending into properties /
// patternProperties / additionalProperties / items / additionalItems,
// fanning out across allOf/anyOf/oneOf branches, and eagerly resolving
// $ref after every step.
func (v *Validator) ResolveDocumentPath(pointer string) []ResolvedRef {
	frames := expandRefs([]resolvedFrame{{node: v.root, baseURI: v.lookup.rootURI, kind: ResolutionRoot}}, v.lookup)

	for _, tok := range tokenizePointer(pointer) {
		var next []resolvedFrame

		for _, f := range frames {
			next = append(next, stepToken(f, tok)...)
		}

		frames = expandRefs(next, v.lookup)

		if len(frames) == 0 {
			break
		}
	}

	out := make([]ResolvedRef, len(frames))
	for i, f := range frames {
		out[i] = ResolvedRef{Node: f.node, BaseURI: f.baseURI, ResolutionType: f.kind}
	}

	return out
}

type resolvedFrame struct {
	node    *value.Node
	baseURI string
	kind    ResolutionType
}

func tokenizePointer(pointer string) []string {
	pointer = strings.TrimPrefix(pointer, "#")
	pointer = strings.TrimPrefix(pointer, "/")

	if pointer == "" {
		return nil
	}

	tokens := strings.Split(pointer, "/")
	for i, t := range tokens {
		t = strings.ReplaceAll(t, "~1", "/")
		tokens[i] = strings.ReplaceAll(t, "~0", "~")
	}

	return tokens
}

// stepToken descends through f.node and every allOf/anyOf/oneOf branch
// directly on it, applying tok as either a property name or array index.
func stepToken(f resolvedFrame, tok string) []resolvedFrame {
	var out []resolvedFrame

	for _, candidate := range combinatorBranches(f) {
		out = append(out, stepOne(candidate, tok)...)
	}

	return out
}

func combinatorBranches(f resolvedFrame) []resolvedFrame {
	branches := []resolvedFrame{f}

	if f.node == nil || f.node.Kind != value.KindObject {
		return branches
	}

	for _, key := range [...]string{"allOf", "anyOf", "oneOf"} {
		arr, ok := f.node.PropertyLookup[key]
		if !ok || arr.Kind != value.KindArray {
			continue
		}

		for _, branch := range arr.Elements {
			branches = append(branches, resolvedFrame{node: branch, baseURI: f.baseURI, kind: ResolutionCombinatorBranch})
		}
	}

	return branches
}

func stepOne(f resolvedFrame, tok string) []resolvedFrame {
	if f.node == nil || f.node.Kind != value.KindObject {
		return nil
	}

	if _, err := strconv.Atoi(tok); err == nil {
		return stepArrayIndex(f)
	}

	return stepPropertyName(f, tok)
}

func stepArrayIndex(f resolvedFrame) []resolvedFrame {
	if items, ok := f.node.PropertyLookup["items"]; ok {
		if items.Kind == value.KindArray {
			var out []resolvedFrame
			for _, s := range items.Elements {
				out = append(out, resolvedFrame{node: s, baseURI: f.baseURI, kind: ResolutionArrayItems})
			}

			return out
		}

		return []resolvedFrame{{node: items, baseURI: f.baseURI, kind: ResolutionArrayItems}}
	}

	if addl, ok := f.node.PropertyLookup["additionalItems"]; ok {
		return []resolvedFrame{{node: addl, baseURI: f.baseURI, kind: ResolutionAdditionalItems}}
	}

	return nil
}

func stepPropertyName(f resolvedFrame, name string) []resolvedFrame {
	if props, ok := f.node.PropertyLookup["properties"]; ok && props.Kind == value.KindObject {
		if sub, ok := props.PropertyLookup[name]; ok {
			return []resolvedFrame{{node: sub, baseURI: f.baseURI, kind: ResolutionProperty}}
		}
	}

	if pats, ok := f.node.PropertyLookup["patternProperties"]; ok && pats.Kind == value.KindObject {
		var out []resolvedFrame

		for _, pp := range pats.Properties {
			re, err := regexp.Compile(pp.Key.StringValue)
			if err == nil && re.MatchString(name) {
				out = append(out, resolvedFrame{node: pp.Value, baseURI: f.baseURI, kind: ResolutionPatternProperty})
			}
		}

		if len(out) > 0 {
			return out
		}
	}

	if addl, ok := f.node.PropertyLookup["additionalProperties"]; ok {
		return []resolvedFrame{{node: addl, baseURI: f.baseURI, kind: ResolutionAdditionalProperty}}
	}

	return nil
}

// expandRefs resolves any $ref found directly on a frame's node, eagerly
// and without the cycle-active set (document-path navigation is a single
// top-down walk, never recursive the way full validation is).
func expandRefs(frames []resolvedFrame, lookup *idLookup) []resolvedFrame {
	out := make([]resolvedFrame, 0, len(frames))

	for _, f := range frames {
		out = append(out, expandOne(f, lookup, 0)...)
	}

	return out
}

func expandOne(f resolvedFrame, lookup *idLookup, depth int) []resolvedFrame {
	if depth > maxDepth || f.node == nil || f.node.Kind != value.KindObject {
		return []resolvedFrame{f}
	}

	refNode, ok := f.node.PropertyLookup["$ref"]
	if !ok || refNode.Kind != value.KindString {
		return []resolvedFrame{f}
	}

	target, newBase, ok := lookup.resolve(refNode.StringValue, f.baseURI)
	if !ok {
		return nil
	}

	return expandOne(resolvedFrame{node: target, baseURI: newBase, kind: f.kind}, lookup, depth+1)
}
