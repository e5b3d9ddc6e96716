// Package schema implements a JSON Schema Draft-07 validator that
// operates directly on the KSON value tree (spec.md §4.5): any KSON
// document that happens to describe a valid schema can validate any
// other KSON document, with no separate JSON conversion step.
package schema

import (
	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/parser"
	"github.com/kson-lang/kson/value"
)

const maxDepth = 256

// Validator wraps a parsed schema document together with the $id/$ref
// index built over it.
type Validator struct {
	root   *value.Node
	lookup *idLookup
}

// ParseSchema parses src as a KSON document and, if it produced a root
// value, builds a Validator over it. The returned sink carries any lexer
// or parser diagnostics from src itself.
func ParseSchema(src string) (*Validator, *message.Sink) {
	res := parser.Parse(src)

	if res.Value == nil {
		return nil, res.Sink
	}

	return &Validator{root: res.Value, lookup: buildIDLookup(res.Value)}, res.Sink
}

// Validate parses documentText and validates it against v, returning the
// combined diagnostics (parse errors from the document, then schema
// messages).
func (v *Validator) Validate(documentText string) []message.Message {
	res := parser.Parse(documentText)

	if res.Value != nil {
		v.ValidateValue(res.Value, res.Sink)
	}

	return res.Sink.Messages()
}

// ValidateValue validates an already-parsed document value against v,
// appending diagnostics to sink.
func (v *Validator) ValidateValue(doc *value.Node, sink *message.Sink) {
	ctx := &validationContext{sink: sink, active: map[string]bool{}, lookup: v.lookup}
	ctx.validate(v.root, doc, v.lookup.rootURI, 0)
}

// Root returns the parsed schema's value tree, for tools (lspsvc) that
// need to navigate the schema document itself rather than validate
// against it.
func (v *Validator) Root() *value.Node {
	return v.root
}

// RootURI returns the base URI in effect at the schema root (its own
// $id, or "" if unset).
func (v *Validator) RootURI() string {
	return v.lookup.rootURI
}

// LookupRef resolves ref against baseURI using the same $id/$ref index
// Validate uses, without any cycle bookkeeping — callers that only want
// a single hop (editor go-to-definition) don't need one.
func (v *Validator) LookupRef(ref, baseURI string) (*value.Node, bool) {
	target, _, ok := v.lookup.resolve(ref, baseURI)

	return target, ok
}

// validationContext threads the active $ref resolution chain (for cycle
// detection) and recursion depth through one Validate call.
type validationContext struct {
	sink   *message.Sink
	active map[string]bool
	lookup *idLookup
}

// validate applies schemaNode to doc. baseURI is the $id in effect for
// resolving any $ref found directly on schemaNode.
func (ctx *validationContext) validate(schemaNode, doc *value.Node, baseURI string, depth int) {
	if schemaNode == nil || doc == nil {
		return
	}

	if depth > maxDepth {
		ctx.sink.Error(message.KindDepthExceeded, doc.Location)

		return
	}

	// Boolean schemas: `true` accepts everything, `false` accepts nothing.
	if schemaNode.Kind == value.KindBoolean {
		if !schemaNode.Boolean {
			ctx.sink.Error(message.KindSchemaTypeMismatch, doc.Location, "false")
		}

		return
	}

	if schemaNode.Kind != value.KindObject {
		return
	}

	localBase := baseURI

	if idNode, ok := schemaNode.PropertyLookup["$id"]; ok && idNode.Kind == value.KindString {
		localBase = resolveURI(baseURI, idNode.StringValue)
	}

	if refNode, ok := schemaNode.PropertyLookup["$ref"]; ok && refNode.Kind == value.KindString {
		ctx.validateRef(refNode.StringValue, localBase, doc, depth)

		return
	}

	validateType(ctx, schemaNode, doc)
	validateEnum(ctx, schemaNode, doc)
	validateConst(ctx, schemaNode, doc)
	validateNumeric(ctx, schemaNode, doc)
	validateString(ctx, schemaNode, doc)
	validateArray(ctx, schemaNode, doc, localBase, depth)
	validateObject(ctx, schemaNode, doc, localBase, depth)
	validateCombinators(ctx, schemaNode, doc, localBase, depth)
	validateConditional(ctx, schemaNode, doc, localBase, depth)
}

func (ctx *validationContext) validateRef(ref, baseURI string, doc *value.Node, depth int) {
	full := resolveURI(baseURI, ref)

	if ctx.active[full] {
		return
	}

	target, newBase, ok := ctx.lookup.resolve(ref, baseURI)
	if !ok {
		ctx.sink.Error(message.KindSchemaRefNotFound, doc.Location, ref)

		return
	}

	ctx.active[full] = true
	ctx.validate(target, doc, newBase, depth+1)
	delete(ctx.active, full)
}
