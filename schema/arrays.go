package schema

import (
	"strconv"

	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/value"
)

func validateArray(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	if doc.Kind != value.KindArray {
		return
	}

	if n, ok := intProp(schemaNode, "minItems"); ok && len(doc.Elements) < n {
		ctx.sink.Error(message.KindSchemaMinItems, doc.Location, strconv.Itoa(n))
	}

	if n, ok := intProp(schemaNode, "maxItems"); ok && len(doc.Elements) > n {
		ctx.sink.Error(message.KindSchemaMaxItems, doc.Location, strconv.Itoa(n))
	}

	if uniqueNode, ok := schemaNode.PropertyLookup["uniqueItems"]; ok && uniqueNode.Kind == value.KindBoolean && uniqueNode.Boolean {
		if hasDuplicate(doc.Elements) {
			ctx.sink.Error(message.KindSchemaUniqueItems, doc.Location)
		}
	}

	validateItems(ctx, schemaNode, doc, baseURI, depth)
	validateContains(ctx, schemaNode, doc, baseURI, depth)
}

func hasDuplicate(elems []*value.Node) bool {
	for i := range elems {
		for j := i + 1; j < len(elems); j++ {
			if valueEqual(elems[i], elems[j]) {
				return true
			}
		}
	}

	return false
}

func validateItems(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	itemsNode, ok := schemaNode.PropertyLookup["items"]
	if !ok {
		return
	}

	if itemsNode.Kind == value.KindArray {
		// Positional ("tuple") validation: schema[i] applies to doc[i].
		for i, el := range doc.Elements {
			if i >= len(itemsNode.Elements) {
				break
			}

			ctx.validate(itemsNode.Elements[i], el, baseURI, depth+1)
		}

		if len(doc.Elements) <= len(itemsNode.Elements) {
			return
		}

		extra := doc.Elements[len(itemsNode.Elements):]

		if addl, ok := schemaNode.PropertyLookup["additionalItems"]; ok {
			for _, el := range extra {
				ctx.validate(addl, el, baseURI, depth+1)
			}
		} else {
			for _, el := range extra {
				ctx.sink.Error(message.KindSchemaAdditionalItems, el.Location)
			}
		}

		return
	}

	// A single schema applies to every element.
	for _, el := range doc.Elements {
		ctx.validate(itemsNode, el, baseURI, depth+1)
	}
}

func validateContains(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	containsNode, ok := schemaNode.PropertyLookup["contains"]
	if !ok {
		return
	}

	for _, el := range doc.Elements {
		probe := message.NewSink()
		probeCtx := &validationContext{sink: probe, active: ctx.active, lookup: ctx.lookup}
		probeCtx.validate(containsNode, el, baseURI, depth+1)

		if !probe.HasErrors() {
			return
		}
	}

	ctx.sink.Error(message.KindSchemaContains, doc.Location)
}
