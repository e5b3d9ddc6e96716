package schema

import (
	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/value"
)

func validateCombinators(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	if allOfNode, ok := schemaNode.PropertyLookup["allOf"]; ok && allOfNode.Kind == value.KindArray {
		for _, branch := range allOfNode.Elements {
			ctx.validate(branch, doc, baseURI, depth+1)
		}
	}

	if anyOfNode, ok := schemaNode.PropertyLookup["anyOf"]; ok && anyOfNode.Kind == value.KindArray {
		validateAnyOf(ctx, anyOfNode, doc, baseURI, depth)
	}

	if oneOfNode, ok := schemaNode.PropertyLookup["oneOf"]; ok && oneOfNode.Kind == value.KindArray {
		validateOneOf(ctx, oneOfNode, doc, baseURI, depth)
	}

	if notNode, ok := schemaNode.PropertyLookup["not"]; ok {
		probe := message.NewSink()
		probeCtx := &validationContext{sink: probe, active: ctx.active, lookup: ctx.lookup}
		probeCtx.validate(notNode, doc, baseURI, depth+1)

		if !probe.HasErrors() {
			ctx.sink.Error(message.KindSchemaNot, doc.Location)
		}
	}
}

func validateAnyOf(ctx *validationContext, anyOfNode, doc *value.Node, baseURI string, depth int) {
	var branchSinks []*message.Sink

	for _, branch := range anyOfNode.Elements {
		probe := message.NewSink()
		probeCtx := &validationContext{sink: probe, active: ctx.active, lookup: ctx.lookup}
		probeCtx.validate(branch, doc, baseURI, depth+1)

		if !probe.HasErrors() {
			return
		}

		branchSinks = append(branchSinks, probe)
	}

	ctx.sink.Error(message.KindSchemaAnyOf, doc.Location)

	for _, s := range branchSinks {
		for _, m := range s.Messages() {
			ctx.sink.Add(m)
		}
	}
}

func validateOneOf(ctx *validationContext, oneOfNode, doc *value.Node, baseURI string, depth int) {
	passCount := 0

	var branchSinks []*message.Sink

	for _, branch := range oneOfNode.Elements {
		probe := message.NewSink()
		probeCtx := &validationContext{sink: probe, active: ctx.active, lookup: ctx.lookup}
		probeCtx.validate(branch, doc, baseURI, depth+1)

		if !probe.HasErrors() {
			passCount++
		} else {
			branchSinks = append(branchSinks, probe)
		}
	}

	switch {
	case passCount == 0:
		ctx.sink.Error(message.KindSchemaOneOfNoMatch, doc.Location)

		for _, s := range branchSinks {
			for _, m := range s.Messages() {
				ctx.sink.Add(m)
			}
		}
	case passCount > 1:
		ctx.sink.Error(message.KindSchemaOneOfMultipleMatches, doc.Location)
	}
}

// validateConditional implements `if`/`then`/`else` (Draft-07): `if` is
// evaluated with its own sink so its result never pollutes ctx, then the
// matching branch (if present) is validated for real.
func validateConditional(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	ifNode, ok := schemaNode.PropertyLookup["if"]
	if !ok {
		return
	}

	probe := message.NewSink()
	probeCtx := &validationContext{sink: probe, active: ctx.active, lookup: ctx.lookup}
	probeCtx.validate(ifNode, doc, baseURI, depth+1)

	if !probe.HasErrors() {
		if thenNode, ok := schemaNode.PropertyLookup["then"]; ok {
			ctx.validate(thenNode, doc, baseURI, depth+1)
		}

		return
	}

	if elseNode, ok := schemaNode.PropertyLookup["else"]; ok {
		ctx.validate(elseNode, doc, baseURI, depth+1)
	}
}
