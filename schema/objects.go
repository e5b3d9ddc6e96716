package schema

import (
	"regexp"
	"strconv"

	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/value"
)

func validateObject(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	if doc.Kind != value.KindObject {
		return
	}

	validateRequired(ctx, schemaNode, doc)

	if n, ok := intProp(schemaNode, "minProperties"); ok && len(doc.Properties) < n {
		ctx.sink.Error(message.KindSchemaMinProperties, doc.Location, strconv.Itoa(n))
	}

	if n, ok := intProp(schemaNode, "maxProperties"); ok && len(doc.Properties) > n {
		ctx.sink.Error(message.KindSchemaMaxProperties, doc.Location, strconv.Itoa(n))
	}

	validateProperties(ctx, schemaNode, doc, baseURI, depth)
	validatePropertyNames(ctx, schemaNode, doc, baseURI, depth)
	validateDependencies(ctx, schemaNode, doc, baseURI, depth)
}

func validateRequired(ctx *validationContext, schemaNode, doc *value.Node) {
	reqNode, ok := schemaNode.PropertyLookup["required"]
	if !ok || reqNode.Kind != value.KindArray {
		return
	}

	for _, r := range reqNode.Elements {
		if r.Kind != value.KindString {
			continue
		}

		if _, present := doc.PropertyLookup[r.StringValue]; !present {
			ctx.sink.Error(message.KindSchemaRequiredPropertyMissing, doc.Location, r.StringValue)
		}
	}
}

// validateProperties implements `properties` with `patternProperties` and
// `additionalProperties` fallback (spec.md §4.5): a document key is
// validated against its named schema if present, else against every
// matching pattern schema, else against `additionalProperties`.
func validateProperties(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	propsNode := schemaNode.PropertyLookup["properties"]
	patternNode := schemaNode.PropertyLookup["patternProperties"]
	addlNode, hasAddl := schemaNode.PropertyLookup["additionalProperties"]

	for _, p := range doc.Properties {
		key := p.Key.StringValue

		if propsNode != nil && propsNode.Kind == value.KindObject {
			if sub, ok := propsNode.PropertyLookup[key]; ok {
				ctx.validate(sub, p.Value, baseURI, depth+1)

				continue
			}
		}

		matched := false

		if patternNode != nil && patternNode.Kind == value.KindObject {
			for _, pp := range patternNode.Properties {
				re, err := regexp.Compile(pp.Key.StringValue)
				if err != nil {
					continue
				}

				if re.MatchString(key) {
					ctx.validate(pp.Value, p.Value, baseURI, depth+1)

					matched = true
				}
			}
		}

		if matched {
			continue
		}

		if hasAddl {
			if addlNode.Kind == value.KindBoolean && !addlNode.Boolean {
				ctx.sink.Error(message.KindSchemaAdditionalProperties, p.Key.Location, key)

				continue
			}

			ctx.validate(addlNode, p.Value, baseURI, depth+1)
		}
	}
}

func validatePropertyNames(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	namesNode, ok := schemaNode.PropertyLookup["propertyNames"]
	if !ok {
		return
	}

	for _, p := range doc.Properties {
		probe := message.NewSink()
		probeCtx := &validationContext{sink: probe, active: ctx.active, lookup: ctx.lookup}
		probeCtx.validate(namesNode, p.Key, baseURI, depth+1)

		if probe.HasErrors() {
			ctx.sink.Error(message.KindSchemaPropertyNames, p.Key.Location, p.Key.StringValue)
		}
	}
}

func validateDependencies(ctx *validationContext, schemaNode, doc *value.Node, baseURI string, depth int) {
	depsNode, ok := schemaNode.PropertyLookup["dependencies"]
	if !ok || depsNode.Kind != value.KindObject {
		return
	}

	for _, dep := range depsNode.Properties {
		name := dep.Key.StringValue

		if _, present := doc.PropertyLookup[name]; !present {
			continue
		}

		switch dep.Value.Kind {
		case value.KindArray:
			for _, r := range dep.Value.Elements {
				if r.Kind != value.KindString {
					continue
				}

				if _, ok := doc.PropertyLookup[r.StringValue]; !ok {
					ctx.sink.Error(message.KindSchemaDependencies, doc.Location, name, r.StringValue)
				}
			}
		case value.KindObject, value.KindBoolean:
			ctx.validate(dep.Value, doc, baseURI, depth+1)
		}
	}
}
