package schema

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/value"
)

func validateType(ctx *validationContext, schemaNode, doc *value.Node) {
	typeNode, ok := schemaNode.PropertyLookup["type"]
	if !ok {
		return
	}

	var names []string

	switch typeNode.Kind {
	case value.KindString:
		names = []string{typeNode.StringValue}
	case value.KindArray:
		for _, e := range typeNode.Elements {
			if e.Kind == value.KindString {
				names = append(names, e.StringValue)
			}
		}
	default:
		return
	}

	for _, n := range names {
		if typeMatches(doc, n) {
			return
		}
	}

	ctx.sink.Error(message.KindSchemaTypeMismatch, doc.Location, joinNames(names))
}

func joinNames(names []string) string {
	out := ""

	for i, n := range names {
		if i > 0 {
			out += "|"
		}

		out += n
	}

	return out
}

func validateEnum(ctx *validationContext, schemaNode, doc *value.Node) {
	enumNode, ok := schemaNode.PropertyLookup["enum"]
	if !ok || enumNode.Kind != value.KindArray {
		return
	}

	for _, candidate := range enumNode.Elements {
		if valueEqual(candidate, doc) {
			return
		}
	}

	ctx.sink.Error(message.KindSchemaEnumMismatch, doc.Location)
}

func validateConst(ctx *validationContext, schemaNode, doc *value.Node) {
	constNode, ok := schemaNode.PropertyLookup["const"]
	if !ok {
		return
	}

	if !valueEqual(constNode, doc) {
		ctx.sink.Error(message.KindSchemaConstMismatch, doc.Location)
	}
}

func validateNumeric(ctx *validationContext, schemaNode, doc *value.Node) {
	docVal, isNum := numericValue(doc)
	if !isNum {
		return
	}

	if n, ok := numericProp(schemaNode, "minimum"); ok && docVal < n {
		ctx.sink.Error(message.KindSchemaMinimum, doc.Location, formatFloat(n))
	}

	if n, ok := numericProp(schemaNode, "maximum"); ok && docVal > n {
		ctx.sink.Error(message.KindSchemaMaximum, doc.Location, formatFloat(n))
	}

	if n, ok := numericProp(schemaNode, "exclusiveMinimum"); ok && docVal <= n {
		ctx.sink.Error(message.KindSchemaExclusiveMinimum, doc.Location, formatFloat(n))
	}

	if n, ok := numericProp(schemaNode, "exclusiveMaximum"); ok && docVal >= n {
		ctx.sink.Error(message.KindSchemaExclusiveMaximum, doc.Location, formatFloat(n))
	}

	if n, ok := numericProp(schemaNode, "multipleOf"); ok && n != 0 {
		ratio := docVal / n
		if ratio != float64(int64(ratio)) {
			ctx.sink.Error(message.KindSchemaMultipleOf, doc.Location, formatFloat(n))
		}
	}
}

func numericProp(schemaNode *value.Node, key string) (float64, bool) {
	n, ok := schemaNode.PropertyLookup[key]
	if !ok {
		return 0, false
	}

	return numericValue(n)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func validateString(ctx *validationContext, schemaNode, doc *value.Node) {
	if doc.Kind != value.KindString {
		return
	}

	length := utf8.RuneCountInString(doc.StringValue)

	if n, ok := intProp(schemaNode, "minLength"); ok && length < n {
		ctx.sink.Error(message.KindSchemaMinLength, doc.Location, strconv.Itoa(n))
	}

	if n, ok := intProp(schemaNode, "maxLength"); ok && length > n {
		ctx.sink.Error(message.KindSchemaMaxLength, doc.Location, strconv.Itoa(n))
	}

	if patNode, ok := schemaNode.PropertyLookup["pattern"]; ok && patNode.Kind == value.KindString {
		if re, err := regexp.Compile(patNode.StringValue); err == nil {
			if !re.MatchString(doc.StringValue) {
				ctx.sink.Error(message.KindSchemaPattern, doc.Location, patNode.StringValue)
			}
		}
		// An invalid pattern is silently skipped, never fatal (spec.md §4.5).
	}
}

func intProp(schemaNode *value.Node, key string) (int, bool) {
	n, ok := schemaNode.PropertyLookup[key]
	if !ok || n.Kind != value.KindInteger {
		return 0, false
	}

	return int(n.Integer), true
}
