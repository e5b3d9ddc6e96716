package schema

import "github.com/kson-lang/kson/value"

// jsonTypeNames lists every schema "type" keyword value this validator
// recognizes.
var jsonTypeNames = map[string]bool{
	"null": true, "boolean": true, "object": true, "array": true,
	"number": true, "string": true, "integer": true,
}

// typeMatches reports whether doc satisfies the named JSON Schema type,
// honoring the "every integer is also a number" rule (spec.md §4.5).
func typeMatches(doc *value.Node, typeName string) bool {
	switch typeName {
	case "null":
		return doc.Kind == value.KindNull
	case "boolean":
		return doc.Kind == value.KindBoolean
	case "object":
		return doc.Kind == value.KindObject
	case "array":
		return doc.Kind == value.KindArray
	case "string":
		return doc.Kind == value.KindString
	case "integer":
		return doc.Kind == value.KindInteger
	case "number":
		return doc.Kind == value.KindInteger || doc.Kind == value.KindDecimal
	default:
		return false
	}
}

// numericValue returns doc's magnitude as a float64 and whether doc is
// numeric at all.
func numericValue(doc *value.Node) (float64, bool) {
	switch doc.Kind {
	case value.KindInteger:
		return float64(doc.Integer), true
	case value.KindDecimal:
		return doc.Decimal, true
	default:
		return 0, false
	}
}

// valueEqual implements deep structural equality over the value tree
// (spec.md §4.5): array order matters, object key order doesn't, numeric
// equality compares magnitude regardless of integer/decimal kind.
func valueEqual(a, b *value.Node) bool {
	if a == nil || b == nil {
		return a == b
	}

	an, aNum := numericValue(a)
	bn, bNum := numericValue(b)

	if aNum && bNum {
		return an == bn
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case value.KindNull:
		return true
	case value.KindBoolean:
		return a.Boolean == b.Boolean
	case value.KindString:
		return a.StringValue == b.StringValue
	case value.KindArray:
		if len(a.Elements) != len(b.Elements) {
			return false
		}

		for i := range a.Elements {
			if !valueEqual(a.Elements[i], b.Elements[i]) {
				return false
			}
		}

		return true
	case value.KindObject:
		if len(a.PropertyLookup) != len(b.PropertyLookup) {
			return false
		}

		for k, av := range a.PropertyLookup {
			bv, ok := b.PropertyLookup[k]
			if !ok || !valueEqual(av, bv) {
				return false
			}
		}

		return true
	case value.KindEmbed:
		return a.EmbedTag == b.EmbedTag && a.EmbedContent == b.EmbedContent
	default:
		return false
	}
}
