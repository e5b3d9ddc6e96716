package format

import (
	"strings"

	"github.com/kson-lang/kson/value"
)

// writeCompact renders root with minimal whitespace (spec.md §4.4). The
// top-level object, like Plain and Delimited, is rendered bare (no
// enclosing braces); nested objects are wrapped in `{...}` with
// space-separated properties so they stay distinguishable from their
// siblings once newlines are gone.
func (p *printer) writeCompact(root *value.Node) {
	switch root.Kind {
	case value.KindObject:
		p.writeCompactTopObject(root)
	case value.KindArray:
		p.buf.WriteString(compactArray(root))
	case value.KindEmbed:
		writeEmbed(&p.buf, root, p.opts.Indent, 0)
	default:
		p.buf.WriteString(literal(root))
	}

	p.buf.WriteString("\n")
}

func (p *printer) writeCompactTopObject(obj *value.Node) {
	for _, prop := range obj.Properties {
		p.writeComments(prop.Key.Location.Start.Line, 0)
		p.buf.WriteString(quoteString(prop.Key.StringValue))
		p.buf.WriteString(":")
		p.buf.WriteString(compactValue(prop.Value, p.opts.Indent))
	}
}

func compactValue(val *value.Node, ind Indent) string {
	switch val.Kind {
	case value.KindObject:
		return compactObject(val)
	case value.KindArray:
		return compactArray(val)
	case value.KindEmbed:
		var sb strings.Builder

		writeEmbed(&sb, val, ind, 0)

		return sb.String()
	default:
		return literal(val)
	}
}

func compactObject(obj *value.Node) string {
	out := "{"

	for i, prop := range obj.Properties {
		if i > 0 {
			out += " "
		}

		out += quoteString(prop.Key.StringValue) + ":" + compactValue(prop.Value, Indent{})
	}

	return out + "}"
}

func compactArray(arr *value.Node) string {
	out := "["

	for i, el := range arr.Elements {
		if i > 0 {
			out += " "
		}

		out += compactValue(el, Indent{})
	}

	return out + "]"
}
