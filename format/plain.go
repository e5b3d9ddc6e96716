package format

import "github.com/kson-lang/kson/value"

// writePlainTop renders root as a complete Plain-style document: bare
// key/value lines or a bare dash list at the root, with no enclosing
// delimiters (spec.md §4.4).
func (p *printer) writePlainTop(root *value.Node) {
	switch root.Kind {
	case value.KindObject:
		p.writePlainObjectBody(root, 0)
	case value.KindArray:
		p.writePlainArrayBody(root, 0)
	case value.KindEmbed:
		writeEmbed(&p.buf, root, p.opts.Indent, 0)
		p.buf.WriteString("\n")
	default:
		p.buf.WriteString(literal(root))
		p.buf.WriteString("\n")
	}
}

func (p *printer) writePlainObjectBody(obj *value.Node, level int) {
	ind := p.opts.Indent

	for i, prop := range obj.Properties {
		hasMore := i < len(obj.Properties)-1

		p.writeComments(prop.Key.Location.Start.Line, level)
		p.buf.WriteString(ind.at(level))
		p.buf.WriteString(quoteString(prop.Key.StringValue))
		p.buf.WriteString(":")
		p.writePlainValue(prop.Value, level, hasMore)
	}
}

func (p *printer) writePlainArrayBody(arr *value.Node, level int) {
	ind := p.opts.Indent

	for i, el := range arr.Elements {
		hasMore := i < len(arr.Elements)-1

		p.writeComments(el.Location.Start.Line, level)
		p.buf.WriteString(ind.at(level))
		p.buf.WriteString("-")
		p.writePlainValue(el, level, hasMore)
	}
}

// writePlainValue renders the value that follows a ": " or "- " marker.
// hasMore reports whether the enclosing property/item has further
// siblings, the only condition under which a nested plain container must
// close with an explicit end-dot/end-dash terminator (spec.md §4.4).
func (p *printer) writePlainValue(val *value.Node, level int, hasMore bool) {
	ind := p.opts.Indent

	switch {
	case val.Kind == value.KindObject && len(val.Properties) > 0:
		p.buf.WriteString("\n")
		p.writePlainObjectBody(val, level+1)

		if hasMore {
			p.buf.WriteString(ind.at(level + 1))
			p.buf.WriteString(".\n")
		}

	case val.Kind == value.KindArray && len(val.Elements) > 0:
		p.buf.WriteString("\n")
		p.writePlainArrayBody(val, level+1)

		if hasMore {
			p.buf.WriteString(ind.at(level + 1))
			p.buf.WriteString("=\n")
		}

	case val.Kind == value.KindObject:
		p.buf.WriteString(" {}\n")

	case val.Kind == value.KindArray:
		p.buf.WriteString(" []\n")

	case val.Kind == value.KindEmbed:
		p.buf.WriteString(" ")
		writeEmbed(&p.buf, val, ind, level)
		p.buf.WriteString("\n")

	default:
		p.buf.WriteString(" ")
		p.buf.WriteString(literal(val))
		p.buf.WriteString("\n")
	}
}
