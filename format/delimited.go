package format

import "github.com/kson-lang/kson/value"

// writeDelimitedTop renders root as a complete Delimited-style document.
// Every object/array is wrapped in its explicit delimiter regardless of
// how it was originally written; only a lone top-level scalar is left
// unwrapped (spec.md §4.4).
func (p *printer) writeDelimitedTop(root *value.Node) {
	switch root.Kind {
	case value.KindObject:
		p.writeDelimitedObject(root, 0)
		p.buf.WriteString("\n")
	case value.KindArray:
		p.writeDelimitedArray(root, 0)
		p.buf.WriteString("\n")
	case value.KindEmbed:
		writeEmbed(&p.buf, root, p.opts.Indent, 0)
		p.buf.WriteString("\n")
	default:
		p.buf.WriteString(literal(root))
		p.buf.WriteString("\n")
	}
}

func (p *printer) writeDelimitedObject(obj *value.Node, level int) {
	ind := p.opts.Indent

	p.buf.WriteString("{\n")

	for _, prop := range obj.Properties {
		p.writeComments(prop.Key.Location.Start.Line, level+1)
		p.buf.WriteString(ind.at(level + 1))
		p.buf.WriteString(quoteString(prop.Key.StringValue))
		p.buf.WriteString(": ")
		p.writeDelimitedValue(prop.Value, level+1)
		p.buf.WriteString("\n")
	}

	p.buf.WriteString(ind.at(level))
	p.buf.WriteString("}")
}

func (p *printer) writeDelimitedArray(arr *value.Node, level int) {
	ind := p.opts.Indent

	p.buf.WriteString("<\n")

	for _, el := range arr.Elements {
		p.writeComments(el.Location.Start.Line, level+1)
		p.buf.WriteString(ind.at(level + 1))
		p.buf.WriteString("- ")
		p.writeDelimitedValue(el, level+1)
		p.buf.WriteString("\n")
	}

	p.buf.WriteString(ind.at(level))
	p.buf.WriteString(">")
}

func (p *printer) writeDelimitedValue(val *value.Node, level int) {
	switch val.Kind {
	case value.KindObject:
		p.writeDelimitedObject(val, level)
	case value.KindArray:
		p.writeDelimitedArray(val, level)
	case value.KindEmbed:
		writeEmbed(&p.buf, val, p.opts.Indent, level)
	default:
		p.buf.WriteString(literal(val))
	}
}
