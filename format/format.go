// Package format renders a parsed value tree back to KSON text in one of
// three styles (spec.md §4.4), reattaching comments from the original
// token stream along the way.
package format

import (
	"strings"

	"github.com/kson-lang/kson/token"
	"github.com/kson-lang/kson/value"
)

// Style selects the output shape.
type Style int

const (
	Plain Style = iota
	Delimited
	Compact
)

// IndentKind selects whether nesting is rendered with spaces or tabs.
type IndentKind int

const (
	IndentSpaces IndentKind = iota
	IndentTabs
)

// Indent describes one level of nesting's whitespace. Width is only
// meaningful when Kind is IndentSpaces.
type Indent struct {
	Kind  IndentKind
	Width int
}

// SpacesIndent builds an n-space indent unit.
func SpacesIndent(n int) Indent { return Indent{Kind: IndentSpaces, Width: n} }

// TabsIndent builds a single-tab indent unit.
func TabsIndent() Indent { return Indent{Kind: IndentTabs} }

func (ind Indent) unit() string {
	if ind.Kind == IndentTabs {
		return "\t"
	}

	return strings.Repeat(" ", ind.Width)
}

func (ind Indent) at(level int) string {
	if level <= 0 {
		return ""
	}

	return strings.Repeat(ind.unit(), level)
}

// Options controls Format's output.
type Options struct {
	Indent Indent
	Style  Style
}

// Format renders root in the requested style. tokens is the token stream
// that produced root (from parser.Result), used only to recover comments;
// it may be nil to format without any comment reattachment.
func Format(root *value.Node, tokens []token.Token, opts Options) string {
	p := &printer{opts: opts, comments: collectComments(tokens)}

	if root == nil {
		return ""
	}

	switch opts.Style {
	case Delimited:
		p.writeDelimitedTop(root)
	case Compact:
		p.writeCompact(root)
	default:
		p.writePlainTop(root)
	}

	return strings.TrimRight(p.buf.String(), "\n") + "\n"
}

type printer struct {
	opts     Options
	comments commentMap
	buf      strings.Builder
}

func (p *printer) writeComments(line int, level int) {
	for _, c := range p.comments[line] {
		p.buf.WriteString(p.opts.Indent.at(level))
		p.buf.WriteString("#")

		if c != "" {
			p.buf.WriteString(" ")
			p.buf.WriteString(c)
		}

		p.buf.WriteString("\n")
	}

	// Only the first construct written for a line gets its comments.
	delete(p.comments, line)
}

// commentMap maps a source line number to the ordered comment bodies
// (leading-comment text, '#' stripped) that precede or trail the
// construct starting on that line.
type commentMap map[int][]string

// collectComments implements the reattachment rule from spec.md §4.4: a
// comment that is the first non-trivia text on its line attaches to the
// next significant token's line; a comment trailing a value on the same
// line attaches to that line's leading construct instead. Consecutive
// leading-comment lines separated only by blank lines are squeezed into
// one run (achieved here simply by never recording the blank lines).
func collectComments(tokens []token.Token) commentMap {
	m := commentMap{}

	var pending []string

	atLineStart := true
	lineAnchor := -1

	for _, t := range tokens {
		switch t.Kind {
		case token.Whitespace:
			if strings.Contains(t.Lexeme, "\n") {
				atLineStart = true
				lineAnchor = -1
			}
		case token.Comment:
			text := strings.TrimPrefix(t.Lexeme, "#")
			text = strings.TrimPrefix(text, " ")

			if atLineStart {
				pending = append(pending, text)
			} else if lineAnchor >= 0 {
				m[lineAnchor] = append(m[lineAnchor], text)
			}
		case token.EOF:
		default:
			if atLineStart {
				lineAnchor = t.Location.Start.Line

				if len(pending) > 0 {
					m[lineAnchor] = append(m[lineAnchor], pending...)
					pending = nil
				}

				atLineStart = false
			}
		}
	}

	return m
}
