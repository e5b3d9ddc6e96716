// Package position defines the source-location types shared by every stage
// of the KSON pipeline: lexer, parser, indent validator, formatter, and
// schema validator.
package position

import "fmt"

// Position is a single point in a source document. Line and Column are
// zero-based; ByteOffset is the zero-based byte index into the original
// UTF-8 input.
type Position struct {
	Line       int
	Column     int
	ByteOffset int
}

// String renders a Position as "line:column" (1-based for humans).
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p sorts strictly before other by line, then
// column, so positions built from a (line, column) pair alone compare
// correctly against lexer-produced ones.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}

	return p.Column < other.Column
}

// Location is a half-open span [Start, End) over the source text.
type Location struct {
	Start Position
	End   Position
}

// Contains reports whether inner is fully contained within l, i.e.
// l.Start <= inner.Start and inner.End <= l.End.
func (l Location) Contains(inner Location) bool {
	return !inner.Start.Before(l.Start) && !l.End.Before(inner.End)
}

// Span returns the smallest Location that contains both l and other.
func (l Location) Span(other Location) Location {
	start := l.Start
	if other.Start.Before(start) {
		start = other.Start
	}

	end := l.End
	if end.Before(other.End) {
		end = other.End
	}

	return Location{Start: start, End: end}
}

// String renders a Location as "start-end".
func (l Location) String() string {
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

// Zero is the empty Location at the start of a document, used as a
// placeholder for synthetic nodes that carry no real source span.
var Zero = Location{}
