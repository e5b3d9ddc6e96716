// Package lexer turns KSON source text into a token stream, handling
// embed-block content extraction and indent stripping along the way
// (spec.md §4.1). Lexer errors never abort lexing: a problem is recorded
// on the [message.Sink] and scanning continues.
package lexer

import (
	"unicode/utf8"

	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/position"
	"github.com/kson-lang/kson/token"
)

// Lexer scans a single KSON source string into a token list.
type Lexer struct {
	src     string
	bytePos int
	line    int
	col     int

	tokens []token.Token
	sink   *message.Sink
}

// New creates a Lexer over src, appending diagnostics to sink.
func New(src string, sink *message.Sink) *Lexer {
	return &Lexer{src: src, sink: sink}
}

// Tokenize runs the lexer to completion and returns the full token list,
// always ending in an EOF token.
func Tokenize(src string, sink *message.Sink) []token.Token {
	l := New(src, sink)

	return l.Run()
}

// Run scans the entire source and returns the token list.
func (l *Lexer) Run() []token.Token {
	if l.src == "" {
		l.sink.Error(message.KindBlankSource, position.Location{})
	}

	for {
		r, ok := l.peekOK()
		if !ok {
			break
		}

		switch {
		case r == '\n' || r == ' ' || r == '\t' || r == '\r':
			l.lexWhitespace()
		case r == '#':
			l.lexComment()
		case r == '"' || r == '\'':
			l.lexString()
		case r == '%' || r == '$':
			l.lexEmbed()
		case r == '{':
			l.emitSingle(token.CurlyBraceL, r)
		case r == '}':
			l.emitSingle(token.CurlyBraceR, r)
		case r == '[':
			l.emitSingle(token.SquareBracketL, r)
		case r == ']':
			l.emitSingle(token.SquareBracketR, r)
		case r == '<':
			l.emitSingle(token.AngleBracketL, r)
		case r == '>':
			l.emitSingle(token.AngleBracketR, r)
		case r == ':':
			l.emitSingle(token.Colon, r)
		case r == ',':
			l.emitSingle(token.Comma, r)
		case r == '.':
			l.lexDotOrNumber()
		case r == '=':
			l.emitSingle(token.EndDash, r)
		case r == '-':
			l.lexMinus()
		case r >= '0' && r <= '9':
			l.lexNumber()
		case isSimpleStringStart(r):
			l.lexUnquotedOrKeyword()
		default:
			start := l.pos()
			l.advance()
			l.sink.Error(message.KindIllegalChar, l.locFrom(start), string(r))
			l.emit(token.IllegalChar, start, string(r))
		}
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Location: position.Location{Start: l.pos(), End: l.pos()}})

	return l.tokens
}

func (l *Lexer) lexWhitespace() {
	start := l.pos()

	var n int

	for {
		r, ok := l.peekOK()
		if !ok || !(r == '\n' || r == ' ' || r == '\t' || r == '\r') {
			break
		}

		l.advance()

		n++
	}

	l.emit(token.Whitespace, start, l.src[start.ByteOffset:l.bytePos])
}

func (l *Lexer) lexComment() {
	start := l.pos()

	for {
		r, ok := l.peekOK()
		if !ok || r == '\n' {
			break
		}

		l.advance()
	}

	l.emit(token.Comment, start, l.src[start.ByteOffset:l.bytePos])
}

// lexDotOrNumber always emits the end-dot terminator token: KSON's number
// grammar (per spec.md §4.1) doesn't allow a bare leading '.', so '.'
// followed by a digit is still scanned as DOT; the parser and indent
// validator never expect leading-dot numbers.
func (l *Lexer) lexDotOrNumber() {
	r := rune('.')
	l.emitSingle(token.Dot, r)
}

// lexMinus decides whether '-' begins a LIST_DASH ("- " at a list-item
// start position) or a negative number; a '-' that is neither is reported
// as ILLEGAL_MINUS_SIGN and emitted as ILLEGAL_CHAR. The parser is the
// true arbiter of list-dash-vs-structural-minus in ambiguous plain-list
// contexts; the lexer applies the simple rule from spec.md §4.1: LIST_DASH
// is only produced when '-' is followed by whitespace or end-of-line.
func (l *Lexer) lexMinus() {
	start := l.pos()

	// Peek ahead without consuming to decide LIST_DASH vs number.
	next, ok := l.peekAt(1)
	if ok && (next == ' ' || next == '\t') {
		l.advance()
		l.advance()
		l.emit(token.ListDash, start, "- ")

		return
	}

	if !ok || next == '\n' {
		l.advance()
		l.emit(token.ListDash, start, "-")

		return
	}

	if next >= '0' && next <= '9' {
		l.lexNumber()

		return
	}

	l.advance()
	l.sink.Error(message.KindIllegalMinusSign, l.locFrom(start))
	l.emit(token.IllegalChar, start, "-")
}

func (l *Lexer) lexNumber() {
	start := l.pos()
	n := scanNumberLexeme(l.src[l.bytePos:])

	l.advanceBy(n)

	lexeme := l.src[start.ByteOffset:l.bytePos]

	res := parseNumber(lexeme)
	if res.Err != nil {
		l.sink.Error(message.Kind(res.Err.kind), l.locFrom(start), lexeme)
	}

	l.emit(token.Number, start, lexeme)
}

func (l *Lexer) lexUnquotedOrKeyword() {
	start := l.pos()

	for {
		r, ok := l.peekOK()
		if !ok || !isIdentifierContinue(r) {
			break
		}

		l.advance()
	}

	lexeme := l.src[start.ByteOffset:l.bytePos]

	switch lexeme {
	case "true":
		l.emit(token.True, start, lexeme)
	case "false":
		l.emit(token.False, start, lexeme)
	case "null":
		l.emit(token.Null, start, lexeme)
	default:
		l.emit(token.UnquotedString, start, lexeme)
	}
}

func isIdentifierContinue(r rune) bool {
	return isLetterOrUnderscore(r) || (r >= '0' && r <= '9')
}

// --- position & emission plumbing ---

func (l *Lexer) pos() position.Position {
	return position.Position{Line: l.line, Column: l.col, ByteOffset: l.bytePos}
}

// posAt reconstructs the Position for an arbitrary earlier byte offset by
// re-scanning from the start of the source. Used only for the rare case
// of emitting a token whose start isn't the lexer's current position
// (e.g. EMBED_METADATA, which starts mid-preamble).
func (l *Lexer) posAt(offset int) position.Position {
	p := position.Position{}

	for p.ByteOffset < offset && p.ByteOffset < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[p.ByteOffset:])

		p.ByteOffset += size
		if r == '\n' {
			p.Line++
			p.Column = 0
		} else {
			p.Column++
		}
	}

	return p
}

func (l *Lexer) peek() rune {
	r, _ := utf8.DecodeRuneInString(l.src[l.bytePos:])

	return r
}

func (l *Lexer) peekOK() (rune, bool) {
	if l.bytePos >= len(l.src) {
		return 0, false
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.bytePos:])

	return r, true
}

func (l *Lexer) peekAt(n int) (rune, bool) {
	p := l.bytePos

	var r rune

	var ok bool

	for i := 0; i <= n; i++ {
		if p >= len(l.src) {
			return 0, false
		}

		var size int

		r, size = utf8.DecodeRuneInString(l.src[p:])
		ok = true
		p += size
	}

	return r, ok
}

func (l *Lexer) advance() {
	r, size := utf8.DecodeRuneInString(l.src[l.bytePos:])

	l.bytePos += size
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) advanceBy(bytes int) {
	end := l.bytePos + bytes
	for l.bytePos < end {
		l.advance()
	}
}

// takeN consumes up to n bytes (expected to be ASCII hex digits for
// \uXXXX escapes) and returns what was actually available.
func (l *Lexer) takeN(n int) string {
	start := l.bytePos

	for i := 0; i < n; i++ {
		if _, ok := l.peekOK(); !ok {
			break
		}

		l.advance()
	}

	return l.src[start:l.bytePos]
}

func (l *Lexer) emit(kind token.Kind, start position.Position, lexeme string) {
	l.tokens = append(l.tokens, token.Token{
		Kind:     kind,
		Lexeme:   lexeme,
		Location: position.Location{Start: start, End: l.pos()},
	})
}

func (l *Lexer) emitSpan(kind token.Kind, start, end position.Position, lexeme string) {
	l.tokens = append(l.tokens, token.Token{
		Kind:     kind,
		Lexeme:   lexeme,
		Location: position.Location{Start: start, End: end},
	})
}

func (l *Lexer) emitSingle(kind token.Kind, r rune) {
	start := l.pos()
	l.advance()
	l.emit(kind, start, string(r))
}

func (l *Lexer) locFrom(start position.Position) position.Location {
	return position.Location{Start: start, End: l.pos()}
}
