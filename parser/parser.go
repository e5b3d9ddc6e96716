// Package parser implements the KSON recursive-descent parser: tokens to
// a concrete [value.Node] tree with source locations (spec.md §4.2).
package parser

import (
	"github.com/kson-lang/kson/lexer"
	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/position"
	"github.com/kson-lang/kson/token"
	"github.com/kson-lang/kson/value"
)

// maxDepth bounds recursion in the parser, per spec.md §5. Exceeding it
// emits DEPTH_EXCEEDED and aborts the current parse with whatever tree
// was built so far.
const maxDepth = 256

// noColumnConstraint marks a parsing context with no enclosing-key column
// to compare against — used at the document root and inside explicitly
// delimited containers, which "reset the alignment frame" (spec.md §4.3).
const noColumnConstraint = -1

// Result is the output of [Parse]: the parsed value tree (nil only when
// the document held no parseable value at all), the full token stream
// (including trivia, for the formatter), and any diagnostics.
type Result struct {
	Value  *value.Node
	Tokens []token.Token
	Sink   *message.Sink
}

// Parse lexes and parses src, returning the value tree, full token
// stream, and a message sink. Parser errors are recorded and recovered
// from rather than raised, so a best-effort tree is always returned.
func Parse(src string) Result {
	sink := message.NewSink()
	toks := lexer.Tokenize(src, sink)

	p := &Parser{tokens: toks, src: src, sink: sink}

	val := p.parseDocument()

	return Result{Value: val, Tokens: toks, Sink: sink}
}

// Parser consumes a token stream produced by lexer.Tokenize and builds a
// value.Node tree. It is look-ahead-1 over non-trivia token kinds;
// indentation only influences control flow in the plain-object/plain-list
// termination rule (spec.md §4.2).
type Parser struct {
	tokens []token.Token
	pos    int
	src    string
	sink   *message.Sink
	depth  int
}

func (p *Parser) parseDocument() *value.Node {
	if p.atEOF() {
		return nil
	}

	val := p.parseValue(noColumnConstraint)

	if !p.atEOF() {
		start := p.currentLoc().Start
		end := p.tokens[len(p.tokens)-1].Location.End
		p.sink.Error(message.KindExtraContent, position.Location{Start: start, End: end})
	}

	return val
}

// parseValue parses a single value: object, array, embed, or literal.
// enclosingCol is the starting column of the key/dash whose value this
// is — the only indentation input to parser control flow (spec.md §4.2).
func (p *Parser) parseValue(enclosingCol int) *value.Node {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > maxDepth {
		loc := p.currentLoc()
		p.sink.Error(message.KindDepthExceeded, loc)

		// Abort: jump to EOF so every enclosing container stops consuming.
		p.pos = len(p.tokens)

		return value.Null(loc)
	}

	tok := p.current()

	switch tok.Kind {
	case token.CurlyBraceL:
		return p.parseBracedObject()
	case token.SquareBracketL:
		return p.parseBracedArray()
	case token.AngleBracketL:
		return p.parseAngleArray()
	case token.ListDash:
		return p.parsePlainDashList(enclosingCol)
	case token.EmbedOpenDelim:
		return p.parseEmbed()
	case token.Number:
		return p.parseNumberLiteral()
	case token.True:
		loc := tok.Location
		p.advance()

		return value.Bool(true, loc)
	case token.False:
		loc := tok.Location
		p.advance()

		return value.Bool(false, loc)
	case token.Null:
		loc := tok.Location
		p.advance()

		return value.Null(loc)
	case token.StringOpenQuote, token.UnquotedString:
		keyNode := p.parseStringNode()

		if p.currentKind() == token.Colon {
			return p.parsePlainObject(keyNode, enclosingCol)
		}

		return keyNode
	default:
		loc := p.currentLoc()
		p.sink.Error(message.KindUnexpectedToken, loc, tok.Kind.String())
		p.resync()

		return value.Null(loc)
	}
}

// parseStringNode consumes a single string value — either a quoted run
// (STRING_OPEN_QUOTE .. STRING_CLOSE_QUOTE) or a single UNQUOTED_STRING
// token — and builds a value.String node. The raw literal is sliced from
// the original source rather than reassembled from granular tokens.
func (p *Parser) parseStringNode() *value.Node {
	tok := p.current()

	if tok.Kind == token.UnquotedString {
		p.advance()

		return value.Str(tok.Lexeme, tok.Lexeme, value.Unquoted, tok.Location)
	}

	// STRING_OPEN_QUOTE: decoded value was stashed on this token by the
	// lexer; skip to the matching STRING_CLOSE_QUOTE.
	openTok := tok
	quoteChar := openTok.Lexeme

	qs := value.DoubleQuoted
	if quoteChar == "'" {
		qs = value.SingleQuoted
	}

	p.advance()

	endLoc := openTok.Location

	for {
		cur := p.current()
		if cur.Kind == token.EOF {
			break
		}

		if cur.Kind == token.StringCloseQuote {
			endLoc = cur.Location
			p.advance()

			break
		}

		endLoc = cur.Location
		p.advance()
	}

	loc := position.Location{Start: openTok.Location.Start, End: endLoc.End}
	raw := p.src[loc.Start.ByteOffset:loc.End.ByteOffset]

	return value.Str(openTok.Value, raw, qs, loc)
}

func (p *Parser) parseNumberLiteral() *value.Node {
	tok := p.current()
	p.advance()

	res := lexer.ParseNumber(tok.Lexeme)
	if res.IsInteger {
		return value.Int(res.IntValue, res.Normalized, tok.Location)
	}

	return value.Dec(res.DecValue, res.Normalized, tok.Location)
}

// parseEmbed consumes a full embed block: EMBED_OPEN_DELIM, optional
// EMBED_TAG/EMBED_METADATA, EMBED_PREAMBLE_NEWLINE, EMBED_CONTENT, and
// (if present) EMBED_CLOSE_DELIM. The lexer already performed indent
// stripping and escape decoding, stashing the decoded content directly on
// the EMBED_CONTENT token's Lexeme.
func (p *Parser) parseEmbed() *value.Node {
	openTok := p.current()
	p.advance()

	delim := byte('%')
	if openTok.Lexeme == "$" {
		delim = '$'
	}

	var tag, metadata string

	if p.currentKind() == token.EmbedTag {
		tag = p.current().Lexeme
		p.advance()
	}

	if p.currentKind() == token.EmbedMetadata {
		metadata = p.current().Lexeme
		p.advance()
	}

	if p.currentKind() == token.EmbedPreambleNewline {
		p.advance()
	}

	var content string

	endLoc := openTok.Location

	if p.currentKind() == token.EmbedContent {
		contentTok := p.current()
		content = contentTok.Lexeme
		endLoc = contentTok.Location
		p.advance()
	}

	if p.currentKind() == token.EmbedCloseDelim {
		endLoc = p.current().Location
		p.advance()
	} else {
		p.sink.Error(message.KindEmbedBlockNoClose, openTok.Location)
	}

	loc := position.Location{Start: openTok.Location.Start, End: endLoc.End}

	return value.Embed(tag, metadata, content, delim, loc)
}

// parsePlainObject builds a plain (undelimited) object whose first
// property's key has already been parsed as keyNode. enclosingCol is the
// starting column of the property that this object is the value of (or
// noColumnConstraint at the document root) — termination compares
// against it, not against keyNode's own column (spec.md §4.2).
func (p *Parser) parsePlainObject(keyNode *value.Node, enclosingCol int) *value.Node {
	startCol := keyNode.Location.Start.Column

	var props []value.Property

	props = append(props, p.parsePropertyValue(keyNode, startCol))

	for {
		p.skipSeparators()

		if p.currentKind() == token.Dot {
			p.advance()

			break
		}

		if !p.isKeyStart() {
			break
		}

		candidateCol := p.currentLoc().Start.Column
		if enclosingCol != noColumnConstraint && candidateCol <= enclosingCol {
			break
		}

		nextKey := p.parseStringNode()

		if p.currentKind() != token.Colon {
			// Not actually a property (e.g. trailing garbage that looked
			// like a key): stop the plain object here and let the
			// caller/outer loop deal with it.
			break
		}

		props = append(props, p.parsePropertyValue(nextKey, nextKey.Location.Start.Column))
	}

	loc := props[0].Key.Location
	loc = loc.Span(props[len(props)-1].Value.Location)

	obj := value.Obj(props, loc, false)

	for _, key := range obj.DuplicateKeys() {
		p.sink.Warning(message.KindObjectDuplicateKey, key.Location, key.StringValue)
	}

	return obj
}

// parsePropertyValue consumes the ':' and value for a property whose key
// has already been parsed, returning the completed Property.
// childEnclosingCol is keyNode's own column, passed down so any plain
// container nested in the value terminates relative to THIS key.
func (p *Parser) parsePropertyValue(keyNode *value.Node, childEnclosingCol int) value.Property {
	if p.currentKind() == token.Colon {
		p.advance()
	} else {
		p.sink.Error(message.KindUnexpectedToken, p.currentLoc(), "expected ':'")
	}

	val := p.parseValue(childEnclosingCol)

	return value.Property{Key: keyNode, Value: val}
}

// parsePlainDashList builds a plain (undelimited) dash list. enclosingCol
// is the starting column of the property/item this list is the value of.
func (p *Parser) parsePlainDashList(enclosingCol int) *value.Node {
	startTok := p.current()
	startCol := startTok.Location.Start.Column

	var elems []*value.Node

	first := p.parseDashItem(startCol)
	elems = append(elems, first)

	for {
		p.skipSeparators()

		if p.currentKind() == token.EndDash {
			p.advance()

			break
		}

		if p.currentKind() != token.ListDash {
			break
		}

		candidateCol := p.currentLoc().Start.Column
		if enclosingCol != noColumnConstraint && candidateCol <= enclosingCol {
			break
		}

		elems = append(elems, p.parseDashItem(startCol))
	}

	loc := elems[0].Location
	loc = loc.Span(elems[len(elems)-1].Location)

	return value.Arr(elems, loc, false)
}

func (p *Parser) parseDashItem(_ int) *value.Node {
	dashCol := p.currentLoc().Start.Column
	p.advance() // consume LIST_DASH

	return p.parseValue(dashCol)
}

func (p *Parser) parseBracedObject() *value.Node {
	openTok := p.current()
	p.advance()

	var props []value.Property

	for p.currentKind() != token.CurlyBraceR && p.currentKind() != token.EOF {
		keyNode := p.parseStringNode()
		props = append(props, p.parsePropertyValue(keyNode, noColumnConstraint))
		p.skipSeparators()
	}

	endLoc := p.currentLoc()

	if p.currentKind() == token.CurlyBraceR {
		p.advance()
	} else {
		p.sink.Error(message.KindUnterminatedValue, endLoc)
	}

	loc := position.Location{Start: openTok.Location.Start, End: endLoc.End}

	obj := value.Obj(props, loc, true)
	for _, key := range obj.DuplicateKeys() {
		p.sink.Warning(message.KindObjectDuplicateKey, key.Location, key.StringValue)
	}

	return obj
}

func (p *Parser) parseBracedArray() *value.Node {
	openTok := p.current()
	p.advance()

	var elems []*value.Node

	for p.currentKind() != token.SquareBracketR && p.currentKind() != token.EOF {
		elems = append(elems, p.parseValue(noColumnConstraint))
		p.skipSeparators()
	}

	endLoc := p.currentLoc()

	if p.currentKind() == token.SquareBracketR {
		p.advance()
	} else {
		p.sink.Error(message.KindUnterminatedValue, endLoc)
	}

	return value.Arr(elems, position.Location{Start: openTok.Location.Start, End: endLoc.End}, true)
}

func (p *Parser) parseAngleArray() *value.Node {
	openTok := p.current()
	p.advance()

	var elems []*value.Node

	for p.currentKind() != token.AngleBracketR && p.currentKind() != token.EOF {
		if p.currentKind() == token.ListDash {
			p.advance()
		}

		elems = append(elems, p.parseValue(noColumnConstraint))
		p.skipSeparators()
	}

	endLoc := p.currentLoc()

	if p.currentKind() == token.AngleBracketR {
		p.advance()
	} else {
		p.sink.Error(message.KindUnterminatedValue, endLoc)
	}

	return value.Arr(elems, position.Location{Start: openTok.Location.Start, End: endLoc.End}, true)
}

// isKeyStart reports whether the current token could begin a property
// key (string forms only — numbers/booleans/null are never keys).
func (p *Parser) isKeyStart() bool {
	k := p.currentKind()

	return k == token.StringOpenQuote || k == token.UnquotedString
}

// skipSeparators absorbs any run of COMMA tokens: commas are optional and
// permitted anywhere between properties/elements (spec.md §4.2).
func (p *Parser) skipSeparators() {
	for p.currentKind() == token.Comma {
		p.advance()
	}
}

// resync implements the parser's failure-recovery rule: skip to the next
// plausible container-continuation token (spec.md §4.2).
func (p *Parser) resync() {
	for {
		k := p.currentKind()
		if k == token.EOF || k == token.CurlyBraceR || k == token.SquareBracketR ||
			k == token.AngleBracketR || k == token.Comma || k == token.ListDash {
			return
		}

		p.advance()
	}
}

// --- token-stream plumbing: skips trivia (whitespace/comments), which
// the parser never sees as structural but the formatter still needs from
// the raw token list (spec.md §4.1 "Trivia").

func (p *Parser) skipTrivia() {
	for p.pos < len(p.tokens) && p.tokens[p.pos].IsTrivia() {
		p.pos++
	}
}

func (p *Parser) current() token.Token {
	p.skipTrivia()

	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}

	return p.tokens[p.pos]
}

func (p *Parser) currentKind() token.Kind {
	return p.current().Kind
}

func (p *Parser) currentLoc() position.Location {
	return p.current().Location
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *Parser) atEOF() bool {
	return p.currentKind() == token.EOF
}
