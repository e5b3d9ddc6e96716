package lexer

import (
	"strings"

	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/token"
)

// EmbedLine records, for one line of a decoded embed block's content, the
// byte offset where that line started in the raw source and how many
// leading indent bytes were stripped — the "content transformer" from
// spec.md §4.1, used by editor services to map positions in the decoded
// content back to raw source positions.
type EmbedLine struct {
	RawLineStart   int
	StrippedIndent int
	EscapeOffsets  []int
}

// embedResult is everything lexEmbed extracts from one embed block.
type embedResult struct {
	Tag       string
	Metadata  string
	Content   string
	Delimiter byte
	LineMap   []EmbedLine
}

// lexEmbed consumes an embed block starting at the opening delimiter
// character (l.peek() must be '%' or '$'). See spec.md §4.1 for the full
// grammar: preamble, mandatory newline, escaped-close-delimiter content,
// and minimum-indent stripping.
func (l *Lexer) lexEmbed() embedResult {
	openChar := byte(l.peek())

	openStart := l.pos()
	l.advance()
	l.emit(token.EmbedOpenDelim, openStart, string(openChar))

	tag, metadata, badStart := l.lexEmbedPreamble()
	if badStart {
		l.sink.Error(message.KindEmbedBlockBadStart, l.locFrom(openStart))

		return embedResult{Tag: tag, Metadata: metadata, Delimiter: openChar}
	}

	contentStart := l.pos()

	closeDelimStart, closed := l.findEmbedClose(openChar)

	var rawContentEnd int
	if closed {
		rawContentEnd = closeDelimStart
	} else {
		rawContentEnd = l.bytePos
	}

	rawSlice := l.src[contentStart.ByteOffset:rawContentEnd]

	content, lineMap, danglingTick := decodeEmbedBody(rawSlice, contentStart.ByteOffset, openChar, closed)

	contentEndPos := l.posAt(rawContentEnd)
	l.emitSpan(token.EmbedContent, contentStart, contentEndPos, content)

	if closed {
		closeStartPos := l.posAt(closeDelimStart)
		l.emitSpan(token.EmbedCloseDelim, closeStartPos, l.pos(), string(openChar)+string(openChar))
	} else {
		l.sink.Error(message.KindEmbedBlockNoClose, l.locFrom(openStart))
	}

	if danglingTick {
		l.sink.Error(message.KindEmbedBlockDanglingTick, l.locFrom(openStart))
	}

	return embedResult{
		Tag:       tag,
		Metadata:  metadata,
		Content:   content,
		Delimiter: openChar,
		LineMap:   lineMap,
	}
}

// lexEmbedPreamble consumes "tag[:metadata]\n" after the opening
// delimiter, emitting EMBED_TAG / EMBED_METADATA / EMBED_PREAMBLE_NEWLINE
// tokens. badStart is true when EOF is reached before a newline — the
// newline is mandatory (spec.md §4.1).
func (l *Lexer) lexEmbedPreamble() (tag, metadata string, badStart bool) {
	start := l.pos()

	var sb strings.Builder

	for {
		r, ok := l.peekOK()
		if !ok {
			return "", "", true
		}

		if r == '\n' {
			break
		}

		sb.WriteRune(r)
		l.advance()
	}

	preamble := sb.String()

	nlStart := l.pos()
	l.advance() // consume the newline itself
	l.emit(token.EmbedPreambleNewline, nlStart, "\n")

	if preamble == "" {
		return "", "", false
	}

	idx := strings.IndexByte(preamble, ':')

	if idx >= 0 {
		tag = preamble[:idx]
		metadata = preamble[idx+1:]
	} else {
		tag = preamble
	}

	if tag != "" {
		l.emitSpan(token.EmbedTag, start, l.posAt(start.ByteOffset+len(tag)), tag)
	}

	if idx >= 0 {
		metaStart := l.posAt(start.ByteOffset + idx + 1)
		l.emitSpan(token.EmbedMetadata, metaStart, l.posAt(metaStart.ByteOffset+len(metadata)), metadata)
	}

	return tag, metadata, false
}

// findEmbedClose scans forward from the current lexer position looking
// for an unescaped close delimiter: two openChar bytes with zero
// backslashes between them. A run of N>=1 backslashes between the two
// delimiter characters escapes the pair (spec.md §4.1 escape rule) and
// is skipped over as ordinary content. Returns the byte offset where the
// (unescaped) close delimiter begins, and whether one was found before
// EOF.
func (l *Lexer) findEmbedClose(openChar byte) (int, bool) {
	for {
		r, ok := l.peekOK()
		if !ok {
			return 0, false
		}

		if byte(r) != openChar {
			l.advance()

			continue
		}

		candidateStart := l.bytePos

		l.advance()

		backslashes := 0
		for {
			nr, nok := l.peekOK()
			if nok && nr == '\\' {
				backslashes++
				l.advance()

				continue
			}

			break
		}

		nr, nok := l.peekOK()
		if nok && byte(nr) == openChar {
			l.advance()

			if backslashes == 0 {
				return candidateStart, true
			}
			// Escaped occurrence: continue scanning past it.
			continue
		}
		// Lone delimiter char (optionally followed by backslashes that
		// didn't lead to a second delimiter char): ordinary content,
		// already consumed up through any backslashes above.
		_ = candidateStart
	}
}

// decodeEmbedBody applies minimum-indent stripping (spec.md §4.1) and
// then escape decoding to the raw content slice (everything between the
// preamble newline and the close delimiter, exclusive). srcOffset is the
// byte offset of rawSlice[0] in the original source, used to populate
// EmbedLine.RawLineStart. closed reports whether rawSlice's last line is
// the closing delimiter's own indent (as opposed to an unterminated
// embed's trailing content) — the closing delimiter's indent is an
// authoring control for content indent and participates in the minimum
// even though it is whitespace-only (spec.md §4.1).
func decodeEmbedBody(rawSlice string, srcOffset int, openChar byte, closed bool) (string, []EmbedLine, bool) {
	lines := splitEmbedLines(rawSlice, srcOffset)

	prefix := commonIndentPrefix(lines, closed)

	var (
		sb          strings.Builder
		lineMap     []EmbedLine
		danglingTck bool
	)

	for i, ln := range lines {
		stripped := strings.TrimPrefix(ln.text, prefix)
		stripLen := len(ln.text) - len(stripped)

		decoded, escapeOffsets, dangling := unescapeCloseDelim(stripped, openChar)
		if dangling {
			danglingTck = true
		}

		sb.WriteString(decoded)
		if i < len(lines)-1 {
			sb.WriteByte('\n')
		}

		lineMap = append(lineMap, EmbedLine{
			RawLineStart:   ln.rawStart,
			StrippedIndent: stripLen,
			EscapeOffsets:  escapeOffsets,
		})
	}

	return sb.String(), lineMap, danglingTck
}

type embedRawLine struct {
	text     string
	rawStart int
}

func splitEmbedLines(s string, srcOffset int) []embedRawLine {
	var lines []embedRawLine

	start := 0

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, embedRawLine{text: s[start:i], rawStart: srcOffset + start})
			start = i + 1
		}
	}

	lines = append(lines, embedRawLine{text: s[start:], rawStart: srcOffset + start})

	return lines
}

// commonIndentPrefix computes the minimum indent over all non-empty
// lines plus the closing delimiter's own line (when closed is true, the
// last entry in lines is that closer's indent, whitespace-only though it
// is — spec.md §4.1 has it participate in the minimum same as any other
// line), falling back to "" (no stripping) if any qualifying line's
// leading whitespace doesn't start with the shortest one found — tabs
// and spaces are distinct characters for this comparison.
func commonIndentPrefix(lines []embedRawLine, closed bool) string {
	var prefix string

	have := false
	lastIdx := len(lines) - 1

	for i, ln := range lines {
		closerLine := closed && i == lastIdx
		if strings.TrimSpace(ln.text) == "" && !closerLine {
			continue
		}

		ws := leadingWhitespace(ln.text)
		if !have || len(ws) < len(prefix) {
			prefix = ws
			have = true
		}
	}

	if !have {
		return ""
	}

	for i, ln := range lines {
		closerLine := closed && i == lastIdx
		if strings.TrimSpace(ln.text) == "" && !closerLine {
			continue
		}

		if !strings.HasPrefix(leadingWhitespace(ln.text), prefix) {
			return ""
		}
	}

	return prefix
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}

	return s[:i]
}

// unescapeCloseDelim consumes one backslash from every backslash-run that
// sits between two openChar bytes within a single (already indent-
// stripped) line, per the escape rule in spec.md §4.1. danglingTick
// reports a trailing lone openChar+backslash-run at end of line with no
// matching second delimiter char, which callers surface as
// EMBED_BLOCK_DANGLING_TICK.
func unescapeCloseDelim(line string, openChar byte) (string, []int, bool) {
	var (
		sb      strings.Builder
		offsets []int
	)

	i := 0
	for i < len(line) {
		if line[i] != openChar {
			sb.WriteByte(line[i])
			i++

			continue
		}

		j := i + 1
		backslashes := 0

		for j < len(line) && line[j] == '\\' {
			backslashes++
			j++
		}

		if backslashes > 0 && j < len(line) && line[j] == openChar {
			offsets = append(offsets, sb.Len())
			sb.WriteByte(openChar)

			for k := 0; k < backslashes-1; k++ {
				sb.WriteByte('\\')
			}

			sb.WriteByte(openChar)
			i = j + 1

			continue
		}

		if backslashes > 0 && j >= len(line) {
			// Trailing backslash run right before end of line with no
			// second delimiter char to pair with.
			sb.WriteByte(openChar)

			for k := 0; k < backslashes; k++ {
				sb.WriteByte('\\')
			}

			return sb.String(), offsets, true
		}

		sb.WriteByte(openChar)
		i++
	}

	return sb.String(), offsets, false
}
