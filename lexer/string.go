package lexer

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/token"
)

// lexString consumes a quoted string starting at the opening quote
// character (l.peek() must be '"' or '\''), emitting one
// STRING_OPEN_QUOTE token, a run of STRING_CONTENT / STRING_ESCAPE /
// STRING_UNICODE_ESCAPE / STRING_ILLEGAL_CONTROL_CHARACTER tokens, and
// (if terminated) a STRING_CLOSE_QUOTE token. Raw unescaped whitespace,
// including newlines and tabs, is legal string content per spec.md §4.1.
//
// The decoded value is stashed on the STRING_OPEN_QUOTE token's Value
// field rather than threaded through a return value, so that the token
// stream alone (plus the original source, for the raw literal span) is
// enough for the parser to build a value.String node — individual
// STRING_CONTENT/STRING_ESCAPE tokens stay granular for editor tooling.
func (l *Lexer) lexString() {
	quote := l.peek()

	openStart := l.pos()
	l.advance()
	l.emit(token.StringOpenQuote, openStart, string(quote))
	openIdx := len(l.tokens) - 1

	var decodedBuilder strings.Builder

	terminated := false

	for {
		r, ok := l.peekOK()
		if !ok {
			break
		}

		if r == quote {
			closeStart := l.pos()
			l.advance()
			l.emit(token.StringCloseQuote, closeStart, string(quote))
			terminated = true

			break
		}

		if r == '\\' {
			start := l.pos()
			l.advance()

			next, nok := l.peekOK()
			if !nok {
				break
			}

			if next == 'u' {
				l.advance()

				hex := l.takeN(4)

				if len(hex) == 4 {
					if cp, err := strconv.ParseUint(hex, 16, 32); err == nil {
						decodedBuilder.WriteRune(rune(cp))
					}
				}

				l.emit(token.StringUnicodeEscape, start, "\\u"+hex)

				continue
			}

			decodedCh, okEsc := decodeEscape(next)
			l.advance()

			if okEsc {
				decodedBuilder.WriteRune(decodedCh)
				l.emit(token.StringEscape, start, "\\"+string(next))
			} else {
				// Invalid escape: tokenized as STRING_ILLEGAL_CONTROL_CHARACTER
				// but lexing continues (spec.md §4.1).
				l.emit(token.StringIllegalControlCharacter, start, "\\"+string(next))
			}

			continue
		}

		start := l.pos()
		l.advance()
		decodedBuilder.WriteRune(r)
		l.emit(token.StringContent, start, string(r))
	}

	if !terminated {
		l.sink.Error(message.KindStringNoClose, l.locFrom(openStart))
	}

	l.tokens[openIdx].Value = decodedBuilder.String()
}

// decodeEscape maps a single escape character (the byte following '\')
// to its decoded rune, per the fixed set in spec.md §4.1.
func decodeEscape(r rune) (rune, bool) {
	switch r {
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '\\':
		return '\\', true
	case '/':
		return '/', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}

	return 0, false
}

// isSimpleStringStart reports whether r can start an UNQUOTED_STRING.
func isSimpleStringStart(r rune) bool {
	return isLetterOrUnderscore(r)
}

func isLetterOrUnderscore(r rune) bool {
	return r == '_' || isUnicodeLetter(r)
}

func isUnicodeLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r > 127 && unicode.IsLetter(r))
}
