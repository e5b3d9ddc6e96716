// Package token defines the lexical token kinds produced by the KSON
// lexer and consumed by the parser, indent validator and formatter.
package token

import "github.com/kson-lang/kson/position"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota

	UnquotedString
	StringOpenQuote
	StringContent
	StringCloseQuote
	StringEscape
	StringUnicodeEscape
	StringIllegalControlCharacter

	Number
	True
	False
	Null

	Colon
	Comma
	Dot
	EndDash
	ListDash

	CurlyBraceL
	CurlyBraceR
	SquareBracketL
	SquareBracketR
	AngleBracketL
	AngleBracketR

	Comment

	EmbedOpenDelim
	EmbedTag
	EmbedMetadata
	EmbedPreambleNewline
	EmbedContent
	EmbedCloseDelim

	Whitespace
	IllegalChar
)

// String renders a Kind's name, primarily for diagnostics and tests.
func (k Kind) String() string {
	if name, ok := names[k]; ok {
		return name
	}

	return "UNKNOWN"
}

var names = map[Kind]string{
	EOF:                           "EOF",
	UnquotedString:                "UNQUOTED_STRING",
	StringOpenQuote:               "STRING_OPEN_QUOTE",
	StringContent:                 "STRING_CONTENT",
	StringCloseQuote:              "STRING_CLOSE_QUOTE",
	StringEscape:                  "STRING_ESCAPE",
	StringUnicodeEscape:           "STRING_UNICODE_ESCAPE",
	StringIllegalControlCharacter: "STRING_ILLEGAL_CONTROL_CHARACTER",
	Number:                        "NUMBER",
	True:                          "TRUE",
	False:                         "FALSE",
	Null:                          "NULL",
	Colon:                         "COLON",
	Comma:                         "COMMA",
	Dot:                           "DOT",
	EndDash:                       "END_DASH",
	ListDash:                      "LIST_DASH",
	CurlyBraceL:                   "CURLY_BRACE_L",
	CurlyBraceR:                   "CURLY_BRACE_R",
	SquareBracketL:                "SQUARE_BRACKET_L",
	SquareBracketR:                "SQUARE_BRACKET_R",
	AngleBracketL:                 "ANGLE_BRACKET_L",
	AngleBracketR:                 "ANGLE_BRACKET_R",
	Comment:                       "COMMENT",
	EmbedOpenDelim:                "EMBED_OPEN_DELIM",
	EmbedTag:                      "EMBED_TAG",
	EmbedMetadata:                 "EMBED_METADATA",
	EmbedPreambleNewline:          "EMBED_PREAMBLE_NEWLINE",
	EmbedContent:                  "EMBED_CONTENT",
	EmbedCloseDelim:               "EMBED_CLOSE_DELIM",
	Whitespace:                    "WHITESPACE",
	IllegalChar:                   "ILLEGAL_CHAR",
}

// Token is a single lexical unit: its Kind, the raw source text (Lexeme),
// an optional decoded Value (set only on STRING_OPEN_QUOTE, holding the
// whole string's unescaped contents; numbers are re-parsed from Lexeme
// via lexer/number.go), and its source Location.
type Token struct {
	Kind     Kind
	Lexeme   string
	Value    string
	Location position.Location
}

// IsTrivia reports whether the token is whitespace or a comment — tokens
// the parser skips but the formatter must still walk in lock-step to
// reattach comments.
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.Kind == Comment
}
