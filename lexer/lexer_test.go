package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kson-lang/kson/lexer"
	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/token"
)

func kindsOf(toks []token.Token) []token.Kind {
	kinds := make([]token.Kind, 0, len(toks))

	for _, tok := range toks {
		if tok.IsTrivia() {
			continue
		}

		kinds = append(kinds, tok.Kind)
	}

	return kinds
}

func TestTokenizePunctuation(t *testing.T) {
	t.Parallel()

	sink := message.NewSink()
	toks := lexer.Tokenize(`{}[]<>:,`, sink)

	assert.False(t, sink.HasErrors())
	assert.Equal(t, []token.Kind{
		token.CurlyBraceL, token.CurlyBraceR,
		token.SquareBracketL, token.SquareBracketR,
		token.AngleBracketL, token.AngleBracketR,
		token.Colon, token.Comma,
		token.EOF,
	}, kindsOf(toks))
}

func TestTokenizeKeywordsAndNumbers(t *testing.T) {
	t.Parallel()

	sink := message.NewSink()
	toks := lexer.Tokenize(`true false null 42 -3.5`, sink)

	require.False(t, sink.HasErrors())
	assert.Equal(t, []token.Kind{
		token.True, token.False, token.Null, token.Number, token.Number, token.EOF,
	}, kindsOf(toks))
}

func TestTokenizeUnquotedString(t *testing.T) {
	t.Parallel()

	sink := message.NewSink()
	toks := lexer.Tokenize(`hello_world`, sink)

	require.False(t, sink.HasErrors())
	require.Len(t, kindsOf(toks), 2)
	assert.Equal(t, token.UnquotedString, kindsOf(toks)[0])
}

func TestTokenizeQuotedStringWithEscape(t *testing.T) {
	t.Parallel()

	sink := message.NewSink()
	toks := lexer.Tokenize(`"a\nb"`, sink)

	require.False(t, sink.HasErrors())

	var sawEscape bool

	for _, tok := range toks {
		if tok.Kind == token.StringEscape {
			sawEscape = true
		}
	}

	assert.True(t, sawEscape, "expected a StringEscape token for \\n")
}

func TestTokenizeComment(t *testing.T) {
	t.Parallel()

	sink := message.NewSink()
	toks := lexer.Tokenize("1 # trailing note\n", sink)

	require.False(t, sink.HasErrors())

	var sawComment bool

	for _, tok := range toks {
		if tok.Kind == token.Comment {
			sawComment = true

			assert.Equal(t, "# trailing note", tok.Lexeme)
		}
	}

	assert.True(t, sawComment)
}

func TestTokenizeIllegalCharacterRecorded(t *testing.T) {
	t.Parallel()

	sink := message.NewSink()
	toks := lexer.Tokenize("1 ` 2", sink)

	assert.True(t, sink.HasErrors())

	var sawIllegal bool

	for _, tok := range toks {
		if tok.Kind == token.IllegalChar {
			sawIllegal = true
		}
	}

	assert.True(t, sawIllegal)
}

func TestTokenizeBlankSourceIsError(t *testing.T) {
	t.Parallel()

	sink := message.NewSink()
	toks := lexer.Tokenize("", sink)

	require.True(t, sink.HasErrors())
	assert.Equal(t, message.KindBlankSource, sink.Messages()[0].Kind)
	require.Len(t, toks, 1)
	assert.Equal(t, token.EOF, toks[0].Kind)
}

func TestTokenizeEndDashAndListDash(t *testing.T) {
	t.Parallel()

	sink := message.NewSink()
	toks := lexer.Tokenize("- 1\n=\n", sink)

	require.False(t, sink.HasErrors())

	kinds := kindsOf(toks)
	require.NotEmpty(t, kinds)
	assert.Equal(t, token.ListDash, kinds[0])
	assert.Contains(t, kinds, token.EndDash)
}
