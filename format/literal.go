package format

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/kson-lang/kson/value"
)

var reservedWords = map[string]bool{
	"true": true, "false": true, "null": true,
	"yes": true, "no": true, "y": true, "n": true,
}

// isSimpleString reports whether s can be written as an UNQUOTED_STRING:
// only letters, digits and underscores, not digit-initial, and not a
// reserved case-insensitive literal (spec.md §4.4). Digit-initial strings
// are always excluded, which incidentally settles the leading-zero
// round-trip question ("025" is never emitted unquoted).
func isSimpleString(s string) bool {
	if s == "" {
		return false
	}

	if reservedWords[strings.ToLower(s)] {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_':
		case unicode.IsLetter(r):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}

// quoteString renders s per spec.md §4.4: unquoted when simple,
// otherwise single-quoted unless it contains a literal `'`, in which case
// double-quoted with escaping.
func quoteString(s string) string {
	if isSimpleString(s) {
		return s
	}

	if !strings.Contains(s, "'") {
		return "'" + escapeQuoted(s, '\'') + "'"
	}

	return "\"" + escapeQuoted(s, '"') + "\""
}

func escapeQuoted(s string, quote rune) string {
	var sb strings.Builder

	for _, r := range s {
		switch r {
		case quote:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// literal renders any non-container, non-embed node to its textual form.
func literal(n *value.Node) string {
	switch n.Kind {
	case value.KindNull:
		return "null"
	case value.KindBoolean:
		if n.Boolean {
			return "true"
		}

		return "false"
	case value.KindInteger:
		if n.IntegerText != "" {
			return n.IntegerText
		}

		return strconv.FormatInt(n.Integer, 10)
	case value.KindDecimal:
		if n.DecimalText != "" {
			return n.DecimalText
		}

		return strconv.FormatFloat(n.Decimal, 'g', -1, 64)
	case value.KindString:
		return quoteString(n.StringValue)
	default:
		return ""
	}
}

// writeEmbed renders an embed block, normalizing the delimiter to '%' and
// re-applying indent at level. Content lines and the closing delimiter
// share the level+1 indent, so the lexer's minimum-indent stripping
// removes exactly that indent again. Every '%', backslash-run, '%'
// sequence in the decoded content gets one extra backslash, the minimal
// escaping that round-trips under the lexer's unescaping rule
// (spec.md §4.1).
func writeEmbed(sb *strings.Builder, n *value.Node, ind Indent, level int) {
	sb.WriteString("%")
	sb.WriteString(n.EmbedTag)

	if n.EmbedMetadata != "" {
		sb.WriteString(":")
		sb.WriteString(n.EmbedMetadata)
	}

	sb.WriteString("\n")

	prefix := ind.at(level + 1)

	lines := strings.Split(n.EmbedContent, "\n")
	last := len(lines) - 1

	for _, line := range lines[:last] {
		if line != "" {
			sb.WriteString(prefix)
			sb.WriteString(reescapeEmbedLine(line))
		}

		sb.WriteString("\n")
	}

	// The content's last line (empty when the content ends in a newline)
	// shares its line with the closing delimiter.
	sb.WriteString(prefix)
	sb.WriteString(reescapeEmbedLine(lines[last]))
	sb.WriteString("%%")
}

func reescapeEmbedLine(line string) string {
	var sb strings.Builder

	i := 0
	for i < len(line) {
		sb.WriteByte(line[i])

		if line[i] != '%' {
			i++

			continue
		}

		j := i + 1
		for j < len(line) && line[j] == '\\' {
			j++
		}

		if j < len(line) && line[j] == '%' {
			// The lexer decodes '%' + N+1 backslashes + '%' to '%' + N
			// backslashes + '%', so add one backslash to the pair.
			sb.WriteByte('\\')
			sb.WriteString(line[i+1 : j+1])
			i = j + 1

			continue
		}

		i++
	}

	return sb.String()
}
