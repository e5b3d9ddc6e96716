// Package kson is the top-level library surface for working with KSON
// documents: parsing, formatting, transcoding to JSON/YAML, and schema
// validation (spec.md §6). Every entry point here is a thin wrapper over
// the lower packages — parser, indent, format, schema — except for the
// JSON printer behind ToJSON and the native-value conversion behind
// ToYAML, which live in this package.
package kson

import (
	"github.com/goccy/go-yaml"

	"github.com/kson-lang/kson/format"
	"github.com/kson-lang/kson/indent"
	"github.com/kson-lang/kson/message"
	"github.com/kson-lang/kson/parser"
	"github.com/kson-lang/kson/schema"
	"github.com/kson-lang/kson/token"
	"github.com/kson-lang/kson/value"
)

// ParseResult is the result of [Parse]: the value tree (nil only if the
// document held no parseable value at all), the full token stream
// (including trivia, for tools like the formatter), and any lexer/parser
// diagnostics.
type ParseResult struct {
	Value    *value.Node
	Tokens   []token.Token
	Messages []message.Message
}

// Parse lexes and parses text, recovering from errors rather than
// aborting (spec.md §7 propagation policy).
func Parse(text string) ParseResult {
	res := parser.Parse(text)

	return ParseResult{Value: res.Value, Tokens: res.Tokens, Messages: res.Sink.Messages()}
}

// AnalyzeResult is the result of [Analyze]: a superset of [ParseResult]
// whose Errors additionally include indent-validator and duplicate-key
// diagnostics, for editor tooling that wants every signal at once.
type AnalyzeResult struct {
	Value  *value.Node
	Tokens []token.Token
	Errors []message.Message
}

// Analyze runs Parse and additionally runs the indent validator over the
// resulting value tree, merging its diagnostics in. Duplicate-key
// messages are already part of the parser's own sink, so they appear in
// Errors without further work here.
func Analyze(text string) AnalyzeResult {
	res := parser.Parse(text)
	sink := res.Sink

	if res.Value != nil {
		indent.Validate(res.Value, sink)
	}

	return AnalyzeResult{Value: res.Value, Tokens: res.Tokens, Errors: sink.Messages()}
}

// Format re-renders text in the requested style, per spec.md §4.4.
func Format(text string, opts format.Options) (string, []message.Message) {
	res := parser.Parse(text)
	if res.Value == nil {
		return "", res.Sink.Messages()
	}

	return format.Format(res.Value, res.Tokens, opts), res.Sink.Messages()
}

// ToJSON transcodes text to JSON: strings prefer double quotes, numbers
// are emitted in normalized form, and embeds become JSON strings.
func ToJSON(text string) (string, []message.Message) {
	res := parser.Parse(text)
	if res.Value == nil {
		return "", res.Sink.Messages()
	}

	return toJSONValue(res.Value, 0), res.Sink.Messages()
}

// ToYAML transcodes text to YAML via goccy/go-yaml: embeds become block
// scalars and forward-slash escapes are stripped from emitted strings,
// since YAML has no need for KSON's escaping of `/` inside embeds.
func ToYAML(text string) (string, []message.Message) {
	res := parser.Parse(text)
	if res.Value == nil {
		return "", res.Sink.Messages()
	}

	native := toYAMLNative(res.Value)

	out, err := yaml.MarshalWithOptions(native, yaml.UseLiteralStyleIfMultiline(true))
	if err != nil {
		return "", append(res.Sink.Messages(), message.Message{
			Severity: message.Error,
			Kind:     message.KindUnexpectedToken,
			Location: res.Value.Location,
			Params:   []string{err.Error()},
		})
	}

	return string(out), res.Sink.Messages()
}

// ParseSchema parses text as a schema document, per spec.md §6. The
// returned *schema.Validator is nil when text held no parseable value.
func ParseSchema(text string) (*schema.Validator, []message.Message) {
	v, sink := schema.ParseSchema(text)

	return v, sink.Messages()
}

// toJSONValue renders n as JSON text. It duplicates rather than reuses
// format.Delimited, since JSON requires double-quoted keys/strings,
// comma separators, and no comment/embed syntax — distinct enough rules
// that sharing a printer would mean threading a JSON-only mode through
// every formatter branch.
func toJSONValue(n *value.Node, indentLevel int) string {
	switch n.Kind {
	case value.KindNull:
		return "null"
	case value.KindBoolean:
		if n.Boolean {
			return "true"
		}

		return "false"
	case value.KindInteger:
		return n.IntegerText
	case value.KindDecimal:
		return n.DecimalText
	case value.KindString:
		return jsonQuote(n.StringValue)
	case value.KindEmbed:
		return jsonQuote(n.EmbedContent)
	case value.KindArray:
		return jsonArray(n, indentLevel)
	case value.KindObject:
		return jsonObject(n, indentLevel)
	default:
		return "null"
	}
}

func jsonArray(n *value.Node, level int) string {
	if len(n.Elements) == 0 {
		return "[]"
	}

	pad := indentStr(level + 1)
	out := "[\n"

	for i, e := range n.Elements {
		out += pad + toJSONValue(e, level+1)
		if i < len(n.Elements)-1 {
			out += ","
		}

		out += "\n"
	}

	return out + indentStr(level) + "]"
}

func jsonObject(n *value.Node, level int) string {
	if len(n.Properties) == 0 {
		return "{}"
	}

	pad := indentStr(level + 1)
	out := "{\n"

	for i, p := range n.Properties {
		out += pad + jsonQuote(p.Key.StringValue) + ": " + toJSONValue(p.Value, level+1)
		if i < len(n.Properties)-1 {
			out += ","
		}

		out += "\n"
	}

	return out + indentStr(level) + "}"
}

func indentStr(level int) string {
	out := ""
	for range level {
		out += "  "
	}

	return out
}

func jsonQuote(s string) string {
	out := "\""

	for _, r := range s {
		switch r {
		case '"':
			out += "\\\""
		case '\\':
			out += "\\\\"
		case '\n':
			out += "\\n"
		case '\t':
			out += "\\t"
		case '\r':
			out += "\\r"
		default:
			out += string(r)
		}
	}

	return out + "\""
}

// toYAMLNative converts a value.Node tree into the plain Go values
// goccy/go-yaml marshals natively, stripping forward-slash escapes from
// strings/embeds (YAML has no such escape convention).
func toYAMLNative(n *value.Node) any {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case value.KindNull:
		return nil
	case value.KindBoolean:
		return n.Boolean
	case value.KindInteger:
		return n.Integer
	case value.KindDecimal:
		return n.Decimal
	case value.KindString:
		return stripForwardSlashEscapes(n.StringValue)
	case value.KindEmbed:
		return stripForwardSlashEscapes(n.EmbedContent)
	case value.KindArray:
		out := make([]any, len(n.Elements))
		for i, e := range n.Elements {
			out[i] = toYAMLNative(e)
		}

		return out
	case value.KindObject:
		out := make(map[string]any, len(n.Properties))
		for _, p := range n.Properties {
			out[p.Key.StringValue] = toYAMLNative(p.Value)
		}

		return out
	default:
		return nil
	}
}

func stripForwardSlashEscapes(s string) string {
	out := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == '/' {
			out = append(out, '/')
			i++

			continue
		}

		out = append(out, s[i])
	}

	return string(out)
}
