// Package value implements the KSON concrete value tree: the immutable
// output of the parser, consumed by the indent validator, formatter, and
// schema validator.
package value

import "github.com/kson-lang/kson/position"

// Kind tags which variant a Node holds.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindDecimal
	KindString
	KindArray
	KindObject
	KindEmbed
)

// QuoteStyle records how a String node was written, needed by the
// formatter to decide whether re-emission can drop quoting.
type QuoteStyle int

const (
	// Unquoted means the string was a bare UNQUOTED_STRING token.
	Unquoted QuoteStyle = iota
	SingleQuoted
	DoubleQuoted
)

// Property is a single `key: value` pair inside an Object, in source
// order. Key is itself a String node so it carries its own Location and
// quoting.
type Property struct {
	Key   *Node
	Value *Node
}

// Node is a single value-tree node. Every node carries a Location; only
// the fields relevant to Kind are populated (others are zero).
//
// Node is immutable once built by the parser: all fields are set once at
// construction and never mutated afterwards. Tree traversal for
// highlighting/navigation uses JSON Pointer path tokens (see
// schema.ResolveDocumentPath),
// never back-pointers, so nodes can be freely shared and never need to
// know their parent.
type Node struct {
	Kind     Kind
	Location position.Location

	Boolean bool

	// Integer holds the parsed magnitude; IntegerText holds the
	// normalized_string form (leading zeros stripped, "-0" preserved).
	Integer     int64
	IntegerText string

	// Decimal holds the parsed magnitude; DecimalText holds the mantissa
	// and exponent kept verbatim from source.
	Decimal     float64
	DecimalText string

	// String fields.
	StringValue string // decoded value
	RawLiteral  string // raw source literal, quotes included for quoted forms
	QuoteStyle  QuoteStyle

	// Array fields.
	Elements []*Node

	// Object fields: Properties preserves source order (including
	// duplicates); PropertyLookup resolves a decoded key to its first
	// occurrence only, per the OBJECT_DUPLICATE_KEY rule.
	Properties     []Property
	PropertyLookup map[string]*Node

	// Delimited is true for Object/Array nodes written with explicit
	// `{}`/`[]`/`<>` delimiters, as opposed to plain (undelimited) KSON
	// containers. The indent validator only checks alignment within
	// plain containers — an opening delimiter resets the alignment
	// frame (spec.md §4.3).
	Delimited bool

	// Embed fields.
	EmbedTag        string
	EmbedMetadata   string
	EmbedContent    string
	EmbedDelimiter  byte // '%' or '$'
}

// Null creates a Null node at loc.
func Null(loc position.Location) *Node {
	return &Node{Kind: KindNull, Location: loc}
}

// Bool creates a Boolean node at loc.
func Bool(b bool, loc position.Location) *Node {
	return &Node{Kind: KindBoolean, Boolean: b, Location: loc}
}

// Int creates an Integer node at loc.
func Int(i int64, normalized string, loc position.Location) *Node {
	return &Node{Kind: KindInteger, Integer: i, IntegerText: normalized, Location: loc}
}

// Dec creates a Decimal node at loc.
func Dec(f float64, normalized string, loc position.Location) *Node {
	return &Node{Kind: KindDecimal, Decimal: f, DecimalText: normalized, Location: loc}
}

// Str creates a String node at loc.
func Str(decoded, raw string, qs QuoteStyle, loc position.Location) *Node {
	return &Node{Kind: KindString, StringValue: decoded, RawLiteral: raw, QuoteStyle: qs, Location: loc}
}

// Arr creates an Array node from elements, at loc. delimited marks
// whether the array was written with explicit `[]`/`<>` delimiters.
func Arr(elements []*Node, loc position.Location, delimited bool) *Node {
	return &Node{Kind: KindArray, Elements: elements, Location: loc, Delimited: delimited}
}

// Obj creates an Object node from properties, at loc. PropertyLookup is
// derived here: first occurrence of each decoded key wins. delimited
// marks whether the object was written with explicit `{}` delimiters.
func Obj(properties []Property, loc position.Location, delimited bool) *Node {
	lookup := make(map[string]*Node, len(properties))

	for _, p := range properties {
		if _, exists := lookup[p.Key.StringValue]; !exists {
			lookup[p.Key.StringValue] = p.Value
		}
	}

	return &Node{Kind: KindObject, Properties: properties, PropertyLookup: lookup, Location: loc, Delimited: delimited}
}

// Embed creates an Embed node at loc.
func Embed(tag, metadata, content string, delim byte, loc position.Location) *Node {
	return &Node{
		Kind:           KindEmbed,
		EmbedTag:       tag,
		EmbedMetadata:  metadata,
		EmbedContent:   content,
		EmbedDelimiter: delim,
		Location:       loc,
	}
}

// DuplicateKeys returns, for each decoded key that appears more than once
// among o's properties, the key *Node* of its second occurrence — the
// location a OBJECT_DUPLICATE_KEY message must point at (spec.md §8
// scenario 6), not the enclosing object's span. Only the second
// occurrence is reported even if a key repeats three or more times.
func (n *Node) DuplicateKeys() []*Node {
	if n.Kind != KindObject {
		return nil
	}

	seen := make(map[string]int, len(n.Properties))

	var dups []*Node

	for _, p := range n.Properties {
		seen[p.Key.StringValue]++
		if seen[p.Key.StringValue] == 2 {
			dups = append(dups, p.Key)
		}
	}

	return dups
}
