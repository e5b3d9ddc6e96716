package schema

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kson-lang/kson/value"
)

// idLookup is the flat URI → schema-node index built once per Validator
// (spec.md §4.5 SchemaIdLookup). Keeping it flat rather than storing
// resolved $ref pointers inline avoids building in-memory cycles for
// self-referential schemas.
type idLookup struct {
	rootURI string
	byURI   map[string]*value.Node
}

func buildIDLookup(root *value.Node) *idLookup {
	l := &idLookup{byURI: map[string]*value.Node{}}

	if root.Kind == value.KindObject {
		if idNode, ok := root.PropertyLookup["$id"]; ok && idNode.Kind == value.KindString {
			l.rootURI = idNode.StringValue
		}
	}

	l.byURI[l.rootURI] = root

	walkIDs(root, l.rootURI, l)

	if _, ok := l.byURI[draft07MetaSchemaURI]; !ok {
		l.byURI[draft07MetaSchemaURI] = draft07MetaSchema()
	}

	return l
}

func walkIDs(n *value.Node, base string, l *idLookup) {
	if n == nil {
		return
	}

	switch n.Kind {
	case value.KindObject:
		id := base

		if idNode, ok := n.PropertyLookup["$id"]; ok && idNode.Kind == value.KindString {
			id = resolveURI(base, idNode.StringValue)
			l.byURI[id] = n
		}

		for _, p := range n.Properties {
			walkIDs(p.Value, id, l)
		}
	case value.KindArray:
		for _, e := range n.Elements {
			walkIDs(e, base, l)
		}
	}
}

// resolveURI joins ref against base per RFC-3986 relative resolution,
// falling back to ref verbatim if either fails to parse (schema authors
// occasionally write non-URI identifiers as plain anchors).
func resolveURI(base, ref string) string {
	if ref == "" {
		return base
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return baseURL.ResolveReference(refURL).String()
}

// resolve implements SchemaIdLookup.resolveRef: a direct URI lookup,
// else JSON-Pointer navigation through the document registered at the
// ref's non-fragment URI, else failure. It returns the resolved node and
// the base URI that should apply to any $ref nested within it.
func (l *idLookup) resolve(ref, baseURI string) (*value.Node, string, bool) {
	full := resolveURI(baseURI, ref)

	if n, ok := l.byURI[full]; ok {
		return n, full, true
	}

	docURI, frag := full, ""
	if idx := strings.IndexByte(full, '#'); idx >= 0 {
		docURI, frag = full[:idx], full[idx+1:]
	}

	// frag == "" is RFC 6901's empty pointer (a bare "#" or a non-fragment
	// ref): navigatePointer treats it as "the whole document".
	doc, ok := l.byURI[docURI]
	if !ok {
		doc = l.byURI[l.rootURI]
	}

	if n, ok := navigatePointer(doc, frag); ok {
		return n, docURI, true
	}

	return nil, "", false
}

// navigatePointer walks an RFC 6901 JSON Pointer fragment (its leading
// '/' optional, the leading '#' already stripped) through root.
func navigatePointer(root *value.Node, pointer string) (*value.Node, bool) {
	decoded, err := url.PathUnescape(pointer)
	if err != nil {
		decoded = pointer
	}

	decoded = strings.TrimPrefix(decoded, "/")
	if decoded == "" {
		return root, true
	}

	cur := root

	for _, raw := range strings.Split(decoded, "/") {
		tok := strings.ReplaceAll(raw, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")

		switch cur.Kind {
		case value.KindObject:
			next, ok := cur.PropertyLookup[tok]
			if !ok {
				return nil, false
			}

			cur = next
		case value.KindArray:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(cur.Elements) {
				return nil, false
			}

			cur = cur.Elements[idx]
		default:
			return nil, false
		}
	}

	return cur, true
}
