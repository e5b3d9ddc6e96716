package schema

import (
	"sync"

	"github.com/kson-lang/kson/parser"
	"github.com/kson-lang/kson/value"
)

// draft07MetaSchemaURI is the well-known identifier under which the
// Draft-07 meta-schema is pre-registered (spec.md §4.5).
const draft07MetaSchemaURI = "http://json-schema.org/draft-07/schema"

// draft07MetaSchemaText is an abridged Draft-07 meta-schema: it lists the
// Draft-07 keywords with simplified sub-schemas and has no `definitions`
// block. It is valid as both JSON and KSON since KSON is a JSON superset.
const draft07MetaSchemaText = `{
  "$id": "http://json-schema.org/draft-07/schema",
  "$schema": "http://json-schema.org/draft-07/schema",
  "title": "Core schema meta-schema",
  "type": ["object", "boolean"],
  "properties": {
    "$id": {"type": "string"},
    "$schema": {"type": "string"},
    "$ref": {"type": "string"},
    "title": {"type": "string"},
    "description": {"type": "string"},
    "default": true,
    "readOnly": {"type": "boolean", "default": false},
    "writeOnly": {"type": "boolean", "default": false},
    "examples": {"type": "array"},
    "multipleOf": {"type": "number", "exclusiveMinimum": 0},
    "maximum": {"type": "number"},
    "exclusiveMaximum": {"type": "number"},
    "minimum": {"type": "number"},
    "exclusiveMinimum": {"type": "number"},
    "maxLength": {"type": "integer", "minimum": 0},
    "minLength": {"type": "integer", "minimum": 0},
    "pattern": {"type": "string"},
    "additionalItems": {"$ref": "#"},
    "items": {"$ref": "#"},
    "maxItems": {"type": "integer", "minimum": 0},
    "minItems": {"type": "integer", "minimum": 0},
    "uniqueItems": {"type": "boolean", "default": false},
    "contains": {"$ref": "#"},
    "maxProperties": {"type": "integer", "minimum": 0},
    "minProperties": {"type": "integer", "minimum": 0},
    "required": {"type": "array", "items": {"type": "string"}},
    "additionalProperties": {"$ref": "#"},
    "definitions": {"type": "object"},
    "properties": {"type": "object"},
    "patternProperties": {"type": "object"},
    "dependencies": {"type": "object"},
    "propertyNames": {"$ref": "#"},
    "const": true,
    "enum": {"type": "array", "minItems": 1},
    "type": {"type": ["string", "array"]},
    "format": {"type": "string"},
    "contentMediaType": {"type": "string"},
    "contentEncoding": {"type": "string"},
    "if": {"$ref": "#"},
    "then": {"$ref": "#"},
    "else": {"$ref": "#"},
    "allOf": {"type": "array", "minItems": 1, "items": {"$ref": "#"}},
    "anyOf": {"type": "array", "minItems": 1, "items": {"$ref": "#"}},
    "oneOf": {"type": "array", "minItems": 1, "items": {"$ref": "#"}},
    "not": {"$ref": "#"}
  },
  "default": true
}
`

var draft07Once = sync.OnceValue(func() *value.Node {
	res := parser.Parse(draft07MetaSchemaText)

	return res.Value
})

// draft07MetaSchema returns the process-wide lazily-parsed Draft-07
// meta-schema value (spec.md §5, §9).
func draft07MetaSchema() *value.Node {
	return draft07Once()
}
