// Package message implements the diagnostic model shared by every KSON
// pipeline stage. Diagnostics are values, never exceptions: each stage
// appends to a [Sink] and keeps going (see the propagation policy in
// SPEC_FULL.md §7).
package message

import (
	"fmt"

	"github.com/kson-lang/kson/position"
)

// Severity classifies a Message.
type Severity int

const (
	// Error indicates the document is invalid in some respect.
	Error Severity = iota
	// Warning indicates a non-fatal quality issue.
	Warning
)

// String renders a Severity for logging.
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	}

	return "unknown"
}

// Kind is a closed enumeration of diagnostic kinds. Human-readable text is
// rendered from a Kind plus its Params by [Render]; Kind itself never
// carries prose so callers can match on it reliably.
type Kind string

// Lexer kinds.
const (
	KindBlankSource                   Kind = "BLANK_SOURCE"
	KindIllegalChar                   Kind = "ILLEGAL_CHAR"
	KindStringNoClose                 Kind = "STRING_NO_CLOSE"
	KindStringIllegalControlChar      Kind = "STRING_ILLEGAL_CONTROL_CHARACTER"
	KindEmbedBlockBadStart            Kind = "EMBED_BLOCK_BAD_START"
	KindEmbedBlockNoClose             Kind = "EMBED_BLOCK_NO_CLOSE"
	KindEmbedBlockDanglingTick        Kind = "EMBED_BLOCK_DANGLING_TICK"
	KindDanglingExpIndicator          Kind = "DANGLING_EXP_INDICATOR"
	KindIllegalMinusSign              Kind = "ILLEGAL_MINUS_SIGN"
	KindInvalidDigits                 Kind = "INVALID_DIGITS"
	KindDanglingDecimal               Kind = "DANGLING_DECIMAL"
	KindIntegerOverflow               Kind = "INTEGER_OVERFLOW"
)

// Parser / value-tree kinds.
const (
	KindObjectDuplicateKey  Kind = "OBJECT_DUPLICATE_KEY"
	KindExtraContent        Kind = "EXTRA_CONTENT"
	KindUnexpectedToken     Kind = "UNEXPECTED_TOKEN"
	KindUnterminatedValue   Kind = "UNTERMINATED_VALUE"
	KindDepthExceeded       Kind = "DEPTH_EXCEEDED"
)

// Indent-validator kinds.
const (
	KindObjectPropertiesMisaligned  Kind = "OBJECT_PROPERTIES_MISALIGNED"
	KindDashListItemsMisaligned     Kind = "DASH_LIST_ITEMS_MISALIGNED"
	KindObjectPropertyNestingIssue  Kind = "OBJECT_PROPERTY_NESTING_ISSUE"
	KindDashListItemsNestingIssue   Kind = "DASH_LIST_ITEMS_NESTING_ISSUE"
)

// Schema-validator kinds.
const (
	KindSchemaTypeMismatch           Kind = "SCHEMA_TYPE_MISMATCH"
	KindSchemaEnumMismatch           Kind = "SCHEMA_ENUM_MISMATCH"
	KindSchemaConstMismatch          Kind = "SCHEMA_CONST_MISMATCH"
	KindSchemaMinimum                Kind = "SCHEMA_MINIMUM"
	KindSchemaMaximum                Kind = "SCHEMA_MAXIMUM"
	KindSchemaExclusiveMinimum       Kind = "SCHEMA_EXCLUSIVE_MINIMUM"
	KindSchemaExclusiveMaximum       Kind = "SCHEMA_EXCLUSIVE_MAXIMUM"
	KindSchemaMultipleOf             Kind = "SCHEMA_MULTIPLE_OF"
	KindSchemaMinLength              Kind = "SCHEMA_MIN_LENGTH"
	KindSchemaMaxLength              Kind = "SCHEMA_MAX_LENGTH"
	KindSchemaPattern                Kind = "SCHEMA_PATTERN"
	KindSchemaMinItems               Kind = "SCHEMA_MIN_ITEMS"
	KindSchemaMaxItems               Kind = "SCHEMA_MAX_ITEMS"
	KindSchemaUniqueItems            Kind = "SCHEMA_UNIQUE_ITEMS"
	KindSchemaAdditionalItems        Kind = "SCHEMA_ADDITIONAL_ITEMS"
	KindSchemaContains               Kind = "SCHEMA_CONTAINS"
	KindSchemaRequiredPropertyMissing Kind = "SCHEMA_REQUIRED_PROPERTY_MISSING"
	KindSchemaAdditionalProperties   Kind = "SCHEMA_ADDITIONAL_PROPERTIES"
	KindSchemaPropertyNames          Kind = "SCHEMA_PROPERTY_NAMES"
	KindSchemaMinProperties          Kind = "SCHEMA_MIN_PROPERTIES"
	KindSchemaMaxProperties          Kind = "SCHEMA_MAX_PROPERTIES"
	KindSchemaDependencies           Kind = "SCHEMA_DEPENDENCIES"
	KindSchemaAllOf                  Kind = "SCHEMA_ALL_OF"
	KindSchemaAnyOf                  Kind = "SCHEMA_ANY_OF"
	KindSchemaOneOfNoMatch           Kind = "SCHEMA_ONE_OF_NO_MATCH"
	KindSchemaOneOfMultipleMatches   Kind = "SCHEMA_ONE_OF_MULTIPLE_MATCHES"
	KindSchemaNot                    Kind = "SCHEMA_NOT"
	KindSchemaRefNotFound            Kind = "SCHEMA_REF_NOT_FOUND"
)

// Message is a single diagnostic. Params are positional substitution values
// rendered into human text by [Render]; they are never formatted eagerly so
// that callers can also match on (Kind, Params) programmatically.
type Message struct {
	Severity Severity
	Kind     Kind
	Location position.Location
	Params   []string
}

// Render produces human-readable text for a Message. This is the only place
// that turns a Kind into prose; Kind itself stays a plain enumeration value
// everywhere else in the codebase.
func Render(m Message) string {
	text, ok := templates[m.Kind]
	if !ok {
		return fmt.Sprintf("%s: %v", m.Kind, m.Params)
	}

	args := make([]any, len(m.Params))
	for i, p := range m.Params {
		args[i] = p
	}

	return fmt.Sprintf(text, args...)
}

var templates = map[Kind]string{
	KindBlankSource:                    "source is blank",
	KindIllegalChar:                    "illegal character %q",
	KindStringNoClose:                  "unterminated string literal",
	KindStringIllegalControlChar:       "illegal control character in string",
	KindEmbedBlockBadStart:             "embed block preamble must end with a newline",
	KindEmbedBlockNoClose:              "embed block has no closing delimiter",
	KindEmbedBlockDanglingTick:         "dangling escape at end of embed block",
	KindDanglingExpIndicator:           "dangling exponent indicator",
	KindIllegalMinusSign:               "illegal minus sign",
	KindInvalidDigits:                  "invalid digits in number",
	KindDanglingDecimal:                "dangling decimal point",
	KindIntegerOverflow:                "integer literal %s overflows 64 bits",
	KindObjectDuplicateKey:             "duplicate key %q",
	KindExtraContent:                   "unexpected content after document value",
	KindUnexpectedToken:                "unexpected token %s",
	KindUnterminatedValue:              "unterminated value",
	KindDepthExceeded:                  "maximum nesting depth exceeded",
	KindObjectPropertiesMisaligned:     "object property is misaligned with its siblings",
	KindDashListItemsMisaligned:        "dash-list item is misaligned with its siblings",
	KindObjectPropertyNestingIssue:     "nested object is not indented past its parent key",
	KindDashListItemsNestingIssue:      "nested dash list is not indented past its parent",
	KindSchemaTypeMismatch:             "value does not match type %s",
	KindSchemaEnumMismatch:             "value is not one of the enumerated values",
	KindSchemaConstMismatch:            "value does not equal the required constant",
	KindSchemaMinimum:                  "value is less than minimum %s",
	KindSchemaMaximum:                  "value is greater than maximum %s",
	KindSchemaExclusiveMinimum:         "value is not greater than exclusive minimum %s",
	KindSchemaExclusiveMaximum:         "value is not less than exclusive maximum %s",
	KindSchemaMultipleOf:               "value is not a multiple of %s",
	KindSchemaMinLength:                "string is shorter than minLength %s",
	KindSchemaMaxLength:                "string is longer than maxLength %s",
	KindSchemaPattern:                  "string does not match pattern %s",
	KindSchemaMinItems:                 "array has fewer than minItems %s",
	KindSchemaMaxItems:                 "array has more than maxItems %s",
	KindSchemaUniqueItems:              "array items are not unique",
	KindSchemaAdditionalItems:          "array has additional items not permitted by the schema",
	KindSchemaContains:                 "array does not contain a matching item",
	KindSchemaRequiredPropertyMissing:  "missing required property %q",
	KindSchemaAdditionalProperties:     "additional property %q is not permitted",
	KindSchemaPropertyNames:            "property name %q does not match propertyNames schema",
	KindSchemaMinProperties:            "object has fewer than minProperties %s",
	KindSchemaMaxProperties:            "object has more than maxProperties %s",
	KindSchemaDependencies:             "property %q requires %q",
	KindSchemaAllOf:                    "value does not match all of the required schemas",
	KindSchemaAnyOf:                    "value does not match any of the allowed schemas",
	KindSchemaOneOfNoMatch:             "value does not match any of the exactly-one schemas",
	KindSchemaOneOfMultipleMatches:     "value matches more than one of the exactly-one schemas",
	KindSchemaNot:                      "value must not match the given schema",
	KindSchemaRefNotFound:              "could not resolve $ref %q",
}
