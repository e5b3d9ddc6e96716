package lexer

import (
	"strconv"
	"strings"
)

// numberResult is what NumberParser produces for one scanned number
// lexeme. Exactly one of IsInteger's branches is meaningful: when
// IsInteger is true, IntValue/Normalized describe an Integer node;
// otherwise DecValue/Normalized describe a Decimal node.
type numberResult struct {
	IsInteger  bool
	IntValue   int64
	DecValue   float64
	Normalized string
	Err        *numberError
}

// numberError names one of the specific number-lexing failure kinds from
// spec.md §4.1/§7. The lexer still emits a NUMBER token on error — lexer
// errors never abort lexing.
type numberError struct {
	kind string // message.Kind string value
}

const (
	errDanglingExpIndicator = "DANGLING_EXP_INDICATOR"
	errIllegalMinusSign     = "ILLEGAL_MINUS_SIGN"
	errInvalidDigits        = "INVALID_DIGITS"
	errDanglingDecimal      = "DANGLING_DECIMAL"
	errIntegerOverflow      = "INTEGER_OVERFLOW"
)

// NumberResult is the exported classification of a scanned number lexeme,
// used by the parser to build Integer/Decimal value-tree nodes without
// re-implementing the grammar.
type NumberResult struct {
	IsInteger  bool
	IntValue   int64
	DecValue   float64
	Normalized string
	// ErrKind is the message.Kind string value of the specific lexing
	// error, or "" if the lexeme was well-formed.
	ErrKind string
}

// ParseNumber classifies and normalizes a number lexeme (as produced by
// the lexer's NUMBER token), per spec.md §4.1.
func ParseNumber(lexeme string) NumberResult {
	r := parseNumber(lexeme)

	out := NumberResult{
		IsInteger:  r.IsInteger,
		IntValue:   r.IntValue,
		DecValue:   r.DecValue,
		Normalized: r.Normalized,
	}

	if r.Err != nil {
		out.ErrKind = r.Err.kind
	}

	return out
}

// parseNumber classifies and normalizes a number lexeme already scanned by
// the lexer (scanNumberLexeme below decides where the lexeme ends).
//
// Normalization: leading zeros are stripped from the integer digits (but
// "-0" is preserved verbatim); decimal mantissa/exponent are kept as
// written in source, per spec.md §4.1.
func parseNumber(lexeme string) numberResult {
	neg := false

	rest := lexeme
	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}

	if rest == "" {
		return numberResult{Err: &numberError{errIllegalMinusSign}}
	}

	intPart, fracPart, expPart, rem := splitNumberParts(rest)
	if rem != "" {
		return numberResult{Err: &numberError{errInvalidDigits}}
	}

	if intPart == "" || !allDigits(intPart) {
		return numberResult{Err: &numberError{errInvalidDigits}}
	}

	if fracPart == "dangling" {
		return numberResult{Err: &numberError{errDanglingDecimal}}
	}

	if expPart == "dangling" {
		return numberResult{Err: &numberError{errDanglingExpIndicator}}
	}

	isInteger := fracPart == "" && expPart == ""

	if isInteger {
		normalized := stripLeadingZeros(intPart)

		sign := ""
		if neg {
			sign = "-"
		}

		normalizedSigned := sign + normalized
		if neg && normalized == "0" {
			normalizedSigned = "-0"
		}

		v, err := strconv.ParseInt(normalizedSigned, 10, 64)
		if err != nil {
			return numberResult{Err: &numberError{errIntegerOverflow}, Normalized: normalizedSigned}
		}

		return numberResult{IsInteger: true, IntValue: v, Normalized: normalizedSigned}
	}

	// Decimal: mantissa/exponent kept verbatim, only the sign is
	// normalized onto the front.
	normalized := lexeme

	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return numberResult{Err: &numberError{errInvalidDigits}, Normalized: normalized}
	}

	return numberResult{IsInteger: false, DecValue: f, Normalized: normalized}
}

// splitNumberParts splits rest (the lexeme with any leading '-' removed)
// into its integer digit run, a fractional marker, an exponent marker,
// and any unconsumed remainder (non-empty only on malformed trailing
// garbage).
//
// fracPart is "" (absent), "dangling" (a '.' with no following digit), or
// the literal ".digits" text consumed. expPart follows the same scheme
// for "e"/"E"[+-]?digits.
func splitNumberParts(rest string) (intPart, fracPart, expPart, remainder string) {
	i := 0
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		i++
	}

	intPart = rest[:i]

	if i < len(rest) && rest[i] == '.' {
		j := i + 1
		k := j

		for k < len(rest) && rest[k] >= '0' && rest[k] <= '9' {
			k++
		}

		if k == j {
			fracPart = "dangling"
		} else {
			fracPart = rest[i:k]
		}

		i = k
	}

	if i < len(rest) && (rest[i] == 'e' || rest[i] == 'E') {
		j := i + 1
		if j < len(rest) && (rest[j] == '+' || rest[j] == '-') {
			j++
		}

		k := j

		for k < len(rest) && rest[k] >= '0' && rest[k] <= '9' {
			k++
		}

		if k == j {
			expPart = "dangling"
		} else {
			expPart = rest[i:k]
		}

		i = k
	}

	remainder = rest[i:]

	return intPart, fracPart, expPart, remainder
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func stripLeadingZeros(digits string) string {
	i := 0
	for i < len(digits)-1 && digits[i] == '0' {
		i++
	}

	return digits[i:]
}

// isNumberStart reports whether r can begin a number lexeme.
func isNumberStart(r rune) bool {
	return r == '-' || (r >= '0' && r <= '9')
}

// scanNumberLexeme greedily consumes the maximal run of characters that
// could plausibly belong to a number starting at s[0], returning the
// consumed byte length. It tolerates a single dangling '.' or exponent so
// the caller can still classify the specific error.
func scanNumberLexeme(s string) int {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}

	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}

		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		// Consume through j even when no digits followed (k == j): the
		// dangling exponent indicator is still part of the lexeme so
		// splitNumberParts can report errDanglingExpIndicator.
		i = k
	}

	return i
}
