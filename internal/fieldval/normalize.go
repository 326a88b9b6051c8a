package fieldval

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NotInDocument is the distinguished final value a reviewer assigns to a
// field to mean "this field does not apply to this document". It is distinct
// from an empty or missing value: empty means nobody confirmed anything,
// the sentinel means a human confirmed absence.
const NotInDocument = String("__NOT_IN_DOCUMENT__")

// IsNotInDocument reports whether v is the reviewer's absence sentinel.
func IsNotInDocument(v Value) bool {
	s, ok := v.(String)
	return ok && s == NotInDocument
}

// Normalize canonicalizes a value of unknown shape into a stable string for
// equality comparison. Deterministic and total.
//
// Strings are NFC-normalized, trimmed, and internal whitespace runs are
// collapsed to a single space. Objects serialize with lexicographically
// sorted keys so {a:1,b:2} and {b:2,a:1} normalize identically. Array and
// object elements are normalized recursively, so a numeric 5 and the string
// "5" produce the same form at any depth.
func Normalize(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return ""
	case String:
		return collapseWhitespace(norm.NFC.String(string(val)))
	case Number:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(val))
	case Array:
		return normalizeArray(val)
	case Object:
		return normalizeObject(val)
	default:
		// Unreachable for sealed Value; kept so Normalize stays total.
		return ""
	}
}

// Equal reports whether two values agree under normalization. This is the
// sole equality the outcome classifier uses: key order, incidental
// whitespace, and numeric-vs-string representation are insignificant.
func Equal(a, b Value) bool {
	return Normalize(a) == Normalize(b)
}

// IsEmpty reports whether a value carries no extracted content: a nil or
// null value, a whitespace-only string, or a zero-length array or object.
// Shared by the classifier and the evaluator's skip rule.
func IsEmpty(v Value) bool {
	switch val := v.(type) {
	case nil, Null:
		return true
	case String:
		return strings.TrimSpace(string(val)) == ""
	case Array:
		return len(val) == 0
	case Object:
		return len(val) == 0
	default:
		return false
	}
}

// collapseWhitespace trims s and collapses internal whitespace runs to a
// single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeArray serializes the array as a JSON array of the recursively
// normalized element strings.
func normalizeArray(arr Array) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			b.WriteByte(',')
		}
		writeQuoted(&b, Normalize(elem))
	}
	b.WriteByte(']')
	return b.String()
}

// normalizeObject serializes the object with lexicographically sorted keys
// and recursively normalized value strings.
func normalizeObject(obj Object) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range obj.SortedKeys() {
		if i > 0 {
			b.WriteByte(',')
		}
		writeQuoted(&b, k)
		b.WriteByte(':')
		writeQuoted(&b, Normalize(obj[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// writeQuoted appends s as a JSON string literal. Normalized strings have no
// control characters left after whitespace collapsing, so only quote and
// backslash need escaping; object keys may still carry control characters
// and get the full \u escape.
func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r < 0x20:
			const hex = "0123456789abcdef"
			b.WriteString(`\u00`)
			b.WriteByte(hex[byte(r)>>4])
			b.WriteByte(hex[byte(r)&0xf])
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
