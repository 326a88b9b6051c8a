// Package fieldval provides the tagged value representation for extracted
// document fields.
//
// Extraction payloads and reviewer corrections are JSON-shaped: scalars,
// arrays, and nested objects, with null and missing keys both common. This
// package contains type definitions and the canonical normalization used for
// field comparison. All other internal packages import fieldval; fieldval
// imports nothing internal.
//
// Key design constraints:
//   - Value is sealed: only Null, String, Number, Bool, Array, Object
//   - Normalize is total and deterministic; it never fails
//   - Object key order is insignificant (keys sorted before serialization)
//   - Equality is string equality of normalized forms
package fieldval
