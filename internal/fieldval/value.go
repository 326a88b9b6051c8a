package fieldval

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Value is a sealed interface representing the JSON-shaped values carried by
// extraction payloads and reviewer corrections.
// Only Null, String, Number, Bool, Array, and Object implement it.
type Value interface {
	fieldValue() // Sealed - only these types implement it
}

// Null represents a JSON null value.
// Using an explicit type keeps every stored value a non-nil Value; a nil
// Value is reserved for "key absent from the field map".
type Null struct{}

func (Null) fieldValue() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// String represents a string value.
type String string

func (String) fieldValue() {}

// Number represents a numeric value. Always float64: extraction payloads are
// arbitrary JSON and may carry fractional amounts, confidence ranges, etc.
type Number float64

func (Number) fieldValue() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) fieldValue() {}

// Array represents an array of Value elements.
type Array []Value

func (Array) fieldValue() {}

// Object represents a map of string keys to Value elements.
// Use SortedKeys() for deterministic iteration.
type Object map[string]Value

func (Object) fieldValue() {}

// SortedKeys returns the object's keys in lexicographic order.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromJSON decodes a JSON value into a Value.
// Every well-formed JSON document maps onto exactly one variant.
func FromJSON(data []byte) (Value, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}
	return decodeValue(json.RawMessage(data))
}

// decodeValue dispatches on the first byte of a raw JSON token.
func decodeValue(data json.RawMessage) (Value, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return String(s), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return Bool(b), nil

	case 'n':
		return Null{}, nil

	case '[':
		var arr Array
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, err
		}
		return arr, nil

	case '{':
		var obj Object
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		return obj, nil

	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, err
		}
		return Number(f), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler for Object.
func (obj *Object) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*obj = make(Object, len(raw))
	for k, v := range raw {
		val, err := decodeValue(v)
		if err != nil {
			return fmt.Errorf("object key %q: %w", k, err)
		}
		(*obj)[k] = val
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Array.
func (arr *Array) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*arr = make(Array, len(raw))
	for i, v := range raw {
		val, err := decodeValue(v)
		if err != nil {
			return fmt.Errorf("array index %d: %w", i, err)
		}
		(*arr)[i] = val
	}
	return nil
}

// Marshal serializes a Value to JSON bytes.
// Uses type-switch dispatch so a nil Value serializes as null.
func Marshal(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil, Null:
		return []byte("null"), nil
	case String:
		return json.Marshal(string(val))
	case Number:
		return json.Marshal(float64(val))
	case Bool:
		return json.Marshal(bool(val))
	case Array:
		return marshalArray(val)
	case Object:
		return val.MarshalJSON()
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

// MarshalJSON implements json.Marshaler for Object with sorted keys.
func (obj Object) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')

	for i, k := range obj.SortedKeys() {
		if i > 0 {
			b.WriteByte(',')
		}
		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal key %q: %w", k, err)
		}
		b.Write(keyBytes)
		b.WriteByte(':')

		valBytes, err := Marshal(obj[k])
		if err != nil {
			return nil, fmt.Errorf("marshal value for key %q: %w", k, err)
		}
		b.Write(valBytes)
	}

	b.WriteByte('}')
	return []byte(b.String()), nil
}

func marshalArray(arr Array) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			b.WriteByte(',')
		}
		elemBytes, err := Marshal(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		b.Write(elemBytes)
	}

	b.WriteByte(']')
	return []byte(b.String()), nil
}

// FromAny converts an arbitrary Go value to a Value. Total: unexpected types
// degrade to a best-effort trimmed string rather than failing, since the
// engine must never reject a value it is asked to compare.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Value:
		return val
	case bool:
		return Bool(val)
	case string:
		return String(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return String(strings.TrimSpace(val.String()))
		}
		return Number(f)
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			arr[i] = FromAny(elem)
		}
		return arr
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			obj[k] = FromAny(elem)
		}
		return obj
	default:
		return String(strings.TrimSpace(fmt.Sprint(v)))
	}
}
