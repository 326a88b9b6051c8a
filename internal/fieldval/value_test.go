package fieldval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Value
	}{
		{"null", `null`, Null{}},
		{"string", `"hello"`, String("hello")},
		{"int", `42`, Number(42)},
		{"float", `3.5`, Number(3.5)},
		{"bool", `true`, Bool(true)},
		{"array", `[1,"a",null]`, Array{Number(1), String("a"), Null{}}},
		{"object", `{"a":1,"b":{"c":[true]}}`, Object{"a": Number(1), "b": Object{"c": Array{Bool(true)}}}},
		{"leading whitespace", ` {"a":1}`, Object{"a": Number(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromJSON([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestFromJSONErrors(t *testing.T) {
	for _, input := range []string{"", "   ", `{"a":}`, `[1,`, `tru`} {
		_, err := FromJSON([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	original := Object{
		"vendor": String("Acme Corp"),
		"total":  Number(1249.5),
		"paid":   Bool(false),
		"memo":   Null{},
		"lines":  Array{Object{"sku": String("W-1"), "qty": Number(3)}},
	}

	data, err := Marshal(original)
	require.NoError(t, err)

	decoded, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestMarshalSortsObjectKeys(t *testing.T) {
	data, err := Marshal(Object{"zebra": Number(1), "alpha": Number(2)})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"zebra":1}`, string(data))
}

func TestMarshalNilValue(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected Value
	}{
		{"nil", nil, Null{}},
		{"string", "x", String("x")},
		{"int", 7, Number(7)},
		{"int64", int64(7), Number(7)},
		{"float64", 2.5, Number(2.5)},
		{"bool", true, Bool(true)},
		{"value passthrough", String("v"), String("v")},
		{"slice", []any{1, "a"}, Array{Number(1), String("a")}},
		{"map", map[string]any{"k": nil}, Object{"k": Null{}}},
		{"unexpected type degrades to string", struct{ X int }{1}, String("{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromAny(tt.input))
		})
	}
}

func TestSortedKeys(t *testing.T) {
	obj := Object{"b": Null{}, "a": Null{}, "c": Null{}}
	assert.Equal(t, []string{"a", "b", "c"}, obj.SortedKeys())
	assert.Empty(t, Object{}.SortedKeys())
}
