package fieldval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"nil value", nil, ""},
		{"null", Null{}, ""},
		{"empty string", String(""), ""},
		{"plain string", String("hello"), "hello"},
		{"leading and trailing space", String("  hello  "), "hello"},
		{"internal run collapsed", String("123  Main   St"), "123 Main St"},
		{"tabs and newlines", String("a\t\nb"), "a b"},
		{"whitespace only", String(" \t "), ""},
		{"integer number", Number(5), "5"},
		{"fractional number", Number(5.5), "5.5"},
		{"negative number", Number(-12.25), "-12.25"},
		{"zero", Number(0), "0"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeComposites(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"empty array", Array{}, "[]"},
		{"array of strings", Array{String("a"), String("b")}, `["a","b"]`},
		{"array normalizes elements", Array{String(" a  b "), Number(3)}, `["a b","3"]`},
		{"empty object", Object{}, "{}"},
		{"object sorts keys", Object{"b": Number(2), "a": Number(1)}, `{"a":"1","b":"2"}`},
		{
			"nested object",
			Object{"addr": Object{"city": String("Springfield "), "zip": String("62704")}},
			`{"addr":"{\"city\":\"Springfield\",\"zip\":\"62704\"}"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestEqualKeyOrderInsignificant(t *testing.T) {
	a := Object{"a": Number(1), "b": Number(2)}
	b := Object{"b": Number(2), "a": Number(1)}
	assert.True(t, Equal(a, b))
}

func TestEqualReflexive(t *testing.T) {
	values := []Value{
		nil,
		Null{},
		String("x"),
		Number(3.14),
		Bool(true),
		Array{String("a"), Number(1)},
		Object{"k": Array{Null{}, String("v")}},
	}
	for _, v := range values {
		assert.True(t, Equal(v, v), "Equal(%v, %v)", v, v)
	}
}

func TestEqualNumericStringCoercion(t *testing.T) {
	// A numeric 5 and the string "5" normalize identically.
	assert.True(t, Equal(Number(5), String("5")))
	assert.True(t, Equal(Array{Number(5)}, Array{String("5")}))
	assert.False(t, Equal(Number(5), String("5.0")))
}

func TestEqualWhitespaceInsignificant(t *testing.T) {
	assert.True(t, Equal(String("Acme  Corp"), String(" Acme Corp ")))
	assert.False(t, Equal(String("Acme Corp"), String("Acme Corporation")))
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		empty bool
	}{
		{"nil", nil, true},
		{"null", Null{}, true},
		{"empty string", String(""), true},
		{"whitespace string", String("   "), true},
		{"non-empty string", String("x"), false},
		{"zero number", Number(0), false},
		{"false bool", Bool(false), false},
		{"empty array", Array{}, true},
		{"non-empty array", Array{Null{}}, false},
		{"empty object", Object{}, true},
		{"non-empty object", Object{"k": Null{}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, IsEmpty(tt.input))
		})
	}
}

func TestNotInDocumentSentinel(t *testing.T) {
	assert.True(t, IsNotInDocument(NotInDocument))
	assert.False(t, IsNotInDocument(String("not in document")))
	assert.False(t, IsNotInDocument(nil))
	assert.False(t, IsNotInDocument(Null{}))

	// The sentinel is a present value, not an empty one.
	assert.False(t, IsEmpty(NotInDocument))
}

func TestNormalizeNFC(t *testing.T) {
	// "é" composed vs decomposed must normalize identically.
	composed := String("café")
	decomposed := String("café")
	assert.True(t, Equal(composed, decomposed))
}
