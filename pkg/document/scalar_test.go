package document

import (
	"testing"
)

func TestParseScalarPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		check func(t *testing.T, v *Value)
	}{
		{"empty is null", "", KindNull, nil},
		{"whitespace is null", "   ", KindNull, nil},
		{"double quoted stays string", `"true"`, KindString, func(t *testing.T, v *Value) {
			if v.Str() != "true" {
				t.Fatalf("got %q", v.Str())
			}
		}},
		{"single quoted stays string", "'42'", KindString, func(t *testing.T, v *Value) {
			if v.Str() != "42" {
				t.Fatalf("got %q", v.Str())
			}
		}},
		{"quoted escapes decoded", `"a\nb"`, KindString, func(t *testing.T, v *Value) {
			if v.Str() != "a\nb" {
				t.Fatalf("got %q", v.Str())
			}
		}},
		{"true", "true", KindBool, func(t *testing.T, v *Value) {
			if !v.Bool() {
				t.Fatal("want true")
			}
		}},
		{"FALSE case-insensitive", "FALSE", KindBool, func(t *testing.T, v *Value) {
			if v.Bool() {
				t.Fatal("want false")
			}
		}},
		{"null keyword", "Null", KindNull, nil},
		{"integer", "42", KindInt, func(t *testing.T, v *Value) {
			if v.Int() != 42 {
				t.Fatalf("got %d", v.Int())
			}
		}},
		{"negative integer", "-7", KindInt, nil},
		{"float", "3.14", KindFloat, func(t *testing.T, v *Value) {
			if v.Float() != 3.14 {
				t.Fatalf("got %v", v.Float())
			}
		}},
		{"exponent float", "1e3", KindFloat, nil},
		{"plain string", "hello world", KindString, nil},
		{"trimmed string", "  hi  ", KindString, func(t *testing.T, v *Value) {
			if v.Str() != "hi" {
				t.Fatalf("got %q", v.Str())
			}
		}},
		{"lone quote is string", `"`, KindString, nil},
		{"mismatched quotes is string", `"abc'`, KindString, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseScalar(tt.input)
			if v.Kind() != tt.kind {
				t.Fatalf("ParseScalar(%q).Kind() = %v, want %v", tt.input, v.Kind(), tt.kind)
			}
			if tt.check != nil {
				tt.check(t, v)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"string quoted", NewString("hi"), `"hi"`},
		{"string with newline escaped", NewString("a\nb"), `"a\nb"`},
		{"int", NewInt(-5), "-5"},
		{"float canonical", NewFloat(1.5), "1.5"},
		{"float integral keeps short form", NewFloat(2), "2"},
		{"bool", NewBool(true), "true"},
		{"null", NewNull(), "null"},
		{"map previews empty", NewMap(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.v); got != tt.want {
				t.Fatalf("Preview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscapeUnescapeRoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		"line1\nline2",
		"tab\there",
		`say "hi"`,
		`back\slash`,
		"",
	}
	for _, in := range inputs {
		if got := UnescapeString(EscapeString(in)); got != in {
			t.Fatalf("round trip of %q gave %q", in, got)
		}
	}
}

func TestUnescapeUnknownSequenceKeepsBackslash(t *testing.T) {
	if got := UnescapeString(`a\qb`); got != `a\qb` {
		t.Fatalf("got %q", got)
	}
	if got := UnescapeString(`trailing\`); got != `trailing\` {
		t.Fatalf("got %q", got)
	}
}
