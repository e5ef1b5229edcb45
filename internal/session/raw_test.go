package session

import (
	"testing"
)

func TestNewRawBufferSplitsLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single line no newline", "a: 1", []string{"a: 1"}},
		{"trailing newline dropped", "a: 1\nb: 2\n", []string{"a: 1", "b: 2"}},
		{"blank middle line kept", "a\n\nb\n", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRawBuffer(tt.text)
			if r.Len() != len(tt.want) {
				t.Fatalf("lines = %q, want %q", r.Lines, tt.want)
			}
			for i := range tt.want {
				if r.Lines[i] != tt.want[i] {
					t.Fatalf("lines = %q, want %q", r.Lines, tt.want)
				}
			}
		})
	}
}

func TestRawBufferContent(t *testing.T) {
	r := NewRawBuffer("a: 1\nb: 2\n")
	if got := r.Content(); got != "a: 1\nb: 2" {
		t.Fatalf("Content() = %q", got)
	}
}

func TestReplaceLine(t *testing.T) {
	r := NewRawBuffer("one\ntwo\nthree\n")

	r.ReplaceLine(1, "TWO")
	if r.Lines[1] != "TWO" {
		t.Fatalf("line 1 = %q", r.Lines[1])
	}

	// Embedded newline is cut at the first break.
	r.ReplaceLine(0, "first\nsecond")
	if r.Lines[0] != "first" {
		t.Fatalf("line 0 = %q", r.Lines[0])
	}

	// Out of range is a no-op.
	r.ReplaceLine(9, "x")
	r.ReplaceLine(-1, "x")
	if r.Len() != 3 {
		t.Fatalf("length changed to %d", r.Len())
	}
}

func TestDeleteLine(t *testing.T) {
	r := NewRawBuffer("one\ntwo\nthree\n")

	if !r.DeleteLine(1) {
		t.Fatal("delete in range should succeed")
	}
	if r.Len() != 2 || r.Lines[0] != "one" || r.Lines[1] != "three" {
		t.Fatalf("lines = %q", r.Lines)
	}

	if r.DeleteLine(5) || r.DeleteLine(-1) {
		t.Fatal("delete out of range should fail")
	}
}
