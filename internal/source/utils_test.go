package source

import (
	"bytes"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected []byte
		changed  bool
	}{
		{"no carriage returns", []byte("a\nb\n"), []byte("a\nb\n"), false},
		{"crlf pairs", []byte("a\r\nb\r\n"), []byte("a\nb\n"), true},
		{"lone cr kept", []byte("a\rb"), []byte("a\rb"), false},
		{"mixed", []byte("a\r\nb\rc\n"), []byte("a\nb\rc\n"), true},
		{"empty", []byte(""), []byte(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, changed := normalizeCRLF(tt.input)
			if !bytes.Equal(out, tt.expected) {
				t.Errorf("content = %q, want %q", out, tt.expected)
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}
	out, had := removeBOM(withBOM)
	if !had || string(out) != "hi" {
		t.Errorf("removeBOM = (%q, %v), want (hi, true)", out, had)
	}

	out, had = removeBOM([]byte("hi"))
	if had || string(out) != "hi" {
		t.Errorf("removeBOM without BOM = (%q, %v)", out, had)
	}
}

func TestToLineCol(t *testing.T) {
	// Content: "ab\ncd\n\nef" -> newline offsets 2, 5, 6.
	idx := buildLineIndex([]byte("ab\ncd\n\nef"))

	tests := []struct {
		off      uint32
		expected LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 4, Col: 1}},
		{8, LineCol{Line: 4, Col: 2}},
	}
	for _, tt := range tests {
		if got := toLineCol(idx, tt.off); got != tt.expected {
			t.Errorf("toLineCol(%d) = %+v, want %+v", tt.off, got, tt.expected)
		}
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()

	a := in.Intern("format")
	b := in.Intern("format")
	if a != b {
		t.Errorf("same string interned twice got different IDs: %d vs %d", a, b)
	}
	if a == NoStringID {
		t.Errorf("non-empty string must not map to NoStringID")
	}

	if got := in.Intern(""); got != NoStringID {
		t.Errorf("empty string must map to NoStringID, got %d", got)
	}

	s, ok := in.Lookup(a)
	if !ok || s != "format" {
		t.Errorf("Lookup(%d) = (%q, %v)", a, s, ok)
	}

	if _, ok := in.Lookup(StringID(999)); ok {
		t.Errorf("unexpected hit for unknown ID")
	}
}
