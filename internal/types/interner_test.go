package types

import (
	"testing"

	"github.com/Yoopo/rust-clippy/internal/source"
)

func TestInterner_Dedup(t *testing.T) {
	in := NewInterner()

	a := in.Intern(MakeReference(in.Builtins().Str, false))
	b := in.Intern(MakeReference(in.Builtins().Str, false))
	if a != b {
		t.Errorf("same descriptor interned twice got different IDs: %d vs %d", a, b)
	}

	c := in.Intern(MakeReference(in.Builtins().Str, true))
	if c == a {
		t.Errorf("mutable reference must not collide with shared reference")
	}

	if got := in.Intern(Type{Kind: KindInvalid}); got != NoTypeID {
		t.Errorf("invalid descriptor must intern to NoTypeID, got %d", got)
	}
}

func TestInterner_StripRefs(t *testing.T) {
	in := NewInterner()
	str := in.Builtins().Str

	ref := in.Intern(MakeReference(str, false))
	refRef := in.Intern(MakeReference(ref, false))
	ownRef := in.Intern(MakeOwn(refRef))

	tests := []struct {
		name     string
		id       TypeID
		expected TypeID
	}{
		{"bare primitive unchanged", str, str},
		{"single reference", ref, str},
		{"double reference", refRef, str},
		{"own around references", ownRef, str},
		{"unknown id unchanged", TypeID(9999), TypeID(9999)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.StripRefs(tt.id); got != tt.expected {
				t.Errorf("StripRefs(%d) = %d, want %d", tt.id, got, tt.expected)
			}
		})
	}
}

func TestInterner_IsTextual(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()

	stringPath := []string{"std", "string", "String"}
	pathIDs := make([]source.StringID, 0, len(stringPath))
	for _, seg := range stringPath {
		pathIDs = append(pathIDs, names.Intern(seg))
	}
	ownedString := in.RegisterNominal(pathIDs, source.Span{})

	otherNominal := in.RegisterNominal(
		[]source.StringID{names.Intern("std"), names.Intern("vec"), names.Intern("Vec")},
		source.Span{},
	)

	refStr := in.Intern(MakeReference(in.Builtins().Str, false))
	refString := in.Intern(MakeReference(ownedString, false))

	tests := []struct {
		name     string
		id       TypeID
		expected bool
	}{
		{"primitive str", in.Builtins().Str, true},
		{"&str", refStr, true},
		{"owned String", ownedString, true},
		{"&String", refString, true},
		{"other nominal", otherNominal, false},
		{"int", in.Builtins().Int, false},
		{"unknown", TypeID(9999), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.IsTextual(tt.id, names, stringPath); got != tt.expected {
				t.Errorf("IsTextual(%d) = %v, want %v", tt.id, got, tt.expected)
			}
		})
	}
}

func TestInterner_NominalInfo(t *testing.T) {
	in := NewInterner()
	names := source.NewInterner()

	id := in.RegisterNominal(
		[]source.StringID{names.Intern("core"), names.Intern("fmt"), names.Intern("Arguments")},
		source.Span{File: 1, Start: 5, End: 14},
	)

	info, ok := in.NominalInfo(id)
	if !ok {
		t.Fatalf("expected nominal info")
	}
	if got, _ := names.Lookup(info.Name); got != "Arguments" {
		t.Errorf("Name = %q, want Arguments", got)
	}
	if len(info.Path) != 3 {
		t.Errorf("Path length = %d, want 3", len(info.Path))
	}

	if _, ok := in.NominalInfo(in.Builtins().Str); ok {
		t.Errorf("primitive must not report nominal info")
	}
}
