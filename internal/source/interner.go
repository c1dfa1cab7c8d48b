package source

import (
	"slices"
)

// StringID is a handle to an interned string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates strings (symbol names, path segments) and hands out
// stable IDs. ID 0 is reserved for the empty string.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the ID for s, inserting it on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}

	// Own copy, detached from whatever buffer s was sliced from.
	cpy := string([]byte(s))
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// InternBytes interns the bytes as a string.
func (in *Interner) InternBytes(b []byte) StringID {
	return in.Intern(string(b))
}

// Lookup returns the string for id, or "" and false for an unknown ID.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup is Lookup that panics on an unknown ID.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether id is valid for this interner.
func (in *Interner) Has(id StringID) bool {
	return int(id) < len(in.byID)
}

// Len returns the number of interned strings, the reserved empty string
// included.
func (in *Interner) Len() int {
	return len(in.byID)
}

// Snapshot returns a copy of all interned strings in ID order.
func (in *Interner) Snapshot() []string {
	return slices.Clone(in.byID)
}
