package symbols

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/types"
)

// Table stores all definitions in a compact slice-based arena alongside the
// shared string interner. It is filled once while decoding a program dump
// and read-only afterwards, so concurrent lint passes may query it freely.
type Table struct {
	defs    []Def
	Strings *source.Interner
}

// NewTable builds a fresh table with an optional capacity hint.
// If strings is nil, a fresh interner is allocated.
func NewTable(capHint uint, strings *source.Interner) *Table {
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		defs:    make([]Def, 1, capHint+1), // index 0 reserved for NoDefID
		Strings: strings,
	}
}

// NewDef allocates a definition and returns its ID.
func (t *Table) NewDef(kind DefKind, path []source.StringID, decl source.Span, typ types.TypeID) DefID {
	value, err := safecast.Conv[uint32](len(t.defs))
	if err != nil {
		panic(fmt.Errorf("defs arena overflow: %w", err))
	}
	id := DefID(value)
	t.defs = append(t.defs, Def{
		Kind: kind,
		Path: slices.Clone(path),
		Decl: decl,
		Type: typ,
	})
	return id
}

// NewItemDef interns the string path segments and allocates an item
// definition.
func (t *Table) NewItemDef(kind DefKind, path ...string) DefID {
	ids := make([]source.StringID, 0, len(path))
	for _, seg := range path {
		ids = append(ids, t.Strings.Intern(seg))
	}
	return t.NewDef(kind, ids, source.Span{}, types.NoTypeID)
}

// NewBinding allocates a local binding with its inferred type.
func (t *Table) NewBinding(name string, decl source.Span, typ types.TypeID) DefID {
	return t.NewDef(DefBinding, []source.StringID{t.Strings.Intern(name)}, decl, typ)
}

// Get returns the definition for the given ID, or nil for NoDefID and
// out-of-range IDs.
func (t *Table) Get(id DefID) *Def {
	if !id.IsValid() || int(id) >= len(t.defs) {
		return nil
	}
	return &t.defs[id]
}

// Len returns the number of allocated definitions, sentinel included.
func (t *Table) Len() int {
	return len(t.defs)
}

// DefType returns the inferred type recorded for the definition.
// Unknown definitions yield NoTypeID, which every consumer treats as
// non-matching.
func (t *Table) DefType(id DefID) types.TypeID {
	d := t.Get(id)
	if d == nil {
		return types.NoTypeID
	}
	return d.Type
}

// MatchPath reports whether the definition's fully-qualified path equals
// want segment-for-segment.
func (t *Table) MatchPath(id DefID, want []string) bool {
	d := t.Get(id)
	if d == nil || len(d.Path) != len(want) {
		return false
	}
	for i, seg := range d.Path {
		s, ok := t.Strings.Lookup(seg)
		if !ok || s != want[i] {
			return false
		}
	}
	return true
}

// SimpleName returns the terminal path segment as a string.
func (t *Table) SimpleName(id DefID) string {
	d := t.Get(id)
	if d == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(d.Name())
	return s
}
