package hir

import (
	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/symbols"
)

// PatKind enumerates pattern kinds.
type PatKind uint8

const (
	// PatWild is the wildcard pattern (_).
	PatWild PatKind = iota
	// PatBinding binds a name to the matched value.
	PatBinding
	// PatTuple destructures a tuple.
	PatTuple
	// PatLiteral matches a literal value.
	PatLiteral
)

func (k PatKind) String() string {
	switch k {
	case PatWild:
		return "Wild"
	case PatBinding:
		return "Binding"
	case PatTuple:
		return "Tuple"
	case PatLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}

// Pat represents a pattern node.
type Pat struct {
	Kind PatKind
	Span source.Span
	Data PatData
}

// PatData is the interface for pattern-specific data.
type PatData interface {
	patData()
}

// BindingData holds data for PatBinding. Def points at the binding's
// definition, which carries the inferred type.
type BindingData struct {
	Name string
	Def  symbols.DefID
}

func (BindingData) patData() {}

// TuplePatData holds data for PatTuple. Rest is the index of a `..` gap,
// or -1 when the pattern is exhaustive.
type TuplePatData struct {
	Elems []*Pat
	Rest  int
}

func (TuplePatData) patData() {}

// LiteralPatData holds data for PatLiteral.
type LiteralPatData struct {
	Text string
}

func (LiteralPatData) patData() {}
