package symbols

import (
	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/types"
)

// DefKind classifies the semantic meaning of a definition.
type DefKind uint8

const (
	DefInvalid DefKind = iota
	DefFunction
	DefMethod
	DefType
	DefConst
	// DefBinding is a local pattern binding introduced by a match arm or let.
	DefBinding
)

func (k DefKind) String() string {
	switch k {
	case DefFunction:
		return "function"
	case DefMethod:
		return "method"
	case DefType:
		return "type"
	case DefConst:
		return "const"
	case DefBinding:
		return "binding"
	default:
		return "invalid"
	}
}

// Def describes one definition the frontend knows about. Path holds the
// fully-qualified segments for items; bindings carry only their simple name
// and an inferred type.
type Def struct {
	Kind DefKind
	Path []source.StringID
	Decl source.Span
	Type types.TypeID
}

// Name returns the terminal path segment, or NoStringID for an empty path.
func (d *Def) Name() source.StringID {
	if len(d.Path) == 0 {
		return source.NoStringID
	}
	return d.Path[len(d.Path)-1]
}
