package hir

import (
	"github.com/Yoopo/rust-clippy/internal/source"
)

// Func is one function body in the expanded program.
type Func struct {
	Name string
	File source.FileID
	Span source.Span
	Body *Expr // nil for bodiless declarations
}

// Module aggregates everything the frontend dumped for one program: the
// function bodies plus the expansion table their nodes reference.
type Module struct {
	Funcs []Func
	Expns *Expansions
}

// NewModule creates an empty module with a fresh expansion table.
func NewModule() *Module {
	return &Module{
		Expns: NewExpansions(16),
	}
}

// FuncsInFile returns the indices of functions belonging to the file, in
// declaration order.
func (m *Module) FuncsInFile(file source.FileID) []int {
	var out []int
	for i := range m.Funcs {
		if m.Funcs[i].File == file {
			out = append(out, i)
		}
	}
	return out
}
