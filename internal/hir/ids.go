// Package hir models the macro-expanded expression tree a compiler frontend
// hands to the lint driver.
//
// Every expression node carries its inferred type, its source span, and the
// expansion that produced it. Spans of generated nodes point into the
// expansion buffer; the expansion table maps them back to the call site the
// user actually wrote, which is the only place diagnostics are allowed to
// land.
//
// The tree is built once while decoding a program dump and never mutated
// afterwards; lint passes only read it.
package hir

// FuncID identifies a function within a module.
type FuncID uint32

// ExpnID identifies a macro expansion record.
type ExpnID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoFuncID FuncID = 0
	// NoExpnID marks user-written code that came from no expansion.
	NoExpnID ExpnID = 0
)

// IsValid reports whether the ID is valid (non-zero).
func (id FuncID) IsValid() bool { return id != NoFuncID }
func (id ExpnID) IsValid() bool { return id != NoExpnID }
