// Package dump reads and writes the serialized program form the linter
// consumes. The frontend lowers a crate to typed, macro-expanded expression
// trees and emits them as one msgpack payload per program: flat tables of
// strings, files, types, definitions, expansion records and expression
// nodes, cross-referenced by one-based indices (zero always means "none").
//
// The decoder rebuilds the live structures (source.FileSet, types.Interner,
// symbols.Table, hir.Module) and validates every cross-reference, including
// tree shape: an expression or pattern referenced by more than one parent
// is rejected, so every decoded function body is a finite tree. A payload
// that survives Decode cannot make a lint pass fault.
package dump

import "errors"

// SchemaVersion is bumped whenever the payload layout changes. Decoders
// reject any other version instead of guessing.
const SchemaVersion uint16 = 1

var (
	// ErrBadSchema reports a payload written by an incompatible frontend.
	ErrBadSchema = errors.New("unsupported dump schema version")
	// ErrCorrupt reports a structurally invalid payload.
	ErrCorrupt = errors.New("corrupt dump payload")
	// ErrDanglingRef reports an index pointing outside its table.
	ErrDanglingRef = errors.New("dangling reference in dump")
	// ErrUnknownNode reports an expression or pattern kind this decoder
	// does not know.
	ErrUnknownNode = errors.New("unknown node kind in dump")
)

// Payload is the wire form of one dumped program. All table references are
// one-based indices into the sibling tables; 0 is the null reference.
// String references index Strings directly (entry 0 is the empty string).
type Payload struct {
	Schema uint16 `msgpack:"schema"`
	Tool   string `msgpack:"tool"` // producing frontend, informational

	Strings []string    `msgpack:"strings"`
	Files   []FileEntry `msgpack:"files"`
	Types   []TypeEntry `msgpack:"types"`
	Defs    []DefEntry  `msgpack:"defs"`
	Expns   []ExpnEntry `msgpack:"expns"`
	Exprs   []ExprEntry `msgpack:"exprs"`
	Pats    []PatEntry  `msgpack:"pats"`
	Funcs   []FuncEntry `msgpack:"funcs"`
}

// SpanEntry is a half-open byte range in a dumped file. File is the
// zero-based index into Files, mirroring the FileIDs the decoder hands out.
type SpanEntry struct {
	File  uint32 `msgpack:"f"`
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
}

// FileEntry carries a source file with its full content, so the linter can
// quote snippets without access to the original tree.
type FileEntry struct {
	Path    string `msgpack:"path"`
	Content []byte `msgpack:"content"`
	Virtual bool   `msgpack:"virtual"`
}

// TypeEntry describes one type. Elem references an earlier Types entry;
// Path holds the qualified name of nominal types as string references.
type TypeEntry struct {
	Kind    uint8     `msgpack:"kind"`
	Elem    uint32    `msgpack:"elem"`
	Count   uint32    `msgpack:"count"`
	Width   uint8     `msgpack:"width"`
	Mutable bool      `msgpack:"mut"`
	Path    []uint32  `msgpack:"path"`
	Decl    SpanEntry `msgpack:"decl"`
}

// DefEntry describes one definition. Type references Types; for bindings
// it carries the inferred type the lint type gates consult.
type DefEntry struct {
	Kind uint8     `msgpack:"kind"`
	Path []uint32  `msgpack:"path"`
	Decl SpanEntry `msgpack:"decl"`
	Type uint32    `msgpack:"type"`
}

// ExpnEntry is one macro expansion record. Parent references the expansion
// whose output contained this invocation; 0 for invocations the user wrote.
type ExpnEntry struct {
	Macro    string    `msgpack:"macro"`
	CallSite SpanEntry `msgpack:"site"`
	Parent   uint32    `msgpack:"parent"`
}

// ExprEntry is one expression node. Kids carries kind-dependent children as
// Exprs references:
//
//	Call:   callee, then arguments
//	AddrOf: the single inner expression
//	Array, Tuple, Block (statements): the elements in order
//	Binary: left, right
//	Match:  the scrutinee (arms are carried separately)
//
// Unused fields stay zero-valued; msgpack keeps them cheap on the wire.
type ExprEntry struct {
	Kind uint8     `msgpack:"kind"`
	Type uint32    `msgpack:"type"`
	Span SpanEntry `msgpack:"span"`
	Expn uint32    `msgpack:"expn"`

	LitKind uint8   `msgpack:"litkind"`
	Text    string  `msgpack:"text"`
	Int     int64   `msgpack:"int"`
	Float   float64 `msgpack:"float"`
	Bool    bool    `msgpack:"bool"`
	Str     string  `msgpack:"str"`

	Name string `msgpack:"name"`
	Def  uint32 `msgpack:"def"`

	Kids   []uint32     `msgpack:"kids"`
	Fields []FieldEntry `msgpack:"fields"`
	Arms   []ArmEntry   `msgpack:"arms"`

	Mutable bool   `msgpack:"mut"`
	Op      string `msgpack:"op"`
	Tail    uint32 `msgpack:"tail"` // block tail expression, 0 when absent
}

// FieldEntry is a struct literal field initializer.
type FieldEntry struct {
	Name  string    `msgpack:"name"`
	Value uint32    `msgpack:"value"`
	Span  SpanEntry `msgpack:"span"`
}

// ArmEntry is one match arm; Pats references the Pats table.
type ArmEntry struct {
	Pats []uint32  `msgpack:"pats"`
	Body uint32    `msgpack:"body"`
	Span SpanEntry `msgpack:"span"`
}

// PatEntry is one pattern node. Elems (tuple patterns) references Pats.
type PatEntry struct {
	Kind  uint8     `msgpack:"kind"`
	Span  SpanEntry `msgpack:"span"`
	Name  string    `msgpack:"name"`
	Def   uint32    `msgpack:"def"`
	Elems []uint32  `msgpack:"elems"`
	Rest  int32     `msgpack:"rest"`
	Text  string    `msgpack:"text"`
}

// FuncEntry is one function body. Body references Exprs; 0 for bodiless
// declarations.
type FuncEntry struct {
	Name string    `msgpack:"name"`
	File uint32    `msgpack:"file"`
	Span SpanEntry `msgpack:"span"`
	Body uint32    `msgpack:"body"`
}
