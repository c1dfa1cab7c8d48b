package dump

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Yoopo/rust-clippy/internal/hir"
	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/symbols"
	"github.com/Yoopo/rust-clippy/internal/types"
)

// buildProgram assembles a small program touching every node kind the wire
// format carries: one function whose body is a block holding a binary
// statement and a `format!`-shaped call expansion as its tail.
func buildProgram(t *testing.T) *Program {
	t.Helper()

	src := `fn main() { let s = format!("{}", foo); }`
	files := source.NewFileSet()
	file := files.AddVirtual("main.rs", []byte(src))

	ti := types.NewInterner()
	refStr := ti.Intern(types.MakeReference(ti.Builtins().Str, false))

	defs := symbols.NewTable(8, nil)
	newV1 := defs.NewItemDef(symbols.DefFunction, "core", "fmt", "Arguments", "new_v1_formatted")
	display := defs.NewItemDef(symbols.DefMethod, "core", "fmt", "Display", "fmt")

	module := hir.NewModule()
	callSpan := source.Span{File: file, Start: 20, End: 38}
	argSpan := source.Span{File: file, Start: 34, End: 37}
	expn := module.Expns.New("format", callSpan, hir.NoExpnID)

	binding := defs.NewBinding("__arg0", argSpan, refStr)

	lit := func(s string) *hir.Expr {
		return &hir.Expr{Kind: hir.ExprLiteral, Expn: expn, Data: hir.LiteralData{Kind: hir.LiteralStr, StringValue: s}}
	}
	path := func(name string, def symbols.DefID) *hir.Expr {
		return &hir.Expr{Kind: hir.ExprPath, Expn: expn, Data: hir.PathData{Name: name, Def: def}}
	}
	addr := func(inner *hir.Expr) *hir.Expr {
		return &hir.Expr{Kind: hir.ExprAddrOf, Expn: expn, Data: hir.AddrOfData{Inner: inner}}
	}
	array := func(els ...*hir.Expr) *hir.Expr {
		return &hir.Expr{Kind: hir.ExprArray, Expn: expn, Data: hir.ArrayData{Elements: els}}
	}

	match := &hir.Expr{
		Kind: hir.ExprMatch,
		Expn: expn,
		Data: hir.MatchData{
			Scrutinee: &hir.Expr{
				Kind: hir.ExprTuple,
				Expn: expn,
				Data: hir.TupleData{Elements: []*hir.Expr{{
					Kind: hir.ExprPath,
					Span: argSpan,
					Data: hir.PathData{Name: "foo"},
				}}},
			},
			Arms: []hir.MatchArm{{
				Pats: []*hir.Pat{{
					Kind: hir.PatTuple,
					Data: hir.TuplePatData{
						Elems: []*hir.Pat{{Kind: hir.PatBinding, Data: hir.BindingData{Name: "__arg0", Def: binding}}},
						Rest:  -1,
					},
				}},
				Body: array(&hir.Expr{
					Kind: hir.ExprCall,
					Expn: expn,
					Data: hir.CallData{
						Callee: path("new", symbols.NoDefID),
						Args:   []*hir.Expr{path("__arg0", symbols.NoDefID), path("fmt", display)},
					},
				}),
			}},
		},
	}

	spec := &hir.Expr{
		Kind: hir.ExprStruct,
		Expn: expn,
		Data: hir.StructData{
			TypeName: "Argument",
			Fields: []hir.StructFieldInit{{
				Name: "format",
				Value: &hir.Expr{
					Kind: hir.ExprStruct,
					Expn: expn,
					Data: hir.StructData{
						TypeName: "FormatSpec",
						Fields:   []hir.StructFieldInit{{Name: "width", Value: path("Implied", symbols.NoDefID)}},
					},
				},
			}},
		},
	}

	call := &hir.Expr{
		Kind: hir.ExprCall,
		Span: callSpan,
		Expn: expn,
		Data: hir.CallData{
			Callee: path("new_v1_formatted", newV1),
			Args:   []*hir.Expr{addr(array(lit(""))), addr(match), addr(array(spec))},
		},
	}

	body := &hir.Expr{
		Kind: hir.ExprBlock,
		Data: hir.BlockData{
			Stmts: []*hir.Expr{{
				Kind: hir.ExprBinary,
				Data: hir.BinaryData{
					Op:    "+",
					Left:  &hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralData{Kind: hir.LiteralInt, IntValue: 1}},
					Right: &hir.Expr{Kind: hir.ExprLiteral, Data: hir.LiteralData{Kind: hir.LiteralInt, IntValue: 2}},
				},
			}},
			Tail: call,
		},
	}

	module.Funcs = append(module.Funcs, hir.Func{
		Name: "main",
		File: file,
		Span: source.Span{File: file, Start: 0, End: uint32(len(src))},
		Body: body,
	})

	return &Program{Files: files, Types: ti, Defs: defs, Module: module, Tool: "testdump"}
}

func TestRoundTrip(t *testing.T) {
	orig := buildProgram(t)

	var buf bytes.Buffer
	if err := Encode(&buf, orig); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.Tool != "testdump" {
		t.Errorf("Tool = %q", got.Tool)
	}
	if len(got.Module.Funcs) != 1 || got.Module.Funcs[0].Name != "main" {
		t.Fatalf("funcs = %+v", got.Module.Funcs)
	}

	origCount := hir.CountExprs(orig.Module.Funcs[0].Body)
	gotCount := hir.CountExprs(got.Module.Funcs[0].Body)
	if origCount != gotCount {
		t.Errorf("expr count: got %d, want %d", gotCount, origCount)
	}

	// Resolution and type information survive the trip.
	block := got.Module.Funcs[0].Body.Data.(hir.BlockData)
	call := block.Tail.Data.(hir.CallData)
	callee := call.Callee.Data.(hir.PathData)
	if !got.Defs.MatchPath(callee.Def, []string{"core", "fmt", "Arguments", "new_v1_formatted"}) {
		t.Errorf("callee path lost in round trip")
	}

	// Expansion chain and snippets resolve against the rebuilt file set.
	expn, ok := got.Module.Expns.Find(block.Tail.Expn, "format")
	if !ok {
		t.Fatalf("format expansion lost")
	}
	site := got.Module.Expns.CallSite(expn)
	if s := got.Files.Snippet(site, "?"); s != `format!("{}", foo)` {
		t.Errorf("call site snippet = %q", s)
	}

	arg := call.Args[1].Data.(hir.AddrOfData).Inner.Data.(hir.MatchData)
	argSpan := arg.Scrutinee.Data.(hir.TupleData).Elements[0].Span
	if s := got.Files.Snippet(argSpan, "?"); s != "foo" {
		t.Errorf("argument snippet = %q", s)
	}

	pat := arg.Arms[0].Pats[0].Data.(hir.TuplePatData)
	if pat.Rest != -1 || len(pat.Elems) != 1 {
		t.Errorf("tuple pattern mangled: %+v", pat)
	}
	bindDef := pat.Elems[0].Data.(hir.BindingData).Def
	ty := got.Defs.DefType(bindDef)
	if !got.Types.IsTextual(ty, got.Defs.Strings, []string{"alloc", "string", "String"}) {
		t.Errorf("binding type lost: %v", ty)
	}
}

func TestDecode_BadSchema(t *testing.T) {
	_, err := DecodePayload(&Payload{Schema: SchemaVersion + 1})
	if !errors.Is(err, ErrBadSchema) {
		t.Fatalf("err = %v, want ErrBadSchema", err)
	}
}

func TestDecode_DanglingRefs(t *testing.T) {
	base := func() *Payload {
		return &Payload{
			Schema: SchemaVersion,
			Files:  []FileEntry{{Path: "main.rs", Content: []byte("fn main() {}")}},
		}
	}

	tests := []struct {
		name   string
		mutate func(p *Payload)
	}{
		{
			name: "func body out of range",
			mutate: func(p *Payload) {
				p.Funcs = []FuncEntry{{Name: "main", Body: 5}}
			},
		},
		{
			name: "expr expansion out of range",
			mutate: func(p *Payload) {
				p.Exprs = []ExprEntry{{Kind: uint8(hir.ExprTuple), Expn: 9}}
			},
		},
		{
			name: "type element forward reference",
			mutate: func(p *Payload) {
				p.Types = []TypeEntry{{Kind: uint8(types.KindReference), Elem: 2}}
			},
		},
		{
			name: "def path string out of range",
			mutate: func(p *Payload) {
				p.Defs = []DefEntry{{Kind: uint8(symbols.DefFunction), Path: []uint32{7}}}
			},
		},
		{
			name: "expansion parent forward reference",
			mutate: func(p *Payload) {
				p.Expns = []ExpnEntry{{Macro: "format", Parent: 1}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(p)
			if _, err := DecodePayload(p); !errors.Is(err, ErrDanglingRef) {
				t.Fatalf("err = %v, want ErrDanglingRef", err)
			}
		})
	}
}

func TestDecode_UnknownKinds(t *testing.T) {
	p := &Payload{
		Schema: SchemaVersion,
		Exprs:  []ExprEntry{{Kind: 99}},
	}
	if _, err := DecodePayload(p); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("expr kind: err = %v, want ErrUnknownNode", err)
	}

	p = &Payload{
		Schema: SchemaVersion,
		Pats:   []PatEntry{{Kind: 99}},
	}
	if _, err := DecodePayload(p); !errors.Is(err, ErrUnknownNode) {
		t.Fatalf("pat kind: err = %v, want ErrUnknownNode", err)
	}
}

func TestDecode_NonTreeShapes(t *testing.T) {
	base := func() *Payload {
		return &Payload{
			Schema: SchemaVersion,
			Files:  []FileEntry{{Path: "main.rs", Content: []byte("fn main() {}")}},
		}
	}

	tests := []struct {
		name   string
		mutate func(p *Payload)
	}{
		{
			name: "expr is its own child",
			mutate: func(p *Payload) {
				p.Exprs = []ExprEntry{{Kind: uint8(hir.ExprArray), Kids: []uint32{1}}}
				p.Funcs = []FuncEntry{{Name: "main", Body: 1}}
			},
		},
		{
			name: "two-expr cycle reachable from a body",
			mutate: func(p *Payload) {
				p.Exprs = []ExprEntry{
					{Kind: uint8(hir.ExprArray), Kids: []uint32{2}},
					{Kind: uint8(hir.ExprArray), Kids: []uint32{1}},
				}
				p.Funcs = []FuncEntry{{Name: "main", Body: 1}}
			},
		},
		{
			name: "expr shared by two parents",
			mutate: func(p *Payload) {
				p.Exprs = []ExprEntry{
					{Kind: uint8(hir.ExprLiteral), LitKind: uint8(hir.LiteralInt)},
					{Kind: uint8(hir.ExprArray), Kids: []uint32{1}},
					{Kind: uint8(hir.ExprArray), Kids: []uint32{1}},
				}
			},
		},
		{
			name: "block tail aliases a statement",
			mutate: func(p *Payload) {
				p.Exprs = []ExprEntry{
					{Kind: uint8(hir.ExprLiteral), LitKind: uint8(hir.LiteralInt)},
					{Kind: uint8(hir.ExprBlock), Kids: []uint32{1}, Tail: 1},
				}
			},
		},
		{
			name: "pat repeated inside a tuple",
			mutate: func(p *Payload) {
				p.Pats = []PatEntry{
					{Kind: uint8(hir.PatWild)},
					{Kind: uint8(hir.PatTuple), Elems: []uint32{1, 1}, Rest: -1},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base()
			tt.mutate(p)
			got, err := DecodePayload(p)
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("err = %v, want ErrCorrupt", err)
			}
			if got != nil {
				t.Fatalf("program = %v, want nil", got)
			}
		})
	}
}

func TestDecode_CorruptShapes(t *testing.T) {
	p := &Payload{
		Schema: SchemaVersion,
		Exprs:  []ExprEntry{{Kind: uint8(hir.ExprCall)}}, // call without callee
	}
	if _, err := DecodePayload(p); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("err = %v, want ErrCorrupt", err)
	}

	if _, err := Decode(bytes.NewReader([]byte{0xc1})); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("garbage stream: err = %v, want ErrCorrupt", err)
	}
}

func TestWriteReadFile(t *testing.T) {
	orig := buildProgram(t)
	path := filepath.Join(t.TempDir(), "sub", "program.mp")

	if err := WriteFile(path, orig); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Module.Funcs) != 1 {
		t.Fatalf("funcs = %d, want 1", len(got.Module.Funcs))
	}
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.mp")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
