package dump

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Yoopo/rust-clippy/internal/hir"
	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/symbols"
	"github.com/Yoopo/rust-clippy/internal/types"
)

// Encode flattens the program and writes it as one msgpack payload. The
// linter itself only reads dumps; the encoder exists for test fixtures and
// for tooling that post-processes dumps.
func Encode(w io.Writer, p *Program) error {
	payload, err := Flatten(p)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(payload)
}

// Flatten converts live structures into the wire tables. Arena IDs are
// dense and allocation-ordered, so they map onto wire indices unchanged.
// Expression and pattern nodes must form trees; the decoder rejects any
// node referenced by more than one parent.
func Flatten(p *Program) (*Payload, error) {
	enc := &encoder{
		program: p,
		payload: &Payload{Schema: SchemaVersion, Tool: p.Tool},
		exprIDs: make(map[*hir.Expr]uint32),
		patIDs:  make(map[*hir.Pat]uint32),
	}
	enc.files()
	if err := enc.typeTable(); err != nil {
		return nil, err
	}
	enc.defs()
	enc.expns()
	if err := enc.funcs(); err != nil {
		return nil, err
	}
	enc.payload.Strings = p.Defs.Strings.Snapshot()
	return enc.payload, nil
}

type encoder struct {
	program *Program
	payload *Payload
	exprIDs map[*hir.Expr]uint32
	patIDs  map[*hir.Pat]uint32
}

func flatSpan(s source.Span) SpanEntry {
	return SpanEntry{File: uint32(s.File), Start: s.Start, End: s.End}
}

func flatStrings(ids []source.StringID) []uint32 {
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}

func (enc *encoder) files() {
	fs := enc.program.Files
	enc.payload.Files = make([]FileEntry, 0, fs.Len())
	for i := range fs.Len() {
		f := fs.Get(source.FileID(i))
		enc.payload.Files = append(enc.payload.Files, FileEntry{
			Path:    f.Path,
			Content: f.Content,
			Virtual: f.Flags&source.FileVirtual != 0,
		})
	}
}

func (enc *encoder) typeTable() error {
	in := enc.program.Types
	enc.payload.Types = make([]TypeEntry, 0, in.Len()-1)
	for id := types.TypeID(1); int(id) < in.Len(); id++ {
		t, ok := in.Lookup(id)
		if !ok {
			return fmt.Errorf("%w: type %d", ErrDanglingRef, id)
		}
		entry := TypeEntry{
			Kind:    uint8(t.Kind),
			Elem:    uint32(t.Elem),
			Count:   t.Count,
			Width:   uint8(t.Width),
			Mutable: t.Mutable,
		}
		if t.Kind == types.KindNominal {
			info, ok := in.NominalInfo(id)
			if !ok {
				return fmt.Errorf("%w: nominal info for type %d", ErrDanglingRef, id)
			}
			entry.Path = flatStrings(info.Path)
			entry.Decl = flatSpan(info.Decl)
		}
		enc.payload.Types = append(enc.payload.Types, entry)
	}
	return nil
}

func (enc *encoder) defs() {
	tbl := enc.program.Defs
	enc.payload.Defs = make([]DefEntry, 0, tbl.Len()-1)
	for i := 1; i < tbl.Len(); i++ {
		d := tbl.Get(symbols.DefID(i))
		enc.payload.Defs = append(enc.payload.Defs, DefEntry{
			Kind: uint8(d.Kind),
			Path: flatStrings(d.Path),
			Decl: flatSpan(d.Decl),
			Type: uint32(d.Type),
		})
	}
}

func (enc *encoder) expns() {
	table := enc.program.Module.Expns
	enc.payload.Expns = make([]ExpnEntry, 0, table.Len()-1)
	for i := 1; i < table.Len(); i++ {
		rec := table.Get(hir.ExpnID(i))
		enc.payload.Expns = append(enc.payload.Expns, ExpnEntry{
			Macro:    rec.Macro,
			CallSite: flatSpan(rec.CallSite),
			Parent:   uint32(rec.Parent),
		})
	}
}

func (enc *encoder) funcs() error {
	m := enc.program.Module
	enc.payload.Funcs = make([]FuncEntry, 0, len(m.Funcs))
	for i := range m.Funcs {
		f := &m.Funcs[i]
		body, err := enc.expr(f.Body)
		if err != nil {
			return fmt.Errorf("func %q: %w", f.Name, err)
		}
		enc.payload.Funcs = append(enc.payload.Funcs, FuncEntry{
			Name: f.Name,
			File: uint32(f.File),
			Span: flatSpan(f.Span),
			Body: body,
		})
	}
	return nil
}

// expr flattens one node, children first, and returns its wire reference.
func (enc *encoder) expr(e *hir.Expr) (uint32, error) {
	if e == nil {
		return 0, nil
	}
	if id, ok := enc.exprIDs[e]; ok {
		return id, nil
	}

	entry := ExprEntry{
		Kind: uint8(e.Kind),
		Type: uint32(e.Type),
		Span: flatSpan(e.Span),
		Expn: uint32(e.Expn),
	}

	var err error
	switch data := e.Data.(type) {
	case hir.LiteralData:
		entry.LitKind = uint8(data.Kind)
		entry.Text = data.Text
		entry.Int = data.IntValue
		entry.Float = data.FloatValue
		entry.Bool = data.BoolValue
		entry.Str = data.StringValue

	case hir.PathData:
		entry.Name = data.Name
		entry.Def = uint32(data.Def)

	case hir.CallData:
		entry.Kids, err = enc.exprList(append([]*hir.Expr{data.Callee}, data.Args...))

	case hir.AddrOfData:
		entry.Mutable = data.Mutable
		entry.Kids, err = enc.exprList([]*hir.Expr{data.Inner})

	case hir.ArrayData:
		entry.Kids, err = enc.exprList(data.Elements)

	case hir.TupleData:
		entry.Kids, err = enc.exprList(data.Elements)

	case hir.StructData:
		entry.Name = data.TypeName
		entry.Fields = make([]FieldEntry, len(data.Fields))
		for i, f := range data.Fields {
			var value uint32
			value, err = enc.expr(f.Value)
			if err != nil {
				break
			}
			entry.Fields[i] = FieldEntry{Name: f.Name, Value: value, Span: flatSpan(f.Span)}
		}

	case hir.MatchData:
		entry.Kids, err = enc.exprList([]*hir.Expr{data.Scrutinee})
		if err != nil {
			break
		}
		entry.Arms = make([]ArmEntry, len(data.Arms))
		for i, a := range data.Arms {
			var body uint32
			body, err = enc.expr(a.Body)
			if err != nil {
				break
			}
			pats := make([]uint32, len(a.Pats))
			for j, p := range a.Pats {
				pats[j], err = enc.pat(p)
				if err != nil {
					break
				}
			}
			if err != nil {
				break
			}
			entry.Arms[i] = ArmEntry{Pats: pats, Body: body, Span: flatSpan(a.Span)}
		}

	case hir.BlockData:
		entry.Kids, err = enc.exprList(data.Stmts)
		if err != nil {
			break
		}
		entry.Tail, err = enc.expr(data.Tail)

	case hir.BinaryData:
		entry.Op = data.Op
		entry.Kids, err = enc.exprList([]*hir.Expr{data.Left, data.Right})

	case nil:
		return 0, fmt.Errorf("%w: expr without payload", ErrCorrupt)

	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownNode, e.Data)
	}
	if err != nil {
		return 0, err
	}

	enc.payload.Exprs = append(enc.payload.Exprs, entry)
	id := uint32(len(enc.payload.Exprs))
	enc.exprIDs[e] = id
	return id, nil
}

func (enc *encoder) exprList(exprs []*hir.Expr) ([]uint32, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	out := make([]uint32, len(exprs))
	for i, e := range exprs {
		id, err := enc.expr(e)
		if err != nil {
			return nil, err
		}
		if id == 0 {
			return nil, fmt.Errorf("%w: nil child expression", ErrCorrupt)
		}
		out[i] = id
	}
	return out, nil
}

func (enc *encoder) pat(p *hir.Pat) (uint32, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: nil pattern", ErrCorrupt)
	}
	if id, ok := enc.patIDs[p]; ok {
		return id, nil
	}

	entry := PatEntry{Kind: uint8(p.Kind), Span: flatSpan(p.Span), Rest: -1}
	switch data := p.Data.(type) {
	case hir.BindingData:
		entry.Name = data.Name
		entry.Def = uint32(data.Def)

	case hir.TuplePatData:
		entry.Rest = int32(data.Rest)
		entry.Elems = make([]uint32, len(data.Elems))
		for i, el := range data.Elems {
			id, err := enc.pat(el)
			if err != nil {
				return 0, err
			}
			entry.Elems[i] = id
		}

	case hir.LiteralPatData:
		entry.Text = data.Text

	case nil:
		// wildcard carries no payload
	}

	enc.payload.Pats = append(enc.payload.Pats, entry)
	id := uint32(len(enc.payload.Pats))
	enc.patIDs[p] = id
	return id, nil
}
