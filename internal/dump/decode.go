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

// Program is a fully rebuilt dump: the live structures every lint pass
// operates on. All cross-references have been validated during decoding.
type Program struct {
	Files  *source.FileSet
	Types  *types.Interner
	Defs   *symbols.Table
	Module *hir.Module
	Tool   string
}

// Decode reads one msgpack payload and rebuilds the program. The returned
// error wraps one of the package sentinels, with enough detail to name the
// offending table entry.
func Decode(r io.Reader) (*Program, error) {
	var p Payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return rebuild(&p)
}

// DecodePayload rebuilds a program from an already parsed payload.
func DecodePayload(p *Payload) (*Program, error) {
	return rebuild(p)
}

func rebuild(p *Payload) (*Program, error) {
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBadSchema, p.Schema, SchemaVersion)
	}

	d := &decoder{payload: p}
	d.program = &Program{
		Files:  source.NewFileSet(),
		Types:  types.NewInterner(),
		Module: hir.NewModule(),
		Tool:   p.Tool,
	}

	for _, step := range []func() error{
		d.strings,
		d.files,
		d.typeTable,
		d.defs,
		d.expns,
		d.exprs,
		d.pats,
		d.fillExprs,
		d.fillPats,
		d.funcs,
	} {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return d.program, nil
}

type decoder struct {
	payload *Payload
	program *Program

	stringIDs []source.StringID
	fileIDs   []source.FileID
	typeIDs   []types.TypeID
	defIDs    []symbols.DefID
	expnIDs   []hir.ExpnID
	exprNodes []*hir.Expr // 1-based, index 0 nil
	patNodes  []*hir.Pat

	// Claim bitmaps for tree-shape enforcement: every expr and pat may be
	// referenced by at most one parent (or one function body). Anything
	// reachable from a Func is therefore a tree, so walking it terminates.
	exprClaimed []bool
	patClaimed  []bool
}

func (d *decoder) strings() error {
	interner := source.NewInterner()
	d.stringIDs = make([]source.StringID, len(d.payload.Strings))
	for i, s := range d.payload.Strings {
		d.stringIDs[i] = interner.Intern(s)
	}
	d.program.Defs = symbols.NewTable(uint(len(d.payload.Defs)), interner)
	return nil
}

func (d *decoder) mapString(ref uint32) (source.StringID, error) {
	if int(ref) >= len(d.stringIDs) {
		return source.NoStringID, fmt.Errorf("%w: string %d of %d", ErrDanglingRef, ref, len(d.stringIDs))
	}
	return d.stringIDs[ref], nil
}

func (d *decoder) mapPath(refs []uint32) ([]source.StringID, error) {
	out := make([]source.StringID, len(refs))
	for i, ref := range refs {
		id, err := d.mapString(ref)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}

func (d *decoder) files() error {
	d.fileIDs = make([]source.FileID, len(d.payload.Files))
	for i, f := range d.payload.Files {
		var flags source.FileFlags
		if f.Virtual {
			flags |= source.FileVirtual
		}
		d.fileIDs[i] = d.program.Files.Add(f.Path, f.Content, flags)
	}
	return nil
}

func (d *decoder) span(e SpanEntry) (source.Span, error) {
	if len(d.fileIDs) == 0 {
		return source.Span{Start: e.Start, End: e.End}, nil
	}
	if int(e.File) >= len(d.fileIDs) {
		return source.Span{}, fmt.Errorf("%w: file %d of %d", ErrDanglingRef, e.File, len(d.fileIDs))
	}
	return source.Span{File: d.fileIDs[e.File], Start: e.Start, End: e.End}, nil
}

func (d *decoder) typeTable() error {
	in := d.program.Types
	d.typeIDs = make([]types.TypeID, len(d.payload.Types)+1)
	for i, e := range d.payload.Types {
		wire := uint32(i + 1)
		kind := types.Kind(e.Kind)
		if kind > types.KindNominal {
			return fmt.Errorf("%w: type kind %d", ErrUnknownNode, e.Kind)
		}
		// Element references only ever point backwards; the frontend dumps
		// the type table in dependency order.
		if e.Elem >= wire {
			return fmt.Errorf("%w: type %d references element %d", ErrDanglingRef, wire, e.Elem)
		}

		if kind == types.KindNominal {
			path, err := d.mapPath(e.Path)
			if err != nil {
				return err
			}
			decl, err := d.span(e.Decl)
			if err != nil {
				return err
			}
			d.typeIDs[wire] = in.RegisterNominal(path, decl)
			continue
		}
		d.typeIDs[wire] = in.Intern(types.Type{
			Kind:    kind,
			Elem:    d.typeIDs[e.Elem],
			Count:   e.Count,
			Width:   types.Width(e.Width),
			Mutable: e.Mutable,
		})
	}
	return nil
}

func (d *decoder) mapType(ref uint32) (types.TypeID, error) {
	if int(ref) >= len(d.typeIDs) {
		return types.NoTypeID, fmt.Errorf("%w: type %d of %d", ErrDanglingRef, ref, len(d.typeIDs)-1)
	}
	return d.typeIDs[ref], nil
}

func (d *decoder) defs() error {
	tbl := d.program.Defs
	d.defIDs = make([]symbols.DefID, len(d.payload.Defs)+1)
	for i, e := range d.payload.Defs {
		kind := symbols.DefKind(e.Kind)
		if kind > symbols.DefBinding {
			return fmt.Errorf("%w: def kind %d", ErrUnknownNode, e.Kind)
		}
		path, err := d.mapPath(e.Path)
		if err != nil {
			return err
		}
		decl, err := d.span(e.Decl)
		if err != nil {
			return err
		}
		typ, err := d.mapType(e.Type)
		if err != nil {
			return err
		}
		d.defIDs[i+1] = tbl.NewDef(kind, path, decl, typ)
	}
	return nil
}

func (d *decoder) mapDef(ref uint32) (symbols.DefID, error) {
	if int(ref) >= len(d.defIDs) {
		return symbols.NoDefID, fmt.Errorf("%w: def %d of %d", ErrDanglingRef, ref, len(d.defIDs)-1)
	}
	return d.defIDs[ref], nil
}

func (d *decoder) expns() error {
	table := d.program.Module.Expns
	d.expnIDs = make([]hir.ExpnID, len(d.payload.Expns)+1)
	for i, e := range d.payload.Expns {
		wire := uint32(i + 1)
		if e.Parent >= wire {
			return fmt.Errorf("%w: expansion %d references parent %d", ErrDanglingRef, wire, e.Parent)
		}
		site, err := d.span(e.CallSite)
		if err != nil {
			return err
		}
		d.expnIDs[wire] = table.New(e.Macro, site, d.expnIDs[e.Parent])
	}
	return nil
}

// exprs allocates every node up front so child references may point in any
// direction; fillExprs wires the payloads once the whole table exists.
func (d *decoder) exprs() error {
	d.exprNodes = make([]*hir.Expr, len(d.payload.Exprs)+1)
	d.exprClaimed = make([]bool, len(d.payload.Exprs)+1)
	for i, e := range d.payload.Exprs {
		kind := hir.ExprKind(e.Kind)
		if kind > hir.ExprBinary {
			return fmt.Errorf("%w: expr %d kind %d", ErrUnknownNode, i+1, e.Kind)
		}
		typ, err := d.mapType(e.Type)
		if err != nil {
			return err
		}
		span, err := d.span(e.Span)
		if err != nil {
			return err
		}
		if int(e.Expn) >= len(d.expnIDs) {
			return fmt.Errorf("%w: expr %d expansion %d", ErrDanglingRef, i+1, e.Expn)
		}
		d.exprNodes[i+1] = &hir.Expr{
			Kind: kind,
			Type: typ,
			Span: span,
			Expn: d.expnIDs[e.Expn],
		}
	}
	return nil
}

func (d *decoder) pats() error {
	d.patNodes = make([]*hir.Pat, len(d.payload.Pats)+1)
	d.patClaimed = make([]bool, len(d.payload.Pats)+1)
	for i, e := range d.payload.Pats {
		kind := hir.PatKind(e.Kind)
		if kind > hir.PatLiteral {
			return fmt.Errorf("%w: pat %d kind %d", ErrUnknownNode, i+1, e.Kind)
		}
		span, err := d.span(e.Span)
		if err != nil {
			return err
		}
		d.patNodes[i+1] = &hir.Pat{Kind: kind, Span: span}
	}
	return nil
}

// expr resolves a required child reference.
// expr resolves a child reference and claims the node for its parent.
// A node claimed twice means the table encodes a shared or cyclic shape
// instead of a tree; that payload is rejected rather than handed to a walk
// that would never terminate.
func (d *decoder) expr(ref uint32) (*hir.Expr, error) {
	if ref == 0 || int(ref) >= len(d.exprNodes) {
		return nil, fmt.Errorf("%w: expr %d of %d", ErrDanglingRef, ref, len(d.exprNodes)-1)
	}
	if d.exprClaimed[ref] {
		return nil, fmt.Errorf("%w: expr %d referenced by two parents", ErrCorrupt, ref)
	}
	d.exprClaimed[ref] = true
	return d.exprNodes[ref], nil
}

func (d *decoder) exprList(refs []uint32) ([]*hir.Expr, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]*hir.Expr, len(refs))
	for i, ref := range refs {
		e, err := d.expr(ref)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (d *decoder) pat(ref uint32) (*hir.Pat, error) {
	if ref == 0 || int(ref) >= len(d.patNodes) {
		return nil, fmt.Errorf("%w: pat %d of %d", ErrDanglingRef, ref, len(d.patNodes)-1)
	}
	if d.patClaimed[ref] {
		return nil, fmt.Errorf("%w: pat %d referenced by two parents", ErrCorrupt, ref)
	}
	d.patClaimed[ref] = true
	return d.patNodes[ref], nil
}

func (d *decoder) fillExprs() error {
	for i, e := range d.payload.Exprs {
		node := d.exprNodes[i+1]
		data, err := d.exprData(node.Kind, e)
		if err != nil {
			return fmt.Errorf("expr %d: %w", i+1, err)
		}
		node.Data = data
	}
	return nil
}

func (d *decoder) exprData(kind hir.ExprKind, e ExprEntry) (hir.ExprData, error) {
	switch kind {
	case hir.ExprLiteral:
		if hir.LiteralKind(e.LitKind) > hir.LiteralStr {
			return nil, fmt.Errorf("%w: literal kind %d", ErrUnknownNode, e.LitKind)
		}
		return hir.LiteralData{
			Kind:        hir.LiteralKind(e.LitKind),
			Text:        e.Text,
			IntValue:    e.Int,
			FloatValue:  e.Float,
			BoolValue:   e.Bool,
			StringValue: e.Str,
		}, nil

	case hir.ExprPath:
		def, err := d.mapDef(e.Def)
		if err != nil {
			return nil, err
		}
		return hir.PathData{Name: e.Name, Def: def}, nil

	case hir.ExprCall:
		if len(e.Kids) < 1 {
			return nil, fmt.Errorf("%w: call without callee", ErrCorrupt)
		}
		kids, err := d.exprList(e.Kids)
		if err != nil {
			return nil, err
		}
		return hir.CallData{Callee: kids[0], Args: kids[1:]}, nil

	case hir.ExprAddrOf:
		if len(e.Kids) != 1 {
			return nil, fmt.Errorf("%w: addr-of with %d children", ErrCorrupt, len(e.Kids))
		}
		inner, err := d.expr(e.Kids[0])
		if err != nil {
			return nil, err
		}
		return hir.AddrOfData{Mutable: e.Mutable, Inner: inner}, nil

	case hir.ExprArray:
		els, err := d.exprList(e.Kids)
		if err != nil {
			return nil, err
		}
		return hir.ArrayData{Elements: els}, nil

	case hir.ExprTuple:
		els, err := d.exprList(e.Kids)
		if err != nil {
			return nil, err
		}
		return hir.TupleData{Elements: els}, nil

	case hir.ExprStruct:
		fields := make([]hir.StructFieldInit, len(e.Fields))
		for i, f := range e.Fields {
			value, err := d.expr(f.Value)
			if err != nil {
				return nil, err
			}
			span, err := d.span(f.Span)
			if err != nil {
				return nil, err
			}
			fields[i] = hir.StructFieldInit{Name: f.Name, Value: value, Span: span}
		}
		return hir.StructData{TypeName: e.Name, Fields: fields}, nil

	case hir.ExprMatch:
		if len(e.Kids) != 1 {
			return nil, fmt.Errorf("%w: match with %d scrutinees", ErrCorrupt, len(e.Kids))
		}
		scrut, err := d.expr(e.Kids[0])
		if err != nil {
			return nil, err
		}
		arms := make([]hir.MatchArm, len(e.Arms))
		for i, a := range e.Arms {
			body, err := d.expr(a.Body)
			if err != nil {
				return nil, err
			}
			span, err := d.span(a.Span)
			if err != nil {
				return nil, err
			}
			pats := make([]*hir.Pat, len(a.Pats))
			for j, ref := range a.Pats {
				p, err := d.pat(ref)
				if err != nil {
					return nil, err
				}
				pats[j] = p
			}
			arms[i] = hir.MatchArm{Pats: pats, Body: body, Span: span}
		}
		return hir.MatchData{Scrutinee: scrut, Arms: arms}, nil

	case hir.ExprBlock:
		stmts, err := d.exprList(e.Kids)
		if err != nil {
			return nil, err
		}
		var tail *hir.Expr
		if e.Tail != 0 {
			tail, err = d.expr(e.Tail)
			if err != nil {
				return nil, err
			}
		}
		return hir.BlockData{Stmts: stmts, Tail: tail}, nil

	case hir.ExprBinary:
		if len(e.Kids) != 2 {
			return nil, fmt.Errorf("%w: binary with %d operands", ErrCorrupt, len(e.Kids))
		}
		kids, err := d.exprList(e.Kids)
		if err != nil {
			return nil, err
		}
		return hir.BinaryData{Op: e.Op, Left: kids[0], Right: kids[1]}, nil
	}
	return nil, fmt.Errorf("%w: expr kind %d", ErrUnknownNode, kind)
}

func (d *decoder) fillPats() error {
	for i, e := range d.payload.Pats {
		node := d.patNodes[i+1]
		switch node.Kind {
		case hir.PatWild:
			// no payload

		case hir.PatBinding:
			def, err := d.mapDef(e.Def)
			if err != nil {
				return err
			}
			node.Data = hir.BindingData{Name: e.Name, Def: def}

		case hir.PatTuple:
			elems := make([]*hir.Pat, len(e.Elems))
			for j, ref := range e.Elems {
				p, err := d.pat(ref)
				if err != nil {
					return err
				}
				elems[j] = p
			}
			node.Data = hir.TuplePatData{Elems: elems, Rest: int(e.Rest)}

		case hir.PatLiteral:
			node.Data = hir.LiteralPatData{Text: e.Text}
		}
	}
	return nil
}

func (d *decoder) funcs() error {
	m := d.program.Module
	m.Funcs = make([]hir.Func, 0, len(d.payload.Funcs))
	for _, f := range d.payload.Funcs {
		if len(d.fileIDs) == 0 || int(f.File) >= len(d.fileIDs) {
			return fmt.Errorf("%w: func %q file %d", ErrDanglingRef, f.Name, f.File)
		}
		span, err := d.span(f.Span)
		if err != nil {
			return err
		}
		var body *hir.Expr
		if f.Body != 0 {
			body, err = d.expr(f.Body)
			if err != nil {
				return err
			}
		}
		m.Funcs = append(m.Funcs, hir.Func{
			Name: f.Name,
			File: d.fileIDs[f.File],
			Span: span,
			Body: body,
		})
	}
	return nil
}
