package hir

import (
	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/symbols"
	"github.com/Yoopo/rust-clippy/internal/types"
)

// ExprKind enumerates expression kinds after macro expansion.
type ExprKind uint8

const (
	// ExprLiteral represents literals (int, float, bool, string).
	ExprLiteral ExprKind = iota
	// ExprPath represents a reference to a named definition.
	ExprPath
	// ExprCall represents function or method calls.
	ExprCall
	// ExprAddrOf represents a borrow (&expr or &mut expr).
	ExprAddrOf
	// ExprArray represents array literals ([a, b, c]).
	ExprArray
	// ExprTuple represents tuple literals ((a, b, c)).
	ExprTuple
	// ExprStruct represents struct literals (Type { field: value, ... }).
	ExprStruct
	// ExprMatch represents match expressions.
	ExprMatch
	// ExprBlock represents a block expression { ... }.
	ExprBlock
	// ExprBinary represents binary operators; opaque to the lints shipped
	// here but present in dumps.
	ExprBinary
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprPath:
		return "Path"
	case ExprCall:
		return "Call"
	case ExprAddrOf:
		return "AddrOf"
	case ExprArray:
		return "Array"
	case ExprTuple:
		return "Tuple"
	case ExprStruct:
		return "Struct"
	case ExprMatch:
		return "Match"
	case ExprBlock:
		return "Block"
	case ExprBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Expr represents one expression node with type and origin information.
type Expr struct {
	Kind ExprKind
	Type types.TypeID // Inferred type, NoTypeID when inference gave up
	Span source.Span  // Where this node's text lives
	Expn ExpnID       // Expansion that generated the node, NoExpnID for user code
	Data ExprData     // Kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// LiteralKind enumerates literal value kinds.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralBool
	LiteralStr
)

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Kind        LiteralKind
	Text        string // Raw literal text as written
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}

func (LiteralData) exprData() {}

// PathData holds data for ExprPath. Name is the terminal path segment as
// written; Def is the resolved declaration, NoDefID when resolution failed.
type PathData struct {
	Name string
	Def  symbols.DefID
}

func (PathData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Callee *Expr
	Args   []*Expr
}

func (CallData) exprData() {}

// AddrOfData holds data for ExprAddrOf.
type AddrOfData struct {
	Mutable bool
	Inner   *Expr
}

func (AddrOfData) exprData() {}

// ArrayData holds data for ExprArray.
type ArrayData struct {
	Elements []*Expr
}

func (ArrayData) exprData() {}

// TupleData holds data for ExprTuple.
type TupleData struct {
	Elements []*Expr
}

func (TupleData) exprData() {}

// StructFieldInit represents a field initializer in a struct literal.
type StructFieldInit struct {
	Name  string
	Value *Expr
	Span  source.Span
}

// StructData holds data for ExprStruct.
type StructData struct {
	TypeName string
	Fields   []StructFieldInit
}

func (StructData) exprData() {}

// Field returns the initializer for the named field.
func (d *StructData) Field(name string) (*Expr, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return d.Fields[i].Value, true
		}
	}
	return nil, false
}

// MatchArm represents one arm of a match expression. An arm may carry
// several or-patterns; the shipped lints only ever look at single-pattern
// arms.
type MatchArm struct {
	Pats []*Pat
	Body *Expr
	Span source.Span
}

// MatchData holds data for ExprMatch.
type MatchData struct {
	Scrutinee *Expr
	Arms      []MatchArm
}

func (MatchData) exprData() {}

// BlockData holds data for ExprBlock.
type BlockData struct {
	Stmts []*Expr
	Tail  *Expr // nil when the block ends with a statement
}

func (BlockData) exprData() {}

// BinaryData holds data for ExprBinary.
type BinaryData struct {
	Op    string
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}
