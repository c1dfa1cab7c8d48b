package hir

import (
	"testing"

	"github.com/Yoopo/rust-clippy/internal/source"
)

func TestExpansions_Find(t *testing.T) {
	exps := NewExpansions(4)
	formatSite := source.Span{File: 1, Start: 10, End: 40}
	outerSite := source.Span{File: 1, Start: 5, End: 60}

	direct := exps.New("format", formatSite, NoExpnID)
	outer := exps.New("my_macro", outerSite, NoExpnID)
	nested := exps.New("format", formatSite, outer)

	tests := []struct {
		name     string
		id       ExpnID
		macro    string
		expected ExpnID
		ok       bool
	}{
		{"direct hit", direct, "format", direct, true},
		{"wrong macro name", direct, "println", NoExpnID, false},
		{"user code has no expansion", NoExpnID, "format", NoExpnID, false},
		{"walks outwards through chain", nested, "my_macro", outer, true},
		{"nested format found first", nested, "format", nested, true},
		{"unknown id", ExpnID(99), "format", NoExpnID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := exps.Find(tt.id, tt.macro)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("Find(%d, %q) = (%d, %v), want (%d, %v)",
					tt.id, tt.macro, got, ok, tt.expected, tt.ok)
			}
		})
	}

	if got := exps.CallSite(direct); got != formatSite {
		t.Errorf("CallSite(direct) = %v, want %v", got, formatSite)
	}
	if got := exps.CallSite(NoExpnID); got != (source.Span{}) {
		t.Errorf("CallSite(NoExpnID) = %v, want zero span", got)
	}
}

func TestExpansions_InMacro(t *testing.T) {
	exps := NewExpansions(4)
	outer := exps.New("my_macro", source.Span{File: 1, Start: 0, End: 80}, NoExpnID)
	direct := exps.New("format", source.Span{File: 1, Start: 10, End: 40}, NoExpnID)
	nested := exps.New("format", source.Span{File: 1, Start: 20, End: 50}, outer)

	if exps.InMacro(direct) {
		t.Errorf("directly written invocation must not report InMacro")
	}
	if !exps.InMacro(nested) {
		t.Errorf("invocation generated by another macro must report InMacro")
	}
	if exps.InMacro(NoExpnID) {
		t.Errorf("NoExpnID must not report InMacro")
	}
}

func TestWalk_VisitsEveryNode(t *testing.T) {
	// &match (x,) { (a,) => [f(a)] } plus a struct literal in the tail.
	arg := &Expr{Kind: ExprPath, Data: PathData{Name: "x"}}
	callee := &Expr{Kind: ExprPath, Data: PathData{Name: "f"}}
	bound := &Expr{Kind: ExprPath, Data: PathData{Name: "a"}}
	call := &Expr{Kind: ExprCall, Data: CallData{Callee: callee, Args: []*Expr{bound}}}
	arr := &Expr{Kind: ExprArray, Data: ArrayData{Elements: []*Expr{call}}}
	scrut := &Expr{Kind: ExprTuple, Data: TupleData{Elements: []*Expr{arg}}}
	match := &Expr{Kind: ExprMatch, Data: MatchData{
		Scrutinee: scrut,
		Arms:      []MatchArm{{Body: arr}},
	}}
	root := &Expr{Kind: ExprAddrOf, Data: AddrOfData{Inner: match}}

	if got := CountExprs(root); got != 8 {
		t.Errorf("CountExprs = %d, want 8", got)
	}

	// Top-down: parent before child.
	var order []ExprKind
	Walk(root, func(e *Expr) { order = append(order, e.Kind) })
	if order[0] != ExprAddrOf || order[1] != ExprMatch {
		t.Errorf("unexpected visit order: %v", order)
	}
}
