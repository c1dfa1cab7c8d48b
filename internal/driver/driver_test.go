package driver

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/dump"
	"github.com/Yoopo/rust-clippy/internal/hir"
	"github.com/Yoopo/rust-clippy/internal/lint"
	"github.com/Yoopo/rust-clippy/internal/project"
	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/symbols"
	"github.com/Yoopo/rust-clippy/internal/testkit"
	"github.com/Yoopo/rust-clippy/internal/types"
)

// testProgram builds one file per requested function. Offending functions
// contain the canonical single-substitution `format!` expansion; clean ones
// hold an unrelated literal.
func testProgram(t *testing.T, offending ...bool) *dump.Program {
	t.Helper()

	prog := &dump.Program{
		Files:  source.NewFileSet(),
		Types:  types.NewInterner(),
		Module: hir.NewModule(),
	}
	prog.Defs = symbols.NewTable(16, nil)

	newV1 := prog.Defs.NewItemDef(symbols.DefFunction, "core", "fmt", "Arguments", "new_v1_formatted")
	display := prog.Defs.NewItemDef(symbols.DefMethod, "core", "fmt", "Display", "fmt")
	refStr := prog.Types.Intern(types.MakeReference(prog.Types.Builtins().Str, false))

	for i, bad := range offending {
		//                          0         1         2
		//                          0123456789012345678901234567
		src := []byte(`let s = format!("{}", foo);`)
		file := prog.Files.AddVirtual(fmt.Sprintf("src/f%d.rs", i), src)

		var body *hir.Expr
		if bad {
			callSpan := source.Span{File: file, Start: 8, End: 26}
			argSpan := source.Span{File: file, Start: 22, End: 25}
			expn := prog.Module.Expns.New("format", callSpan, hir.NoExpnID)
			binding := prog.Defs.NewBinding("__arg0", argSpan, refStr)

			body = &hir.Expr{
				Kind: hir.ExprCall,
				Span: callSpan,
				Expn: expn,
				Data: hir.CallData{
					Callee: &hir.Expr{Kind: hir.ExprPath, Expn: expn, Data: hir.PathData{Name: "new_v1_formatted", Def: newV1}},
					Args: []*hir.Expr{
						{Kind: hir.ExprAddrOf, Expn: expn, Data: hir.AddrOfData{Inner: &hir.Expr{
							Kind: hir.ExprArray,
							Expn: expn,
							Data: hir.ArrayData{Elements: []*hir.Expr{{
								Kind: hir.ExprLiteral, Expn: expn,
								Data: hir.LiteralData{Kind: hir.LiteralStr, StringValue: ""},
							}}},
						}}},
						{Kind: hir.ExprAddrOf, Expn: expn, Data: hir.AddrOfData{Inner: &hir.Expr{
							Kind: hir.ExprMatch,
							Expn: expn,
							Data: hir.MatchData{
								Scrutinee: &hir.Expr{Kind: hir.ExprTuple, Expn: expn, Data: hir.TupleData{Elements: []*hir.Expr{{
									Kind: hir.ExprPath, Span: argSpan, Data: hir.PathData{Name: "foo"},
								}}}},
								Arms: []hir.MatchArm{{
									Pats: []*hir.Pat{{
										Kind: hir.PatTuple,
										Data: hir.TuplePatData{
											Elems: []*hir.Pat{{Kind: hir.PatBinding, Data: hir.BindingData{Name: "__arg0", Def: binding}}},
											Rest:  -1,
										},
									}},
									Body: &hir.Expr{Kind: hir.ExprArray, Expn: expn, Data: hir.ArrayData{Elements: []*hir.Expr{{
										Kind: hir.ExprCall,
										Expn: expn,
										Data: hir.CallData{
											Callee: &hir.Expr{Kind: hir.ExprPath, Expn: expn, Data: hir.PathData{Name: "new"}},
											Args: []*hir.Expr{
												{Kind: hir.ExprPath, Expn: expn, Data: hir.PathData{Name: "__arg0"}},
												{Kind: hir.ExprPath, Expn: expn, Data: hir.PathData{Name: "fmt", Def: display}},
											},
										},
									}}}},
								}},
							},
						}}},
						{Kind: hir.ExprAddrOf, Expn: expn, Data: hir.AddrOfData{Inner: &hir.Expr{
							Kind: hir.ExprArray,
							Expn: expn,
							Data: hir.ArrayData{Elements: []*hir.Expr{{
								Kind: hir.ExprStruct,
								Expn: expn,
								Data: hir.StructData{TypeName: "Argument", Fields: []hir.StructFieldInit{{
									Name: "format",
									Value: &hir.Expr{Kind: hir.ExprStruct, Expn: expn, Data: hir.StructData{
										TypeName: "FormatSpec",
										Fields: []hir.StructFieldInit{{
											Name:  "width",
											Value: &hir.Expr{Kind: hir.ExprPath, Expn: expn, Data: hir.PathData{Name: "Implied"}},
										}},
									}},
								}}},
							}}},
						}}},
					},
				},
			}
		} else {
			body = &hir.Expr{
				Kind: hir.ExprLiteral,
				Span: source.Span{File: file, Start: 8, End: 26},
				Data: hir.LiteralData{Kind: hir.LiteralInt, IntValue: 42},
			}
		}

		prog.Module.Funcs = append(prog.Module.Funcs, hir.Func{
			Name: fmt.Sprintf("f%d", i),
			File: file,
			Span: source.Span{File: file, Start: 0, End: uint32(len(src))},
			Body: body,
		})
	}
	return prog
}

func TestRun_FindsUselessFormat(t *testing.T) {
	prog := testProgram(t, true, false)
	if err := testkit.CheckProgramInvariants(prog); err != nil {
		t.Fatalf("fixture invariants: %v", err)
	}

	res, err := Run(context.Background(), prog, lint.Default(), Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Funcs != 2 || res.Exprs == 0 {
		t.Errorf("Funcs=%d Exprs=%d", res.Funcs, res.Exprs)
	}
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(items))
	}
	d := items[0]
	if d.Code != diag.LintUselessFormat {
		t.Errorf("code = %v", d.Code)
	}
	if got := prog.Files.Snippet(d.Primary, "?"); got != `format!("{}", foo)` {
		t.Errorf("primary snippet = %q", got)
	}
}

func TestRun_DeterministicOrder(t *testing.T) {
	prog := testProgram(t, true, true, true)

	var want []diag.Diagnostic
	for run := 0; run < 4; run++ {
		res, err := Run(context.Background(), prog, lint.Default(), Options{Jobs: 3})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		items := res.Bag.Items()
		if len(items) != 3 {
			t.Fatalf("diagnostics = %d, want 3", len(items))
		}
		for i := 1; i < len(items); i++ {
			if items[i-1].Primary.File > items[i].Primary.File {
				t.Fatalf("out of order: %v after %v", items[i].Primary, items[i-1].Primary)
			}
		}
		if run == 0 {
			want = items
			continue
		}
		for i := range items {
			if items[i].Primary != want[i].Primary {
				t.Fatalf("run %d differs at %d", run, i)
			}
		}
	}
}

func TestRun_ConfigAllow(t *testing.T) {
	prog := testProgram(t, true)
	cfg := project.DefaultConfig()
	cfg.Lints["useless_format"] = project.LintLevel{Enabled: false}

	res, err := Run(context.Background(), prog, lint.Default(), Options{Config: cfg})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("diagnostics = %d, want 0", res.Bag.Len())
	}
	if len(res.Disabled) != 1 || res.Disabled[0] != "useless_format" {
		t.Errorf("Disabled = %v", res.Disabled)
	}
}

func TestRun_ConfigDeny(t *testing.T) {
	prog := testProgram(t, true)
	cfg := project.DefaultConfig()
	cfg.Lints["useless_format"] = project.LintLevel{Enabled: true, Severity: diag.SevError}

	res, err := Run(context.Background(), prog, lint.Default(), Options{Config: cfg})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Severity != diag.SevError {
		t.Fatalf("items = %+v, want one error", items)
	}
	if !res.Bag.HasErrors() {
		t.Errorf("HasErrors must be true after a deny override")
	}
}

func TestRun_MaxDiagnostics(t *testing.T) {
	prog := testProgram(t, true, true, true)

	res, err := Run(context.Background(), prog, lint.Default(), Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Bag.Len() != 2 {
		t.Errorf("diagnostics = %d, want 2", res.Bag.Len())
	}
}

func TestRun_Progress(t *testing.T) {
	prog := testProgram(t, true, false)

	var mu sync.Mutex
	var events []Progress
	_, err := Run(context.Background(), prog, lint.Default(), Options{
		Progress: func(ev Progress) {
			mu.Lock()
			events = append(events, ev)
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	findings := 0
	for _, ev := range events {
		if ev.Total != 2 || ev.Path == "" || ev.Func == "" {
			t.Errorf("bad event %+v", ev)
		}
		findings += ev.Findings
	}
	if findings != 1 {
		t.Errorf("findings over events = %d, want 1", findings)
	}
}

func TestRun_Canceled(t *testing.T) {
	prog := testProgram(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, prog, lint.Default(), Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRunFile_MissingDump(t *testing.T) {
	_, _, err := RunFile(context.Background(), "no/such/dump.mp", lint.Default(), Options{})
	if err == nil {
		t.Fatalf("expected error")
	}
}
