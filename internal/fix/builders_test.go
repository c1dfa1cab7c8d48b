package fix

import (
	"testing"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/source"
)

func TestReplaceSpan(t *testing.T) {
	span := source.Span{File: 1, Start: 4, End: 22}
	f := ReplaceSpan("consider using .to_string()", span, `"hello".to_string()`, `format!("hello")`)

	if f.Title != "consider using .to_string()" {
		t.Errorf("Title = %q", f.Title)
	}
	if f.Kind != diag.FixKindQuickFix {
		t.Errorf("Kind = %v, want quick fix", f.Kind)
	}
	if f.Applicability != diag.FixApplicabilityAlwaysSafe {
		t.Errorf("Applicability = %v, want always safe", f.Applicability)
	}
	if len(f.Edits) != 1 {
		t.Fatalf("Edits = %d, want 1", len(f.Edits))
	}
	edit := f.Edits[0]
	if edit.Span != span || edit.NewText != `"hello".to_string()` || edit.OldText != `format!("hello")` {
		t.Errorf("unexpected edit: %+v", edit)
	}
}

func TestBuilderOptions(t *testing.T) {
	span := source.Span{File: 1, Start: 0, End: 3}
	f := ReplaceSpan("title", span, "new", "",
		Preferred(),
		WithID("LNT5001-fix"),
		WithKind(diag.FixKindRefactorRewrite),
		WithApplicability(diag.FixApplicabilityManualReview),
	)

	if !f.IsPreferred {
		t.Errorf("expected preferred fix")
	}
	if f.ID != "LNT5001-fix" {
		t.Errorf("ID = %q", f.ID)
	}
	if f.Kind != diag.FixKindRefactorRewrite {
		t.Errorf("Kind = %v", f.Kind)
	}
	if f.Applicability != diag.FixApplicabilityManualReview {
		t.Errorf("Applicability = %v", f.Applicability)
	}
}

func TestInsertAndDelete(t *testing.T) {
	at := source.Span{File: 2, Start: 7, End: 7}
	ins := InsertText("insert", at, ".to_string()", "")
	if len(ins.Edits) != 1 || ins.Edits[0].NewText != ".to_string()" {
		t.Errorf("unexpected insert fix: %+v", ins)
	}

	del := DeleteSpan("delete", source.Span{File: 2, Start: 0, End: 7}, "format!")
	if len(del.Edits) != 1 || del.Edits[0].NewText != "" || del.Edits[0].OldText != "format!" {
		t.Errorf("unexpected delete fix: %+v", del)
	}
}

func TestWrapWith(t *testing.T) {
	span := source.Span{File: 1, Start: 5, End: 10}
	f := WrapWith("wrap", span, "(", ")")

	if len(f.Edits) != 2 {
		t.Fatalf("Edits = %d, want 2", len(f.Edits))
	}
	if !f.Edits[0].Span.Empty() || f.Edits[0].Span.Start != 5 {
		t.Errorf("prefix edit span = %v", f.Edits[0].Span)
	}
	if !f.Edits[1].Span.Empty() || f.Edits[1].Span.Start != 10 {
		t.Errorf("suffix edit span = %v", f.Edits[1].Span)
	}
	if f.Applicability != diag.FixApplicabilitySafeWithHeuristics {
		t.Errorf("Applicability = %v", f.Applicability)
	}
}
