package diagfmt

import (
	"strings"
	"testing"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	//                              0         1         2
	//                              0123456789012345678901234567
	file := fs.AddVirtual("main.rs", []byte(`let s = format!("{}", foo);`))

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LintUselessFormat,
		Message:  "useless use of `format!`",
		Primary:  source.Span{File: file, Start: 8, End: 26},
		Notes: []diag.Note{{
			Span: source.Span{File: file, Start: 22, End: 25},
			Msg:  "consider using .to_string()",
		}},
		Fixes: []diag.Fix{{
			Title:       "consider using .to_string()",
			IsPreferred: true,
			Edits: []diag.TextEdit{{
				Span:    source.Span{File: file, Start: 8, End: 26},
				NewText: "foo.to_string()",
			}},
		}},
	})
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := testBag(t)

	var sb strings.Builder
	err := Pretty(&sb, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	if err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	got := sb.String()

	wantLines := []string{
		"main.rs:1:9: WARNING LNT5001: useless use of `format!`",
		`    let s = format!("{}", foo);`,
		"    " + strings.Repeat(" ", 8) + "^" + strings.Repeat("~", 17),
		"  note: consider using .to_string() (main.rs:1:23)",
		"  fix: consider using .to_string(): `foo.to_string()` (preferred)",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want+"\n") {
			t.Errorf("output missing %q\ngot:\n%s", want, got)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("color escapes present without Color option:\n%q", got)
	}
}

func TestPretty_NoNotesNoFixes(t *testing.T) {
	bag, fs := testBag(t)

	var sb strings.Builder
	if err := Pretty(&sb, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	got := sb.String()
	if strings.Contains(got, "note:") || strings.Contains(got, "fix:") {
		t.Errorf("notes/fixes rendered when disabled:\n%s", got)
	}
	if !strings.Contains(got, "main.rs:1:9:") {
		t.Errorf("header missing:\n%s", got)
	}
}

func TestShort(t *testing.T) {
	bag, fs := testBag(t)

	var sb strings.Builder
	if err := Short(&sb, bag, fs, false); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "main.rs:1:9: WARNING LNT5001: useless use of `format!`\n"
	if sb.String() != want {
		t.Errorf("Short = %q, want %q", sb.String(), want)
	}
}
