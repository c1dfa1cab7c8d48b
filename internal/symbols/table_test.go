package symbols

import (
	"testing"

	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/types"
)

func TestTable_NewItemDef(t *testing.T) {
	tbl := NewTable(8, nil)

	id := tbl.NewItemDef(DefFunction, "core", "fmt", "Arguments", "new_v1_formatted")
	if !id.IsValid() {
		t.Fatalf("expected valid DefID")
	}

	d := tbl.Get(id)
	if d == nil || d.Kind != DefFunction {
		t.Fatalf("Get(%d) = %+v", id, d)
	}
	if got := tbl.SimpleName(id); got != "new_v1_formatted" {
		t.Errorf("SimpleName = %q, want new_v1_formatted", got)
	}
}

func TestTable_MatchPath(t *testing.T) {
	tbl := NewTable(8, nil)
	display := tbl.NewItemDef(DefMethod, "core", "fmt", "Display", "fmt")

	tests := []struct {
		name     string
		id       DefID
		want     []string
		expected bool
	}{
		{
			name:     "exact match",
			id:       display,
			want:     []string{"core", "fmt", "Display", "fmt"},
			expected: true,
		},
		{
			name:     "wrong terminal segment",
			id:       display,
			want:     []string{"core", "fmt", "Display", "fmt_debug"},
			expected: false,
		},
		{
			name:     "length mismatch",
			id:       display,
			want:     []string{"fmt", "Display", "fmt"},
			expected: false,
		},
		{
			name:     "invalid id",
			id:       NoDefID,
			want:     []string{"core"},
			expected: false,
		},
		{
			name:     "out of range id",
			id:       DefID(9999),
			want:     []string{"core"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.MatchPath(tt.id, tt.want); got != tt.expected {
				t.Errorf("MatchPath(%d, %v) = %v, want %v", tt.id, tt.want, got, tt.expected)
			}
		})
	}
}

func TestTable_Bindings(t *testing.T) {
	tbl := NewTable(4, nil)
	ti := types.NewInterner()
	refStr := ti.Intern(types.MakeReference(ti.Builtins().Str, false))

	b := tbl.NewBinding("__arg0", source.Span{File: 1, Start: 10, End: 16}, refStr)
	if tbl.DefType(b) != refStr {
		t.Errorf("DefType = %d, want %d", tbl.DefType(b), refStr)
	}
	if tbl.SimpleName(b) != "__arg0" {
		t.Errorf("SimpleName = %q, want __arg0", tbl.SimpleName(b))
	}
	if tbl.DefType(NoDefID) != types.NoTypeID {
		t.Errorf("DefType(NoDefID) must be NoTypeID")
	}
}
