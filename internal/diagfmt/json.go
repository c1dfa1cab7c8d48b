package diagfmt

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/source"
)

// LocationJSON is a span rendered for JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary message for JSON output.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON is a single text edit for JSON output.
type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	OldText     string       `json:"old_text,omitempty"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

// FixJSON is a suggested correction for JSON output.
type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Kind          string        `json:"kind"`
	Applicability string        `json:"applicability"`
	IsPreferred   bool          `json:"is_preferred,omitempty"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON is one finding in JSON form.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Name     string       `json:"name"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the JSON document root.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		File:      formatPath(fs, span.File, opts.PathMode, opts.BaseDir),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if opts.IncludePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput assembles the JSON document without serializing.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := range maxItems {
		d := items[i]
		out := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Name:     d.Code.Title(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fs, opts),
		}

		if opts.IncludeNotes && len(d.Notes) > 0 {
			out.Notes = make([]NoteJSON, len(d.Notes))
			for j, note := range d.Notes {
				out.Notes[j] = NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(note.Span, fs, opts),
				}
			}
		}

		if opts.IncludeFixes && len(d.Fixes) > 0 {
			out.Fixes = buildFixes(d.Fixes, fs, opts)
		}
		diagnostics = append(diagnostics, out)
	}

	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

func buildFixes(in []diag.Fix, fs *source.FileSet, opts JSONOpts) []FixJSON {
	fixes := append([]diag.Fix(nil), in...)
	sort.SliceStable(fixes, func(i, j int) bool {
		fi, fj := fixes[i], fixes[j]
		if fi.IsPreferred != fj.IsPreferred {
			return fi.IsPreferred
		}
		if fi.Applicability != fj.Applicability {
			return fi.Applicability < fj.Applicability
		}
		if fi.Kind != fj.Kind {
			return fi.Kind < fj.Kind
		}
		if fi.Title != fj.Title {
			return fi.Title < fj.Title
		}
		return fi.ID < fj.ID
	})

	out := make([]FixJSON, 0, len(fixes))
	for _, f := range fixes {
		fj := FixJSON{
			ID:            f.ID,
			Title:         f.Title,
			Kind:          f.Kind.String(),
			Applicability: f.Applicability.String(),
			IsPreferred:   f.IsPreferred,
		}
		for _, edit := range f.Edits {
			ej := FixEditJSON{
				Location: makeLocation(edit.Span, fs, opts),
				NewText:  edit.NewText,
				OldText:  edit.OldText,
			}
			if opts.IncludePreviews {
				if preview, err := buildFixEditPreview(fs, edit); err == nil {
					ej.BeforeLines = preview.before
					ej.AfterLines = preview.after
				}
			}
			fj.Edits = append(fj.Edits, ej)
		}
		out = append(out, fj)
	}
	return out
}

// JSON serializes the bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(bag, fs, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
