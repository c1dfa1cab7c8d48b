package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Yoopo/rust-clippy/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics into a stable,
// single-line-per-entry representation suitable for golden files.
// Synthetic files (paths wrapped in angle brackets) are dropped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatDiagnostics(diags, fs, includeNotes, true)
}

// FormatShortDiagnostics renders diagnostics into a stable,
// single-line-per-entry representation intended for CLI short output.
// Synthetic paths are kept.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return formatDiagnostics(diags, fs, includeNotes, false)
}

func formatDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes, skipSynthetic bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], fs, includeNotes, skipSynthetic)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var sb strings.Builder
	for _, d := range rendered {
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", d.Path, d.Line, d.Column, d.Severity, d.Code, d.Message)
	}
	return sb.String()
}

func appendDiagnostic(out []shortDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes, skipSynthetic bool) []shortDiagnostic {
	path := "<unknown>"
	if f := fs.Get(d.Primary.File); f != nil {
		path = f.Path
	}
	if skipSynthetic && strings.HasPrefix(path, "<") {
		return out
	}
	start, _ := fs.Resolve(d.Primary)
	out = append(out, shortDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     start.Line,
		Column:   start.Col,
		Message:  d.Message,
	})
	if includeNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			notePath := "<unknown>"
			if f := fs.Get(n.Span.File); f != nil {
				notePath = f.Path
			}
			out = append(out, shortDiagnostic{
				Severity: "NOTE",
				Code:     d.Code.ID(),
				Path:     notePath,
				Line:     nStart.Line,
				Column:   nStart.Col,
				Message:  n.Msg,
			})
		}
	}
	return out
}
