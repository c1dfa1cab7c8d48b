package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.Faint)
	caretColor   = color.New(color.FgGreen, color.Bold)
	fixColor     = color.New(color.FgGreen)
)

// Pretty renders diagnostics in an annotated, human-readable form. The bag
// is expected to be sorted already. Each diagnostic prints a header
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the offending source line with a caret underline, then notes
// and fix suggestions when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	for _, d := range bag.Items() {
		if err := prettyOne(w, &d, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	start, _ := fs.Resolve(d.Primary)
	path := formatPath(fs, d.Primary.File, opts.PathMode, opts.BaseDir)

	sev := paint(severityColor(d.Severity), d.Severity.String(), opts.Color)
	code := paint(codeColor, d.Code.ID(), opts.Color)
	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, d.Message); err != nil {
		return err
	}
	if err := writeContext(w, fs, d.Primary, opts); err != nil {
		return err
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			if _, err := fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n",
				n.Msg, formatPath(fs, n.Span.File, opts.PathMode, opts.BaseDir), nStart.Line, nStart.Col); err != nil {
				return err
			}
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			if err := writeFix(w, fs, &f, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeContext prints the first line the span touches with a caret
// underline beneath the covered text.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) error {
	f := fs.Get(span.File)
	if f == nil {
		return nil
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w, "    %s\n", line); err != nil {
		return err
	}

	// Underline math runs on display width, so tabs and wide runes keep the
	// caret aligned with the source above it. Columns are 1-based byte
	// offsets within the line.
	startIdx := clamp(int(start.Col)-1, 0, len(line))
	endIdx := len(line)
	if end.Line == start.Line {
		endIdx = clamp(int(end.Col)-1, startIdx, len(line))
	}
	lead := runewidth.StringWidth(expandTabs(line[:startIdx]))
	width := max(runewidth.StringWidth(expandTabs(line[startIdx:endIdx])), 1)

	underline := "^" + strings.Repeat("~", width-1)
	if _, err := fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", lead), paint(caretColor, underline, opts.Color)); err != nil {
		return err
	}
	return nil
}

func writeFix(w io.Writer, fs *source.FileSet, f *diag.Fix, opts PrettyOpts) error {
	suffix := ""
	if f.IsPreferred {
		suffix = " (preferred)"
	}
	if len(f.Edits) == 1 {
		repl := paint(fixColor, f.Edits[0].NewText, opts.Color)
		_, err := fmt.Fprintf(w, "  fix: %s: `%s`%s\n", f.Title, repl, suffix)
		return err
	}
	if _, err := fmt.Fprintf(w, "  fix: %s (%d edits)%s\n", f.Title, len(f.Edits), suffix); err != nil {
		return err
	}
	return nil
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func paint(c *color.Color, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return c.Sprint(s)
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode, baseDir string) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	return f.FormatPath(mode.mode(), baseDir)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
