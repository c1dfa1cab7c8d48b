package lint

import (
	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/hir"
	"github.com/Yoopo/rust-clippy/internal/source"
	"github.com/Yoopo/rust-clippy/internal/symbols"
	"github.com/Yoopo/rust-clippy/internal/types"
)

// Context bundles the read-only program views a pass queries while
// classifying expressions: source text, inferred types, resolved
// definitions, and the expansion table. One Context serves a whole run;
// it holds no per-expression state, so passes may share it across
// goroutines as long as the Reporter is safe for concurrent use.
type Context struct {
	Files  *source.FileSet
	Types  *types.Interner
	Defs   *symbols.Table
	Expns  *hir.Expansions
	Report diag.Reporter

	levels map[diag.Code]diag.Severity
}

// NewContext assembles a context over the decoded program.
func NewContext(files *source.FileSet, ti *types.Interner, defs *symbols.Table, expns *hir.Expansions, r diag.Reporter) *Context {
	return &Context{
		Files:  files,
		Types:  ti,
		Defs:   defs,
		Expns:  expns,
		Report: r,
		levels: make(map[diag.Code]diag.Severity),
	}
}

// SetLevel overrides the severity a lint reports at.
func (cx *Context) SetLevel(code diag.Code, sev diag.Severity) {
	cx.levels[code] = sev
}

// Level returns the effective severity for a lint.
func (cx *Context) Level(l Lint) diag.Severity {
	if sev, ok := cx.levels[l.Code]; ok {
		return sev
	}
	return l.DefaultSeverity
}

// ResolvePath returns the declaration a path expression resolves to.
// Non-path expressions and unresolved paths report false; incomplete
// resolution upstream degrades to "no match", never to a fault.
func (cx *Context) ResolvePath(e *hir.Expr) (symbols.DefID, bool) {
	if e == nil || e.Kind != hir.ExprPath {
		return symbols.NoDefID, false
	}
	data, ok := e.Data.(hir.PathData)
	if !ok || !data.Def.IsValid() {
		return symbols.NoDefID, false
	}
	return data.Def, true
}

// PatType returns the inferred type of a pattern binding, NoTypeID when the
// pattern binds no name or inference gave up.
func (cx *Context) PatType(p *hir.Pat) types.TypeID {
	if p == nil || p.Kind != hir.PatBinding {
		return types.NoTypeID
	}
	data, ok := p.Data.(hir.BindingData)
	if !ok {
		return types.NoTypeID
	}
	return cx.Defs.DefType(data.Def)
}

// Snippet returns the verbatim original source text under span.
func (cx *Context) Snippet(span source.Span, fallback string) string {
	return cx.Files.Snippet(span, fallback)
}

// SpanLint starts a diagnostic for the lint at the given span with the
// lint's effective severity.
func (cx *Context) SpanLint(l Lint, span source.Span, msg string) *diag.ReportBuilder {
	return diag.NewReportBuilder(cx.Report, cx.Level(l), l.Code, span, msg)
}
