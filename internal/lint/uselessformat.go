package lint

import (
	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/fix"
	"github.com/Yoopo/rust-clippy/internal/hir"
	"github.com/Yoopo/rust-clippy/internal/source"
)

// UselessFormat flags `format!` invocations that perform no formatting
// work: a bare literal with no substitutions, or a single `{}` substitution
// of a value that already is a string. Both can be replaced by
// `.to_string()` on the receiver.
//
// The pass never inspects unexpanded source; it recognizes the two known
// expansion shapes of the macro and maps its finding back onto the original
// invocation span, so the suggested replacement is textually valid for the
// code the user wrote.
type UselessFormat struct {
	lint Lint
}

// NewUselessFormat constructs the pass.
func NewUselessFormat() *UselessFormat {
	return &UselessFormat{
		lint: Lint{
			Name:            "useless_format",
			Code:            diag.LintUselessFormat,
			DefaultSeverity: diag.SevWarning,
			Summary:         "useless use of `format!`",
		},
	}
}

func (p *UselessFormat) Lint() Lint {
	return p.lint
}

// CheckExpr classifies one macro-expanded expression. Every sub-shape must
// match exactly before anything is reported; any deviation is a silent
// negative, not an error.
func (p *UselessFormat) CheckExpr(cx *Context, expr *hir.Expr) {
	expn, ok := cx.Expns.Find(expr.Expn, FormatMacro)
	if !ok {
		return
	}
	// The invocation itself was generated by another macro; reporting there
	// would point the user at code they never wrote.
	if cx.Expns.InMacro(expn) {
		return
	}
	span := cx.Expns.CallSite(expn)

	switch data := expr.Data.(type) {
	case hir.CallData:
		// `format!("{}", foo)` expansion
		p.checkCallForm(cx, span, data)
	case hir.MatchData:
		// `format!("foo")` expansion contains `match () { () => [], }`
		tup, ok := data.Scrutinee.Data.(hir.TupleData)
		if !ok || len(tup.Elements) != 0 {
			return
		}
		sugg := cx.Snippet(span, "<expr>") + ".to_string()"
		p.emit(cx, span, span, sugg)
	}
}

func (p *UselessFormat) checkCallForm(cx *Context, span source.Span, data hir.CallData) {
	if len(data.Args) != 3 {
		return
	}
	def, ok := cx.ResolvePath(data.Callee)
	if !ok || !cx.Defs.MatchPath(def, FmtArgumentsNewV1Formatted) {
		return
	}
	if !checkSinglePiece(data.Args[0]) {
		return
	}
	argSpan, ok := p.singleStringArg(cx, data.Args[1])
	if !ok {
		return
	}
	if !checkUnformatted(data.Args[2]) {
		return
	}
	sugg := cx.Snippet(argSpan, "<arg>") + ".to_string()"
	p.emit(cx, span, argSpan, sugg)
}

// emit reports the finding at the invocation span with the replacement
// attached as a preferred quick fix; the note points at the sub-expression
// the replacement is built from.
func (p *UselessFormat) emit(cx *Context, span, noteSpan source.Span, sugg string) {
	cx.SpanLint(p.lint, span, "useless use of `format!`").
		WithNote(noteSpan, "consider using .to_string()").
		WithFix(fix.ReplaceSpan("consider using .to_string()", span, sugg, "", fix.Preferred())).
		Emit()
}

// checkSinglePiece matches `&[""]`: the piece list of a format string that
// contains no literal text around its one implicit placeholder.
func checkSinglePiece(expr *hir.Expr) bool {
	addr, ok := expr.Data.(hir.AddrOfData)
	if !ok {
		return false
	}
	arr, ok := addr.Inner.Data.(hir.ArrayData)
	if !ok || len(arr.Elements) != 1 {
		return false
	}
	lit, ok := arr.Elements[0].Data.(hir.LiteralData)
	if !ok || lit.Kind != hir.LiteralStr {
		return false
	}
	return lit.StringValue == ""
}

// singleStringArg matches
//
//	&match (&"arg",) {
//	    (__arg0,) => [Arguments::new(__arg0, Display::fmt)],
//	}
//
// requiring the type of __arg0 to be &str or String, and returns the span
// of the first element of the matched tuple: the argument expression the
// caller wrote, not the match the macro synthesized around it. That span
// selection is what keeps the suggested replacement valid when substituted
// for the whole invocation.
func (p *UselessFormat) singleStringArg(cx *Context, expr *hir.Expr) (source.Span, bool) {
	addr, ok := expr.Data.(hir.AddrOfData)
	if !ok {
		return source.Span{}, false
	}
	match, ok := addr.Inner.Data.(hir.MatchData)
	if !ok || len(match.Arms) != 1 {
		return source.Span{}, false
	}
	arm := match.Arms[0]
	if len(arm.Pats) != 1 {
		return source.Span{}, false
	}
	pat, ok := arm.Pats[0].Data.(hir.TuplePatData)
	if !ok || pat.Rest >= 0 || len(pat.Elems) != 1 {
		return source.Span{}, false
	}
	body, ok := arm.Body.Data.(hir.ArrayData)
	if !ok || len(body.Elements) != 1 {
		return source.Span{}, false
	}
	call, ok := body.Elements[0].Data.(hir.CallData)
	if !ok || len(call.Args) != 2 {
		return source.Span{}, false
	}
	def, ok := cx.ResolvePath(call.Args[1])
	if !ok || !cx.Defs.MatchPath(def, DisplayFmtMethod) {
		return source.Span{}, false
	}

	ty := cx.PatType(pat.Elems[0])
	if !cx.Types.IsTextual(ty, cx.Defs.Strings, OwnedStringType) {
		return source.Span{}, false
	}

	scrut, ok := match.Scrutinee.Data.(hir.TupleData)
	if !ok || len(scrut.Elements) == 0 {
		return source.Span{}, false
	}
	return scrut.Elements[0].Span, true
}

// checkUnformatted matches
//
//	&[_ {
//	    format: _ {
//	        width: _::Implied,
//	        ...
//	    },
//	    ...,
//	}]
//
// i.e. the caller supplied no explicit width/precision/alignment. Explicit
// options rule out `.to_string()`, which could not honor them.
func checkUnformatted(expr *hir.Expr) bool {
	addr, ok := expr.Data.(hir.AddrOfData)
	if !ok {
		return false
	}
	arr, ok := addr.Inner.Data.(hir.ArrayData)
	if !ok || len(arr.Elements) != 1 {
		return false
	}
	spec, ok := arr.Elements[0].Data.(hir.StructData)
	if !ok {
		return false
	}
	formatField, ok := spec.Field("format")
	if !ok {
		return false
	}
	formatSpec, ok := formatField.Data.(hir.StructData)
	if !ok {
		return false
	}
	widthField, ok := formatSpec.Field("width")
	if !ok {
		return false
	}
	width, ok := widthField.Data.(hir.PathData)
	if !ok {
		return false
	}
	return width.Name == impliedWidthName
}
