package diag

import (
	"github.com/Yoopo/rust-clippy/internal/source"
)

// Note is a secondary span with its own message, e.g. pointing at the
// argument a suggestion talks about.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the text covered by Span with NewText. OldText, when
// non-empty, is a guard: the fix engine refuses the edit if the file no
// longer contains it at Span.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixKind classifies a fix for UI grouping.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRefactorRewrite
	FixKindSourceAction
)

func (k FixKind) String() string {
	switch k {
	case FixKindQuickFix:
		return "quickfix"
	case FixKindRefactorRewrite:
		return "refactor.rewrite"
	case FixKindSourceAction:
		return "source"
	}
	return "unknown"
}

// FixApplicability is the confidence level attached to a fix.
type FixApplicability uint8

const (
	// FixApplicabilityAlwaysSafe edits apply without human review.
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilitySafeWithHeuristics
	FixApplicabilityManualReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilitySafeWithHeuristics:
		return "safe-with-heuristics"
	case FixApplicabilityManualReview:
		return "manual-review"
	}
	return "unknown"
}

// Fix represents one possible automated correction.
type Fix struct {
	ID            string
	Title         string
	Kind          FixKind
	Applicability FixApplicability
	IsPreferred   bool
	Edits         []TextEdit
}

// Diagnostic is one reported finding.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
