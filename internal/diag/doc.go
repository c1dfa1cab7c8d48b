// Package diag defines the core diagnostic model shared by every lint pass.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture lint
//     findings produced while walking the expanded program tree.
//   - Offer light-weight utilities (Reporter, Bag) that let passes emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Model fix suggestions as structured edits that the driver or CLI can
//     apply.
//
// # Scope
//
// Package diag does not perform any formatting, IO, CLI integration, or
// interactive behaviour. Rendering responsibilities live in internal/diagfmt,
// whereas application of fixes lives in internal/fix and the driver layer.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue. For
//     macro findings this is always the original invocation span, never a
//     span into generated code.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. "the
// argument already has the right type") rather than repeating the message.
//
// # Fix suggestions
//
// Fix represents a possible automated correction. Each fix carries a Title
// for UI listings, a Kind (quick fix, refactor, rewrite), an Applicability
// confidence level, an optional IsPreferred mark, and the concrete Edits.
// TextEdit spans are source coordinates; OldText acts as an optional guard
// the fix engine validates before touching a file.
//
// # Emitting diagnostics
//
// Passes use a diag.Reporter to decouple emission from storage, usually via
// ReportBuilder (NewReportBuilder or the ReportError/ReportWarning/ReportInfo
// helpers) chaining WithNote / WithFix before Emit. diag.BagReporter
// aggregates diagnostics into a Bag, which supports sorting, deduplication
// and merging; DedupReporter filters repeats at the reporting boundary.
package diag
