package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines the selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first safe fix only.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every always-safe fix.
	ApplyModeAll
	// ApplyModeID applies the fix with the requested ID.
	ApplyModeID
)

// ApplyOptions configures how fixes are selected.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun stages everything but writes no files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID            string
	Title         string
	Code          diag.Code
	Message       string
	Applicability diag.FixApplicability
	PrimaryPath   string
	EditCount     int
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// and applies them to the files in fs.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates, buildSkips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, buildSkips...)

	if len(candidates) == 0 {
		return result, ErrNoFixes
	}

	sortCandidates(candidates)

	selected, selectionSkips := selectCandidates(candidates, opts)
	result.Skipped = append(result.Skipped, selectionSkips...)

	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	applied, skippedDuringApply, changes, err := applyCandidates(fs, selected, opts.DryRun)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skippedDuringApply...)
	result.FileChanges = append(result.FileChanges, changes...)

	if err != nil {
		return result, err
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// gatherCandidates flattens the diagnostics' fixes into candidates. Fixes
// without edits are skipped; a missing ID is synthesized from the code,
// file, start position and fix index so selection stays deterministic.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	cands := make([]candidate, 0)
	skips := make([]SkippedFix, 0)

	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{
					ID:     f.ID,
					Title:  f.Title,
					Reason: "fix has no edits",
				})
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			cands = append(cands, candidate{
				diag:  d,
				fix:   f,
				order: order,
			})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders candidates by file, span, insertion order, code,
// preference, ID and title for a deterministic apply pipeline.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if candidates[i].order != candidates[j].order {
			return candidates[i].order < candidates[j].order
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		if candidates[i].fix.IsPreferred != candidates[j].fix.IsPreferred {
			return candidates[i].fix.IsPreferred && !candidates[j].fix.IsPreferred
		}
		if candidates[i].fix.ID != candidates[j].fix.ID {
			return candidates[i].fix.ID < candidates[j].fix.ID
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

func selectCandidates(candidates []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	switch opts.Mode {
	case ApplyModeID:
		for _, cand := range candidates {
			if cand.fix.ID == opts.TargetID {
				return []candidate{cand}, nil
			}
		}
		return nil, []SkippedFix{{
			ID:     opts.TargetID,
			Reason: "fix id not found",
		}}
	case ApplyModeAll:
		selected := make([]candidate, 0, len(candidates))
		skipped := make([]SkippedFix, 0)
		for _, cand := range candidates {
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = append(selected, cand)
				continue
			}
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability.String()),
			})
		}
		return selected, skipped
	case ApplyModeOnce:
		var selected []candidate
		var fallback *candidate
		for i := range candidates {
			cand := candidates[i]
			if cand.fix.Applicability == diag.FixApplicabilityAlwaysSafe {
				selected = []candidate{cand}
				break
			}
			if fallback == nil {
				tmp := cand
				fallback = &tmp
			}
		}
		if len(selected) == 0 && fallback != nil {
			selected = []candidate{*fallback}
		}
		return selected, nil
	default:
		return nil, nil
	}
}

func applyCandidates(fs *source.FileSet, selected []candidate, dryRun bool) ([]AppliedFix, []SkippedFix, []FileChange, error) {
	buffers := make(map[source.FileID][]byte)
	appliedEdits := make(map[source.FileID][]diag.TextEdit)
	fileEditCount := make(map[source.FileID]int)
	dirtyFiles := make(map[source.FileID]bool)

	applied := make([]AppliedFix, 0, len(selected))
	skipped := make([]SkippedFix, 0)

	for _, cand := range selected {
		buckets := groupEditsByFile(cand.fix.Edits)
		stagedBuffers := make(map[source.FileID][]byte)
		stagedApplied := make(map[source.FileID][]diag.TextEdit)
		stagedCount := make(map[source.FileID]int)
		totalEdits := 0
		var skipReason string

		for fileID, edits := range buckets {
			file := fs.Get(fileID)
			if file == nil {
				skipReason = "edit targets an unknown file"
				break
			}
			if file.Flags&source.FileVirtual != 0 && !dryRun {
				skipReason = "target file is virtual"
				break
			}

			if conflictsWithExisting(appliedEdits[fileID], edits) {
				skipReason = fmt.Sprintf("conflicts with previously applied edits in %s", file.Path)
				break
			}

			base := buffers[fileID]
			if base == nil {
				base = append([]byte(nil), file.Content...)
			}
			working := append([]byte(nil), base...)

			// Apply back-to-front so earlier spans stay valid.
			sort.SliceStable(edits, func(i, j int) bool {
				if edits[i].Span.Start == edits[j].Span.Start {
					return edits[i].Span.End > edits[j].Span.End
				}
				return edits[i].Span.Start > edits[j].Span.Start
			})

			existingApplied := append([]diag.TextEdit(nil), appliedEdits[fileID]...)

			for _, edit := range edits {
				start := int(edit.Span.Start) + cumulativeDelta(existingApplied, int(edit.Span.Start))
				end := int(edit.Span.End) + cumulativeDelta(existingApplied, int(edit.Span.End))
				if start < 0 || end < start || end > len(working) {
					skipReason = "edit span out of range"
					break
				}
				if edit.OldText != "" && string(working[start:end]) != edit.OldText {
					skipReason = "existing text does not match expected content"
					break
				}
				suffix := append([]byte(nil), working[end:]...)
				working = append(append(working[:start], []byte(edit.NewText)...), suffix...)
				existingApplied = insertEditSorted(existingApplied, edit)
			}
			if skipReason != "" {
				break
			}
			stagedBuffers[fileID] = working
			stagedApplied[fileID] = existingApplied
			stagedCount[fileID] = len(edits)
			totalEdits += len(edits)
		}

		if skipReason != "" {
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: skipReason,
			})
			continue
		}

		for fileID, buf := range stagedBuffers {
			buffers[fileID] = buf
			appliedEdits[fileID] = stagedApplied[fileID]
			fileEditCount[fileID] += stagedCount[fileID]
			dirtyFiles[fileID] = true
		}

		primaryPath := ""
		if f := fs.Get(cand.diag.Primary.File); f != nil {
			primaryPath = f.Path
		}
		applied = append(applied, AppliedFix{
			ID:            cand.fix.ID,
			Title:         cand.fix.Title,
			Code:          cand.diag.Code,
			Message:       cand.diag.Message,
			Applicability: cand.fix.Applicability,
			PrimaryPath:   primaryPath,
			EditCount:     totalEdits,
		})
	}

	if len(applied) == 0 {
		return applied, skipped, nil, nil
	}

	fileChanges := make([]FileChange, 0, len(dirtyFiles))
	for fileID := range dirtyFiles {
		buf := buffers[fileID]
		file := fs.Get(fileID)

		if !dryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, buf, mode); err != nil {
				return applied, skipped, fileChanges, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}

		fileChanges = append(fileChanges, FileChange{
			Path:      file.Path,
			EditCount: fileEditCount[fileID],
		})
	}

	sort.SliceStable(fileChanges, func(i, j int) bool {
		return fileChanges[i].Path < fileChanges[j].Path
	})

	return applied, skipped, fileChanges, nil
}

func conflictsWithExisting(existing []diag.TextEdit, edits []diag.TextEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict reports whether two text edits' spans overlap. Spans are
// half-open intervals [Start, End). Two zero-length edits never conflict; a
// zero-length edit conflicts with a non-zero span when its position falls
// inside it.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

func groupEditsByFile(edits []diag.TextEdit) map[source.FileID][]diag.TextEdit {
	buckets := make(map[source.FileID][]diag.TextEdit)
	for _, edit := range edits {
		buckets[edit.Span.File] = append(buckets[edit.Span.File], edit)
	}
	return buckets
}

// cumulativeDelta sums the length changes of already-applied edits that end
// at or before pos, translating an original offset into the edited buffer.
func cumulativeDelta(edits []diag.TextEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		eStart := int(e.Span.Start)
		if eStart > pos {
			break
		}
		eEnd := int(e.Span.End)
		length := eEnd - eStart
		change := len(e.NewText) - length
		if eEnd <= pos {
			delta += change
		}
	}
	return delta
}

func insertEditSorted(edits []diag.TextEdit, edit diag.TextEdit) []diag.TextEdit {
	insertIdx := sort.Search(len(edits), func(i int) bool {
		if edits[i].Span.Start == edit.Span.Start {
			return edits[i].Span.End >= edit.Span.End
		}
		return edits[i].Span.Start > edit.Span.Start
	})
	edits = append(edits, diag.TextEdit{})
	copy(edits[insertIdx+1:], edits[insertIdx:])
	edits[insertIdx] = edit
	return edits
}
