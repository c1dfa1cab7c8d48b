// Package testkit provides structural checks shared by tests that build or
// decode program dumps.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/Yoopo/rust-clippy/internal/dump"
	"github.com/Yoopo/rust-clippy/internal/hir"
)

// CheckProgramInvariants runs a minimal set of invariants on a program:
// 1) every function points at a known file and its span stays in bounds
// 2) every reachable expression span stays inside its file's content
// 3) every expansion reference resolves and its parent chain terminates
func CheckProgramInvariants(prog *dump.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	for i := range prog.Module.Funcs {
		fn := &prog.Module.Funcs[i]
		sf := prog.Files.Get(fn.File)
		if sf == nil {
			return fmt.Errorf("func %q: unknown file id %d", fn.Name, fn.File)
		}
		lenContent, err := safecast.Conv[uint32](len(sf.Content))
		if err != nil {
			return fmt.Errorf("func %q: content length overflow: %w", fn.Name, err)
		}
		if fn.Span.Start > fn.Span.End || fn.Span.End > lenContent {
			return fmt.Errorf("func %q: span %v outside content (%d bytes)", fn.Name, fn.Span, lenContent)
		}

		var walkErr error
		hir.Walk(fn.Body, func(e *hir.Expr) {
			if walkErr != nil {
				return
			}
			walkErr = checkExpr(prog, fn.Name, e)
		})
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}

func checkExpr(prog *dump.Program, fn string, e *hir.Expr) error {
	sf := prog.Files.Get(e.Span.File)
	if sf == nil {
		return fmt.Errorf("func %q: expr span names unknown file id %d", fn, e.Span.File)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("func %q: content length overflow: %w", fn, err)
	}
	if e.Span.Start > e.Span.End || e.Span.End > lenContent {
		return fmt.Errorf("func %q: expr span %v outside content (%d bytes)", fn, e.Span, lenContent)
	}

	// Parent chains are short; 64 hops means a cycle slipped in.
	id := e.Expn
	for hops := 0; id.IsValid(); hops++ {
		if hops > 64 {
			return fmt.Errorf("func %q: expansion parent chain does not terminate", fn)
		}
		expn := prog.Module.Expns.Get(id)
		if expn == nil {
			return fmt.Errorf("func %q: dangling expansion id %d", fn, id)
		}
		id = expn.Parent
	}
	return nil
}
