// Package driver runs the registered lint passes over a decoded program
// dump and aggregates their findings into one deterministic report.
package driver

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/dump"
	"github.com/Yoopo/rust-clippy/internal/hir"
	"github.com/Yoopo/rust-clippy/internal/lint"
	"github.com/Yoopo/rust-clippy/internal/project"
)

// Options controls one lint run.
type Options struct {
	// Jobs caps worker goroutines; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics truncates the final report; 0 means unlimited.
	MaxDiagnostics int
	// Config carries clippy.toml levels; zero value enables every lint at
	// its default severity.
	Config project.Config
	// Progress, when set, is called once per finished function. It may be
	// invoked from several goroutines at once.
	Progress func(Progress)
}

// Progress describes one finished unit of work.
type Progress struct {
	Func     string
	Path     string
	Index    int // zero-based position in the run
	Total    int
	Findings int
}

// Result is the aggregated outcome of a run.
type Result struct {
	// Bag holds the merged findings, sorted and deduplicated.
	Bag *diag.Bag
	// Funcs and Exprs count the visited work, for the summary line.
	Funcs int
	Exprs int
	// Disabled lists lints an `allow` level switched off, in name order.
	Disabled []string
}

// Run walks every function body in the program, dispatching each expression
// to every enabled pass. Function bodies are independent, so they are
// linted in parallel; the merged report does not depend on scheduling.
func Run(ctx context.Context, prog *dump.Program, reg *lint.Registry, opts Options) (*Result, error) {
	passes, disabled, overrides := configure(reg, opts.Config)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	funcs := prog.Module.Funcs
	bags := make([]*diag.Bag, len(funcs))
	exprCounts := make([]int, len(funcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(funcs), 1)))

	for i := range funcs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fn := &funcs[i]
			bag := diag.NewBag(math.MaxUint16)
			cx := lint.NewContext(prog.Files, prog.Types, prog.Defs, prog.Module.Expns,
				diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
			for code, sev := range overrides {
				cx.SetLevel(code, sev)
			}

			count := 0
			hir.Walk(fn.Body, func(e *hir.Expr) {
				count++
				for _, p := range passes {
					p.CheckExpr(cx, e)
				}
			})
			bags[i] = bag
			exprCounts[i] = count

			if opts.Progress != nil {
				opts.Progress(Progress{
					Func:     fn.Name,
					Path:     filePath(prog, fn),
					Index:    i,
					Total:    len(funcs),
					Findings: bag.Len(),
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Bag:      diag.NewBag(0),
		Funcs:    len(funcs),
		Disabled: disabled,
	}
	// Merge in declaration order so the report is stable regardless of
	// which goroutine finished first.
	for i, bag := range bags {
		res.Bag.Merge(bag)
		res.Exprs += exprCounts[i]
	}
	res.Bag.Sort()
	res.Bag.Dedup()
	res.Bag.Truncate(opts.MaxDiagnostics)
	return res, nil
}

// RunFile decodes a dump from disk and lints it.
func RunFile(ctx context.Context, path string, reg *lint.Registry, opts Options) (*Result, *dump.Program, error) {
	prog, err := dump.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	res, err := Run(ctx, prog, reg, opts)
	if err != nil {
		return nil, nil, err
	}
	return res, prog, nil
}

// configure resolves the registry against the config: which passes run,
// which were allowed off, and which severities were overridden.
func configure(reg *lint.Registry, cfg project.Config) (passes []lint.Pass, disabled []string, overrides map[diag.Code]diag.Severity) {
	overrides = make(map[diag.Code]diag.Severity)
	for _, p := range reg.Passes() {
		l := p.Lint()
		level := cfg.Level(l.Name, l.DefaultSeverity)
		if !level.Enabled {
			disabled = append(disabled, l.Name)
			continue
		}
		if level.Severity != l.DefaultSeverity {
			overrides[l.Code] = level.Severity
		}
		passes = append(passes, p)
	}
	sort.Strings(disabled)
	return passes, disabled, overrides
}

func filePath(prog *dump.Program, fn *hir.Func) string {
	if f := prog.Files.Get(fn.File); f != nil {
		return f.Path
	}
	return ""
}
