package lint

import (
	"sort"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/hir"
)

// Lint describes one registered lint.
type Lint struct {
	// Name is the stable snake_case identifier used in config files.
	Name            string
	Code            diag.Code
	DefaultSeverity diag.Severity
	// Summary is the one-line description shown by `clippy lints`.
	Summary string
}

// Pass is one lint implementation. CheckExpr is called once per visited
// expression during a single top-down traversal; it must be pure apart
// from reporting through the context.
type Pass interface {
	Lint() Lint
	CheckExpr(cx *Context, expr *hir.Expr)
}

// Registry holds the known passes keyed by lint name.
type Registry struct {
	passes map[string]Pass
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{passes: make(map[string]Pass)}
}

// Register adds a pass. Re-registering a name replaces the previous pass.
func (r *Registry) Register(p Pass) {
	r.passes[p.Lint().Name] = p
}

// Lookup returns the pass registered under name.
func (r *Registry) Lookup(name string) (Pass, bool) {
	p, ok := r.passes[name]
	return p, ok
}

// Passes returns all registered passes sorted by lint name for
// deterministic iteration.
func (r *Registry) Passes() []Pass {
	names := make([]string, 0, len(r.passes))
	for name := range r.passes {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Pass, 0, len(names))
	for _, name := range names {
		out = append(out, r.passes[name])
	}
	return out
}

// Default returns a registry with every lint shipped in this tool.
func Default() *Registry {
	r := NewRegistry()
	r.Register(NewUselessFormat())
	return r
}
