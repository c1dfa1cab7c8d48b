package hir

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/Yoopo/rust-clippy/internal/source"
)

// Expansion records one macro expansion: which macro ran, where its
// invocation sits in the source, and which expansion (if any) generated
// that invocation text itself.
type Expansion struct {
	Macro    string
	CallSite source.Span
	// Parent is the expansion the call site came from; NoExpnID when the
	// user wrote the invocation directly.
	Parent ExpnID
}

// Expansions is an arena of expansion records, filled by the dump decoder.
type Expansions struct {
	data []Expansion
}

// NewExpansions creates an arena with an optional capacity hint.
func NewExpansions(capHint uint) *Expansions {
	return &Expansions{
		data: make([]Expansion, 1, capHint+1), // index 0 reserved for NoExpnID
	}
}

// New allocates an expansion record and returns its ID.
func (e *Expansions) New(macro string, callSite source.Span, parent ExpnID) ExpnID {
	value, err := safecast.Conv[uint32](len(e.data))
	if err != nil {
		panic(fmt.Errorf("expansion arena overflow: %w", err))
	}
	id := ExpnID(value)
	e.data = append(e.data, Expansion{Macro: macro, CallSite: callSite, Parent: parent})
	return id
}

// Get returns the record for the given ID, or nil for NoExpnID and
// out-of-range IDs.
func (e *Expansions) Get(id ExpnID) *Expansion {
	if !id.IsValid() || int(id) >= len(e.data) {
		return nil
	}
	return &e.data[id]
}

// Len returns the number of records, sentinel included.
func (e *Expansions) Len() int {
	return len(e.data)
}

// Find walks the expansion chain outwards from id and returns the first
// record produced by the named macro. Unknown IDs and exhausted chains
// report false; ambiguity never faults.
func (e *Expansions) Find(id ExpnID, macro string) (ExpnID, bool) {
	for id.IsValid() {
		rec := e.Get(id)
		if rec == nil {
			return NoExpnID, false
		}
		if rec.Macro == macro {
			return id, true
		}
		id = rec.Parent
	}
	return NoExpnID, false
}

// CallSite returns the invocation span for the expansion, or the zero span
// for invalid IDs.
func (e *Expansions) CallSite(id ExpnID) source.Span {
	rec := e.Get(id)
	if rec == nil {
		return source.Span{}
	}
	return rec.CallSite
}

// InMacro reports whether the expansion's own invocation was generated by
// yet another macro. Used to suppress diagnostics on indirect invocations,
// where the user never wrote the offending call.
func (e *Expansions) InMacro(id ExpnID) bool {
	rec := e.Get(id)
	if rec == nil {
		return false
	}
	return rec.Parent.IsValid()
}
