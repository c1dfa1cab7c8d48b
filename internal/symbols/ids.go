package symbols

// DefID identifies a definition inside the table arena. It is the canonical
// declaration identity a path expression resolves to: two paths naming the
// same declaration carry the same DefID.
type DefID uint32

// NoDefID marks the absence of a definition reference (unresolved path).
const NoDefID DefID = 0

// IsValid reports whether the ID refers to an allocated definition.
func (id DefID) IsValid() bool { return id != NoDefID }
