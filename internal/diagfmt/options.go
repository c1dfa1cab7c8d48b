// Package diagfmt renders diagnostics for humans and tools: an annotated
// pretty format, a grep-friendly short format, and JSON.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or basename automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) mode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	BaseDir   string // for PathModeRelative
	ShowNotes bool
	ShowFixes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to every location
	PathMode         PathMode
	BaseDir          string
	Max              int // output truncation; the Bag itself stays intact
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
}
