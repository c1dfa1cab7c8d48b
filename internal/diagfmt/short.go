package diagfmt

import (
	"io"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/source"
)

// Short renders one line per diagnostic, grep- and editor-friendly.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	_, err := io.WriteString(w, diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes))
	return err
}
