package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside a single file.
// Diagnostics must always carry spans that point at original source text,
// never at macro-generated code; the expansion table owned by hir maps
// generated nodes back to the call sites users actually wrote.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether other lies fully inside s. Spans in different
// files never contain each other.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Cover extends s to include other. A span from a different file leaves s
// unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
