package diag

import (
	"fmt"
)

type Code uint16

const (
	// Fallback for everything unclassified.
	UnknownCode Code = 0

	// IO errors
	IOLoadFileError Code = 1000

	// Dump decoding
	DumpInfo            Code = 2000
	DumpBadSchema       Code = 2001
	DumpCorruptPayload  Code = 2002
	DumpDanglingRef     Code = 2003
	DumpUnknownExprKind Code = 2004

	// Configuration
	CfgInfo        Code = 3000
	CfgUnknownLint Code = 3001
	CfgBadLevel    Code = 3002

	// Lint findings
	LintInfo          Code = 5000
	LintUselessFormat Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown issue",

	IOLoadFileError: "I/O load file error",

	DumpInfo:            "program dump information",
	DumpBadSchema:       "unsupported program dump schema version",
	DumpCorruptPayload:  "corrupt program dump payload",
	DumpDanglingRef:     "dangling reference in program dump",
	DumpUnknownExprKind: "unknown expression kind in program dump",

	CfgInfo:        "configuration information",
	CfgUnknownLint: "unknown lint name in configuration",
	CfgBadLevel:    "invalid lint level in configuration",

	LintInfo:          "lint information",
	LintUselessFormat: "useless use of format",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DMP%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("LNT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
