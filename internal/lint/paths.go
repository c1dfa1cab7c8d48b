package lint

// Canonical fully-qualified paths the lints match definitions against.
// Process-wide read-only data; compare with symbols.Table.MatchPath.
var (
	// FmtArgumentsNewV1Formatted assembles the runtime argument list of a
	// formatting call. Every `format!` expansion with substitutions calls
	// it with exactly three arguments: pieces, args, and the format specs.
	FmtArgumentsNewV1Formatted = []string{"core", "fmt", "Arguments", "new_v1_formatted"}

	// DisplayFmtMethod renders a value using its default textual
	// representation.
	DisplayFmtMethod = []string{"core", "fmt", "Display", "fmt"}

	// OwnedStringType is the heap-allocated string type; together with the
	// primitive str it forms the set of textual string types.
	OwnedStringType = []string{"alloc", "string", "String"}
)

// FormatMacro is the macro name whose expansions the useless-format lint
// inspects.
const FormatMacro = "format"

// impliedWidthName is the symbolic constant meaning "no explicit width or
// alignment was requested". Compared by terminal name segment, matching the
// weaker resolution the expansion itself uses for it.
const impliedWidthName = "Implied"
