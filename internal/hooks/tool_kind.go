package hooks

// ToolKind classifies a tool identifier into the dispatch categories the
// gate recognizes. Identifiers outside the known set classify as
// KindUnknown and are not restricted.
type ToolKind int

const (
	// KindUnknown is any tool the gate has no rules for.
	KindUnknown ToolKind = iota

	// KindExecute runs shell commands.
	KindExecute

	// KindFileOp reads or writes a single file.
	KindFileOp

	// KindGlob expands a filename pattern, optionally under a base path.
	KindGlob

	// KindGrep searches file contents under a path.
	KindGrep

	// KindList lists a directory.
	KindList
)

// KindOf maps a tool identifier to its kind.
func KindOf(tool string) ToolKind {
	switch tool {
	case "Bash":
		return KindExecute
	case "Read", "Write", "Edit", "MultiEdit":
		return KindFileOp
	case "Glob":
		return KindGlob
	case "Grep":
		return KindGrep
	case "LS":
		return KindList
	default:
		return KindUnknown
	}
}

// String returns the kind as a short label.
func (k ToolKind) String() string {
	switch k {
	case KindExecute:
		return "execute"
	case KindFileOp:
		return "file"
	case KindGlob:
		return "glob"
	case KindGrep:
		return "grep"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}
