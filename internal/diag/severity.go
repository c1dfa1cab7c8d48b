package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics; the default level for lints.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity maps a config-file level name to a Severity.
func ParseSeverity(level string) (Severity, bool) {
	switch level {
	case "info":
		return SevInfo, true
	case "warn", "warning":
		return SevWarning, true
	case "error", "deny":
		return SevError, true
	}
	return SevInfo, false
}
