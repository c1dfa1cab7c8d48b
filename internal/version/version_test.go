package version

import (
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	if Version == "" {
		t.Error("Version must have a default")
	}
	if !strings.Contains(Version, "0") {
		t.Errorf("Version %q does not look like a semver string", Version)
	}
	// GitCommit, GitMessage and BuildDate stay empty unless set via ldflags.
	if GitCommit != "" || GitMessage != "" || BuildDate != "" {
		t.Errorf("build metadata should default to empty, got %q %q %q", GitCommit, GitMessage, BuildDate)
	}
}

func TestLdflagsOverride(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2026-08-30T10:30:00Z"

	if Version != "1.2.3" {
		t.Errorf("Version = %q", Version)
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q", GitCommit)
	}
	if BuildDate != "2026-08-30T10:30:00Z" {
		t.Errorf("BuildDate = %q", BuildDate)
	}
}
