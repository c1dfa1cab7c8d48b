// Package project locates and parses clippy.toml, the per-project lint
// configuration.
package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Yoopo/rust-clippy/internal/diag"
)

// LintLevel is one resolved [lints] entry. A disabled lint stays registered
// but reports nothing.
type LintLevel struct {
	Enabled  bool
	Severity diag.Severity
}

// Config carries every knob clippy.toml can set. Zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// Format selects the diagnostic renderer: pretty, short or json.
	Format string
	// Color is auto, always or never.
	Color string
	// MaxDiagnostics caps the report; 0 means unlimited.
	MaxDiagnostics int
	// Lints maps lint name to its configured level.
	Lints map[string]LintLevel
}

// DefaultConfig returns the settings used when no clippy.toml exists.
func DefaultConfig() Config {
	return Config{
		Format: "pretty",
		Color:  "auto",
		Lints:  map[string]LintLevel{},
	}
}

type rawConfig struct {
	Format         string            `toml:"format"`
	Color          string            `toml:"color"`
	MaxDiagnostics int               `toml:"max-diagnostics"`
	Lints          map[string]string `toml:"lints"`
}

var validFormats = map[string]bool{"pretty": true, "short": true, "json": true}
var validColors = map[string]bool{"auto": true, "always": true, "never": true}

// LoadConfig parses one clippy.toml. Unknown lint names are not rejected
// here; the caller validates them against its registry so new config can
// ship ahead of a binary upgrade.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	var raw rawConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	if meta.IsDefined("format") {
		format := strings.TrimSpace(raw.Format)
		if !validFormats[format] {
			return Config{}, fmt.Errorf("%s: invalid format %q (want pretty, short or json)", path, raw.Format)
		}
		cfg.Format = format
	}
	if meta.IsDefined("color") {
		color := strings.TrimSpace(raw.Color)
		if !validColors[color] {
			return Config{}, fmt.Errorf("%s: invalid color %q (want auto, always or never)", path, raw.Color)
		}
		cfg.Color = color
	}
	if meta.IsDefined("max-diagnostics") {
		if raw.MaxDiagnostics < 0 {
			return Config{}, fmt.Errorf("%s: max-diagnostics must not be negative", path)
		}
		cfg.MaxDiagnostics = raw.MaxDiagnostics
	}

	for name, level := range raw.Lints {
		ll, err := parseLevel(level)
		if err != nil {
			return Config{}, fmt.Errorf("%s: lint %q: %w", path, name, err)
		}
		cfg.Lints[name] = ll
	}
	return cfg, nil
}

func parseLevel(level string) (LintLevel, error) {
	level = strings.TrimSpace(level)
	if level == "allow" {
		return LintLevel{}, nil
	}
	sev, ok := diag.ParseSeverity(level)
	if !ok {
		return LintLevel{}, fmt.Errorf("invalid level %q (want allow, warn, deny or error)", level)
	}
	return LintLevel{Enabled: true, Severity: sev}, nil
}

// Level returns the configured level for a lint, falling back to the given
// default severity when the config does not mention it.
func (c *Config) Level(name string, def diag.Severity) LintLevel {
	if ll, ok := c.Lints[name]; ok {
		return ll
	}
	return LintLevel{Enabled: true, Severity: def}
}
