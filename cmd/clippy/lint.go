package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Yoopo/rust-clippy/internal/diag"
	"github.com/Yoopo/rust-clippy/internal/diagfmt"
	"github.com/Yoopo/rust-clippy/internal/driver"
	"github.com/Yoopo/rust-clippy/internal/dump"
	"github.com/Yoopo/rust-clippy/internal/lint"
	"github.com/Yoopo/rust-clippy/internal/observ"
	"github.com/Yoopo/rust-clippy/internal/project"
	"github.com/Yoopo/rust-clippy/internal/ui"
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] <program.mp>",
	Short: "Run lints over a program dump",
	Long:  `Run every enabled lint over the macro-expanded program dump and report findings in the chosen format`,
	Args:  cobra.ExactArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().String("format", "", "output format (pretty|short|json), overrides clippy.toml")
	lintCmd.Flags().String("config", "", "explicit clippy.toml path (default: nearest above the dump)")
	lintCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	lintCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	lintCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	lintCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// lintSettings is the merged view of persistent flags, command flags and
// clippy.toml, with flags winning over config.
type lintSettings struct {
	format    string
	colorOn   bool
	quiet     bool
	maxDiag   int
	jobs      int
	withNotes bool
	suggest   bool
	pathMode  diagfmt.PathMode
	useTUI    bool
	config    project.Config
}

func runLint(cmd *cobra.Command, args []string) error {
	dumpPath := args[0]

	settings, err := resolveLintSettings(cmd, dumpPath)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	timer := observ.NewTimer()

	phase := timer.Begin("decode")
	prog, err := dump.ReadFile(dumpPath)
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}
	timer.End(phase, fmt.Sprintf("%d files", prog.Files.Len()))

	reg := lint.Default()
	opts := driver.Options{
		Jobs:           settings.jobs,
		MaxDiagnostics: settings.maxDiag,
		Config:         settings.config,
	}

	phase = timer.Begin("lint")
	var res *driver.Result
	if settings.useTUI && len(prog.Module.Funcs) > 0 {
		res, err = runWithProgress(cmd, prog, reg, opts)
	} else {
		res, err = driver.Run(cmd.Context(), prog, reg, opts)
	}
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}
	timer.End(phase, fmt.Sprintf("%d functions", res.Funcs))

	out := cmd.OutOrStdout()
	switch settings.format {
	case "json":
		err = diagfmt.JSON(out, res.Bag, prog.Files, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         settings.pathMode,
			IncludeNotes:     settings.withNotes,
			IncludeFixes:     settings.suggest,
			IncludePreviews:  settings.suggest,
		})
	case "short":
		err = diagfmt.Short(out, res.Bag, prog.Files, settings.withNotes)
	default:
		err = diagfmt.Pretty(out, res.Bag, prog.Files, diagfmt.PrettyOpts{
			Color:     settings.colorOn,
			PathMode:  settings.pathMode,
			ShowNotes: settings.withNotes,
			ShowFixes: settings.suggest,
		})
	}
	if err != nil {
		return fmt.Errorf("lint: %w", err)
	}

	if !settings.quiet && settings.format != "json" {
		writeSummary(out, res)
	}
	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if res.Bag.HasErrors() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // diagnostics already printed
	}
	return nil
}

func resolveLintSettings(cmd *cobra.Command, dumpPath string) (lintSettings, error) {
	var s lintSettings

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return s, err
	}
	if configPath != "" {
		s.config, err = project.LoadConfig(configPath)
		if err != nil {
			return s, err
		}
	} else {
		s.config, _, _, err = project.LoadFromDir(filepath.Dir(dumpPath))
		if err != nil {
			return s, err
		}
	}

	s.format = s.config.Format
	if f, err := cmd.Flags().GetString("format"); err != nil {
		return s, err
	} else if f != "" {
		switch f {
		case "pretty", "short", "json":
			s.format = f
		default:
			return s, fmt.Errorf("unsupported format %q (must be pretty, short or json)", f)
		}
	}

	colorMode := s.config.Color
	if cmd.Root().PersistentFlags().Changed("color") {
		colorMode, err = cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return s, err
		}
	}
	switch colorMode {
	case "always":
		s.colorOn = true
	case "never":
		s.colorOn = false
	case "auto", "":
		s.colorOn = isTerminal(os.Stdout)
	default:
		return s, fmt.Errorf("invalid --color value %q (expected auto|always|never)", colorMode)
	}

	s.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return s, err
	}
	s.jobs, err = cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return s, err
	}
	s.maxDiag = s.config.MaxDiagnostics
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		s.maxDiag, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return s, err
		}
	}

	s.withNotes, err = cmd.Flags().GetBool("with-notes")
	if err != nil {
		return s, err
	}
	s.suggest, err = cmd.Flags().GetBool("suggest")
	if err != nil {
		return s, err
	}

	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return s, err
	}
	s.pathMode = diagfmt.PathModeAuto
	if fullPath {
		s.pathMode = diagfmt.PathModeAbsolute
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return s, err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return s, err
	}
	s.useTUI = shouldUseTUI(mode) && s.format == "pretty" && !s.quiet
	return s, nil
}

// runWithProgress drives the lint run behind a Bubble Tea progress view.
// The driver feeds per-function events into the model; the final report is
// printed after the program exits.
func runWithProgress(cmd *cobra.Command, prog *dump.Program, reg *lint.Registry, opts driver.Options) (*driver.Result, error) {
	labels := make([]string, len(prog.Module.Funcs))
	for i := range prog.Module.Funcs {
		fn := &prog.Module.Funcs[i]
		path := ""
		if f := prog.Files.Get(fn.File); f != nil {
			path = f.Path
		}
		labels[i] = fmt.Sprintf("%s::%s", path, fn.Name)
	}

	events := make(chan ui.Event, len(labels))
	opts.Progress = func(p driver.Progress) {
		events <- ui.Event{
			Label:    fmt.Sprintf("%s::%s", p.Path, p.Func),
			Findings: p.Findings,
		}
	}

	type outcome struct {
		res *driver.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := driver.Run(cmd.Context(), prog, reg, opts)
		close(events)
		done <- outcome{res, err}
	}()

	model := ui.NewProgressModel("linting", labels, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return nil, err
	}
	o := <-done
	return o.res, o.err
}

func writeSummary(out io.Writer, res *driver.Result) {
	warnings, errors := 0, 0
	for _, d := range res.Bag.Items() {
		switch d.Severity {
		case diag.SevError:
			errors++
		case diag.SevWarning:
			warnings++
		}
	}
	fmt.Fprintf(out, "checked %d functions (%d expressions): %d warnings, %d errors\n",
		res.Funcs, res.Exprs, warnings, errors)
	if len(res.Disabled) > 0 {
		fmt.Fprintf(out, "disabled by config: %s\n", strings.Join(res.Disabled, ", "))
	}
}
