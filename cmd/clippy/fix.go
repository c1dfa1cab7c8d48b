package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Yoopo/rust-clippy/internal/driver"
	"github.com/Yoopo/rust-clippy/internal/fix"
	"github.com/Yoopo/rust-clippy/internal/lint"
	"github.com/Yoopo/rust-clippy/internal/project"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <program.mp>",
	Short: "Apply suggested fixes to the dumped sources",
	Long:  "Run the lints, surface available fixes, and apply them to the source files according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplyFixes,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "stage fixes without writing files")
}

func runApplyFixes(cmd *cobra.Command, args []string) error {
	dumpPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	opts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	}

	cfg, _, _, err := project.LoadFromDir(filepath.Dir(dumpPath))
	if err != nil {
		return err
	}
	maxDiagnostics := cfg.MaxDiagnostics
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		maxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics")
		if err != nil {
			return err
		}
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	res, prog, err := driver.RunFile(cmd.Context(), dumpPath, lint.Default(), driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Config:         cfg,
	})
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	applied, applyErr := fix.Apply(prog.Files, res.Bag.Items(), opts)
	return reportApplyResult(applied, applyErr, dryRun)
}

func reportApplyResult(res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(os.Stdout, "%s %d fix(es):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s]: %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 {
		header := "Updated files:"
		if dryRun {
			header = "Files that would change:"
		}
		fmt.Fprintln(os.Stdout, header)
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}
