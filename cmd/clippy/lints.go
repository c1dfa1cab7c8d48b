package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Yoopo/rust-clippy/internal/lint"
)

var lintsCmd = &cobra.Command{
	Use:   "lints",
	Short: "List registered lints",
	Args:  cobra.NoArgs,
	RunE:  runListLints,
}

func runListLints(cmd *cobra.Command, _ []string) error {
	colorMode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor := false
	switch colorMode {
	case "always":
		useColor = true
	case "never":
		useColor = false
	case "auto", "":
		useColor = isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|always|never)", colorMode)
	}

	name := color.New(color.Bold)
	code := color.New(color.FgCyan)
	if !useColor {
		name.DisableColor()
		code.DisableColor()
	}

	out := cmd.OutOrStdout()
	for _, pass := range lint.Default().Passes() {
		l := pass.Lint()
		fmt.Fprintf(out, "%s (%s, default %s)\n    %s\n",
			name.Sprint(l.Name),
			code.Sprint(l.Code.ID()),
			l.DefaultSeverity.String(),
			l.Summary,
		)
	}
	return nil
}
