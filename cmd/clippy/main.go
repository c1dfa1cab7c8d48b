package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Yoopo/rust-clippy/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "clippy",
	Short: "Lint driver for macro-expanded program dumps",
	Long:  `clippy runs structural lints over program dumps produced by the frontend and reports findings against the original source`,
}

// main registers subcommands and persistent flags, then executes the root
// command. Execution errors exit with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(lintsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0=from config)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
