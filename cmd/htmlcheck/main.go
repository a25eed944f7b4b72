package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"htmlcheck/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "htmlcheck",
	Short: "HTML validator and completion engine",
	Long:  `htmlcheck validates HTML documents against the element content models and attribute rules, and answers editor completion queries`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "only report error-level findings")
	rootCmd.PersistentFlags().String("config", "", "path to htmlcheck.toml (default: walk up from cwd)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0: from config)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
