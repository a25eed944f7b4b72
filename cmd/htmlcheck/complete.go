package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"htmlcheck/internal/diagfmt"
	"htmlcheck/internal/driver"
)

var completeCmd = &cobra.Command{
	Use:   "complete [flags] file.html",
	Short: "Propose elements insertable at a position",
	Long:  `Complete answers the editor query: which elements may be inserted at the given position. The position is either --offset (byte) or --line with --col (1-based).`,
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func init() {
	completeCmd.Flags().Uint32("offset", 0, "byte offset of the cursor")
	completeCmd.Flags().Uint32("line", 0, "1-based cursor line")
	completeCmd.Flags().Uint32("col", 1, "1-based cursor column")
	completeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runComplete(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	offset, err := cursorOffset(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := driver.Complete(args[0], offset)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		return diagfmt.FormatCompletionsPretty(os.Stdout, result.Completions)
	case "json":
		return diagfmt.FormatCompletionsJSON(os.Stdout, result.Completions)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// cursorOffset turns the position flags into a byte offset. --line/--col
// win over --offset when given.
func cursorOffset(cmd *cobra.Command, path string) (uint32, error) {
	line, err := cmd.Flags().GetUint32("line")
	if err != nil {
		return 0, fmt.Errorf("failed to get line flag: %w", err)
	}
	if line == 0 {
		return cmd.Flags().GetUint32("offset")
	}

	col, err := cmd.Flags().GetUint32("col")
	if err != nil {
		return 0, fmt.Errorf("failed to get col flag: %w", err)
	}
	// Load once just to translate the position; Complete reloads.
	parsed, err := driver.Parse(path, 1)
	if err != nil {
		return 0, err
	}
	return driver.OffsetOf(parsed.File, line, col)
}
