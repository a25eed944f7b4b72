package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"htmlcheck/internal/diagfmt"
	"htmlcheck/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.html",
	Short: "Tokenize an HTML file",
	Long:  `Tokenize breaks an HTML file into its constituent tokens without building a tree`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(args[0], cfg.Check.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Lexer findings go to stderr so stdout stays parseable.
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts(cfg, os.Stderr))
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.File, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.File, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
