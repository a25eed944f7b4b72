package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"htmlcheck/internal/diagfmt"
	"htmlcheck/internal/driver"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] file.html",
	Short: "Print the document tree of an HTML file",
	Long:  `Tree builds the document tree and prints an indented outline, one node per line with its span`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], cfg.Check.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts(cfg, os.Stderr))
	}

	result.Tree.Dump(os.Stdout)
	return nil
}
