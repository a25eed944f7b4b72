package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"htmlcheck/internal/config"
	"htmlcheck/internal/diagfmt"
)

// loadConfig resolves the effective configuration: an explicit --config
// path, otherwise the nearest htmlcheck.toml, otherwise defaults.
// Persistent flags override the file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return config.Config{}, err
	}

	if maxDiag, err := flags.GetInt("max-diagnostics"); err == nil && maxDiag > 0 {
		cfg.Check.MaxDiagnostics = maxDiag
	}
	if colorFlag, err := flags.GetString("color"); err == nil && cmd.Root().PersistentFlags().Changed("color") {
		cfg.Output.Color = colorFlag
	}
	return cfg, nil
}

// useColor decides whether output to f should be colorized.
func useColor(cfg config.Config, f *os.File) bool {
	switch cfg.Output.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal(f)
	}
}

func pathMode(cfg config.Config) diagfmt.PathMode {
	switch cfg.Output.Paths {
	case "absolute":
		return diagfmt.PathModeAbsolute
	case "relative":
		return diagfmt.PathModeRelative
	case "basename":
		return diagfmt.PathModeBasename
	default:
		return diagfmt.PathModeAuto
	}
}

func prettyOpts(cfg config.Config, f *os.File) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     useColor(cfg, f),
		Context:   cfg.Output.Context,
		PathMode:  pathMode(cfg),
		ShowNotes: cfg.Output.Notes,
	}
}
