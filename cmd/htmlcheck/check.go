package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/diagfmt"
	"htmlcheck/internal/driver"
	"htmlcheck/internal/observ"
	"htmlcheck/internal/prof"
)

// errFindings signals a nonzero exit after findings were printed.
var errFindings = errors.New("validation reported errors")

func errorsOnly(bag *diag.Bag, maxDiagnostics int) *diag.Bag {
	out := diag.NewBag(maxDiagnostics)
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			out.Add(d)
		}
	}
	return out
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.html...",
	Short: "Validate HTML documents",
	Long:  `Check tokenizes, parses, and validates each document. Directories are walked for *.html and *.htm files. The exit code is 1 when any error-level finding survives the configured policy.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json), overrides config")
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0: GOMAXPROCS)")
	checkCmd.Flags().Bool("timings", false, "print per-stage timings to stderr")
	checkCmd.Flags().String("cpuprofile", "", "write a CPU profile to the given path")
	checkCmd.Flags().String("memprofile", "", "write a heap profile to the given path")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if f, err := cmd.Flags().GetString("format"); err == nil && f != "" {
		format = f
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	if cpuPath, err := cmd.Flags().GetString("cpuprofile"); err == nil && cpuPath != "" {
		if err := prof.StartCPU(cpuPath); err != nil {
			return fmt.Errorf("cpu profile: %w", err)
		}
		defer prof.StopCPU()
	}
	if memPath, err := cmd.Flags().GetString("memprofile"); err == nil && memPath != "" {
		defer func() {
			if err := prof.WriteMem(memPath); err != nil {
				fmt.Fprintf(os.Stderr, "heap profile: %v\n", err)
			}
		}()
	}

	timer := observ.NewTimer()

	expand := timer.Begin("expand paths")
	files, err := driver.ExpandPaths(args)
	timer.End(expand, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no HTML files found in %v", args)
	}

	validate := timer.Begin("validate")
	fileSet, results, err := driver.CheckPaths(cmd.Context(), files, cfg.Check.MaxDiagnostics, jobs)
	timer.End(validate, "")
	if err != nil {
		return err
	}
	if timings, err := cmd.Flags().GetBool("timings"); err == nil && timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	failed := false
	for _, res := range results {
		bag := cfg.Rewrite(res.Bag)
		if bag.HasErrors() {
			failed = true
		}
		if quiet {
			bag = errorsOnly(bag, cfg.Check.MaxDiagnostics)
		}
		if bag.Len() == 0 {
			continue
		}
		switch format {
		case "pretty":
			diagfmt.Pretty(os.Stdout, bag, fileSet, prettyOpts(cfg, os.Stdout))
		case "json":
			opts := diagfmt.JSONOpts{
				IncludePositions: true,
				PathMode:         pathMode(cfg),
				IncludeNotes:     cfg.Output.Notes,
			}
			if err := diagfmt.JSON(os.Stdout, bag, fileSet, opts); err != nil {
				return err
			}
		}
	}

	if failed {
		// Findings were already printed; keep cobra from repeating us
		// and let main exit nonzero. Returning (not exiting) lets the
		// profile defers flush.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errFindings
	}
	return nil
}
