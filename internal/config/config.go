// Package config loads htmlcheck.toml, the optional per-project
// configuration for output shape and diagnostic policy.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"htmlcheck/internal/diag"
)

// Output configures how diagnostics are rendered.
type Output struct {
	Format string `toml:"format"` // pretty | json
	Color  string `toml:"color"`  // auto | always | never
	Paths  string `toml:"paths"`  // auto | absolute | relative | basename
	Notes  bool   `toml:"notes"`
	// Context is the number of extra source lines around each finding.
	Context int8 `toml:"context"`
}

// Check configures the validation run itself.
type Check struct {
	MaxDiagnostics int      `toml:"max-diagnostics"`
	Ignore         []string `toml:"ignore"` // code IDs, e.g. "TREE2004"
}

// Config is the root of htmlcheck.toml.
type Config struct {
	Output Output `toml:"output"`
	Check  Check  `toml:"check"`
	// Severity remaps code IDs: error | warning | info | ignore.
	Severity map[string]string `toml:"severity"`
}

// Default returns the configuration used when no htmlcheck.toml exists.
func Default() Config {
	return Config{
		Output: Output{
			Format: "pretty",
			Color:  "auto",
			Paths:  "auto",
			Notes:  true,
		},
		Check: Check{MaxDiagnostics: 200},
	}
}

// Find walks up from startDir to locate htmlcheck.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "htmlcheck.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the file at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest htmlcheck.toml, falling back to
// defaults when none exists.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if err := oneOf("output.format", c.Output.Format, "pretty", "json"); err != nil {
		return err
	}
	if err := oneOf("output.color", c.Output.Color, "auto", "always", "never"); err != nil {
		return err
	}
	if err := oneOf("output.paths", c.Output.Paths, "auto", "absolute", "relative", "basename"); err != nil {
		return err
	}
	if c.Check.MaxDiagnostics <= 0 {
		return fmt.Errorf("check.max-diagnostics must be positive, got %d", c.Check.MaxDiagnostics)
	}
	for code, sev := range c.Severity {
		if err := oneOf("severity."+code, sev, "error", "warning", "info", "ignore"); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(key, val string, allowed ...string) error {
	for _, a := range allowed {
		if val == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q, expected one of %s", key, val, strings.Join(allowed, "|"))
}

// Apply rewrites one diagnostic according to the severity and ignore
// policy. The second result is false when the finding is dropped.
func (c *Config) Apply(d diag.Diagnostic) (diag.Diagnostic, bool) {
	id := d.Code.ID()
	for _, ignored := range c.Check.Ignore {
		if strings.EqualFold(ignored, id) {
			return d, false
		}
	}
	switch strings.ToLower(c.Severity[id]) {
	case "ignore":
		return d, false
	case "error":
		d.Severity = diag.SevError
	case "warning":
		d.Severity = diag.SevWarning
	case "info":
		d.Severity = diag.SevInfo
	}
	return d, true
}

// Rewrite applies the policy to a whole bag and returns the surviving
// findings in a fresh bag.
func (c *Config) Rewrite(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(c.Check.MaxDiagnostics)
	for _, d := range bag.Items() {
		if kept, ok := c.Apply(d); ok {
			out.Add(kept)
		}
	}
	return out
}
