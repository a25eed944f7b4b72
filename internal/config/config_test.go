package config

import (
	"os"
	"path/filepath"
	"testing"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/source"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "htmlcheck.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[output]
format = "json"
color = "never"

[check]
max-diagnostics = 50
ignore = ["TREE2004"]

[severity]
"HTM3002" = "warning"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color != "never" {
		t.Errorf("output section not applied: %+v", cfg.Output)
	}
	if cfg.Output.Paths != "auto" {
		t.Errorf("untouched key lost its default: %q", cfg.Output.Paths)
	}
	if cfg.Check.MaxDiagnostics != 50 {
		t.Errorf("max-diagnostics = %d", cfg.Check.MaxDiagnostics)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"[output]\nformat = \"yaml\"\n",
		"[output]\ncolor = \"sometimes\"\n",
		"[check]\nmax-diagnostics = 0\n",
		"[severity]\n\"HTM3002\" = \"fatal\"\n",
	} {
		path := writeConfig(t, t.TempDir(), body)
		if _, err := Load(path); err == nil {
			t.Errorf("Load accepted %q", body)
		}
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[output]\nformat = \"pretty\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find() = %v, %v, %v", path, ok, err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %s, want file in %s", path, root)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if cfg.Output.Format != "pretty" || cfg.Check.MaxDiagnostics != 200 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestRewritePolicy(t *testing.T) {
	cfg := Default()
	cfg.Check.Ignore = []string{"TREE2004"}
	cfg.Severity = map[string]string{
		"HTM3002": "warning",
		"ATTR4001": "ignore",
	}

	bag := diag.NewBag(10)
	sp := source.Span{File: 1, Start: 0, End: 1}
	bag.Add(diag.New(diag.SevWarning, diag.TreeMissingDoctype, sp, "a"))
	bag.Add(diag.New(diag.SevError, diag.ContentWrongPosition, sp, "b"))
	bag.Add(diag.New(diag.SevWarning, diag.AttrUnknown, sp, "c"))
	bag.Add(diag.New(diag.SevError, diag.ContentInvalidNesting, sp, "d"))

	out := cfg.Rewrite(bag)
	if out.Len() != 2 {
		t.Fatalf("expected 2 surviving findings, got %d: %v", out.Len(), out.Items())
	}
	if got := out.Items()[0]; got.Code != diag.ContentWrongPosition || got.Severity != diag.SevWarning {
		t.Errorf("severity remap failed: %+v", got)
	}
	if got := out.Items()[1]; got.Code != diag.ContentInvalidNesting || got.Severity != diag.SevError {
		t.Errorf("untouched finding changed: %+v", got)
	}
}
