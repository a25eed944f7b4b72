package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const validPage = `<!DOCTYPE html>
<html>
<head><title>ok</title></head>
<body><p>fine</p></body>
</html>
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.html", "<p>hi</p>")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(res.Tokens) != 4 { // tag_open, text, tag_close, eof
		t.Errorf("expected 4 tokens, got %d", len(res.Tokens))
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestTokenizeReportsLexErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.html", "<p foo")
	res, err := Tokenize(path, 10)
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Error("unclosed tag should produce a lexer finding")
	}
}

func TestCheckSingleFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.html", validPage)
	_, res, err := Check(path, 50)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Errorf("valid page produced diagnostics: %v", res.Bag.Items())
	}
}

func TestCheckPathsParallel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.html", validPage)
	writeFile(t, dir, "bad.html", "<html><body><ul><td>x</td></ul></body></html>")
	writeFile(t, dir, "notes.txt", "not html")

	files, err := ExpandPaths([]string{dir})
	if err != nil {
		t.Fatalf("ExpandPaths() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 html files, got %v", files)
	}

	_, results, err := CheckPaths(context.Background(), files, 50, 2)
	if err != nil {
		t.Fatalf("CheckPaths() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Sorted order puts bad.html first.
	if !results[0].Bag.HasErrors() {
		t.Errorf("bad.html should have errors: %v", results[0].Bag.Items())
	}
	if results[1].Bag.HasErrors() {
		t.Errorf("good.html should be clean: %v", results[1].Bag.Items())
	}
}

func TestCheckPathsMissingFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.html", validPage)
	missing := filepath.Join(dir, "gone.html")

	_, results, err := CheckPaths(context.Background(), []string{missing, good}, 50, 0)
	if err != nil {
		t.Fatalf("CheckPaths() error: %v", err)
	}
	if !results[0].Bag.HasErrors() {
		t.Error("missing file should yield an I/O finding")
	}
	if results[1].Bag.HasErrors() {
		t.Errorf("good file affected by missing sibling: %v", results[1].Bag.Items())
	}
}

func TestComplete(t *testing.T) {
	content := "<html><body><select></select></body></html>"
	path := writeFile(t, t.TempDir(), "a.html", content)

	off := uint32(len("<html><body><select>"))
	res, err := Complete(path, off)
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	found := false
	for _, c := range res.Completions {
		if c.Label == "option" {
			found = true
		}
	}
	if !found {
		t.Errorf("select should offer option, got %v", res.Completions)
	}

	if _, err := Complete(path, uint32(len(content))+10); err == nil {
		t.Error("offset past EOF should fail")
	}
}

func TestOffsetOf(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.html", "ab\ncd\n")
	res, err := Parse(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	off, err := OffsetOf(res.File, 2, 1)
	if err != nil || off != 3 {
		t.Errorf("OffsetOf(2,1) = %d, %v, want 3", off, err)
	}
	if _, err := OffsetOf(res.File, 9, 1); err == nil {
		t.Error("line past EOF should fail")
	}
}
