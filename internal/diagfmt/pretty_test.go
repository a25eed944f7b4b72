package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/source"
)

func fixture(t *testing.T) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("<html>\n<head><base href=\"/a\"><base href=\"/b\"></head>\n</html>\n")
	fileID := fs.AddVirtual("page.html", content)

	bag := diag.NewBag(10)
	first := source.Span{File: fileID, Start: 14, End: 18}  // first "base"
	second := source.Span{File: fileID, Start: 30, End: 34} // second "base"
	bag.Add(diag.New(diag.SevError, diag.ContentDuplicateChild, first,
		"at most one <base> is allowed here").
		WithNote(second, "but another appears here"))
	return fs, bag
}

func TestPrettyHeading(t *testing.T) {
	fs, bag := fixture(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	out := buf.String()
	if !strings.Contains(out, "page.html:2:8: ERROR HTM3004: at most one <base> is allowed here") {
		t.Errorf("missing or malformed heading:\n%s", out)
	}
	if !strings.Contains(out, "2 | <head>") {
		t.Errorf("missing source line:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("color escapes without Color option:\n%s", out)
	}
}

func TestPrettyUnderline(t *testing.T) {
	fs, bag := fixture(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	// The span covers the four bytes of "base", seven display cells in.
	want := "| " + strings.Repeat(" ", 7) + "^~~~\n"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("underline %q not found:\n%s", want, buf.String())
	}
}

func TestPrettyNotes(t *testing.T) {
	fs, bag := fixture(t)

	var without bytes.Buffer
	Pretty(&without, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(without.String(), "note:") {
		t.Errorf("notes shown without ShowNotes:\n%s", without.String())
	}

	var with bytes.Buffer
	Pretty(&with, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(with.String(), "note: but another appears here") {
		t.Errorf("note missing with ShowNotes:\n%s", with.String())
	}
}

func TestPrettyContext(t *testing.T) {
	fs, bag := fixture(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})

	out := buf.String()
	if !strings.Contains(out, "1 | <html>") || !strings.Contains(out, "3 | </html>") {
		t.Errorf("context lines missing:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	fs, bag := fixture(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected color escapes:\n%s", buf.String())
	}
}
