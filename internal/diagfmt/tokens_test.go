package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"htmlcheck/internal/lexer"
	"htmlcheck/internal/source"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.html", []byte(`<p class="x">hi</p>`)))
	toks := lexer.Tokenize(f, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, f, toks, fs); err != nil {
		t.Fatalf("FormatTokensPretty() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"tag_open", `"p"`, `class="x"`, "text", "tag_close", "eof"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.html", []byte(`<br/>`)))
	toks := lexer.Tokenize(f, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, f, toks); err != nil {
		t.Fatalf("FormatTokensJSON() error: %v", err)
	}

	var output []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON output: %v\noutput: %s", err, buf.String())
	}
	if len(output) != 2 {
		t.Fatalf("expected tag_open and eof, got %d tokens", len(output))
	}
	if output[0].Kind != "tag_open" || output[0].Name != "br" || !output[0].SelfClosing {
		t.Errorf("unexpected first token: %+v", output[0])
	}
}
