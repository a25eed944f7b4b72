package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"htmlcheck/internal/lexer"
	"htmlcheck/internal/source"
	"htmlcheck/internal/token"
)

// AttrOutput is one start-tag attribute for JSON output.
type AttrOutput struct {
	Name      string `json:"name"`
	Value     string `json:"value,omitempty"`
	HasValue  bool   `json:"has_value"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// TokenOutput is one token for JSON output.
type TokenOutput struct {
	Kind        string       `json:"kind"`
	Name        string       `json:"name,omitempty"`
	Span        source.Span  `json:"span"`
	SelfClosing bool         `json:"self_closing,omitempty"`
	Attrs       []AttrOutput `json:"attrs,omitempty"`
}

func tokenAttrs(f *source.File, tok token.Token) []AttrOutput {
	if tok.Kind != token.TagOpen {
		return nil
	}
	var out []AttrOutput
	it := lexer.Attrs(f, tok)
	for {
		attr, ok := it.Next()
		if !ok {
			return out
		}
		a := AttrOutput{
			Name:      string(attr.Name.Text(f)),
			Duplicate: attr.Duplicate,
		}
		if attr.Value != nil {
			a.HasValue = true
			a.Value = string(attr.Value.Span.Text(f))
		}
		out = append(out, a)
	}
}

// FormatTokensPretty writes the token stream in a human-readable form,
// one token per line with its source position.
func FormatTokensPretty(w io.Writer, f *source.File, toks []token.Token, fs *source.FileSet) error {
	for i, tok := range toks {
		startPos, endPos := fs.Resolve(tok.Span)
		fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String())
		if !tok.Name.Empty() {
			fmt.Fprintf(w, " %q", tok.NameText(f))
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if tok.SelfClosing {
			fmt.Fprint(w, " (self-closing)")
		}
		for _, a := range tokenAttrs(f, tok) {
			fmt.Fprintf(w, " %s", a.Name)
			if a.HasValue {
				fmt.Fprintf(w, "=%q", a.Value)
			}
		}
		fmt.Fprintln(w)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, f *source.File, toks []token.Token) error {
	var output []TokenOutput
	for _, tok := range toks {
		tokenOut := TokenOutput{
			Kind:        tok.Kind.String(),
			Span:        tok.Span,
			SelfClosing: tok.SelfClosing,
			Attrs:       tokenAttrs(f, tok),
		}
		if !tok.Name.Empty() {
			tokenOut.Name = string(tok.NameText(f))
		}
		output = append(output, tokenOut)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
