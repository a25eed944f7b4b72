package fuzztests

import (
	"testing"

	"htmlcheck/internal/lexer"
	"htmlcheck/internal/source"
	"htmlcheck/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// FuzzLexerTokens checks that scanning always terminates and that the
// emitted spans never leave the file.
func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		input = append([]byte(nil), input...)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.html", input))

		lx := lexer.New(file, lexer.Options{})
		size := uint32(len(file.Content))
		var prevEnd uint32
		for {
			tok := lx.Next()
			if tok.Span.End < tok.Span.Start || tok.Span.End > size {
				t.Fatalf("token span %v out of bounds (%d bytes)", tok.Span, size)
			}
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Start < prevEnd {
				t.Fatalf("token at %d overlaps previous token ending at %d", tok.Span.Start, prevEnd)
			}
			prevEnd = tok.Span.End

			if tok.Kind == token.TagOpen {
				it := lexer.Attrs(file, tok)
				for {
					attr, ok := it.Next()
					if !ok {
						break
					}
					if attr.Name.End > size || attr.Name.End < attr.Name.Start {
						t.Fatalf("attr name span %v out of bounds", attr.Name)
					}
				}
			}
		}
	})
}
