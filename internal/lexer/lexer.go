// Package lexer turns HTML bytes into a stream of span-addressed
// tokens. Malformed input never aborts scanning: the lexer always
// terminates and always produces a stream, deferring legality questions
// to later layers.
package lexer

import (
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token buffer
	// raw is the folded name of the currently open raw text element;
	// empty means normal data scanning.
	raw     string
	rawOpen source.Span
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize scans the whole file in one call.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.raw != "" {
		return lx.scanRawText()
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	if lx.atMarkupStart() {
		return lx.scanMarkup()
	}
	return lx.scanText()
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// atMarkupStart reports whether the cursor sits on a '<' that actually
// opens markup. A lone '<' followed by anything else is character data.
func (lx *Lexer) atMarkupStart() bool {
	if lx.cursor.Peek() != '<' {
		return false
	}
	b := lx.cursor.PeekAt(1)
	return isASCIILetter(b) || b == '/' || b == '!' || b == '?'
}

func (lx *Lexer) scanText() token.Token {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() && !lx.atMarkupStart() {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.Text, Span: lx.cursor.SpanFrom(m)}
}

func (lx *Lexer) scanMarkup() token.Token {
	switch lx.cursor.PeekAt(1) {
	case '/':
		return lx.scanClose()
	case '!':
		if lx.cursor.PeekAt(2) == '-' && lx.cursor.PeekAt(3) == '-' {
			return lx.scanComment()
		}
		if lx.matchFoldAt(2, "doctype") {
			return lx.scanDoctype()
		}
		return lx.scanBogusComment()
	case '?':
		return lx.scanBogusComment()
	default:
		return lx.scanOpen()
	}
}

func (lx *Lexer) scanOpen() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump() // '<'

	nameMark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isNameByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	nameSpan := lx.cursor.SpanFrom(nameMark)

	selfClosing := false
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '>':
			lx.cursor.Bump()
			closed = true
		case b == '/' && lx.cursor.PeekAt(1) == '>':
			lx.cursor.Bump()
			lx.cursor.Bump()
			selfClosing = true
			closed = true
		case b == '"' || b == '\'':
			lx.cursor.Bump()
			for !lx.cursor.EOF() && lx.cursor.Peek() != b {
				lx.cursor.Bump()
			}
			lx.cursor.Eat(b)
		default:
			lx.cursor.Bump()
		}
		if closed {
			break
		}
	}

	tok := token.Token{
		Kind:        token.TagOpen,
		Span:        lx.cursor.SpanFrom(m),
		Name:        nameSpan,
		SelfClosing: selfClosing,
	}
	if !closed {
		lx.report(KindUnclosedTag, tok.Span, "tag is not closed before end of file")
	}

	folded := tags.FoldName(nameSpan.Text(lx.file))
	if closed && !selfClosing && tags.IsRawTextName(folded) {
		lx.raw = folded
		lx.rawOpen = tok.Span
	}
	return tok
}

func (lx *Lexer) scanClose() token.Token {
	if !isASCIILetter(lx.cursor.PeekAt(2)) {
		// "</" not followed by a letter is parsed as a bogus comment.
		return lx.scanBogusComment()
	}

	m := lx.cursor.Mark()
	lx.cursor.Bump() // '<'
	lx.cursor.Bump() // '/'

	nameMark := lx.cursor.Mark()
	for !lx.cursor.EOF() && isNameByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	nameSpan := lx.cursor.SpanFrom(nameMark)

	closed := false
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '>' {
			closed = true
			break
		}
	}

	tok := token.Token{
		Kind: token.TagClose,
		Span: lx.cursor.SpanFrom(m),
		Name: nameSpan,
	}
	if !closed {
		lx.report(KindUnclosedTag, tok.Span, "close tag is not closed before end of file")
	}
	return tok
}

func (lx *Lexer) scanComment() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Off += 4 // "<!--"

	closed := false
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '-' && lx.cursor.PeekAt(1) == '-' && lx.cursor.PeekAt(2) == '>' {
			lx.cursor.Off += 3
			closed = true
			break
		}
		lx.cursor.Bump()
	}

	tok := token.Token{Kind: token.Comment, Span: lx.cursor.SpanFrom(m)}
	if !closed {
		lx.report(KindUnclosedComment, tok.Span, "comment is not closed before end of file")
	}
	return tok
}

func (lx *Lexer) scanDoctype() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Off += 2 // "<!"
	for i := 0; i < len("doctype"); i++ {
		lx.cursor.Bump()
	}

	closed := false
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '>' {
			closed = true
			break
		}
	}

	tok := token.Token{Kind: token.Doctype, Span: lx.cursor.SpanFrom(m)}
	if !closed {
		lx.report(KindUnclosedDoctype, tok.Span, "doctype is not closed before end of file")
	}
	return tok
}

// scanBogusComment consumes "<!", "<?", or "</" junk up to and
// including the next '>' and yields it as a comment token.
func (lx *Lexer) scanBogusComment() token.Token {
	m := lx.cursor.Mark()
	lx.cursor.Bump() // '<'
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '>' {
			break
		}
	}
	return token.Token{Kind: token.Comment, Span: lx.cursor.SpanFrom(m)}
}

// scanRawText looks only for the matching case-insensitive end tag of
// the open raw text element; '<' and '>' inside are plain data.
func (lx *Lexer) scanRawText() token.Token {
	m := lx.cursor.Mark()

	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '<' && lx.cursor.PeekAt(1) == '/' && lx.matchFoldAt(2, lx.raw) {
			after := lx.cursor.PeekAt(2 + uint32(len(lx.raw)))
			if after == '>' || after == '/' || isWhitespace(after) || after == 0 {
				break
			}
		}
		lx.cursor.Bump()
	}

	textSpan := lx.cursor.SpanFrom(m)

	if lx.cursor.EOF() {
		lx.report(KindUnclosedRawText, lx.rawOpen, "raw text element has no matching end tag")
		lx.raw = ""
		if textSpan.Empty() {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}
		return token.Token{Kind: token.Text, Span: textSpan}
	}

	lx.raw = ""
	closeTok := lx.scanClose()
	if textSpan.Empty() {
		return closeTok
	}
	lx.look = &closeTok
	return token.Token{Kind: token.Text, Span: textSpan}
}

// matchFoldAt compares name case-insensitively against the bytes
// starting n positions ahead of the cursor.
func (lx *Lexer) matchFoldAt(n uint32, name string) bool {
	for i := 0; i < len(name); i++ {
		b := lx.cursor.PeekAt(n + uint32(i))
		if b|0x20 != name[i]|0x20 {
			return false
		}
	}
	return true
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isNameByte matches bytes that continue a tag name.
func isNameByte(b byte) bool {
	return !isWhitespace(b) && b != '>' && b != '/' && b != 0
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
