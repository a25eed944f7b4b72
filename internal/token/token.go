// Package token defines the HTML token variants produced by the lexer.
// Tokens carry spans, never copied text: consumers slice the file
// content on demand.
package token

import (
	"htmlcheck/internal/source"
)

// Kind represents the category of an HTML token.
type Kind uint8

const (
	// EOF marks the end of the input.
	EOF Kind = iota
	// TagOpen is a start tag, `<name ...>`.
	TagOpen
	// TagClose is an end tag, `</name>`.
	TagClose
	// Text is a run of character data.
	Text
	// Comment is `<!-- ... -->`.
	Comment
	// Doctype is `<!doctype ...>`.
	Doctype
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case TagOpen:
		return "tag_open"
	case TagClose:
		return "tag_close"
	case Text:
		return "text"
	case Comment:
		return "comment"
	case Doctype:
		return "doctype"
	}
	return "invalid"
}

// Quote records how an attribute value was delimited.
type Quote uint8

const (
	Unquoted Quote = iota
	SingleQuoted
	DoubleQuoted
)

// AttrValue is the value part of an attribute, when present.
type AttrValue struct {
	Span  source.Span // value bytes, quotes excluded
	Quote Quote
}

// Attr is one attribute of a start tag. Duplicate marks a repeated
// (case-insensitive) name; its first occurrence was already yielded.
type Attr struct {
	Name      source.Span
	Value     *AttrValue
	Duplicate bool
}

// Token is one HTML token. Span covers the whole token; Name covers the
// tag name for TagOpen/TagClose and is empty otherwise. Attributes of a
// TagOpen are not materialized here: the lexer re-scans Span lazily via
// an AttrIter, so consumers that never look at attributes pay nothing.
type Token struct {
	Kind        Kind
	Span        source.Span
	Name        source.Span
	SelfClosing bool
}

// NameText returns the raw tag name bytes.
func (t Token) NameText(f *source.File) []byte {
	return t.Name.Text(f)
}
