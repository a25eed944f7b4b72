package lexer

import (
	"htmlcheck/internal/source"
)

// Reporter is a thin local interface so the lexer does not depend on
// the diag package. The outer layer maps kinds to diagnostic codes.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Report kinds emitted by the lexer.
const (
	KindUnclosedTag     = "unclosed-tag"
	KindUnclosedComment = "unclosed-comment"
	KindUnclosedDoctype = "unclosed-doctype"
	KindUnclosedRawText = "unclosed-raw-text"
)

// Options configures a Lexer. A nil Reporter silently drops findings;
// scanning always continues either way.
type Options struct {
	Reporter Reporter
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
