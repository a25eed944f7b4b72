package diag

import (
	"htmlcheck/internal/source"
)

// Note is a secondary span attached to a diagnostic for context, e.g.
// "first declared here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single structured validation finding. Node is the
// index of the owning tree node, 0 when the finding is not tied to one.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Node     uint32
	Notes    []Note
}

// New constructs a diagnostic without notes.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// WithNote returns a copy of the diagnostic with one more note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// WithNode returns a copy of the diagnostic owned by the given node.
func (d Diagnostic) WithNode(node uint32) Diagnostic {
	d.Node = node
	return d
}
