package tree

import (
	"fmt"

	"fortio.org/safecast"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/lexer"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/token"
)

// lexReporter maps the lexer's thin report kinds onto diagnostic codes.
type lexReporter struct {
	rep diag.Reporter
}

func (a lexReporter) Report(kind string, sp source.Span, msg string) {
	code := diag.UnknownCode
	switch kind {
	case lexer.KindUnclosedTag:
		code = diag.LexUnclosedTag
	case lexer.KindUnclosedComment:
		code = diag.LexUnclosedComment
	case lexer.KindUnclosedDoctype:
		code = diag.LexUnclosedDoctype
	case lexer.KindUnclosedRawText:
		code = diag.LexUnclosedRawText
	}
	a.rep.Report(diag.New(diag.SevError, code, sp, msg))
}

type builder struct {
	file *source.File
	rep  diag.Reporter
	t    *Tree
	// stack holds the open elements; stack[0] is the root sentinel.
	stack []NodeID
	// last tracks the most recent child of every open node so
	// siblings can be linked in one pass.
	last map[NodeID]NodeID
	// foreignDepth counts open <svg>/<math> roots.
	foreignDepth int
	eof          uint32
}

// Parse builds the document tree. It never fails: malformed input
// produces diagnostics, not errors, and the tree is always returned.
func Parse(file *source.File, rep diag.Reporter) *Tree {
	if rep == nil {
		rep = diag.NopReporter{}
	}

	eof, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file length overflow: %w", err))
	}

	b := &builder{
		file:  file,
		rep:   rep,
		stack: []NodeID{Root},
		last:  make(map[NodeID]NodeID),
		eof:   eof,
	}
	b.t = &Tree{File: file, Nodes: make([]Node, 1, 64)}
	b.t.Nodes[Root] = Node{
		Kind:    KindRoot,
		Content: source.Span{File: file.ID, Start: 0, End: eof},
	}

	lx := lexer.New(file, lexer.Options{Reporter: lexReporter{rep}})
	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.EOF:
			b.finish()
			return b.t
		case token.TagOpen:
			b.openTag(tok)
		case token.TagClose:
			b.closeTag(tok)
		case token.Text:
			b.text(tok)
		case token.Comment:
			b.leaf(KindComment, tok)
		case token.Doctype:
			b.leaf(KindDoctype, tok)
		}
	}
}

// alloc appends a node and links it as the next child of the open
// element.
func (b *builder) alloc(n Node) NodeID {
	parent := b.stack[len(b.stack)-1]
	n.Parent = parent

	id, err := safecast.Conv[uint32](len(b.t.Nodes))
	if err != nil {
		panic(fmt.Errorf("node count overflow: %w", err))
	}
	b.t.Nodes = append(b.t.Nodes, n)

	nid := NodeID(id)
	if prev, ok := b.last[parent]; ok {
		b.t.Nodes[prev].Next = nid
	} else {
		b.t.Nodes[parent].First = nid
	}
	b.last[parent] = nid
	return nid
}

func (b *builder) openTag(tok token.Token) {
	tag, known := tags.Lookup(tok.NameText(b.file))
	inForeign := b.foreignDepth > 0

	n := Node{
		Kind: KindElement,
		Tag:  tag,
		Span: tok.Span,
		Name: tok.Name,
		// Until the close tag arrives the content reaches EOF.
		Content: source.Span{File: b.file.ID, Start: tok.Span.End, End: b.eof},
	}
	if tok.SelfClosing {
		n.Flags |= FlagSelfClosing
	}
	if inForeign {
		n.Flags |= FlagForeign
	}
	if tag.IsForeignRoot() {
		n.Flags |= FlagForeignRoot
	}

	void := known && tag.IsVoid() && !inForeign
	open := !void && !tok.SelfClosing
	if !open {
		n.Content = source.Span{File: b.file.ID, Start: tok.Span.End, End: tok.Span.End}
		n.Flags |= FlagClosed
	}

	if !inForeign {
		if !known {
			diag.ReportWarning(b.rep, diag.TreeUnknownElement, tok.Name, "unknown element name").Emit()
		}
		if tok.SelfClosing && known && !void && !tag.IsForeignRoot() {
			diag.ReportWarning(b.rep, diag.TreeSelfClosingNonVoid, tok.Span,
				"self-closing syntax has no effect on a non-void element").Emit()
		}
	}

	id := b.alloc(n)
	if open {
		b.stack = append(b.stack, id)
		if tag.IsForeignRoot() {
			b.foreignDepth++
		}
	}
}

func (b *builder) closeTag(tok token.Token) {
	folded := tags.FoldName(tok.NameText(b.file))

	// Search the open stack from the top for a matching name.
	match := -1
	for i := len(b.stack) - 1; i > 0; i-- {
		if b.t.TagName(b.stack[i]) == folded {
			match = i
			break
		}
	}

	if match < 0 {
		if tag, known := tags.Lookup(tok.NameText(b.file)); known && tag.IsVoid() && b.foreignDepth == 0 {
			diag.ReportWarning(b.rep, diag.TreeVoidWithCloseTag, tok.Span,
				fmt.Sprintf("void element <%s> has no close tag", tag.Name())).Emit()
		} else {
			diag.ReportError(b.rep, diag.TreeStrayCloseTag, tok.Span,
				fmt.Sprintf("</%s> has no matching open tag", folded)).Emit()
		}
		return
	}

	if match != len(b.stack)-1 {
		rb := diag.ReportError(b.rep, diag.TreeMismatchedClose, tok.Span,
			fmt.Sprintf("</%s> closes over elements that are still open", folded))
		for i := len(b.stack) - 1; i > match; i-- {
			rb.WithNote(b.t.Nodes[b.stack[i]].Span, fmt.Sprintf("<%s> is still open", b.t.TagName(b.stack[i])))
		}
		rb.Emit()
	}

	// Pop through the match; intervening elements end where the close
	// tag begins and stay unclosed.
	for i := len(b.stack) - 1; i >= match; i-- {
		node := &b.t.Nodes[b.stack[i]]
		node.Content.End = tok.Span.Start
		if node.Has(FlagForeignRoot) {
			b.foreignDepth--
		}
		if i == match {
			node.Flags |= FlagClosed
			node.Close = tok.Span
		}
	}
	b.stack = b.stack[:match]
}

func (b *builder) text(tok token.Token) {
	n := Node{Kind: KindText, Span: tok.Span, Content: tok.Span}
	if wsOnly(tok.Span.Text(b.file)) {
		n.Flags |= FlagWhitespaceText
	}
	if b.foreignDepth > 0 {
		n.Flags |= FlagForeign
	}
	b.alloc(n)
}

func (b *builder) leaf(kind Kind, tok token.Token) {
	n := Node{Kind: kind, Span: tok.Span, Content: tok.Span}
	if b.foreignDepth > 0 {
		n.Flags |= FlagForeign
	}
	b.alloc(n)
}

func (b *builder) finish() {
	for i := len(b.stack) - 1; i > 0; i-- {
		node := &b.t.Nodes[b.stack[i]]
		diag.ReportError(b.rep, diag.TreeUnclosedElement, node.Span,
			fmt.Sprintf("<%s> is never closed", b.t.TagName(b.stack[i]))).Emit()
	}
	b.stack = b.stack[:1]
}

func wsOnly(b []byte) bool {
	for _, c := range b {
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '\f' {
			return false
		}
	}
	return true
}
