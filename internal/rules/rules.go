// Package rules implements the declarative attribute rule vocabulary
// and the single attribute-walking primitive every element descriptor
// reuses. A walk never halts early: an element with five bad
// attributes reports all five in one pass.
package rules

import (
	"fmt"
	"strings"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/lexer"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/token"
	"htmlcheck/internal/tree"
)

// Ctx bundles what a validator needs: the file, the tree, the node
// being validated, the reporter, and the document-wide state.
type Ctx struct {
	File *source.File
	Tree *tree.Tree
	Node tree.NodeID
	Rep  diag.Reporter
	Doc  *DocState
}

// DocState carries cross-node invariants for one document pass,
// currently the seen-ids map enforcing id uniqueness.
type DocState struct {
	ids map[string]source.Span
}

// NewDocState creates empty document state for one validation pass.
func NewDocState() *DocState {
	return &DocState{ids: make(map[string]source.Span)}
}

// noteID records an id value. The second result is true when the id
// was already declared, with the first declaration's span.
func (d *DocState) noteID(id string, sp source.Span) (source.Span, bool) {
	if first, ok := d.ids[id]; ok {
		return first, true
	}
	d.ids[id] = sp
	return source.Span{}, false
}

// Problem is one validator finding. A zero Code means invalid value; a
// zero Span means the attribute name span.
type Problem struct {
	Code diag.Code
	Msg  string
	Span source.Span
	Note *diag.Note
}

// Rule validates one attribute occurrence. Implementations form the
// closed vocabulary in kinds.go.
type Rule interface {
	Check(ctx *Ctx, attr token.Attr) []Problem
}

// Attribute is one row of an element's attribute table.
type Attribute struct {
	Name     string
	Rule     Rule
	Required bool
	Desc     string
}

// Set is an ordered attribute table with case-insensitive lookup.
type Set struct {
	attrs []Attribute
	index map[string]int
}

// NewSet builds a Set; names must already be lowercase.
func NewSet(attrs ...Attribute) *Set {
	s := &Set{
		attrs: attrs,
		index: make(map[string]int, len(attrs)),
	}
	for i, a := range attrs {
		s.index[a.Name] = i
	}
	return s
}

// Lookup resolves a folded attribute name.
func (s *Set) Lookup(folded string) (*Attribute, bool) {
	if s == nil {
		return nil, false
	}
	if i, ok := s.index[folded]; ok {
		return &s.attrs[i], true
	}
	return nil, false
}

// Names lists the table's attribute names in declaration order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		out[i] = a.Name
	}
	return out
}

// Each visits every row in declaration order.
func (s *Set) Each(fn func(Attribute)) {
	if s == nil {
		return
	}
	for _, a := range s.attrs {
		fn(a)
	}
}

// ValueText extracts an attribute's raw value. ok is false when the
// attribute has no value part at all.
func (ctx *Ctx) ValueText(attr token.Attr) (string, bool) {
	if attr.Value == nil {
		return "", false
	}
	return string(attr.Value.Span.Text(ctx.File)), true
}

// valueSpan picks the best span for a value problem.
func valueSpan(attr token.Attr) source.Span {
	if attr.Value != nil && !attr.Value.Span.Empty() {
		return attr.Value.Span
	}
	return attr.Name
}

// openToken rebuilds the start tag token for the node so the lazy
// attribute iterator can re-scan it.
func (ctx *Ctx) openToken() token.Token {
	n := ctx.Tree.Get(ctx.Node)
	return token.Token{Kind: token.TagOpen, Span: n.Span, Name: n.Name}
}

// AttrValue scans the node's start tag for the named attribute (given
// lowercase) and returns its raw value. ok is false when the attribute
// is absent; a bare attribute yields "", true.
func AttrValue(ctx *Ctx, name string) (string, bool) {
	it := lexer.Attrs(ctx.File, ctx.openToken())
	for {
		attr, more := it.Next()
		if !more {
			return "", false
		}
		if attr.Duplicate {
			continue
		}
		if tags.FoldName(attr.Name.Text(ctx.File)) == name {
			val, _ := ctx.ValueText(attr)
			return val, true
		}
	}
}

// Walk runs the element's attribute table over every attribute of the
// node's start tag. Resolution order per attribute: the element's own
// set, then the global set, then the accepted prefixes (data-, aria-,
// on*), then an unknown-attribute diagnostic. Duplicate names are
// diagnosed once, without re-validation. Required rows missing from
// the tag are reported at the tag name.
func Walk(ctx *Ctx, set *Set) {
	it := lexer.Attrs(ctx.File, ctx.openToken())
	seen := make(map[string]source.Span)

	for {
		attr, ok := it.Next()
		if !ok {
			break
		}
		folded := tags.FoldName(attr.Name.Text(ctx.File))

		if attr.Duplicate {
			rb := diag.ReportError(ctx.Rep, diag.AttrDuplicate, attr.Name,
				fmt.Sprintf("duplicate attribute %q", folded)).WithNode(uint32(ctx.Node))
			if first, ok := seen[folded]; ok {
				rb.WithNote(first, "first declared here")
			}
			rb.Emit()
			continue
		}
		seen[folded] = attr.Name

		if folded == "id" {
			checkID(ctx, attr)
			continue
		}

		rule := resolveRule(set, folded)
		if rule == nil {
			diag.ReportWarning(ctx.Rep, diag.AttrUnknown, attr.Name,
				fmt.Sprintf("attribute %q is not valid on <%s>", folded, ctx.Tree.TagName(ctx.Node))).
				WithNode(uint32(ctx.Node)).Emit()
			continue
		}

		for _, p := range rule.Check(ctx, attr) {
			emitProblem(ctx, attr, p)
		}
	}

	checkRequired(ctx, set, seen)
}

func resolveRule(set *Set, folded string) Rule {
	if a, ok := set.Lookup(folded); ok {
		return a.Rule
	}
	if a, ok := Global.Lookup(folded); ok {
		return a.Rule
	}
	if strings.HasPrefix(folded, "data-") ||
		strings.HasPrefix(folded, "aria-") ||
		strings.HasPrefix(folded, "on") {
		return Any{}
	}
	return nil
}

func checkID(ctx *Ctx, attr token.Attr) {
	val, ok := ctx.ValueText(attr)
	switch {
	case !ok || val == "":
		diag.ReportError(ctx.Rep, diag.AttrMissingValue, attr.Name,
			"id requires a non-empty value").WithNode(uint32(ctx.Node)).Emit()
	case strings.ContainsAny(val, " \t\n\r\f"):
		diag.ReportError(ctx.Rep, diag.AttrInvalidValue, valueSpan(attr),
			"id must not contain whitespace").WithNode(uint32(ctx.Node)).Emit()
	default:
		if first, dup := ctx.Doc.noteID(val, valueSpan(attr)); dup {
			diag.ReportError(ctx.Rep, diag.AttrDuplicateID, valueSpan(attr),
				fmt.Sprintf("id %q is already used", val)).
				WithNote(first, "first declared here").
				WithNode(uint32(ctx.Node)).Emit()
		}
	}
}

func checkRequired(ctx *Ctx, set *Set, seen map[string]source.Span) {
	set.Each(func(a Attribute) {
		if !a.Required {
			return
		}
		if _, ok := seen[a.Name]; !ok {
			diag.ReportError(ctx.Rep, diag.AttrMissingRequired, ctx.Tree.Get(ctx.Node).Name,
				fmt.Sprintf("<%s> requires the %q attribute", ctx.Tree.TagName(ctx.Node), a.Name)).
				WithNode(uint32(ctx.Node)).Emit()
		}
	})
}

func emitProblem(ctx *Ctx, attr token.Attr, p Problem) {
	code := p.Code
	if code == 0 {
		code = diag.AttrInvalidValue
	}
	sp := p.Span
	if sp == (source.Span{}) {
		sp = valueSpan(attr)
	}
	rb := diag.Report(ctx.Rep, diag.SevError, code, sp, p.Msg).WithNode(uint32(ctx.Node))
	if p.Note != nil {
		rb.WithNote(p.Note.Span, p.Note.Msg)
	}
	rb.Emit()
}
