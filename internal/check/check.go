// Package check drives the semantic pass: it resolves each element's
// model, runs the attribute walk, applies the content-model algebra
// with transparent resolution, and dispatches the custom grammars. It
// also answers editor completion queries against a parsed tree.
package check

import (
	"fmt"
	"strings"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/elements"
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

// Validate runs the full semantic pass over a parsed tree. It never
// aborts: every diagnostic the document deserves is reported through
// rep in one pass.
func Validate(file *source.File, doc *tree.Tree, rep diag.Reporter) {
	v := &validator{
		file:   file,
		doc:    doc,
		rep:    rep,
		state:  rules.NewDocState(),
		models: make([]model.Model, doc.Len()),
	}
	v.checkDoctype()

	for id := tree.NodeID(1); id < tree.NodeID(doc.Len()); {
		n := doc.Get(id)
		if n.Kind != tree.KindElement {
			id++
			continue
		}
		v.element(id)
		if n.Flags&tree.FlagForeignRoot != 0 {
			// Foreign islands are opaque.
			id = doc.Stop(id)
			continue
		}
		id++
	}
}

type validator struct {
	file   *source.File
	doc    *tree.Tree
	rep    diag.Reporter
	state  *rules.DocState
	models []model.Model
}

func (v *validator) ctx(id tree.NodeID) *rules.Ctx {
	return &rules.Ctx{
		File: v.file,
		Tree: v.doc,
		Node: id,
		Rep:  v.rep,
		Doc:  v.state,
	}
}

// checkDoctype wants a doctype before the first element, and wants it
// to be the modern one.
func (v *validator) checkDoctype() {
	for id := tree.NodeID(1); id < tree.NodeID(v.doc.Len()); id++ {
		n := v.doc.Get(id)
		switch n.Kind {
		case tree.KindComment:
			continue
		case tree.KindText:
			if n.Flags&tree.FlagWhitespaceText != 0 {
				continue
			}
		case tree.KindDoctype:
			if !strings.EqualFold(doctypeName(n.Span.Text(v.file)), "html") {
				diag.ReportWarning(v.rep, diag.TreeLegacyDoctype, n.Span,
					"doctype should be exactly <!DOCTYPE html>").WithNode(uint32(id)).Emit()
			}
			return
		}
		break
	}
	diag.ReportWarning(v.rep, diag.TreeMissingDoctype, source.Span{File: v.file.ID},
		"document has no doctype").Emit()
}

func (v *validator) element(id tree.NodeID) {
	n := v.doc.Get(id)
	d := elements.Get(n.Tag)
	if d == nil {
		// Unknown elements were already flagged by the builder; their
		// subtrees still validate against permissive defaults.
		v.models[id] = model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentAll}
		return
	}
	ctx := v.ctx(id)
	v.models[id] = d.ModelFor(ctx)

	if n.Flags&(tree.FlagForeign|tree.FlagForeignRoot) == 0 {
		if d.ValidateAttrs != nil {
			d.ValidateAttrs(ctx)
		} else {
			rules.Walk(ctx, d.Attrs)
		}
	}

	v.ancestors(id)

	if v.models[id].Content == model.ContentCustom {
		if d.Validate != nil {
			d.Validate(ctx)
		}
		return
	}
	v.children(id)
}

// children runs the generic category test for non-custom elements.
func (v *validator) children(id tree.NodeID) {
	spec := v.resolveContent(id)
	for _, child := range v.doc.Children(id) {
		c := v.doc.Get(child)
		switch c.Kind {
		case tree.KindText:
			if c.Flags&tree.FlagWhitespaceText == 0 && !spec.AcceptsText() {
				diag.ReportError(v.rep, diag.ContentInvalidNesting, c.Span,
					fmt.Sprintf("text is not allowed inside <%s>", v.doc.TagName(id))).
					WithNode(uint32(child)).Emit()
			}
		case tree.KindElement:
			if c.Tag == tags.Unknown {
				continue
			}
			cd := elements.Get(c.Tag)
			if cd == nil {
				continue
			}
			cats := cd.ModelFor(v.ctx(child)).Cats
			if !spec.AcceptsCats(cats) {
				diag.ReportError(v.rep, diag.ContentInvalidNesting, c.Name,
					fmt.Sprintf("<%s> (%s) is not allowed inside <%s>, which takes %s",
						v.doc.TagName(child), cats.Describe(),
						v.doc.TagName(id), spec.Content.Describe())).
					WithNode(uint32(child)).Emit()
			}
		}
	}
}

// resolveContent substitutes transparent content models with the
// nearest non-transparent ancestor's. Transparent at the top resolves
// to flow.
func (v *validator) resolveContent(id tree.NodeID) model.Model {
	m := v.models[id]
	for m.Content == model.ContentTransparent {
		id = v.doc.Get(id).Parent
		if id == tree.Root {
			m.Content = model.ContentFlow
			break
		}
		m.Content = v.models[id].Content
	}
	return m
}

// ancestors enforces the subtree-wide bans declared above this node:
// forbidden descendant tags, no-interactive-content subtrees,
// no-tabindex subtrees, and the required-ancestor demand the node's
// own model makes.
func (v *validator) ancestors(id tree.NodeID) {
	n := v.doc.Get(id)
	self := v.models[id]
	hasTabindex := false
	if n.Flags&tree.FlagForeign == 0 {
		_, hasTabindex = rules.AttrValue(v.ctx(id), "tabindex")
	}
	ancestorFound := self.NeedsAncestor == tags.Unknown

	for p := n.Parent; p != tree.Root; p = v.doc.Get(p).Parent {
		if v.doc.Get(p).Tag == self.NeedsAncestor {
			ancestorFound = true
		}
		pm := v.models[p]
		if pm.Forbids(n.Tag) {
			diag.ReportError(v.rep, diag.ContentInvalidNesting, n.Name,
				fmt.Sprintf("<%s> may not appear anywhere inside <%s>",
					v.doc.TagName(id), v.doc.TagName(p))).
				WithNote(v.doc.Get(p).Name, "the enclosing element is here").
				WithNode(uint32(id)).Emit()
		}
		if pm.Extra&model.NoInteractiveDesc != 0 && self.Cats.Overlaps(model.Interactive) {
			diag.ReportError(v.rep, diag.ContentInvalidNesting, n.Name,
				fmt.Sprintf("interactive content is not allowed inside <%s>", v.doc.TagName(p))).
				WithNote(v.doc.Get(p).Name, "the enclosing element is here").
				WithNode(uint32(id)).Emit()
		}
		if pm.Extra&model.NoTabindexDesc != 0 && hasTabindex {
			diag.ReportError(v.rep, diag.AttrInvalidNesting, n.Name,
				fmt.Sprintf("a tabindex attribute is not allowed inside <%s>", v.doc.TagName(p))).
				WithNode(uint32(id)).Emit()
		}
	}

	if !ancestorFound {
		diag.ReportError(v.rep, diag.ContentMissingAncestor, n.Name,
			fmt.Sprintf("<%s> must be inside a <%s> element",
				v.doc.TagName(id), self.NeedsAncestor.Name())).
			WithNode(uint32(id)).Emit()
	}
}

// doctypeName extracts the root element name out of a raw doctype
// token, e.g. "html" from "<!DOCTYPE html>".
func doctypeName(raw []byte) string {
	s := strings.TrimSuffix(string(raw), ">")
	s = strings.TrimPrefix(s, "<!")
	// Anything beyond "<!DOCTYPE html>" (public or system identifiers)
	// is the legacy form.
	fields := strings.Fields(s)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "doctype") {
		return ""
	}
	return fields[1]
}
