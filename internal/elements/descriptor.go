// Package elements is the per-element descriptor catalog: one record
// per known tag holding the element's classification, its attribute
// table, and, for the handful of elements with sequential grammars,
// custom validate/completions hooks. The catalog is plain data plus
// function values; it talks to the tree through node indexes only.
package elements

import (
	"fmt"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

// Completion is one candidate offered at a cursor position.
type Completion struct {
	Label string
	Desc  string
}

// Descriptor is one catalog record.
type Descriptor struct {
	// Model is the element's static classification. When DynModel is
	// set it wins and Model is the fallback for documentation.
	Model model.Model

	// DynModel computes the classification from the node's own
	// attributes (an anchor with href is interactive, one without is
	// not).
	DynModel func(ctx *rules.Ctx) model.Model

	// Attrs is the element's own attribute table, consulted before the
	// global one. Nil means global attributes only.
	Attrs *rules.Set

	// ValidateAttrs replaces the standard attribute walk entirely for
	// elements whose attribute story is not table-shaped.
	ValidateAttrs func(ctx *rules.Ctx)

	// Validate runs the element's sequential child grammar. Only
	// meaningful with Model.Content == ContentCustom.
	Validate func(ctx *rules.Ctx)

	// Completions proposes children at a cursor offset inside the
	// element's content. Nil falls back to the generic category
	// enumerator.
	Completions func(ctx *rules.Ctx, off uint32) []Completion

	// Desc is the hover/completion description text.
	Desc string
}

var catalog [tags.Count]*Descriptor

func register(t tags.Tag, d *Descriptor) {
	if catalog[t] != nil {
		panic("descriptor registered twice for " + t.String())
	}
	catalog[t] = d
}

// Get returns the descriptor for a tag, or nil for tags.Unknown and
// any tag without a record.
func Get(t tags.Tag) *Descriptor {
	if int(t) >= len(catalog) {
		return nil
	}
	return catalog[t]
}

// ModelFor resolves the effective model of the node, running the
// dynamic classifier when the descriptor has one.
func (d *Descriptor) ModelFor(ctx *rules.Ctx) model.Model {
	if d.DynModel != nil {
		return d.DynModel(ctx)
	}
	return d.Model
}

// elementChildren collects the node's element children in order,
// skipping text and comments.
func elementChildren(ctx *rules.Ctx) []tree.NodeID {
	var out []tree.NodeID
	for _, id := range ctx.Tree.Children(ctx.Node) {
		if ctx.Tree.Get(id).Kind == tree.KindElement {
			out = append(out, id)
		}
	}
	return out
}

// hasMeaningfulText reports whether the node has a non-whitespace text
// child.
func hasMeaningfulText(ctx *rules.Ctx) bool {
	for _, id := range ctx.Tree.Children(ctx.Node) {
		n := ctx.Tree.Get(id)
		if n.Kind == tree.KindText && n.Flags&tree.FlagWhitespaceText == 0 {
			return true
		}
	}
	return false
}

// rejectText reports non-whitespace text children, for the sequential
// grammars whose parents take no character data.
func rejectText(ctx *rules.Ctx) {
	for _, id := range ctx.Tree.Children(ctx.Node) {
		n := ctx.Tree.Get(id)
		if n.Kind == tree.KindText && n.Flags&tree.FlagWhitespaceText == 0 {
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Span,
				fmt.Sprintf("text is not allowed inside <%s>", ctx.Tree.TagName(ctx.Node))).
				WithNode(uint32(id)).Emit()
		}
	}
}

// GenericCompletions enumerates the catalog elements whose static
// categories satisfy the content spec, in tag order. Custom hooks and
// the cursor fallback both build on it.
func GenericCompletions(content model.Content) []Completion {
	spec := model.Model{Content: content}
	var out []Completion
	for t := tags.Tag(1); t < tags.Count; t++ {
		d := catalog[t]
		if d == nil {
			continue
		}
		if spec.AcceptsCats(d.Model.Cats) {
			out = append(out, Completion{Label: t.Name(), Desc: d.Desc})
		}
	}
	return out
}

// childCats classifies a child node for grammar checks, running the
// dynamic model when the child's descriptor has one. Unknown elements
// classify permissively.
func childCats(ctx *rules.Ctx, id tree.NodeID) model.Categories {
	d := Get(ctx.Tree.Get(id).Tag)
	if d == nil {
		return model.Flow | model.Phrasing
	}
	cctx := *ctx
	cctx.Node = id
	return d.ModelFor(&cctx).Cats
}

// hasAttr reports whether the node's start tag carries the attribute,
// and returns its folded value.
func hasAttr(ctx *rules.Ctx, name string) (string, bool) {
	return rules.AttrValue(ctx, name)
}
