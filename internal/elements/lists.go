package elements

import (
	"fmt"
	"strconv"
	"strings"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/token"
	"htmlcheck/internal/tree"
)

func init() {
	register(tags.Ol, &Descriptor{
		Model: model.Model{Cats: model.Flow, Content: model.ContentCustom},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "reversed", Rule: rules.Bool{}, Desc: "Number the items in descending order."},
			rules.Attribute{Name: "start", Rule: rules.Custom{Fn: anyIntValue},
				Desc: "Ordinal value of the first item."},
			rules.Attribute{Name: "type", Rule: rules.Enum("1", "a", "A", "i", "I"),
				Desc: "Numbering style."},
		),
		Validate:    validateListItems,
		Completions: completeListItems,
		Desc:        "Ordered list.",
	})
	register(tags.Ul, &Descriptor{
		Model:       model.Model{Cats: model.Flow, Content: model.ContentCustom},
		Validate:    validateListItems,
		Completions: completeListItems,
		Desc:        "Unordered list.",
	})
	register(tags.Menu, &Descriptor{
		Model:       model.Model{Cats: model.Flow, Content: model.ContentCustom},
		Validate:    validateListItems,
		Completions: completeListItems,
		Desc:        "Toolbar or list of commands.",
	})
	register(tags.Li, &Descriptor{
		Model: model.Model{Content: model.ContentFlow},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "value", Rule: rules.Custom{Fn: liValue},
				Desc: "Ordinal value of the item, ordered lists only."},
		),
		Desc: "List item.",
	})
	register(tags.Dl, &Descriptor{
		Model:       model.Model{Cats: model.Flow, Content: model.ContentCustom},
		Validate:    validateDl,
		Completions: completeDl,
		Desc:        "Description list of term/description groups.",
	})
	register(tags.Dt, &Descriptor{
		Model: model.Model{Content: model.ContentFlow,
			Forbidden: []tags.Tag{tags.Header, tags.Footer}},
		Desc: "Term in a description list.",
	})
	register(tags.Dd, &Descriptor{
		Model: model.Model{Content: model.ContentFlow},
		Desc:  "Description in a description list.",
	})
	register(tags.Datalist, &Descriptor{
		Model: model.Model{Cats: model.Flow | model.Phrasing, Content: model.ContentCustom},
		Validate: func(ctx *rules.Ctx) {
			// Either phrasing content or option elements.
			for _, id := range elementChildren(ctx) {
				n := ctx.Tree.Get(id)
				if n.Tag == tags.Option || n.Tag == tags.Script || n.Tag == tags.Template {
					continue
				}
				if !childCats(ctx, id).Overlaps(model.Phrasing) {
					diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
						fmt.Sprintf("<%s> is not allowed inside <datalist>", ctx.Tree.TagName(id))).
						WithNode(uint32(id)).Emit()
				}
			}
		},
		Desc: "Predefined options for other controls.",
	})
}

// validateListItems permits li, script, and template children only.
func validateListItems(ctx *rules.Ctx) {
	rejectText(ctx)
	for _, id := range elementChildren(ctx) {
		switch ctx.Tree.Get(id).Tag {
		case tags.Li, tags.Script, tags.Template:
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, ctx.Tree.Get(id).Name,
				fmt.Sprintf("<%s> is not allowed inside <%s>",
					ctx.Tree.TagName(id), ctx.Tree.TagName(ctx.Node))).
				WithNode(uint32(id)).Emit()
		}
	}
}

func completeListItems(ctx *rules.Ctx, off uint32) []Completion {
	return []Completion{{Label: "li", Desc: Get(tags.Li).Desc}}
}

// liValue accepts an integer, and only under an ordered list: the
// attribute is an invalid combination elsewhere regardless of content.
func liValue(ctx *rules.Ctx, attr token.Attr) []rules.Problem {
	parent := ctx.Tree.Get(ctx.Node).Parent
	if ctx.Tree.Get(parent).Tag != tags.Ol {
		return []rules.Problem{{
			Code: diag.AttrInvalidCombination,
			Msg:  "the value attribute is only allowed on list items of an <ol>",
			Span: attr.Name,
		}}
	}
	return anyIntValue(ctx, attr)
}

func anyIntValue(ctx *rules.Ctx, attr token.Attr) []rules.Problem {
	val, ok := ctx.ValueText(attr)
	if !ok {
		return []rules.Problem{{Code: diag.AttrMissingValue,
			Msg: "attribute requires an integer value", Span: attr.Name}}
	}
	if _, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32); err != nil {
		return []rules.Problem{{Msg: fmt.Sprintf("%q is not an integer", val)}}
	}
	return nil
}

// dl grammar: either (dt+ dd+)* groups or div wrappers, mutually
// exclusive, chosen by the first meaningful child.
func validateDl(ctx *rules.Ctx) {
	rejectText(ctx)
	kids := elementChildren(ctx)
	divStyle := false
	for _, id := range kids {
		switch ctx.Tree.Get(id).Tag {
		case tags.Div:
			divStyle = true
		case tags.Dt, tags.Dd:
		default:
			continue
		}
		break
	}

	var firstStyle tree.NodeID
	prev := tags.Unknown // last dt/dd seen, for the group sequence
	lastDt := tree.Root
	for _, id := range kids {
		n := ctx.Tree.Get(id)
		switch n.Tag {
		case tags.Script, tags.Template:
			continue
		case tags.Div:
			if !divStyle {
				mixedDl(ctx, id, firstStyle)
				continue
			}
			if firstStyle == tree.Root {
				firstStyle = id
			}
		case tags.Dt, tags.Dd:
			if divStyle {
				mixedDl(ctx, id, firstStyle)
				continue
			}
			if firstStyle == tree.Root {
				firstStyle = id
			}
			if n.Tag == tags.Dd && prev == tags.Unknown {
				// A group opens with a term; more dds may follow one.
				diag.ReportError(ctx.Rep, diag.ContentWrongSequence, n.Name,
					"<dd> without a preceding <dt>").WithNode(uint32(id)).Emit()
			}
			prev = n.Tag
			if n.Tag == tags.Dt {
				lastDt = id
			}
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
				fmt.Sprintf("<%s> is not allowed inside <dl>", ctx.Tree.TagName(id))).
				WithNode(uint32(id)).Emit()
		}
	}
	if prev == tags.Dt {
		diag.ReportError(ctx.Rep, diag.ContentMissingChild, ctx.Tree.Get(lastDt).Name,
			"<dt> without a following <dd>").WithNode(uint32(lastDt)).Emit()
	}
}

func mixedDl(ctx *rules.Ctx, second, first tree.NodeID) {
	rb := diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, ctx.Tree.Get(second).Name,
		"a <dl> uses either dt/dd pairs or <div> groups, not both").
		WithNode(uint32(second))
	if first != tree.Root {
		rb.WithNote(ctx.Tree.Get(first).Name, "the other style starts here")
	}
	rb.Emit()
}

func completeDl(ctx *rules.Ctx, off uint32) []Completion {
	return []Completion{
		{Label: "dt", Desc: Get(tags.Dt).Desc},
		{Label: "dd", Desc: Get(tags.Dd).Desc},
		{Label: "div", Desc: Get(tags.Div).Desc},
	}
}
