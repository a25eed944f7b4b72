package elements

import (
	"fmt"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

func init() {
	register(tags.Table, &Descriptor{
		Model:       model.Model{Cats: model.Flow, Content: model.ContentCustom},
		Validate:    validateTable,
		Completions: completeTable,
		Desc:        "Tabular data.",
	})
	register(tags.Caption, &Descriptor{
		Model: model.Model{Content: model.ContentFlow,
			Forbidden: []tags.Tag{tags.Table}},
		Desc: "Caption of the enclosing table.",
	})
	register(tags.Colgroup, &Descriptor{
		Model: model.Model{Content: model.ContentCustom},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "span", Rule: rules.NonNegInt{Min: 1, Max: 1000},
				Desc: "Number of columns the group spans."},
		),
		Validate: validateColgroup,
		Desc:     "Group of table columns.",
	})
	register(tags.Col, &Descriptor{
		Model: model.Model{Content: model.ContentNone},
		Attrs: rules.NewSet(
			rules.Attribute{Name: "span", Rule: rules.NonNegInt{Min: 1, Max: 1000},
				Desc: "Number of columns the element spans."},
		),
		Desc: "Table column.",
	})
	register(tags.Thead, &Descriptor{
		Model:    model.Model{Content: model.ContentCustom},
		Validate: validateRowGroup,
		Desc:     "Group of rows forming the table head.",
	})
	register(tags.Tbody, &Descriptor{
		Model:    model.Model{Content: model.ContentCustom},
		Validate: validateRowGroup,
		Desc:     "Group of rows forming a table body.",
	})
	register(tags.Tfoot, &Descriptor{
		Model:    model.Model{Content: model.ContentCustom},
		Validate: validateRowGroup,
		Desc:     "Group of rows forming the table foot.",
	})
	register(tags.Tr, &Descriptor{
		Model:    model.Model{Content: model.ContentCustom},
		Validate: validateRow,
		Desc:     "Table row.",
	})
	register(tags.Td, &Descriptor{
		Model: model.Model{Content: model.ContentFlow},
		Attrs: cellAttrs(),
		Desc:  "Table data cell.",
	})
	register(tags.Th, &Descriptor{
		Model: model.Model{Content: model.ContentFlow,
			Forbidden: []tags.Tag{tags.Header, tags.Footer}},
		Attrs: headerCellAttrs(),
		Desc:  "Table header cell.",
	})
}

func cellAttrs() *rules.Set {
	return rules.NewSet(
		rules.Attribute{Name: "colspan", Rule: rules.NonNegInt{Min: 1, Max: 1000},
			Desc: "Number of columns the cell spans."},
		rules.Attribute{Name: "rowspan", Rule: rules.NonNegInt{Max: 65534},
			Desc: "Number of rows the cell spans."},
		rules.Attribute{Name: "headers", Rule: rules.NotEmpty{},
			Desc: "Ids of the header cells this cell relates to."},
	)
}

func headerCellAttrs() *rules.Set {
	return rules.NewSet(
		rules.Attribute{Name: "colspan", Rule: rules.NonNegInt{Min: 1, Max: 1000},
			Desc: "Number of columns the cell spans."},
		rules.Attribute{Name: "rowspan", Rule: rules.NonNegInt{Max: 65534},
			Desc: "Number of rows the cell spans."},
		rules.Attribute{Name: "headers", Rule: rules.NotEmpty{},
			Desc: "Ids of the header cells this cell relates to."},
		rules.Attribute{Name: "scope", Rule: rules.Enum("row", "col", "rowgroup", "colgroup"),
			Desc: "Which cells the header applies to."},
		rules.Attribute{Name: "abbr", Rule: rules.NotEmpty{},
			Desc: "Short alternative label for the header."},
	)
}

// Table content phases, in the only order they may appear.
type tablePhase uint8

const (
	phCaption tablePhase = iota
	phColgroup
	phThead
	phBodies // tbody* XOR tr+
	phTfoot
)

func (p tablePhase) String() string {
	switch p {
	case phCaption:
		return "caption"
	case phColgroup:
		return "column groups"
	case phThead:
		return "table head"
	case phBodies:
		return "table rows"
	}
	return "table foot"
}

// validateTable runs the forward-only phase machine: optional caption,
// zero or more colgroup, optional thead, then either tbody elements or
// bare tr rows (never both), then optional tfoot. A legal tag behind
// its phase is a sequence error, not a nesting error.
func validateTable(ctx *rules.Ctx) {
	rejectText(ctx)
	phase := phCaption
	sawCaption, sawThead, sawTfoot := false, false, false
	bodies := tree.Root // first tbody, for the XOR note
	rows := tree.Root   // first bare tr

	for _, id := range elementChildren(ctx) {
		n := ctx.Tree.Get(id)
		var want tablePhase
		switch n.Tag {
		case tags.Caption:
			// A repeated caption is a duplicate, not a sequence error.
			if sawCaption {
				dupChild(ctx, id, firstChildTag(ctx, tags.Caption), "caption")
				continue
			}
			want = phCaption
		case tags.Colgroup:
			want = phColgroup
		case tags.Thead:
			if sawThead {
				dupChild(ctx, id, firstChildTag(ctx, tags.Thead), "thead")
				continue
			}
			want = phThead
		case tags.Tbody, tags.Tr:
			want = phBodies
		case tags.Tfoot:
			want = phTfoot
		case tags.Script, tags.Template:
			continue
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, n.Name,
				fmt.Sprintf("<%s> is not allowed inside <table>", ctx.Tree.TagName(id))).
				WithNode(uint32(id)).Emit()
			continue
		}

		if want < phase {
			diag.ReportError(ctx.Rep, diag.ContentWrongSequence, n.Name,
				fmt.Sprintf("<%s> must come before the %s", ctx.Tree.TagName(id), phase)).
				WithNode(uint32(id)).Emit()
			continue
		}
		phase = want

		switch n.Tag {
		case tags.Caption:
			sawCaption = true
			phase = phColgroup
		case tags.Thead:
			sawThead = true
			phase = phBodies
		case tags.Tfoot:
			if sawTfoot {
				dupChild(ctx, id, firstChildTag(ctx, tags.Tfoot), "tfoot")
				continue
			}
			sawTfoot = true
		case tags.Tbody:
			if rows != tree.Root {
				mixedRows(ctx, id, rows)
				continue
			}
			if bodies == tree.Root {
				bodies = id
			}
		case tags.Tr:
			if bodies != tree.Root {
				mixedRows(ctx, id, bodies)
				continue
			}
			if rows == tree.Root {
				rows = id
			}
		}
	}
}

// mixedRows reports the tbody-XOR-tr violation.
func mixedRows(ctx *rules.Ctx, second, first tree.NodeID) {
	diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, ctx.Tree.Get(second).Name,
		"a table uses either <tbody> groups or bare <tr> rows, not both").
		WithNote(ctx.Tree.Get(first).Name, "the other style starts here").
		WithNode(uint32(second)).Emit()
}

// firstChildTag finds the first element child with the tag; callers
// only use it after observing one.
func firstChildTag(ctx *rules.Ctx, tag tags.Tag) tree.NodeID {
	for _, id := range elementChildren(ctx) {
		if ctx.Tree.Get(id).Tag == tag {
			return id
		}
	}
	return tree.Root
}

// completeTable offers the children still legal at the current phase.
func completeTable(ctx *rules.Ctx, off uint32) []Completion {
	// Work out the phase reached before the cursor.
	phase := phCaption
	sawBody, sawRow := false, false
	for _, id := range elementChildren(ctx) {
		n := ctx.Tree.Get(id)
		if n.Span.Start >= off {
			break
		}
		switch n.Tag {
		case tags.Caption:
			phase = maxPhase(phase, phColgroup)
		case tags.Colgroup:
			phase = maxPhase(phase, phColgroup)
		case tags.Thead:
			phase = maxPhase(phase, phBodies)
		case tags.Tbody:
			phase = maxPhase(phase, phBodies)
			sawBody = true
		case tags.Tr:
			phase = maxPhase(phase, phBodies)
			sawRow = true
		case tags.Tfoot:
			phase = maxPhase(phase, phTfoot)
		}
	}

	var out []Completion
	add := func(t tags.Tag) {
		out = append(out, Completion{Label: t.Name(), Desc: Get(t).Desc})
	}
	if phase <= phCaption {
		add(tags.Caption)
	}
	if phase <= phColgroup {
		add(tags.Colgroup)
	}
	if phase <= phThead {
		add(tags.Thead)
	}
	if phase <= phBodies {
		if !sawRow {
			add(tags.Tbody)
		}
		if !sawBody {
			add(tags.Tr)
		}
	}
	if phase <= phTfoot {
		add(tags.Tfoot)
	}
	return out
}

func maxPhase(a, b tablePhase) tablePhase {
	if a > b {
		return a
	}
	return b
}

// validateRowGroup permits tr, script, and template children only.
func validateRowGroup(ctx *rules.Ctx) {
	rejectText(ctx)
	for _, id := range elementChildren(ctx) {
		switch ctx.Tree.Get(id).Tag {
		case tags.Tr, tags.Script, tags.Template:
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, ctx.Tree.Get(id).Name,
				fmt.Sprintf("<%s> is not allowed inside <%s>",
					ctx.Tree.TagName(id), ctx.Tree.TagName(ctx.Node))).
				WithNode(uint32(id)).Emit()
		}
	}
}

// validateRow permits td, th, script, and template children only.
func validateRow(ctx *rules.Ctx) {
	rejectText(ctx)
	for _, id := range elementChildren(ctx) {
		switch ctx.Tree.Get(id).Tag {
		case tags.Td, tags.Th, tags.Script, tags.Template:
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, ctx.Tree.Get(id).Name,
				fmt.Sprintf("<%s> is not allowed inside <tr>", ctx.Tree.TagName(id))).
				WithNode(uint32(id)).Emit()
		}
	}
}

// validateColgroup permits col and template children only, and only
// when the colgroup itself has no span attribute.
func validateColgroup(ctx *rules.Ctx) {
	rejectText(ctx)
	_, hasSpan := hasAttr(ctx, "span")
	for _, id := range elementChildren(ctx) {
		switch ctx.Tree.Get(id).Tag {
		case tags.Col, tags.Template:
			if hasSpan {
				diag.ReportError(ctx.Rep, diag.AttrInvalidCombination, ctx.Tree.Get(id).Name,
					"a <colgroup> with a span attribute cannot contain <col>").
					WithNode(uint32(id)).Emit()
			}
		default:
			diag.ReportError(ctx.Rep, diag.ContentInvalidNesting, ctx.Tree.Get(id).Name,
				fmt.Sprintf("<%s> is not allowed inside <colgroup>", ctx.Tree.TagName(id))).
				WithNode(uint32(id)).Emit()
		}
	}
}
