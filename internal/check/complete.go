package check

import (
	"htmlcheck/internal/diag"
	"htmlcheck/internal/elements"
	"htmlcheck/internal/model"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tree"
)

// CompletionsAt locates the innermost element governing the byte
// offset and asks it what children could be inserted there: the
// element's completion hook when it has one, the generic category
// enumerator otherwise.
func CompletionsAt(file *source.File, doc *tree.Tree, off uint32) []elements.Completion {
	id := doc.FindAt(off)
	ctx := &rules.Ctx{
		File: file,
		Tree: doc,
		Node: id,
		Rep:  diag.NopReporter{},
		Doc:  rules.NewDocState(),
	}

	if id == tree.Root {
		return rootCompletions(doc)
	}
	n := doc.Get(id)
	if n.Flags&(tree.FlagForeign|tree.FlagForeignRoot) != 0 {
		// Foreign islands are opaque to the catalog.
		return nil
	}

	d := elements.Get(n.Tag)
	if d == nil {
		return elements.GenericCompletions(model.ContentFlow)
	}
	if d.Completions != nil {
		return d.Completions(ctx, off)
	}

	m := d.ModelFor(ctx)
	content := m.Content
	for node := id; content == model.ContentTransparent; {
		node = doc.Get(node).Parent
		if node == tree.Root {
			content = model.ContentFlow
			break
		}
		pd := elements.Get(doc.Get(node).Tag)
		if pd == nil {
			content = model.ContentFlow
			break
		}
		pctx := *ctx
		pctx.Node = node
		content = pd.ModelFor(&pctx).Content
	}
	return elements.GenericCompletions(content)
}

// rootCompletions proposes the document skeleton still missing at the
// top level.
func rootCompletions(doc *tree.Tree) []elements.Completion {
	for _, id := range doc.Children(tree.Root) {
		if n := doc.Get(id); n.Kind == tree.KindElement {
			return nil
		}
	}
	return []elements.Completion{{Label: "html", Desc: "Root element of the document."}}
}
