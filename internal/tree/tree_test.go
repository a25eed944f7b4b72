package tree_test

import (
	"testing"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

func parse(t *testing.T, input string) (*tree.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.html", []byte(input)))
	bag := diag.NewBag(100)
	doc := tree.Parse(f, diag.BagReporter{Bag: bag})
	if doc == nil {
		t.Fatal("Parse must always return a tree")
	}
	return doc, bag
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// elementByTag returns the first element with the given tag.
func elementByTag(t *testing.T, doc *tree.Tree, tag tags.Tag) tree.NodeID {
	t.Helper()
	for id := tree.NodeID(1); id < tree.NodeID(doc.Len()); id++ {
		if n := doc.Get(id); n.Kind == tree.KindElement && n.Tag == tag {
			return id
		}
	}
	t.Fatalf("no <%s> in tree", tag)
	return tree.Root
}

func TestBasicStructure(t *testing.T) {
	doc, bag := parse(t, "<html><head></head><body><p>hi</p></body></html>")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	html := elementByTag(t, doc, tags.Html)
	if doc.Get(html).Parent != tree.Root {
		t.Error("html must hang off the root sentinel")
	}

	kids := doc.Children(html)
	if len(kids) != 2 {
		t.Fatalf("html has %d children, want 2", len(kids))
	}
	if doc.Get(kids[0]).Tag != tags.Head || doc.Get(kids[1]).Tag != tags.Body {
		t.Error("html children must be head then body")
	}

	p := elementByTag(t, doc, tags.P)
	pKids := doc.Children(p)
	if len(pKids) != 1 || doc.Get(pKids[0]).Kind != tree.KindText {
		t.Error("p must contain one text node")
	}
}

func TestPreorderStopInvariant(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"<div><span>a</span><span>b</span></div><p>c</p>",
		"<table><tr><td>1</td><td>2</td></tr></table>",
		"<ul><li>a<li>b</ul>",          // unclosed li
		"<svg><circle r='1'/></svg>x",  // foreign island
		"<div><p>broken</div>",         // mismatched close
		"<!doctype html><!-- c --><p>",
	}
	for _, input := range inputs {
		doc, _ := parse(t, input)
		for id := tree.NodeID(1); id < tree.NodeID(doc.Len()); id++ {
			stop := doc.Stop(id)
			if stop <= id {
				t.Fatalf("%q: Stop(%d) = %d, not after the node", input, id, stop)
			}
			// Every descendant must sit inside (id, stop).
			for d := tree.NodeID(1); d < tree.NodeID(doc.Len()); d++ {
				anc := doc.Get(d).Parent
				isDesc := false
				for anc != tree.Root {
					if anc == id {
						isDesc = true
						break
					}
					anc = doc.Get(anc).Parent
				}
				if isDesc && !(id < d && d < stop) {
					t.Fatalf("%q: descendant %d outside (%d, %d)", input, d, id, stop)
				}
				if !isDesc && d != id && id < d && d < stop {
					t.Fatalf("%q: non-descendant %d inside (%d, %d)", input, d, id, stop)
				}
			}
		}
	}
}

func TestVoidElementsDoNotNest(t *testing.T) {
	doc, bag := parse(t, "<p><br>text<img src='x'>more</p>")
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	p := elementByTag(t, doc, tags.P)
	kids := doc.Children(p)
	if len(kids) != 4 {
		t.Fatalf("p has %d children, want br/text/img/text", len(kids))
	}
	br := doc.Get(kids[0])
	if br.Tag != tags.Br || !br.Has(tree.FlagClosed) || br.First != tree.Root {
		t.Error("br must be a closed leaf")
	}
}

func TestForeignIsland(t *testing.T) {
	doc, bag := parse(t, "<div><svg><circle r='1'/><foreignthing></foreignthing></svg></div>")
	if bag.Len() != 0 {
		t.Fatalf("no diagnostics expected inside foreign content, got %v", bag.Items())
	}
	svg := elementByTag(t, doc, tags.Svg)
	if !doc.Get(svg).Has(tree.FlagForeignRoot) {
		t.Error("svg must be a foreign root")
	}
	for _, kid := range doc.Children(svg) {
		if !doc.Get(kid).Has(tree.FlagForeign) {
			t.Errorf("child %d of svg must carry FlagForeign", kid)
		}
	}
	// Skipping the island lands right past its last descendant.
	for d := svg + 1; d < doc.Stop(svg); d++ {
		if doc.Get(d).Kind == tree.KindElement && !doc.Get(d).Has(tree.FlagForeign) {
			t.Errorf("node %d inside the island is not foreign", d)
		}
	}
}

func TestStrayAndMismatchedCloses(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []diag.Code
	}{
		{"stray close", "<div></div></span>", []diag.Code{diag.TreeStrayCloseTag}},
		{"void close", "<br></br>", []diag.Code{diag.TreeVoidWithCloseTag}},
		{"mismatched", "<div><p>x</div>", []diag.Code{diag.TreeMismatchedClose}},
		{"unclosed at eof", "<div><p>x", []diag.Code{diag.TreeUnclosedElement, diag.TreeUnclosedElement}},
		{"unknown element", "<blink>x</blink>", []diag.Code{diag.TreeUnknownElement}},
		{"self closing div", "<div/>", []diag.Code{diag.TreeSelfClosingNonVoid}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, bag := parse(t, tc.input)
			got := codes(bag)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("diag %d: got %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestMismatchedCloseStillBuilds(t *testing.T) {
	doc, _ := parse(t, "<div><p>x</div>more")
	div := elementByTag(t, doc, tags.Div)
	p := elementByTag(t, doc, tags.P)
	if doc.Get(p).Parent != div {
		t.Error("p stays a child of div")
	}
	if doc.Get(div).Has(tree.FlagClosed) != true {
		t.Error("div is closed by its own tag")
	}
	if doc.Get(p).Has(tree.FlagClosed) {
		t.Error("p was never closed")
	}
}

func TestContentSpans(t *testing.T) {
	input := "<div>abc</div>"
	doc, _ := parse(t, input)
	div := elementByTag(t, doc, tags.Div)
	n := doc.Get(div)
	if n.Content.Start != 5 || n.Content.End != 8 {
		t.Errorf("content = %d..%d, want 5..8", n.Content.Start, n.Content.End)
	}
	if n.Close.Start != 8 || n.Close.End != 14 {
		t.Errorf("close = %d..%d, want 8..14", n.Close.Start, n.Close.End)
	}
}

func TestFindAt(t *testing.T) {
	input := "<div><span>ab</span></div>"
	doc, _ := parse(t, input)
	div := elementByTag(t, doc, tags.Div)
	span := elementByTag(t, doc, tags.Span)

	cases := []struct {
		off  uint32
		want tree.NodeID
	}{
		{5, div},   // right after <div>
		{11, span}, // inside span content
		{13, span}, // before </span>
		{20, div},  // between </span> and </div>
	}
	for _, tc := range cases {
		if got := doc.FindAt(tc.off); got != tc.want {
			t.Errorf("FindAt(%d) = %d, want %d", tc.off, got, tc.want)
		}
	}
}

func TestWhitespaceTextFlag(t *testing.T) {
	doc, _ := parse(t, "<ul>\n  <li>x</li>\n</ul>")
	ul := elementByTag(t, doc, tags.Ul)
	kids := doc.Children(ul)
	if len(kids) != 3 {
		t.Fatalf("ul has %d children", len(kids))
	}
	if !doc.Get(kids[0]).Has(tree.FlagWhitespaceText) {
		t.Error("leading newline run must be whitespace text")
	}
	if doc.Get(kids[1]).Tag != tags.Li {
		t.Error("middle child must be li")
	}
}
