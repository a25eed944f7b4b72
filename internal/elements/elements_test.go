package elements_test

import (
	"strings"
	"testing"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/elements"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

// grammar parses input, locates the first element with the tag, and
// runs its descriptor's custom validate hook.
func grammar(t *testing.T, input string, tag tags.Tag) *diag.Bag {
	t.Helper()
	ctx, bag := hookCtx(t, input, tag)
	d := elements.Get(tag)
	if d == nil || d.Validate == nil {
		t.Fatalf("<%s> has no validate hook", tag)
	}
	d.Validate(ctx)
	return bag
}

func hookCtx(t *testing.T, input string, tag tags.Tag) (*rules.Ctx, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.html", []byte(input)))
	doc := tree.Parse(f, diag.NopReporter{})
	var node tree.NodeID
	for id := tree.NodeID(1); id < tree.NodeID(doc.Len()); id++ {
		if n := doc.Get(id); n.Kind == tree.KindElement && n.Tag == tag {
			node = id
			break
		}
	}
	if node == tree.Root {
		t.Fatalf("no <%s> in %q", tag, input)
	}
	bag := diag.NewBag(100)
	return &rules.Ctx{
		File: f,
		Tree: doc,
		Node: node,
		Rep:  diag.BagReporter{Bag: bag},
		Doc:  rules.NewDocState(),
	}, bag
}

func codesOf(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestCatalogCoversEveryTag(t *testing.T) {
	for tag := tags.Tag(1); tag < tags.Count; tag++ {
		if elements.Get(tag) == nil {
			t.Errorf("<%s> has no descriptor", tag)
		}
	}
}

func TestTableSequencing(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []diag.Code
	}{
		{"full order", "<table><caption></caption><colgroup></colgroup><thead></thead><tbody></tbody><tfoot></tfoot></table>", nil},
		{"bare rows", "<table><tr></tr><tr></tr></table>", nil},
		{"tfoot then thead", "<table><tfoot></tfoot><thead></thead></table>",
			[]diag.Code{diag.ContentWrongSequence}},
		{"caption after rows", "<table><tr></tr><caption></caption></table>",
			[]diag.Code{diag.ContentWrongSequence}},
		{"two captions", "<table><caption></caption><caption></caption></table>",
			[]diag.Code{diag.ContentDuplicateChild}},
		{"tbody and bare tr", "<table><tbody></tbody><tr></tr></table>",
			[]diag.Code{diag.ContentInvalidNesting}},
		{"div in table", "<table><div></div></table>",
			[]diag.Code{diag.ContentInvalidNesting}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bag := grammar(t, tc.input, tags.Table)
			got := codesOf(bag)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", bag.Items(), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("finding %d: got %s, want %s", i, got[i].ID(), tc.want[i].ID())
				}
			}
		})
	}
}

func TestTableSequenceNotNesting(t *testing.T) {
	// A legal tag behind its phase must be a sequence error, never a
	// nesting error.
	bag := grammar(t, "<table><tfoot></tfoot><thead></thead></table>", tags.Table)
	for _, d := range bag.Items() {
		if d.Code == diag.ContentInvalidNesting {
			t.Fatalf("late <thead> reported as nesting: %v", d)
		}
	}
}

func TestDlGrammar(t *testing.T) {
	cases := []struct {
		name  string
		input string
		clean bool
	}{
		{"pairs", "<dl><dt>a</dt><dd>1</dd><dt>b</dt><dd>2</dd></dl>", true},
		{"multi dd", "<dl><dt>a</dt><dd>1</dd><dd>2</dd></dl>", true},
		{"divs", "<dl><div><dt>a</dt><dd>1</dd></div></dl>", true},
		{"dd first", "<dl><dd>1</dd></dl>", false},
		{"dangling dt", "<dl><dt>a</dt></dl>", false},
		{"mixed styles", "<dl><dt>a</dt><dd>1</dd><div></div></dl>", false},
		{"stray child", "<dl><p>x</p></dl>", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bag := grammar(t, tc.input, tags.Dl)
			if tc.clean && bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			if !tc.clean && bag.Len() == 0 {
				t.Fatal("expected a diagnostic, got none")
			}
		})
	}
}

func TestRubyTriples(t *testing.T) {
	if bag := grammar(t, "<ruby>漢<rp>(</rp><rt>kan</rt><rp>)</rp></ruby>", tags.Ruby); bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	bag := grammar(t, "<ruby>漢<rp>(</rp><rt>kan</rt></ruby>", tags.Ruby)
	if bag.Len() != 1 || bag.Items()[0].Code != diag.ContentMissingChild {
		t.Fatalf("unterminated triple: got %v", bag.Items())
	}
	if !strings.Contains(bag.Items()[0].Message, "not completed") {
		t.Errorf("unexpected message %q", bag.Items()[0].Message)
	}
}

func TestPictureGrammar(t *testing.T) {
	if bag := grammar(t, `<picture><source srcset="a.jpg 1x"><img src="/a" alt=""></picture>`, tags.Picture); bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	bag := grammar(t, `<picture><img src="/a" alt=""><source srcset="a.jpg"></picture>`, tags.Picture)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.ContentWrongSequence {
		t.Fatalf("late source: got %v", bag.Items())
	}

	bag = grammar(t, `<picture><source srcset="a.jpg"></picture>`, tags.Picture)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.ContentMissingChild {
		t.Fatalf("missing img: got %v", bag.Items())
	}

	bag = grammar(t, `<picture><source media="x"><img src="/a" alt=""></picture>`, tags.Picture)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.AttrMissingRequired {
		t.Fatalf("source without srcset: got %v", bag.Items())
	}
}

func TestSelectGrammar(t *testing.T) {
	if bag := grammar(t, "<select><button>pick</button><option>a</option></select>", tags.Select); bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	bag := grammar(t, `<select multiple><button>pick</button></select>`, tags.Select)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.ContentInvalidNesting {
		t.Fatalf("button in list select: got %v", bag.Items())
	}
	bag = grammar(t, "<select><option>a</option><button>pick</button></select>", tags.Select)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.ContentWrongPosition {
		t.Fatalf("late button: got %v", bag.Items())
	}
}

func TestSelectCompletions(t *testing.T) {
	ctx, _ := hookCtx(t, "<select></select>", tags.Select)
	comps := elements.Get(tags.Select).Completions(ctx, ctx.Tree.Get(ctx.Node).Content.Start)
	if !hasLabel(comps, "button") {
		t.Error("empty drop-down select should offer a control button")
	}

	ctx, _ = hookCtx(t, "<select><button>x</button></select>", tags.Select)
	comps = elements.Get(tags.Select).Completions(ctx, ctx.Tree.Get(ctx.Node).Content.End)
	if hasLabel(comps, "button") {
		t.Error("select with a button child must not re-offer it")
	}
	if !hasLabel(comps, "option") {
		t.Error("select should always offer option")
	}
}

func TestHTMLStructure(t *testing.T) {
	bag := grammar(t, "<html><body></body></html>", tags.Html)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.ContentMissingChild {
		t.Fatalf("missing head: got %v", bag.Items())
	}

	bag = grammar(t, "<html><body></body><head></head></html>", tags.Html)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ContentWrongPosition {
			found = true
		}
	}
	if !found {
		t.Fatalf("body before head: got %v", bag.Items())
	}
}

func TestHeadAtMostOne(t *testing.T) {
	input := "<head><title>a</title><base href=\"/\"><base href=\"/b\"></head>"
	bag := grammar(t, input, tags.Head)
	if got := codesOf(bag); len(got) != 1 || got[0] != diag.ContentDuplicateChild {
		t.Fatalf("got %v", bag.Items())
	}
	// Anchored at the first base, referencing the second.
	d := bag.Items()[0]
	firstBase := uint32(strings.Index(input, "<base"))
	if d.Primary.Start != firstBase+1 {
		t.Errorf("primary starts at %d, want the first <base> name at %d", d.Primary.Start, firstBase+1)
	}
	if len(d.Notes) != 1 || d.Notes[0].Span.Start <= d.Primary.Start {
		t.Error("the note must reference the later occurrence")
	}
}

func hasLabel(comps []elements.Completion, label string) bool {
	for _, c := range comps {
		if c.Label == label {
			return true
		}
	}
	return false
}
