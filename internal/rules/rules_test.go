package rules_test

import (
	"strings"
	"testing"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

// walk parses input, finds the first element with the given tag, and
// runs the attribute walk over it with the given set.
func walk(t *testing.T, input string, tag tags.Tag, set *rules.Set) *diag.Bag {
	t.Helper()
	ctx, bag := walkCtx(t, input, tag)
	rules.Walk(ctx, set)
	return bag
}

func walkCtx(t *testing.T, input string, tag tags.Tag) (*rules.Ctx, *diag.Bag) {
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

func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

var imgSet = rules.NewSet(
	rules.Attribute{Name: "src", Rule: rules.URL{}, Required: true},
	rules.Attribute{Name: "alt", Rule: rules.Any{}, Required: true},
	rules.Attribute{Name: "width", Rule: rules.Int()},
	rules.Attribute{Name: "height", Rule: rules.Int()},
	rules.Attribute{Name: "srcset", Rule: rules.Srcset{}},
	rules.Attribute{Name: "crossorigin", Rule: rules.CORS{}},
	rules.Attribute{Name: "usemap", Rule: rules.HashNameRef{}},
	rules.Attribute{Name: "loading", Rule: rules.Enum("lazy", "eager")},
)

func TestWalkCleanTag(t *testing.T) {
	bag := walk(t, `<img src="/a.png" alt="a" width="10" loading="lazy">`, tags.Img, imgSet)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestWalkReportsEveryBadAttribute(t *testing.T) {
	// One pass must surface all of: bad width, bad loading, unknown
	// attribute, and the missing required src.
	bag := walk(t, `<img alt="a" width="ten" loading="now" frob="1">`, tags.Img, imgSet)

	for _, want := range []struct {
		code diag.Code
		n    int
	}{
		{diag.AttrInvalidValue, 2},
		{diag.AttrUnknown, 1},
		{diag.AttrMissingRequired, 1},
	} {
		if got := countCode(bag, want.code); got != want.n {
			t.Errorf("%s: got %d findings, want %d", want.code.ID(), got, want.n)
		}
	}
}

func TestWalkDuplicateAttribute(t *testing.T) {
	bag := walk(t, `<img src="/a.png" alt="a" src="/b.png">`, tags.Img, imgSet)
	if got := countCode(bag, diag.AttrDuplicate); got != 1 {
		t.Fatalf("got %d duplicate findings, want 1", got)
	}
	// The duplicate is diagnosed once and not re-validated: no value
	// findings even though /b.png is fine anyway.
	for _, d := range bag.Items() {
		if d.Code == diag.AttrDuplicate && len(d.Notes) == 0 {
			t.Error("duplicate finding should reference the first declaration")
		}
	}
}

func TestWalkGlobalAttributes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		clean bool
	}{
		{"dir ok", `<img src="/a" alt="" dir="rtl">`, true},
		{"dir bad", `<img src="/a" alt="" dir="up">`, false},
		{"hidden bare", `<img src="/a" alt="" hidden>`, true},
		{"hidden until-found", `<img src="/a" alt="" hidden="until-found">`, true},
		{"hidden bad", `<img src="/a" alt="" hidden="very">`, false},
		{"tabindex negative", `<img src="/a" alt="" tabindex="-1">`, true},
		{"tabindex junk", `<img src="/a" alt="" tabindex="first">`, false},
		{"data prefix", `<img src="/a" alt="" data-anything="x">`, true},
		{"aria prefix", `<img src="/a" alt="" aria-label="x">`, true},
		{"event handler", `<img src="/a" alt="" onclick="go()">`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bag := walk(t, tc.input, tags.Img, imgSet)
			if tc.clean && bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			if !tc.clean && bag.Len() == 0 {
				t.Fatal("expected a diagnostic, got none")
			}
		})
	}
}

func TestDuplicateID(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.html", []byte(`<div id="a"><span id="a"></span></div>`)))
	doc := tree.Parse(f, diag.NopReporter{})
	bag := diag.NewBag(100)
	state := rules.NewDocState()
	for id := tree.NodeID(1); id < tree.NodeID(doc.Len()); id++ {
		if doc.Get(id).Kind != tree.KindElement {
			continue
		}
		rules.Walk(&rules.Ctx{
			File: f, Tree: doc, Node: id,
			Rep: diag.BagReporter{Bag: bag},
			Doc: state,
		}, nil)
	}
	if got := countCode(bag, diag.AttrDuplicateID); got != 1 {
		t.Fatalf("got %d duplicate-id findings, want 1", got)
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "first declared") {
		t.Error("duplicate-id finding should point at the first declaration")
	}
	// The note must anchor inside the first id value.
	firstVal := strings.Index(`<div id="a"><span id="a"></span></div>`, `"a"`) + 1
	if d.Notes[0].Span.Start != uint32(firstVal) {
		t.Errorf("note span starts at %d, want %d", d.Notes[0].Span.Start, firstVal)
	}
}

func TestIDValueShape(t *testing.T) {
	if bag := walk(t, `<img src="/a" alt="" id="">`, tags.Img, imgSet); countCode(bag, diag.AttrMissingValue) != 1 {
		t.Error("empty id should report a missing value")
	}
	if bag := walk(t, `<img src="/a" alt="" id="a b">`, tags.Img, imgSet); countCode(bag, diag.AttrInvalidValue) != 1 {
		t.Error("id with whitespace should report an invalid value")
	}
}

func TestRuleVariants(t *testing.T) {
	set := rules.NewSet(
		rules.Attribute{Name: "disabled", Rule: rules.Bool{}},
		rules.Attribute{Name: "name", Rule: rules.NotEmpty{}},
		rules.Attribute{Name: "step", Rule: rules.Float{}},
		rules.Attribute{Name: "type", Rule: rules.MIME{}},
		rules.Attribute{Name: "size", Rule: rules.IntMin(1)},
		rules.Attribute{Name: "rel", Rule: rules.List{
			Card:    rules.ManyUnique,
			Entries: []rules.Entry{{Value: "nofollow"}, {Value: "noopener"}, {Value: "external"}},
		}},
	)
	cases := []struct {
		name  string
		input string
		clean bool
	}{
		{"bool bare", `<input disabled>`, true},
		{"bool empty", `<input disabled="">`, true},
		{"bool with value", `<input disabled="yes">`, false},
		{"not-empty ok", `<input name="q">`, true},
		{"not-empty empty", `<input name="">`, false},
		{"float ok", `<input step="0.5">`, true},
		{"float bad", `<input step="fast">`, false},
		{"mime ok", `<input type="text/plain">`, true},
		{"mime bad", `<input type="plain">`, false},
		{"int below min", `<input size="0">`, false},
		{"list ok", `<input rel="nofollow external">`, true},
		{"list repeat", `<input rel="nofollow nofollow">`, false},
		{"list unknown token", `<input rel="nofollow sponsored">`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bag := walk(t, tc.input, tags.Input, set)
			if tc.clean && bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			if !tc.clean && bag.Len() == 0 {
				t.Fatal("expected a diagnostic, got none")
			}
		})
	}
}
