package rules_test

import (
	"fmt"
	"strings"
	"testing"

	"htmlcheck/internal/diag"
	"htmlcheck/internal/rules"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
	"htmlcheck/internal/tree"
)

var srcsetSet = rules.NewSet(
	rules.Attribute{Name: "srcset", Rule: rules.Srcset{}},
)

func checkSrcset(t *testing.T, value string) *diag.Bag {
	t.Helper()
	return walk(t, fmt.Sprintf(`<img srcset="%s">`, value), tags.Img, srcsetSet)
}

func TestSrcsetClean(t *testing.T) {
	for _, value := range []string{
		"a.jpg 1x, b.jpg 2x",
		"a.jpg",
		"a.jpg 100w, b.jpg 200w",
		"a.jpg 1.5x",
		"a.jpg 2x",
		"a.jpg 100h, b.jpg 1x",
		"a.jpg 1x,",
		" a.jpg  1x ,  b.jpg  2x ",
	} {
		t.Run(value, func(t *testing.T) {
			if bag := checkSrcset(t, value); bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestSrcsetImplicitDensityDuplicate(t *testing.T) {
	// Two candidates without descriptors both mean 1x: exactly one
	// duplicate finding, anchored at the second candidate.
	bag := checkSrcset(t, "a.jpg, a.jpg")
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", bag.Len(), bag.Items())
	}
	d := bag.Items()[0]
	if !strings.Contains(d.Message, "duplicate") {
		t.Fatalf("unexpected message %q", d.Message)
	}
	if len(d.Notes) != 1 {
		t.Fatal("duplicate finding should point at the first occurrence")
	}
	if d.Primary.Start <= d.Notes[0].Span.Start {
		t.Error("primary span must be the later candidate")
	}
}

func TestSrcsetExplicitDuplicate(t *testing.T) {
	bag := checkSrcset(t, "a.jpg 2x, b.jpg 2x")
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", bag.Len(), bag.Items())
	}
	if !strings.Contains(bag.Items()[0].Message, `"2x"`) {
		t.Errorf("unexpected message %q", bag.Items()[0].Message)
	}
}

func TestSrcsetWidthMixing(t *testing.T) {
	// Once any width descriptor appears, every candidate needs one.
	bag := checkSrcset(t, "a.jpg 100w, b.jpg 2x")
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", bag.Len(), bag.Items())
	}
	if !strings.Contains(bag.Items()[0].Message, "width") {
		t.Errorf("unexpected message %q", bag.Items()[0].Message)
	}
}

func TestSrcsetBadDescriptors(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"zero width", "a.jpg 0w", "positive integer"},
		{"negative density", "a.jpg -1x", "positive density"},
		{"unknown suffix", "a.jpg 2q", "must end in w, x or h"},
		{"two descriptors", "a.jpg 1x 2x", "more than one descriptor"},
		{"double comma", "a.jpg,, b.jpg", "more than one comma"},
		{"candidate mixes on itself", "a.jpg 1x 100w", "more than one descriptor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bag := checkSrcset(t, tc.value)
			if bag.Len() == 0 {
				t.Fatal("expected a diagnostic, got none")
			}
			found := false
			for _, d := range bag.Items() {
				if strings.Contains(d.Message, tc.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("no finding mentioning %q in %v", tc.want, bag.Items())
			}
		})
	}
}

func TestSrcsetParenProtectedComma(t *testing.T) {
	// Commas inside parentheses do not split candidates.
	bag := checkSrcset(t, "a.jpg calc(1,2)")
	for _, d := range bag.Items() {
		if strings.Contains(d.Message, "no URL") {
			t.Fatalf("paren-protected comma split a candidate: %v", bag.Items())
		}
	}
}

func TestSrcsetDuplicateNoteCoversFirstDescriptor(t *testing.T) {
	// "1.0x" and "1x" normalize to the same density. The note must
	// underline the first occurrence with its own length, not the
	// duplicate's.
	ctx, bag := walkCtx(t, `<img srcset="a.jpg 1.0x, b.jpg 1x">`, tags.Img)
	rules.Walk(ctx, srcsetSet)
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", bag.Len(), bag.Items())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 {
		t.Fatal("duplicate finding should point at the first occurrence")
	}
	if got := string(d.Notes[0].Span.Text(ctx.File)); got != "1.0x" {
		t.Errorf("note underlines %q, want %q", got, "1.0x")
	}
}

func TestSrcsetSpansKeepSourceFile(t *testing.T) {
	// With several files sharing one file set, srcset findings in a
	// later file must carry that file's ID or they would render
	// against the first file.
	fs := source.NewFileSet()
	fs.AddVirtual("first.html", []byte("<p>fine</p>"))
	f := fs.Get(fs.AddVirtual("second.html", []byte(`<img srcset="a.jpg 2x, b.jpg 2x, c.jpg 0w">`)))
	doc := tree.Parse(f, diag.NopReporter{})
	var node tree.NodeID
	for id := tree.NodeID(1); id < tree.NodeID(doc.Len()); id++ {
		if n := doc.Get(id); n.Kind == tree.KindElement && n.Tag == tags.Img {
			node = id
			break
		}
	}
	if node == tree.Root {
		t.Fatal("no <img> parsed")
	}
	bag := diag.NewBag(100)
	rules.Walk(&rules.Ctx{
		File: f,
		Tree: doc,
		Node: node,
		Rep:  diag.BagReporter{Bag: bag},
		Doc:  rules.NewDocState(),
	}, srcsetSet)
	if bag.Len() == 0 {
		t.Fatal("expected srcset diagnostics, got none")
	}
	for _, d := range bag.Items() {
		if d.Primary.File != f.ID {
			t.Errorf("%s span carries file %d, want %d (%s)", d.Message, d.Primary.File, f.ID, f.Path)
		}
		for _, n := range d.Notes {
			if n.Span.File != f.ID {
				t.Errorf("note %q carries file %d, want %d", n.Msg, n.Span.File, f.ID)
			}
		}
	}
}

func TestSrcsetEmpty(t *testing.T) {
	bag := checkSrcset(t, "")
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", bag.Len(), bag.Items())
	}
	if !strings.Contains(bag.Items()[0].Message, "at least one") {
		t.Errorf("unexpected message %q", bag.Items()[0].Message)
	}
}
