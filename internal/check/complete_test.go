package check_test

import (
	"strings"
	"testing"

	"htmlcheck/internal/check"
	"htmlcheck/internal/diag"
	"htmlcheck/internal/elements"
	"htmlcheck/internal/source"
	"htmlcheck/internal/tree"
)

// completionsAt parses input and queries at the position of the |
// marker, which is removed first.
func completionsAt(t *testing.T, input string) []elements.Completion {
	t.Helper()
	off := strings.Index(input, "|")
	if off < 0 {
		t.Fatal("input needs a | cursor marker")
	}
	clean := strings.Replace(input, "|", "", 1)
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.html", []byte(clean)))
	doc := tree.Parse(f, diag.NopReporter{})
	return check.CompletionsAt(f, doc, uint32(off))
}

func hasLabel(comps []elements.Completion, label string) bool {
	for _, c := range comps {
		if c.Label == label {
			return true
		}
	}
	return false
}

func TestSelectButtonCompletion(t *testing.T) {
	comps := completionsAt(t, "<html><body><select>|</select></body></html>")
	if !hasLabel(comps, "button") {
		t.Errorf("empty drop-down select should offer button, got %v", comps)
	}
	if !hasLabel(comps, "option") {
		t.Errorf("select should offer option, got %v", comps)
	}

	comps = completionsAt(t, "<html><body><select><button>x</button>|</select></body></html>")
	if hasLabel(comps, "button") {
		t.Errorf("existing button must not be re-offered, got %v", comps)
	}

	comps = completionsAt(t, "<html><body><select multiple>|</select></body></html>")
	if hasLabel(comps, "button") {
		t.Errorf("list-style select takes no button, got %v", comps)
	}
}

func TestGenericCompletions(t *testing.T) {
	comps := completionsAt(t, "<html><body><p>some |text</p></body></html>")
	if !hasLabel(comps, "em") || hasLabel(comps, "div") {
		t.Errorf("paragraph should offer phrasing only, got %v", comps)
	}

	comps = completionsAt(t, "<html><body>|</body></html>")
	if !hasLabel(comps, "div") || !hasLabel(comps, "table") {
		t.Errorf("body should offer flow content, got %v", comps)
	}
}

func TestTableCompletionsFollowPhase(t *testing.T) {
	comps := completionsAt(t, "<html><body><table><tbody></tbody>|</table></body></html>")
	if hasLabel(comps, "caption") || hasLabel(comps, "thead") {
		t.Errorf("past phases must not be offered, got %v", comps)
	}
	if !hasLabel(comps, "tbody") || !hasLabel(comps, "tfoot") {
		t.Errorf("current and later phases should be offered, got %v", comps)
	}
	if hasLabel(comps, "tr") {
		t.Errorf("bare rows are exclusive with tbody, got %v", comps)
	}
}

func TestHeadCompletions(t *testing.T) {
	comps := completionsAt(t, "<html><head><title>t</title>|</head></html>")
	if hasLabel(comps, "title") {
		t.Errorf("second title must not be offered, got %v", comps)
	}
	if !hasLabel(comps, "meta") || !hasLabel(comps, "base") {
		t.Errorf("head should offer remaining metadata, got %v", comps)
	}
}

func TestTransparentCompletions(t *testing.T) {
	// An anchor inherits its parent's model: under p it offers
	// phrasing, directly under body it offers flow.
	comps := completionsAt(t, `<html><body><p><a href="/">|</a></p></body></html>`)
	if hasLabel(comps, "div") {
		t.Errorf("anchor in paragraph should not offer block content, got %v", comps)
	}
	comps = completionsAt(t, `<html><body><a href="/">|</a></body></html>`)
	if !hasLabel(comps, "div") {
		t.Errorf("anchor under body should offer flow content, got %v", comps)
	}
}

func TestRootCompletions(t *testing.T) {
	comps := completionsAt(t, "|")
	if !hasLabel(comps, "html") {
		t.Errorf("empty document should offer html, got %v", comps)
	}
}
