package tags

import "testing"

func TestLookup(t *testing.T) {
	cases := []struct {
		in   string
		want Tag
		ok   bool
	}{
		{"div", Div, true},
		{"DIV", Div, true},
		{"Ruby", Ruby, true},
		{"svg", Svg, true},
		{"blink", Unknown, false},
		{"", Unknown, false},
	}
	for _, tc := range cases {
		got, ok := Lookup([]byte(tc.in))
		if ok != tc.ok || got != tc.want {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNameRoundTrip(t *testing.T) {
	for tag := Tag(1); tag < Count; tag++ {
		name := tag.Name()
		if name == "" {
			t.Fatalf("tag %d has no name", tag)
		}
		got, ok := Lookup([]byte(name))
		if !ok || got != tag {
			t.Errorf("Lookup(%q) = %v, %v; want %v", name, got, ok, tag)
		}
	}
}

func TestFoldName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"div", "div"},
		{"DiV", "div"},
		{"SCRIPT", "script"},
		{"data-X", "data-x"},
	}
	for _, tc := range cases {
		if got := FoldName([]byte(tc.in)); got != tc.want {
			t.Errorf("FoldName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStructuralTables(t *testing.T) {
	if !Br.IsVoid() || !Img.IsVoid() || Div.IsVoid() {
		t.Error("void table wrong")
	}
	if !IsRawTextName("script") || !IsRawTextName("textarea") || IsRawTextName("div") {
		t.Error("raw text table wrong")
	}
	if !Svg.IsForeignRoot() || !Math.IsForeignRoot() || Table.IsForeignRoot() {
		t.Error("foreign root table wrong")
	}
	if !H1.IsHeading() || !H6.IsHeading() || P.IsHeading() {
		t.Error("heading range wrong")
	}
}
