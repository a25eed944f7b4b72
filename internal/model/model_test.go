package model

import (
	"testing"

	"htmlcheck/internal/tags"
)

func TestAcceptsCats(t *testing.T) {
	cases := []struct {
		name    string
		content Content
		child   Categories
		want    bool
	}{
		{"flow accepts flow", ContentFlow, Flow | Phrasing, true},
		{"flow rejects metadata-only", ContentFlow, Metadata, false},
		{"phrasing accepts phrasing", ContentPhrasing, Flow | Phrasing, true},
		{"phrasing rejects plain flow", ContentPhrasing, Flow, false},
		{"none rejects everything", ContentNone, Flow | Phrasing, false},
		{"text rejects elements", ContentText, Phrasing, false},
		{"all accepts anything", ContentAll, Metadata, true},
		{"custom defers", ContentCustom, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Model{Content: tc.content}
			if got := m.AcceptsCats(tc.child); got != tc.want {
				t.Errorf("AcceptsCats = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAcceptsText(t *testing.T) {
	if (Model{Content: ContentNone}).AcceptsText() {
		t.Error("none must reject text")
	}
	for _, c := range []Content{ContentFlow, ContentPhrasing, ContentText, ContentAll} {
		if !(Model{Content: c}).AcceptsText() {
			t.Errorf("%v must accept text", c)
		}
	}
}

func TestForbids(t *testing.T) {
	m := Model{Forbidden: []tags.Tag{tags.A, tags.Button}}
	if !m.Forbids(tags.A) || !m.Forbids(tags.Button) {
		t.Error("listed tags must be forbidden")
	}
	if m.Forbids(tags.Span) {
		t.Error("unlisted tag must not be forbidden")
	}
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		cats Categories
		want string
	}{
		{0, "no category"},
		{Flow, "flow content"},
		{Flow | Phrasing, "flow and phrasing content"},
		{Metadata | Flow | Phrasing, "metadata, flow and phrasing content"},
	}
	for _, tc := range cases {
		if got := tc.cats.Describe(); got != tc.want {
			t.Errorf("Describe(%b) = %q, want %q", tc.cats, got, tc.want)
		}
	}
}
