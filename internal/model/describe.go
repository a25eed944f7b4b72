package model

import "strings"

// The names below feed diagnostic messages only. They intentionally
// over-explain compared to the acceptance bits and must never be
// consulted for the accept/reject decision itself.

var catNames = []struct {
	cat  Categories
	name string
}{
	{Metadata, "metadata"},
	{Flow, "flow"},
	{Phrasing, "phrasing"},
	{Sectioning, "sectioning"},
	{Heading, "heading"},
	{Interactive, "interactive"},
}

// Describe renders a category set for humans: "flow and phrasing
// content".
func (c Categories) Describe() string {
	var parts []string
	for _, e := range catNames {
		if c.Overlaps(e.cat) {
			parts = append(parts, e.name)
		}
	}
	switch len(parts) {
	case 0:
		return "no category"
	case 1:
		return parts[0] + " content"
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1] + " content"
	}
}

// Describe renders a content spec for humans.
func (c Content) Describe() string {
	switch c {
	case ContentNone:
		return "nothing"
	case ContentFlow:
		return "flow content"
	case ContentPhrasing:
		return "phrasing content"
	case ContentText:
		return "text only"
	case ContentTransparent:
		return "its parent's content"
	case ContentAll:
		return "anything"
	case ContentCustom:
		return "a fixed sequence of children"
	}
	return "unknown content"
}
