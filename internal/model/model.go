// Package model implements the content-category algebra: overlapping
// category bit sets, the closed set of content specs an element may
// declare for its children, and the accept/reject predicate the
// generic validator runs for almost every element. Only elements with
// genuinely sequential grammars bypass it through a custom hook.
package model

import (
	"htmlcheck/internal/tags"
)

// Categories is a bit set of the overlapping HTML content categories an
// element instance belongs to.
type Categories uint8

const (
	Metadata Categories = 1 << iota
	Flow
	Phrasing
	Sectioning
	Heading
	Interactive
)

// Overlaps reports whether the two sets share at least one category.
func (c Categories) Overlaps(other Categories) bool {
	return c&other != 0
}

// Union combines two sets.
func (c Categories) Union(other Categories) Categories {
	return c | other
}

// Content is the closed set of child content specs.
type Content uint8

const (
	// ContentNone permits no children at all.
	ContentNone Content = iota
	// ContentFlow permits any flow content child.
	ContentFlow
	// ContentPhrasing permits any phrasing content child.
	ContentPhrasing
	// ContentText permits only character data.
	ContentText
	// ContentTransparent inherits the nearest non-transparent
	// ancestor's spec, resolved by substitution at validation time and
	// never stored.
	ContentTransparent
	// ContentAll accepts anything.
	ContentAll
	// ContentCustom delegates to the descriptor's validate hook.
	ContentCustom
)

// Extra flags restrict the whole descendant set, beyond categories.
type Extra uint8

const (
	// NoInteractiveDesc forbids interactive content anywhere below.
	NoInteractiveDesc Extra = 1 << iota
	// NoTabindexDesc forbids any descendant carrying tabindex.
	NoTabindexDesc
)

// Model is one element instance's classification: the categories it
// carries and the content it permits. Either a compile-time constant on
// a descriptor or computed per node when classification depends on the
// node's own attributes.
type Model struct {
	Cats    Categories
	Content Content
	// Forbidden lists element kinds that may not appear anywhere in
	// this element's subtree (an anchor forbids a nested anchor).
	Forbidden []tags.Tag
	// NeedsAncestor names a tag that must enclose this element
	// somewhere above it (an area is only meaningful inside a map).
	// Zero means no requirement.
	NeedsAncestor tags.Tag
	Extra         Extra
}

// Forbids reports whether the model bans the tag from its subtree.
func (m Model) Forbids(t tags.Tag) bool {
	for _, f := range m.Forbidden {
		if f == t {
			return true
		}
	}
	return false
}

// AcceptsCats is the central accept test: does a parent with this
// (already transparent-resolved) content spec accept a child carrying
// the given categories? ContentCustom and ContentAll always accept
// here; custom grammars run their own hook afterwards.
func (m Model) AcceptsCats(child Categories) bool {
	switch m.Content {
	case ContentNone, ContentText:
		return false
	case ContentFlow:
		return child.Overlaps(Flow)
	case ContentPhrasing:
		return child.Overlaps(Phrasing)
	default: // ContentAll, ContentCustom, unresolved transparent
		return true
	}
}

// AcceptsText reports whether character data may appear under this
// content spec.
func (m Model) AcceptsText() bool {
	switch m.Content {
	case ContentNone:
		return false
	default:
		return true
	}
}
