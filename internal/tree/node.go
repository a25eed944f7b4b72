// Package tree builds the flat, index-addressed document tree. Nodes
// live in one preorder slice with uint32 handles; index 0 is the root
// sentinel and doubles as "none" for child/sibling links. The builder
// never repairs nesting: it records exactly what is literally in the
// source, because the point is to flag mistakes, not hide them.
package tree

import (
	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
)

// NodeID indexes a node inside a Tree. 0 is the root sentinel.
type NodeID uint32

// Root is the sentinel node every document hangs off.
const Root NodeID = 0

// Kind classifies a node.
type Kind uint8

const (
	// KindRoot is reserved for the sentinel at index 0.
	KindRoot Kind = iota
	// KindElement is a tag-delimited element.
	KindElement
	KindText
	KindComment
	KindDoctype
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "doctype"
	}
	return "invalid"
}

// Flags carries small per-node facts.
type Flags uint8

const (
	// FlagClosed is set on elements whose matching end tag was seen.
	FlagClosed Flags = 1 << iota
	// FlagSelfClosing is set when the start tag used "/>".
	FlagSelfClosing
	// FlagForeignRoot marks an <svg>/<math> element: its subtree is an
	// opaque island for content checks.
	FlagForeignRoot
	// FlagForeign is set on every node inside a foreign island.
	FlagForeign
	// FlagWhitespaceText marks a text node that is only inter-element
	// whitespace.
	FlagWhitespaceText
)

// Node is one tree entry. For elements Span covers the open tag and
// Name the tag name inside it; for text/comment/doctype nodes Span is
// the whole token. Content is the byte range between the open and
// close tags, empty for void and unclosed-at-EOF elements collapse it
// to the remaining file range.
type Node struct {
	Kind   Kind
	Tag    tags.Tag
	Flags  Flags
	Parent NodeID
	First  NodeID // first child
	Next   NodeID // next sibling
	Span   source.Span
	Name   source.Span
	// Content is [end of open tag, start of close tag).
	Content source.Span
	// Close is the end tag span when FlagClosed is set.
	Close source.Span
}

// IsElement reports whether the node is a real element.
func (n *Node) IsElement() bool {
	return n.Kind == KindElement
}

// Has reports whether all given flags are set.
func (n *Node) Has(f Flags) bool {
	return n.Flags&f == f
}
