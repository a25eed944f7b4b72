package tree

import (
	"fmt"
	"io"

	"htmlcheck/internal/source"
	"htmlcheck/internal/tags"
)

// Tree is the flat preorder node array for one document. It is owned
// by the call that produced it; callers must not mutate it while a
// concurrent query reads it.
type Tree struct {
	File  *source.File
	Nodes []Node
}

// Get returns the node for the given id.
func (t *Tree) Get(id NodeID) *Node {
	return &t.Nodes[id]
}

// Len returns the number of nodes including the root sentinel.
func (t *Tree) Len() uint32 {
	return uint32(len(t.Nodes))
}

// Stop returns the first index outside the subtree of id: the subtree
// occupies the contiguous preorder range (id, Stop(id)). This is what
// lets a consumer skip an opaque island without recursion.
func (t *Tree) Stop(id NodeID) NodeID {
	for id != Root {
		if next := t.Nodes[id].Next; next != Root {
			return next
		}
		id = t.Nodes[id].Parent
	}
	return NodeID(t.Len())
}

// Children iterates the direct children of id in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := t.Nodes[id].First; c != Root; c = t.Nodes[c].Next {
		out = append(out, c)
	}
	return out
}

// FindAt returns the innermost element whose content range governs the
// byte offset, or Root when the offset sits between top-level nodes.
func (t *Tree) FindAt(off uint32) NodeID {
	best := Root
	for id := NodeID(1); id < NodeID(t.Len()); {
		n := &t.Nodes[id]
		if n.Span.Start > off {
			break
		}
		if n.Kind == KindElement && n.Content.Start <= off && off <= n.Content.End {
			best = id
			id++ // descend into this element
			continue
		}
		id = t.Stop(id) // subtree cannot govern the offset
	}
	return best
}

// TagName returns the canonical name for known tags and the raw source
// spelling for unknown ones.
func (t *Tree) TagName(id NodeID) string {
	n := &t.Nodes[id]
	if n.Tag != tags.Unknown {
		return n.Tag.Name()
	}
	return tags.FoldName(n.Name.Text(t.File))
}

// Dump writes an indented outline of the tree, one node per line.
func (t *Tree) Dump(w io.Writer) {
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		for c := t.Nodes[id].First; c != Root; c = t.Nodes[c].Next {
			n := &t.Nodes[c]
			for i := 0; i < depth; i++ {
				fmt.Fprint(w, "  ")
			}
			switch n.Kind {
			case KindElement:
				fmt.Fprintf(w, "<%s> %s\n", t.TagName(c), n.Span)
			default:
				fmt.Fprintf(w, "%s %s\n", n.Kind, n.Span)
			}
			walk(c, depth+1)
		}
	}
	walk(Root, 0)
}
