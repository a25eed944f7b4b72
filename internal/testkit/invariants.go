// Package testkit holds shared structural assertions used by tests and
// fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"htmlcheck/internal/source"
	"htmlcheck/internal/tree"
)

// CheckTreeInvariants runs the structural invariants every parsed
// document must satisfy:
//  1. node 0 is the root sentinel and the only KindRoot node
//  2. every span lies within the file content bounds
//  3. parent/child/sibling links are consistent and acyclic
//  4. children appear after their parent (preorder layout)
func CheckTreeInvariants(t *tree.Tree, sf *source.File) error {
	if t == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	if t.Len() == 0 || t.Get(tree.Root).Kind != tree.KindRoot {
		return fmt.Errorf("missing root sentinel")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	for id := tree.NodeID(1); id < tree.NodeID(t.Len()); id++ {
		n := t.Get(id)
		if n.Kind == tree.KindRoot {
			return fmt.Errorf("node %d: root kind outside index 0", id)
		}
		if n.Span.End < n.Span.Start || n.Span.End > lenContent {
			return fmt.Errorf("node %d: span %v out of bounds (%d bytes)", id, n.Span, lenContent)
		}
		if n.Span.File != sf.ID {
			return fmt.Errorf("node %d: span points at file %d, want %d", id, n.Span.File, sf.ID)
		}
		if n.Parent >= id {
			return fmt.Errorf("node %d: parent %d does not precede it", id, n.Parent)
		}
		if n.First != tree.Root && n.First <= id {
			return fmt.Errorf("node %d: first child %d does not follow it", id, n.First)
		}
		if n.Next != tree.Root && n.Next <= id {
			return fmt.Errorf("node %d: next sibling %d does not follow it", id, n.Next)
		}
	}

	// Every child listed under a parent must point back at it.
	for id := tree.NodeID(0); id < tree.NodeID(t.Len()); id++ {
		for _, c := range t.Children(id) {
			if t.Get(c).Parent != id {
				return fmt.Errorf("node %d: listed under %d but Parent=%d", c, id, t.Get(c).Parent)
			}
		}
	}

	// Stop must never point inside the subtree it skips.
	for id := tree.NodeID(1); id < tree.NodeID(t.Len()); id++ {
		stop := t.Stop(id)
		if stop <= id {
			return fmt.Errorf("node %d: Stop()=%d is not past the node", id, stop)
		}
	}
	return nil
}
