package fs

import (
	"dirsize/internal/logging"
)

var (
	aggLogger = logging.GetLogger().WithPrefix("aggregate")
)

// frame is one pending directory of the post-order walk.
type frame struct {
	node     *Node
	path     string
	expanded bool
}

// Aggregate computes every directory's aggregate size in one post-order
// pass and returns the tree together with the flat size index.
//
// The walk uses an explicit stack, so tree depth is bounded by memory
// rather than by the goroutine stack.
func Aggregate(t *Tree) (*Tree, *SizeIndex) {
	idx := newSizeIndex()
	stack := []frame{{node: t.root, path: RootPath}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.expanded {
			top.expanded = true
			node, path := top.node, top.path
			for _, name := range node.ChildNames() {
				stack = append(stack, frame{node: node.children[name], path: ChildPath(path, name)})
			}
			continue
		}

		// Every child was popped before its parent, so their sizes are final.
		n := top.node
		total := n.own
		clamped := false
		for _, child := range n.children {
			if total > ^uint64(0)-child.size {
				clamped = true
			}
			total = saturatingAdd(total, child.size)
		}
		if clamped {
			aggLogger.Warn("Aggregate size of %s exceeds %d bytes, clamped", top.path, total)
		}
		n.size = total
		idx.put(top.path, total)
		stack = stack[:len(stack)-1]
	}

	t.aggregated = true
	aggLogger.Debug("Aggregated %d directories, %d bytes at root", idx.Len(), t.root.size)
	return t, idx
}

func saturatingAdd(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return ^uint64(0)
}
