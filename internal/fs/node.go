package fs

import (
	"sort"
)

// Node is a directory. It owns its children exclusively and keeps no
// reference to its parent.
type Node struct {
	own      uint64 // sum of the sizes of files listed directly inside
	size     uint64 // aggregate size, valid once the tree is aggregated
	children map[string]*Node
}

func newNode() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Own returns the total size of the files listed directly in this directory.
func (n *Node) Own() uint64 {
	return n.own
}

// Size returns the aggregate size of the directory. It is zero until the
// owning tree has been aggregated.
func (n *Node) Size() uint64 {
	return n.size
}

// Child returns the named subdirectory.
func (n *Node) Child(name string) (*Node, bool) {
	child, ok := n.children[name]
	return child, ok
}

// ChildNames returns the names of all subdirectories in sorted order.
func (n *Node) ChildNames() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of subdirectories.
func (n *Node) Len() int {
	return len(n.children)
}

// ensureChild returns the named child, creating it if absent. An existing
// child is never replaced.
func (n *Node) ensureChild(name string) (child *Node, created bool) {
	if child, ok := n.children[name]; ok {
		return child, false
	}
	child = newNode()
	n.children[name] = child
	return child, true
}

// addFile adds size to the directory's own total, failing on overflow.
func (n *Node) addFile(size uint64) bool {
	sum := n.own + size
	if sum < n.own {
		return false
	}
	n.own = sum
	return true
}

// Tree is a directory hierarchy rebuilt from a transcript. Its exported
// API is read-only; only Build creates trees and only Aggregate sets sizes.
type Tree struct {
	root       *Node
	aggregated bool
}

func newTree() *Tree {
	return &Tree{root: newNode()}
}

// Root returns the root directory.
func (t *Tree) Root() *Node {
	return t.root
}

// Aggregated reports whether directory sizes have been computed.
func (t *Tree) Aggregated() bool {
	return t.aggregated
}

// Lookup resolves an index path such as "/a/e" to its node.
func (t *Tree) Lookup(path string) (*Node, error) {
	n, ok := t.resolve(SplitPath(path))
	if !ok {
		return nil, NewError(OpLookup, path, ErrNotFound)
	}
	return n, nil
}

// resolve walks from the root through each name of the cursor.
func (t *Tree) resolve(c Cursor) (*Node, bool) {
	n := t.root
	for _, name := range c {
		child, ok := n.children[name]
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}
