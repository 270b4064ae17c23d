package fs

import (
	"strings"
)

// RootPath is the index key of the root directory.
const RootPath = "/"

// Cursor is the sequence of directory names from the root to the current
// directory while a transcript is replayed. The zero value is the root.
//
// Cursor is a value: Push and Pop return a new cursor and leave the
// receiver untouched.
type Cursor []string

// Push returns the cursor one level deeper, inside name.
func (c Cursor) Push(name string) Cursor {
	next := make(Cursor, len(c), len(c)+1)
	copy(next, c)
	return append(next, name)
}

// Pop returns the parent cursor. ok is false at the root.
func (c Cursor) Pop() (parent Cursor, ok bool) {
	if len(c) == 0 {
		return c, false
	}
	return c[:len(c)-1:len(c)-1], true
}

// IsRoot returns true if the cursor points at the root
func (c Cursor) IsRoot() bool {
	return len(c) == 0
}

// String returns the full path, "/" for the root.
func (c Cursor) String() string {
	return JoinPath(c...)
}

// JoinPath joins root-to-node names into an index path.
func JoinPath(names ...string) string {
	if len(names) == 0 {
		return RootPath
	}
	return RootPath + strings.Join(names, "/")
}

// ChildPath returns the index path of name inside parent.
func ChildPath(parent, name string) string {
	if parent == RootPath {
		return RootPath + name
	}
	return parent + "/" + name
}

// SplitPath is the inverse of JoinPath. It returns nil for the root.
func SplitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
