// internal/mount/interfaces.go

package mount

import (
	"bazil.org/fuse/fs"
)

// Node represents a filesystem node (file or directory)
type Node interface {
	fs.Node
}

// Directory represents a directory of the sized tree
type Directory interface {
	Node
	fs.NodeStringLookuper
	fs.HandleReadDirAller
}

// FileInterface represents the read-only size file
type FileInterface interface {
	Node
	fs.NodeOpener
	fs.HandleReadAller
}

var (
	_ Directory     = (*Dir)(nil)
	_ FileInterface = (*SizeFile)(nil)
	_ fs.FS         = (*SizeFS)(nil)
)
