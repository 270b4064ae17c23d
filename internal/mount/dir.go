package mount

import (
	"context"
	"os"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"dirsize/internal/fs"
	"dirsize/internal/logging"
)

var (
	dirLogger = logging.GetLogger().WithPrefix("mount.dir")
)

// Dir represents one directory of the sized tree.
type Dir struct {
	fs   *SizeFS
	node *fs.Node
	path string
}

// Attr implements the Node interface, returning directory attributes.
// The reported size is the directory's aggregate size.
func (d *Dir) Attr(_ context.Context, a *fuse.Attr) error {
	dirLogger.Trace("Getting attributes for directory: %q", d.path)
	a.Mode = os.ModeDir | 0555
	a.Size = d.node.Size()
	a.Uid = d.fs.uid
	a.Gid = d.fs.gid
	return nil
}

// Lookup implements the NodeStringLookuper interface, finding a child node.
// Subdirectories take precedence over the size file.
func (d *Dir) Lookup(_ context.Context, name string) (fusefs.Node, error) {
	dirLogger.Debug("Looking up %q in directory %q", name, d.path)

	if child, ok := d.node.Child(name); ok {
		return &Dir{fs: d.fs, node: child, path: fs.ChildPath(d.path, name)}, nil
	}
	if name == SizeFileName {
		return &SizeFile{fs: d.fs, node: d.node, path: fs.ChildPath(d.path, name)}, nil
	}

	dirLogger.Debug("Path not found: %q", fs.ChildPath(d.path, name))
	return nil, ToFuseError(fs.NewError(fs.OpLookup, fs.ChildPath(d.path, name), fs.ErrNotFound))
}

// ReadDirAll implements the HandleReadDirAller interface, listing directory contents.
func (d *Dir) ReadDirAll(_ context.Context) ([]fuse.Dirent, error) {
	dirLogger.Debug("Reading directory contents: %q", d.path)

	names := d.node.ChildNames()
	entries := make([]fuse.Dirent, 0, len(names)+3)
	entries = append(entries, fuse.Dirent{Name: ".", Type: fuse.DT_Dir})
	entries = append(entries, fuse.Dirent{Name: "..", Type: fuse.DT_Dir})

	if _, shadowed := d.node.Child(SizeFileName); !shadowed {
		entries = append(entries, fuse.Dirent{Name: SizeFileName, Type: fuse.DT_File})
	}
	for _, name := range names {
		entries = append(entries, fuse.Dirent{Name: name, Type: fuse.DT_Dir})
	}

	dirLogger.Debug("Directory %q contains %d entries", d.path, len(entries))
	return entries, nil
}

// Mkdir rejects every write; the view is read-only.
func (d *Dir) Mkdir(_ context.Context, req *fuse.MkdirRequest) (fusefs.Node, error) {
	dirLogger.Warn("Attempted to create directory %q in %q", req.Name, d.path)
	return nil, syscall.EROFS
}
