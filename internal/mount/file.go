package mount

import (
	"context"
	"strconv"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"dirsize/internal/fs"
	"dirsize/internal/logging"
)

// SizeFileName is the file present in every directory of the view.
const SizeFileName = "_SIZE"

var (
	fileLogger = logging.GetLogger().WithPrefix("mount.file")
)

// SizeFile exposes the aggregate size of its directory as text. It acts
// as its own handle.
type SizeFile struct {
	fs   *SizeFS
	node *fs.Node
	path string
}

func (f *SizeFile) content() []byte {
	return []byte(strconv.FormatUint(f.node.Size(), 10) + "\n")
}

// Attr implements the Node interface, returning the file's attributes.
func (f *SizeFile) Attr(_ context.Context, a *fuse.Attr) error {
	fileLogger.Trace("Getting attributes for file: %q", f.path)
	a.Mode = 0444
	a.Size = uint64(len(f.content()))
	a.Uid = f.fs.uid
	a.Gid = f.fs.gid
	return nil
}

// Open implements the NodeOpener interface. Only read access is allowed.
func (f *SizeFile) Open(_ context.Context, req *fuse.OpenRequest, resp *fuse.OpenResponse) (fusefs.Handle, error) {
	if !req.Flags.IsReadOnly() {
		fileLogger.Warn("Attempted write access to read-only file: %q", f.path)
		return nil, syscall.EPERM
	}
	resp.Flags |= fuse.OpenKeepCache
	return f, nil
}

// ReadAll implements the HandleReadAller interface.
func (f *SizeFile) ReadAll(_ context.Context) ([]byte, error) {
	data := f.content()
	fileLogger.Trace("Read %d bytes from %q", len(data), f.path)
	return data, nil
}
