// Package mount serves an aggregated directory tree as a read-only FUSE
// filesystem. Each directory reports its aggregate size and carries a
// SizeFileName file holding that size as text.
package mount

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"

	"dirsize/internal/fs"
	"dirsize/internal/logging"
)

var (
	vfsLogger = logging.GetLogger().WithPrefix("mount")
)

// SizeFS is the read-only view of an aggregated tree.
type SizeFS struct {
	tree *fs.Tree
	conn *fuse.Conn
	uid  uint32 // User ID reported for every node
	gid  uint32 // Group ID reported for every node
}

// New creates a filesystem over an aggregated tree.
func New(tree *fs.Tree) (*SizeFS, error) {
	if tree == nil || !tree.Aggregated() {
		return nil, fmt.Errorf("mount requires an aggregated tree")
	}

	// Get UID/GID from environment if set
	uid := safeIntToUint32(os.Getuid())
	gid := safeIntToUint32(os.Getgid())

	if puidStr := os.Getenv("PUID"); puidStr != "" {
		if puid, err := strconv.ParseUint(puidStr, 10, 32); err == nil {
			uid = uint32(puid)
			vfsLogger.Debug("Using PUID from environment: %d", uid)
		}
	}
	if pgidStr := os.Getenv("PGID"); pgidStr != "" {
		if pgid, err := strconv.ParseUint(pgidStr, 10, 32); err == nil {
			gid = uint32(pgid)
			vfsLogger.Debug("Using PGID from environment: %d", gid)
		}
	}

	return &SizeFS{tree: tree, uid: uid, gid: gid}, nil
}

// Root implements the fusefs.FS interface, returning the root directory node.
func (sfs *SizeFS) Root() (fusefs.Node, error) {
	vfsLogger.Trace("Getting root directory node")
	return &Dir{fs: sfs, node: sfs.tree.Root(), path: fs.RootPath}, nil
}

// Options controls how the filesystem is mounted.
type Options struct {
	AllowOther bool
}

// Mount mounts the filesystem at mountPoint. Serve must be called next.
func (sfs *SizeFS) Mount(mountPoint string, opts Options) error {
	vfsLogger.Info("Mounting size view at %s", mountPoint)

	mountOpts := []fuse.MountOption{
		fuse.FSName("dirsize"),
		fuse.Subtype("dirsize"),
		fuse.ReadOnly(),
	}
	if opts.AllowOther {
		mountOpts = append(mountOpts, fuse.AllowOther())
	}

	c, err := fuse.Mount(mountPoint, mountOpts...)
	if err != nil {
		return fmt.Errorf("mount failed: %w", err)
	}
	sfs.conn = c

	if err := waitForMount(mountPoint); err != nil {
		c.Close()
		sfs.conn = nil
		return fmt.Errorf("mount point failed to initialize: %w", err)
	}
	return nil
}

// Serve answers FUSE requests until the filesystem is unmounted.
func (sfs *SizeFS) Serve() error {
	if sfs.conn == nil {
		return fmt.Errorf("filesystem is not mounted")
	}
	defer sfs.conn.Close()

	vfsLogger.Info("Serving filesystem...")
	if err := fusefs.Serve(sfs.conn, sfs); err != nil {
		return fmt.Errorf("FUSE server error: %w", err)
	}
	vfsLogger.Debug("FUSE server stopped")
	return nil
}

// Unmount cleanly unmounts the filesystem.
func (sfs *SizeFS) Unmount(mountPoint string) error {
	vfsLogger.Info("Unmounting filesystem from: %s", mountPoint)
	if sfs.conn == nil {
		return nil
	}
	if err := fuse.Unmount(mountPoint); err != nil {
		vfsLogger.Error("Unmount failed: %v", err)
		return err
	}
	vfsLogger.Info("Unmount completed successfully")
	return nil
}

func waitForMount(mountpoint string) error {
	for i := 0; i < 30; i++ {
		info, err := os.Stat(mountpoint)
		if err == nil && info.IsDir() {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("mount point not available after 3 seconds")
}
