package mount

import (
	"errors"
	"os"
	"syscall"

	"dirsize/internal/fs"
	"dirsize/internal/logging"
)

var (
	errLogger = logging.GetLogger().WithPrefix("mount.error")
)

// ToFuseError converts tree errors to the errno FUSE expects.
func ToFuseError(err error) error {
	if err == nil {
		return nil
	}

	var fsErr *fs.Error
	if errors.As(err, &fsErr) {
		errLogger.Trace("Converting tree error to FUSE error: %v", fsErr)

		switch {
		case errors.Is(fsErr, fs.ErrNotFound):
			return syscall.ENOENT
		case errors.Is(fsErr, fs.ErrInvalidQuery):
			return syscall.EINVAL
		default:
			errLogger.Debug("Unknown tree error, returning EIO: %v", fsErr)
			return syscall.EIO
		}
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return syscall.ENOENT
	case errors.Is(err, os.ErrPermission):
		return syscall.EPERM
	default:
		errLogger.Debug("Unknown error type, returning EIO: %v", err)
		return syscall.EIO
	}
}
