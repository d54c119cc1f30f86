package osfs

import (
	"errors"
	"syscall"
)

// errNotDir is the underlying syscall error for "not a directory".
// This is used to translate OS-specific errors to fspath.ErrNotDir.
var errNotDir error = syscall.ENOTDIR

// crossDevice reports whether err is the system refusing to rename across
// devices or volumes.
func crossDevice(err error) bool {
	return errors.Is(err, errCrossDevice)
}
