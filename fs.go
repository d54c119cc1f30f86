package fspath

import "context"

// FS is the native file system capability. It is the minimal set of calls
// that classification and directory iteration need; everything else is an
// optional interface.
type FS interface {
	// Stat returns the status of the named file. If follow is true and
	// the file is a symbolic link, Stat describes the link's target.
	// A missing file is an error satisfying errors.Is(err, ErrNotExist).
	Stat(ctx context.Context, name Path, follow bool) (Status, error)

	// OpenDir opens the named directory for reading. The empty path names
	// the working directory.
	OpenDir(ctx context.Context, name Path) (DirStream, error)
}

// A DirStream reads the names in one directory, in no particular order.
// Streams are used by one goroutine at a time.
type DirStream interface {
	// ReadNext returns the next name in the directory, in native code
	// units, or io.EOF when there are no more. Streams may or may not
	// return "." and "..".
	ReadNext(ctx context.Context) ([]NativeUnit, error)

	// Close releases the stream. Close is called exactly once.
	Close() error
}
