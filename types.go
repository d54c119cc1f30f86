// Package fspath provides encoding-aware paths and path-aware operations
// over a native file system capability.
//
// Paths are values of [Path], the host instance of [lesiw.io/fspath/path].
// A Path holds its name in the host's native code units (bytes on POSIX,
// UTF-16 on Windows) in canonical form, so that names which are not valid
// Unicode survive every operation unchanged.
//
// # Native Capability
//
// The core [FS] interface requires only Stat and OpenDir, the two calls
// that directory iteration and classification need. Every other
// capability is optional and discovered through type assertions, in the
// manner of [io/fs]. Helper functions check capabilities and return
// [ErrUnsupported] when an operation isn't available:
//
//	err := fspath.Save(ctx, fsys, p, data, 0)
//	if errors.Is(err, fspath.ErrUnsupported) {
//	    // Filesystem doesn't support writing
//	}
//
// Optional interfaces:
//
//   - [AbsFS] - Native full path resolution
//   - [ChtimesFS] - Change file timestamps
//   - [CreateFS] - Create empty files
//   - [HomeFS] - Look up user home directories
//   - [MkdirFS] - Create directories
//   - [ReadFS] - Read file contents
//   - [ReadLinkFS] - Read symlink targets
//   - [RemoveFS] - Delete files and empty directories
//   - [RenameFS] - Move or rename files
//   - [SymlinkFS] - Create symbolic links
//   - [WorkDirFS] - Get and set the working directory
//   - [WriteFS] - Write or append file contents
//
// Every operation accepts a context.Context as the first parameter.
// File modes and the working directory used for relative paths travel in
// the context; see [WithFileMode], [WithDirMode], and [WithWorkDir].
//
// # Iteration
//
// [OpenDirectory] and [OpenDeepSearch] return explicit iterators that own
// their native directory handles. [Directory] and [DeepSearch] wrap them
// as range-over-func sequences that release every handle when the loop
// ends, including on early break:
//
//	for p, err := range fspath.DeepSearch(ctx, fsys, root, 0) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(p)
//	}
//
// # Recursive Operations
//
// Operations given [Recurse] apply a sequence of individual operations.
// They do not roll back: a failure partway through leaves whatever partial
// state the completed steps produced.
//
// # Testing
//
// The [lesiw.io/fspath/fstest] package provides a conformance suite for
// native capability implementations:
//
//	func TestMyFS(t *testing.T) {
//	    fstest.TestFS(t.Context(), t, myfs.New())
//	}
package fspath

import (
	"errors"
	"io/fs"
	"time"

	"lesiw.io/fspath/path"
)

// Path is a path in the host grammar and unit width.
type Path = path.Native

// NativeUnit is the code unit of host file names.
type NativeUnit = path.NativeUnit

// Status describes a file and is returned by [Stat].
type Status struct {
	Mode      Mode
	Size      int64
	Device    uint64
	Inode     uint64
	Atime     time.Time
	Mtime     time.Time
	Ctime     time.Time
	Birthtime time.Time // zero where the system does not record it
	Hidden    bool
}

// IsDir reports whether s describes a directory.
func (s Status) IsDir() bool { return s.Mode.IsDir() }

// IsSymlink reports whether s describes a symbolic link.
func (s Status) IsSymlink() bool { return s.Mode&ModeSymlink != 0 }

// IsRegular reports whether s describes a regular file.
func (s Status) IsRegular() bool { return s.Mode.IsRegular() }

// IsSpecial reports whether s describes a device, pipe, socket, or other
// file that is neither regular, a directory, nor a symbolic link.
func (s Status) IsSpecial() bool {
	return s.Mode&(ModeType&^(ModeDir|ModeSymlink)) != 0
}

// A Mode represents a file's mode and permission bits.
type Mode = fs.FileMode

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError

// LinkError records an error during a link, rename, or copy and the paths
// that caused it.
type LinkError struct {
	Op  string
	Old string
	New string
	Err error
}

func (e *LinkError) Error() string {
	return e.Op + " " + e.Old + " " + e.New + ": " + e.Err.Error()
}

func (e *LinkError) Unwrap() error { return e.Err }

// newPathError creates a PathError if err is not nil, otherwise returns nil.
// An err that is already a *PathError is returned as is.
func newPathError(op string, name Path, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*PathError); ok {
		return err
	}
	return &PathError{Op: op, Path: name.String(), Err: err}
}

// Generic file system errors.
var (
	ErrInvalid     = fs.ErrInvalid
	ErrPermission  = fs.ErrPermission
	ErrExist       = fs.ErrExist
	ErrNotExist    = fs.ErrNotExist
	ErrClosed      = fs.ErrClosed
	ErrUnsupported = errors.ErrUnsupported
	ErrNotDir      = errors.New("not a directory")
)

// Valid values for [Mode].
//
//ignore:linelen
const (
	ModeDir        = fs.ModeDir        // d: is a directory
	ModeSymlink    = fs.ModeSymlink    // L: symbolic link
	ModeDevice     = fs.ModeDevice     // D: device file
	ModeNamedPipe  = fs.ModeNamedPipe  // p: named pipe (FIFO)
	ModeSocket     = fs.ModeSocket     // S: Unix domain socket
	ModeCharDevice = fs.ModeCharDevice // c: Unix character device, when ModeDevice is set
	ModeIrregular  = fs.ModeIrregular  // ?: non-regular file; nothing else is known about this file

	// Mask for the type bits. For regular files, none will be set.
	ModeType = fs.ModeType

	ModePerm = fs.ModePerm // Unix permission bits
)

// Flag selects optional behavior of iterators and file operations.
// Each function documents the flags it honors and ignores the rest.
type Flag uint

const (
	// Hidden includes hidden entries in directory iteration.
	Hidden Flag = 1 << iota
	// Dots includes "." and ".." in directory iteration.
	Dots
	// Unicode skips entries whose names are not valid Unicode.
	Unicode
	// BottomUp makes deep search list a directory after its contents.
	BottomUp
	// Recurse applies an operation to a whole tree.
	Recurse
	// MayFail makes Load return empty content instead of an error.
	MayFail
	// Append makes Save append to an existing file.
	Append
	// Overwrite allows an operation to replace an existing file.
	Overwrite
	// NoFollow applies an operation to a symbolic link itself.
	NoFollow
)
