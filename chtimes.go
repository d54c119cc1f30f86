package fspath

import (
	"context"
	"errors"
	"time"
)

// A ChtimesFS is a file system with the SetTimes method.
type ChtimesFS interface {
	FS

	// SetTimes changes the access and modification times of the named
	// file. A zero time.Time value leaves the corresponding time
	// unchanged. If follow is false and name is a symbolic link, the
	// link's own times are changed.
	SetTimes(
		ctx context.Context, name Path, atime, mtime time.Time, follow bool,
	) error
}

// SetTimes changes the access and modification times of the named file.
// A zero time.Time value leaves the corresponding time unchanged. With
// [NoFollow], a symbolic link's own times are changed.
// Analogous to: [os.Chtimes], touch -t, utimensat(2).
//
// Requires: [ChtimesFS]
func SetTimes(
	ctx context.Context, fsys FS, name Path, atime, mtime time.Time,
	flags Flag,
) error {
	if cfs, ok := fsys.(ChtimesFS); ok {
		err := cfs.SetTimes(ctx, name, atime, mtime, flags&NoFollow == 0)
		if !errors.Is(err, ErrUnsupported) {
			return newPathError("chtimes", name, err)
		}
	}
	return &PathError{
		Op:   "chtimes",
		Path: name.String(),
		Err:  ErrUnsupported,
	}
}

// SetAccessTime changes the access time of the named file.
//
// Requires: [ChtimesFS]
func SetAccessTime(
	ctx context.Context, fsys FS, name Path, t time.Time, flags Flag,
) error {
	return SetTimes(ctx, fsys, name, t, time.Time{}, flags)
}

// SetModifyTime changes the modification time of the named file.
//
// Requires: [ChtimesFS]
func SetModifyTime(
	ctx context.Context, fsys FS, name Path, t time.Time, flags Flag,
) error {
	return SetTimes(ctx, fsys, name, time.Time{}, t, flags)
}
