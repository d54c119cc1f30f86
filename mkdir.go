package fspath

import (
	"context"
	"errors"
	"log/slog"
)

// A MkdirFS is a file system with the Mkdir method.
type MkdirFS interface {
	FS

	// Mkdir creates a new directory with the given mode.
	//
	// Mkdir returns an error if name already exists or if its parent
	// directory does not exist.
	Mkdir(ctx context.Context, name Path, mode Mode) error
}

// MakeDirectory creates a directory.
// Analogous to: [os.Mkdir], [os.MkdirAll], mkdir.
//
// The directory mode is obtained from [DirMode](ctx). If not set in the
// context, the default mode 0755 is used:
//
//	ctx = fspath.WithDirMode(ctx, 0700)
//	fspath.MakeDirectory(ctx, fsys, p, 0)  // Creates with mode 0700
//
// If name is already a directory, MakeDirectory does nothing. If it is
// some other file, MakeDirectory fails with [ErrExist] unless flags
// contain [Overwrite], which removes the file first. With [Recurse],
// missing parent directories are created too, like mkdir -p; parents
// created before a failure are left in place.
//
// Requires: [MkdirFS]
func MakeDirectory(
	ctx context.Context, fsys FS, name Path, flags Flag,
) error {
	mfs, ok := fsys.(MkdirFS)
	if !ok {
		return &PathError{
			Op:   "mkdir",
			Path: name.String(),
			Err:  ErrUnsupported,
		}
	}
	st, err := fsys.Stat(ctx, name, true)
	switch {
	case err == nil && st.IsDir():
		return nil
	case err == nil && flags&Overwrite == 0:
		return &PathError{Op: "mkdir", Path: name.String(), Err: ErrExist}
	case err == nil:
		if err := Remove(ctx, fsys, name, 0); err != nil {
			return err
		}
	}
	err = mfs.Mkdir(ctx, name, DirMode(ctx))
	if err == nil || flags&Recurse == 0 {
		return newPathError("mkdir", name, err)
	}
	if errors.Is(err, ErrExist) && IsDir(ctx, fsys, name) {
		return nil
	}

	// Mkdir failed - try to create parent directories
	// Most commonly this is because the parent doesn't exist,
	// but we recurse regardless of the error type
	parent := name.Dir()
	if parent.Empty() || parent.Equal(name) || parent.IsRoot() {
		return newPathError("mkdir", name, err)
	}
	Logger().Debug("mkdir parent", slog.String("path", parent.String()))
	if err := MakeDirectory(ctx, fsys, parent, Recurse); err != nil {
		return err
	}

	// Try again (ignore ErrExist in case created by parent)
	err = mfs.Mkdir(ctx, name, DirMode(ctx))
	if err == nil || errors.Is(err, ErrExist) {
		return nil
	}
	return newPathError("mkdir", name, err)
}
