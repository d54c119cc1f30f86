package fspath

import (
	"context"
	"errors"
	"log/slog"
)

// A RemoveFS is a file system with the Remove method.
type RemoveFS interface {
	FS

	// Remove removes the named file or empty directory. A symbolic link
	// is removed itself, never its target.
	Remove(ctx context.Context, name Path) error
}

// Remove removes the named file or empty directory.
// Analogous to: [os.Remove], [os.RemoveAll], rm, rm -r.
//
// A name that does not exist is not an error. With [Recurse], a directory
// is removed along with everything below it, deepest entries first.
// Symbolic links inside the tree are removed, not followed. A failure
// partway through leaves the entries not yet removed in place.
//
// Requires: [RemoveFS]
func Remove(ctx context.Context, fsys FS, name Path, flags Flag) error {
	rfs, ok := fsys.(RemoveFS)
	if !ok {
		return &PathError{
			Op:   "remove",
			Path: name.String(),
			Err:  ErrUnsupported,
		}
	}
	st, err := fsys.Stat(ctx, name, false)
	if errors.Is(err, ErrNotExist) {
		return nil
	} else if err != nil {
		return newPathError("remove", name, err)
	}
	if flags&Recurse != 0 && st.IsDir() {
		Logger().Debug("remove tree", slog.String("path", name.String()))
		for p, err := range DeepSearch(ctx, fsys, name, Hidden|BottomUp) {
			if err != nil {
				return err
			}
			err = rfs.Remove(ctx, p)
			if err != nil && !errors.Is(err, ErrNotExist) {
				return newPathError("remove", p, err)
			}
		}
	}
	err = rfs.Remove(ctx, name)
	if errors.Is(err, ErrNotExist) {
		return nil
	}
	return newPathError("remove", name, err)
}
