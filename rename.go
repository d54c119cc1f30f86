package fspath

import (
	"context"
	"errors"
	"log/slog"
)

// A RenameFS is a file system with the Rename method.
type RenameFS interface {
	FS

	// Rename renames (moves) oldname to newname.
	// If newname already exists and is not a directory, Rename replaces it.
	// Rename returns an error satisfying errors.Is(err, ErrUnsupported)
	// when the move cannot be done in place, as across devices.
	Rename(ctx context.Context, oldname, newname Path) error
}

// Move renames (moves) src to dst.
// Analogous to: [os.Rename], mv.
//
// If dst exists, Move fails with [ErrExist] unless flags contain
// [Overwrite]. Moving an entry onto itself does nothing. If the file
// system cannot rename in place, Move falls back to copying src to dst and
// then removing src, recursively for directories. The fallback does not
// roll back: a failure partway through may leave part of the tree at both
// paths.
//
// Requires: [RenameFS] || ([ReadFS] && [WriteFS] && [RemoveFS])
func Move(ctx context.Context, fsys FS, src, dst Path, flags Flag) error {
	st, err := fsys.Stat(ctx, src, false)
	if err != nil {
		return linkError("move", src, dst, err)
	}
	if dstSt, err := fsys.Stat(ctx, dst, false); err == nil {
		if sameFile(src, dst, st, dstSt) {
			return nil
		}
		if flags&Overwrite == 0 {
			return linkError("move", src, dst, ErrExist)
		}
		if err := Remove(ctx, fsys, dst, flags&Recurse); err != nil {
			return err
		}
	}
	if rfs, ok := fsys.(RenameFS); ok {
		err := rfs.Rename(ctx, src, dst)
		if err == nil || !errors.Is(err, ErrUnsupported) {
			return linkError("move", src, dst, err)
		}
		// Fall through to fallback if ErrUnsupported
	}

	Logger().Debug("move by copy",
		slog.String("src", src.String()),
		slog.String("dst", dst.String()),
	)
	if err := Copy(ctx, fsys, src, dst, Recurse); err != nil {
		return err
	}
	return Remove(ctx, fsys, src, Recurse)
}

func linkError(op string, oldname, newname Path, err error) error {
	if err == nil {
		return nil
	}
	var le *LinkError
	if errors.As(err, &le) {
		return err
	}
	return &LinkError{
		Op:  op,
		Old: oldname.String(),
		New: newname.String(),
		Err: err,
	}
}
