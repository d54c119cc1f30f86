package fspath

import (
	"context"
	"errors"
	"log/slog"

	"lesiw.io/fspath/path"
)

// Copy copies src to dst.
// Analogous to: cp, cp -R.
//
// A symbolic link is copied as a link. A directory is copied only with
// [Recurse], which copies everything below it; without Recurse copying a
// directory fails with [ErrInvalid], as does copying a directory into
// itself or below itself, or copying a file onto itself. If dst exists,
// Copy fails with [ErrExist] unless flags contain [Overwrite].
// Modification times are carried over when the file system supports
// [ChtimesFS]. A failure partway through a tree leaves the entries already
// copied in place.
//
// Requires: [ReadFS] && [WriteFS], plus [MkdirFS] for directories and
// [ReadLinkFS] && [SymlinkFS] for links
func Copy(ctx context.Context, fsys FS, src, dst Path, flags Flag) error {
	st, err := fsys.Stat(ctx, src, false)
	if err != nil {
		return linkError("copy", src, dst, err)
	}
	if st.IsDir() && path.Common(src, dst).Equal(src) {
		return linkError("copy", src, dst, ErrInvalid)
	}
	if dstSt, err := fsys.Stat(ctx, dst, false); err == nil {
		if sameFile(src, dst, st, dstSt) {
			return linkError("copy", src, dst, ErrInvalid)
		}
		if flags&Overwrite == 0 {
			return linkError("copy", src, dst, ErrExist)
		}
		if !st.IsDir() || !IsDir(ctx, fsys, dst) {
			if err := Remove(ctx, fsys, dst, Recurse); err != nil {
				return err
			}
		}
	}
	switch {
	case st.IsSymlink():
		target, err := ReadLink(ctx, fsys, src)
		if err != nil {
			return err
		}
		return MakeSymlink(ctx, fsys, target, dst, 0)
	case st.IsDir():
		if flags&Recurse == 0 {
			return linkError("copy", src, dst, ErrInvalid)
		}
		return copyTree(ctx, fsys, src, dst, flags)
	}
	data, err := Load(ctx, fsys, src, -1, 0)
	if err != nil {
		return err
	}
	if err := Save(ctx, fsys, dst, data, 0); err != nil {
		return err
	}
	keepTimes(ctx, fsys, dst, st)
	return nil
}

func copyTree(ctx context.Context, fsys FS, src, dst Path, flags Flag) error {
	Logger().Debug("copy tree",
		slog.String("src", src.String()),
		slog.String("dst", dst.String()),
	)
	if err := MakeDirectory(ctx, fsys, dst, 0); err != nil {
		return err
	}
	for p, err := range Directory(ctx, fsys, src, Hidden) {
		if err != nil {
			return err
		}
		err = Copy(ctx, fsys, p, path.Join(dst, p.Leaf()), flags)
		if err != nil {
			return err
		}
	}
	if st, err := fsys.Stat(ctx, src, false); err == nil {
		keepTimes(ctx, fsys, dst, st)
	}
	return nil
}

// sameFile reports whether a and b, with statuses sa and sb, name the same
// entry.
func sameFile(a, b Path, sa, sb Status) bool {
	if a.Equal(b) {
		return true
	}
	return sa.Inode != 0 && sa.Device == sb.Device && sa.Inode == sb.Inode
}

func keepTimes(ctx context.Context, fsys FS, dst Path, st Status) {
	cfs, ok := fsys.(ChtimesFS)
	if !ok {
		return
	}
	err := cfs.SetTimes(ctx, dst, st.Atime, st.Mtime, false)
	if err != nil && !errors.Is(err, ErrUnsupported) {
		Logger().Debug("copy times",
			slog.String("path", dst.String()),
			slog.Any("error", err),
		)
	}
}
