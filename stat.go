package fspath

import (
	"context"
	"errors"
)

// Stat returns the status of the named file, following symbolic links.
// Analogous to: [os.Stat], stat(2).
func Stat(ctx context.Context, fsys FS, name Path) (Status, error) {
	st, err := fsys.Stat(ctx, name, true)
	return st, newPathError("stat", name, err)
}

// Lstat returns the status of the named file. A symbolic link is
// described itself rather than its target.
// Analogous to: [os.Lstat], lstat(2).
func Lstat(ctx context.Context, fsys FS, name Path) (Status, error) {
	st, err := fsys.Stat(ctx, name, false)
	return st, newPathError("lstat", name, err)
}

// Exists reports whether a directory entry exists at name. A dangling
// symbolic link exists.
func Exists(ctx context.Context, fsys FS, name Path) bool {
	_, err := fsys.Stat(ctx, name, false)
	return err == nil
}

// IsDir reports whether name is a directory or a link to one.
func IsDir(ctx context.Context, fsys FS, name Path) bool {
	st, err := fsys.Stat(ctx, name, true)
	return err == nil && st.IsDir()
}

// IsFile reports whether name is a regular file or a link to one.
func IsFile(ctx context.Context, fsys FS, name Path) bool {
	st, err := fsys.Stat(ctx, name, true)
	return err == nil && st.IsRegular()
}

// IsSymlink reports whether name is a symbolic link.
func IsSymlink(ctx context.Context, fsys FS, name Path) bool {
	st, err := fsys.Stat(ctx, name, false)
	return err == nil && st.IsSymlink()
}

// IsSpecial reports whether name is a device, pipe, socket, or other
// special file.
func IsSpecial(ctx context.Context, fsys FS, name Path) bool {
	st, err := fsys.Stat(ctx, name, true)
	return err == nil && st.IsSpecial()
}

// IsHidden reports whether name is hidden: its leaf starts with a dot, or
// the file system marks it hidden.
func IsHidden(ctx context.Context, fsys FS, name Path) bool {
	if dotLeaf(name) {
		return true
	}
	st, err := fsys.Stat(ctx, name, false)
	return err == nil && st.Hidden
}

func dotLeaf(name Path) bool {
	leaf := name.Leaf().Native()
	return len(leaf) > 0 && leaf[0] == '.'
}

// isTree reports whether name is a directory that is not reached through
// a symbolic link.
func isTree(ctx context.Context, fsys FS, name Path) bool {
	st, err := fsys.Stat(ctx, name, false)
	return err == nil && st.IsDir()
}

// Size returns the size of the named file in bytes. With [Recurse], the
// size of a directory is the total size of every file below it; symbolic
// links are counted as themselves and never followed.
func Size(ctx context.Context, fsys FS, name Path, flags Flag) (int64, error) {
	st, err := fsys.Stat(ctx, name, flags&NoFollow == 0)
	if err != nil {
		return 0, newPathError("size", name, err)
	}
	if flags&Recurse == 0 || !st.IsDir() {
		return st.Size, nil
	}
	var total int64
	for p, err := range DeepSearch(ctx, fsys, name, Hidden) {
		if err != nil {
			return total, err
		}
		st, err := fsys.Stat(ctx, p, false)
		if errors.Is(err, ErrNotExist) {
			continue
		} else if err != nil {
			return total, newPathError("size", p, err)
		}
		if !st.IsDir() {
			total += st.Size
		}
	}
	return total, nil
}

// ID returns the device and inode numbers of the named file, which
// together identify it on the host.
func ID(
	ctx context.Context, fsys FS, name Path,
) (device, inode uint64, err error) {
	st, err := fsys.Stat(ctx, name, true)
	if err != nil {
		return 0, 0, newPathError("id", name, err)
	}
	return st.Device, st.Inode, nil
}
