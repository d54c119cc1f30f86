package fspath

import (
	"context"
	"errors"

	"lesiw.io/fspath/path"
)

// A SymlinkFS is a file system with the Symlink method.
type SymlinkFS interface {
	FS

	// Symlink creates link as a symbolic link to target.
	Symlink(ctx context.Context, target, link Path) error
}

// A ReadLinkFS is a file system with the ReadLink method.
type ReadLinkFS interface {
	FS

	// ReadLink returns the destination of the named symbolic link.
	// If the link destination is relative, ReadLink returns the relative
	// path without resolving it to an absolute one.
	ReadLink(ctx context.Context, name Path) (Path, error)
}

// maxLinks bounds the links ResolveSymlink follows, as ELOOP does.
const maxLinks = 40

// MakeSymlink creates link as a symbolic link to target.
// Analogous to: [os.Symlink], ln -s.
//
// If link exists, MakeSymlink fails with [ErrExist] unless flags contain
// [Overwrite], which removes it first. A directory is only removed for
// Overwrite if flags also contain [Recurse].
//
// Requires: [SymlinkFS]
func MakeSymlink(
	ctx context.Context, fsys FS, target, link Path, flags Flag,
) error {
	sfs, ok := fsys.(SymlinkFS)
	if !ok {
		return linkError("symlink", target, link, ErrUnsupported)
	}
	if _, err := fsys.Stat(ctx, link, false); err == nil {
		if flags&Overwrite == 0 {
			return linkError("symlink", target, link, ErrExist)
		}
		if err := Remove(ctx, fsys, link, flags&Recurse); err != nil {
			return err
		}
	}
	return linkError("symlink", target, link, sfs.Symlink(ctx, target, link))
}

// ReadLink returns the destination of the named symbolic link.
// Analogous to: [os.Readlink], readlink.
//
// Requires: [ReadLinkFS]
func ReadLink(ctx context.Context, fsys FS, name Path) (Path, error) {
	if rfs, ok := fsys.(ReadLinkFS); ok {
		target, err := rfs.ReadLink(ctx, name)
		if !errors.Is(err, ErrUnsupported) {
			return target, newPathError("readlink", name, err)
		}
	}
	return Path{}, &PathError{
		Op:   "readlink",
		Path: name.String(),
		Err:  ErrUnsupported,
	}
}

// ResolveSymlink follows name through any chain of symbolic links and
// returns the first path that is not a link. Relative link targets are
// taken relative to the directory holding the link. A name that is not a
// link is returned unchanged.
// Analogous to: readlink -f, without resolving parent directories.
//
// Requires: [ReadLinkFS]
func ResolveSymlink(ctx context.Context, fsys FS, name Path) (Path, error) {
	for range maxLinks {
		st, err := fsys.Stat(ctx, name, false)
		if err != nil {
			return Path{}, newPathError("resolve", name, err)
		}
		if !st.IsSymlink() {
			return name, nil
		}
		target, err := ReadLink(ctx, fsys, name)
		if err != nil {
			return Path{}, err
		}
		name = path.Join(name.Dir(), target)
	}
	return Path{}, &PathError{
		Op:   "resolve",
		Path: name.String(),
		Err:  errTooManyLinks,
	}
}

var errTooManyLinks = errors.New("too many levels of symbolic links")
