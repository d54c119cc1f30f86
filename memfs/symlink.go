package memfs

import (
	"context"

	"lesiw.io/fspath"
)

var (
	_ fspath.SymlinkFS  = (*memFS)(nil)
	_ fspath.ReadLinkFS = (*memFS)(nil)
)

func (f *memFS) Symlink(ctx context.Context, target, link fspath.Path) error {
	link = f.abs(ctx, link)
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(link)
	if err != nil {
		return pathError("symlink", link, err)
	}
	if dir.child(leaf) != nil {
		return pathError("symlink", link, fspath.ErrExist)
	}
	n := f.newNode(leaf, 0777|fspath.ModeSymlink)
	n.target = target
	dir.add(n)
	return nil
}

func (f *memFS) ReadLink(
	ctx context.Context, name fspath.Path,
) (fspath.Path, error) {
	name = f.abs(ctx, name)
	f.RLock()
	defer f.RUnlock()

	n, err := f.lookup(name, false)
	if err != nil {
		return fspath.Path{}, pathError("readlink", name, err)
	}
	if !n.link() {
		return fspath.Path{}, pathError("readlink", name, fspath.ErrInvalid)
	}
	return n.target, nil
}
