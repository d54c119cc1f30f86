package memfs

import (
	"context"

	"lesiw.io/fspath"
)

var _ fspath.FS = (*memFS)(nil)

func (f *memFS) Stat(
	ctx context.Context, name fspath.Path, follow bool,
) (fspath.Status, error) {
	name = f.abs(ctx, name)
	f.RLock()
	defer f.RUnlock()

	n, err := f.lookup(name, follow)
	if err != nil {
		return fspath.Status{}, pathError("stat", name, err)
	}
	return f.status(n), nil
}

func (f *memFS) status(n *node) fspath.Status {
	size := int64(len(n.data))
	if n.link() {
		size = int64(len(n.target.String()))
	}
	return fspath.Status{
		Mode:      n.mode,
		Size:      size,
		Device:    f.device,
		Inode:     n.inode,
		Atime:     n.atime,
		Mtime:     n.mtime,
		Ctime:     n.ctime,
		Birthtime: n.btime,
	}
}
