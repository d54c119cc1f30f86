package memfs

import (
	"context"

	"lesiw.io/fspath"
)

var _ fspath.RemoveFS = (*memFS)(nil)

func (f *memFS) Remove(ctx context.Context, name fspath.Path) error {
	name = f.abs(ctx, name)
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(name)
	if err != nil {
		return pathError("remove", name, err)
	}
	n := dir.child(leaf)
	if n == nil {
		return pathError("remove", name, fspath.ErrNotExist)
	}
	if n.dir() && len(n.nodes) > 0 {
		return pathError("remove", name, errDirNotEmpty)
	}
	dir.drop(n)
	return nil
}
