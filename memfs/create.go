package memfs

import (
	"context"

	"lesiw.io/fspath"
)

var _ fspath.CreateFS = (*memFS)(nil)

func (f *memFS) CreateFile(
	ctx context.Context, name fspath.Path, mode fspath.Mode,
) error {
	name = f.abs(ctx, name)
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(name)
	if err != nil {
		return pathError("create", name, err)
	}
	if dir.child(leaf) != nil {
		return pathError("create", name, fspath.ErrExist)
	}
	dir.add(f.newNode(leaf, mode.Perm()))
	return nil
}
