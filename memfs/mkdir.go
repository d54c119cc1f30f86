package memfs

import (
	"context"

	"lesiw.io/fspath"
)

var _ fspath.MkdirFS = (*memFS)(nil)

func (f *memFS) Mkdir(
	ctx context.Context, name fspath.Path, mode fspath.Mode,
) error {
	name = f.abs(ctx, name)
	f.Lock()
	defer f.Unlock()

	dir, leaf, err := f.parent(name)
	if err != nil {
		return pathError("mkdir", name, err)
	}
	if dir.child(leaf) != nil {
		return pathError("mkdir", name, fspath.ErrExist)
	}
	dir.add(f.newNode(leaf, mode.Perm()|fspath.ModeDir))
	return nil
}
