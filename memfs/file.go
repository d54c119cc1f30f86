package memfs

import (
	"context"
	"errors"
	"slices"
	"time"

	"lesiw.io/fspath"
)

var (
	_ fspath.ReadFS  = (*memFS)(nil)
	_ fspath.WriteFS = (*memFS)(nil)
)

func (f *memFS) ReadBytes(
	ctx context.Context, name fspath.Path, limit int64,
) ([]byte, error) {
	name = f.abs(ctx, name)
	f.Lock()
	defer f.Unlock()

	n, err := f.lookup(name, true)
	if err != nil {
		return nil, pathError("read", name, err)
	}
	if n.dir() {
		return nil, pathError("read", name, errIsDir)
	}
	data := n.data
	if limit >= 0 && int64(len(data)) > limit {
		data = data[:limit]
	}
	n.atime = time.Now()
	return slices.Clone(data), nil
}

func (f *memFS) WriteBytes(
	ctx context.Context, name fspath.Path, data []byte, append bool,
) error {
	name = f.abs(ctx, name)
	f.Lock()
	defer f.Unlock()

	n, err := f.lookup(name, true)
	if errors.Is(err, fspath.ErrNotExist) {
		dir, leaf, perr := f.parent(name)
		if perr != nil {
			return pathError("write", name, perr)
		}
		if dir.child(leaf) != nil {
			// A dangling link.
			return pathError("write", name, fspath.ErrNotExist)
		}
		n = f.newNode(leaf, fspath.FileMode(ctx).Perm())
		dir.add(n)
	} else if err != nil {
		return pathError("write", name, err)
	}
	if n.dir() {
		return pathError("write", name, errIsDir)
	}
	if !append {
		n.data = nil
	}
	n.data = slices.Concat(n.data, data)
	n.touch()
	return nil
}
