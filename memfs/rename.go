package memfs

import (
	"context"
	"time"

	"lesiw.io/fspath"
	"lesiw.io/fspath/path"
)

var _ fspath.RenameFS = (*memFS)(nil)

func (f *memFS) Rename(
	ctx context.Context, oldname, newname fspath.Path,
) error {
	oldname, newname = f.abs(ctx, oldname), f.abs(ctx, newname)
	f.Lock()
	defer f.Unlock()

	oldDir, oldLeaf, err := f.parent(oldname)
	if err != nil {
		return pathError("rename", oldname, err)
	}
	n := oldDir.child(oldLeaf)
	if n == nil {
		return pathError("rename", oldname, fspath.ErrNotExist)
	}
	newDir, newLeaf, err := f.parent(newname)
	if err != nil {
		return pathError("rename", newname, err)
	}
	old := newDir.child(newLeaf)
	if old == n {
		return nil
	}
	if n.dir() && path.Common(oldname, newname).Equal(oldname) {
		// A directory cannot move inside itself.
		return pathError("rename", newname, fspath.ErrInvalid)
	}
	if old != nil {
		switch {
		case old.dir() && !n.dir():
			return pathError("rename", newname, errIsDir)
		case old.dir() && len(old.nodes) > 0:
			return pathError("rename", newname, errDirNotEmpty)
		case !old.dir() && n.dir():
			return pathError("rename", newname, fspath.ErrNotDir)
		}
		newDir.drop(old)
	}

	oldDir.drop(n)
	n.name = newLeaf
	n.ctime = time.Now()
	newDir.add(n)
	return nil
}
