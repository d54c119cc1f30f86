package memfs

import (
	"context"
	"time"

	"lesiw.io/fspath"
)

var _ fspath.ChtimesFS = (*memFS)(nil)

func (f *memFS) SetTimes(
	ctx context.Context, name fspath.Path, atime, mtime time.Time,
	follow bool,
) error {
	name = f.abs(ctx, name)
	f.Lock()
	defer f.Unlock()

	n, err := f.lookup(name, follow)
	if err != nil {
		return pathError("chtimes", name, err)
	}
	if !atime.IsZero() {
		n.atime = atime
	}
	if !mtime.IsZero() {
		n.mtime = mtime
	}
	n.ctime = time.Now()
	return nil
}
