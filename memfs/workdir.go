package memfs

import (
	"context"

	"lesiw.io/fspath"
)

var (
	_ fspath.WorkDirFS = (*memFS)(nil)
	_ fspath.HomeFS    = (*memFS)(nil)
)

func (f *memFS) Getwd(context.Context) (fspath.Path, error) {
	f.RLock()
	defer f.RUnlock()
	return f.cwd, nil
}

func (f *memFS) Chdir(ctx context.Context, dir fspath.Path) error {
	dir = f.abs(ctx, dir)
	f.Lock()
	defer f.Unlock()

	n, err := f.lookup(dir, true)
	if err != nil {
		return pathError("chdir", dir, err)
	}
	if !n.dir() {
		return pathError("chdir", dir, fspath.ErrNotDir)
	}
	f.cwd = dir
	return nil
}

func (f *memFS) LookupHome(
	_ context.Context, user string,
) (fspath.Path, error) {
	f.RLock()
	defer f.RUnlock()

	home, ok := f.homes[user]
	if !ok {
		err := unknownUserError(user)
		return fspath.Path{}, pathError("home", fspath.Path{}, err)
	}
	return home, nil
}

type unknownUserError string

func (e unknownUserError) Error() string {
	return "unknown user " + string(e)
}

func (unknownUserError) Is(target error) bool {
	return target == fspath.ErrNotExist
}
