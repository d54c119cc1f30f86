package fspath

import (
	"context"
	"errors"
)

// A WorkDirFS is a file system with a process working directory.
type WorkDirFS interface {
	FS

	// Getwd returns the absolute path of the working directory.
	Getwd(ctx context.Context) (Path, error)

	// Chdir changes the working directory to dir.
	Chdir(ctx context.Context, dir Path) error
}

// WorkingDirectory returns the working directory. A directory set with
// [WithWorkDir] takes precedence over the file system's own.
// Analogous to: [os.Getwd], pwd.
//
// Requires: [WorkDirFS], unless ctx carries a working directory
func WorkingDirectory(ctx context.Context, fsys FS) (Path, error) {
	if dir := WorkDir(ctx); !dir.Empty() {
		return dir, nil
	}
	if wfs, ok := fsys.(WorkDirFS); ok {
		dir, err := wfs.Getwd(ctx)
		if !errors.Is(err, ErrUnsupported) {
			return dir, newPathError("getwd", Path{}, err)
		}
	}
	return Path{}, &PathError{Op: "getwd", Err: ErrUnsupported}
}

// ChangeDirectory changes the file system's working directory to dir.
// It does not affect a directory carried by ctx.
// Analogous to: [os.Chdir], cd.
//
// Requires: [WorkDirFS]
func ChangeDirectory(ctx context.Context, fsys FS, dir Path) error {
	if wfs, ok := fsys.(WorkDirFS); ok {
		err := wfs.Chdir(ctx, dir)
		if !errors.Is(err, ErrUnsupported) {
			return newPathError("chdir", dir, err)
		}
	}
	return &PathError{Op: "chdir", Path: dir.String(), Err: ErrUnsupported}
}
