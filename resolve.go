package fspath

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"

	"lesiw.io/fspath/path"
)

// A HomeFS is a file system that can look up home directories.
type HomeFS interface {
	FS

	// LookupHome returns the home directory of the named user, or of the
	// current user if user is empty.
	LookupHome(ctx context.Context, user string) (Path, error)
}

// An AbsFS is a file system with its own notion of absolute paths, such
// as the Windows full path API.
type AbsFS interface {
	FS

	// FullPath returns an absolute representation of name.
	FullPath(ctx context.Context, name Path) (Path, error)
}

// Resolve returns an absolute path for name.
// Analogous to: [filepath.Abs], realpath -s.
//
// The empty path resolves to the working directory. On grammars other
// than Windows a leading "~" or "~user" segment is replaced with that
// user's home directory, from [HomeFS] or, for the current user, the HOME
// environment variable. A file system implementing [AbsFS] then resolves
// the rest. Otherwise a relative path is joined to the working directory
// (see [WorkingDirectory]); if the working directory is unavailable the
// path is kept as is, and Resolve fails with [ErrNotExist] because the
// result is not absolute.
func Resolve(ctx context.Context, fsys FS, name Path) (Path, error) {
	if name.Empty() {
		return WorkingDirectory(ctx, fsys)
	}
	name, err := expandHome(ctx, fsys, name)
	if err != nil {
		return Path{}, err
	}
	if afs, ok := fsys.(AbsFS); ok {
		full, err := afs.FullPath(ctx, name)
		if !errors.Is(err, ErrUnsupported) {
			return full, newPathError("resolve", name, err)
		}
	}
	if name.IsAbsolute() {
		return name, nil
	}
	if wd, err := WorkingDirectory(ctx, fsys); err != nil {
		Logger().Debug("resolve without working directory",
			slog.String("path", name.String()),
			slog.Any("error", err),
		)
	} else {
		name = path.Join(wd, name)
	}
	if !name.IsAbsolute() {
		return Path{}, &PathError{
			Op:   "resolve",
			Path: name.String(),
			Err:  ErrNotExist,
		}
	}
	return name, nil
}

func expandHome(ctx context.Context, fsys FS, name Path) (Path, error) {
	if name.Grammar() == path.Windows || name.HasRoot() {
		return name, nil
	}
	segs := name.BreakdownPaths()
	if len(segs) == 0 || !strings.HasPrefix(segs[0].String(), "~") {
		return name, nil
	}
	user := segs[0].String()[1:]
	home, err := lookupHome(ctx, fsys, user, name.Grammar())
	if err != nil {
		return Path{}, newPathError("resolve", name, err)
	}
	segs[0] = home
	return path.JoinAll(segs...), nil
}

func lookupHome(
	ctx context.Context, fsys FS, user string, g *path.Grammar,
) (Path, error) {
	if hfs, ok := fsys.(HomeFS); ok {
		home, err := hfs.LookupHome(ctx, user)
		if err == nil || user != "" {
			return home, err
		}
		Logger().Debug("home lookup failed", slog.Any("error", err))
	}
	if user != "" {
		return Path{}, ErrUnsupported
	}
	if env := os.Getenv("HOME"); env != "" {
		return path.Make[NativeUnit](g, env), nil
	}
	return Path{}, ErrNotExist
}
