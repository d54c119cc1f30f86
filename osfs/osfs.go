// Package osfs implements lesiw.io/fspath.FS using the host file system.
//
// Names are passed to the system in native code units: bytes on Unix and
// UTF-16 on Windows, so files whose names are not valid Unicode can be
// listed, examined and removed. Directory streams read the system's
// directory entries directly (getdents and FindFirstFile/FindNextFile).
//
// # Working Directory
//
// Relative paths are resolved against a working directory private to each
// FS. It starts at the FS root and changes with Chdir; the process working
// directory is never consulted or modified. A directory carried in the
// context by [fspath.WithWorkDir] takes precedence.
//
// # Context Handling
//
// System calls are not cancelable. Directory streams check the context
// between reads; every other call ignores it.
package osfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/user"
	"sync"
	"time"

	"lesiw.io/fspath"
	"lesiw.io/fspath/path"
)

// FS implements lesiw.io/fspath.FS using the OS file system.
// It supports all optional interfaces defined in lesiw.io/fspath;
// AbsFS only on Windows.
//
// FS also implements io.Closer. If the file system was created with an
// empty root (which creates a temporary directory), Close() will remove
// the temporary directory.
type FS struct {
	root      fspath.Path
	cleanupFn func() error

	mu  sync.RWMutex
	cwd fspath.Path
}

// New creates a new OS file system whose working directory starts at
// root.
//
// If root is empty (""), a temporary directory is created and the file
// system is rooted there. Call Close() to remove the temporary directory
// when done.
//
// If root is ".", it uses the current working directory.
//
// Returns an error if the current working directory cannot be determined
// when root is ".", or if a temporary directory cannot be created when
// root is empty.
func New(root string) (*FS, error) {
	var cleanupFn func() error

	if root == "" {
		// Create temporary directory
		var err error
		root, err = os.MkdirTemp("", "osfs-*")
		if err != nil {
			return nil, fmt.Errorf("creating temp directory: %w", err)
		}
		cleanupFn = func() error {
			return os.RemoveAll(root)
		}
	} else if root == "." {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	p := path.New(root)
	return &FS{root: p, cwd: p, cleanupFn: cleanupFn}, nil
}

// Root returns the directory the file system was created with.
func (f *FS) Root() fspath.Path { return f.root }

// abs makes name absolute against the context or FS working directory.
func (f *FS) abs(ctx context.Context, name fspath.Path) fspath.Path {
	if name.IsAbsolute() {
		return name
	}
	base := fspath.WorkDir(ctx)
	if base.Empty() {
		f.mu.RLock()
		base = f.cwd
		f.mu.RUnlock()
	}
	return path.Join(base, name)
}

// Stat implements fspath.FS
func (f *FS) Stat(
	ctx context.Context, name fspath.Path, follow bool,
) (fspath.Status, error) {
	p := f.abs(ctx, name)
	st, err := stat(p, follow)
	return st, pathError("stat", name, err)
}

// OpenDir implements fspath.FS
func (f *FS) OpenDir(
	ctx context.Context, name fspath.Path,
) (fspath.DirStream, error) {
	d, err := openDir(f.abs(ctx, name))
	if err != nil {
		return nil, pathError("opendir", name, err)
	}
	return d, nil
}

// CreateFile implements fspath.CreateFS
func (f *FS) CreateFile(
	ctx context.Context, name fspath.Path, mode fspath.Mode,
) error {
	p := osPath(f.abs(ctx, name))
	file, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return pathError("create", name, err)
	}
	return file.Close()
}

// Remove implements fspath.RemoveFS
func (f *FS) Remove(ctx context.Context, name fspath.Path) error {
	return pathError("remove", name, os.Remove(osPath(f.abs(ctx, name))))
}

// Mkdir implements fspath.MkdirFS
func (f *FS) Mkdir(
	ctx context.Context, name fspath.Path, mode fspath.Mode,
) error {
	err := os.Mkdir(osPath(f.abs(ctx, name)), mode)
	return pathError("mkdir", name, err)
}

// Rename implements fspath.RenameFS. A rename across devices fails with
// an error satisfying errors.Is(err, fspath.ErrUnsupported).
func (f *FS) Rename(ctx context.Context, oldname, newname fspath.Path) error {
	oldpath := osPath(f.abs(ctx, oldname))
	newpath := osPath(f.abs(ctx, newname))
	err := os.Rename(oldpath, newpath)
	if err == nil {
		return nil
	}
	if crossDevice(err) {
		err = fmt.Errorf("%w: %w", fspath.ErrUnsupported, err)
	} else {
		err = unwrap(err)
	}
	return &fspath.LinkError{
		Op:  "rename",
		Old: oldname.String(),
		New: newname.String(),
		Err: err,
	}
}

// Symlink implements fspath.SymlinkFS
func (f *FS) Symlink(ctx context.Context, target, link fspath.Path) error {
	// target is the link content, not a path in this file system,
	// so we don't resolve it
	err := os.Symlink(osPath(target), osPath(f.abs(ctx, link)))
	if err == nil {
		return nil
	}
	return &fspath.LinkError{
		Op:  "symlink",
		Old: target.String(),
		New: link.String(),
		Err: unwrap(err),
	}
}

// ReadLink implements fspath.ReadLinkFS
func (f *FS) ReadLink(
	ctx context.Context, name fspath.Path,
) (fspath.Path, error) {
	target, err := os.Readlink(osPath(f.abs(ctx, name)))
	if err != nil {
		return fspath.Path{}, pathError("readlink", name, err)
	}
	return path.New(target), nil
}

// SetTimes implements fspath.ChtimesFS
func (f *FS) SetTimes(
	ctx context.Context, name fspath.Path, atime, mtime time.Time,
	follow bool,
) error {
	err := setTimes(f.abs(ctx, name), atime, mtime, follow)
	return pathError("chtimes", name, err)
}

// ReadBytes implements fspath.ReadFS
func (f *FS) ReadBytes(
	ctx context.Context, name fspath.Path, limit int64,
) ([]byte, error) {
	file, err := os.Open(osPath(f.abs(ctx, name)))
	if err != nil {
		return nil, pathError("read", name, err)
	}
	defer file.Close()

	var r io.Reader = file
	if limit >= 0 {
		r = io.LimitReader(file, limit)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pathError("read", name, err)
	}
	return data, nil
}

// WriteBytes implements fspath.WriteFS
func (f *FS) WriteBytes(
	ctx context.Context, name fspath.Path, data []byte, append bool,
) error {
	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if append {
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}
	p := osPath(f.abs(ctx, name))
	file, err := os.OpenFile(p, flag, fspath.FileMode(ctx))
	if err != nil {
		return pathError("write", name, err)
	}
	_, err = file.Write(data)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return pathError("write", name, err)
}

// Getwd implements fspath.WorkDirFS
func (f *FS) Getwd(context.Context) (fspath.Path, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cwd, nil
}

// Chdir implements fspath.WorkDirFS
func (f *FS) Chdir(ctx context.Context, dir fspath.Path) error {
	p := f.abs(ctx, dir)
	st, err := stat(p, true)
	if err != nil {
		return pathError("chdir", dir, err)
	}
	if !st.IsDir() {
		return pathError("chdir", dir, fspath.ErrNotDir)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cwd = p
	return nil
}

// LookupHome implements fspath.HomeFS. The user database is consulted
// first; for the current user the environment is the fallback.
func (f *FS) LookupHome(
	_ context.Context, name string,
) (fspath.Path, error) {
	var u *user.User
	var err error
	if name == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(name)
	}
	if err == nil && u.HomeDir != "" {
		return path.New(u.HomeDir), nil
	}
	if name == "" {
		if dir, herr := os.UserHomeDir(); herr == nil {
			return path.New(dir), nil
		}
	}
	var unknown user.UnknownUserError
	if err == nil {
		err = fspath.ErrNotExist
	} else if errors.As(err, &unknown) {
		err = fmt.Errorf("%w: %w", fspath.ErrNotExist, err)
	}
	return fspath.Path{}, &fspath.PathError{Op: "home", Path: name, Err: err}
}

// Close removes the temporary directory if this file system was created
// with New(""). If the file system was created with a specific root
// directory, Close does nothing and returns nil.
//
// Close implements io.Closer.
func (f *FS) Close() error {
	if f.cleanupFn != nil {
		return f.cleanupFn()
	}
	return nil
}

// pathError records err against the name the caller used, with system
// errors for "not a directory" translated to fspath.ErrNotDir.
func pathError(op string, name fspath.Path, err error) error {
	if err == nil {
		return nil
	}
	return &fspath.PathError{Op: op, Path: name.String(), Err: unwrap(err)}
}

func unwrap(err error) error {
	var pe *os.PathError
	var le *os.LinkError
	var se *os.SyscallError
	switch {
	case errors.As(err, &pe):
		err = pe.Err
	case errors.As(err, &le):
		err = le.Err
	case errors.As(err, &se):
		err = se.Err
	}
	if errors.Is(err, errNotDir) {
		return fspath.ErrNotDir
	}
	return err
}

// Compile-time interface checks
var (
	_ fspath.FS         = (*FS)(nil)
	_ fspath.CreateFS   = (*FS)(nil)
	_ fspath.RemoveFS   = (*FS)(nil)
	_ fspath.MkdirFS    = (*FS)(nil)
	_ fspath.RenameFS   = (*FS)(nil)
	_ fspath.ChtimesFS  = (*FS)(nil)
	_ fspath.SymlinkFS  = (*FS)(nil)
	_ fspath.ReadLinkFS = (*FS)(nil)
	_ fspath.ReadFS     = (*FS)(nil)
	_ fspath.WriteFS    = (*FS)(nil)
	_ fspath.WorkDirFS  = (*FS)(nil)
	_ fspath.HomeFS     = (*FS)(nil)
	_ io.Closer         = (*FS)(nil)
)
