// Package billyfs adapts a go-billy filesystem to lesiw.io/fspath.FS.
//
// Any billy.Filesystem can serve as a native capability: billy's osfs,
// its memfs, or a go-git worktree. Paths are given to billy as
// slash-separated names below the billy root. An absolute path names the
// billy root by its root; a relative path is taken relative to the
// directory carried by [fspath.WithWorkDir], or to the billy root.
//
// Timestamps can be set when the wrapped filesystem implements
// billy.Change. There is no working directory and no home directory.
//
// Usage:
//
//	fsys := billyfs.New(memfs.New())
//	err := fspath.Save(ctx, fsys, path.New("/notes.txt"), data, 0)
//
//	// Unwrap for go-git integration
//	bfs := fsys.Unwrap()
package billyfs

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"lesiw.io/fspath"
	"lesiw.io/fspath/path"
	"lesiw.io/fspath/utf"
)

// FS implements lesiw.io/fspath.FS over a billy.Filesystem.
//
// billy filesystems need not be safe for concurrent use, so FS serializes
// its calls to the one it wraps.
type FS struct {
	mu  sync.Mutex
	bfs billy.Filesystem
}

// New wraps bfs.
func New(bfs billy.Filesystem) *FS {
	return &FS{bfs: bfs}
}

// Unwrap returns the underlying billy.Filesystem for go-git integration.
func (f *FS) Unwrap() billy.Filesystem { return f.bfs }

// name converts p to a billy name.
func (f *FS) name(ctx context.Context, p fspath.Path) string {
	if !p.HasRoot() {
		p = path.Join(fspath.WorkDir(ctx), p)
	}
	parts := p.Clean().BreakdownPaths()
	if len(parts) > 0 && parts[0].HasRoot() {
		parts = parts[1:]
	}
	names := make([]string, len(parts))
	for i, part := range parts {
		names[i] = text(part)
	}
	return "/" + strings.Join(names, "/")
}

func (f *FS) Stat(
	ctx context.Context, name fspath.Path, follow bool,
) (fspath.Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var fi os.FileInfo
	var err error
	if follow {
		fi, err = f.bfs.Stat(f.name(ctx, name))
	} else {
		fi, err = f.bfs.Lstat(f.name(ctx, name))
	}
	if err != nil {
		return fspath.Status{}, pathError("stat", name, err)
	}
	return fspath.Status{
		Mode:  fi.Mode(),
		Size:  fi.Size(),
		Mtime: fi.ModTime(),
	}, nil
}

func (f *FS) OpenDir(
	ctx context.Context, name fspath.Path,
) (fspath.DirStream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	infos, err := f.bfs.ReadDir(f.name(ctx, name))
	if err != nil {
		return nil, pathError("opendir", name, err)
	}
	names := make([][]fspath.NativeUnit, len(infos))
	for i, info := range infos {
		names[i] = fromString(info.Name())
	}
	return &stream{names: names}, nil
}

// stream lists the snapshot billy returned.
type stream struct {
	names  [][]fspath.NativeUnit
	closed bool
}

func (s *stream) ReadNext(
	ctx context.Context,
) ([]fspath.NativeUnit, error) {
	if s.closed {
		return nil, fspath.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.names) == 0 {
		return nil, io.EOF
	}
	name := s.names[0]
	s.names = s.names[1:]
	return name, nil
}

func (s *stream) Close() error {
	if s.closed {
		return fspath.ErrClosed
	}
	s.closed = true
	return nil
}

func (f *FS) CreateFile(
	ctx context.Context, name fspath.Path, mode fspath.Mode,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	file, err := f.bfs.OpenFile(f.name(ctx, name), flag, mode)
	if err != nil {
		return pathError("create", name, err)
	}
	return file.Close()
}

func (f *FS) Remove(ctx context.Context, name fspath.Path) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return pathError("remove", name, f.bfs.Remove(f.name(ctx, name)))
}

// Mkdir creates one directory. billy only offers MkdirAll, so the parent
// is checked first.
func (f *FS) Mkdir(
	ctx context.Context, name fspath.Path, mode fspath.Mode,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	bname := f.name(ctx, name)
	if _, err := f.bfs.Lstat(bname); err == nil {
		return pathError("mkdir", name, fspath.ErrExist)
	}
	if parent := dirname(bname); parent != "/" {
		fi, err := f.bfs.Stat(parent)
		if err != nil {
			return pathError("mkdir", name, err)
		}
		if !fi.IsDir() {
			return pathError("mkdir", name, fspath.ErrNotDir)
		}
	}
	return pathError("mkdir", name, f.bfs.MkdirAll(bname, mode))
}

func (f *FS) Rename(ctx context.Context, oldname, newname fspath.Path) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.bfs.Rename(f.name(ctx, oldname), f.name(ctx, newname))
	if err == nil {
		return nil
	}
	return &fspath.LinkError{
		Op:  "rename",
		Old: oldname.String(),
		New: newname.String(),
		Err: unwrap(err),
	}
}

func (f *FS) Symlink(ctx context.Context, target, link fspath.Path) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.bfs.Symlink(text(target), f.name(ctx, link))
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

func (f *FS) ReadLink(
	ctx context.Context, name fspath.Path,
) (fspath.Path, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	target, err := f.bfs.Readlink(f.name(ctx, name))
	if err != nil {
		return fspath.Path{}, pathError("readlink", name, err)
	}
	return path.New(target), nil
}

// SetTimes requires the wrapped filesystem to implement billy.Change,
// which always follows links. Zero times are filled in from the current
// status, as billy has no way to leave a time unchanged.
func (f *FS) SetTimes(
	ctx context.Context, name fspath.Path, atime, mtime time.Time,
	follow bool,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfs, ok := f.bfs.(billy.Change)
	if !ok {
		return fspath.ErrUnsupported
	}
	bname := f.name(ctx, name)
	if !follow {
		fi, err := f.bfs.Lstat(bname)
		if err != nil {
			return pathError("chtimes", name, err)
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fspath.ErrUnsupported
		}
	}
	if atime.IsZero() || mtime.IsZero() {
		fi, err := f.bfs.Stat(bname)
		if err != nil {
			return pathError("chtimes", name, err)
		}
		if mtime.IsZero() {
			mtime = fi.ModTime()
		}
		if atime.IsZero() {
			atime = fi.ModTime()
		}
	}
	return pathError("chtimes", name, cfs.Chtimes(bname, atime, mtime))
}

func (f *FS) ReadBytes(
	ctx context.Context, name fspath.Path, limit int64,
) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bname := f.name(ctx, name)
	if limit < 0 {
		data, err := util.ReadFile(f.bfs, bname)
		return data, pathError("read", name, err)
	}
	file, err := f.bfs.Open(bname)
	if err != nil {
		return nil, pathError("read", name, err)
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, limit))
	return data, pathError("read", name, err)
}

func (f *FS) WriteBytes(
	ctx context.Context, name fspath.Path, data []byte, append bool,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	bname := f.name(ctx, name)
	if !append {
		err := util.WriteFile(f.bfs, bname, data, fspath.FileMode(ctx))
		return pathError("write", name, err)
	}
	flag := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	file, err := f.bfs.OpenFile(bname, flag, fspath.FileMode(ctx))
	if err != nil {
		return pathError("write", name, err)
	}
	_, err = file.Write(data)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return pathError("write", name, err)
}

// text returns the UTF-8 form of p. POSIX names pass through byte for
// byte, whether or not they are valid UTF-8.
func text(p fspath.Path) string {
	if b, ok := any(p.Native()).([]byte); ok {
		return string(b)
	}
	s, _ := utf.ToString(p.Native(), utf.Ignore)
	return s
}

func fromString(s string) []fspath.NativeUnit {
	if units, ok := any([]byte(s)).([]fspath.NativeUnit); ok {
		return units
	}
	units, _ := utf.FromString[fspath.NativeUnit](s, utf.Ignore)
	return units
}

func dirname(name string) string {
	i := strings.LastIndexByte(name, '/')
	if i <= 0 {
		return "/"
	}
	return name[:i]
}

func pathError(op string, name fspath.Path, err error) error {
	if err == nil {
		return nil
	}
	return &fspath.PathError{Op: op, Path: name.String(), Err: unwrap(err)}
}

func unwrap(err error) error {
	var pe *os.PathError
	var le *os.LinkError
	switch {
	case errors.As(err, &pe):
		return pe.Err
	case errors.As(err, &le):
		return le.Err
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
)
