// Package memfs implements lesiw.io/fspath.FS using an in-memory file tree.
//
// Every optional capability except AbsFS is supported, including symbolic
// links, timestamps, a working directory and home directory lookup. Names
// are stored in native code units, so names that are not valid Unicode can
// be created and listed.
//
// Directory streams return a snapshot of the directory taken when it was
// opened, in creation order, preceded by "." and "..".
package memfs

import (
	"context"
	"errors"
	"sync"
	"time"

	"lesiw.io/fspath"
	"lesiw.io/fspath/path"
)

var (
	errIsDir       = errors.New("is a directory")
	errDirNotEmpty = errors.New("directory not empty")
	errLoop        = errors.New("too many levels of symbolic links")
)

const maxHops = 40

// An Option configures a file system returned by [New].
type Option func(*memFS)

// WithHome registers dir as the home directory of user. The empty user
// names the current user.
func WithHome(user string, dir fspath.Path) Option {
	return func(f *memFS) { f.homes[user] = dir }
}

// WithDevice sets the device number reported by Stat.
func WithDevice(dev uint64) Option {
	return func(f *memFS) { f.device = dev }
}

// New returns a new in-memory file system holding only its root
// directory, which is also the working directory.
func New(opts ...Option) fspath.FS {
	f := &memFS{
		device: 1,
		homes:  make(map[string]fspath.Path),
	}
	f.root = f.newNode(fspath.Path{}, 0755|fspath.ModeDir)
	f.cwd = rootPath()
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func rootPath() fspath.Path {
	if path.NativeGrammar == path.Windows {
		return path.New(`C:\`)
	}
	return path.New("/")
}

type memFS struct {
	sync.RWMutex
	root   *node
	cwd    fspath.Path
	homes  map[string]fspath.Path
	device uint64
	inodes uint64
}

// node represents a file, directory or symbolic link.
type node struct {
	name   fspath.Path
	mode   fspath.Mode
	data   []byte
	target fspath.Path
	nodes  []*node
	inode  uint64
	atime  time.Time
	mtime  time.Time
	ctime  time.Time
	btime  time.Time
}

func (f *memFS) newNode(name fspath.Path, mode fspath.Mode) *node {
	f.inodes++
	now := time.Now()
	return &node{
		name:  name,
		mode:  mode,
		inode: f.inodes,
		atime: now,
		mtime: now,
		ctime: now,
		btime: now,
	}
}

func (n *node) dir() bool  { return n.mode.IsDir() }
func (n *node) link() bool { return n.mode&fspath.ModeSymlink != 0 }

func (n *node) child(name fspath.Path) *node {
	for _, c := range n.nodes {
		if c.name.Equal(name) {
			return c
		}
	}
	return nil
}

func (n *node) add(c *node) {
	n.nodes = append(n.nodes, c)
	n.touch()
}

func (n *node) drop(c *node) {
	for i, x := range n.nodes {
		if x == c {
			n.nodes = append(n.nodes[:i:i], n.nodes[i+1:]...)
			break
		}
	}
	n.touch()
}

func (n *node) touch() {
	n.mtime = time.Now()
	n.ctime = n.mtime
}

// abs makes name absolute against the context or file system working
// directory and removes dot-dot segments.
func (f *memFS) abs(ctx context.Context, name fspath.Path) fspath.Path {
	if !name.IsAbsolute() {
		wd := fspath.WorkDir(ctx)
		if wd.Empty() {
			wd = f.cwd
		}
		name = path.Join(wd, name)
	}
	return name.Clean()
}

func names(p fspath.Path) []fspath.Path {
	parts := p.BreakdownPaths()
	if p.HasRoot() {
		parts = parts[1:]
	}
	return parts
}

// lookup finds the node at the absolute path p. Links in directory
// position are always followed; a final link only if follow is true.
func (f *memFS) lookup(p fspath.Path, follow bool) (*node, error) {
	for range maxHops {
		next, n, err := f.step(p, follow)
		if err != nil || n != nil {
			return n, err
		}
		p = next
	}
	return nil, errLoop
}

// step walks p until it reaches its node or a link that must be followed,
// in which case it returns the path to continue from.
func (f *memFS) step(
	p fspath.Path, follow bool,
) (fspath.Path, *node, error) {
	parts := names(p)
	n := f.root
	for i, part := range parts {
		if !n.dir() {
			return fspath.Path{}, nil, fspath.ErrNotDir
		}
		c := n.child(part)
		if c == nil {
			return fspath.Path{}, nil, fspath.ErrNotExist
		}
		if c.link() && (i < len(parts)-1 || follow) {
			dir := p.Root()
			for _, seg := range parts[:i] {
				dir = path.Join(dir, seg)
			}
			next := path.Join(dir, c.target)
			for _, rest := range parts[i+1:] {
				next = path.Join(next, rest)
			}
			return next.Clean(), nil, nil
		}
		n = c
	}
	return fspath.Path{}, n, nil
}

// parent returns the directory that holds p and p's leaf name.
func (f *memFS) parent(p fspath.Path) (*node, fspath.Path, error) {
	leaf := p.Leaf()
	if leaf.Empty() {
		return nil, leaf, fspath.ErrExist
	}
	dir, err := f.lookup(p.Dir(), true)
	if err != nil {
		return nil, leaf, err
	}
	if !dir.dir() {
		return nil, leaf, fspath.ErrNotDir
	}
	return dir, leaf, nil
}

func pathError(op string, name fspath.Path, err error) error {
	if err == nil {
		return nil
	}
	return &fspath.PathError{Op: op, Path: name.String(), Err: err}
}
