package memfs

import (
	"context"
	"io"

	"lesiw.io/fspath"
)

func (f *memFS) OpenDir(
	ctx context.Context, name fspath.Path,
) (fspath.DirStream, error) {
	name = f.abs(ctx, name)
	f.RLock()
	defer f.RUnlock()

	n, err := f.lookup(name, true)
	if err != nil {
		return nil, pathError("opendir", name, err)
	}
	if !n.dir() {
		return nil, pathError("opendir", name, fspath.ErrNotDir)
	}

	// Snapshot names while holding lock
	entries := [][]fspath.NativeUnit{dot, dotdot}
	for _, c := range n.nodes {
		entries = append(entries, c.name.Native())
	}
	return &stream{entries: entries}, nil
}

var (
	dot    = []fspath.NativeUnit{'.'}
	dotdot = []fspath.NativeUnit{'.', '.'}
)

type stream struct {
	entries [][]fspath.NativeUnit
	closed  bool
}

func (s *stream) ReadNext(ctx context.Context) ([]fspath.NativeUnit, error) {
	if s.closed {
		return nil, fspath.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.entries) == 0 {
		return nil, io.EOF
	}
	name := s.entries[0]
	s.entries = s.entries[1:]
	return name, nil
}

func (s *stream) Close() error {
	if s.closed {
		return fspath.ErrClosed
	}
	s.closed = true
	s.entries = nil
	return nil
}
