package fspath

import (
	"context"
	"iter"
	"log/slog"
)

// A SearchIter lists every entry below a directory. It keeps one
// [DirIter] per level of the tree on an explicit stack, so it holds at
// most one open native stream per level.
type SearchIter struct {
	ctx     context.Context
	fsys    FS
	flags   Flag
	stack   []frame
	descend Path // directory to enter on the next call to Next
	cur     Path
	err     error
}

type frame struct {
	it  *DirIter
	dir Path // listed after its contents in bottom-up order
}

// OpenDeepSearch opens an iterator over every entry below dir.
//
// Entries are listed in pre-order: a directory comes before everything
// below it. With [BottomUp] they are listed in post-order, a directory
// after everything below it. Symbolic links to directories are listed but
// not entered. [Hidden] and [Unicode] apply as for [OpenDirectory]; [Dots]
// is ignored.
//
// Requires: [FS]
func OpenDeepSearch(
	ctx context.Context, fsys FS, dir Path, flags Flag,
) (*SearchIter, error) {
	flags &^= Dots
	it, err := OpenDirectory(ctx, fsys, dir, flags)
	if err != nil {
		return nil, err
	}
	s := &SearchIter{ctx: ctx, fsys: fsys, flags: flags}
	if !it.Done() {
		s.stack = append(s.stack, frame{it: it})
	}
	return s, nil
}

// Next advances to the next entry and reports whether there is one. When
// Next returns false the iterator is exhausted and every stream is closed;
// check Err.
func (s *SearchIter) Next() bool {
	if s == nil || s.err != nil {
		return false
	}
	if !s.descend.Empty() {
		dir := s.descend
		s.descend = Path{}
		if !s.push(dir) {
			return false
		}
	}
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		if !top.it.Next() {
			s.stack = s.stack[:len(s.stack)-1]
			if err := top.it.Err(); err != nil {
				s.fail(err)
				return false
			}
			if s.flags&BottomUp != 0 && !top.dir.Empty() {
				s.cur = top.dir
				return true
			}
			continue
		}
		p := top.it.Path()
		if !isTree(s.ctx, s.fsys, p) {
			s.cur = p
			return true
		}
		if s.flags&BottomUp == 0 {
			s.descend = p
			s.cur = p
			return true
		}
		if !s.push(p) {
			return false
		}
	}
	return false
}

func (s *SearchIter) push(dir Path) bool {
	it, err := OpenDirectory(s.ctx, s.fsys, dir, s.flags)
	if err != nil {
		s.fail(err)
		return false
	}
	s.stack = append(s.stack, frame{it: it, dir: dir})
	Logger().Debug("descend",
		slog.String("path", dir.String()),
		slog.Int("depth", len(s.stack)),
	)
	return true
}

func (s *SearchIter) fail(err error) {
	s.err = err
	s.Close()
}

// Path returns the current entry. It is only meaningful after Next has
// returned true.
func (s *SearchIter) Path() Path { return s.cur }

// Depth returns the number of directories currently open.
func (s *SearchIter) Depth() int { return len(s.stack) }

// Err returns the error, if any, that ended the search.
func (s *SearchIter) Err() error {
	if s == nil {
		return nil
	}
	return s.err
}

// Done reports whether the search is exhausted.
func (s *SearchIter) Done() bool {
	return s == nil || (len(s.stack) == 0 && s.descend.Empty())
}

// Close releases every open stream. It is safe to call more than once.
func (s *SearchIter) Close() error {
	if s == nil {
		return nil
	}
	var first error
	for i := len(s.stack) - 1; i >= 0; i-- {
		if err := s.stack[i].it.Close(); err != nil && first == nil {
			first = err
		}
	}
	s.stack, s.descend = nil, Path{}
	return first
}

// DeepSearch returns a sequence of every entry below dir, as listed by
// [OpenDeepSearch] with the same flags. Every stream is closed when the
// sequence ends, including when the caller stops early.
//
// Requires: [FS]
func DeepSearch(
	ctx context.Context, fsys FS, dir Path, flags Flag,
) iter.Seq2[Path, error] {
	return func(yield func(Path, error) bool) {
		s, err := OpenDeepSearch(ctx, fsys, dir, flags)
		if err != nil {
			yield(Path{}, err)
			return
		}
		defer s.Close()
		for s.Next() {
			if !yield(s.Path(), nil) {
				return
			}
		}
		if err := s.Err(); err != nil {
			yield(Path{}, err)
		}
	}
}
