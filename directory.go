package fspath

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"

	"lesiw.io/fspath/path"
	"lesiw.io/fspath/utf"
)

// A DirIter lists the immediate children of one directory. Each child is
// returned joined to the directory path. A DirIter owns its native stream
// and closes it when the listing is exhausted, fails, or is closed.
//
// The zero DirIter, and any DirIter that has finished, is exhausted.
type DirIter struct {
	ctx    context.Context
	fsys   FS
	dir    Path
	flags  Flag
	stream DirStream
	dots   []string
	cur    Path
	err    error
}

// OpenDirectory opens an iterator over the children of dir.
//
// By default "." and ".." are skipped, as are hidden entries. [Dots]
// includes "." and "..", [Hidden] includes hidden entries, and [Unicode]
// skips entries whose names are not valid Unicode. A dir that does not
// exist or is not a directory yields an exhausted iterator.
//
// Requires: [FS]
func OpenDirectory(
	ctx context.Context, fsys FS, dir Path, flags Flag,
) (*DirIter, error) {
	it := &DirIter{ctx: ctx, fsys: fsys, dir: dir, flags: flags}
	st, err := fsys.Stat(ctx, dir, true)
	switch {
	case errors.Is(err, ErrNotExist), errors.Is(err, ErrNotDir):
		return it, nil
	case err == nil && !st.IsDir():
		return it, nil
	case err != nil:
		return nil, newPathError("opendir", dir, err)
	}
	if it.stream, err = fsys.OpenDir(ctx, dir); err != nil {
		if errors.Is(err, ErrNotExist) {
			return it, nil
		}
		return nil, newPathError("opendir", dir, err)
	}
	if flags&Dots != 0 {
		it.dots = []string{".", ".."}
	}
	Logger().Debug("open directory", slog.String("path", dir.String()))
	return it, nil
}

// Next advances to the next child and reports whether there is one.
// When Next returns false the iterator is exhausted; check Err.
func (it *DirIter) Next() bool {
	if it == nil || it.stream == nil {
		return false
	}
	if err := it.ctx.Err(); err != nil {
		it.fail(err)
		return false
	}
	if len(it.dots) > 0 {
		it.cur = it.dir.Join(it.dots[0])
		it.dots = it.dots[1:]
		return true
	}
	for {
		name, err := it.stream.ReadNext(it.ctx)
		if err == io.EOF {
			it.Close()
			return false
		} else if err != nil {
			it.fail(newPathError("readdir", it.dir, err))
			return false
		}
		if isDots(name) {
			continue
		}
		if it.flags&Unicode != 0 && !utf.Valid(name) {
			continue
		}
		leaf, err := path.FromUnits[NativeUnit](
			it.dir.Grammar(), name, 0,
		)
		if err != nil || leaf.Empty() {
			continue
		}
		p := path.Join(it.dir, leaf)
		if it.flags&Hidden == 0 && it.hidden(p, name) {
			continue
		}
		it.cur = p
		return true
	}
}

func isDots(name []NativeUnit) bool {
	switch len(name) {
	case 1:
		return name[0] == '.'
	case 2:
		return name[0] == '.' && name[1] == '.'
	}
	return false
}

func (it *DirIter) hidden(p Path, name []NativeUnit) bool {
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	if path.NativeGrammar != path.Windows {
		return false
	}
	st, err := it.fsys.Stat(it.ctx, p, false)
	return err == nil && st.Hidden
}

func (it *DirIter) fail(err error) {
	it.err = err
	it.Close()
}

// Path returns the current child. It is only meaningful after Next has
// returned true.
func (it *DirIter) Path() Path { return it.cur }

// Err returns the error, if any, that ended the listing.
func (it *DirIter) Err() error {
	if it == nil {
		return nil
	}
	return it.err
}

// Done reports whether the iterator is exhausted.
func (it *DirIter) Done() bool {
	return it == nil || it.stream == nil
}

// Equal reports whether it and other are both exhausted or are the same
// live iterator.
func (it *DirIter) Equal(other *DirIter) bool {
	if it.Done() || other.Done() {
		return it.Done() && other.Done()
	}
	return it == other
}

// Close releases the native stream. It is safe to call more than once.
func (it *DirIter) Close() error {
	if it == nil || it.stream == nil {
		return nil
	}
	stream := it.stream
	it.stream, it.dots = nil, nil
	err := stream.Close()
	if err != nil {
		Logger().Warn("close directory",
			slog.String("path", it.dir.String()),
			slog.Any("error", err),
		)
		return newPathError("closedir", it.dir, err)
	}
	Logger().Debug("close directory", slog.String("path", it.dir.String()))
	return nil
}

// Directory returns a sequence of the children of dir, as listed by
// [OpenDirectory] with the same flags. The native stream is closed when
// the sequence ends, including when the caller stops early.
//
// Requires: [FS]
func Directory(
	ctx context.Context, fsys FS, dir Path, flags Flag,
) iter.Seq2[Path, error] {
	return func(yield func(Path, error) bool) {
		it, err := OpenDirectory(ctx, fsys, dir, flags)
		if err != nil {
			yield(Path{}, err)
			return
		}
		defer it.Close()
		for it.Next() {
			if !yield(it.Path(), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(Path{}, err)
		}
	}
}
