package fstest

import (
	"context"
	"errors"
	"iter"
	"slices"
	"testing"

	"lesiw.io/fspath"
)

// leaves collects the leaf names a sequence yields, sorted.
func leaves(t *testing.T, seq iter.Seq2[fspath.Path, error]) []string {
	t.Helper()
	var names []string
	for name, err := range seq {
		if err != nil {
			t.Fatalf("iteration error: %v", err)
		}
		names = append(names, name.Leaf().String())
	}
	slices.Sort(names)
	return names
}

func testDirectory(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_directory"
	tree(ctx, t, fsys, dir, "a.txt", "b.txt", "sub/c.txt")

	got := leaves(t, fspath.Directory(ctx, fsys, p(dir), 0))
	want := []string{"a.txt", "b.txt", "sub"}
	if !slices.Equal(got, want) {
		t.Errorf("Directory(%q) = %q, want %q", dir, got, want)
	}

	it, err := fspath.OpenDirectory(ctx, fsys, p(dir), 0)
	if err != nil {
		t.Fatalf("OpenDirectory(%q): %v", dir, err)
	}
	defer it.Close()
	var n int
	for it.Next() {
		if parent := it.Path().Dir(); !parent.Equal(p(dir)) {
			t.Errorf("Path() = %q, want child of %q", it.Path(), dir)
		}
		n++
	}
	if err := it.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
	if !it.Done() || n != 3 {
		t.Errorf("Done() = %v after %d entries, want true after 3",
			it.Done(), n)
	}
	end, _ := fspath.OpenDirectory(ctx, fsys, p("test_directory_none"), 0)
	if !it.Equal(end) {
		t.Errorf("exhausted iterators are not equal")
	}
}

func testDirectoryDots(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_directory_dots"
	tree(ctx, t, fsys, dir, "a.txt")

	var got []string
	for name, err := range fspath.Directory(ctx, fsys, p(dir), fspath.Dots) {
		if err != nil {
			t.Fatalf("Directory(%q, Dots): %v", dir, err)
		}
		got = append(got, name.String())
	}
	want := []string{
		p(dir).String(),
		p(dir).Join("..").String(),
		p(dir).Join("a.txt").String(),
	}
	if !slices.Equal(got, want) {
		t.Errorf("Directory(%q, Dots) = %q, want %q", dir, got, want)
	}
}

func testDirectoryHidden(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_directory_hidden"
	tree(ctx, t, fsys, dir, ".hidden", "shown")

	got := leaves(t, fspath.Directory(ctx, fsys, p(dir), 0))
	if want := []string{"shown"}; !slices.Equal(got, want) {
		t.Errorf("Directory(%q) = %q, want %q", dir, got, want)
	}
	got = leaves(t, fspath.Directory(ctx, fsys, p(dir), fspath.Hidden))
	if want := []string{".hidden", "shown"}; !slices.Equal(got, want) {
		t.Errorf("Directory(%q, Hidden) = %q, want %q", dir, got, want)
	}
	if !fspath.IsHidden(ctx, fsys, p(dir).Join(".hidden")) {
		t.Errorf("IsHidden(%q) = false", ".hidden")
	}
}

func testDirectoryMissing(ctx context.Context, t *testing.T, fsys fspath.FS) {
	for _, name := range []string{"test_no_such_dir", "test_file_as_dir"} {
		if name == "test_file_as_dir" {
			save(ctx, t, fsys, name, "x")
			cleanup(ctx, t, fsys, name)
		}
		it, err := fspath.OpenDirectory(ctx, fsys, p(name), 0)
		if err != nil {
			t.Errorf("OpenDirectory(%q): %v", name, err)
			continue
		}
		if it.Next() || !it.Done() {
			t.Errorf("OpenDirectory(%q) is not exhausted", name)
		}
		if err := it.Close(); err != nil {
			t.Errorf("Close(): %v", err)
		}
	}
}

// testDeepSearch checks that every entry is listed once and that
// directories come before their contents, or after them with BottomUp.
func testDeepSearch(
	ctx context.Context, t *testing.T, fsys fspath.FS, flags fspath.Flag,
) {
	const dir = "test_deepsearch"
	tree(ctx, t, fsys, dir,
		"a.txt", "x/b.txt", "x/y/c.txt", "x/y/z/d.txt", "w/e.txt",
	)
	mkdir(ctx, t, fsys, dir+"/empty")

	index := make(map[string]int)
	var order []fspath.Path
	for name, err := range fspath.DeepSearch(ctx, fsys, p(dir), flags) {
		if err != nil {
			t.Fatalf("DeepSearch(%q): %v", dir, err)
		}
		if _, ok := index[name.String()]; ok {
			t.Errorf("DeepSearch(%q) listed %q twice", dir, name)
		}
		index[name.String()] = len(order)
		order = append(order, name)
	}
	if len(order) != 10 {
		t.Errorf("DeepSearch(%q) listed %d entries, want 10: %q",
			dir, len(order), order)
	}
	for i, name := range order {
		parent := name.Dir()
		if parent.Equal(p(dir)) {
			continue
		}
		j, ok := index[parent.String()]
		switch {
		case !ok:
			t.Errorf("parent of %q not listed", name)
		case flags&fspath.BottomUp == 0 && j > i:
			t.Errorf("%q listed before its parent", name)
		case flags&fspath.BottomUp != 0 && j < i:
			t.Errorf("%q listed after its parent", name)
		}
	}
}

func testDeepSearchBreak(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_deepsearch_break"
	tree(ctx, t, fsys, dir, "a/b/c/d.txt")

	s, err := fspath.OpenDeepSearch(ctx, fsys, p(dir), 0)
	if err != nil {
		t.Fatalf("OpenDeepSearch(%q): %v", dir, err)
	}
	for s.Next() {
		if s.Depth() >= 3 {
			break
		}
	}
	if err = s.Close(); err != nil {
		t.Errorf("Close() after break: %v", err)
	}
	if !s.Done() || s.Next() {
		t.Errorf("search not exhausted after Close")
	}

	// Removing the tree proves every handle was released on platforms
	// that refuse to delete open directories.
	for range fspath.DeepSearch(ctx, fsys, p(dir), 0) {
		break
	}
	err = fspath.Remove(ctx, fsys, p(dir), fspath.Recurse)
	if err != nil && !errors.Is(err, fspath.ErrUnsupported) {
		t.Errorf("Remove(%q) after break: %v", dir, err)
	}
}
