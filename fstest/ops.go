package fstest

import (
	"context"
	"errors"
	"slices"
	"testing"

	"lesiw.io/fspath"
)

func testMkdir(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_mkdir"
	err := fspath.MakeDirectory(ctx, fsys, p(dir), 0)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("MkdirFS not supported")
	}
	if err != nil {
		t.Fatalf("MakeDirectory(%q): %v", dir, err)
	}
	cleanup(ctx, t, fsys, dir)

	if !fspath.IsDir(ctx, fsys, p(dir)) {
		t.Errorf("IsDir(%q) = false after MakeDirectory", dir)
	}
	if err = fspath.MakeDirectory(ctx, fsys, p(dir), 0); err != nil {
		t.Errorf("MakeDirectory(%q) on existing directory: %v", dir, err)
	}

	const nested = "test_mkdir_missing/child"
	err = fspath.MakeDirectory(ctx, fsys, p(nested), 0)
	if err == nil {
		cleanup(ctx, t, fsys, "test_mkdir_missing")
		t.Errorf("MakeDirectory(%q) without parent succeeded", nested)
	}
}

func testMkdirRecurse(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_mkdir_recurse/a/b/c"
	err := fspath.MakeDirectory(ctx, fsys, p(dir), fspath.Recurse)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("MkdirFS not supported")
	}
	if err != nil {
		t.Fatalf("MakeDirectory(%q, Recurse): %v", dir, err)
	}
	cleanup(ctx, t, fsys, "test_mkdir_recurse")

	for d := p(dir); !d.Empty(); d = d.Dir() {
		if !fspath.IsDir(ctx, fsys, d) {
			t.Errorf("IsDir(%q) = false", d)
		}
	}
}

func testMkdirOverFile(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_mkdir_file"
	save(ctx, t, fsys, name, "x")
	cleanup(ctx, t, fsys, name)

	err := fspath.MakeDirectory(ctx, fsys, p(name), 0)
	if !errors.Is(err, fspath.ErrExist) {
		t.Errorf("MakeDirectory(%q) over file: %v, want ErrExist", name, err)
	}
	err = fspath.MakeDirectory(ctx, fsys, p(name), fspath.Overwrite)
	if err != nil {
		t.Fatalf("MakeDirectory(%q, Overwrite): %v", name, err)
	}
	if !fspath.IsDir(ctx, fsys, p(name)) {
		t.Errorf("IsDir(%q) = false after Overwrite", name)
	}
}

func testRemove(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_remove.txt"
	save(ctx, t, fsys, name, "x")

	err := fspath.Remove(ctx, fsys, p(name), 0)
	if errors.Is(err, fspath.ErrUnsupported) {
		cleanup(ctx, t, fsys, name)
		t.Skip("RemoveFS not supported")
	}
	if err != nil {
		t.Fatalf("Remove(%q): %v", name, err)
	}
	if fspath.Exists(ctx, fsys, p(name)) {
		t.Errorf("Exists(%q) = true after Remove", name)
	}
	if err := fspath.Remove(ctx, fsys, p(name), 0); err != nil {
		t.Errorf("Remove(%q) of missing file: %v", name, err)
	}

	const dir = "test_remove_dir"
	tree(ctx, t, fsys, dir, "child.txt")
	if err := fspath.Remove(ctx, fsys, p(dir), 0); err == nil {
		t.Errorf("Remove(%q) of non-empty directory succeeded", dir)
	}
}

func testRemoveRecurse(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_remove_recurse"
	tree(ctx, t, fsys, dir, "a.txt", ".hidden", "x/y/z.txt", "x/w.txt")

	err := fspath.Remove(ctx, fsys, p(dir), fspath.Recurse)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("RemoveFS not supported")
	}
	if err != nil {
		t.Fatalf("Remove(%q, Recurse): %v", dir, err)
	}
	if fspath.Exists(ctx, fsys, p(dir)) {
		t.Errorf("Exists(%q) = true after Remove", dir)
	}
}

func testMove(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_move"
	tree(ctx, t, fsys, dir, "src.txt", "other.txt", "sub/inner.txt")
	src, dst := p(dir).Join("src.txt"), p(dir).Join("dst.txt")

	err := fspath.Move(ctx, fsys, src, dst, 0)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("RenameFS not supported")
	}
	if err != nil {
		t.Fatalf("Move(%q, %q): %v", src, dst, err)
	}
	if fspath.Exists(ctx, fsys, src) {
		t.Errorf("Exists(%q) = true after Move", src)
	}
	if got := load(ctx, t, fsys, dst.String()); got != "src.txt" {
		t.Errorf("Load(%q) = %q, want %q", dst, got, "src.txt")
	}

	other := p(dir).Join("other.txt")
	err = fspath.Move(ctx, fsys, dst, other, 0)
	if !errors.Is(err, fspath.ErrExist) {
		t.Errorf("Move onto existing file: %v, want ErrExist", err)
	}
	var le *fspath.LinkError
	if !errors.As(err, &le) {
		t.Errorf("Move error %T is not a *LinkError", err)
	}
	err = fspath.Move(ctx, fsys, dst, other, fspath.Overwrite)
	if err != nil {
		t.Fatalf("Move(Overwrite): %v", err)
	}
	if got := load(ctx, t, fsys, other.String()); got != "src.txt" {
		t.Errorf("Load(%q) = %q, want %q", other, got, "src.txt")
	}

	sub, moved := p(dir).Join("sub"), p(dir).Join("moved")
	if err := fspath.Move(ctx, fsys, sub, moved, 0); err != nil {
		t.Fatalf("Move(%q, %q): %v", sub, moved, err)
	}
	got := load(ctx, t, fsys, moved.Join("inner.txt").String())
	if got != "sub/inner.txt" {
		t.Errorf("moved directory lost its contents: %q", got)
	}
}

func testCopyFile(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_copy_file"
	tree(ctx, t, fsys, dir, "src.txt")
	src, dst := p(dir).Join("src.txt"), p(dir).Join("dst.txt")

	if err := fspath.Copy(ctx, fsys, src, dst, 0); err != nil {
		t.Fatalf("Copy(%q, %q): %v", src, dst, err)
	}
	if got := load(ctx, t, fsys, dst.String()); got != "src.txt" {
		t.Errorf("Load(%q) = %q, want %q", dst, got, "src.txt")
	}
	if !fspath.Exists(ctx, fsys, src) {
		t.Errorf("Copy removed its source")
	}
	err := fspath.Copy(ctx, fsys, src, dst, 0)
	if !errors.Is(err, fspath.ErrExist) {
		t.Errorf("Copy onto existing file: %v, want ErrExist", err)
	}
	if err := fspath.Copy(ctx, fsys, src, dst, fspath.Overwrite); err != nil {
		t.Errorf("Copy(Overwrite): %v", err)
	}
}

func testCopyTree(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_copy_tree"
	tree(ctx, t, fsys, dir, "src/a.txt", "src/.b", "src/x/c.txt")
	src, dst := p(dir).Join("src"), p(dir).Join("dst")

	err := fspath.Copy(ctx, fsys, src, dst, 0)
	if !errors.Is(err, fspath.ErrInvalid) {
		t.Errorf("Copy of directory without Recurse: %v, want ErrInvalid",
			err)
	}
	if err := fspath.Copy(ctx, fsys, src, dst, fspath.Recurse); err != nil {
		t.Fatalf("Copy(%q, %q, Recurse): %v", src, dst, err)
	}

	var got []string
	search := fspath.DeepSearch(ctx, fsys, dst, fspath.Hidden)
	for name, err := range search {
		if err != nil {
			t.Fatalf("DeepSearch(%q): %v", dst, err)
		}
		rel, err := name.RelativeTo(dst)
		if err != nil {
			t.Fatalf("RelativeTo: %v", err)
		}
		got = append(got, rel.String())
	}
	slices.Sort(got)
	want := []string{
		p(".b").String(),
		p("a.txt").String(),
		p("x").String(),
		p("x/c.txt").String(),
	}
	if !slices.Equal(got, want) {
		t.Errorf("copied tree = %q, want %q", got, want)
	}
	name := dst.Join("x", "c.txt")
	if got := load(ctx, t, fsys, name.String()); got != "src/x/c.txt" {
		t.Errorf("Load(%q) = %q, want %q", name, got, "src/x/c.txt")
	}
}
