package fstest

import (
	"context"
	"errors"
	"slices"
	"testing"

	"lesiw.io/fspath"
)

// symlink makes link point at target, skipping the test if the file system
// has no symbolic links.
func symlink(
	ctx context.Context, t *testing.T, fsys fspath.FS, target, link string,
) {
	t.Helper()
	err := fspath.MakeSymlink(ctx, fsys, p(target), p(link), 0)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("SymlinkFS not supported")
	}
	if err != nil {
		t.Fatalf("MakeSymlink(%q, %q): %v", target, link, err)
	}
}

func testSymlink(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_symlink"
	tree(ctx, t, fsys, dir, "target.txt")
	link := p(dir).Join("link")
	symlink(ctx, t, fsys, "target.txt", link.String())

	if !fspath.IsSymlink(ctx, fsys, link) {
		t.Errorf("IsSymlink(%q) = false", link)
	}
	if !fspath.IsFile(ctx, fsys, link) {
		t.Errorf("IsFile(%q) = false for link to file", link)
	}
	st, err := fspath.Lstat(ctx, fsys, link)
	if err != nil || !st.IsSymlink() {
		t.Errorf("Lstat(%q) = %v, %v, want symlink", link, st.Mode, err)
	}

	target, err := fspath.ReadLink(ctx, fsys, link)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("ReadLinkFS not supported")
	}
	if err != nil {
		t.Fatalf("ReadLink(%q): %v", link, err)
	}
	if !target.Equal(p("target.txt")) {
		t.Errorf("ReadLink(%q) = %q, want %q", link, target, "target.txt")
	}
	if got := load(ctx, t, fsys, link.String()); got != "target.txt" {
		t.Errorf("Load(%q) through link = %q", link, got)
	}

	err = fspath.MakeSymlink(ctx, fsys, p("other"), link, 0)
	if !errors.Is(err, fspath.ErrExist) {
		t.Errorf("MakeSymlink over existing link: %v, want ErrExist", err)
	}
	err = fspath.MakeSymlink(ctx, fsys, p("other"), link, fspath.Overwrite)
	if err != nil {
		t.Fatalf("MakeSymlink(Overwrite): %v", err)
	}
	target, _ = fspath.ReadLink(ctx, fsys, link)
	if !target.Equal(p("other")) {
		t.Errorf("ReadLink(%q) = %q after Overwrite, want %q",
			link, target, "other")
	}
	if !fspath.Exists(ctx, fsys, link) {
		t.Errorf("Exists(%q) = false for dangling link", link)
	}
	if fspath.IsFile(ctx, fsys, link) {
		t.Errorf("IsFile(%q) = true for dangling link", link)
	}
}

func testResolveSymlink(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_resolve_symlink"
	tree(ctx, t, fsys, dir, "sub/target.txt")
	first := p(dir).Join("first")
	second := p(dir).Join("second")
	symlink(ctx, t, fsys, "sub/target.txt", second.String())
	symlink(ctx, t, fsys, "second", first.String())

	got, err := fspath.ResolveSymlink(ctx, fsys, first)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("ReadLinkFS not supported")
	}
	if err != nil {
		t.Fatalf("ResolveSymlink(%q): %v", first, err)
	}
	if want := p(dir).Join("sub", "target.txt"); !got.Equal(want) {
		t.Errorf("ResolveSymlink(%q) = %q, want %q", first, got, want)
	}

	plain := p(dir).Join("sub")
	if got, err := fspath.ResolveSymlink(ctx, fsys, plain); err != nil ||
		!got.Equal(plain) {
		t.Errorf("ResolveSymlink(%q) = %q, %v, want unchanged",
			plain, got, err)
	}

	loop := p(dir).Join("loop")
	symlink(ctx, t, fsys, "loop", loop.String())
	if _, err := fspath.ResolveSymlink(ctx, fsys, loop); err == nil {
		t.Errorf("ResolveSymlink(%q) of a loop succeeded", loop)
	}
}

func testSymlinkNotDescended(
	ctx context.Context, t *testing.T, fsys fspath.FS,
) {
	const dir = "test_symlink_tree"
	tree(ctx, t, fsys, dir, "real/inside.txt")
	symlink(ctx, t, fsys, "real", p(dir).Join("alias").String())

	var got []string
	for name, err := range fspath.DeepSearch(ctx, fsys, p(dir), 0) {
		if err != nil {
			t.Fatalf("DeepSearch(%q): %v", dir, err)
		}
		rel, _ := name.RelativeTo(p(dir))
		got = append(got, rel.String())
	}
	slices.Sort(got)
	want := []string{
		p("alias").String(),
		p("real").String(),
		p("real/inside.txt").String(),
	}
	if !slices.Equal(got, want) {
		t.Errorf("DeepSearch(%q) = %q, want %q", dir, got, want)
	}

	// Removing the tree must delete the link, not what it points to.
	if err := fspath.Remove(ctx, fsys, p(dir).Join("alias"), 0); err != nil {
		t.Fatalf("Remove(alias): %v", err)
	}
	if !fspath.Exists(ctx, fsys, p(dir).Join("real", "inside.txt")) {
		t.Errorf("removing a link removed its target")
	}
}
