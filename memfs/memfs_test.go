package memfs_test

import (
	"errors"
	"testing"

	"lesiw.io/fspath"
	"lesiw.io/fspath/fstest"
	"lesiw.io/fspath/memfs"
	"lesiw.io/fspath/path"
)

func TestFS(t *testing.T) {
	fstest.TestFS(t.Context(), t, memfs.New())
}

func TestNonUnicodeName(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	bad := path.New("bad\xff.txt")
	if bad.IsUnicode() {
		t.Skip("native paths cannot hold malformed bytes")
	}
	if err := fspath.Save(ctx, fsys, bad, []byte("x"), 0); err != nil {
		t.Fatalf("Save(%q): %v", bad, err)
	}

	var found bool
	for name, err := range fspath.Directory(ctx, fsys, path.New("/"), 0) {
		if err != nil {
			t.Fatalf("Directory(/): %v", err)
		}
		if name.Leaf().Equal(bad) {
			found = true
		}
	}
	if !found {
		t.Errorf("Directory(/) did not list %q", bad)
	}
	for name, err := range fspath.Directory(
		ctx, fsys, path.New("/"), fspath.Unicode,
	) {
		if err != nil {
			t.Fatalf("Directory(/, Unicode): %v", err)
		}
		if !name.IsUnicode() {
			t.Errorf("Directory(/, Unicode) listed %q", name)
		}
	}
}

func TestSymlinkLoop(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	a, b := path.New("a"), path.New("b")
	if err := fspath.MakeSymlink(ctx, fsys, b, a, 0); err != nil {
		t.Fatal(err)
	}
	if err := fspath.MakeSymlink(ctx, fsys, a, b, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := fspath.Stat(ctx, fsys, a); err == nil {
		t.Errorf("Stat(%q) of a link loop succeeded", a)
	}
	if _, err := fspath.Lstat(ctx, fsys, a); err != nil {
		t.Errorf("Lstat(%q): %v", a, err)
	}
	if fspath.IsDir(ctx, fsys, a) || fspath.IsFile(ctx, fsys, a) {
		t.Errorf("link loop %q classified as a directory or file", a)
	}
}

func TestChdir(t *testing.T) {
	ctx, fsys := t.Context(), memfs.New()
	dir := path.New("work")
	if err := fspath.MakeDirectory(ctx, fsys, dir, 0); err != nil {
		t.Fatal(err)
	}
	if err := fspath.ChangeDirectory(ctx, fsys, dir); err != nil {
		t.Fatalf("ChangeDirectory(%q): %v", dir, err)
	}
	err := fspath.Save(ctx, fsys, path.New("f.txt"), []byte("x"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !fspath.IsFile(ctx, fsys, path.New("/work/f.txt")) {
		t.Errorf("relative Save did not use the working directory")
	}
	err = fspath.ChangeDirectory(ctx, fsys, path.New("/work/f.txt"))
	if !errors.Is(err, fspath.ErrNotDir) {
		t.Errorf("ChangeDirectory to a file: %v, want ErrNotDir", err)
	}
}

func TestOptions(t *testing.T) {
	if path.NativeGrammar == path.Windows {
		t.Skip("home directories are not expanded on Windows")
	}
	ctx := t.Context()
	home := path.New("/home/alice")
	fsys := memfs.New(memfs.WithHome("alice", home), memfs.WithDevice(7))

	got, err := fspath.Resolve(ctx, fsys, path.New("~alice/notes"))
	if err != nil {
		t.Fatalf("Resolve(~alice/notes): %v", err)
	}
	if want := home.Join("notes"); !got.Equal(want) {
		t.Errorf("Resolve(~alice/notes) = %q, want %q", got, want)
	}
	_, err = fspath.Resolve(ctx, fsys, path.New("~bob"))
	if !errors.Is(err, fspath.ErrNotExist) {
		t.Errorf("Resolve(~bob): %v, want ErrNotExist", err)
	}

	dev, _, err := fspath.ID(ctx, fsys, path.New("/"))
	if err != nil || dev != 7 {
		t.Errorf("ID(/) device = %d, %v, want 7", dev, err)
	}
}
