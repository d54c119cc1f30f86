package billyfs_test

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"lesiw.io/fspath"
	"lesiw.io/fspath/billyfs"
	"lesiw.io/fspath/fstest"
	"lesiw.io/fspath/path"
)

func TestFS(t *testing.T) {
	fstest.TestFS(t.Context(), t, billyfs.New(memfs.New()))
}

func TestUnwrap(t *testing.T) {
	ctx, bfs := t.Context(), memfs.New()
	fsys := billyfs.New(bfs)
	if fsys.Unwrap() != bfs {
		t.Fatalf("Unwrap() did not return the wrapped filesystem")
	}

	dir := path.New("/dir")
	if err := fspath.MakeDirectory(ctx, fsys, dir, 0); err != nil {
		t.Fatal(err)
	}
	err := fspath.Save(ctx, fsys, dir.Join("a.txt"), []byte("a"), 0)
	if err != nil {
		t.Fatal(err)
	}
	data, err := util.ReadFile(bfs, "dir/a.txt")
	if err != nil || string(data) != "a" {
		t.Errorf("billy ReadFile(dir/a.txt) = %q, %v", data, err)
	}
}

func TestWorkDirContext(t *testing.T) {
	fsys := billyfs.New(memfs.New())
	dir := path.New("/base")
	ctx := fspath.WithWorkDir(t.Context(), dir)
	if err := fspath.MakeDirectory(ctx, fsys, dir, 0); err != nil {
		t.Fatal(err)
	}
	err := fspath.Save(ctx, fsys, path.New("f.txt"), []byte("x"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !fspath.IsFile(t.Context(), fsys, dir.Join("f.txt")) {
		t.Errorf("relative Save ignored the context working directory")
	}

	_, err = fspath.WorkingDirectory(t.Context(), fsys)
	if !errors.Is(err, fspath.ErrUnsupported) {
		t.Errorf("WorkingDirectory() error = %v, want ErrUnsupported", err)
	}
}
