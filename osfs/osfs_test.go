package osfs

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"lesiw.io/defers"

	"lesiw.io/fspath"
	"lesiw.io/fspath/fstest"
	"lesiw.io/fspath/path"
)

var testFS *FS

func TestMain(m *testing.M) {
	fsys, err := New("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create temp FS: %v\n", err)
		defers.Exit(1)
	}
	defers.Add(func() { _ = fspath.Close(fsys) })
	testFS = fsys

	defers.Exit(m.Run())
}

func TestFS(t *testing.T) {
	fstest.TestFS(t.Context(), t, testFS)
}

func TestPrivateWorkDir(t *testing.T) {
	ctx := t.Context()
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	fsys, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = fspath.Close(fsys) })

	dir := path.New("sub")
	if err = fspath.MakeDirectory(ctx, fsys, dir, 0); err != nil {
		t.Fatal(err)
	}
	if err = fspath.ChangeDirectory(ctx, fsys, dir); err != nil {
		t.Fatalf("ChangeDirectory(%q): %v", dir, err)
	}
	wd, err := fspath.WorkingDirectory(ctx, fsys)
	if err != nil {
		t.Fatal(err)
	}
	if want := fsys.Root().Join("sub"); !wd.Equal(want) {
		t.Errorf("WorkingDirectory() = %q, want %q", wd, want)
	}
	after, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("process working directory changed to %q", after)
	}

	err = fspath.Save(ctx, fsys, path.New("f.txt"), []byte("x"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !fspath.IsFile(ctx, fsys, wd.Join("f.txt")) {
		t.Errorf("relative Save did not use the working directory")
	}
}

func TestCloseRemovesTemp(t *testing.T) {
	fsys, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	root := osPath(fsys.Root())
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("temp root missing: %v", err)
	}
	if err := fspath.Close(fsys); err != nil {
		t.Fatalf("Close(): %v", err)
	}
	if _, err := os.Stat(root); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp root %q survived Close: %v", root, err)
	}
}

func TestErrorMapping(t *testing.T) {
	ctx := t.Context()
	name := path.New("plain.txt")
	if err := fspath.Save(ctx, testFS, name, nil, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = fspath.Remove(ctx, testFS, name, 0) })

	_, err := fspath.Stat(ctx, testFS, name.Join("child"))
	if !errors.Is(err, fspath.ErrNotDir) &&
		!errors.Is(err, fspath.ErrNotExist) {
		t.Errorf("Stat below a file: %v, want ErrNotDir", err)
	}
	var pe *fspath.PathError
	if !errors.As(err, &pe) {
		t.Errorf("Stat error %T is not a *PathError", err)
	}

	wrapped := fmt.Errorf("rename: %w", errCrossDevice)
	if !crossDevice(wrapped) {
		t.Errorf("crossDevice(%v) = false", wrapped)
	}
	if crossDevice(os.ErrNotExist) {
		t.Errorf("crossDevice(ErrNotExist) = true")
	}
}
