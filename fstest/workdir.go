package fstest

import (
	"context"
	"errors"
	"testing"

	"lesiw.io/fspath"
)

func testWorkDir(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_workdir"
	mkdir(ctx, t, fsys, dir)

	abs, err := fspath.Resolve(ctx, fsys, p(dir))
	if err != nil {
		t.Skipf("Resolve(%q): %v", dir, err)
	}
	wctx := fspath.WithWorkDir(ctx, abs)
	wd, err := fspath.WorkingDirectory(wctx, fsys)
	if err != nil || !wd.Equal(abs) {
		t.Errorf("WorkingDirectory() = %q, %v, want %q", wd, err, abs)
	}

	const name = "inner.txt"
	save(wctx, t, fsys, name, "inner")
	if got := load(ctx, t, fsys, p(dir).Join(name).String()); got != "inner" {
		t.Errorf("Save relative to WithWorkDir wrote %q", got)
	}
	if fspath.Exists(ctx, fsys, p(name)) {
		t.Errorf("Save relative to WithWorkDir escaped to %q", name)
	}
	got, err := fspath.Resolve(wctx, fsys, p(name))
	if err != nil {
		t.Fatalf("Resolve(%q): %v", name, err)
	}
	if want := abs.Join(name); !got.Equal(want) {
		t.Errorf("Resolve(%q) = %q, want %q", name, got, want)
	}
}

func testResolve(ctx context.Context, t *testing.T, fsys fspath.FS) {
	wd, err := fspath.Resolve(ctx, fsys, fspath.Path{})
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("WorkDirFS not supported")
	}
	if err != nil {
		t.Fatalf("Resolve(\"\"): %v", err)
	}
	if !wd.IsAbsolute() {
		t.Errorf("Resolve(\"\") = %q, want absolute path", wd)
	}

	const name = "test_resolve/leaf.txt"
	got, err := fspath.Resolve(ctx, fsys, p(name))
	if err != nil {
		t.Fatalf("Resolve(%q): %v", name, err)
	}
	if !got.IsAbsolute() {
		t.Errorf("Resolve(%q) = %q, want absolute path", name, got)
	}
	if want := wd.Join(name); !got.Equal(want) {
		t.Errorf("Resolve(%q) = %q, want %q", name, got, want)
	}
	if !got.Leaf().Equal(p("leaf.txt")) {
		t.Errorf("Resolve(%q) lost its leaf: %q", name, got)
	}

	if again, err := fspath.Resolve(ctx, fsys, got); err != nil ||
		!again.Equal(got) {
		t.Errorf("Resolve(%q) = %q, %v, want unchanged", got, again, err)
	}
}
