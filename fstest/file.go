package fstest

import (
	"context"
	"errors"
	"testing"

	"lesiw.io/fspath"
)

func testSaveAndLoad(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_save.txt"
	save(ctx, t, fsys, name, "hello")
	cleanup(ctx, t, fsys, name)

	if got := load(ctx, t, fsys, name); got != "hello" {
		t.Errorf("Load(%q) = %q, want %q", name, got, "hello")
	}

	save(ctx, t, fsys, name, "bye")
	if got := load(ctx, t, fsys, name); got != "bye" {
		t.Errorf("Load(%q) after overwrite = %q, want %q", name, got, "bye")
	}
}

func testAppend(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_append.txt"
	save(ctx, t, fsys, name, "one")
	cleanup(ctx, t, fsys, name)

	err := fspath.Save(ctx, fsys, p(name), []byte("two"), fspath.Append)
	if err != nil {
		t.Fatalf("Save(%q, Append): %v", name, err)
	}
	if got := load(ctx, t, fsys, name); got != "onetwo" {
		t.Errorf("Load(%q) = %q, want %q", name, got, "onetwo")
	}
}

func testLoadLimit(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_limit.txt"
	save(ctx, t, fsys, name, "0123456789")
	cleanup(ctx, t, fsys, name)

	for _, tt := range []struct {
		limit int64
		want  string
	}{
		{-1, "0123456789"},
		{0, ""},
		{4, "0123"},
		{100, "0123456789"},
	} {
		data, err := fspath.Load(ctx, fsys, p(name), tt.limit, 0)
		if err != nil {
			t.Errorf("Load(%q, %d): %v", name, tt.limit, err)
			continue
		}
		if string(data) != tt.want {
			t.Errorf("Load(%q, %d) = %q, want %q",
				name, tt.limit, data, tt.want)
		}
	}
}

func testLoadMayFail(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_missing.txt"
	_, err := fspath.Load(ctx, fsys, p(name), -1, 0)
	if !errors.Is(err, fspath.ErrNotExist) {
		if errors.Is(err, fspath.ErrUnsupported) {
			t.Skip("ReadFS not supported")
		}
		t.Errorf("Load(%q) error = %v, want ErrNotExist", name, err)
	}

	data, err := fspath.Load(ctx, fsys, p(name), -1, fspath.MayFail)
	if err != nil || len(data) != 0 {
		t.Errorf("Load(%q, MayFail) = %q, %v, want empty, nil",
			name, data, err)
	}
}

func testCreate(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_create.txt"
	err := fspath.Create(ctx, fsys, p(name), 0)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("CreateFS not supported")
	}
	if err != nil {
		t.Fatalf("Create(%q): %v", name, err)
	}
	cleanup(ctx, t, fsys, name)

	if !fspath.IsFile(ctx, fsys, p(name)) {
		t.Fatalf("IsFile(%q) = false after Create", name)
	}

	save(ctx, t, fsys, name, "content")
	if err = fspath.Create(ctx, fsys, p(name), 0); err != nil {
		t.Errorf("Create(%q) on existing file: %v", name, err)
	}
	if got := load(ctx, t, fsys, name); got != "content" {
		t.Errorf("Create(%q) changed content to %q", name, got)
	}

	err = fspath.Create(ctx, fsys, p(name), fspath.Overwrite)
	if err != nil {
		t.Errorf("Create(%q, Overwrite): %v", name, err)
	}
	if got := load(ctx, t, fsys, name); got != "" {
		t.Errorf("Create(%q, Overwrite) left %q, want empty", name, got)
	}

	const dir = "test_create_dir"
	mkdir(ctx, t, fsys, dir)
	err = fspath.Create(ctx, fsys, p(dir), fspath.Overwrite)
	if !errors.Is(err, fspath.ErrExist) {
		t.Errorf("Create(%q) on directory: %v, want ErrExist", dir, err)
	}
}

func testStat(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_stat.txt"
	save(ctx, t, fsys, name, "12345")
	cleanup(ctx, t, fsys, name)

	st, err := fspath.Stat(ctx, fsys, p(name))
	if err != nil {
		t.Fatalf("Stat(%q): %v", name, err)
	}
	if !st.IsRegular() || st.IsDir() || st.IsSymlink() || st.IsSpecial() {
		t.Errorf("Stat(%q).Mode = %v, want regular file", name, st.Mode)
	}
	if st.Size != 5 {
		t.Errorf("Stat(%q).Size = %d, want 5", name, st.Size)
	}
	if st.Mtime.IsZero() {
		t.Errorf("Stat(%q).Mtime is zero", name)
	}

	const missing = "test_stat_missing"
	_, err = fspath.Stat(ctx, fsys, p(missing))
	if !errors.Is(err, fspath.ErrNotExist) {
		t.Errorf("Stat(%q) error = %v, want ErrNotExist", missing, err)
	}
	var pe *fspath.PathError
	if !errors.As(err, &pe) {
		t.Errorf("Stat(%q) error %T is not a *PathError", missing, err)
	}
	if fspath.Exists(ctx, fsys, p(missing)) {
		t.Errorf("Exists(%q) = true", missing)
	}
	if !fspath.Exists(ctx, fsys, p(name)) {
		t.Errorf("Exists(%q) = false", name)
	}

	size, err := fspath.Size(ctx, fsys, p(name), 0)
	if err != nil || size != 5 {
		t.Errorf("Size(%q) = %d, %v, want 5, nil", name, size, err)
	}
}
