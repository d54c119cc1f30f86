package fstest

import (
	"context"
	"errors"
	"testing"
	"time"

	"lesiw.io/fspath"
)

func testChtimes(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const name = "test_chtimes.txt"
	save(ctx, t, fsys, name, "x")
	cleanup(ctx, t, fsys, name)

	mtime := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
	err := fspath.SetModifyTime(ctx, fsys, p(name), mtime, 0)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("ChtimesFS not supported")
	}
	if err != nil {
		t.Fatalf("SetModifyTime(%q): %v", name, err)
	}
	st, err := fspath.Stat(ctx, fsys, p(name))
	if err != nil {
		t.Fatalf("Stat(%q): %v", name, err)
	}
	if got := st.Mtime.Truncate(time.Second); !got.Equal(mtime) {
		t.Errorf("Mtime = %v, want %v", got, mtime)
	}

	atime := time.Date(2002, 3, 4, 5, 6, 7, 0, time.UTC)
	err = fspath.SetAccessTime(ctx, fsys, p(name), atime, 0)
	if err != nil {
		t.Fatalf("SetAccessTime(%q): %v", name, err)
	}
	st, err = fspath.Stat(ctx, fsys, p(name))
	if err != nil {
		t.Fatalf("Stat(%q): %v", name, err)
	}
	if got := st.Mtime.Truncate(time.Second); !got.Equal(mtime) {
		t.Errorf("Mtime = %v after SetAccessTime, want unchanged %v",
			got, mtime)
	}

	err = fspath.SetModifyTime(ctx, fsys, p("test_chtimes_none"), mtime, 0)
	if !errors.Is(err, fspath.ErrNotExist) {
		t.Errorf("SetModifyTime of missing file: %v, want ErrNotExist", err)
	}
}
