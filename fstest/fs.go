// Package fstest implements support for testing implementations of the
// lesiw.io/fspath native file system capability.
package fstest

import (
	"context"
	"errors"
	"testing"

	"lesiw.io/fspath"
	"lesiw.io/fspath/path"
)

// TestFS runs a comprehensive compliance test suite on a native file
// system implementation.
//
// The file system must be writable, and relative paths must name entries
// below an otherwise empty directory: TestFS creates, modifies and deletes
// files there, and removes everything it created when done. Capabilities
// the file system does not implement are skipped.
//
// Typical usage:
//
//	func TestMyFS(t *testing.T) {
//	    fsys := createBlankFS(t)
//	    fstest.TestFS(t.Context(), t, fsys)
//	}
func TestFS(ctx context.Context, t *testing.T, fsys fspath.FS) {
	t.Helper()

	t.Run("File", func(t *testing.T) {
		t.Run("SaveAndLoad", func(t *testing.T) {
			testSaveAndLoad(ctx, t, fsys)
		})

		t.Run("Append", func(t *testing.T) {
			testAppend(ctx, t, fsys)
		})

		t.Run("LoadLimit", func(t *testing.T) {
			testLoadLimit(ctx, t, fsys)
		})

		t.Run("LoadMayFail", func(t *testing.T) {
			testLoadMayFail(ctx, t, fsys)
		})

		t.Run("Create", func(t *testing.T) {
			testCreate(ctx, t, fsys)
		})
	})

	t.Run("Stat", func(t *testing.T) {
		testStat(ctx, t, fsys)
	})

	t.Run("Mkdir", func(t *testing.T) {
		t.Run("Basic", func(t *testing.T) {
			testMkdir(ctx, t, fsys)
		})

		t.Run("Recurse", func(t *testing.T) {
			testMkdirRecurse(ctx, t, fsys)
		})

		t.Run("OverFile", func(t *testing.T) {
			testMkdirOverFile(ctx, t, fsys)
		})
	})

	t.Run("Directory", func(t *testing.T) {
		t.Run("List", func(t *testing.T) {
			testDirectory(ctx, t, fsys)
		})

		t.Run("Dots", func(t *testing.T) {
			testDirectoryDots(ctx, t, fsys)
		})

		t.Run("Hidden", func(t *testing.T) {
			testDirectoryHidden(ctx, t, fsys)
		})

		t.Run("Missing", func(t *testing.T) {
			testDirectoryMissing(ctx, t, fsys)
		})
	})

	t.Run("DeepSearch", func(t *testing.T) {
		t.Run("PreOrder", func(t *testing.T) {
			testDeepSearch(ctx, t, fsys, 0)
		})

		t.Run("BottomUp", func(t *testing.T) {
			testDeepSearch(ctx, t, fsys, fspath.BottomUp)
		})

		t.Run("EarlyBreak", func(t *testing.T) {
			testDeepSearchBreak(ctx, t, fsys)
		})
	})

	t.Run("Remove", func(t *testing.T) {
		t.Run("Basic", func(t *testing.T) {
			testRemove(ctx, t, fsys)
		})

		t.Run("Recurse", func(t *testing.T) {
			testRemoveRecurse(ctx, t, fsys)
		})
	})

	t.Run("Move", func(t *testing.T) {
		testMove(ctx, t, fsys)
	})

	t.Run("Copy", func(t *testing.T) {
		t.Run("File", func(t *testing.T) {
			testCopyFile(ctx, t, fsys)
		})

		t.Run("Tree", func(t *testing.T) {
			testCopyTree(ctx, t, fsys)
		})
	})

	t.Run("Symlink", func(t *testing.T) {
		t.Run("Create", func(t *testing.T) {
			testSymlink(ctx, t, fsys)
		})

		t.Run("Resolve", func(t *testing.T) {
			testResolveSymlink(ctx, t, fsys)
		})

		t.Run("NotDescended", func(t *testing.T) {
			testSymlinkNotDescended(ctx, t, fsys)
		})
	})

	t.Run("Chtimes", func(t *testing.T) {
		testChtimes(ctx, t, fsys)
	})

	t.Run("WorkDir", func(t *testing.T) {
		testWorkDir(ctx, t, fsys)
	})

	t.Run("Resolve", func(t *testing.T) {
		testResolve(ctx, t, fsys)
	})

	t.Run("Stress", func(t *testing.T) {
		t.Run("MixedOperations", func(t *testing.T) {
			testMixedOperations(ctx, t, fsys)
		})

		t.Run("ConcurrentReads", func(t *testing.T) {
			testConcurrentReads(ctx, t, fsys)
		})
	})
}

// p parses a test path in the host grammar.
func p(s string) fspath.Path { return path.New(s) }

// cleanup registers removal of name using t.Cleanup.
func cleanup(ctx context.Context, t *testing.T, fsys fspath.FS, name string) {
	t.Helper()
	t.Cleanup(func() {
		err := fspath.Remove(ctx, fsys, p(name), fspath.Recurse)
		if err != nil {
			t.Errorf("cleanup: Remove(%q): %v", name, err)
		}
	})
}

// mkdir creates dir and registers its removal, skipping the test if the
// file system cannot create directories.
func mkdir(ctx context.Context, t *testing.T, fsys fspath.FS, dir string) {
	t.Helper()
	err := fspath.MakeDirectory(ctx, fsys, p(dir), fspath.Recurse)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("MkdirFS not supported")
	}
	if err != nil {
		t.Fatalf("MakeDirectory(%q): %v", dir, err)
	}
	cleanup(ctx, t, fsys, dir)
}

// save writes a file, skipping the test if the file system cannot write.
func save(
	ctx context.Context, t *testing.T, fsys fspath.FS, name, data string,
) {
	t.Helper()
	err := fspath.Save(ctx, fsys, p(name), []byte(data), 0)
	if errors.Is(err, fspath.ErrUnsupported) {
		t.Skip("WriteFS not supported")
	}
	if err != nil {
		t.Fatalf("Save(%q): %v", name, err)
	}
}

// load reads a file, failing the test on error.
func load(
	ctx context.Context, t *testing.T, fsys fspath.FS, name string,
) string {
	t.Helper()
	data, err := fspath.Load(ctx, fsys, p(name), -1, 0)
	if err != nil {
		t.Fatalf("Load(%q): %v", name, err)
	}
	return string(data)
}

// tree builds dir with the given files, creating parents as needed.
func tree(
	ctx context.Context, t *testing.T, fsys fspath.FS, dir string,
	files ...string,
) {
	t.Helper()
	mkdir(ctx, t, fsys, dir)
	for _, file := range files {
		name := p(dir).Join(file)
		err := fspath.MakeDirectory(ctx, fsys, name.Dir(), fspath.Recurse)
		if err != nil {
			t.Fatalf("MakeDirectory(%q): %v", name.Dir(), err)
		}
		save(ctx, t, fsys, name.String(), file)
	}
}
