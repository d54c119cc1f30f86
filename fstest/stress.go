package fstest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"lesiw.io/fspath"
)

// testMixedOperations runs writers, readers and listers in parallel, each
// in its own subdirectory.
func testMixedOperations(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_stress_mixed"
	const workers = 8
	mkdir(ctx, t, fsys, dir)

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- stressWorker(ctx, fsys, p(dir).Join(fmt.Sprint(i)))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}

func stressWorker(ctx context.Context, fsys fspath.FS, dir fspath.Path) error {
	err := fspath.MakeDirectory(ctx, fsys, dir, 0)
	if err != nil {
		return err
	}
	for j := range 5 {
		name := dir.Join(fmt.Sprintf("f%d.txt", j))
		data := []byte(name.String())
		if err := fspath.Save(ctx, fsys, name, data, 0); err != nil {
			return err
		}
		got, err := fspath.Load(ctx, fsys, name, -1, 0)
		if err != nil {
			return err
		}
		if string(got) != string(data) {
			return fmt.Errorf("Load(%q) = %q, want %q", name, got, data)
		}
	}
	var n int
	for _, err := range fspath.Directory(ctx, fsys, dir, 0) {
		if err != nil {
			return err
		}
		n++
	}
	if n != 5 {
		return fmt.Errorf("Directory(%q) listed %d entries, want 5", dir, n)
	}
	return fspath.Remove(ctx, fsys, dir, fspath.Recurse)
}

func testConcurrentReads(ctx context.Context, t *testing.T, fsys fspath.FS) {
	const dir = "test_stress_reads"
	tree(ctx, t, fsys, dir, "a.txt", "b/c.txt", "b/d/e.txt")

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var n int
			for _, err := range fspath.DeepSearch(ctx, fsys, p(dir), 0) {
				if err != nil {
					t.Errorf("DeepSearch(%q): %v", dir, err)
					return
				}
				n++
			}
			if n != 5 {
				t.Errorf("DeepSearch(%q) listed %d entries, want 5", dir, n)
			}
			data, err := fspath.Load(ctx, fsys, p(dir).Join("a.txt"), -1, 0)
			if err != nil || string(data) != "a.txt" {
				t.Errorf("Load(a.txt) = %q, %v", data, err)
			}
		}()
	}
	wg.Wait()
}
