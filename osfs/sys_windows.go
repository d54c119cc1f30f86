package osfs

import (
	"context"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/windows"

	"lesiw.io/fspath"
	"lesiw.io/fspath/path"
)

var errCrossDevice error = windows.ERROR_NOT_SAME_DEVICE

// osPath returns p for calls through package os. Names holding unpaired
// surrogates do not survive this conversion; calls made directly with
// wide strings do.
func osPath(p fspath.Path) string { return p.String() }

// wide returns p as a NUL-terminated UTF-16 string.
func wide(p fspath.Path) *uint16 {
	s := append(p.Native(), 0)
	return &s[0]
}

type dirStream struct {
	h     windows.Handle
	data  windows.Win32finddata
	first bool
}

func openDir(p fspath.Path) (*dirStream, error) {
	pattern := p.Native()
	if n := len(pattern); n > 0 && pattern[n-1] != '\\' {
		pattern = append(pattern, '\\')
	}
	pattern = append(pattern, '*', 0)
	d := &dirStream{first: true}
	h, err := windows.FindFirstFile(&pattern[0], &d.data)
	if err == windows.ERROR_FILE_NOT_FOUND {
		// No entries at all, not even "." in a volume root.
		d.h = windows.InvalidHandle
		d.first = false
		return d, nil
	} else if err != nil {
		return nil, err
	}
	d.h = h
	return d, nil
}

func (d *dirStream) ReadNext(
	ctx context.Context,
) ([]fspath.NativeUnit, error) {
	if d.h == 0 {
		return nil, fspath.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.h == windows.InvalidHandle {
		return nil, io.EOF
	}
	if !d.first {
		err := windows.FindNextFile(d.h, &d.data)
		if err == windows.ERROR_NO_MORE_FILES {
			return nil, io.EOF
		} else if err != nil {
			return nil, os.NewSyscallError("findnextfile", err)
		}
	}
	d.first = false
	name := d.data.FileName[:]
	for i, u := range name {
		if u == 0 {
			name = name[:i]
			break
		}
	}
	return append([]fspath.NativeUnit(nil), name...), nil
}

func (d *dirStream) Close() error {
	if d.h == 0 {
		return fspath.ErrClosed
	}
	var err error
	if d.h != windows.InvalidHandle {
		err = windows.FindClose(d.h)
	}
	d.h = 0
	return err
}

func stat(p fspath.Path, follow bool) (fspath.Status, error) {
	var fi os.FileInfo
	var err error
	if follow {
		fi, err = os.Stat(osPath(p))
	} else {
		fi, err = os.Lstat(osPath(p))
	}
	if err != nil {
		return fspath.Status{}, err
	}
	st := fspath.Status{
		Mode:  fi.Mode(),
		Size:  fi.Size(),
		Mtime: fi.ModTime(),
		Ctime: fi.ModTime(),
	}
	if sys, ok := fi.Sys().(*syscall.Win32FileAttributeData); ok {
		st.Atime = time.Unix(0, sys.LastAccessTime.Nanoseconds())
		st.Birthtime = time.Unix(0, sys.CreationTime.Nanoseconds())
		st.Hidden = sys.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0
	}
	return st, nil
}

func setTimes(p fspath.Path, atime, mtime time.Time, follow bool) error {
	if !follow {
		fi, err := os.Lstat(osPath(p))
		if err != nil {
			return err
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fspath.ErrUnsupported
		}
	}
	return os.Chtimes(osPath(p), atime, mtime)
}

var _ fspath.AbsFS = (*FS)(nil)

// FullPath implements fspath.AbsFS with GetFullPathName, which resolves
// drive-relative names against the per-drive working directories of the
// process.
func (f *FS) FullPath(
	ctx context.Context, name fspath.Path,
) (fspath.Path, error) {
	src := wide(f.abs(ctx, name))
	buf := make([]uint16, windows.MAX_PATH)
	for {
		n, err := windows.GetFullPathName(
			src, uint32(len(buf)), &buf[0], nil,
		)
		if err != nil {
			return fspath.Path{}, pathError("fullpath", name, err)
		}
		if n < uint32(len(buf)) {
			return path.FromUnits[fspath.NativeUnit](
				path.Windows, buf[:n], 0,
			)
		}
		buf = make([]uint16, n)
	}
}
