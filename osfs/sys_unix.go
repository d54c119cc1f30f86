//go:build unix

package osfs

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"lesiw.io/fspath"
)

var errCrossDevice error = unix.EXDEV

// osPath returns p as the system sees it. Strings hold arbitrary bytes, so
// no name is altered.
func osPath(p fspath.Path) string { return string(p.Native()) }

// direntBufSize is the size of the buffer getdents fills.
const direntBufSize = 8192

type dirStream struct {
	fd    int
	buf   []byte
	names []string
}

func openDir(p fspath.Path) (*dirStream, error) {
	flags := unix.O_RDONLY | unix.O_DIRECTORY | unix.O_CLOEXEC
	fd, err := unix.Open(osPath(p), flags, 0)
	for err == unix.EINTR {
		fd, err = unix.Open(osPath(p), flags, 0)
	}
	if err != nil {
		return nil, err
	}
	return &dirStream{fd: fd, buf: make([]byte, direntBufSize)}, nil
}

func (d *dirStream) ReadNext(
	ctx context.Context,
) ([]fspath.NativeUnit, error) {
	if d.fd < 0 {
		return nil, fspath.ErrClosed
	}
	for len(d.names) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := unix.ReadDirent(d.fd, d.buf)
		if err == unix.EINTR {
			continue
		} else if err != nil {
			return nil, os.NewSyscallError("readdirent", err)
		}
		if n <= 0 {
			return nil, io.EOF
		}
		_, _, d.names = unix.ParseDirent(d.buf[:n], -1, d.names[:0])
	}
	name := d.names[0]
	d.names = d.names[1:]
	return []fspath.NativeUnit(name), nil
}

func (d *dirStream) Close() error {
	if d.fd < 0 {
		return fspath.ErrClosed
	}
	err := unix.Close(d.fd)
	d.fd = -1
	d.names = nil
	return err
}

func setTimes(p fspath.Path, atime, mtime time.Time, follow bool) error {
	ts := []unix.Timespec{timespec(atime), timespec(mtime)}
	var flags int
	if !follow {
		flags = unix.AT_SYMLINK_NOFOLLOW
	}
	return unix.UtimesNanoAt(unix.AT_FDCWD, osPath(p), ts, flags)
}

func timespec(t time.Time) unix.Timespec {
	if t.IsZero() {
		return unix.Timespec{Nsec: unix.UTIME_OMIT}
	}
	return unix.NsecToTimespec(t.UnixNano())
}
