package osfs

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"

	"lesiw.io/fspath"
)

const statxMask = unix.STATX_BASIC_STATS | unix.STATX_BTIME

func stat(p fspath.Path, follow bool) (fspath.Status, error) {
	flags := unix.AT_STATX_SYNC_AS_STAT
	if !follow {
		flags |= unix.AT_SYMLINK_NOFOLLOW
	}
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, osPath(p), flags, statxMask, &stx)
	if err == unix.ENOSYS {
		return statCompat(p, follow)
	} else if err != nil {
		return fspath.Status{}, err
	}
	st := fspath.Status{
		Mode:   fileMode(uint32(stx.Mode)),
		Size:   int64(stx.Size),
		Device: unix.Mkdev(stx.Dev_major, stx.Dev_minor),
		Inode:  stx.Ino,
		Atime:  statxTime(stx.Atime),
		Mtime:  statxTime(stx.Mtime),
		Ctime:  statxTime(stx.Ctime),
	}
	if stx.Mask&unix.STATX_BTIME != 0 {
		st.Birthtime = statxTime(stx.Btime)
	}
	return st, nil
}

// statCompat serves kernels older than 4.11, which lack statx.
func statCompat(p fspath.Path, follow bool) (fspath.Status, error) {
	var sys unix.Stat_t
	var err error
	if follow {
		err = unix.Stat(osPath(p), &sys)
	} else {
		err = unix.Lstat(osPath(p), &sys)
	}
	if err != nil {
		return fspath.Status{}, err
	}
	return fspath.Status{
		Mode:   fileMode(sys.Mode),
		Size:   sys.Size,
		Device: uint64(sys.Dev),
		Inode:  sys.Ino,
		Atime:  time.Unix(sys.Atim.Unix()),
		Mtime:  time.Unix(sys.Mtim.Unix()),
		Ctime:  time.Unix(sys.Ctim.Unix()),
	}, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}

func fileMode(m uint32) fspath.Mode {
	mode := fspath.Mode(m & 0777)
	switch m & unix.S_IFMT {
	case unix.S_IFBLK:
		mode |= fspath.ModeDevice
	case unix.S_IFCHR:
		mode |= fspath.ModeDevice | fspath.ModeCharDevice
	case unix.S_IFDIR:
		mode |= fspath.ModeDir
	case unix.S_IFIFO:
		mode |= fspath.ModeNamedPipe
	case unix.S_IFLNK:
		mode |= fspath.ModeSymlink
	case unix.S_IFSOCK:
		mode |= fspath.ModeSocket
	}
	if m&unix.S_ISGID != 0 {
		mode |= fs.ModeSetgid
	}
	if m&unix.S_ISUID != 0 {
		mode |= fs.ModeSetuid
	}
	if m&unix.S_ISVTX != 0 {
		mode |= fs.ModeSticky
	}
	return mode
}
