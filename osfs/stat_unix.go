//go:build unix && !linux

package osfs

import (
	"os"
	"syscall"

	"lesiw.io/fspath"
)

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
	}
	if sys, ok := fi.Sys().(*syscall.Stat_t); ok {
		st.Device = uint64(sys.Dev)
		st.Inode = uint64(sys.Ino)
	}
	return st, nil
}
