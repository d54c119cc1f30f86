package fspath

import (
	"io"
	"log/slog"
)

// Close releases fsys if it holds resources of its own, such as the
// temporary directory of an osfs.FS created with an empty root. A file
// system that is not an [io.Closer] needs no closing.
func Close(fsys FS) error {
	c, ok := fsys.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		Logger().Warn("close file system", slog.Any("error", err))
		return err
	}
	return nil
}
