package fspath

import (
	"context"
	"errors"
	"log/slog"
)

// A ReadFS is a file system with the ReadBytes method.
type ReadFS interface {
	FS

	// ReadBytes returns the contents of the named file. A negative limit
	// reads the whole file; otherwise at most limit bytes are returned.
	ReadBytes(ctx context.Context, name Path, limit int64) ([]byte, error)
}

// Load reads the named file and returns its contents.
// Analogous to: [os.ReadFile], cat, head -c.
//
// A negative limit reads the whole file; otherwise at most limit bytes
// are returned. With [MayFail], any error yields empty contents and a nil
// error, for callers that treat a missing or unreadable file as empty.
//
// Requires: [ReadFS]
func Load(
	ctx context.Context, fsys FS, name Path, limit int64, flags Flag,
) ([]byte, error) {
	data, err := load(ctx, fsys, name, limit)
	if err != nil && flags&MayFail != 0 {
		Logger().Debug("load failed",
			slog.String("path", name.String()),
			slog.Any("error", err),
		)
		return []byte{}, nil
	}
	return data, err
}

func load(
	ctx context.Context, fsys FS, name Path, limit int64,
) ([]byte, error) {
	if rfs, ok := fsys.(ReadFS); ok {
		data, err := rfs.ReadBytes(ctx, name, limit)
		if !errors.Is(err, ErrUnsupported) {
			if err != nil {
				return nil, newPathError("load", name, err)
			}
			if limit >= 0 && int64(len(data)) > limit {
				data = data[:limit]
			}
			return data, nil
		}
	}
	return nil, &PathError{
		Op:   "load",
		Path: name.String(),
		Err:  ErrUnsupported,
	}
}
