package fspath

import (
	"context"
	"errors"
)

// A CreateFS is a file system with the CreateFile method.
//
// If not implemented, Create falls back to [WriteFS] with empty content.
type CreateFS interface {
	FS

	// CreateFile creates an empty regular file with the given mode.
	// It fails with ErrExist if name already exists.
	CreateFile(ctx context.Context, name Path, mode Mode) error
}

// Create makes name an empty regular file if nothing exists there.
// Analogous to: touch, [os.Create].
//
// An existing file is left untouched unless flags contain [Overwrite], in
// which case a regular file is truncated to zero length. An existing
// directory is never replaced.
//
// The file mode is obtained from [FileMode](ctx). If not set in the
// context, the default mode 0644 is used.
//
// Requires: [CreateFS] || [WriteFS]
func Create(ctx context.Context, fsys FS, name Path, flags Flag) error {
	st, err := fsys.Stat(ctx, name, true)
	if err == nil {
		if st.IsDir() {
			return &PathError{
				Op:   "create",
				Path: name.String(),
				Err:  ErrExist,
			}
		}
		if flags&Overwrite == 0 {
			return nil
		}
		return truncate(ctx, fsys, name)
	}
	if cfs, ok := fsys.(CreateFS); ok {
		err := cfs.CreateFile(ctx, name, FileMode(ctx))
		if !errors.Is(err, ErrUnsupported) {
			return newPathError("create", name, err)
		}
	}
	return truncate(ctx, fsys, name)
}

func truncate(ctx context.Context, fsys FS, name Path) error {
	if wfs, ok := fsys.(WriteFS); ok {
		err := wfs.WriteBytes(ctx, name, nil, false)
		if !errors.Is(err, ErrUnsupported) {
			return newPathError("create", name, err)
		}
	}
	return &PathError{
		Op:   "create",
		Path: name.String(),
		Err:  ErrUnsupported,
	}
}
