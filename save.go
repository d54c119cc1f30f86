package fspath

import (
	"context"
	"errors"
)

// A WriteFS is a file system with the WriteBytes method.
type WriteFS interface {
	FS

	// WriteBytes writes data to the named file, creating it if necessary.
	// If append is false the file is truncated first. The mode of a new
	// file is taken from [FileMode](ctx).
	WriteBytes(ctx context.Context, name Path, data []byte, append bool) error
}

// Save writes data to the named file, creating it if necessary and
// replacing its contents unless flags contain [Append].
// Analogous to: [os.WriteFile], echo > file, echo >> file.
//
// The file mode is obtained from [FileMode](ctx). If not set in the
// context, the default mode 0644 is used. A directory at name is never
// replaced.
//
// Requires: [WriteFS]
func Save(
	ctx context.Context, fsys FS, name Path, data []byte, flags Flag,
) error {
	if IsDir(ctx, fsys, name) {
		return &PathError{Op: "save", Path: name.String(), Err: ErrExist}
	}
	if wfs, ok := fsys.(WriteFS); ok {
		err := wfs.WriteBytes(ctx, name, data, flags&Append != 0)
		if !errors.Is(err, ErrUnsupported) {
			return newPathError("save", name, err)
		}
	}
	return &PathError{
		Op:   "save",
		Path: name.String(),
		Err:  ErrUnsupported,
	}
}
