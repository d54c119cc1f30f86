package fspath

import "context"

type contextKey int

const (
	dirModeKey contextKey = iota
	fileModeKey
	workDirKey
)

// WithDirMode returns a context that carries a directory mode for
// directory creation, including the parents made by [MakeDirectory] with
// [Recurse].
//
// If no directory mode is set in the context, the default mode 0755 is used.
func WithDirMode(ctx context.Context, mode Mode) context.Context {
	return context.WithValue(ctx, dirModeKey, mode)
}

// WithFileMode returns a context that carries a file mode for file creation.
// When [Create] or [Save] create files, they use this mode.
//
// If no file mode is set in the context, the default mode 0644 is used.
func WithFileMode(ctx context.Context, mode Mode) context.Context {
	return context.WithValue(ctx, fileModeKey, mode)
}

// DirMode retrieves the directory mode from context.
// Returns 0755 if no mode is set.
func DirMode(ctx context.Context) Mode {
	if mode, ok := ctx.Value(dirModeKey).(Mode); ok {
		return mode
	}
	return 0755
}

// FileMode retrieves the file mode from context.
// Returns 0644 if no mode is set.
func FileMode(ctx context.Context) Mode {
	if mode, ok := ctx.Value(fileModeKey).(Mode); ok {
		return mode
	}
	return 0644
}

// WithWorkDir returns a context that carries a working directory for
// relative path resolution. [Resolve] and [WorkingDirectory] use it in
// place of the file system's own working directory.
func WithWorkDir(ctx context.Context, dir Path) context.Context {
	return context.WithValue(ctx, workDirKey, dir)
}

// WorkDir retrieves the working directory from context.
// Returns the empty path if no working directory is set.
func WorkDir(ctx context.Context) Path {
	if dir, ok := ctx.Value(workDirKey).(Path); ok {
		return dir
	}
	return Path{}
}
