//go:build windows

package utf

// Wide is the platform's native wide character unit (wchar_t).
type Wide = uint16
