//go:build !windows

package path

// NativeUnit is the code unit of host file names.
type NativeUnit = uint8

// NativeGrammar is the path grammar of the host.
var NativeGrammar = Posix
