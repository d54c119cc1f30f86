package path

// NativeUnit is the code unit of host file names.
type NativeUnit = uint16

// NativeGrammar is the path grammar of the host.
var NativeGrammar = Windows
