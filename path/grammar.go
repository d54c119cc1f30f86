package path

import (
	"regexp"
	"strings"
)

// A Grammar describes the path syntax of one platform: its separators,
// which prefixes form a root, and which characters a file name may hold.
// Grammars are immutable and shared.
type Grammar struct {
	name    string
	sep     byte
	alt     byte // also accepted as a separator on input
	windows bool
	leading Leading
	illegal string // not allowed outside the root
	fold    bool   // compare names ASCII case-insensitively

	// Matchers over the ASCII projection of a canonical path.
	root          *regexp.Regexp // any root, including `\` and `C:`
	strictRoot    *regexp.Regexp // roots that name a whole volume
	absolute      *regexp.Regexp
	driveAbsolute *regexp.Regexp
	driveRelative *regexp.Regexp
	drive         *regexp.Regexp // submatch 1 is the drive letter
}

// Leading selects how a POSIX grammar treats a run of leading slashes.
type Leading int

const (
	// Collapse reduces any leading run of slashes to one.
	Collapse Leading = iota
	// DoubleSlash keeps exactly two leading slashes as the root "//",
	// which POSIX leaves implementation-defined.
	DoubleSlash
	// Network treats "//host/" as a root, as Cygwin does.
	Network
)

const winPrefix = `\\?\`

var (
	posixRoot   = regexp.MustCompile(`^/`)
	doubleRoot  = regexp.MustCompile(`^//?`)
	networkRoot = regexp.MustCompile(`^(?://[^/]+/|/)`)

	winStrictRoot = regexp.MustCompile(
		`^(?:\\\\\?\\(?:UNC\\[^\\]+\\|[A-Za-z]:\\|[^\\]+\\)` +
			`|[A-Za-z]:\\|\\\\[^?\\][^\\]*\\)`,
	)
	winRoot = regexp.MustCompile(
		`^(?:\\\\\?\\(?:UNC\\[^\\]+\\|[A-Za-z]:\\|[^\\]+\\)` +
			`|[A-Za-z]:\\|\\\\[^?\\][^\\]*\\|[A-Za-z]:|\\)`,
	)
	winAbsolute = regexp.MustCompile(
		`^(?:\\\\\?\\[^\\]|[A-Za-z]:\\|\\\\[^?\\])`,
	)
	winDriveAbsolute = regexp.MustCompile(`^\\(?:[^\\]|$)`)
	winDriveRelative = regexp.MustCompile(`^[A-Za-z]:(?:[^\\]|$)`)
	winDrive         = regexp.MustCompile(`^(?:\\\\\?\\)?([A-Za-z]):`)
)

// Predefined grammars.
var (
	// Posix is the POSIX grammar with every leading slash run collapsed.
	Posix = &Grammar{
		name:       "posix",
		sep:        '/',
		leading:    Collapse,
		root:       posixRoot,
		strictRoot: posixRoot,
		absolute:   posixRoot,
	}

	// PosixDoubleSlash is Posix with a distinct "//" root.
	PosixDoubleSlash = &Grammar{
		name:       "posix-double-slash",
		sep:        '/',
		leading:    DoubleSlash,
		root:       doubleRoot,
		strictRoot: doubleRoot,
		absolute:   posixRoot,
	}

	// Cygwin is Posix with "//host/" network roots.
	Cygwin = &Grammar{
		name:       "cygwin",
		sep:        '/',
		leading:    Network,
		root:       networkRoot,
		strictRoot: networkRoot,
		absolute:   posixRoot,
	}

	// Windows is the Win32 grammar: drive letters, UNC shares, `\\?\`
	// prefixes, and drive-relative and drive-absolute forms.
	Windows = &Grammar{
		name:          "windows",
		sep:           '\\',
		alt:           '/',
		windows:       true,
		illegal:       "\"*:<>?|",
		fold:          true,
		root:          winRoot,
		strictRoot:    winStrictRoot,
		absolute:      winAbsolute,
		driveAbsolute: winDriveAbsolute,
		driveRelative: winDriveRelative,
		drive:         winDrive,
	}
)

// Name returns the grammar name.
func (g *Grammar) Name() string { return g.name }

// Separator returns the canonical separator.
func (g *Grammar) Separator() byte { return g.sep }

func (g *Grammar) String() string { return g.name }

// project maps s to bytes with one byte per unit, keeping ASCII and
// replacing everything else with 0x80, so that the grammar's matchers
// can run over any unit width and report unit offsets.
func project[U Unit](s []U) []byte {
	b := make([]byte, len(s))
	for i, u := range s {
		if u < 0x80 {
			b[i] = byte(u)
		} else {
			b[i] = 0x80
		}
	}
	return b
}

func matchLen(re *regexp.Regexp, b []byte) int {
	if re == nil {
		return 0
	}
	loc := re.FindIndex(b)
	if loc == nil {
		return 0
	}
	return loc[1]
}

func isLetter[U Unit](u U) bool {
	return (u >= 'A' && u <= 'Z') || (u >= 'a' && u <= 'z')
}

func upper[U Unit](u U) U {
	if u >= 'a' && u <= 'z' {
		return u - 'a' + 'A'
	}
	return u
}

func hasPrefix[U Unit](s []U, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := range len(prefix) {
		if s[i] != U(prefix[i]) {
			return false
		}
	}
	return true
}

func units[U Unit](s string) []U {
	out := make([]U, len(s))
	for i := range len(s) {
		out[i] = U(s[i])
	}
	return out
}

// span returns the index of the first separator at or after i in a
// slash-normalized s, or len(s).
func span[U Unit](s []U, i int, sep U) int {
	for i < len(s) && s[i] != sep {
		i++
	}
	return i
}

func skipSeps[U Unit](s []U, i int, sep U) int {
	for i < len(s) && s[i] == sep {
		i++
	}
	return i
}

// rawRoot reads the root of a slash-normalized path that is not yet
// canonical. It returns the canonical root and the number of units of s
// it stands for, including any separators that follow it.
func rawRoot[U Unit](g *Grammar, s []U) ([]U, int) {
	sep := U(g.sep)
	if g.windows {
		return rawWindowsRoot(s, sep)
	}
	k := skipSeps(s, 0, sep)
	switch {
	case k == 0:
		return nil, 0
	case k == 2 && g.leading == DoubleSlash:
		return units[U]("//"), 2
	case k == 2 && g.leading == Network && len(s) > 2:
		end := span(s, 2, sep)
		root := append(units[U]("//"), s[2:end]...)
		return append(root, sep), skipSeps(s, end, sep)
	}
	return []U{sep}, k
}

func rawWindowsRoot[U Unit](s []U, sep U) ([]U, int) {
	if hasPrefix(s, winPrefix) && len(s) > len(winPrefix) &&
		s[len(winPrefix)] != sep {
		i := len(winPrefix)
		root := units[U](winPrefix)
		switch {
		case hasPrefixFold(s[i:], `UNC\`) && len(s) > i+4 && s[i+4] != sep:
			root = append(root, units[U](`UNC\`)...)
			i += 4
		case len(s) > i+1 && isLetter(s[i]) && s[i+1] == ':':
			root = append(root, upper(s[i]), ':', sep)
			return root, skipSeps(s, i+2, sep)
		}
		end := span(s, i, sep)
		root = append(root, s[i:end]...)
		return append(root, sep), skipSeps(s, end, sep)
	}
	k := skipSeps(s, 0, sep)
	switch {
	case k >= 2 && len(s) > k && s[k] != '?':
		end := span(s, k, sep)
		root := append([]U{sep, sep}, s[k:end]...)
		return append(root, sep), skipSeps(s, end, sep)
	case k > 0:
		return []U{sep}, k
	case len(s) >= 2 && isLetter(s[0]) && s[1] == ':':
		if len(s) > 2 && s[2] == sep {
			return []U{upper(s[0]), ':', sep}, skipSeps(s, 2, sep)
		}
		return []U{upper(s[0]), ':'}, 2
	}
	return nil, 0
}

func hasPrefixFold[U Unit](s []U, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := range len(prefix) {
		if upper(s[i]) != upper(U(prefix[i])) {
			return false
		}
	}
	return true
}

// canonicalize returns the canonical form of s: alternate separators
// replaced, the root normalized, "." segments and empty segments removed,
// and no trailing separator beyond the root. ".." is left alone.
func canonicalize[U Unit](g *Grammar, s []U) []U {
	sep := U(g.sep)
	if g.alt != 0 {
		norm := make([]U, len(s))
		for i, u := range s {
			if u == U(g.alt) {
				u = sep
			}
			norm[i] = u
		}
		s = norm
	}
	root, i := rawRoot(g, s)
	out := make([]U, 0, len(s)+1)
	out = append(out, root...)
	first := true
	for i < len(s) {
		i = skipSeps(s, i, sep)
		j := span(s, i, sep)
		seg := s[i:j]
		i = j
		if len(seg) == 0 || (len(seg) == 1 && seg[0] == '.') {
			continue
		}
		if !first {
			out = append(out, sep)
		}
		out = append(out, seg...)
		first = false
	}
	return out
}

// legal reports whether the canonical path s is a legal file name.
func legal[U Unit](g *Grammar, s []U, form Form) bool {
	for _, u := range s {
		if u == 0 {
			return false
		}
	}
	if !g.windows {
		return true
	}
	if form == DriveAbsolute {
		return false
	}
	for _, u := range s[rootLen(g, s):] {
		if u < 0x80 && strings.IndexByte(g.illegal, byte(u)) >= 0 {
			return false
		}
	}
	return true
}

func rootLen[U Unit](g *Grammar, s []U) int {
	return matchLen(g.root, project(s))
}

func classify[U Unit](g *Grammar, s []U) Form {
	if len(s) == 0 {
		return Empty
	}
	b := project(s)
	switch {
	case matchLen(g.driveAbsolute, b) > 0:
		return DriveAbsolute
	case matchLen(g.driveRelative, b) > 0:
		return DriveRelative
	case matchLen(g.absolute, b) > 0:
		return Absolute
	}
	return Relative
}

// driveLetter returns the upper-case drive letter of s, or 0.
func driveLetter[U Unit](g *Grammar, s []U) U {
	if g.drive == nil {
		return 0
	}
	m := g.drive.FindSubmatchIndex(project(s))
	if m == nil {
		return 0
	}
	return upper(s[m[2]])
}
