// Package path implements lexical manipulation of filesystem paths under a
// chosen Grammar, in a chosen code unit width.
//
// A Path holds its name in canonical form: alternate separators replaced,
// the root normalized, redundant separators and "." segments removed, and
// no trailing separator beyond the root. ".." segments are kept; Clean
// removes them lexically.
//
// All operations are purely lexical. They do not access the filesystem or
// account for symbolic links, mount points, or other filesystem-specific
// behavior.
package path

import (
	"io/fs"
	"slices"

	"lesiw.io/fspath/utf"
)

// Unit is a code unit type: uint8 for UTF-8, uint16 for UTF-16, or uint32
// for UTF-32.
type Unit = utf.Unit

// Native is a path in the host grammar and unit width.
type Native = Path[NativeUnit]

// ErrInvalid is returned for paths and arguments an operation cannot accept.
var ErrInvalid = fs.ErrInvalid

// Form is the lexical kind of a path. Every path has exactly one form.
type Form int

const (
	// Empty is the empty path.
	Empty Form = iota
	// Absolute paths name the same file from any working directory.
	Absolute
	// DriveAbsolute paths start at the root of the current drive,
	// as `\foo` does on Windows.
	DriveAbsolute
	// DriveRelative paths are relative to the working directory of a
	// named drive, as `C:foo` is on Windows.
	DriveRelative
	// Relative paths are relative to the working directory.
	Relative
)

func (f Form) String() string {
	switch f {
	case Empty:
		return "empty"
	case Absolute:
		return "absolute"
	case DriveAbsolute:
		return "drive-absolute"
	case DriveRelative:
		return "drive-relative"
	case Relative:
		return "relative"
	}
	return "unknown"
}

// Flag modifies path construction.
type Flag uint

const (
	// LegalName rejects names the grammar does not allow.
	LegalName Flag = 1 << iota
	// Strict rejects malformed encoding instead of replacing it.
	Strict
)

// A Path is an immutable, canonical path name. The zero value is the empty
// path in the native grammar.
type Path[U Unit] struct {
	g *Grammar
	s []U
}

// New returns the native path for s. Bytes that do not form valid UTF-8
// are kept where the native unit is a byte and replaced otherwise.
func New(s string) Native {
	return Make[NativeUnit](NativeGrammar, s)
}

// Make returns the path for s in grammar g. It never fails.
func Make[U Unit](g *Grammar, s string) Path[U] {
	p, _ := FromUnits[U](g, []byte(s), 0)
	return p
}

// Parse returns the path for s in grammar g, applying flags.
func Parse[U Unit](g *Grammar, s string, flags Flag) (Path[U], error) {
	return FromUnits[U](g, []byte(s), flags)
}

// FromUnits returns the path for src in grammar g.
//
// Input in the path's own unit width is taken as is unless flags contain
// Strict. Input in another width is recoded, replacing malformed
// sequences, or rejecting them under Strict.
func FromUnits[U, V Unit](g *Grammar, src []V, flags Flag) (Path[U], error) {
	if g == nil {
		g = NativeGrammar
	}
	policy := utf.Replace
	if flags&Strict != 0 {
		policy = utf.Strict
	}
	var s []U
	var err error
	if sameWidth[U, V]() && policy != utf.Strict {
		// Unit sets are disjoint by size, so V and U are the same type.
		s = slices.Clone(any(src).([]U))
	} else {
		s, err = utf.Recode[V, U](src, policy)
	}
	if err != nil {
		return Path[U]{g: g}, &fs.PathError{
			Op:   "parse",
			Path: display(src),
			Err:  err,
		}
	}
	p := Path[U]{g: g, s: canonicalize(g, s)}
	if flags&LegalName != 0 && !p.IsLegal() {
		return Path[U]{g: g}, &fs.PathError{
			Op:   "parse",
			Path: p.String(),
			Err:  ErrInvalid,
		}
	}
	return p, nil
}

func sameWidth[U, V Unit]() bool {
	var u U
	var v V
	switch any(u).(type) {
	case uint8:
		_, ok := any(v).(uint8)
		return ok
	case uint16:
		_, ok := any(v).(uint16)
		return ok
	}
	_, ok := any(v).(uint32)
	return ok
}

func display[U Unit](s []U) string {
	out, _ := utf.ToString(s, utf.Replace)
	return out
}

func (p Path[U]) grammar() *Grammar {
	if p.g == nil {
		return NativeGrammar
	}
	return p.g
}

// with returns a path sharing p's grammar. s must already be canonical;
// its capacity is clipped so appends never reach p's storage.
func (p Path[U]) with(s []U) Path[U] {
	return Path[U]{g: p.grammar(), s: slices.Clip(s)}
}

// Grammar returns the grammar of p.
func (p Path[U]) Grammar() *Grammar { return p.grammar() }

// Form returns the lexical form of p.
func (p Path[U]) Form() Form { return classify(p.grammar(), p.s) }

// Empty reports whether p is the empty path.
func (p Path[U]) Empty() bool { return len(p.s) == 0 }

// Len returns the number of code units in p.
func (p Path[U]) Len() int { return len(p.s) }

func (p Path[U]) IsAbsolute() bool      { return p.Form() == Absolute }
func (p Path[U]) IsRelative() bool      { return p.Form() == Relative }
func (p Path[U]) IsDriveAbsolute() bool { return p.Form() == DriveAbsolute }
func (p Path[U]) IsDriveRelative() bool { return p.Form() == DriveRelative }

// HasRoot reports whether p starts with any root, including the partial
// roots of drive-absolute and drive-relative paths.
func (p Path[U]) HasRoot() bool { return p.rootLen() > 0 }

// IsRoot reports whether p is nothing but a volume root such as "/", `C:\`,
// or `\\server\`.
func (p Path[U]) IsRoot() bool {
	return len(p.s) > 0 &&
		matchLen(p.grammar().strictRoot, project(p.s)) == len(p.s)
}

// IsLeaf reports whether p is a single name with no root or separator.
func (p Path[U]) IsLeaf() bool {
	return len(p.s) > 0 && p.rootLen() == 0 &&
		!slices.Contains(p.s, U(p.grammar().sep))
}

// IsLegal reports whether p is a legal file name in its grammar. Every
// grammar rejects NUL. Windows also rejects `"*:<>?|` outside the root,
// and drive-absolute paths.
func (p Path[U]) IsLegal() bool {
	return legal(p.grammar(), p.s, p.Form())
}

// IsUnicode reports whether p is well-formed in its encoding.
func (p Path[U]) IsUnicode() bool { return utf.Valid(p.s) }

func (p Path[U]) rootLen() int { return rootLen(p.grammar(), p.s) }

// Root returns the root of p, or the empty path.
func (p Path[U]) Root() Path[U] { return p.with(p.s[:p.rootLen()]) }

// SplitRoot splits p into its root and the rest.
func (p Path[U]) SplitRoot() (root, tail Path[U]) {
	r := p.rootLen()
	return p.with(p.s[:r]), p.with(p.s[r:])
}

// SplitPath splits p immediately after its last separator outside the root.
// The directory part carries no trailing separator unless it is a root.
func (p Path[U]) SplitPath() (dir, leaf Path[U]) {
	r := p.rootLen()
	i := p.lastSep(r)
	if i < 0 {
		return p.with(p.s[:r]), p.with(p.s[r:])
	}
	return p.with(p.s[:i]), p.with(p.s[i+1:])
}

func (p Path[U]) lastSep(from int) int {
	sep := U(p.grammar().sep)
	for i := len(p.s) - 1; i >= from; i-- {
		if p.s[i] == sep {
			return i
		}
	}
	return -1
}

// Dir returns all but the last element of p.
func (p Path[U]) Dir() Path[U] {
	dir, _ := p.SplitPath()
	return dir
}

// Leaf returns the last element of p.
func (p Path[U]) Leaf() Path[U] {
	_, leaf := p.SplitPath()
	return leaf
}

// leafStart returns the offset of the leaf and of its extension.
func (p Path[U]) leafStart() (leaf, ext int) {
	r := p.rootLen()
	leaf = r
	if i := p.lastSep(r); i >= 0 {
		leaf = i + 1
	}
	name := p.s[leaf:]
	if len(name) == 2 && name[0] == '.' && name[1] == '.' {
		return leaf, len(p.s)
	}
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			return leaf, leaf + i
		}
	}
	return leaf, len(p.s)
}

// SplitLeaf splits the leaf of p at its last dot. A dot that starts the
// leaf does not begin an extension, so ".profile" has no extension.
func (p Path[U]) SplitLeaf() (stem, ext string) {
	leaf, dot := p.leafStart()
	return display(p.s[leaf:dot]), display(p.s[dot:])
}

// Stem returns the leaf of p without its extension.
func (p Path[U]) Stem() string {
	stem, _ := p.SplitLeaf()
	return stem
}

// Ext returns the extension of p, including its dot.
func (p Path[U]) Ext() string {
	_, ext := p.SplitLeaf()
	return ext
}

// segments returns the names after the root of p.
func (p Path[U]) segments() [][]U {
	var out [][]U
	sep := U(p.grammar().sep)
	for i := p.rootLen(); i < len(p.s); {
		j := span(p.s, i, sep)
		out = append(out, p.s[i:j:j])
		i = j + 1
	}
	return out
}

// BreakdownPaths splits p into its root, if any, followed by each name.
// JoinAll reassembles them into p.
func (p Path[U]) BreakdownPaths() []Path[U] {
	var out []Path[U]
	if r := p.rootLen(); r > 0 {
		out = append(out, p.with(p.s[:r]))
	}
	for _, seg := range p.segments() {
		out = append(out, p.with(seg))
	}
	return out
}

// Breakdown is BreakdownPaths in display form.
func (p Path[U]) Breakdown() []string {
	parts := p.BreakdownPaths()
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = part.String()
	}
	return out
}

// Join returns p joined with each element in turn. Elements are parsed in
// p's grammar.
func (p Path[U]) Join(elem ...string) Path[U] {
	for _, e := range elem {
		p = Join(p, Make[U](p.grammar(), e))
	}
	return p
}

// Join joins two paths.
//
// An empty operand yields the other. An absolute b replaces a. On Windows
// a drive-absolute b keeps the drive or share of a, and a drive-relative b
// on the same drive as a is appended to a; on a different drive it
// replaces a. Otherwise b is appended to a with one separator.
func Join[U Unit](a, b Path[U]) Path[U] {
	g := a.grammar()
	if b.grammar() != g {
		b = Path[U]{g: g, s: canonicalize(g, b.s)}
	}
	switch {
	case a.Empty():
		return b
	case b.Empty():
		return a
	case b.IsAbsolute():
		return b
	case b.IsDriveAbsolute():
		root := a.Root()
		if a.IsDriveAbsolute() || root.Empty() {
			return b
		}
		s := append(slices.Clone(root.s), b.s...)
		return a.with(canonicalize(g, s))
	case b.IsDriveRelative():
		d := driveLetter(g, a.s)
		if d == 0 || d != driveLetter(g, b.s) {
			return b
		}
		_, tail := b.SplitRoot()
		if tail.Empty() {
			return a
		}
		return concat(a, tail.s)
	}
	return concat(a, b.s)
}

func concat[U Unit](a Path[U], tail []U) Path[U] {
	g := a.grammar()
	s := make([]U, 0, len(a.s)+1+len(tail))
	s = append(s, a.s...)
	if len(a.s) > a.rootLen() {
		s = append(s, U(g.sep))
	}
	s = append(s, tail...)
	return a.with(canonicalize(g, s))
}

// JoinAll joins parts from left to right.
func JoinAll[U Unit](parts ...Path[U]) Path[U] {
	var out Path[U]
	for i, part := range parts {
		if i == 0 {
			out = part
			continue
		}
		out = Join(out, part)
	}
	return out
}

func (p Path[U]) equalUnits(a, b []U) bool {
	if !p.grammar().fold {
		return slices.Equal(a, b)
	}
	return slices.EqualFunc(a, b, func(x, y U) bool {
		return upper(x) == upper(y)
	})
}

// Common returns the longest common leading path of a and b, comparing
// whole names. Paths with different roots have nothing in common.
func Common[U Unit](a, b Path[U]) Path[U] {
	ra, rb := a.rootLen(), b.rootLen()
	if a.Empty() || b.Empty() || !a.equalUnits(a.s[:ra], b.s[:rb]) {
		return a.with(nil)
	}
	as, bs := a.segments(), b.segments()
	n := 0
	for n < len(as) && n < len(bs) && a.equalUnits(as[n], bs[n]) {
		n++
	}
	end := ra
	if n > 0 {
		end += n - 1
		for _, seg := range as[:n] {
			end += len(seg)
		}
	}
	return a.with(a.s[:end])
}

// RelativeTo returns p expressed relative to base, so that
// Join(base, rel).Clean() equals p.Clean().
//
// Both paths must be non-empty and of the same form. If their roots
// differ, p is returned unchanged. Identical paths give the empty path.
// It is an error for base to hold ".." beyond the names it shares with p.
func (p Path[U]) RelativeTo(base Path[U]) (Path[U], error) {
	if p.Empty() || base.Empty() || p.Form() != base.Form() {
		return p.with(nil), p.relErr(base)
	}
	if b := base.grammar(); b != p.grammar() {
		base = Path[U]{g: p.grammar(), s: canonicalize(p.grammar(), base.s)}
	}
	if !p.equalUnits(p.s[:p.rootLen()], base.s[:base.rootLen()]) {
		return p, nil
	}
	ps, bs := p.segments(), base.segments()
	k := 0
	for k < len(ps) && k < len(bs) && p.equalUnits(ps[k], bs[k]) {
		k++
	}
	sep := U(p.grammar().sep)
	var s []U
	for _, seg := range bs[k:] {
		if isDotDot(seg) {
			return p.with(nil), p.relErr(base)
		}
		if len(s) > 0 {
			s = append(s, sep)
		}
		s = append(s, '.', '.')
	}
	for _, seg := range ps[k:] {
		if len(s) > 0 {
			s = append(s, sep)
		}
		s = append(s, seg...)
	}
	return p.with(s), nil
}

func (p Path[U]) relErr(base Path[U]) error {
	return &fs.PathError{
		Op:   "relative",
		Path: p.String() + " " + base.String(),
		Err:  ErrInvalid,
	}
}

func isDotDot[U Unit](s []U) bool {
	return len(s) == 2 && s[0] == '.' && s[1] == '.'
}

// ChangeExt replaces the extension of p's leaf with ext. A missing leading
// dot is supplied, and an empty ext removes the extension. It is an error
// for p to be empty or a bare root.
func (p Path[U]) ChangeExt(ext string) (Path[U], error) {
	if p.Empty() || p.rootLen() == len(p.s) {
		return p, &fs.PathError{
			Op:   "changeext",
			Path: p.String(),
			Err:  ErrInvalid,
		}
	}
	_, dot := p.leafStart()
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	e, _ := utf.FromString[U](ext, utf.Replace)
	s := append(slices.Clone(p.s[:dot]), e...)
	return p.with(canonicalize(p.grammar(), s)), nil
}

// Clean returns p with ".." segments resolved lexically. A ".." that would
// climb above a root is dropped; leading ".." segments of a path without a
// root, or with only a drive-relative root, are kept.
func (p Path[U]) Clean() Path[U] {
	r := p.rootLen()
	hard := r > 0 && p.Form() != DriveRelative
	var out [][]U
	for _, seg := range p.segments() {
		if !isDotDot(seg) {
			out = append(out, seg)
			continue
		}
		switch {
		case len(out) > 0 && !isDotDot(out[len(out)-1]):
			out = out[:len(out)-1]
		case hard:
		default:
			out = append(out, seg)
		}
	}
	s := slices.Clone(p.s[:r])
	for i, seg := range out {
		if i > 0 {
			s = append(s, U(p.grammar().sep))
		}
		s = append(s, seg...)
	}
	return p.with(s)
}

// String returns p in display form, with malformed sequences replaced.
func (p Path[U]) String() string { return display(p.s) }

// Text returns p as UTF-8, failing if p is not well formed.
func (p Path[U]) Text() (string, error) {
	s, err := utf.ToString(p.s, utf.Strict)
	if err != nil {
		return "", &fs.PathError{Op: "text", Path: p.String(), Err: err}
	}
	return s, nil
}

// Native returns a copy of the code units of p.
func (p Path[U]) Native() []U { return slices.Clone(p.s) }

// Equal reports whether p and q have the same grammar and code units.
func (p Path[U]) Equal(q Path[U]) bool {
	return p.grammar() == q.grammar() && slices.Equal(p.s, q.s)
}

// Compare orders paths by code unit.
func Compare[U Unit](a, b Path[U]) int { return slices.Compare(a.s, b.s) }

// CompareFold orders paths by code unit with ASCII letters folded.
func CompareFold[U Unit](a, b Path[U]) int {
	return slices.CompareFunc(a.s, b.s, func(x, y U) int {
		x, y = upper(x), upper(y)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	})
}
