package path

import (
	"errors"
	"fmt"
	"slices"
	"testing"
)

func px(s string) Path[uint8]   { return Make[uint8](Posix, s) }
func win(s string) Path[uint16] { return Make[uint16](Windows, s) }

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		g    *Grammar
		in   string
		want string
	}{
		{"PosixEmpty", Posix, "", ""},
		{"PosixDot", Posix, ".", ""},
		{"PosixLocalDot", Posix, "./foo", "foo"},
		{"PosixInnerDot", Posix, "foo/./bar", "foo/bar"},
		{"PosixRuns", Posix, "foo//bar/", "foo/bar"},
		{"PosixLeadingRun", Posix, "///foo", "/foo"},
		{"PosixDotDotKept", Posix, "foo/../bar", "foo/../bar"},
		{"PosixRoot", Posix, "/", "/"},
		{"PosixRootDot", Posix, "/./", "/"},
		{"DoubleSlash", PosixDoubleSlash, "//foo", "//foo"},
		{"DoubleSlashRoot", PosixDoubleSlash, "//", "//"},
		{"DoubleSlashTriple", PosixDoubleSlash, "///foo", "/foo"},
		{"CygwinHost", Cygwin, "//host/share//x/", "//host/share/x"},
		{"CygwinHostOnly", Cygwin, "//host", "//host/"},
		{"CygwinTriple", Cygwin, "///host", "/host"},
		{"WindowsDrive", Windows, `c:/foo\\bar/`, `C:\foo\bar`},
		{"WindowsDriveRelative", Windows, `C:foo`, `C:foo`},
		{"WindowsDriveOnly", Windows, `c:`, `C:`},
		{"WindowsDriveAbsolute", Windows, `\foo\`, `\foo`},
		{"WindowsUNC", Windows, `//server/share/x`, `\\server\share\x`},
		{"WindowsUNCServer", Windows, `\\server`, `\\server\`},
		{"WindowsUNCRun", Windows, `\\\\server\x`, `\\server\x`},
		{"WindowsLong", Windows, `\\?\c:\foo`, `\\?\C:\foo`},
		{"WindowsLongUNC", Windows, `\\?\UNC\srv\share`, `\\?\UNC\srv\share`},
		{"WindowsLongVolume", Windows, `\\?\Volume{1}\x`, `\\?\Volume{1}\x`},
		{"WindowsDot", Windows, `.\`, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Make[uint16](tt.g, tt.in)
			if got := p.String(); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
			again := Make[uint16](tt.g, p.String())
			if !again.Equal(p) {
				t.Errorf("canonical form of %q is not stable: %q",
					tt.want, again)
			}
			if r := p.rootLen(); r > len(p.s) {
				t.Errorf("root of %q overruns the path", tt.want)
			}
		})
	}
}

func TestForm(t *testing.T) {
	tests := []struct {
		name string
		g    *Grammar
		in   string
		want Form
	}{
		{"PosixEmpty", Posix, "", Empty},
		{"PosixAbsolute", Posix, "/a", Absolute},
		{"PosixRelative", Posix, "a/b", Relative},
		{"CygwinNetwork", Cygwin, "//host/x", Absolute},
		{"WindowsEmpty", Windows, "", Empty},
		{"WindowsAbsolute", Windows, `C:\foo`, Absolute},
		{"WindowsUNC", Windows, `\\server\share`, Absolute},
		{"WindowsLong", Windows, `\\?\C:\x`, Absolute},
		{"WindowsDriveAbsolute", Windows, `\foo`, DriveAbsolute},
		{"WindowsBackslash", Windows, `\`, DriveAbsolute},
		{"WindowsDriveRelative", Windows, `C:foo`, DriveRelative},
		{"WindowsDrive", Windows, `C:`, DriveRelative},
		{"WindowsRelative", Windows, `foo\bar`, Relative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Make[uint8](tt.g, tt.in)
			if got := p.Form(); got != tt.want {
				t.Errorf("Form(%q) = %v, want %v", tt.in, got, tt.want)
			}
			preds := []bool{
				p.Empty(), p.IsAbsolute(), p.IsDriveAbsolute(),
				p.IsDriveRelative(), p.IsRelative(),
			}
			n := 0
			for _, ok := range preds {
				if ok {
					n++
				}
			}
			if n != 1 {
				t.Errorf("%q satisfies %d form predicates", tt.in, n)
			}
		})
	}
}

func TestIsRoot(t *testing.T) {
	tests := []struct {
		g    *Grammar
		in   string
		want bool
	}{
		{Posix, "/", true},
		{Posix, "/a", false},
		{Posix, "", false},
		{PosixDoubleSlash, "//", true},
		{Cygwin, "//host/", true},
		{Windows, `C:\`, true},
		{Windows, `C:`, false},
		{Windows, `\`, false},
		{Windows, `\\server\`, true},
		{Windows, `\\?\C:\`, true},
		{Windows, `C:\foo`, false},
	}
	for _, tt := range tests {
		p := Make[uint16](tt.g, tt.in)
		if got := p.IsRoot(); got != tt.want {
			t.Errorf("%s IsRoot(%q) = %v, want %v", tt.g, tt.in, got, tt.want)
		}
	}
	if !win(`C:`).HasRoot() || !win(`\x`).HasRoot() || win(`x`).HasRoot() {
		t.Errorf("HasRoot disagrees with the partial Windows roots")
	}
}

func TestIsLeafLegalUnicode(t *testing.T) {
	if !px("foo").IsLeaf() || px("a/b").IsLeaf() || px("/").IsLeaf() {
		t.Errorf("IsLeaf mismatch")
	}
	legal := []struct {
		p    Path[uint16]
		want bool
	}{
		{win(`C:\foo`), true},
		{win(`C:\fo?o`), false},
		{win(`a|b`), false},
		{win(`\foo`), false},
		{win(`\\?\C:\foo`), true},
		{Make[uint16](Posix, "a?b:c"), true},
		{Make[uint16](Posix, "a\x00b"), false},
	}
	for _, tt := range legal {
		if got := tt.p.IsLegal(); got != tt.want {
			t.Errorf("IsLegal(%q) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if !px("héllo").IsUnicode() || px("h\xFFllo").IsUnicode() {
		t.Errorf("IsUnicode mismatch")
	}
}

func TestParse(t *testing.T) {
	p := px("a\xFFb")
	if got := string(p.Native()); got != "a\xFFb" {
		t.Errorf("byte path not kept: %q", got)
	}
	if got := p.String(); got != "a\uFFFDb" {
		t.Errorf("String() = %q", got)
	}
	if _, err := p.Text(); err == nil {
		t.Errorf("Text() of malformed path succeeded")
	}

	w := Make[uint16](Windows, "a\xFFb")
	if got := w.Native(); !slices.Equal(got, []uint16{'a', 0xFFFD, 'b'}) {
		t.Errorf("wide path = %x", got)
	}

	if _, err := Parse[uint16](Windows, "a\xFF", Strict); err == nil {
		t.Errorf("Parse(Strict) accepted malformed input")
	}
	_, err := Parse[uint16](Windows, `a?b`, LegalName)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Parse(LegalName) err = %v, want ErrInvalid", err)
	}
	q, err := Parse[uint16](Windows, `C:\ok`, LegalName|Strict)
	if err != nil || q.String() != `C:\ok` {
		t.Errorf("Parse(`C:\\ok`) = %q, %v", q, err)
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		g        *Grammar
		in       string
		wantDir  string
		wantLeaf string
	}{
		{"Nested", Posix, "abc/def/hello.world.txt", "abc/def",
			"hello.world.txt"},
		{"Root", Posix, "/foo", "/", "foo"},
		{"RootOnly", Posix, "/", "/", ""},
		{"Leaf", Posix, "foo", "", "foo"},
		{"Empty", Posix, "", "", ""},
		{"DotDot", Posix, "a/..", "a", ".."},
		{"WindowsFile", Windows, `C:\foo`, `C:\`, "foo"},
		{"WindowsPath", Windows, `C:\Users\foo`, `C:\Users`, "foo"},
		{"WindowsDriveRelative", Windows, `C:foo`, `C:`, "foo"},
		{"WindowsUNC", Windows, `\\srv\share\x`, `\\srv\share`, "x"},
		{"WindowsUNCShare", Windows, `\\srv\share`, `\\srv\`, "share"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Make[uint8](tt.g, tt.in)
			dir, leaf := p.SplitPath()
			if dir.String() != tt.wantDir || leaf.String() != tt.wantLeaf {
				t.Errorf("SplitPath(%q) = (%q, %q), want (%q, %q)",
					tt.in, dir, leaf, tt.wantDir, tt.wantLeaf)
			}
			if !p.Dir().Equal(dir) || !p.Leaf().Equal(leaf) {
				t.Errorf("Dir/Leaf disagree with SplitPath for %q", tt.in)
			}
		})
	}
}

func TestSplitLeaf(t *testing.T) {
	tests := []struct {
		in       string
		wantStem string
		wantExt  string
	}{
		{"abc/def/hello.world.txt", "hello.world", ".txt"},
		{".profile", ".profile", ""},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"..", "..", ""},
		{"a.", "a", "."},
		{"dir.d/file", "file", ""},
		{"/", "", ""},
	}
	for _, tt := range tests {
		stem, ext := px(tt.in).SplitLeaf()
		if stem != tt.wantStem || ext != tt.wantExt {
			t.Errorf("SplitLeaf(%q) = (%q, %q), want (%q, %q)",
				tt.in, stem, ext, tt.wantStem, tt.wantExt)
		}
	}
	if got := px("a/b.txt").Stem(); got != "b" {
		t.Errorf("Stem() = %q", got)
	}
	if got := px("a/b.txt").Ext(); got != ".txt" {
		t.Errorf("Ext() = %q", got)
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		g    *Grammar
		a, b string
		want string
	}{
		{"Simple", Posix, "foo", "bar", "foo/bar"},
		{"Root", Posix, "/", "foo", "/foo"},
		{"Absolute", Posix, "/a", "/b", "/b"},
		{"EmptyA", Posix, "", "b", "b"},
		{"EmptyB", Posix, "a", "", "a"},
		{"DotDot", Posix, "foo", "../bar", "foo/../bar"},
		{"WindowsDrive", Windows, `C:\`, "foo", `C:\foo`},
		{"WindowsNested", Windows, `C:\Users`, `foo\bar`, `C:\Users\foo\bar`},
		{"WindowsAbsolute", Windows, `C:\x`, `D:\y`, `D:\y`},
		{"WindowsKeepDrive", Windows, `C:\x`, `\y`, `C:\y`},
		{"WindowsKeepShare", Windows, `\\srv\share\x`, `\y`, `\\srv\y`},
		{"WindowsDriveRelRoot", Windows, `C:x`, `\y`, `C:\y`},
		{"WindowsNoDrive", Windows, `x`, `\y`, `\y`},
		{"WindowsSameDrive", Windows, `C:\x`, `c:y`, `C:\x\y`},
		{"WindowsSameDriveBare", Windows, `C:\x`, `C:`, `C:\x`},
		{"WindowsOtherDrive", Windows, `C:\x`, `D:y`, `D:y`},
		{"WindowsBothDriveRel", Windows, `C:x`, `C:y`, `C:x\y`},
		{"WindowsDriveRelBase", Windows, `C:`, `y`, `C:y`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := Make[uint16](tt.g, tt.a), Make[uint16](tt.g, tt.b)
			if got := Join(a, b).String(); got != tt.want {
				t.Errorf("Join(%q, %q) = %q, want %q",
					tt.a, tt.b, got, tt.want)
			}
		})
	}
	if got := px("a").Join("b", "/c", "d").String(); got != "/c/d" {
		t.Errorf("Join(elems) = %q", got)
	}
}

func TestBreakdownRoundTrip(t *testing.T) {
	tests := []struct {
		g    *Grammar
		in   string
		want []string
	}{
		{Posix, "/a/b", []string{"/", "a", "b"}},
		{Posix, "a/b", []string{"a", "b"}},
		{Posix, "/", []string{"/"}},
		{Posix, "../x", []string{"..", "x"}},
		{Windows, `C:\x\y`, []string{`C:\`, "x", "y"}},
		{Windows, `C:x`, []string{`C:`, "x"}},
		{Windows, `\\srv\share`, []string{`\\srv\`, "share"}},
		{Windows, `\x`, []string{`\`, "x"}},
		{Cygwin, "//host/a", []string{"//host/", "a"}},
	}
	for _, tt := range tests {
		p := Make[uint16](tt.g, tt.in)
		if got := p.Breakdown(); !slices.Equal(got, tt.want) {
			t.Errorf("Breakdown(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if got := JoinAll(p.BreakdownPaths()...); !got.Equal(p) {
			t.Errorf("JoinAll(Breakdown(%q)) = %q", tt.in, got)
		}
	}
}

func TestCommon(t *testing.T) {
	tests := []struct {
		g    *Grammar
		a, b string
		want string
	}{
		{Posix, "/foo/bar", "/foo/barfle", "/foo"},
		{Posix, "/foo", "/bar", "/"},
		{Posix, "foo/a", "bar/a", ""},
		{Posix, "a/b", "a/c", "a"},
		{Posix, "/a/b", "/a/b", "/a/b"},
		{Posix, "/a", "a", ""},
		{Posix, "", "/a", ""},
		{Windows, `C:\foo`, `D:\foo`, ""},
		{Windows, `C:\Foo\x`, `c:\FOO\y`, `C:\Foo`},
		{Windows, `C:a\b`, `C:a\c`, `C:a`},
	}
	for _, tt := range tests {
		a, b := Make[uint8](tt.g, tt.a), Make[uint8](tt.g, tt.b)
		if got := Common(a, b).String(); got != tt.want {
			t.Errorf("Common(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRelativeTo(t *testing.T) {
	tests := []struct {
		name    string
		g       *Grammar
		p, base string
		want    string
		wantErr bool
	}{
		{"Sibling", Posix, "/a/x/y", "/a/b/c", "../../x/y", false},
		{"Same", Posix, "/a/b", "/a/b", "", false},
		{"Below", Posix, "/a/b/c", "/a", "b/c", false},
		{"Above", Posix, "/a", "/a/b/c", "../..", false},
		{"Relative", Posix, "a/b", "a/c", "../b", false},
		{"MixedForms", Posix, "a", "/a", "", true},
		{"DriveRelativeBase", Windows, "a", "C:b", "", true},
		{"DriveAbsoluteBase", Windows, `C:\a`, `\a`, "", true},
		{"EmptyPath", Posix, "", "/a", "", true},
		{"EmptyBase", Posix, "/a", "", "", true},
		{"BaseDotDot", Posix, "/x", "/a/../b", "", true},
		{"OtherDrive", Windows, `D:\x`, `C:\y`, `D:\x`, false},
		{"Fold", Windows, `C:\A\b`, `c:\a`, "b", false},
		{"UNC", Windows, `\\srv\s\a`, `\\srv\s\b`, `..\a`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, base := Make[uint8](tt.g, tt.p), Make[uint8](tt.g, tt.base)
			got, err := p.RelativeTo(base)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("RelativeTo err = %v, want ErrInvalid", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RelativeTo(%q, %q) err: %v", tt.p, tt.base, err)
			}
			if got.String() != tt.want {
				t.Errorf("RelativeTo(%q, %q) = %q, want %q",
					tt.p, tt.base, got, tt.want)
			}
			if p.Root().Equal(base.Root()) {
				back := Join(base, got).Clean()
				if CompareFold(back, p.Clean()) != 0 {
					t.Errorf("Join(%q, %q).Clean() = %q, want %q",
						tt.base, got, back, p.Clean())
				}
			}
		})
	}
}

func TestChangeExt(t *testing.T) {
	tests := []struct {
		in, ext string
		want    string
		wantErr bool
	}{
		{"a/b.txt", ".md", "a/b.md", false},
		{"a/b", "md", "a/b.md", false},
		{"a/b.txt", "", "a/b", false},
		{".profile", ".bak", ".profile.bak", false},
		{"a.tar.gz", ".zip", "a.tar.zip", false},
		{"/", ".txt", "", true},
		{"", ".txt", "", true},
	}
	for _, tt := range tests {
		got, err := px(tt.in).ChangeExt(tt.ext)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("ChangeExt(%q) err = %v, want ErrInvalid", tt.in, err)
			}
			continue
		}
		if err != nil || got.String() != tt.want {
			t.Errorf("ChangeExt(%q, %q) = %q, %v, want %q",
				tt.in, tt.ext, got, err, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		g    *Grammar
		in   string
		want string
	}{
		{Posix, "/a/../..", "/"},
		{Posix, "a/../../b", "../b"},
		{Posix, "../a", "../a"},
		{Posix, "a/..", ""},
		{Posix, "/a/b/../c", "/a/c"},
		{Windows, `C:..\x`, `C:..\x`},
		{Windows, `C:\..\x`, `C:\x`},
		{Windows, `\a\..\..\b`, `\b`},
	}
	for _, tt := range tests {
		p := Make[uint8](tt.g, tt.in)
		if got := p.Clean().String(); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAsURL(t *testing.T) {
	tests := []struct {
		g       *Grammar
		in      string
		want    string
		wantErr bool
	}{
		{Posix, "/a b/c", "file:///a%20b/c", false},
		{Posix, "rel", "", true},
		{Cygwin, "//host/x", "file://host/x", false},
		{Windows, `C:\foo`, "file:///C:/foo", false},
		{Windows, `\\srv\share\f`, "file://srv/share/f", false},
		{Windows, `\\?\C:\x`, "file:///C:/x", false},
		{Windows, `\x`, "", true},
	}
	for _, tt := range tests {
		got, err := Make[uint16](tt.g, tt.in).AsURL()
		if tt.wantErr {
			if err == nil {
				t.Errorf("AsURL(%q) succeeded", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("AsURL(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	if !px("a").Equal(px("a")) {
		t.Errorf("equal paths differ")
	}
	if Make[uint8](PosixDoubleSlash, "a").Equal(px("a")) {
		t.Errorf("paths in different grammars are equal")
	}
	if Compare(px("a"), px("b")) >= 0 {
		t.Errorf("Compare(a, b) >= 0")
	}
	if CompareFold(win("abc"), win("ABD")) >= 0 {
		t.Errorf("CompareFold(abc, ABD) >= 0")
	}
	if CompareFold(win("abc"), win("ABC")) != 0 {
		t.Errorf("CompareFold(abc, ABC) != 0")
	}
	var zero Native
	if !zero.Empty() || zero.Grammar() != NativeGrammar {
		t.Errorf("zero Path is not the empty native path")
	}
}

func ExamplePath_RelativeTo() {
	base := Make[uint8](Posix, "/a/b/c")
	p := Make[uint8](Posix, "/a/x/y")
	rel, _ := p.RelativeTo(base)
	fmt.Println(rel)
	fmt.Println(Join(base, rel).Clean())
	// Output:
	// ../../x/y
	// /a/x/y
}

func ExampleCommon() {
	a := Make[uint16](Windows, `c:/Users/me/docs`)
	b := Make[uint16](Windows, `C:\Users\you`)
	fmt.Println(a)
	fmt.Println(Common(a, b))
	// Output:
	// C:\Users\me\docs
	// C:\Users
}
