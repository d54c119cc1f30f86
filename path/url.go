package path

import (
	"io/fs"
	"net/url"
	"strings"
)

// AsURL returns p as a file URL. p must be absolute.
func (p Path[U]) AsURL() (string, error) {
	if !p.IsAbsolute() {
		return "", &fs.PathError{
			Op:   "url",
			Path: p.String(),
			Err:  ErrInvalid,
		}
	}
	u := url.URL{Scheme: "file"}
	s := p.String()
	g := p.grammar()
	switch {
	case g.windows:
		s = strings.TrimPrefix(s, winPrefix)
		if rest, ok := strings.CutPrefix(s, `UNC\`); ok {
			s = `\\` + rest
		}
		s = strings.ReplaceAll(s, `\`, "/")
		if host, ok := strings.CutPrefix(s, "//"); ok {
			u.Host, u.Path, _ = strings.Cut(host, "/")
			u.Path = "/" + u.Path
		} else {
			u.Path = "/" + s
		}
	case g.leading == Network && strings.HasPrefix(s, "//"):
		u.Host, u.Path, _ = strings.Cut(s[2:], "/")
		u.Path = "/" + u.Path
	default:
		u.Path = s
	}
	return u.String(), nil
}
