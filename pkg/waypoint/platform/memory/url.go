package memory

import (
	"fmt"
	"path"
	"strings"
)

// Percent-encode sets used by browsers when a URL component is written.
const (
	fragmentExtra = "\"<>`"
	queryExtra    = "\"#<>"
	pathExtra     = "\"#<>?`{}"
)

// escape percent-encodes every byte of s that is a control character, a space,
// non-ASCII, or listed in extra. Existing escapes are left alone.
func escape(s, extra string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || c >= 0x7f || strings.IndexByte(extra, c) >= 0 {
			fmt.Fprintf(&b, "%%%02X", c)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// splitOrigin separates "scheme://host" from the rest of an absolute URL.
// Relative references return an empty origin.
func splitOrigin(raw string) (origin, rest string) {
	i := strings.Index(raw, "://")
	if i < 0 || strings.ContainsAny(raw[:i], "/?#") {
		return "", raw
	}
	end := strings.IndexAny(raw[i+3:], "/?#")
	if end < 0 {
		return raw, ""
	}
	return raw[:i+3+end], raw[i+3+end:]
}

// resolve turns a URL reference into an entry relative to base, the way a
// browser resolves the url argument of pushState or location.replace.
func (w *Window) resolve(raw string, base Entry) (Entry, error) {
	origin, rest := splitOrigin(raw)
	if origin != "" && origin != w.origin {
		return Entry{}, fmt.Errorf("%w: %s", ErrCrossOrigin, origin)
	}
	if origin != "" && rest == "" {
		rest = "/"
	}

	var e Entry
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		e.Fragment = escape(rest[i+1:], fragmentExtra)
		e.HasFragment = true
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		e.Search = escape(rest[i:], queryExtra)
		rest = rest[:i]
		if e.Search == "?" {
			e.Search = ""
		}
	}

	switch {
	case rest == "" && e.Search == "" && !strings.HasPrefix(raw, "?"):
		e.Path = base.Path
		e.Search = base.Search
	case rest == "":
		e.Path = base.Path
	case strings.HasPrefix(rest, "/"):
		e.Path = escape(rest, pathExtra)
	default:
		dir := base.Path[:strings.LastIndexByte(base.Path, '/')+1]
		e.Path = escape(path.Clean(dir+rest), pathExtra)
		if strings.HasSuffix(rest, "/") && e.Path != "/" {
			e.Path += "/"
		}
	}
	return e, nil
}
