// Package ignore reads .litscanignore files: one glob per line, # comments,
// a trailing slash for directories, and a leading ! to re-include a path.
package ignore

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up at the scan root.
const FileName = ".litscanignore"

type rule struct {
	glob   string
	dir    bool
	negate bool
}

// Matcher decides whether a slash-separated relative path is ignored. The
// zero value ignores nothing.
type Matcher struct {
	rules []rule
}

// Load parses the ignore file at p. A missing file yields an empty matcher
// and the open error.
func Load(p string) (Matcher, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return Matcher{}, err
	}
	return Parse(b), nil
}

// Parse builds a matcher from ignore file contents.
func Parse(b []byte) Matcher {
	var m Matcher
	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		t := strings.TrimSpace(sc.Text())
		if t == "" || strings.HasPrefix(t, "#") {
			continue
		}
		var r rule
		if strings.HasPrefix(t, "!") {
			r.negate = true
			t = t[1:]
		}
		if strings.HasSuffix(t, "/") {
			r.dir = true
			t = strings.TrimSuffix(t, "/")
		}
		r.glob = strings.TrimPrefix(t, "/")
		if r.glob != "" {
			m.rules = append(m.rules, r)
		}
	}
	return m
}

// Match reports whether rel is ignored. Later lines override earlier ones.
func (m Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "./")
	ignored := false
	for _, r := range m.rules {
		if r.matches(rel) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r rule) matches(rel string) bool {
	if r.dir {
		// Any ancestor directory may match.
		for d := path.Dir(rel); d != "." && d != "/"; d = path.Dir(d) {
			if r.matchOne(d) {
				return true
			}
		}
		return false
	}
	return r.matchOne(rel)
}

func (r rule) matchOne(p string) bool {
	if ok, _ := doublestar.Match(r.glob, p); ok {
		return true
	}
	if !strings.Contains(r.glob, "/") {
		ok, _ := doublestar.Match(r.glob, path.Base(p))
		return ok
	}
	return false
}
