package project

import (
	"path/filepath"
	"strings"
)

// Matcher decides which paths are excluded from a run.
//
// A pattern excludes a path when it occurs anywhere in the path, when it
// glob-matches the whole path or its base name, or when it has the form
// "dir/**" and the path is dir or lies below it.
type Matcher struct {
	patterns []string
}

// NewMatcher returns a Matcher for patterns. Empty patterns are ignored.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{}
	for _, p := range patterns {
		if p == "" {
			continue
		}
		m.patterns = append(m.patterns, filepath.ToSlash(p))
	}
	return m
}

// Patterns returns the patterns in use.
func (m *Matcher) Patterns() []string {
	return m.patterns
}

// Match returns the first pattern that excludes path.
func (m *Matcher) Match(path string) (string, bool) {
	if m == nil {
		return "", false
	}
	path = filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range m.patterns {
		if strings.Contains(path, pattern) {
			return pattern, true
		}
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return pattern, true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return pattern, true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return pattern, true
			}
		}
	}
	return "", false
}
