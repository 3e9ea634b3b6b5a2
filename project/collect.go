// Package project loads cnote configuration and finds the C sources a run
// should touch.
package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cnote.project")

// SourceExts are the file extensions cnote processes. Matching is exact and
// case-sensitive.
var SourceExts = []string{".c", ".h"}

// HasSourceExt reports whether path ends in one of SourceExts.
func HasSourceExt(path string) bool {
	for _, ext := range SourceExts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Collector expands command-line targets into source files.
type Collector struct {
	Matcher *Matcher

	// KeepExplicitFiles keeps file targets named on the command line even
	// when their extension is not in SourceExts.
	KeepExplicitFiles bool

	// OnExclude is called for every path skipped by Matcher.
	OnExclude func(path, pattern string)

	// OnError is called for every target or directory that could not be
	// read. The walk continues.
	OnError func(path string, err error)
}

// Collect returns the source files below targets, de-duplicated, in the order
// they are first seen. Directory entries are visited in lexical order.
func Collect(targets []string, m *Matcher) []string {
	c := &Collector{Matcher: m}
	return c.Collect(targets)
}

func (c *Collector) Collect(targets []string) []string {
	w := &walk{Collector: c, seen: make(map[string]bool)}
	for _, target := range targets {
		if w.excluded(target) {
			continue
		}
		info, err := os.Stat(target)
		if err != nil {
			w.fail(target, err)
			continue
		}
		if info.IsDir() {
			w.dir(target)
			continue
		}
		if c.KeepExplicitFiles || HasSourceExt(target) {
			w.add(target)
		}
	}
	return w.files
}

type walk struct {
	*Collector
	seen  map[string]bool
	files []string
}

func (w *walk) dir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.fail(dir, err)
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if w.excluded(path) {
			continue
		}

		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				w.fail(path, err)
				continue
			}
			if info.IsDir() {
				log.Debugf("not following directory link %s", path)
				continue
			}
		}

		if isDir {
			w.dir(path)
		} else if HasSourceExt(path) {
			w.add(path)
		}
	}
}

func (w *walk) add(path string) {
	key := filepath.Clean(path)
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	w.files = append(w.files, path)
}

func (w *walk) excluded(path string) bool {
	pattern, ok := w.Matcher.Match(path)
	if !ok {
		return false
	}
	if w.OnExclude != nil {
		w.OnExclude(path, pattern)
	}
	return true
}

func (w *walk) fail(path string, err error) {
	if w.OnError != nil {
		w.OnError(path, err)
		return
	}
	log.Warningf("skipping %s: %s", path, err)
}
