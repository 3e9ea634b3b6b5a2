// Package codebase keeps C sources in memory for the cnote language server.
package codebase

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/dhamidi/cnote/clean"
	"github.com/dhamidi/cnote/doc"
	"github.com/dhamidi/cnote/lexer"
	"github.com/dhamidi/cnote/license"
	"github.com/dhamidi/cnote/project"
)

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	matcher *project.Matcher
	header  license.Header
	files   map[string]*FileInfo
	open    map[string]bool
}

// FileInfo is the analysed state of one file. It is replaced, never
// modified, when the file changes.
type FileInfo struct {
	Path         string
	Content      []byte
	Entries      []doc.Entry
	Unterminated []lexer.Region
	LineComments []lexer.Region
}

func New(rootDir string, matcher *project.Matcher) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		matcher: matcher,
		files:   make(map[string]*FileInfo),
		open:    make(map[string]bool),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// SetLicense sets the header that files are checked against. A nil header
// turns license diagnostics off.
func (c *Codebase) SetLicense(h license.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.header = h
}

func (c *Codebase) License() license.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.header
}

// ScanAll loads every source file below the root directory.
func (c *Codebase) ScanAll() []string {
	collector := &project.Collector{
		Matcher: c.matcher,
		OnError: func(path string, err error) {
			log.Warningf("scan %s: %s", path, err)
		},
	}
	paths := collector.Collect([]string{c.rootDir})
	for _, path := range paths {
		if err := c.ScanFile(path); err != nil {
			log.Warningf("scan %s: %s", path, err)
		}
	}
	return paths
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.UpdateFile(path, content)
	return nil
}

func (c *Codebase) UpdateFile(path string, content []byte) *FileInfo {
	info := analyze(path, content)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = info
	return info
}

func analyze(path string, content []byte) *FileInfo {
	info := &FileInfo{
		Path:    path,
		Content: content,
		Entries: doc.Extract(content),
	}
	for _, r := range lexer.Scan(content) {
		if r.Kind == lexer.LineComment {
			info.LineComments = append(info.LineComments, r)
		}
		if !r.Terminated && r.Kind != lexer.LineComment {
			info.Unterminated = append(info.Unterminated, r)
		}
	}
	return info
}

// SetOpen records whether an editor holds path. Open files are owned by the
// editor and are not reloaded from disk.
func (c *Codebase) SetOpen(path string, open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if open {
		c.open[path] = true
	} else {
		delete(c.open, path)
	}
}

func (c *Codebase) IsOpen(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.open[path]
}

// OpenPaths returns the files currently held by an editor, sorted.
func (c *Codebase) OpenPaths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.open))
	for path := range c.open {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the known file paths in sorted order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for path := range c.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// EntryAtPoint returns the documentation entry whose comment or signature
// covers the 0-based line and byte column.
func (c *Codebase) EntryAtPoint(path string, line, column int) (doc.Entry, bool) {
	info := c.GetFile(path)
	if info == nil {
		return doc.Entry{}, false
	}
	offset := lexer.Offset(info.Content, line, column)
	for _, e := range info.Entries {
		whole := lexer.Span{Start: e.Comment.Start - 3, End: e.Signature.End}
		if whole.Contains(offset) {
			return e, true
		}
	}
	return doc.Entry{}, false
}

// HoverText renders the entry at the given point as Markdown.
func (c *Codebase) HoverText(path string, line, column int) (string, bool) {
	e, ok := c.EntryAtPoint(path, line, column)
	if !ok {
		return "", false
	}
	return string(doc.RenderEntries([]doc.Entry{e})), true
}

// Cleaned returns the file content with line comments removed and whether
// that differs from the current content.
func (c *Codebase) Cleaned(path string) ([]byte, bool) {
	info := c.GetFile(path)
	if info == nil {
		return nil, false
	}
	out := clean.Source(info.Content)
	return out, string(out) != string(info.Content)
}

// Symbol is a documented declaration found in the codebase.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Path  string
	Entry doc.Entry
}

type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolStruct
	SymbolEnum
	SymbolType
)

// Symbols returns the documented declarations whose name contains query,
// ignoring case. An empty query matches everything.
func (c *Codebase) Symbols(query string) []Symbol {
	query = strings.ToLower(query)
	var symbols []Symbol
	for _, path := range c.Paths() {
		info := c.GetFile(path)
		if info == nil {
			continue
		}
		for _, e := range info.Entries {
			name, kind := SymbolName(doc.CompactSignature(e.SignatureText()))
			if !strings.Contains(strings.ToLower(name), query) {
				continue
			}
			symbols = append(symbols, Symbol{Name: name, Kind: kind, Path: path, Entry: e})
		}
	}
	return symbols
}

var aggregateKinds = map[string]SymbolKind{
	"struct":  SymbolStruct,
	"union":   SymbolStruct,
	"enum":    SymbolEnum,
	"typedef": SymbolType,
}

// SymbolName guesses the declared name in a compact signature: the last
// identifier before the parameter list, initializer, array bound or
// terminator.
func SymbolName(sig string) (string, SymbolKind) {
	kind := SymbolVariable
	head := strings.TrimRight(sig, "{; ")
	if i := strings.IndexAny(head, "(=["); i >= 0 {
		if head[i] == '(' {
			kind = SymbolFunction
		}
		head = head[:i]
	}
	fields := strings.FieldsFunc(head, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return sig, kind
	}
	if k, ok := aggregateKinds[fields[0]]; ok && kind != SymbolFunction {
		kind = k
	}
	name := fields[len(fields)-1]
	if _, keyword := aggregateKinds[name]; keyword {
		return sig, kind
	}
	return name, kind
}
