// Package license keeps a canonical license header at the top of C sources.
package license

import (
	"bytes"
	"errors"
	"strings"
)

// ErrMalformedHeader is returned by Result.Err when a file starts with "/*"
// but never closes that comment.
var ErrMalformedHeader = errors.New("malformed block comment at start of file")

// Header is the golden license block comment. It is built once per run and
// never modified.
type Header []byte

// BuildHeader wraps raw license text in a block comment:
//
//	/*
//	 * <line 1>
//	 * <line 2>
//	 */
//
// followed by one empty line. A final newline in raw does not add an extra
// comment line and a trailing carriage return on each line is dropped.
func BuildHeader(raw []byte) Header {
	var buf bytes.Buffer
	buf.WriteString("/*\n")
	for len(raw) > 0 {
		line := raw
		rest := []byte(nil)
		if i := bytes.IndexByte(raw, '\n'); i >= 0 {
			line, rest = raw[:i], raw[i+1:]
		}
		line = bytes.TrimSuffix(line, []byte("\r"))
		buf.WriteString(" * ")
		buf.Write(line)
		buf.WriteByte('\n')
		raw = rest
	}
	buf.WriteString(" */\n\n")
	return Header(buf.Bytes())
}

func (h Header) String() string {
	return string(h)
}

// Status is the outcome of applying a header to one file.
type Status int

const (
	OK Status = iota
	Updated
	Added
	MalformedHeader
)

var statusNames = map[Status]string{
	OK:              "OK",
	Updated:         "Updated",
	Added:           "Added",
	MalformedHeader: "MalformedHeader",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Result carries the status and the content the file should have. For OK
// and MalformedHeader, Content is the input unchanged.
type Result struct {
	Status  Status
	Content []byte
}

// NeedsWrite reports whether the file must be rewritten.
func (r Result) NeedsWrite() bool {
	return r.Status == Updated || r.Status == Added
}

// Err returns ErrMalformedHeader for a malformed file and nil otherwise.
func (r Result) Err() error {
	if r.Status == MalformedHeader {
		return ErrMalformedHeader
	}
	return nil
}

// Apply puts golden at the top of content.
//
// Content that already starts with golden is left alone. A leading block
// comment is replaced by golden, dropping the whitespace after it. Anything
// else gets golden prepended. Applying the result again always yields OK.
func Apply(golden Header, content []byte) Result {
	if bytes.HasPrefix(content, golden) {
		return Result{Status: OK, Content: content}
	}

	if bytes.HasPrefix(content, []byte("/*")) {
		end := bytes.Index(content, []byte("*/"))
		if end < 0 {
			return Result{Status: MalformedHeader, Content: content}
		}
		body := bytes.TrimLeft(content[end+2:], " \t\n\r")
		return Result{Status: Updated, Content: join(golden, body)}
	}

	return Result{Status: Added, Content: join(golden, content)}
}

func join(golden Header, body []byte) []byte {
	out := make([]byte, 0, len(golden)+len(body))
	out = append(out, golden...)
	return append(out, body...)
}

// Lines returns the license text of h without the comment decoration. It is
// used to describe the expected header in diagnostics.
func (h Header) Lines() []string {
	text := strings.TrimSuffix(strings.TrimPrefix(string(h), "/*\n"), " */\n\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, " * ")
	}
	return lines
}
