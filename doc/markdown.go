package doc

import (
	"strings"
)

// Heading returns the top-level heading of a rendered document, or nothing
// when title is empty.
func Heading(title string) string {
	if title == "" {
		return ""
	}
	return "# " + title + "\n\n"
}

// GeneratedBy is the line under the title of a single document.
const GeneratedBy = "Generated by `cnote`.\n\n"

// Document renders the single-document output for a whole tree: the title,
// the generator line, then every entry in order.
func Document(entries []Entry, title string) []byte {
	var sb strings.Builder
	sb.WriteString(Heading(title))
	sb.WriteString(GeneratedBy)
	writeEntries(&sb, entries)
	return []byte(sb.String())
}

// Render turns entries into one Markdown document titled title. Book pages
// and the show command render one file at a time with it.
func Render(entries []Entry, title string) []byte {
	var sb strings.Builder
	sb.WriteString(Heading(title))
	writeEntries(&sb, entries)
	return []byte(sb.String())
}

// RenderEntries renders the sections for entries without a heading, so
// callers can render files independently and concatenate the results.
func RenderEntries(entries []Entry) []byte {
	var sb strings.Builder
	writeEntries(&sb, entries)
	return []byte(sb.String())
}

func writeEntries(sb *strings.Builder, entries []Entry) {
	for _, e := range entries {
		sb.WriteString("## `")
		sb.WriteString(CompactSignature(e.SignatureText()))
		sb.WriteString("`\n\n")
		sb.WriteString(RenderComment(e.CommentText()))
		sb.WriteString("\n---\n\n")
	}
}

// CompactSignature drops leading whitespace and collapses every run of
// spaces, tabs, newlines and carriage returns into a single space.
func CompactSignature(sig []byte) string {
	var sb strings.Builder
	sb.Grow(len(sig))
	pendingSpace := false
	for _, ch := range sig {
		switch ch {
		case ' ', '\t', '\n', '\r':
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.WriteByte(ch)
	}
	if pendingSpace {
		sb.WriteByte(' ')
	}
	return sb.String()
}

type bodyState int

const (
	bodyNone bodyState = iota
	bodyList
	bodyExample
)

type bodyWriter struct {
	sb    strings.Builder
	state bodyState
}

func (w *bodyWriter) line(s string) {
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *bodyWriter) blank() {
	w.sb.WriteByte('\n')
}

// enterList separates a list from preceding text with one blank line.
func (w *bodyWriter) enterList() {
	if w.state != bodyList {
		w.blank()
	}
	w.state = bodyList
}

func (w *bodyWriter) closeFence() {
	w.line("```")
	w.state = bodyNone
}

// RenderComment renders the text between "/**" and "*/" as Markdown. Every
// output line ends with a newline; source line breaks are kept one to one.
func RenderComment(comment []byte) string {
	w := &bodyWriter{}
	for _, raw := range commentLines(string(comment)) {
		if w.state == bodyExample {
			code := stripStar(raw)
			if !strings.HasPrefix(strings.TrimLeft(code, " \t"), "@") {
				w.line(strings.TrimRight(code, "\r"))
				continue
			}
			w.closeFence()
		}
		w.render(cleanLine(raw))
	}
	if w.state == bodyExample {
		w.closeFence()
	}
	return w.sb.String()
}

func (w *bodyWriter) render(line string) {
	h, tag, rest := lookupTag(line)
	if h != nil {
		h.render(w, rest)
		return
	}
	w.state = bodyNone
	if tag == Blank {
		w.blank()
		return
	}
	w.line(rest)
}

func renderBrief(w *bodyWriter, rest string) {
	w.state = bodyNone
	w.line(rest)
}

func renderParam(w *bodyWriter, rest string) {
	w.enterList()
	name, desc := splitWord(rest)
	w.line("- **`" + name + "`**: " + desc)
}

func renderReturn(w *bodyWriter, rest string) {
	w.enterList()
	w.line("- **Returns**: " + rest)
}

func renderNote(w *bodyWriter, rest string) {
	w.state = bodyNone
	w.blank()
	w.line("> **Note:** " + rest)
}

func renderExample(w *bodyWriter, rest string) {
	w.state = bodyExample
	w.blank()
	w.line("```c")
	if rest != "" {
		w.line(rest)
	}
}

// commentLines splits a raw comment body into lines after dropping the
// trailing whitespace of the whole comment. The rest of the "/**" line is
// kept, so a comment that starts on the next line renders a leading blank.
func commentLines(comment string) []string {
	comment = strings.TrimRight(comment, " \t\r\n")
	if comment == "" {
		return nil
	}
	return strings.Split(comment, "\n")
}

// cleanLine strips the leading " * " decoration and surrounding blanks.
func cleanLine(raw string) string {
	s := strings.TrimLeft(raw, " \t")
	if strings.HasPrefix(s, "*") {
		s = strings.TrimPrefix(s[1:], " ")
	}
	s = strings.TrimLeft(s, " \t")
	return strings.TrimRight(s, " \t\r")
}

// stripStar removes only the leading "*" decoration, keeping the
// indentation that follows it. Lines without a star are returned as is.
func stripStar(raw string) string {
	s := strings.TrimLeft(raw, " \t")
	if !strings.HasPrefix(s, "*") {
		return raw
	}
	return strings.TrimPrefix(s[1:], " ")
}
