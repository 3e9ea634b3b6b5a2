package doc

import (
	"bytes"

	"github.com/dhamidi/cnote/lexer"
)

// Entry is one documentation comment and the declaration that follows it.
// Both spans refer to the buffer passed to Extract; nothing is copied.
type Entry struct {
	src []byte

	// Comment excludes the opening "/**" and the closing "*/".
	Comment lexer.Span
	// Signature runs from the first non-blank byte after the comment up to
	// and including the '{' or ';' that ends the declaration.
	Signature lexer.Span
}

// NewEntry builds an entry over src from explicit spans.
func NewEntry(src []byte, comment, signature lexer.Span) Entry {
	return Entry{src: src, Comment: comment, Signature: signature}
}

func (e Entry) CommentText() []byte {
	return e.src[e.Comment.Start:e.Comment.End]
}

func (e Entry) SignatureText() []byte {
	return e.src[e.Signature.Start:e.Signature.End]
}

type extractState int

const (
	stateCode extractState = iota
	stateComment
	stateSignature
)

// Extract finds every "/** ... */" comment in src that is followed by a
// declaration ending in '{' or ';' and returns them in source order.
//
// A doc comment followed by another doc comment before any terminator is
// dropped. Comment markers and terminators inside string literals,
// character literals and ordinary comments are ignored.
func Extract(src []byte) []Entry {
	var entries []Entry
	state := stateCode
	var comment lexer.Span
	signatureStart := 0

	c := lexer.NewCursor(src)
	for {
		r, ok := c.Next()
		if !ok {
			return entries
		}

		if isDocComment(src, r) {
			state = stateComment
			if !r.Terminated {
				continue
			}
			comment = lexer.Span{Start: r.Span.Start + 3, End: r.Span.End - 2}
			signatureStart = skipBlank(src, r.Span.End)
			state = stateSignature
			continue
		}

		if state != stateSignature || r.Kind != lexer.Code {
			continue
		}
		if i := bytes.IndexAny(r.Bytes(src), "{;"); i >= 0 {
			end := r.Span.Start + i + 1
			entries = append(entries, NewEntry(src, comment, lexer.Span{Start: signatureStart, End: end}))
			state = stateCode
		}
	}
}

// isDocComment reports whether r is a block comment opened by "/**". The
// empty comment "/**/" is an ordinary comment.
func isDocComment(src []byte, r lexer.Region) bool {
	if r.Kind != lexer.BlockComment {
		return false
	}
	text := r.Bytes(src)
	if !bytes.HasPrefix(text, []byte("/**")) {
		return false
	}
	return !(r.Terminated && len(text) == 4)
}

func skipBlank(src []byte, pos int) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}
