// Package clean removes // comments from C/C++ source while leaving every
// other byte untouched.
package clean

import (
	"github.com/dhamidi/cnote/lexer"
)

// Source returns a copy of src with the body of every line comment removed.
// The newline that ends a line comment is kept so line numbers do not move.
// Block comments, string literals and character literals are copied
// verbatim, including any "//" they contain.
func Source(src []byte) []byte {
	out := make([]byte, 0, len(src))
	c := lexer.NewCursor(src)
	for {
		r, ok := c.Next()
		if !ok {
			return out
		}
		if r.Kind == lexer.LineComment {
			continue
		}
		out = append(out, r.Bytes(src)...)
	}
}

// Unterminated returns the block comments and literals left open at the end
// of src. A trailing line comment without a newline is not reported.
func Unterminated(src []byte) []lexer.Region {
	var open []lexer.Region
	for _, r := range lexer.Scan(src) {
		if r.Terminated || r.Kind == lexer.LineComment {
			continue
		}
		open = append(open, r)
	}
	return open
}

// Changed reports whether cleaning src would modify it.
func Changed(src []byte) bool {
	c := lexer.NewCursor(src)
	for {
		r, ok := c.Next()
		if !ok {
			return false
		}
		if r.Kind == lexer.LineComment {
			return true
		}
	}
}
