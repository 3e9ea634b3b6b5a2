package lexer

// Cursor walks a C/C++ source buffer and splits it into regions of code,
// comments, string literals and character literals. It never fails: input
// that ends inside a comment or literal yields a final unterminated region
// and leaves the cursor in that state.
type Cursor struct {
	src   []byte
	pos   int
	state State
}

func NewCursor(src []byte) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the offset of the next byte to be consumed.
func (c *Cursor) Pos() int {
	return c.pos
}

// State returns the state the cursor is in. After the last region has been
// returned this is Code, unless the input ended inside a comment or literal.
func (c *Cursor) State() State {
	return c.state
}

func (c *Cursor) peekN(n int) byte {
	if c.pos+n >= len(c.src) {
		return 0
	}
	return c.src[c.pos+n]
}

func (c *Cursor) atEnd() bool {
	return c.pos >= len(c.src)
}

// regionStarts reports whether a non-code region begins at the cursor.
func (c *Cursor) regionStarts() bool {
	switch c.src[c.pos] {
	case '"', '\'':
		return true
	case '/':
		if c.pos+1 < len(c.src) {
			next := c.src[c.pos+1]
			return next == '/' || next == '*'
		}
	}
	return false
}

// Next returns the next region, or false once the input is exhausted.
func (c *Cursor) Next() (Region, bool) {
	if c.atEnd() {
		return Region{}, false
	}

	start := c.pos
	ch := c.src[c.pos]

	if ch == '/' && c.peekN(1) == '/' {
		return c.scanLineComment(start), true
	}
	if ch == '/' && c.peekN(1) == '*' {
		return c.scanBlockComment(start), true
	}
	if ch == '"' {
		return c.scanQuoted(start, String, '"'), true
	}
	if ch == '\'' {
		return c.scanQuoted(start, Char, '\''), true
	}
	return c.scanCode(start), true
}

func (c *Cursor) scanCode(start int) Region {
	c.state = Code
	c.pos++
	for !c.atEnd() && !c.regionStarts() {
		c.pos++
	}
	return Region{Kind: Code, Span: Span{Start: start, End: c.pos}, Terminated: true}
}

// scanLineComment consumes "//" up to, but not including, the next newline.
func (c *Cursor) scanLineComment(start int) Region {
	c.state = LineComment
	c.pos += 2
	for !c.atEnd() && c.src[c.pos] != '\n' {
		c.pos++
	}
	terminated := !c.atEnd()
	if terminated {
		c.state = Code
	}
	return Region{Kind: LineComment, Span: Span{Start: start, End: c.pos}, Terminated: terminated}
}

func (c *Cursor) scanBlockComment(start int) Region {
	c.state = BlockComment
	c.pos += 2
	for !c.atEnd() {
		if c.src[c.pos] == '*' && c.pos+1 < len(c.src) && c.src[c.pos+1] == '/' {
			c.pos += 2
			c.state = Code
			return Region{Kind: BlockComment, Span: Span{Start: start, End: c.pos}, Terminated: true}
		}
		c.pos++
	}
	return Region{Kind: BlockComment, Span: Span{Start: start, End: c.pos}, Terminated: false}
}

// scanQuoted consumes a string or character literal. A backslash always
// swallows the byte after it, so \" and \\ never close the literal.
func (c *Cursor) scanQuoted(start int, kind State, quote byte) Region {
	c.state = kind
	c.pos++
	for !c.atEnd() {
		ch := c.src[c.pos]
		if ch == '\\' {
			c.pos = min(c.pos+2, len(c.src))
			continue
		}
		c.pos++
		if ch == quote {
			c.state = Code
			return Region{Kind: kind, Span: Span{Start: start, End: c.pos}, Terminated: true}
		}
	}
	return Region{Kind: kind, Span: Span{Start: start, End: c.pos}, Terminated: false}
}

// Scan splits src into regions in source order.
func Scan(src []byte) []Region {
	var regions []Region
	c := NewCursor(src)
	for {
		r, ok := c.Next()
		if !ok {
			return regions
		}
		regions = append(regions, r)
	}
}

// LineCol converts a byte offset into a 0-based line and byte column.
func LineCol(src []byte, offset int) (line, col int) {
	offset = min(max(offset, 0), len(src))
	lineStart := 0
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart
}

// Offset converts a 0-based line and byte column back into an offset,
// clamping to the end of the line and the end of the buffer.
func Offset(src []byte, line, col int) int {
	pos := 0
	for l := 0; l < line; l++ {
		i := pos
		for i < len(src) && src[i] != '\n' {
			i++
		}
		if i >= len(src) {
			return len(src)
		}
		pos = i + 1
	}
	end := pos
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return min(pos+max(col, 0), end)
}
