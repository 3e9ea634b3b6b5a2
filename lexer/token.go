package lexer

// State is the lexical state the cursor is in while consuming a byte.
type State int

const (
	Code State = iota
	LineComment
	BlockComment
	String
	Char
)

var stateNames = map[State]string{
	Code:         "Code",
	LineComment:  "LineComment",
	BlockComment: "BlockComment",
	String:       "String",
	Char:         "Char",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Span is a half-open byte range [Start, End) into a source buffer.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Region is a maximal run of bytes that share one lexical state, delimiters
// included. Terminated is false only for the last region of a buffer that
// ended inside a comment or literal.
type Region struct {
	Kind       State
	Span       Span
	Terminated bool
}

func (r Region) Bytes(src []byte) []byte {
	return src[r.Span.Start:r.Span.End]
}
