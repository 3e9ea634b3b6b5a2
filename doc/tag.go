package doc

import (
	"strings"
)

// Tag classifies one line of a doc comment.
type Tag int

const (
	Blank Tag = iota
	Plain
	Brief
	Param
	Return
	Note
	Example
)

var tagNames = map[Tag]string{
	Blank:   "Blank",
	Plain:   "Plain",
	Brief:   "Brief",
	Param:   "Param",
	Return:  "Return",
	Note:    "Note",
	Example: "Example",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "Unknown"
}

type tagHandler struct {
	tag    Tag
	match  func(word string) bool
	render func(w *bodyWriter, rest string)
}

// tagHandlers is consulted in order; the first match wins. Lines that match
// nothing are Plain.
var tagHandlers = []tagHandler{
	{Brief, wordIs("@brief"), renderBrief},
	{Param, isParamWord, renderParam},
	{Return, wordIs("@return", "@returns"), renderReturn},
	{Note, wordIs("@note"), renderNote},
	{Example, wordIs("@example"), renderExample},
}

func wordIs(names ...string) func(string) bool {
	return func(word string) bool {
		for _, name := range names {
			if word == name {
				return true
			}
		}
		return false
	}
}

// isParamWord accepts @param and the Doxygen direction forms such as
// @param[in] and @param[in,out].
func isParamWord(word string) bool {
	if word == "@param" {
		return true
	}
	return strings.HasPrefix(word, "@param[") && strings.HasSuffix(word, "]")
}

// Classify returns the tag of an already-stripped comment line and the text
// that follows the tag word.
func Classify(line string) (Tag, string) {
	_, tag, rest := lookupTag(line)
	return tag, rest
}

func lookupTag(line string) (*tagHandler, Tag, string) {
	if line == "" {
		return nil, Blank, ""
	}
	word, rest := splitWord(line)
	for i := range tagHandlers {
		if tagHandlers[i].match(word) {
			return &tagHandlers[i], tagHandlers[i].tag, rest
		}
	}
	return nil, Plain, line
}

// splitWord splits s at its first space or tab. The second result has its
// leading blanks removed.
func splitWord(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}
