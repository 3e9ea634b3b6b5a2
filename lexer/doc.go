// Package lexer splits C/C++ source into lexical regions without parsing it.
//
// # States
//
// The cursor recognises five states:
//
//	Code          everything that is not one of the below
//	LineComment   "//" up to, not including, the next newline
//	BlockComment  "/*" through the first "*/"
//	String        '"' through the next unescaped '"'
//	Char          '\'' through the next unescaped '\''
//
// Inside a string or character literal a backslash consumes exactly one
// following byte, whatever it is. Comments do not nest. Preprocessor
// directives are ordinary code.
//
// # Fail-soft
//
// Input that ends inside a comment or literal is not an error. The last
// region is returned with Terminated set to false and Cursor.State reports
// the state the input ended in. Callers decide whether to warn.
//
// # Usage
//
//	c := lexer.NewCursor(src)
//	for {
//	    r, ok := c.Next()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(r.Kind, string(r.Bytes(src)))
//	}
package lexer
