// Package doc extracts "/** ... */" documentation comments from C sources
// and renders them as Markdown.
//
// Extraction pairs each doc comment with the declaration after it, up to the
// first '{' or ';'. Rendering understands a small set of Doxygen-style tags:
//
//	@brief    summary line
//	@param    list item with the parameter name in code
//	@return   list item labelled "Returns"
//	@note     block quote
//	@example  fenced C code until the next tag or the end of the comment
//
// Output can be a single document or an mdBook tree with one page per
// source file and a SUMMARY.md index.
package doc
