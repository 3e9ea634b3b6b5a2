package codebase

import (
	"bytes"

	"github.com/dhamidi/cnote/lexer"
	"github.com/dhamidi/cnote/license"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is a problem found in a file, positioned by byte span.
type Diagnostic struct {
	Span     lexer.Span
	Severity Severity
	Code     string
	Message  string
}

var unterminatedMessages = map[lexer.State]string{
	lexer.BlockComment: "unterminated block comment",
	lexer.String:       "unterminated string literal",
	lexer.Char:         "unterminated character literal",
}

// Diagnostics reports license header problems, comments and literals left
// open at the end of the file, and line comments that clean would remove.
func (c *Codebase) Diagnostics(path string) []Diagnostic {
	info := c.GetFile(path)
	if info == nil {
		return nil
	}
	var diags []Diagnostic

	if header := c.License(); header != nil {
		if d, ok := licenseDiagnostic(header, info.Content); ok {
			diags = append(diags, d)
		}
	}

	for _, r := range info.Unterminated {
		diags = append(diags, Diagnostic{
			Span:     r.Span,
			Severity: SeverityWarning,
			Code:     "unterminated",
			Message:  unterminatedMessages[r.Kind],
		})
	}

	for _, r := range info.LineComments {
		diags = append(diags, Diagnostic{
			Span:     r.Span,
			Severity: SeverityHint,
			Code:     "line-comment",
			Message:  "line comment is removed by cnote clean",
		})
	}

	return diags
}

func licenseDiagnostic(header license.Header, content []byte) (Diagnostic, bool) {
	res := license.Apply(header, content)
	switch res.Status {
	case license.Added:
		return Diagnostic{
			Span:     lexer.Span{Start: 0, End: 0},
			Severity: SeverityWarning,
			Code:     "license-missing",
			Message:  "file does not start with the license header",
		}, true
	case license.Updated:
		end := bytes.Index(content, []byte("*/")) + 2
		return Diagnostic{
			Span:     lexer.Span{Start: 0, End: end},
			Severity: SeverityWarning,
			Code:     "license-outdated",
			Message:  "license header differs from the project license",
		}, true
	case license.MalformedHeader:
		return Diagnostic{
			Span:     lexer.Span{Start: 0, End: 2},
			Severity: SeverityError,
			Code:     "license-malformed",
			Message:  license.ErrMalformedHeader.Error(),
		}, true
	}
	return Diagnostic{}, false
}
