package doc

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		comments   []string
		signatures []string
	}{
		{
			name:       "single declaration",
			input:      "/** X */\nvoid f(int a);",
			comments:   []string{" X "},
			signatures: []string{"void f(int a);"},
		},
		{
			name:       "stacked comments keep the last",
			input:      "/** A */ /** B */ void g();",
			comments:   []string{" B "},
			signatures: []string{"void g();"},
		},
		{
			name:       "brace terminates",
			input:      "/** S */\nstruct point {\n\tint x;\n};",
			comments:   []string{" S "},
			signatures: []string{"struct point {"},
		},
		{
			name:       "extra stars belong to the body",
			input:      "/*** starred */ int x;",
			comments:   []string{"* starred "},
			signatures: []string{"int x;"},
		},
		{
			name:       "empty doc comment",
			input:      "/***/ int x;",
			comments:   []string{""},
			signatures: []string{"int x;"},
		},
		{
			name:       "multiple entries in order",
			input:      "/** one */ int a;\nint skipped;\n/** two */\nint b(void) { return 0; }",
			comments:   []string{" one ", " two "},
			signatures: []string{"int a;", "int b(void) {"},
		},
		{
			name:       "terminator inside char literal",
			input:      "/** D */\nchar sep = ';';",
			comments:   []string{" D "},
			signatures: []string{"char sep = ';';"},
		},
		{
			name:       "terminator inside line comment",
			input:      "/** X */\nint f(void) // ; nope\n{",
			comments:   []string{" X "},
			signatures: []string{"int f(void) // ; nope\n{"},
		},
		{
			name:       "bare terminator",
			input:      "/** X */;",
			comments:   []string{" X "},
			signatures: []string{";"},
		},
		{
			name:  "empty block comment is not documentation",
			input: "/**/ int x;",
		},
		{
			name:  "plain block comment",
			input: "/* not docs */ int x;",
		},
		{
			name:  "marker inside string",
			input: `const char *s = "/** fake */"; int y;`,
		},
		{
			name:  "marker inside line comment",
			input: "// /** fake */\nint y;",
		},
		{
			name:  "unterminated doc comment",
			input: "/** open\nint x;",
		},
		{
			name:  "no terminator before end of input",
			input: "/** X */ int x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Extract([]byte(tt.input))
			if len(entries) != len(tt.signatures) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.signatures))
			}
			for i, e := range entries {
				if got := string(e.CommentText()); got != tt.comments[i] {
					t.Errorf("entry %d: comment = %q, want %q", i, got, tt.comments[i])
				}
				if got := string(e.SignatureText()); got != tt.signatures[i] {
					t.Errorf("entry %d: signature = %q, want %q", i, got, tt.signatures[i])
				}
			}
		})
	}
}

func TestExtractSpansReferenceSource(t *testing.T) {
	src := []byte("  /** body */\n\tint v;")
	entries := Extract(src)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Comment.Start != 5 || e.Comment.End != 11 {
		t.Errorf("Comment = %+v, want {5 11}", e.Comment)
	}
	if e.Signature.Start != 15 || e.Signature.End != len(src) {
		t.Errorf("Signature = %+v, want {15 %d}", e.Signature, len(src))
	}
	if last := src[e.Signature.End-1]; last != ';' {
		t.Errorf("signature ends with %q, want ';'", last)
	}
	src[16] = 'N'
	if !strings.HasPrefix(string(e.SignatureText()), "iNt") {
		t.Errorf("SignatureText() = %q, want a view of the source", e.SignatureText())
	}
}
