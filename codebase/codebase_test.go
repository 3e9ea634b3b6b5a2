package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/cnote/lexer"
	"github.com/dhamidi/cnote/license"
	"github.com/dhamidi/cnote/project"
)

const sample = `/**
 * @brief Adds two numbers.
 * @param a first
 * @return the sum
 */
int add(int a, int b);

int helper(void) { // private
	return 0;
}
`

func TestHoverText(t *testing.T) {
	c := New(".", nil)
	c.UpdateFile("a.c", []byte(sample))

	text, ok := c.HoverText("a.c", 5, 6)
	if !ok {
		t.Fatal("HoverText() found nothing on the signature")
	}
	want := "## `int add(int a, int b);`\n\n" +
		"\nAdds two numbers.\n\n" +
		"- **`a`**: first\n" +
		"- **Returns**: the sum\n" +
		"\n---\n\n"
	if text != want {
		t.Errorf("HoverText() = %q, want %q", text, want)
	}

	if _, ok := c.HoverText("a.c", 1, 4); !ok {
		t.Error("HoverText() found nothing inside the comment")
	}
	if _, ok := c.HoverText("a.c", 7, 4); ok {
		t.Error("HoverText() found an entry on an undocumented function")
	}
	if _, ok := c.HoverText("missing.c", 0, 0); ok {
		t.Error("HoverText() found an entry in an unknown file")
	}
}

func TestCleaned(t *testing.T) {
	c := New(".", nil)
	c.UpdateFile("a.c", []byte(sample))

	out, changed := c.Cleaned("a.c")
	if !changed {
		t.Fatal("Cleaned() reported no change")
	}
	if strings.Contains(string(out), "// private") {
		t.Errorf("Cleaned() kept the line comment: %q", out)
	}

	c.UpdateFile("b.c", []byte("int x;\n"))
	if _, changed := c.Cleaned("b.c"); changed {
		t.Error("Cleaned() reported a change for a file without line comments")
	}
}

func TestDiagnostics(t *testing.T) {
	c := New(".", nil)
	c.SetLicense(license.BuildHeader([]byte("MIT")))

	tests := []struct {
		name    string
		content string
		codes   []string
	}{
		{"current header", "/*\n * MIT\n */\n\nint x;\n", nil},
		{"missing header", "int x;\n", []string{"license-missing"}},
		{"outdated header", "/* GPL */\nint x;\n", []string{"license-outdated"}},
		{"malformed header", "/* GPL\nint x;\n", []string{"license-malformed", "unterminated"}},
		{"open string", "/*\n * MIT\n */\n\nchar *s = \"abc", []string{"unterminated"}},
		{"line comment", "/*\n * MIT\n */\n\nint x; // y\n", []string{"line-comment"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.UpdateFile("a.c", []byte(tt.content))
			var codes []string
			for _, d := range c.Diagnostics("a.c") {
				codes = append(codes, d.Code)
			}
			if diff := cmp.Diff(tt.codes, codes); diff != "" {
				t.Errorf("Diagnostics() codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiagnosticsWithoutLicense(t *testing.T) {
	c := New(".", nil)
	c.UpdateFile("a.c", []byte("int x;\n"))
	if diags := c.Diagnostics("a.c"); len(diags) != 0 {
		t.Errorf("Diagnostics() = %v, want none", diags)
	}
}

func TestDiagnosticSpans(t *testing.T) {
	c := New(".", nil)
	c.SetLicense(license.BuildHeader([]byte("MIT")))
	c.UpdateFile("a.c", []byte("/* old */\nint x; // c\n"))

	diags := c.Diagnostics("a.c")
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(diags))
	}
	if diags[0].Span != (lexer.Span{Start: 0, End: 9}) {
		t.Errorf("license span = %+v, want {0 9}", diags[0].Span)
	}
	if diags[0].Severity != SeverityWarning {
		t.Errorf("license severity = %v, want warning", diags[0].Severity)
	}
	if diags[1].Span != (lexer.Span{Start: 17, End: 21}) {
		t.Errorf("line comment span = %+v, want {17 21}", diags[1].Span)
	}
	if diags[1].Severity != SeverityHint {
		t.Errorf("line comment severity = %v, want hint", diags[1].Severity)
	}
}

func TestSymbolName(t *testing.T) {
	tests := []struct {
		sig  string
		name string
		kind SymbolKind
	}{
		{"int add(int a, int b);", "add", SymbolFunction},
		{"static inline void *mem_alloc(size_t n) {", "mem_alloc", SymbolFunction},
		{"struct point {", "point", SymbolStruct},
		{"enum color {", "color", SymbolEnum},
		{"typedef struct point point_t;", "point_t", SymbolType},
		{"extern int counter;", "counter", SymbolVariable},
		{"static const char *names[] = {", "names", SymbolVariable},
		{"typedef struct {", "typedef struct {", SymbolType},
		{";", ";", SymbolVariable},
	}
	for _, tt := range tests {
		name, kind := SymbolName(tt.sig)
		if name != tt.name || kind != tt.kind {
			t.Errorf("SymbolName(%q) = %q, %v; want %q, %v", tt.sig, name, kind, tt.name, tt.kind)
		}
	}
}

func TestSymbols(t *testing.T) {
	c := New(".", nil)
	c.UpdateFile("b.h", []byte("/** P */\nstruct point {\n/** S */\nint sum(void);"))
	c.UpdateFile("a.c", []byte(sample))

	var names []string
	for _, s := range c.Symbols("") {
		names = append(names, s.Path+":"+s.Name)
	}
	if diff := cmp.Diff([]string{"a.c:add", "b.h:point", "b.h:sum"}, names); diff != "" {
		t.Errorf("Symbols(\"\") mismatch (-want +got):\n%s", diff)
	}

	got := c.Symbols("SU")
	if len(got) != 1 || got[0].Name != "sum" {
		t.Errorf("Symbols(\"SU\") = %+v, want sum", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.c"), sample)
	writeFile(t, filepath.Join(root, "vendor", "b.c"), sample)
	writeFile(t, filepath.Join(root, "notes.txt"), "text")

	c := New(root, project.NewMatcher([]string{"vendor"}))
	c.ScanAll()

	want := []string{filepath.Join(root, "src", "a.c")}
	if diff := cmp.Diff(want, c.Paths()); diff != "" {
		t.Errorf("Paths() mismatch (-want +got):\n%s", diff)
	}
}

func TestFileWatcherScan(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.c")
	lic := filepath.Join(root, "LICENSE_HEADER")
	writeFile(t, src, "int x;\n")
	writeFile(t, lic, "MIT\n")

	c := New(root, nil)
	w := NewFileWatcher(c, lic)
	reloaded := 0
	w.OnLicenseChange = func() { reloaded++ }

	w.scan()
	if c.GetFile(src) == nil {
		t.Fatal("watcher did not load a.c")
	}
	if got := c.License().String(); got != "/*\n * MIT\n */\n\n" {
		t.Errorf("License() = %q", got)
	}
	if reloaded != 1 {
		t.Errorf("OnLicenseChange called %d times, want 1", reloaded)
	}

	w.scan()
	if reloaded != 1 {
		t.Errorf("OnLicenseChange called again without a change")
	}

	c.SetOpen(src, true)
	c.UpdateFile(src, []byte("int edited;\n"))
	writeFile(t, src, "int disk;\n")
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(src, future, future); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if got := string(c.GetFile(src).Content); got != "int edited;\n" {
		t.Errorf("open file reloaded from disk: %q", got)
	}

	c.SetOpen(src, false)
	if err := os.Remove(src); err != nil {
		t.Fatal(err)
	}
	w.scan()
	if c.GetFile(src) != nil {
		t.Error("deleted file still known")
	}
}

func TestURIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dir with space", "a.c")
	uri := pathToURI(path)
	if !strings.HasPrefix(uri, "file://") {
		t.Fatalf("pathToURI() = %q", uri)
	}
	got, err := uriToPath(uri)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("uriToPath(pathToURI(%q)) = %q", path, got)
	}
}

func TestToRange(t *testing.T) {
	content := []byte("ab\ncde\n")
	r := toRange(content, lexer.Span{Start: 1, End: 5})
	if r.Start.Line != 0 || r.Start.Character != 1 || r.End.Line != 1 || r.End.Character != 2 {
		t.Errorf("toRange() = %+v", r)
	}
}
