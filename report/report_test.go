package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Processing("src/a.c")
	p.Running("clang-format -i src/a.c")
	p.Excluding("third_party/x.c", "third_party")
	p.LicenseOK("a.c")
	p.UpdatingLicense("b.c")
	p.AddingLicense("c.c")
	p.Cleaned("d.c", true)
	p.Cleaned("e.c", false)
	p.WouldChange("f.c")
	p.Warning("skipping %s (%s)", "g.c", "malformed block comment at start")
	p.Info("Found %d documentation entries.", 3)
	p.Summary(9, 4, 1)

	want := strings.Join([]string{
		"Processing: src/a.c",
		"  Running: clang-format -i src/a.c",
		"  Excluding: third_party/x.c (matches 'third_party')",
		"  License OK: a.c",
		"  Updating license: b.c",
		"  Adding license: c.c",
		"  Cleaned: d.c",
		"  Unchanged: e.c",
		"  Would change: f.c",
		"  Warning: skipping g.c (malformed block comment at start)",
		"  Found 3 documentation entries.",
		"9 files, 4 changed, 1 failed",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDiff(t *testing.T) {
	got, err := Diff("a.c", []byte("int x; // c\nint y;\n"), []byte("int x; \nint y;\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a/a.c\n" +
		"+++ b/a.c\n" +
		"@@ -1,2 +1,2 @@\n" +
		"-int x; // c\n" +
		"+int x; \n" +
		" int y;\n"
	if got != want {
		t.Errorf("Diff() = %q, want %q", got, want)
	}
}

func TestDiffNoTrailingNewline(t *testing.T) {
	got, err := Diff("a.c", []byte("/* old */\nint x;"), []byte("/*\n * NEW\n */\n\nint x;"))
	if err != nil {
		t.Fatal(err)
	}
	want := "--- a/a.c\n" +
		"+++ b/a.c\n" +
		"@@ -1,2 +1,5 @@\n" +
		"-/* old */\n" +
		"+/*\n" +
		"+ * NEW\n" +
		"+ */\n" +
		"+\n" +
		" int x;\n" +
		"\\ No newline at end of file\n"
	if got != want {
		t.Errorf("Diff() = %q, want %q", got, want)
	}
}

func TestDiffLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a\n", []string{"a\n"}},
		{"a\nb\n", []string{"a\n", "b\n"}},
		{"a\nb", []string{"a\n", "b\n" + noNewline}},
		{"\n", []string{"\n"}},
	}
	for _, tt := range tests {
		got := diffLines(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("diffLines(%q) = %q, want %q", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("diffLines(%q) = %q, want %q", tt.input, got, tt.want)
				break
			}
		}
	}
}

func TestDiffEqual(t *testing.T) {
	got, err := Diff("a.c", []byte("same\n"), []byte("same\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Diff() = %q, want empty", got)
	}
}
