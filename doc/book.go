package doc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

var nameReplacer = strings.NewReplacer("/", "_", ".", "_")

// SanitizeName turns a slash-separated relative source path into the file
// name of its book page: "src/util.h" becomes "src_util_h.md".
func SanitizeName(rel string) string {
	return nameReplacer.Replace(rel) + ".md"
}

// SummaryLine is the SUMMARY.md index entry for one source file.
func SummaryLine(rel string) string {
	return "  - [" + rel + "](api/" + SanitizeName(rel) + ")\n"
}

// Summary builds an mdBook SUMMARY.md listing rels in the given order.
func Summary(title string, rels []string) []byte {
	var sb strings.Builder
	sb.WriteString("# Summary\n\n")
	fmt.Fprintf(&sb, "[%s](README.md)\n\n", title)
	sb.WriteString("- [API Reference]()\n")
	for _, rel := range rels {
		sb.WriteString(SummaryLine(rel))
	}
	return []byte(sb.String())
}

// Readme builds the book's landing page.
func Readme(title string, rels []string) []byte {
	var sb strings.Builder
	sb.WriteString(Heading(title))
	fmt.Fprintf(&sb, "API reference generated by `cnote` from %d source files.\n", len(rels))
	return []byte(sb.String())
}

type bookFile struct {
	Book bookSection `toml:"book"`
}

type bookSection struct {
	Title    string `toml:"title"`
	Language string `toml:"language"`
	Src      string `toml:"src"`
}

// BookTOML encodes the book.toml mdBook reads from the output root.
func BookTOML(title string) ([]byte, error) {
	var buf bytes.Buffer
	cfg := bookFile{Book: bookSection{Title: title, Language: "en", Src: "src"}}
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode book.toml: %w", err)
	}
	return buf.Bytes(), nil
}
