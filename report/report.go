// Package report prints the per-file status lines cnote shows to operators.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes status lines to w. Colors are used only when w is a
// terminal that supports them.
type Printer struct {
	w      io.Writer
	title  lipgloss.Style
	ok     lipgloss.Style
	change lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
}

func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		title:  r.NewStyle().Bold(true),
		ok:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"}),
		change: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}),
		muted:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}),
		warn:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}),
	}
}

func (p *Printer) line(style lipgloss.Style, label, text string) {
	fmt.Fprintf(p.w, "  %s %s\n", style.Render(label+":"), text)
}

// Processing announces the file about to be cleaned.
func (p *Printer) Processing(path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.title.Render("Processing:"), path)
}

// Running shows an external command line.
func (p *Printer) Running(command string) {
	p.line(p.muted, "Running", command)
}

// Excluding reports a path skipped because of pattern.
func (p *Printer) Excluding(path, pattern string) {
	p.line(p.muted, "Excluding", fmt.Sprintf("%s (matches '%s')", path, pattern))
}

func (p *Printer) LicenseOK(path string) {
	p.line(p.ok, "License OK", path)
}

func (p *Printer) UpdatingLicense(path string) {
	p.line(p.change, "Updating license", path)
}

func (p *Printer) AddingLicense(path string) {
	p.line(p.change, "Adding license", path)
}

// Cleaned reports a file whose comments were stripped. Unchanged files are
// reported as such.
func (p *Printer) Cleaned(path string, changed bool) {
	if changed {
		p.line(p.change, "Cleaned", path)
		return
	}
	p.line(p.ok, "Unchanged", path)
}

// WouldChange is used by check modes for files that are not up to date.
func (p *Printer) WouldChange(path string) {
	p.line(p.change, "Would change", path)
}

// Warning reports a problem with one file that did not stop the run.
func (p *Printer) Warning(format string, args ...any) {
	p.line(p.warn, "Warning", fmt.Sprintf(format, args...))
}

// Info prints an indented plain line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.w, "  "+format+"\n", args...)
}

// Raw writes text as is.
func (p *Printer) Raw(text string) {
	io.WriteString(p.w, text)
}

// Summary prints the closing line of a batch run.
func (p *Printer) Summary(total, changed, failed int) {
	style := p.ok
	if failed > 0 {
		style = p.warn
	}
	text := fmt.Sprintf("%d files, %d changed, %d failed", total, changed, failed)
	fmt.Fprintln(p.w, style.Render(text))
}
