// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/intern-ease/internal/pipeline"
	"github.com/jonathan/intern-ease/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads to the inner box width, counting runes
func pad(line string) string {
	width := boxWidth - 4
	if utf8.RuneCountInString(line) > width {
		runes := []rune(line)
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-utf8.RuneCountInString(line))
}

// PrintProgress writes one line per pipeline event. Events that carry a
// finished document also print its summary box.
//
//nolint:errcheck // writing to a terminal
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "[%s] %s\n", event.Step, event.Message)

	switch content := event.Content.(type) {
	case *types.OptimizedResume:
		p.PrintResume(content)
	case *types.CoverLetter:
		p.PrintCoverLetter(content)
	}
}

// PrintResume outputs the headline facts of an optimized resume
func (p *Printer) PrintResume(r *types.OptimizedResume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:     %s\n", r.FullName)
	fmt.Fprintf(&sb, "Title:    %s\n", r.AcademicTitle)
	fmt.Fprintf(&sb, "School:   %s (%s)\n", r.Education.School, r.Education.GraduationYear)
	sb.WriteString("\n")

	if len(r.Skills) > 0 {
		shown := min(len(r.Skills), maxItemsToShow)
		fmt.Fprintf(&sb, "Skills:   %s", strings.Join(r.Skills[:shown], ", "))
		if len(r.Skills) > shown {
			fmt.Fprintf(&sb, " +%d more", len(r.Skills)-shown)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Roles:    %d\n", len(r.Experience))
	fmt.Fprintf(&sb, "Projects: %d\n", len(r.Projects))
	fmt.Fprintf(&sb, "Awards:   %d\n", len(r.Awards))

	p.printBox("OPTIMIZED RESUME", sb.String())
}

// PrintCoverLetter outputs the recipient and the opening of each paragraph
func (p *Printer) PrintCoverLetter(c *types.CoverLetter) {
	if c == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "To:       %s, %s\n", c.Recipient.Name, c.Recipient.Company)
	fmt.Fprintf(&sb, "Date:     %s\n", c.Date)
	sb.WriteString("\n")
	for i, paragraph := range c.Body {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, paragraph)
	}

	p.printBox("COVER LETTER", sb.String())
}

// PrintResult outputs the final outcome of a run
func (p *Printer) PrintResult(result types.Result) {
	if !result.OK() {
		p.printBox("GENERATION FAILED", result.ErrorMessage())
		return
	}

	email := string(result.Data.Email)
	subject, _, _ := strings.Cut(email, "\n")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Resume:       %s\n", result.Data.OptimizedResume.FullName)
	fmt.Fprintf(&sb, "Cover letter: %d paragraphs\n", len(result.Data.CoverLetter.Body))
	fmt.Fprintf(&sb, "Email:        %s\n", subject)

	p.printBox("GENERATION COMPLETE", sb.String())
}
