package pretty

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// ChangeView is one whitespace edit prepared for display.
type ChangeView struct {
	// Line and Column locate the edit, 1-based. Column counts bytes.
	Line   int
	Column int

	// OldText and NewText are the replaced and replacement whitespace.
	OldText string
	NewText string

	// SourceLine is the original line containing the edit, without its
	// line terminator. Empty when context is not shown.
	SourceLine string
}

// visibleWhitespace maps whitespace to printable markers.
//
//nolint:gochecknoglobals // Read-only lookup table.
var visibleWhitespace = strings.NewReplacer(
	" ", "·",
	"\t", "→",
	"\r\n", "↵",
	"\n", "↵",
	"\r", "␍",
)

// VisibleWhitespace renders whitespace with printable markers so edits to
// spaces and line breaks can be read.
func VisibleWhitespace(s string) string {
	if s == "" {
		return "∅"
	}
	return visibleWhitespace.Replace(s)
}

// FormatChange formats a single whitespace edit for terminal output.
func (s *Styles) FormatChange(change ChangeView) string {
	var builder strings.Builder

	location := s.Location.Render(fmt.Sprintf("%d:%d", change.Line, change.Column))

	var action string
	switch {
	case change.OldText == "":
		action = "insert " + s.Whitespace.Render(VisibleWhitespace(change.NewText))
	case change.NewText == "":
		action = "remove " + s.Whitespace.Render(VisibleWhitespace(change.OldText))
	default:
		action = "replace " + s.Whitespace.Render(VisibleWhitespace(change.OldText)) +
			" with " + s.Whitespace.Render(VisibleWhitespace(change.NewText))
	}

	builder.WriteString(fmt.Sprintf("  %s  %s\n", location, action))

	if change.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(change.SourceLine, change.Column))
	}

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker under
// the given byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		prefix := line[:min(column-1, len(line))]
		builder.WriteString(indent + caretPadding(prefix) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// caretPadding returns blank padding as wide as prefix on a terminal.
// Lipgloss renders a tab as four spaces.
func caretPadding(prefix string) string {
	const tabWidth = 4

	var builder strings.Builder
	graphemes := uniseg.NewGraphemes(prefix)
	for graphemes.Next() {
		cluster := graphemes.Str()
		if cluster == "\t" {
			builder.WriteString(strings.Repeat(" ", tabWidth))
			continue
		}
		builder.WriteString(strings.Repeat(" ", uniseg.StringWidth(cluster)))
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, language string, changeCount int) string {
	header := s.FilePath.Render(path)
	word := "changes"
	if changeCount == 1 {
		word = "change"
	}
	details := fmt.Sprintf("%d %s", changeCount, word)
	if language != "" {
		details = s.Language.Render(language) + s.Dim.Render(", "+details)
	} else {
		details = s.Dim.Render(details)
	}
	return header + s.Dim.Render(" (") + details + s.Dim.Render(")")
}

// FormatSkipped formats a skipped file line.
func (s *Styles) FormatSkipped(path, reason string) string {
	return s.FilePath.Render(path) + ": " + s.Skipped.Render("skipped: "+reason)
}

// FormatError formats a file that failed.
func (s *Styles) FormatError(path string, err error) string {
	return s.FilePath.Render(path) + ": " + s.Error.Render(fmt.Sprintf("error: %v", err))
}
