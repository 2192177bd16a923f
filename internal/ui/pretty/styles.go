// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Changed   lipgloss.Style
	Unchanged lipgloss.Style
	Skipped   lipgloss.Style

	// Change listing components
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Language   lipgloss.Style
	Whitespace lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Diff styles
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader     lipgloss.Style
	TableChangedRow lipgloss.Style
	TableErrorRow   lipgloss.Style
	TableSkippedRow lipgloss.Style
	TableLegend     lipgloss.Style
	TableSeparator  lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Changed:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Unchanged: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Skipped:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Language:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Whitespace: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		SourceLine: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableChangedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Yellow text
		TableErrorRow:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),  // Red text
		TableSkippedRow: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),  // Grey text
		TableLegend:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		TableSeparator:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:           plain,
		Warning:         plain,
		Changed:         plain,
		Unchanged:       plain,
		Skipped:         plain,
		FilePath:        plain,
		Location:        plain,
		Language:        plain,
		Whitespace:      plain,
		SourceLine:      plain,
		Caret:           plain,
		DiffHeader:      plain,
		DiffHunk:        plain,
		DiffAdd:         plain,
		DiffRemove:      plain,
		DiffContext:     plain,
		SummaryTitle:    plain,
		SummaryValue:    plain,
		Success:         plain,
		Failure:         plain,
		TableHeader:     plain,
		TableChangedRow: plain,
		TableErrorRow:   plain,
		TableSkippedRow: plain,
		TableLegend:     plain,
		TableSeparator:  plain,
		Dim:             plain,
		Bold:            plain,
	}
}

// IsColorEnabled reports whether output to writer should be colorized.
// Mode is "always", "never" or "auto" (anything else means auto). Auto
// honors NO_COLOR, then FORCE_COLOR, then checks for a terminal.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force := os.Getenv("FORCE_COLOR"); force != "" && force != "0" {
		return true
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
