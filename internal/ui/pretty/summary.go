package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, singular, pluralWord string) string {
	if n == 1 {
		return singular
	}
	return pluralWord
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files would be reformatted, 9 changes (5 files checked)".
// written selects the wording for runs that rewrote files.
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, written bool) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	var parts []string
	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted"))
	case written:
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s reformatted",
			stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles))))
	default:
		parts = append(parts, s.Changed.Render(fmt.Sprintf("%d %s would be reformatted",
			stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles))))
	}

	if stats.ChangesTotal > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", stats.ChangesTotal, plural(stats.ChangesTotal, "change", "changes")))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored, plural(stats.FilesErrored, "error", "errors"))))
	}

	return strings.Join(parts, ", ") + checked + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, written bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:     " +
			s.Changed.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Skipped.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files with errors: " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total changes:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.ChangesTotal)) + "\n")
	if stats.RejectedTotal > 0 {
		builder.WriteString("  Kept around comments: " +
			s.Dim.Render(strconv.Itoa(stats.RejectedTotal)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Formatting failed with errors"))
	case stats.FilesChanged > 0 && !written:
		builder.WriteString(s.Warning.Render("Some files need formatting"))
	case stats.FilesChanged > 0:
		builder.WriteString(s.Success.Render("Files reformatted"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
