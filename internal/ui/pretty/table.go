package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/yaklabco/wsfmt/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // FILE, LANGUAGE, CHANGES, LINES, STATUS
	minFileWidth     = 20
	minLanguageWidth = 8
	changesWidth     = 7
	linesWidth       = 11
	minStatusWidth   = 10
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// Row statuses.
const (
	StatusChanged   = "changed"
	StatusWritten   = "written"
	StatusUnchanged = "unchanged"
	StatusSkipped   = "skipped"
	StatusError     = "error"
)

// TableRow represents one file in the summary table.
type TableRow struct {
	File      string
	Language  string
	Changes   int
	Additions int
	Deletions int
	Status    string
}

// TableFormatter formats per-file results as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// RowFromOutcome converts a runner outcome to a table row.
func RowFromOutcome(outcome runner.FileOutcome) TableRow {
	row := TableRow{File: outcome.Path}

	switch {
	case outcome.Error != nil:
		row.Status = StatusError
	case outcome.Result == nil:
		row.Status = StatusUnchanged
	default:
		res := outcome.Result
		if res.RelPath != "" {
			row.File = res.RelPath
		}
		row.Language = res.Language
		row.Changes = len(res.Changes)
		row.Additions, row.Deletions = res.DiffStats()

		switch {
		case res.Written:
			row.Status = StatusWritten
		case res.Skipped:
			row.Status = StatusSkipped
		case res.Changed():
			row.Status = StatusChanged
		default:
			row.Status = StatusUnchanged
		}
	}

	return row
}

// FormatTable formats rows as a styled table. Returns "" for no rows.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for i, row := range rows {
		if i > 0 && row.Status != rows[i-1].Status {
			builder.WriteString(t.formatSeparator(widths, lightSeparator))
			builder.WriteString("\n")
		}
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	file     int
	language int
	status   int
}

// calculateColumnWidths sizes the text columns to their content, shrinking
// the file column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		file:     minFileWidth,
		language: minLanguageWidth,
		status:   minStatusWidth,
	}

	for _, row := range rows {
		widths.file = max(widths.file, uniseg.StringWidth(row.File))
		widths.language = max(widths.language, uniseg.StringWidth(row.Language))
		widths.status = max(widths.status, len(row.Status))
	}

	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.file = max(minFileWidth, widths.file-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.file + widths.language + changesWidth + linesWidth + widths.status +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + padRight("FILE", widths.file) + "  " +
		padRight("LANGUAGE", widths.language) + "  " +
		padLeft("CHANGES", changesWidth) + "  " +
		padLeft("LINES", linesWidth) + "  " +
		padRight("STATUS", widths.status)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.calculateTotalWidth(widths)))
}

// formatRow pads every cell before styling so ANSI codes do not skew the
// columns.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	lines := ""
	if row.Additions > 0 || row.Deletions > 0 {
		lines = fmt.Sprintf("+%d/-%d", row.Additions, row.Deletions)
	}
	changes := ""
	if row.Changes > 0 {
		changes = strconv.Itoa(row.Changes)
	}

	content := " " + padRight(truncateFilePath(row.File, widths.file), widths.file) + "  " +
		padRight(row.Language, widths.language) + "  " +
		padLeft(changes, changesWidth) + "  " +
		padLeft(lines, linesWidth) + "  " +
		padRight(row.Status, widths.status)

	return t.rowStyle(row.Status).Render(content)
}

func (t *TableFormatter) rowStyle(status string) lipgloss.Style {
	switch status {
	case StatusError:
		return t.styles.TableErrorRow
	case StatusChanged:
		return t.styles.TableChangedRow
	case StatusSkipped:
		return t.styles.TableSkippedRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: LINES = lines added/removed by formatting")
	}

	changed := t.styles.TableChangedRow.Render(" changed ")
	failed := t.styles.TableErrorRow.Render(" error ")
	skipped := t.styles.TableSkippedRow.Render(" skipped ")

	return t.styles.TableLegend.Render(
		fmt.Sprintf(" Legend: %s needs formatting  %s failed  %s not formatted", changed, failed, skipped),
	)
}

// padRight pads a string to a display width. Call it before styling.
func padRight(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft pads a string on the left to a display width.
func padLeft(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// truncateFilePath shortens a path to maxLen display columns, keeping the
// end (the file name) rather than the beginning.
func truncateFilePath(path string, maxLen int) string {
	if uniseg.StringWidth(path) <= maxLen {
		return path
	}

	const ellipsis = "..."
	budget := maxLen - len(ellipsis)
	if budget <= 0 {
		budget = maxLen
	}

	// Walk clusters from the end until the budget is spent.
	var clusters []string
	graphemes := uniseg.NewGraphemes(path)
	for graphemes.Next() {
		clusters = append(clusters, graphemes.Str())
	}

	width := 0
	start := len(clusters)
	for start > 0 {
		w := uniseg.StringWidth(clusters[start-1])
		if width+w > budget {
			break
		}
		width += w
		start--
	}

	tail := strings.Join(clusters[start:], "")
	if budget == maxLen {
		return tail
	}
	return ellipsis + tail
}
