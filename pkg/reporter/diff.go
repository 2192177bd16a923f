package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/wsfmt/internal/ui/pretty"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// DiffReporter prints git-style unified diffs of every unformatted file.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// diffTotals accumulates the shortstat line printed after all diffs.
type diffTotals struct {
	files     int
	additions int
	deletions int
}

// Report implements Reporter. It returns the number of files with diffs.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var totals diffTotals
	if result == nil {
		return 0, nil
	}

	for _, outcome := range result.Files {
		path := displayPath(outcome)
		if outcome.Error != nil {
			fmt.Fprintln(r.bw, r.styles.FormatError(path, outcome.Error))
			continue
		}
		if !outcome.Result.Changed() {
			continue
		}

		text, err := outcome.Result.Diff()
		if err != nil {
			return totals.files, fmt.Errorf("diff %s: %w", path, err)
		}
		added, removed := outcome.Result.DiffStats()
		totals.files++
		totals.additions += added
		totals.deletions += removed

		r.printFile(path, text)
	}

	if totals.files > 0 && r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.shortstat(totals))
	}
	return totals.files, nil
}

func (r *DiffReporter) printFile(path, text string) {
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render("diff --git a/"+path+" b/"+path))
	for line := range strings.Lines(text) {
		line = strings.TrimSuffix(line, "\n")
		fmt.Fprintln(r.bw, r.lineStyle(line).Render(line))
	}
	fmt.Fprintln(r.bw)
}

// lineStyle picks the style for a diff line from its leading marker.
// File headers ("---", "+++") share the colors of removed and added lines.
func (r *DiffReporter) lineStyle(line string) lipgloss.Style {
	if line == "" {
		return r.styles.DiffContext
	}
	switch line[0] {
	case '@':
		return r.styles.DiffHunk
	case '+':
		return r.styles.DiffAdd
	case '-':
		return r.styles.DiffRemove
	default:
		return r.styles.DiffContext
	}
}

// shortstat renders totals like "git diff --shortstat".
func (r *DiffReporter) shortstat(t diffTotals) string {
	parts := []string{countNoun(t.files, "file", "files") + " changed"}
	if t.additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(countNoun(t.additions, "insertion", "insertions")+"(+)"))
	}
	if t.deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(countNoun(t.deletions, "deletion", "deletions")+"(-)"))
	}
	return strings.Join(parts, ", ")
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
