package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/wsfmt/internal/ui/pretty"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// TextReporter lists the whitespace changes of each unformatted file.
// Clean and skipped files are only mentioned in verbose mode.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of unformatted files.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	changed := 0
	for _, outcome := range result.Files {
		if r.printOutcome(outcome) {
			changed++
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Written))
	}
	return changed, nil
}

// printOutcome writes one file's entry and reports whether it changed.
func (r *TextReporter) printOutcome(outcome runner.FileOutcome) bool {
	path := displayPath(outcome)
	res := outcome.Result

	if outcome.Error != nil {
		fmt.Fprintln(r.bw, r.styles.FormatError(path, outcome.Error))
		return false
	}
	if res == nil {
		return false
	}
	if res.Changed() {
		r.printChanges(path, res)
		return true
	}
	if !r.opts.Verbose {
		return false
	}

	if res.Skipped {
		fmt.Fprintln(r.bw, r.styles.FormatSkipped(path, res.SkipReason))
	} else {
		fmt.Fprintln(r.bw, r.styles.FilePath.Render(path)+": "+r.styles.Unchanged.Render("formatted"))
	}
	return false
}

func (r *TextReporter) printChanges(path string, res *runner.FileResult) {
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, res.Language, len(res.Changes)))

	views := changeViews(res, r.opts.ShowContext)
	shown := min(len(views), r.opts.maxChanges())
	for _, view := range views[:shown] {
		fmt.Fprint(r.bw, r.styles.FormatChange(view))
	}
	if hidden := len(views) - shown; hidden > 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("  ... and %d more", hidden)))
	}
	fmt.Fprintln(r.bw)
}
