// Package reporter renders formatting results for humans and tools.
package reporter

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/wsfmt/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes the result and returns how many files need (or
	// received) formatting.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// constructors maps each output format to its reporter.
//
//nolint:gochecknoglobals // Read-only lookup table.
var constructors = map[Format]func(Options) Reporter{
	FormatText:    func(o Options) Reporter { return NewTextReporter(o) },
	FormatJSON:    func(o Options) Reporter { return NewJSONReporter(o) },
	FormatDiff:    func(o Options) Reporter { return NewDiffReporter(o) },
	FormatSummary: func(o Options) Reporter { return NewSummaryReporter(o) },
}

// New creates the Reporter for opts.Format, defaulting to text on stdout.
// Machine-readable formats never contain color codes.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	build, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	if opts.Format.MachineReadable() {
		opts.Color = "never"
	}
	return build(opts), nil
}

// displayPath returns the path shown for an outcome, relative when known.
func displayPath(outcome runner.FileOutcome) string {
	if res := outcome.Result; res != nil && res.RelPath != "" {
		return res.RelPath
	}
	return outcome.Path
}

// countChanged counts the files whose formatting differs.
func countChanged(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return len(result.Changed())
}
