package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/wsfmt/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON layout changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string       `json:"path"`
	Language   string       `json:"language,omitempty"`
	Changed    bool         `json:"changed"`
	Written    bool         `json:"written,omitempty"`
	Skipped    bool         `json:"skipped,omitempty"`
	SkipReason string       `json:"skipReason,omitempty"`
	Additions  int          `json:"additions"`
	Deletions  int          `json:"deletions"`
	Changes    []JSONChange `json:"changes"`
	Error      string       `json:"error,omitempty"`
}

// JSONChange represents one whitespace edit.
type JSONChange struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	OldText     string `json:"oldText"`
	NewText     string `json:"newText"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int `json:"filesChecked"`
	FilesChanged int `json:"filesChanged"`
	FilesWritten int `json:"filesWritten"`
	FilesSkipped int `json:"filesSkipped"`
	FilesErrored int `json:"filesErrored"`
	TotalChanges int `json:"totalChanges"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))

	for _, outcome := range result.Files {
		fileResult := JSONFileResult{
			Path:    displayPath(outcome),
			Changes: make([]JSONChange, 0),
		}

		switch {
		case outcome.Error != nil:
			fileResult.Error = outcome.Error.Error()
			output.Summary.FilesErrored++
		case outcome.Result != nil:
			res := outcome.Result
			fileResult.Language = res.Language
			fileResult.Changed = res.Changed()
			fileResult.Written = res.Written
			fileResult.Skipped = res.Skipped
			fileResult.SkipReason = res.SkipReason
			fileResult.Additions, fileResult.Deletions = res.DiffStats()

			for i, view := range changeViews(res, false) {
				change := res.Changes[i]
				fileResult.Changes = append(fileResult.Changes, JSONChange{
					StartOffset: change.Start,
					EndOffset:   change.End,
					Line:        view.Line,
					Column:      view.Column,
					OldText:     view.OldText,
					NewText:     view.NewText,
				})
			}

			if fileResult.Changed {
				output.Summary.FilesChanged++
			}
			if res.Written {
				output.Summary.FilesWritten++
			}
			if res.Skipped {
				output.Summary.FilesSkipped++
			}
			output.Summary.TotalChanges += len(res.Changes)
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}
