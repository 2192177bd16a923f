package reporter

import (
	"io"
	"math"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// defaultMaxChanges caps the changes listed per file in text output.
const defaultMaxChanges = 20

// Options configures reporter behavior. Errors for individual files are
// part of the report and go to Writer.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext includes the source line under each listed change.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Verbose also lists unchanged and skipped files.
	Verbose bool

	// Compact uses minified JSON.
	Compact bool

	// Written selects wording for runs that rewrote files.
	Written bool

	// MaxChanges limits the changes listed per file in text output.
	// Zero means the default; negative means no limit.
	MaxChanges int
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		MaxChanges:  defaultMaxChanges,
	}
}

func (o Options) maxChanges() int {
	switch {
	case o.MaxChanges == 0:
		return defaultMaxChanges
	case o.MaxChanges < 0:
		return math.MaxInt
	default:
		return o.MaxChanges
	}
}
