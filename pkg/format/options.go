package format

import (
	"fmt"
	"strings"
	"sync"
)

// Options controls how whitespace is rendered.
type Options struct {
	// IndentSize is the number of columns per indentation level.
	IndentSize int

	// TabSize is the column width of a tab character.
	TabSize int

	// UseTabs renders indentation with tabs where possible.
	UseTabs bool

	// NewLine is the line terminator emitted for new line breaks.
	NewLine string
}

// DefaultOptions returns four-space indentation with LF line endings.
func DefaultOptions() Options {
	return Options{
		IndentSize: 4,
		TabSize:    4,
		UseTabs:    false,
		NewLine:    "\n",
	}
}

// Validate checks that the options can be rendered.
func (o Options) Validate() error {
	if o.IndentSize <= 0 {
		return fmt.Errorf("%w: indent size must be positive, got %d", ErrInvalidOptions, o.IndentSize)
	}
	if o.TabSize <= 0 {
		return fmt.Errorf("%w: tab size must be positive, got %d", ErrInvalidOptions, o.TabSize)
	}
	switch o.NewLine {
	case "\n", "\r\n", "\r":
	default:
		return fmt.Errorf("%w: unsupported newline %q", ErrInvalidOptions, o.NewLine)
	}
	return nil
}

// IndentString renders an indentation of the given width.
func (o *Options) IndentString(width int) string {
	if width <= 0 {
		return ""
	}
	if !o.UseTabs {
		return strings.Repeat(" ", width)
	}
	return strings.Repeat("\t", width/o.TabSize) + strings.Repeat(" ", width%o.TabSize)
}

//nolint:gochecknoglobals // process-wide interning table
var interned sync.Map // Options -> *Options

// Intern returns the canonical pointer for an options value. Equal values
// always yield the same pointer, so caches can key on identity.
func Intern(opts Options) *Options {
	if cached, ok := interned.Load(opts); ok {
		return cached.(*Options)
	}
	actual, _ := interned.LoadOrStore(opts, &opts)
	return actual.(*Options)
}
