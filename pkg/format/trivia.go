package format

import (
	"strings"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// TriviaData describes the separator between two adjacent tokens.
//
// Values are immutable. Mutators return a new value, or the receiver when
// the request changes nothing or cannot be honored.
type TriviaData interface {
	// LineBreaks is the number of line breaks in the separator. Zero means
	// both tokens share a line.
	LineBreaks() int

	// Spaces is the column of the second token when LineBreaks is positive,
	// and the width of the separator otherwise.
	Spaces() int

	// IsElastic reports trivia that must be reformatted regardless of shape.
	IsElastic() bool

	// IsWhitespaceOnly is false for trivia carrying comments, directives or
	// skipped text.
	IsWhitespaceOnly() bool

	// Text renders the separator.
	Text() string

	// Trivia renders the separator as trivia pieces.
	Trivia() []syntax.Trivia

	// WithSpace places both tokens on one line separated by space columns.
	WithSpace(space int) TriviaData

	// WithLine separates the tokens by line line breaks and indents the
	// second token to indentation.
	WithLine(line, indentation int) TriviaData

	// WithIndentation keeps the line breaks and moves the second token to
	// indentation. It is a no-op when the tokens share a line.
	WithIndentation(indentation int) TriviaData

	// Format returns the canonical rendering of the current shape.
	Format() TriviaData
}

// sameTrivia reports value equality as used by the change overlay.
func sameTrivia(a, b TriviaData) bool {
	if a == b {
		return true
	}
	return a.IsWhitespaceOnly() == b.IsWhitespaceOnly() &&
		a.IsElastic() == b.IsElastic() &&
		a.Text() == b.Text()
}

// Whitespace is separator trivia holding only spaces, tabs and line breaks.
type Whitespace struct {
	factory *TriviaDataFactory
	lines   int
	spaces  int
	elastic bool

	// text is the original text for trivia read from the tree, or the
	// rendering for synthesized values.
	text      string
	canonical bool
}

// LineBreaks implements TriviaData.
func (w *Whitespace) LineBreaks() int { return w.lines }

// Spaces implements TriviaData.
func (w *Whitespace) Spaces() int { return w.spaces }

// IsElastic implements TriviaData.
func (w *Whitespace) IsElastic() bool { return w.elastic }

// IsWhitespaceOnly implements TriviaData.
func (w *Whitespace) IsWhitespaceOnly() bool { return true }

// Text implements TriviaData.
func (w *Whitespace) Text() string { return w.text }

// Trivia implements TriviaData.
func (w *Whitespace) Trivia() []syntax.Trivia {
	if w.canonical {
		return w.factory.renderPieces(w.lines, w.spaces)
	}
	return splitWhitespace(w.text)
}

// WithSpace implements TriviaData.
func (w *Whitespace) WithSpace(space int) TriviaData {
	if w.lines == 0 && w.spaces == space && w.canonical && !w.elastic {
		return w
	}
	return w.factory.whitespace(0, space)
}

// WithLine implements TriviaData.
func (w *Whitespace) WithLine(line, indentation int) TriviaData {
	if w.lines == line && w.spaces == indentation && w.canonical && !w.elastic {
		return w
	}
	return w.factory.whitespace(line, indentation)
}

// WithIndentation implements TriviaData.
func (w *Whitespace) WithIndentation(indentation int) TriviaData {
	if w.lines == 0 {
		return w
	}
	return w.WithLine(w.lines, indentation)
}

// Format implements TriviaData.
func (w *Whitespace) Format() TriviaData {
	if w.canonical && !w.elastic {
		return w
	}
	return w.factory.whitespace(w.lines, w.spaces)
}

// splitWhitespace breaks raw whitespace text into whitespace and
// end-of-line pieces.
func splitWhitespace(text string) []syntax.Trivia {
	var pieces []syntax.Trivia
	for text != "" {
		idx := strings.IndexAny(text, "\r\n")
		switch {
		case idx < 0:
			pieces = append(pieces, syntax.Whitespace(text))
			text = ""
		case idx > 0:
			pieces = append(pieces, syntax.Whitespace(text[:idx]))
			text = text[idx:]
		default:
			size := 1
			if strings.HasPrefix(text, "\r\n") {
				size = 2
			}
			pieces = append(pieces, syntax.EndOfLine(text[:size]))
			text = text[size:]
		}
	}
	return pieces
}
