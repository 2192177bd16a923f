package format

import (
	"strings"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// ComplexTrivia is separator trivia containing comments, directives or
// skipped text. Its non-whitespace pieces are never altered: line breaks
// can be added and indentation changed, but existing line breaks are never
// removed and spacing on a shared line is never adjusted.
type ComplexTrivia struct {
	factory *TriviaDataFactory
	pieces  []syntax.Trivia
	lines   int
	spaces  int
	elastic bool
	text    string

	// indent is the width of the whitespace after the last line break,
	// which is where a line-starting element begins.
	indent int
}

func newComplexTrivia(factory *TriviaDataFactory, pieces []syntax.Trivia) *ComplexTrivia {
	text := syntax.TriviaText(pieces)
	width, broken := lastLineWidth(text, factory.opts.TabSize)

	complexTrivia := &ComplexTrivia{
		factory: factory,
		pieces:  pieces,
		spaces:  width,
		elastic: isElastic(pieces),
		text:    text,
	}
	if broken {
		complexTrivia.lines = countLineBreaks(text)
		idx := strings.LastIndexAny(text, "\r\n")
		rest := text[idx+1:]
		complexTrivia.indent = advanceColumn(0, rest[:len(rest)-len(strings.TrimLeft(rest, " \t"))], factory.opts.TabSize)
	}
	return complexTrivia
}

// LineBreaks implements TriviaData.
func (c *ComplexTrivia) LineBreaks() int { return c.lines }

// Spaces implements TriviaData.
func (c *ComplexTrivia) Spaces() int { return c.spaces }

// IsElastic implements TriviaData.
func (c *ComplexTrivia) IsElastic() bool { return c.elastic }

// IsWhitespaceOnly implements TriviaData.
func (c *ComplexTrivia) IsWhitespaceOnly() bool { return false }

// Text implements TriviaData.
func (c *ComplexTrivia) Text() string { return c.text }

// Trivia implements TriviaData.
func (c *ComplexTrivia) Trivia() []syntax.Trivia { return c.pieces }

// WithSpace implements TriviaData. Spacing around comments on a shared line
// cannot be expressed safely, and joining lines would swallow the text
// after a line comment, so the receiver is always returned.
func (c *ComplexTrivia) WithSpace(int) TriviaData {
	return c
}

// WithLine implements TriviaData. Requests for fewer line breaks than the
// trivia already holds keep the existing breaks.
func (c *ComplexTrivia) WithLine(line, indentation int) TriviaData {
	extra := 0
	if line > c.lines {
		extra = line - c.lines
	}
	return c.relayout(extra, indentation)
}

// WithIndentation implements TriviaData.
func (c *ComplexTrivia) WithIndentation(indentation int) TriviaData {
	if c.lines == 0 {
		return c
	}
	return c.relayout(0, indentation)
}

// Format implements TriviaData.
func (c *ComplexTrivia) Format() TriviaData {
	if c.lines == 0 {
		return c
	}
	return c.relayout(0, c.indent)
}

func (c *ComplexTrivia) relayout(extra, indentation int) TriviaData {
	pieces := layoutComplex(c.factory.opts, c.pieces, extra, indentation)
	if syntax.TriviaText(pieces) == c.text && !c.elastic {
		return c
	}
	return newComplexTrivia(c.factory, pieces)
}

// triviaGap is a run of whitespace and line breaks between two noise pieces
// (or between a token and a noise piece).
type triviaGap struct {
	breaks int
	pieces []syntax.Trivia
}

// layoutComplex re-renders a trivia list around its noise pieces.
//
// Gaps without line breaks are kept verbatim. Gaps with line breaks are
// rendered as bare line terminators followed by the indentation of what
// follows: column zero for directives, indentation for comments, skipped
// text and the second token. The extra line breaks go to the first gap that
// already breaks the line, or to the final gap when none does.
func layoutComplex(opts *Options, pieces []syntax.Trivia, extra, indentation int) []syntax.Trivia {
	var noise []syntax.Trivia
	gaps := []triviaGap{{}}
	for _, piece := range pieces {
		if piece.IsNoise() {
			noise = append(noise, piece)
			gaps = append(gaps, triviaGap{})
			continue
		}
		gap := &gaps[len(gaps)-1]
		gap.pieces = append(gap.pieces, piece)
		if piece.Kind == syntax.TriviaEndOfLine {
			gap.breaks++
		}
	}

	if extra > 0 {
		target := len(gaps) - 1
		for idx, gap := range gaps {
			if gap.breaks > 0 {
				target = idx
				break
			}
		}
		gaps[target].breaks += extra
	}

	var out []syntax.Trivia
	for idx, gap := range gaps {
		if gap.breaks == 0 {
			out = append(out, gap.pieces...)
		} else {
			for range gap.breaks {
				out = append(out, syntax.EndOfLine(opts.NewLine))
			}
			column := indentation
			if idx < len(noise) && noise[idx].Kind == syntax.TriviaDirective {
				column = 0
			}
			if column > 0 {
				out = append(out, syntax.Whitespace(opts.IndentString(column)))
			}
		}
		if idx < len(noise) {
			piece := noise[idx]
			piece.Elastic = false
			out = append(out, piece)
		}
	}
	return out
}

// hasNoise reports whether any piece carries non-whitespace content.
func hasNoise(pieces []syntax.Trivia) bool {
	for _, piece := range pieces {
		if piece.IsNoise() {
			return true
		}
	}
	return false
}

// isElastic reports whether any piece is elastic.
func isElastic(pieces []syntax.Trivia) bool {
	for _, piece := range pieces {
		if piece.Elastic {
			return true
		}
	}
	return false
}
