package format

import (
	"strings"

	"github.com/rivo/uniseg"
)

// advanceColumn returns the column reached after writing text starting at
// column. Tabs advance to the next tab stop, line breaks reset to zero, and
// everything else advances by its grapheme display width.
func advanceColumn(column int, text string, tabSize int) int {
	if tabSize <= 0 {
		tabSize = 1
	}

	state := -1
	rest := text
	for rest != "" {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		switch cluster {
		case "\t":
			column += tabSize - column%tabSize
		case "\n", "\r\n", "\r":
			column = 0
		default:
			column += width
		}
	}
	return column
}

// lastLineWidth returns the display width of text after its last line break
// and whether text contained a line break at all.
func lastLineWidth(text string, tabSize int) (int, bool) {
	idx := strings.LastIndexAny(text, "\r\n")
	if idx < 0 {
		return advanceColumn(0, text, tabSize), false
	}
	return advanceColumn(0, text[idx+1:], tabSize), true
}

// countLineBreaks counts line terminators, treating CRLF as one.
func countLineBreaks(text string) int {
	count := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			count++
		case '\r':
			if i+1 >= len(text) || text[i+1] != '\n' {
				count++
			}
		}
	}
	return count
}
