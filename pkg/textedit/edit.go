// Package textedit applies byte-range replacements to source text.
package textedit

import "fmt"

// Change replaces the bytes in [Start, End) with NewText.
// An insertion has Start == End; a deletion has an empty NewText.
type Change struct {
	Start   int
	End     int
	NewText string
}

// Len returns the number of replaced bytes.
func (c Change) Len() int {
	return c.End - c.Start
}

// IsInsert reports whether the change only inserts text.
func (c Change) IsInsert() bool {
	return c.Start == c.End
}

func (c Change) String() string {
	return fmt.Sprintf("[%d,%d)->%q", c.Start, c.End, c.NewText)
}

// Narrow returns the smallest change that turns oldText, located at start,
// into newText. Common prefix and suffix bytes are excluded from the range.
func Narrow(start int, oldText, newText string) Change {
	prefix := 0
	for prefix < len(oldText) && prefix < len(newText) && oldText[prefix] == newText[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(oldText)-prefix && suffix < len(newText)-prefix &&
		oldText[len(oldText)-1-suffix] == newText[len(newText)-1-suffix] {
		suffix++
	}

	return Change{
		Start:   start + prefix,
		End:     start + len(oldText) - suffix,
		NewText: newText[prefix : len(newText)-suffix],
	}
}

// Builder accumulates changes for a single document.
type Builder struct {
	changes []Change
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Replace records a replacement of [start, end).
func (b *Builder) Replace(start, end int, text string) *Builder {
	b.changes = append(b.changes, Change{Start: start, End: end, NewText: text})
	return b
}

// Insert records an insertion at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.Replace(offset, offset, text)
}

// Delete records a deletion of [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	return b.Replace(start, end, "")
}

// Changes returns the recorded changes in insertion order.
func (b *Builder) Changes() []Change {
	return b.changes
}
