package format

import (
	"slices"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// TreeData answers questions about the original source of a tree.
type TreeData interface {
	// TextBetween returns the original text from the end of a (or the start
	// of the file when a is nil) to the start of b (or the end of the file
	// when b is nil).
	TextBetween(a, b *syntax.Token) string

	// OriginalColumn returns the zero-based column of tok on its source
	// line, expanding tabs.
	OriginalColumn(tabSize int, tok *syntax.Token) int
}

// NewTreeData picks the text-backed strategy when the tree carries its
// source and the token-walking strategy otherwise.
func NewTreeData(tree *syntax.Tree) TreeData {
	if tree.IsDetached() {
		return &nodeTreeData{tree: tree}
	}
	return &textTreeData{tree: tree}
}

// textTreeData slices the source buffer directly.
type textTreeData struct {
	tree *syntax.Tree
}

func (d *textTreeData) TextBetween(a, b *syntax.Token) string {
	start, end := 0, len(d.tree.Content)
	if a != nil {
		start = a.End()
	}
	if b != nil {
		end = b.Offset
	}
	if start >= end {
		return ""
	}
	return string(d.tree.Content[start:end])
}

func (d *textTreeData) OriginalColumn(tabSize int, tok *syntax.Token) int {
	content := d.tree.Content
	lineStart := tok.Offset
	for lineStart > 0 && content[lineStart-1] != '\n' && content[lineStart-1] != '\r' {
		lineStart--
	}
	return advanceColumn(0, string(content[lineStart:tok.Offset]), tabSize)
}

// nodeTreeData rebuilds text by navigating tokens and their trivia. It
// serves detached trees that have no source buffer.
type nodeTreeData struct {
	tree *syntax.Tree
}

func (d *nodeTreeData) TextBetween(a, b *syntax.Token) string {
	var sb strings.Builder

	next := d.tree.Tokens[0]
	if a != nil {
		if b != nil && b.Index <= a.Index {
			return ""
		}
		sb.WriteString(a.TrailingText())
		next = d.tree.NextToken(a)
	}

	for tok := next; tok != nil && tok != b; tok = d.tree.NextToken(tok) {
		sb.WriteString(tok.FullText())
	}

	if b != nil {
		sb.WriteString(b.LeadingText())
	}

	return sb.String()
}

func (d *nodeTreeData) OriginalColumn(tabSize int, tok *syntax.Token) int {
	// Collect text backwards until a line break is found, then measure it
	// forwards so tab stops are computed from the line start.
	var pieces []string

	pieces = append(pieces, tok.LeadingText())
	for prev := d.tree.PrevToken(tok); !hasLineBreak(pieces[len(pieces)-1]) && prev != nil; prev = d.tree.PrevToken(prev) {
		pieces = append(pieces, prev.FullText())
	}

	slices.Reverse(pieces)
	line := strings.Join(pieces, "")
	if idx := strings.LastIndexAny(line, "\r\n"); idx >= 0 {
		line = line[idx+1:]
	}
	return advanceColumn(0, line, tabSize)
}

func hasLineBreak(text string) bool {
	return strings.ContainsAny(text, "\r\n")
}
