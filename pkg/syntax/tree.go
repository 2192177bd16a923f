// Package syntax models the lossless syntax trees consumed by the formatter.
// It defines:
// - Token: a lexical unit with leading and trailing trivia
// - Node: an interior node referencing a range of tokens
// - Tree: the token stream, node root, and (optionally) the source text
package syntax

import (
	"bytes"
	"sort"
)

// Tree is an immutable, lossless syntax tree.
type Tree struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full source text. It is nil for detached trees, whose
	// text is only reachable by walking tokens.
	Content []byte

	// Lines contains metadata for each line of Content.
	Lines []LineInfo

	// Tokens is the full token stream, terminated by a TokenEOF token.
	Tokens []*Token

	// Root is the root node (kind NodeRoot).
	Root *Node
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewTree assembles a tree from tokens and a root node. It assigns token
// indices and offsets, appends an EOF token if the stream lacks one,
// materializes Content, and points every node at the new tree.
func NewTree(path string, tokens []*Token, root *Node) *Tree {
	if len(tokens) == 0 || !tokens[len(tokens)-1].IsEOF() {
		tokens = append(tokens, &Token{Kind: TokenEOF})
	}

	var buf bytes.Buffer
	for idx, tok := range tokens {
		tok.Index = idx
		for _, tr := range tok.Leading {
			buf.WriteString(tr.Text)
		}
		tok.Offset = buf.Len()
		buf.WriteString(tok.Text)
		for _, tr := range tok.Trailing {
			buf.WriteString(tr.Text)
		}
	}

	if root == nil {
		root = NewNode(NodeRoot)
		SetTokenRange(root, 0, len(tokens)-1)
	}

	tree := &Tree{
		Path:    path,
		Content: buf.Bytes(),
		Tokens:  tokens,
		Root:    root,
	}
	tree.Lines = BuildLines(tree.Content)

	// Pre-order visits parents first, so inner nodes claim tokens last.
	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(n *Node) error {
		n.Tree = tree
		if !n.IsEmpty() && n.LastToken < len(tokens) {
			for _, tok := range tokens[n.FirstToken : n.LastToken+1] {
				tok.Parent = n
			}
		}
		return nil
	})

	return tree
}

// Detach returns a copy of the tree without source text. Token and node
// structure is shared-by-value with the receiver.
func (t *Tree) Detach() *Tree {
	detached := &Tree{Path: t.Path, Tokens: t.Tokens}
	detached.Root = cloneNodes(t.Root, detached)
	return detached
}

// IsDetached reports whether the tree carries no source text.
func (t *Tree) IsDetached() bool {
	return t.Content == nil
}

// WithTokens returns a new tree over a replacement token stream of the same
// shape. Offsets and content are recomputed and the node structure is copied.
func (t *Tree) WithTokens(tokens []*Token) *Tree {
	root := cloneNodes(t.Root, nil)
	return NewTree(t.Path, tokens, root)
}

// Text returns the full source text, rebuilding it from tokens when the
// tree is detached.
func (t *Tree) Text() string {
	if t.Content != nil {
		return string(t.Content)
	}
	var buf bytes.Buffer
	for _, tok := range t.Tokens {
		buf.WriteString(tok.FullText())
	}
	return buf.String()
}

// Len returns the length of the source text in bytes.
func (t *Tree) Len() int {
	if len(t.Tokens) == 0 {
		return 0
	}
	return t.Tokens[len(t.Tokens)-1].FullEnd()
}

// EOF returns the terminating token.
func (t *Tree) EOF() *Token {
	return t.Tokens[len(t.Tokens)-1]
}

// PrevToken returns the token before tok, or nil at the start of the tree.
func (t *Tree) PrevToken(tok *Token) *Token {
	if tok == nil || tok.Index == 0 {
		return nil
	}
	return t.Tokens[tok.Index-1]
}

// NextToken returns the token after tok, or nil past the EOF token.
func (t *Tree) NextToken(tok *Token) *Token {
	if tok == nil || tok.Index+1 >= len(t.Tokens) {
		return nil
	}
	return t.Tokens[tok.Index+1]
}

// TokensCovering maps the byte range [start, end) to the inclusive token
// range whose surrounding trivia intersects it. The first token is the last
// one starting at or before start; the last is the first one ending at or
// after end.
func (t *Tree) TokensCovering(start, end int) (int, int) {
	first := sort.Search(len(t.Tokens), func(i int) bool {
		return t.Tokens[i].Offset > start
	}) - 1
	if first < 0 {
		first = 0
	}

	last := sort.Search(len(t.Tokens), func(i int) bool {
		return t.Tokens[i].End() >= end
	})
	if last >= len(t.Tokens) {
		last = len(t.Tokens) - 1
	}
	if last < first {
		last = first
	}

	return first, last
}

// BuildLines constructs line metadata from content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}

			lines = append(lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes. Returns (0, 0) if the offset is out of range or the
// tree is detached.
func (t *Tree) LineAt(offset int) (int, int) {
	if offset < 0 || len(t.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(t.Content) {
		lastLine := t.Lines[len(t.Lines)-1]
		return len(t.Lines), offset - lastLine.StartOffset + 1
	}

	lineIdx := sort.Search(len(t.Lines), func(i int) bool {
		return t.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(t.Lines) {
		lineIdx = len(t.Lines) - 1
	}

	lineInfo := t.Lines[lineIdx]
	if offset < lineInfo.StartOffset {
		return 0, 0
	}

	return lineIdx + 1, offset - lineInfo.StartOffset + 1
}
