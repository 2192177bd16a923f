package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/syntax"
)

const (
	kindIdent syntax.TokenKind = syntax.TokenFirstLanguageKind + iota
	kindSemi
)

// buildTree assembles "a ;\n  b;" with a trailing newline before EOF.
func buildTree(t *testing.T) *syntax.Tree {
	t.Helper()

	tokens := []*syntax.Token{
		{Kind: kindIdent, Text: "a", Trailing: []syntax.Trivia{syntax.Whitespace(" ")}},
		{Kind: kindSemi, Text: ";", Trailing: []syntax.Trivia{syntax.EndOfLine("\n")}},
		{Kind: kindIdent, Text: "b", Leading: []syntax.Trivia{syntax.Whitespace("  ")}},
		{Kind: kindSemi, Text: ";", Trailing: []syntax.Trivia{syntax.EndOfLine("\n")}},
	}

	tree := syntax.NewTree("test.br", tokens, nil)
	require.Len(t, tree.Tokens, 5)
	return tree
}

func TestNewTree_AssignsOffsetsAndContent(t *testing.T) {
	t.Parallel()

	tree := buildTree(t)

	assert.Equal(t, "a ;\n  b;\n", string(tree.Content))
	assert.Equal(t, len(tree.Content), tree.Len())

	offsets := make([]int, 0, len(tree.Tokens))
	for idx, tok := range tree.Tokens {
		assert.Equal(t, idx, tok.Index)
		offsets = append(offsets, tok.Offset)
	}
	assert.Equal(t, []int{0, 2, 6, 7, 9}, offsets)
	assert.True(t, tree.EOF().IsEOF())
	assert.Same(t, tree, tree.Root.Tree)
}

func TestTree_LineAt(t *testing.T) {
	t.Parallel()

	tree := buildTree(t)

	line, col := tree.LineAt(6)
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)

	line, col = tree.LineAt(-1)
	assert.Zero(t, line)
	assert.Zero(t, col)
}

func TestTree_DetachKeepsText(t *testing.T) {
	t.Parallel()

	tree := buildTree(t)
	detached := tree.Detach()

	assert.True(t, detached.IsDetached())
	assert.False(t, tree.IsDetached())
	assert.Equal(t, string(tree.Content), detached.Text())
	assert.Same(t, detached, detached.Root.Tree)
}

func TestTree_WithTokens(t *testing.T) {
	t.Parallel()

	tree := buildTree(t)

	tokens := make([]*syntax.Token, len(tree.Tokens))
	for idx, tok := range tree.Tokens {
		tokens[idx] = tok.Clone()
	}
	tokens[0].Trailing = nil

	rewritten := tree.WithTokens(tokens)

	assert.Equal(t, "a;\n  b;\n", string(rewritten.Content))
	assert.Equal(t, "a ;\n  b;\n", string(tree.Content), "original must not change")
	assert.Equal(t, 5, rewritten.Tokens[2].Offset)
}

func TestTree_TokensCovering(t *testing.T) {
	t.Parallel()

	tree := buildTree(t)

	tests := []struct {
		name       string
		start, end int
		wantFirst  int
		wantLast   int
	}{
		{name: "whole file", start: 0, end: 9, wantFirst: 0, wantLast: 4},
		{name: "inside trivia", start: 3, end: 5, wantFirst: 1, wantLast: 2},
		{name: "inside token", start: 6, end: 7, wantFirst: 2, wantLast: 2},
		{name: "empty range at token", start: 2, end: 2, wantFirst: 1, wantLast: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			first, last := tree.TokensCovering(tt.start, tt.end)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestToken_FullText(t *testing.T) {
	t.Parallel()

	tree := buildTree(t)
	tok := tree.Tokens[2]

	assert.Equal(t, "  b", tok.FullText())
	assert.Equal(t, 4, tok.FullStart())
	assert.Equal(t, 7, tok.FullEnd())
	assert.Equal(t, "  ", tok.LeadingText())
	assert.Same(t, tree.Tokens[1], tree.PrevToken(tok))
	assert.Same(t, tree.Tokens[3], tree.NextToken(tok))
	assert.Nil(t, tree.NextToken(tree.EOF()))
}

func TestTrivia_IsNoise(t *testing.T) {
	t.Parallel()

	assert.False(t, syntax.Whitespace(" ").IsNoise())
	assert.False(t, syntax.EndOfLine("\n").IsNoise())
	assert.True(t, syntax.Trivia{Kind: syntax.TriviaLineComment, Text: "// x"}.IsNoise())
	assert.Equal(t, "directive", syntax.TriviaDirective.String())
}

func TestNewTree_AssignsInnermostParent(t *testing.T) {
	t.Parallel()

	tokens := []*syntax.Token{
		{Kind: kindIdent, Text: "a"},
		{Kind: kindSemi, Text: ";"},
		{Kind: kindIdent, Text: "b"},
	}
	root := syntax.NewNode(syntax.NodeRoot)
	syntax.SetTokenRange(root, 0, 3)
	stmt := syntax.NewNode(syntax.NodeRoot + 1)
	syntax.SetTokenRange(stmt, 0, 1)
	syntax.AppendChild(root, stmt)

	tree := syntax.NewTree("parents.br", tokens, root)

	assert.Same(t, stmt, tree.Tokens[0].Parent)
	assert.Same(t, stmt, tree.Tokens[1].Parent)
	assert.Same(t, root, tree.Tokens[2].Parent)
	assert.Same(t, root, tree.EOF().Parent)
}
