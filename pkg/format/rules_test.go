package format_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/lang/brace"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

// forceLinesBefore requests a fixed line count before tokens with the given
// text and defers everything else to the rest of the chain.
type forceLinesBefore struct {
	text  string
	lines int
}

func (r *forceLinesBefore) Name() string { return "force-lines" }

func (r *forceLinesBefore) AdjustNewLinesOperation(_, cur *syntax.Token, next format.NextAdjustNewLines) *format.AdjustNewLinesOperation {
	if cur.Text == r.text {
		return format.NewLines(r.lines, format.LineForce)
	}
	return next()
}

// spaceEverywhere sets one space between every pair of real tokens.
type spaceEverywhere struct {
	option format.SpaceOption
}

func (r *spaceEverywhere) Name() string { return "space-everywhere" }

func (r *spaceEverywhere) AdjustSpacesOperation(_, cur *syntax.Token, next format.NextAdjustSpaces) *format.AdjustSpacesOperation {
	if cur.IsEOF() {
		return next()
	}
	return format.Spaces(1, r.option)
}

// staticRule returns fixed node operations at the root.
type staticRule struct {
	suppress func(tree *syntax.Tree) []*format.SuppressOperation
	indent   func(tree *syntax.Tree) []*format.IndentBlockOperation
	anchors  func(tree *syntax.Tree) []*format.AnchorIndentationOperation
	aligns   func(tree *syntax.Tree) []*format.AlignTokensOperation
	spaces   func(prev, cur *syntax.Token) *format.AdjustSpacesOperation
	lines    func(prev, cur *syntax.Token) *format.AdjustNewLinesOperation
}

func (r *staticRule) Name() string { return "static" }

func (r *staticRule) AddSuppressOperations(list []*format.SuppressOperation, node *syntax.Node, next format.NextSuppress) []*format.SuppressOperation {
	list = next(list)
	if r.suppress != nil && node.Kind == syntax.NodeRoot {
		list = append(list, r.suppress(node.Tree)...)
	}
	return list
}

func (r *staticRule) AddIndentBlockOperations(list []*format.IndentBlockOperation, node *syntax.Node, next format.NextIndentBlock) []*format.IndentBlockOperation {
	list = next(list)
	if r.indent != nil && node.Kind == syntax.NodeRoot {
		list = append(list, r.indent(node.Tree)...)
	}
	return list
}

func (r *staticRule) AddAnchorIndentationOperations(list []*format.AnchorIndentationOperation, node *syntax.Node, next format.NextAnchorIndentation) []*format.AnchorIndentationOperation {
	list = next(list)
	if r.anchors != nil && node.Kind == syntax.NodeRoot {
		list = append(list, r.anchors(node.Tree)...)
	}
	return list
}

func (r *staticRule) AddAlignTokensOperations(list []*format.AlignTokensOperation, node *syntax.Node, next format.NextAlignTokens) []*format.AlignTokensOperation {
	list = next(list)
	if r.aligns != nil && node.Kind == syntax.NodeRoot {
		list = append(list, r.aligns(node.Tree)...)
	}
	return list
}

func (r *staticRule) AdjustSpacesOperation(prev, cur *syntax.Token, next format.NextAdjustSpaces) *format.AdjustSpacesOperation {
	if r.spaces != nil {
		if op := r.spaces(prev, cur); op != nil {
			return op
		}
	}
	return next()
}

func (r *staticRule) AdjustNewLinesOperation(prev, cur *syntax.Token, next format.NextAdjustNewLines) *format.AdjustNewLinesOperation {
	if r.lines != nil {
		if op := r.lines(prev, cur); op != nil {
			return op
		}
	}
	return next()
}

func tokenByText(tree *syntax.Tree, text string) *syntax.Token {
	for _, tok := range tree.Tokens {
		if tok.Text == text {
			return tok
		}
	}
	return nil
}

func TestEngine_CommentLinesSurviveLineChanges(t *testing.T) {
	t.Parallel()

	src := "{\n    a;\n    // comment\n    b;\n}\n"

	tests := []struct {
		name  string
		lines int
		want  string
	}{
		{name: "more lines", lines: 3, want: "{\n    a;\n\n    // comment\n    b;\n}\n"},
		{name: "same lines", lines: 2, want: src},
		{name: "fewer lines keep existing breaks", lines: 1, want: src},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rules := append([]format.Rule{&forceLinesBefore{text: "b", lines: tt.lines}}, brace.Rules(brace.DefaultOptions())...)
			result, text := formatText(t, newEngine(t, rules), parseBrace(t, src))
			assert.Equal(t, tt.want, text)
			assert.Contains(t, text, "\n    // comment\n")
			assert.Equal(t, tt.want != src, result.ContainsChanges())
		})
	}
}

func TestEngine_SpacingAroundCommentsIsRejected(t *testing.T) {
	t.Parallel()

	result, text := formatText(t, newEngine(t, brace.Rules(brace.DefaultOptions())), parseBrace(t, "x=a /* c */+b;"))
	assert.Equal(t, "x = a /* c */+ b;\n", text)
	assert.Equal(t, 1, result.Stats().Rejected)
}

func TestEngine_SuppressNoSpacing(t *testing.T) {
	t.Parallel()

	tree := parseBrace(t, "a=b;c=d;")
	suppress := &staticRule{suppress: func(tree *syntax.Tree) []*format.SuppressOperation {
		return []*format.SuppressOperation{
			format.NewSuppressOperation(tree.Tokens[4], tree.Tokens[7], format.SuppressNoSpacing),
		}
	}}

	_, text := formatText(t, newEngine(t, []format.Rule{suppress, &spaceEverywhere{option: format.SpaceForce}}), tree)
	assert.Equal(t, "a = b ; c=d;", text)
}

func TestEngine_SuppressNoSpacingKeepsLineOperations(t *testing.T) {
	t.Parallel()

	tree := parseBrace(t, "a=b;c=d;")
	suppress := &staticRule{suppress: func(tree *syntax.Tree) []*format.SuppressOperation {
		return []*format.SuppressOperation{
			format.NewSuppressOperation(tree.Tokens[0], tree.Tokens[7], format.SuppressNoSpacing),
		}
	}}
	rules := []format.Rule{suppress, &forceLinesBefore{text: "c", lines: 1}, &spaceEverywhere{option: format.SpaceForce}}

	_, text := formatText(t, newEngine(t, rules), tree)
	assert.Equal(t, "a=b;\nc=d;", text)
}

func TestEngine_SuppressNoWrappingKeepsLines(t *testing.T) {
	t.Parallel()

	tree := parseBrace(t, "a=b;c=d;")
	suppress := &staticRule{suppress: func(tree *syntax.Tree) []*format.SuppressOperation {
		return []*format.SuppressOperation{
			format.NewSuppressOperation(tree.Tokens[0], tree.Tokens[7], format.SuppressNoWrapping),
		}
	}}
	rules := []format.Rule{suppress, &forceLinesBefore{text: "c", lines: 1}, &spaceEverywhere{option: format.SpaceForce}}

	_, text := formatText(t, newEngine(t, rules), tree)
	assert.Equal(t, "a = b ; c = d ;", text)
}

func TestEngine_SingleLineSpacingKeepsElasticLineBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		option format.SpaceOption
		want   string
	}{
		{name: "force if on single line", option: format.SpaceForceIfOnSingleLine, want: "a\nb"},
		{name: "preserve", option: format.SpacePreserve, want: "a\nb"},
		{name: "force joins lines", option: format.SpaceForce, want: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			kind := syntax.TokenFirstLanguageKind
			tree := syntax.NewTree("elastic", []*syntax.Token{
				{Kind: kind, Text: "a", Trailing: []syntax.Trivia{{Kind: syntax.TriviaEndOfLine, Text: "\n", Elastic: true}}},
				{Kind: kind, Text: "b"},
			}, nil)

			_, text := formatText(t, newEngine(t, []format.Rule{&spaceEverywhere{option: tt.option}}), tree)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestEngine_ElasticTriviaAndSuppression(t *testing.T) {
	t.Parallel()

	build := func() *syntax.Tree {
		kind := syntax.TokenFirstLanguageKind
		return syntax.NewTree("elastic", []*syntax.Token{
			{Kind: kind, Text: "a", Trailing: []syntax.Trivia{{Kind: syntax.TriviaWhitespace, Text: "   ", Elastic: true}}},
			{Kind: kind, Text: "b", Trailing: []syntax.Trivia{syntax.Whitespace("   ")}},
			{Kind: kind, Text: "c"},
		}, nil)
	}

	tests := []struct {
		name   string
		option format.SuppressOption
		want   string
	}{
		{name: "no spacing leaves elastic trivia formattable", option: format.SuppressNoSpacing, want: "a b   c"},
		{name: "disabled formatting freezes everything", option: format.SuppressDisableFormatting, want: "a   b   c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := build()
			suppress := &staticRule{suppress: func(tree *syntax.Tree) []*format.SuppressOperation {
				return []*format.SuppressOperation{
					format.NewSuppressOperation(tree.Tokens[0], tree.Tokens[2], tt.option),
				}
			}}
			rules := []format.Rule{suppress, &spaceEverywhere{option: format.SpaceForceIfOnSingleLine}}

			_, text := formatText(t, newEngine(t, rules), tree)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestEngine_IndentationModes(t *testing.T) {
	t.Parallel()

	breakBeforeB := func(_, cur *syntax.Token) *format.AdjustNewLinesOperation {
		if cur.Text == "b" {
			return format.NewLines(1, format.LinePreserve)
		}
		return nil
	}

	tests := []struct {
		name   string
		indent func(tree *syntax.Tree) []*format.IndentBlockOperation
		want   string
	}{
		{
			name: "relative to base token",
			indent: func(tree *syntax.Tree) []*format.IndentBlockOperation {
				b := tokenByText(tree, "b")
				return []*format.IndentBlockOperation{
					format.NewRelativeIndentBlockOperation(tokenByText(tree, "("), b, b, 1, format.IndentRelativePosition),
				}
			},
			want: "foo(a,\n       b);",
		},
		{
			name: "relative to first token on base line",
			indent: func(tree *syntax.Tree) []*format.IndentBlockOperation {
				b := tokenByText(tree, "b")
				return []*format.IndentBlockOperation{
					format.NewRelativeIndentBlockOperation(tokenByText(tree, "("), b, b, 1, format.IndentRelativeToFirstTokenOnBaseTokenLine),
				}
			},
			want: "foo(a,\n    b);",
		},
		{
			name: "absolute column",
			indent: func(tree *syntax.Tree) []*format.IndentBlockOperation {
				b := tokenByText(tree, "b")
				return []*format.IndentBlockOperation{format.NewAbsoluteIndentBlockOperation(b, b, 2)}
			},
			want: "foo(a,\n  b);",
		},
		{
			name: "nested context blocks",
			indent: func(tree *syntax.Tree) []*format.IndentBlockOperation {
				return []*format.IndentBlockOperation{
					format.NewIndentBlockOperation(tree.Tokens[0], tree.EOF(), 1),
					format.NewIndentBlockOperation(tokenByText(tree, "a"), tokenByText(tree, ")"), 2),
				}
			},
			want: "foo(a,\n            b);",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule := &staticRule{indent: tt.indent, lines: breakBeforeB}
			_, text := formatText(t, newEngine(t, []format.Rule{rule}), parseBrace(t, "foo(a,\nb);"))
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestEngine_DynamicSpacing(t *testing.T) {
	t.Parallel()

	rule := &staticRule{
		indent: func(tree *syntax.Tree) []*format.IndentBlockOperation {
			eq := tokenByText(tree, "=")
			return []*format.IndentBlockOperation{format.NewAbsoluteIndentBlockOperation(eq, eq, 10)}
		},
		spaces: func(_, cur *syntax.Token) *format.AdjustSpacesOperation {
			if cur.Text == "=" {
				return format.Spaces(1, format.SpaceDynamicToIndentation)
			}
			return nil
		},
	}

	_, text := formatText(t, newEngine(t, []format.Rule{rule}), parseBrace(t, "x=1;\nlonger_name=2;"))
	assert.Equal(t, "x         =1;\nlonger_name =2;", text)
}

func TestEngine_RuleCanHideLaterRules(t *testing.T) {
	t.Parallel()

	// A rule that never calls next silences the language's spacing.
	silence := &staticRule{spaces: func(_, _ *syntax.Token) *format.AdjustSpacesOperation {
		return format.Spaces(0, format.SpaceForceIfOnSingleLine)
	}}
	opts := brace.DefaultOptions()
	opts.InsertFinalNewline = false

	rules := append([]format.Rule{silence}, brace.Rules(opts)...)
	_, text := formatText(t, newEngine(t, rules), parseBrace(t, "x = a + b;"))
	assert.Equal(t, "x=a+b;", text)
}

// leadingSpaces returns the indentation of every line of text.
func leadingSpaces(text string) []int {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	widths := make([]int, len(lines))
	for i, line := range lines {
		widths[i] = len(line) - len(strings.TrimLeft(line, " "))
	}
	return widths
}

func TestEngine_AlignmentCascadesIntoRelativeBlocks(t *testing.T) {
	t.Parallel()

	// Line 1 is aligned with x, which sits at column 7 of line 0. Lines 2
	// and 3 form a relative block based on a token of line 1.
	const alignColumn = 7

	tests := []struct {
		name     string
		indent   int
		base     string
		cascades bool
	}{
		{name: "moved right", indent: 2, base: "y", cascades: true},
		{name: "moved left", indent: 10, base: "y", cascades: true},
		{name: "not moved", indent: alignColumn, base: "y", cascades: true},
		{name: "base after the mover on its line", indent: 1, base: "q", cascades: true},
		{name: "base on a line without movers", indent: 3, base: "x", cascades: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := "base = x;\n" + strings.Repeat(" ", tt.indent) + "y+q;\n      z;\n    w;\n"
			rule := &staticRule{
				aligns: func(tree *syntax.Tree) []*format.AlignTokensOperation {
					return []*format.AlignTokensOperation{
						format.NewAlignTokensOperation(tokenByText(tree, "x"), []*syntax.Token{tokenByText(tree, "y")}, format.AlignToBaseToken),
					}
				},
				indent: func(tree *syntax.Tree) []*format.IndentBlockOperation {
					last := tree.Tokens[len(tree.Tokens)-2]
					return []*format.IndentBlockOperation{
						format.NewRelativeIndentBlockOperation(tokenByText(tree, tt.base), tokenByText(tree, "z"), last, 1, format.IndentRelativePosition),
					}
				},
			}

			_, text := formatText(t, newEngine(t, []format.Rule{rule}), parseBrace(t, src))

			before, after := leadingSpaces(src), leadingSpaces(text)
			require.Len(t, after, len(before))
			assert.Equal(t, alignColumn, after[1])

			delta := 0
			if tt.cascades {
				delta = alignColumn - tt.indent
			}
			for line := 2; line < len(before); line++ {
				assert.Equal(t, max(before[line]+delta, 0), after[line], "line %d", line)
			}
			assert.Equal(t, stripWhitespace(src), stripWhitespace(text))
		})
	}
}

func TestEngine_AnchorCascadesIntoRelativeBlocks(t *testing.T) {
	t.Parallel()

	const src = "a;\nb;\n  c;\n    e;\n"

	for _, column := range []int{0, 3, 8} {
		t.Run(fmt.Sprintf("anchor moved by %d", column), func(t *testing.T) {
			t.Parallel()

			rule := &staticRule{
				lines: func(_, cur *syntax.Token) *format.AdjustNewLinesOperation {
					if cur.Text == "b" {
						return format.NewLines(1, format.LineForce)
					}
					return nil
				},
				indent: func(tree *syntax.Tree) []*format.IndentBlockOperation {
					b, last := tokenByText(tree, "b"), tree.Tokens[len(tree.Tokens)-2]
					return []*format.IndentBlockOperation{
						format.NewAbsoluteIndentBlockOperation(b, b, column),
						format.NewRelativeIndentBlockOperation(tokenByText(tree, "c"), tokenByText(tree, "e"), last, 1, format.IndentRelativePosition),
					}
				},
				anchors: func(tree *syntax.Tree) []*format.AnchorIndentationOperation {
					b := tokenByText(tree, "b")
					return []*format.AnchorIndentationOperation{
						format.NewAnchorIndentationOperation(b, b, tokenByText(tree, "c")),
					}
				},
			}

			_, text := formatText(t, newEngine(t, []format.Rule{rule}), parseBrace(t, src))

			assert.Equal(t, []int{0, column, 2 + column, 4 + column}, leadingSpaces(text))
		})
	}
}
