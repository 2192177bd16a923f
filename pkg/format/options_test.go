package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

func TestIntern(t *testing.T) {
	t.Parallel()

	a := format.Intern(format.DefaultOptions())
	b := format.Intern(format.DefaultOptions())
	assert.Same(t, a, b)

	other := format.DefaultOptions()
	other.UseTabs = true
	assert.NotSame(t, a, format.Intern(other))
}

func TestEngine_OptionsAreInterned(t *testing.T) {
	t.Parallel()

	first, err := format.NewEngine(nil, format.DefaultOptions())
	require.NoError(t, err)
	second, err := format.NewEngine(nil, format.DefaultOptions())
	require.NoError(t, err)

	assert.Same(t, first.Options(), second.Options())
}

func TestIndentString(t *testing.T) {
	t.Parallel()

	spaces := format.DefaultOptions()
	tabs := format.Options{IndentSize: 4, TabSize: 8, UseTabs: true, NewLine: "\n"}

	assert.Equal(t, "", spaces.IndentString(0))
	assert.Equal(t, "      ", spaces.IndentString(6))
	assert.Equal(t, "\t\t  ", tabs.IndentString(18))
	assert.Equal(t, "    ", tabs.IndentString(4))
}

func TestTriviaDataFactory_SharesCanonicalShapes(t *testing.T) {
	t.Parallel()

	before := &syntax.Token{Text: "a", Trailing: []syntax.Trivia{syntax.Whitespace(" ")}}
	after := &syntax.Token{Text: "b"}
	broken := &syntax.Token{Text: "c", Leading: []syntax.Trivia{syntax.EndOfLine("\n"), syntax.Whitespace("    ")}}

	first := format.NewTriviaDataFactory(format.DefaultOptions())
	second := format.NewTriviaDataFactory(format.DefaultOptions())

	assert.Same(t, first.Options(), second.Options())
	assert.Same(t, format.Intern(format.DefaultOptions()), first.Options())
	assert.Same(t, first.Create(before, after), second.Create(before, after))
	assert.Same(t, first.Create(after, broken), second.Create(after, broken))

	narrow := format.DefaultOptions()
	narrow.IndentSize = 2
	third := format.NewTriviaDataFactory(narrow)
	assert.NotSame(t, first.Create(before, after), third.Create(before, after))
}

func TestTriviaDataFactory_Analysis(t *testing.T) {
	t.Parallel()

	factory := format.NewTriviaDataFactory(format.DefaultOptions())
	tok := func(leading ...syntax.Trivia) *syntax.Token {
		return &syntax.Token{Text: "x", Leading: leading}
	}
	prev := &syntax.Token{Text: "p"}

	tests := []struct {
		name       string
		leading    []syntax.Trivia
		lines      int
		spaces     int
		whitespace bool
	}{
		{name: "empty", lines: 0, spaces: 0, whitespace: true},
		{name: "tabs expand", leading: []syntax.Trivia{syntax.Whitespace(" \t")}, lines: 0, spaces: 4, whitespace: true},
		{
			name:       "indented line",
			leading:    []syntax.Trivia{syntax.EndOfLine("\r\n"), syntax.EndOfLine("\n"), syntax.Whitespace("\t  ")},
			lines:      2,
			spaces:     6,
			whitespace: true,
		},
		{
			name:    "comment",
			leading: []syntax.Trivia{syntax.Whitespace(" "), {Kind: syntax.TriviaLineComment, Text: "// c"}, syntax.EndOfLine("\n"), syntax.Whitespace("  ")},
			lines:   1,
			spaces:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := factory.Create(prev, tok(tt.leading...))
			assert.Equal(t, tt.lines, data.LineBreaks())
			assert.Equal(t, tt.spaces, data.Spaces())
			assert.Equal(t, tt.whitespace, data.IsWhitespaceOnly())
			assert.Equal(t, syntax.TriviaText(tt.leading), data.Text())
		})
	}
}
