package brace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/lang/brace"
)

func formatSource(t *testing.T, src string, opts brace.Options, fmtOpts format.Options) string {
	t.Helper()

	tree, _, err := brace.Parse(context.Background(), "test.brace", []byte(src))
	require.NoError(t, err)

	engine, err := format.NewEngine(brace.Rules(opts), fmtOpts)
	require.NoError(t, err)

	result, err := engine.Format(context.Background(), tree)
	require.NoError(t, err)

	out, err := result.Text()
	require.NoError(t, err)
	return out
}

func TestFormat_Layout(t *testing.T) {
	t.Parallel()

	allman := brace.DefaultOptions()
	allman.BraceStyle = brace.BraceStyleAllman

	expanded := brace.DefaultOptions()
	expanded.KeepSingleLineBlocks = false

	tests := []struct {
		name string
		opts brace.Options
		src  string
		want string
	}{
		{
			name: "function body",
			opts: brace.DefaultOptions(),
			src:  "func add(a,b){\nreturn a+b;\n}\n",
			want: "func add(a, b) {\n    return a + b;\n}\n",
		},
		{
			name: "k&r joins else",
			opts: brace.DefaultOptions(),
			src:  "if(a){\nb();\n}\nelse{\nc();\n}\n",
			want: "if (a) {\n    b();\n} else {\n    c();\n}\n",
		},
		{
			name: "allman splits braces",
			opts: allman,
			src:  "if (a) {\n    b();\n} else {\n    c();\n}\n",
			want: "if (a)\n{\n    b();\n}\nelse\n{\n    c();\n}\n",
		},
		{
			name: "single-line block kept",
			opts: brace.DefaultOptions(),
			src:  "if (a) { b(); }\n",
			want: "if (a) { b(); }\n",
		},
		{
			name: "single-line block expanded",
			opts: expanded,
			src:  "if (a) { b(); }\n",
			want: "if (a) {\n    b();\n}\n",
		},
		{
			name: "statements split onto lines",
			opts: brace.DefaultOptions(),
			src:  "a;b;\n\n\nc;",
			want: "a;\nb;\n\n\nc;\n",
		},
		{
			name: "embedded statement indented",
			opts: brace.DefaultOptions(),
			src:  "while (x) x = x - 1;\n",
			want: "while (x)\n    x = x - 1;\n",
		},
		{
			name: "else if stays on the else line",
			opts: brace.DefaultOptions(),
			src:  "if (a) {\n  b;\n} else   if (c) {\n  d;\n}\n",
			want: "if (a) {\n    b;\n} else if (c) {\n    d;\n}\n",
		},
		{
			name: "nested blocks",
			opts: brace.DefaultOptions(),
			src:  "func f() {\nwhile (x) {\nif (y) {\nz();\n}\n}\n}\n",
			want: "func f() {\n    while (x) {\n        if (y) {\n            z();\n        }\n    }\n}\n",
		},
		{
			name: "empty block",
			opts: brace.DefaultOptions(),
			src:  "func f() {  }\n",
			want: "func f() {}\n",
		},
		{
			name: "unary operators",
			opts: brace.DefaultOptions(),
			src:  "x=- y+! z;\n",
			want: "x = -y + !z;\n",
		},
		{
			name: "trailing whitespace and blank lines at the ends",
			opts: brace.DefaultOptions(),
			src:  "\n\n   x;   \n\n\n",
			want: "x;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatSource(t, tt.src, tt.opts, format.DefaultOptions())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_ContinuationLinesFollowStatement(t *testing.T) {
	t.Parallel()

	src := "{\nx = foo +\n      bar;\n}\n"
	want := "{\n    x = foo +\n          bar;\n}\n"

	assert.Equal(t, want, formatSource(t, src, brace.DefaultOptions(), format.DefaultOptions()))
}

func TestFormat_WrappedArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "aligned to the first argument",
			src:  "foo(a,\nb,\n    c);\n",
			want: "foo(a,\n    b,\n    c);\n",
		},
		{
			name: "first argument on its own line",
			src:  "foo(\na,\nb);\n",
			want: "foo(\n    a,\n    b);\n",
		},
		{
			name: "nested in a block",
			src:  "{\nfoo(\na,\n  b\n);\n}\n",
			want: "{\n    foo(\n        a,\n        b\n    );\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatSource(t, tt.src, brace.DefaultOptions(), format.DefaultOptions())
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_CommentsKeepTheirText(t *testing.T) {
	t.Parallel()

	src := "{\n// note\nx; // trailing\n  /* block */ y;\n#define Z\nz;\n}\n"
	want := "{\n    // note\n    x; // trailing\n    /* block */ y;\n#define Z\n    z;\n}\n"

	assert.Equal(t, want, formatSource(t, src, brace.DefaultOptions(), format.DefaultOptions()))
}

func TestFormat_FormatOffRegion(t *testing.T) {
	t.Parallel()

	src := "a=1;\n// fmt:off\nb   =  2;\n// fmt:on\nc=3;\n"
	want := "a = 1;\n// fmt:off\nb   =  2;\n// fmt:on\nc = 3;\n"

	assert.Equal(t, want, formatSource(t, src, brace.DefaultOptions(), format.DefaultOptions()))
}

func TestFormat_FormatOffRegionInBlock(t *testing.T) {
	t.Parallel()

	src := "{\na=1;\n// fmt:off\n      b   =  2;\n// fmt:on\n  c=3;\n}\n"
	want := "{\n    a = 1;\n// fmt:off\n      b   =  2;\n    // fmt:on\n    c = 3;\n}\n"

	assert.Equal(t, want, formatSource(t, src, brace.DefaultOptions(), format.DefaultOptions()))
}

func TestFormat_FormatOffToEndOfFile(t *testing.T) {
	t.Parallel()

	src := "a=1;\n// fmt:off\nb   =  2;   "
	want := "a = 1;\n// fmt:off\nb   =  2;   "

	assert.Equal(t, want, formatSource(t, src, brace.DefaultOptions(), format.DefaultOptions()))
}

func TestFormat_MissingTokensAreLeftAlone(t *testing.T) {
	t.Parallel()

	src := "x=(1+2;\ny=3;\n"
	want := "x = (1 + 2;\ny = 3;\n"

	assert.Equal(t, want, formatSource(t, src, brace.DefaultOptions(), format.DefaultOptions()))
}

func TestFormat_Tabs(t *testing.T) {
	t.Parallel()

	fmtOpts := format.DefaultOptions()
	fmtOpts.UseTabs = true

	src := "func f() {\nif (x) {\ny;\n}\n}\n"
	want := "func f() {\n\tif (x) {\n\t\ty;\n\t}\n}\n"

	assert.Equal(t, want, formatSource(t, src, brace.DefaultOptions(), fmtOpts))
}

func TestFormat_CRLF(t *testing.T) {
	t.Parallel()

	fmtOpts := format.DefaultOptions()
	fmtOpts.NewLine = "\r\n"

	src := "func f() {\r\nx;}"
	want := "func f() {\r\n    x;\r\n}\r\n"

	assert.Equal(t, want, formatSource(t, src, brace.DefaultOptions(), fmtOpts))
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	sources := []string{
		"func add(a,b){\nreturn a+b;\n}\n",
		"if(a){\nb();\n}\nelse{\nc();\n}\n",
		"{\nx = foo +\n      bar;\n}\n",
		"{\nfoo(\na,\n  b\n);\n}\n",
		"{\n// note\nx; // trailing\n  /* block */ y;\n#define Z\nz;\n}\n",
		"a;b;\n\n\nc;",
		"x=(1+2;\ny=3;\n",
	}

	for _, src := range sources {
		once := formatSource(t, src, brace.DefaultOptions(), format.DefaultOptions())
		twice := formatSource(t, once, brace.DefaultOptions(), format.DefaultOptions())
		assert.Equal(t, once, twice, "second pass changed %q", src)
	}
}
