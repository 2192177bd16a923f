package brace_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/lang"
	"github.com/yaklabco/wsfmt/pkg/lang/brace"
)

func TestProfile_Registered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"brace", "BRACE", "braces", "c-like"} {
		profile, ok := lang.DefaultRegistry.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, brace.Name, profile.Name())
	}

	profile, ok := lang.DefaultRegistry.ForExtension("src/main.bc")
	require.True(t, ok)
	assert.Equal(t, brace.Name, profile.Name())
}

func TestProfile_FormatsThroughRegistry(t *testing.T) {
	t.Parallel()

	profile, err := lang.DefaultRegistry.Resolve("brace")
	require.NoError(t, err)

	tree, err := profile.Parse(context.Background(), "x.brace", []byte("if(a){b();}"))
	require.NoError(t, err)

	rules, err := profile.Rules(map[string]any{"keep_single_line_blocks": false})
	require.NoError(t, err)

	engine, err := format.NewEngine(rules, format.DefaultOptions())
	require.NoError(t, err)

	result, err := engine.Format(context.Background(), tree)
	require.NoError(t, err)

	text, err := result.Text()
	require.NoError(t, err)
	assert.Equal(t, "if (a) {\n    b();\n}\n", text)
}

func TestProfile_ParseToleratesSyntaxErrors(t *testing.T) {
	t.Parallel()

	tree, err := brace.Profile{}.Parse(context.Background(), "x.brace", []byte("if (a { b"))
	require.NoError(t, err)
	assert.Equal(t, "if (a { b", tree.Text())
}

func TestProfile_RulesRejectsBadOptions(t *testing.T) {
	t.Parallel()

	_, err := brace.Profile{}.Rules(map[string]any{"brace_style": "whitesmiths"})
	require.ErrorIs(t, err, brace.ErrInvalidOption)
}

func TestProfile_DefaultOptionsDecode(t *testing.T) {
	t.Parallel()

	opts, err := brace.DecodeOptions(brace.Profile{}.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, brace.DefaultOptions(), opts)
}
