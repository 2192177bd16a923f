package lang_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/lang"
	"github.com/yaklabco/wsfmt/pkg/syntax"
)

type stubProfile struct {
	name       string
	extensions []string
	aliases    []string
}

func (p stubProfile) Name() string                   { return p.name }
func (p stubProfile) Extensions() []string           { return p.extensions }
func (p stubProfile) Aliases() []string              { return p.aliases }
func (p stubProfile) DefaultOptions() map[string]any { return nil }

func (p stubProfile) Parse(context.Context, string, []byte) (*syntax.Tree, error) {
	return nil, nil
}

func (p stubProfile) Rules(map[string]any) ([]format.Rule, error) {
	return nil, nil
}

func newTestRegistry() *lang.Registry {
	registry := lang.NewRegistry()
	registry.Register(stubProfile{name: "fake", extensions: []string{".fake", ".FK"}, aliases: []string{"fakelang"}})
	registry.Register(stubProfile{name: "python", extensions: []string{".py"}})
	return registry
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()

	tests := []struct {
		name   string
		lookup string
		want   string
		found  bool
	}{
		{name: "canonical", lookup: "fake", want: "fake", found: true},
		{name: "case insensitive", lookup: "Python", want: "python", found: true},
		{name: "alias", lookup: "FakeLang", want: "fake", found: true},
		{name: "unknown", lookup: "cobol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			profile, ok := registry.Get(tt.lookup)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, profile.Name())
			}
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()

	_, err := registry.Resolve("cobol")
	require.ErrorIs(t, err, lang.ErrUnknownLanguage)
	assert.Contains(t, err.Error(), "cobol")
}

func TestRegistry_ForExtension(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()

	profile, ok := registry.ForExtension("dir/file.FAKE")
	require.True(t, ok)
	assert.Equal(t, "fake", profile.Name())

	profile, ok = registry.ForExtension("x.fk")
	require.True(t, ok)
	assert.Equal(t, "fake", profile.Name())

	_, ok = registry.ForExtension("Makefile")
	assert.False(t, ok)
}

func TestRegistry_Listing(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()

	var names []string
	for _, profile := range registry.Profiles() {
		names = append(names, profile.Name())
	}
	assert.Equal(t, []string{"fake", "python"}, names)
	assert.Equal(t, []string{".fake", ".fk", ".py"}, registry.Extensions())
}

func TestRegistry_ReplaceByName(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()
	registry.Register(stubProfile{name: "FAKE", extensions: []string{".fake2"}})

	profile, ok := registry.Get("fake")
	require.True(t, ok)
	assert.Equal(t, []string{".fake2"}, profile.Extensions())
	assert.Len(t, registry.Profiles(), 2)
}
