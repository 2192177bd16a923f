package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/config"
	_ "github.com/yaklabco/wsfmt/pkg/lang/brace" // Register languages
)

func touch(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x;\n"), 0o644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rel := make([]string, 0, len(paths))
	for _, path := range paths {
		r, err := filepath.Rel(root, path)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	return rel
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	touch(t, root,
		"main.bc",
		"lib/util.brace",
		"lib/README.md",
		".hidden/secret.bc",
		"lib/.dot.bc",
		"vendor/dep/dep.bc",
		"gen/out.gen.bc",
	)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "whole tree",
			opts: Options{},
			want: []string{"gen/out.gen.bc", "lib/util.brace", "main.bc", "vendor/dep/dep.bc"},
		},
		{
			name: "exclude directory with double star",
			opts: Options{ExcludeGlobs: []string{"vendor/**"}},
			want: []string{"gen/out.gen.bc", "lib/util.brace", "main.bc"},
		},
		{
			name: "bare pattern matches any segment",
			opts: Options{ExcludeGlobs: []string{"*.gen.bc", "lib"}},
			want: []string{"main.bc", "vendor/dep/dep.bc"},
		},
		{
			name: "explicit file kept regardless of extension",
			opts: Options{Paths: []string{"lib/README.md", "main.bc", "main.bc"}},
			want: []string{"lib/README.md", "main.bc"},
		},
		{
			name: "explicit file excluded",
			opts: Options{Paths: []string{"main.bc"}, ExcludeGlobs: []string{"main.*"}},
			want: []string{},
		},
		{
			name: "configured extension",
			opts: Options{
				Paths: []string{"lib"},
				Config: &config.Config{Languages: map[string]config.LanguageConfig{
					"brace": {Extensions: []string{"md"}},
				}},
			},
			want: []string{"lib/README.md", "lib/util.brace"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = root

			files, err := Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relAll(t, root, files))
		})
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := Discover(context.Background(), Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"does-not-exist"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	touch(t, outside, "linked/inner.bc")
	touch(t, root, "a.bc")

	if err := os.Symlink(filepath.Join(outside, "linked"), filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := Discover(context.Background(), Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = Discover(context.Background(), Options{WorkingDir: root, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{path: "vendor", pattern: "vendor/**", want: true},
		{path: "vendor/a/b.bc", pattern: "vendor/**", want: true},
		{path: "src/vendor/b.bc", pattern: "vendor/**", want: false},
		{path: "src/vendor/b.bc", pattern: "**/vendor/**", want: true},
		{path: "a/b/c.bc", pattern: "a/*/c.bc", want: true},
		{path: "a/b/x/c.bc", pattern: "a/*/c.bc", want: false},
		{path: "a/b/x/c.bc", pattern: "a/**/c.bc", want: true},
		{path: "deep/dir/file.gen.bc", pattern: "*.gen.bc", want: true},
		{path: "main.bc", pattern: "./main.bc", want: true},
		{path: "main.bc", pattern: "[", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"_"+tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, matchGlob(tt.path, tt.pattern))
		})
	}
}

func TestNormalizeExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".bc", normalizeExt("BC"))
	assert.Equal(t, ".brace", normalizeExt(".Brace"))
}
