package lang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/lang"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry()

	tests := []struct {
		name    string
		path    string
		content string
		want    string
	}{
		{
			name: "extension",
			path: "src/tool.fake",
			want: "fake",
		},
		{
			name:    "extension beats shebang",
			path:    "run.fake",
			content: "#!/usr/bin/env python3\n",
			want:    "fake",
		},
		{
			name:    "shebang alias through env",
			path:    "bin/tool",
			content: "#!/usr/bin/env -S fakelang --quiet\nx;\n",
			want:    "fake",
		},
		{
			name:    "shebang known to enry",
			path:    "bin/run",
			content: "#!/usr/bin/python3\nprint(1)\n",
			want:    "python",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			profile, err := registry.Detect(tt.path, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, profile.Name())
		})
	}
}

func TestDetect_Unknown(t *testing.T) {
	t.Parallel()

	_, err := newTestRegistry().Detect("notes.zzz", []byte("hello world\n"))
	require.ErrorIs(t, err, lang.ErrUnknownLanguage)
}

func TestSkippable(t *testing.T) {
	t.Parallel()

	assert.True(t, lang.Skippable("blob.fake", []byte{0x00, 0x01, 0x02, 0x00}))
	assert.True(t, lang.Skippable("vendor/lib/a.fake", []byte("x;\n")))
	assert.False(t, lang.Skippable("src/a.fake", []byte("x;\n")))
}
