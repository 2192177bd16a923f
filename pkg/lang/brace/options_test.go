package brace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/lang/brace"
)

func TestDecodeOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     map[string]any
		want    brace.Options
		wantErr bool
	}{
		{
			name: "nil uses defaults",
			raw:  nil,
			want: brace.DefaultOptions(),
		},
		{
			name: "overrides",
			raw: map[string]any{
				"brace_style":            "allman",
				"space_around_operators": false,
			},
			want: brace.Options{
				BraceStyle:           brace.BraceStyleAllman,
				SpaceAroundOperators: false,
				KeepSingleLineBlocks: true,
				InsertFinalNewline:   true,
			},
		},
		{
			name:    "unknown key",
			raw:     map[string]any{"tab_width": 3},
			wantErr: true,
		},
		{
			name:    "invalid brace style",
			raw:     map[string]any{"brace_style": "gnu"},
			wantErr: true,
		},
		{
			name:    "wrong type",
			raw:     map[string]any{"insert_final_newline": []string{"yes"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := brace.DecodeOptions(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, brace.ErrInvalidOption)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptions_AsMapRoundTrips(t *testing.T) {
	t.Parallel()

	opts := brace.DefaultOptions()
	opts.BraceStyle = brace.BraceStyleAllman
	opts.KeepSingleLineBlocks = false

	decoded, err := brace.DecodeOptions(opts.AsMap())
	require.NoError(t, err)
	assert.Equal(t, opts, decoded)
}
