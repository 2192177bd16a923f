package pretty

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/runner"
	"github.com/yaklabco/wsfmt/pkg/textedit"
)

func TestRowFromOutcome(t *testing.T) {
	t.Parallel()

	changed := runner.FileOutcome{
		Path: "/work/a.bc",
		Result: &runner.FileResult{
			Path:      "/work/a.bc",
			RelPath:   "a.bc",
			Language:  "brace",
			Original:  []byte("a=1;\n"),
			Formatted: []byte("a = 1;\n"),
			Changes: []textedit.Change{
				{Start: 1, End: 1, NewText: " "},
				{Start: 2, End: 2, NewText: " "},
			},
		},
	}

	row := RowFromOutcome(changed)
	assert.Equal(t, TableRow{
		File: "a.bc", Language: "brace", Changes: 2,
		Additions: 1, Deletions: 1, Status: StatusChanged,
	}, row)

	failed := RowFromOutcome(runner.FileOutcome{Path: "b.bc", Error: errors.New("boom")})
	assert.Equal(t, StatusError, failed.Status)
	assert.Equal(t, "b.bc", failed.File)

	skipped := RowFromOutcome(runner.FileOutcome{Path: "c.bc", Result: &runner.FileResult{Skipped: true}})
	assert.Equal(t, StatusSkipped, skipped.Status)
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	formatter := NewTableFormatter(NewStyles(false), false, 80)

	out := formatter.FormatTable([]TableRow{
		{File: "a.bc", Language: "brace", Changes: 2, Additions: 1, Deletions: 1, Status: StatusChanged},
		{File: "b.bc", Status: StatusError},
	})

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "STATUS")
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])
	assert.Contains(t, lines[2], "+1/-1")
	assert.Contains(t, lines[2], "changed")
	assert.Equal(t, strings.Repeat("-", len(lines[3])), lines[3])
	assert.Contains(t, lines[4], "error")
	assert.Contains(t, lines[6], "Legend")
	assert.Contains(t, lines[6], "LINES = lines added/removed")

	assert.Empty(t, formatter.FormatTable(nil))
}

func TestTruncateFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		maxLen int
		want   string
	}{
		{path: "short.bc", maxLen: 20, want: "short.bc"},
		{path: "very/long/path/to/file.bc", maxLen: 12, want: "...o/file.bc"},
		{path: "abcdef", maxLen: 2, want: "ef"},
		{path: "dir/文件.bc", maxLen: 10, want: "...文件.bc"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateFilePath(tt.path, tt.maxLen))
		})
	}
}

func TestPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "  ab", padLeft("ab", 4))
	assert.Equal(t, "文 ", padRight("文", 3))
	assert.Equal(t, "toolong", padRight("toolong", 3))
}
