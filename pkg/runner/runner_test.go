package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/fsutil"
	_ "github.com/yaklabco/wsfmt/pkg/lang/brace" // Register languages
	"github.com/yaklabco/wsfmt/pkg/runner"
)

const (
	unformatted = "func add(a,b){\nreturn a+b;\n}\n"
	formatted   = "func add(a, b) {\n    return a + b;\n}\n"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestRun_CheckDoesNotWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bc"), unformatted)
	writeFile(t, filepath.Join(dir, "b.bc"), formatted)

	cfg := config.NewConfig()
	cfg.Check = true

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	assert.True(t, result.HasChanges())
	assert.False(t, result.HasErrors())

	require.Len(t, result.Files, 2)
	first := result.Files[0].Result
	require.NotNil(t, first)
	assert.Equal(t, "a.bc", first.RelPath)
	assert.Equal(t, "brace", first.Language)
	assert.Equal(t, formatted, string(first.Formatted))
	assert.False(t, result.Files[1].Result.Changed())

	assert.Equal(t, unformatted, readFile(t, filepath.Join(dir, "a.bc")))
}

func TestRun_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "src", "main.brace")
	writeFile(t, path, unformatted)

	cfg := config.NewConfig()
	cfg.Write = true

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.Equal(t, formatted, readFile(t, path))
	assert.NoFileExists(t, path+fsutil.BackupSuffix)

	again, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Stats.FilesChanged)
	assert.Equal(t, 0, again.Stats.FilesWritten)
}

func TestRun_WriteWithBackup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		noBackups  bool
		wantBackup bool
	}{
		{name: "backups enabled", wantBackup: true},
		{name: "backups disabled by flag", noBackups: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "a.bc")
			writeFile(t, path, unformatted)

			cfg := config.NewConfig()
			cfg.Write = true
			cfg.Backups.Enabled = true
			cfg.NoBackups = tt.noBackups

			result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
			require.NoError(t, err)
			require.Len(t, result.Files, 1)

			assert.Equal(t, tt.wantBackup, result.Files[0].Result.BackupCreated)
			if tt.wantBackup {
				assert.Equal(t, unformatted, readFile(t, path+fsutil.BackupSuffix))
			} else {
				assert.NoFileExists(t, path+fsutil.BackupSuffix)
			}
			assert.Equal(t, formatted, readFile(t, path))
		})
	}
}

func TestRun_Options(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bc"), "if (a) {\n    b();\n}\n")

	useTabs := true
	cfg := config.NewConfig()
	cfg.UseTabs = &useTabs
	cfg.Languages["brace"] = config.LanguageConfig{Options: map[string]any{"brace_style": "allman"}}

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)

	assert.Equal(t, "if (a)\n{\n\tb();\n}\n", string(result.Files[0].Result.Formatted))
}

func TestRun_LineRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.bc")
	writeFile(t, path, "a=1;\nb=2;\nc=3;\n")

	lines, err := runner.ParseLineRange("2")
	require.NoError(t, err)

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{path},
		WorkingDir: dir,
		Lines:      &lines,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)

	out := string(result.Files[0].Result.Formatted)
	assert.Contains(t, out, "a=1;\n")
	assert.Contains(t, out, "b = 2;\n")
	assert.Contains(t, out, "c=3;\n")
}

func TestRun_LineRangeOutOfBounds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.bc")
	writeFile(t, path, "a=1;\n")

	result, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{path},
		WorkingDir: dir,
		Lines:      &runner.LineRange{Start: 4, End: 9},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.Error(t, result.Files[0].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
}

func TestRun_LineRangeNeedsSingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bc"), "a=1;\n")
	writeFile(t, filepath.Join(dir, "b.bc"), "b=1;\n")

	_, err := runner.Run(context.Background(), runner.Options{
		Paths:      []string{dir},
		WorkingDir: dir,
		Lines:      &runner.LineRange{Start: 1, End: 1},
	})
	require.ErrorIs(t, err, runner.ErrLinesNeedSingleFile)
}

func TestRun_DisabledLanguageNotDiscovered(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bc"), unformatted)

	disabled := false
	cfg := config.NewConfig()
	cfg.Languages["brace"] = config.LanguageConfig{Enabled: &disabled}

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
}

func TestRun_UnknownLanguageErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.zz")
	writeFile(t, path, "x\n")

	result, err := runner.Run(context.Background(), runner.Options{Paths: []string{path}, WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.Error(t, result.Files[0].Error)
	assert.True(t, result.HasErrors())
}

func TestRun_ForcedLanguage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.zz")
	writeFile(t, path, unformatted)

	cfg := config.NewConfig()
	cfg.Language = "c-like"

	result, err := runner.Run(context.Background(), runner.Options{Paths: []string{path}, WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)
	assert.Equal(t, formatted, string(result.Files[0].Result.Formatted))
}

func TestRun_ConfiguredExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "script.cx"), unformatted)

	cfg := config.NewConfig()
	cfg.Languages["brace"] = config.LanguageConfig{Extensions: []string{".cx"}}

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.NoError(t, result.Files[0].Error)
	assert.Equal(t, "brace", result.Files[0].Result.Language)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.bc"), unformatted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatter_FormatContent(t *testing.T) {
	t.Parallel()

	formatter := runner.NewFormatter(nil, nil, 1)
	result, err := formatter.FormatContent(context.Background(), "stdin.bc", []byte(unformatted))
	require.NoError(t, err)

	assert.True(t, result.Changed())
	assert.Equal(t, formatted, string(result.Formatted))

	diff, err := result.Diff()
	require.NoError(t, err)
	assert.Contains(t, diff, "+    return a + b;")

	additions, deletions := result.DiffStats()
	assert.Positive(t, additions)
	assert.Positive(t, deletions)
}

func TestParseLineRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    runner.LineRange
		wantErr bool
	}{
		{input: "3", want: runner.LineRange{Start: 3, End: 3}},
		{input: "2:7", want: runner.LineRange{Start: 2, End: 7}},
		{input: " 1 : 1 ", want: runner.LineRange{Start: 1, End: 1}},
		{input: "0:3", wantErr: true},
		{input: "5:2", wantErr: true},
		{input: "a:b", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := runner.ParseLineRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) runner.LineRange {
	t.Helper()
	r, err := runner.ParseLineRange(s)
	require.NoError(t, err)
	return r
}
