package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/fsutil"
	"github.com/yaklabco/wsfmt/pkg/lang"
	"github.com/yaklabco/wsfmt/pkg/syntax"
	"github.com/yaklabco/wsfmt/pkg/textedit"
)

// FileResult is the outcome of formatting one file.
type FileResult struct {
	// Path is the file path as processed.
	Path string

	// RelPath is Path relative to the working directory, for display.
	RelPath string

	// Language is the name of the profile that formatted the file.
	Language string

	// Original and Formatted hold the content before and after formatting.
	Original  []byte
	Formatted []byte

	// Changes are the byte edits that turn Original into Formatted.
	Changes []textedit.Change

	// Stats are the engine statistics for the run.
	Stats format.Stats

	// Skipped is set when the file was not formatted; SkipReason says why.
	Skipped    bool
	SkipReason string

	// BackupCreated is set when a backup was written before rewriting.
	BackupCreated bool

	// Written is set when formatted content was written back.
	Written bool
}

// Changed reports whether formatting changed the content.
func (r *FileResult) Changed() bool {
	return r != nil && len(r.Changes) > 0
}

// Diff returns a unified diff from Original to Formatted, or "" when
// nothing changed.
func (r *FileResult) Diff() (string, error) {
	if !r.Changed() {
		return "", nil
	}
	name := r.RelPath
	if name == "" {
		name = r.Path
	}
	return textedit.UnifiedDiff(name, r.Original, r.Formatted)
}

// DiffStats returns the added and removed line counts of Diff.
func (r *FileResult) DiffStats() (additions, deletions int) {
	if !r.Changed() {
		return 0, 0
	}
	return textedit.DiffStats(r.Original, r.Formatted)
}

type engineKey struct {
	language string
	newLine  string
}

// Formatter formats single files with the configured options. Engines are
// built once per language and line terminator and shared across
// goroutines.
type Formatter struct {
	registry *lang.Registry
	cfg      *config.Config
	jobs     int
	workDir  string
	lines    *LineRange

	mu      sync.Mutex
	engines map[engineKey]*format.Engine
}

// NewFormatter creates a Formatter. jobs is the engine's own parallelism
// for one file.
func NewFormatter(registry *lang.Registry, cfg *config.Config, jobs int) *Formatter {
	if registry == nil {
		registry = lang.DefaultRegistry
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Formatter{
		registry: registry,
		cfg:      cfg,
		jobs:     jobs,
		engines:  make(map[engineKey]*format.Engine),
	}
}

// WithLines restricts formatting to a range of lines.
func (f *Formatter) WithLines(lines *LineRange) *Formatter {
	f.lines = lines
	return f
}

// WithWorkingDir sets the directory paths are reported relative to.
func (f *Formatter) WithWorkingDir(dir string) *Formatter {
	f.workDir = dir
	return f
}

// FormatFile reads, formats and, when the configuration asks for it,
// rewrites one file. Binary, vendored and generated files and files of
// disabled languages come back Skipped.
func (f *Formatter) FormatFile(ctx context.Context, path string) (*FileResult, error) {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)

	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &FileResult{Path: path, RelPath: f.relPath(path)}

	if lang.Skippable(result.RelPath, content) {
		logger.Debug("skipping file", "reason", "binary, vendored or generated")
		result.Skipped = true
		result.SkipReason = "binary, vendored or generated"
		return result, nil
	}

	if err := f.format(ctx, result, content); err != nil {
		return nil, err
	}
	if result.Skipped || !result.Changed() || !f.cfg.Write {
		return result, nil
	}

	backups := fsutil.BackupConfig{
		Enabled: f.cfg.Backups.Enabled && !f.cfg.NoBackups,
		Mode:    fsutil.BackupMode(f.cfg.Backups.Mode),
	}
	created, err := fsutil.CreateBackup(ctx, snap, content, backups)
	if err != nil {
		return nil, fmt.Errorf("backup %s: %w", path, err)
	}
	result.BackupCreated = created

	if err := fsutil.Replace(ctx, snap, result.Formatted); err != nil {
		if errors.Is(err, fsutil.ErrConcurrentModification) {
			logger.Warn("file modified during formatting; not written")
			result.Skipped = true
			result.SkipReason = "file modified during formatting"
			return result, nil
		}
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	result.Written = true
	logger.Debug("file written", logging.FieldChanges, len(result.Changes))

	return result, nil
}

// FormatContent formats in-memory content. path is only used for language
// detection and display; nothing is written.
func (f *Formatter) FormatContent(ctx context.Context, path string, content []byte) (*FileResult, error) {
	result := &FileResult{Path: path, RelPath: f.relPath(path)}
	if err := f.format(ctx, result, content); err != nil {
		return nil, err
	}
	return result, nil
}

func (f *Formatter) format(ctx context.Context, result *FileResult, content []byte) error {
	logger := logging.FromContext(ctx)

	profile, err := f.profile(result.Path, content)
	if err != nil {
		return err
	}
	result.Language = profile.Name()
	result.Original = content
	result.Formatted = content

	if !f.cfg.LanguageEnabled(profile.Name()) {
		result.Skipped = true
		result.SkipReason = fmt.Sprintf("language %s is disabled", profile.Name())
		return nil
	}

	tree, err := profile.Parse(ctx, result.Path, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", result.Path, err)
	}

	engine, err := f.engine(profile, content)
	if err != nil {
		return err
	}

	var formatted *format.Result
	if f.lines != nil {
		start, end, rangeErr := lineSpan(tree, content, *f.lines)
		if rangeErr != nil {
			return fmt.Errorf("%s: %w", result.Path, rangeErr)
		}
		formatted, err = engine.FormatSpan(ctx, tree, start, end)
	} else {
		formatted, err = engine.Format(ctx, tree)
	}
	if err != nil {
		return fmt.Errorf("format %s: %w", result.Path, err)
	}

	text, err := formatted.Text()
	if err != nil {
		return fmt.Errorf("render %s: %w", result.Path, err)
	}

	result.Changes = formatted.TextChanges()
	result.Stats = formatted.Stats()
	if len(result.Changes) > 0 {
		result.Formatted = []byte(text)
	}

	logger.Debug("formatted file",
		logging.FieldPath, result.Path,
		logging.FieldLanguage, result.Language,
		logging.FieldChanges, len(result.Changes),
	)
	return nil
}

// profile picks the forced language when one is configured, otherwise
// detects it from the path and content.
func (f *Formatter) profile(path string, content []byte) (lang.Profile, error) {
	if f.cfg.Language != "" {
		profile, err := f.registry.Resolve(f.cfg.Language)
		if err != nil {
			return nil, fmt.Errorf("resolve language: %w", err)
		}
		return profile, nil
	}

	if profile, ok := f.configuredExtension(path); ok {
		return profile, nil
	}

	profile, err := f.registry.Detect(path, content)
	if err != nil {
		return nil, fmt.Errorf("detect language: %w", err)
	}
	return profile, nil
}

// configuredExtension matches extensions added through configuration.
func (f *Formatter) configuredExtension(path string) (lang.Profile, bool) {
	ext := normalizeExt(filepath.Ext(path))
	if ext == "." {
		return nil, false
	}
	for name, lc := range f.cfg.Languages {
		for _, configured := range lc.Extensions {
			if normalizeExt(configured) == ext {
				return f.registry.Get(name)
			}
		}
	}
	return nil, false
}

func (f *Formatter) engine(profile lang.Profile, content []byte) (*format.Engine, error) {
	opts := f.cfg.FormatOptions(content)
	key := engineKey{language: profile.Name(), newLine: opts.NewLine}

	f.mu.Lock()
	defer f.mu.Unlock()

	if engine, ok := f.engines[key]; ok {
		return engine, nil
	}

	rules, err := profile.Rules(f.cfg.LanguageOptions(profile.Name()))
	if err != nil {
		return nil, fmt.Errorf("%s options: %w", profile.Name(), err)
	}
	engine, err := format.NewEngine(rules, opts, format.WithJobs(f.jobs))
	if err != nil {
		return nil, fmt.Errorf("create %s engine: %w", profile.Name(), err)
	}
	f.engines[key] = engine
	return engine, nil
}

func (f *Formatter) relPath(path string) string {
	if f.workDir == "" {
		return path
	}
	rel, err := filepath.Rel(f.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// lineSpan converts a 1-based inclusive line range to a byte range.
func lineSpan(tree *syntax.Tree, content []byte, lines LineRange) (int, int, error) {
	info := tree.Lines
	if len(info) == 0 {
		info = syntax.BuildLines(content)
	}
	if lines.Start < 1 || lines.End < lines.Start || lines.End > len(info) {
		return 0, 0, fmt.Errorf("%w: lines %s outside 1-%d", format.ErrInvalidRange, lines, len(info))
	}
	return info[lines.Start-1].StartOffset, info[lines.End-1].EndOffset, nil
}
