// Package config defines core configuration types for wsfmt.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"bytes"
	"runtime"

	"github.com/yaklabco/wsfmt/pkg/format"
)

// NewLine selects the line terminator written for inserted line breaks.
type NewLine string

const (
	// NewLineAuto keeps the terminator the file already uses.
	NewLineAuto NewLine = "auto"
	NewLineLF   NewLine = "lf"
	NewLineCRLF NewLine = "crlf"
	NewLineCR   NewLine = "cr"
)

// IsValid reports whether n names a known terminator.
func (n NewLine) IsValid() bool {
	switch n {
	case NewLineAuto, NewLineLF, NewLineCRLF, NewLineCR:
		return true
	default:
		return false
	}
}

// Resolve returns the terminator to use for content. Auto picks the first
// line break found in content and falls back to LF.
func (n NewLine) Resolve(content []byte) string {
	switch n {
	case NewLineCRLF:
		return "\r\n"
	case NewLineCR:
		return "\r"
	case NewLineLF:
		return "\n"
	}

	idx := bytes.IndexAny(content, "\r\n")
	switch {
	case idx < 0:
		return "\n"
	case content[idx] == '\n':
		return "\n"
	case idx+1 < len(content) && content[idx+1] == '\n':
		return "\r\n"
	default:
		return "\r"
	}
}

// LanguageConfig holds per-language settings keyed by language name.
type LanguageConfig struct {
	Enabled    *bool          `yaml:"enabled,omitempty"`
	Extensions []string       `yaml:"extensions,omitempty"`
	Options    map[string]any `yaml:"options,omitempty"`
}

// IsEnabled reports whether the language should be formatted.
func (lc LanguageConfig) IsEnabled() bool {
	return lc.Enabled == nil || *lc.Enabled
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "xdg"
}

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f names a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Config is the root configuration structure for wsfmt.
type Config struct {
	// IndentSize is the number of columns per indentation level.
	IndentSize int `yaml:"indent_size,omitempty"`

	// TabSize is the column width of a tab.
	TabSize int `yaml:"tab_size,omitempty"`

	// UseTabs indents with tabs. Nil means not set.
	UseTabs *bool `yaml:"use_tabs,omitempty"`

	// NewLine is the terminator for inserted line breaks.
	NewLine NewLine `yaml:"newline,omitempty"`

	// Jobs is the number of files formatted in parallel; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs,omitempty"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Languages contains per-language settings keyed by language name.
	Languages map[string]LanguageConfig `yaml:"languages,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `yaml:"-"`

	// Check reports unformatted files without writing them.
	Check bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Language forces a language instead of detecting it.
	Language string `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	defaults := format.DefaultOptions()
	useTabs := defaults.UseTabs

	return &Config{
		IndentSize: defaults.IndentSize,
		TabSize:    defaults.TabSize,
		UseTabs:    &useTabs,
		NewLine:    NewLineAuto,
		Languages:  make(map[string]LanguageConfig),
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0,
	}
}

// FormatOptions returns the engine options for a file with the given content.
func (c *Config) FormatOptions(content []byte) format.Options {
	opts := format.DefaultOptions()
	if c.IndentSize > 0 {
		opts.IndentSize = c.IndentSize
	}
	if c.TabSize > 0 {
		opts.TabSize = c.TabSize
	}
	if c.UseTabs != nil {
		opts.UseTabs = *c.UseTabs
	}
	newLine := c.NewLine
	if newLine == "" {
		newLine = NewLineAuto
	}
	opts.NewLine = newLine.Resolve(content)
	return opts
}

// LanguageOptions returns a copy of the configured options for a language.
func (c *Config) LanguageOptions(name string) map[string]any {
	lc, ok := c.Languages[name]
	if !ok || lc.Options == nil {
		return nil
	}
	return cloneOptions(lc.Options)
}

// LanguageEnabled reports whether a language is enabled.
func (c *Config) LanguageEnabled(name string) bool {
	lc, ok := c.Languages[name]
	return !ok || lc.IsEnabled()
}

// Workers returns the effective number of parallel workers.
func (c *Config) Workers() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}
