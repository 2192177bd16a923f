package configloader

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/fsutil"
	"github.com/yaklabco/wsfmt/pkg/lang"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	// FilePath is the config file the value came from, if known.
	FilePath string

	// Field is the dotted key of the offending value, such as
	// "languages.brace.options".
	Field string

	Value   any
	Message string
}

// Error formats the problem as "file: field: message", omitting unknown parts.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field, e.Message} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ": ")
}

// ValidationResult collects the findings of Validate.
type ValidationResult struct {
	// Errors prevent the configuration from being used.
	Errors []ValidationError

	// Warnings are reported but do not stop loading.
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a configuration. Zero values mean "not set" and pass.
// Language checks need a registry and are skipped without one.
func Validate(cfg *config.Config, registry *lang.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.IndentSize < 0 {
		result.fail("indent_size", cfg.IndentSize, "indent_size must be positive, got %d", cfg.IndentSize)
	}
	if cfg.TabSize < 0 {
		result.fail("tab_size", cfg.TabSize, "tab_size must be positive, got %d", cfg.TabSize)
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means one per CPU)")
	}
	if cfg.NewLine != "" && !cfg.NewLine.IsValid() {
		result.fail("newline", cfg.NewLine, "invalid newline %q; must be one of: auto, lf, crlf, cr", cfg.NewLine)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: text, json, diff, summary", cfg.Format)
	}

	switch fsutil.BackupMode(cfg.Backups.Mode) {
	case "", fsutil.BackupModeSidecar, fsutil.BackupModeNone:
	default:
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be sidecar or none", cfg.Backups.Mode)
	}

	for i, pattern := range cfg.Ignore {
		// Match only fails on malformed patterns.
		if _, err := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), ""); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	if registry != nil {
		validateLanguages(cfg, registry, result)
	}
	return result
}

func validateLanguages(cfg *config.Config, registry *lang.Registry, result *ValidationResult) {
	if cfg.Language != "" {
		if _, ok := registry.Get(cfg.Language); !ok {
			result.fail("language", cfg.Language, "unknown language %q", cfg.Language)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.Languages)) {
		langCfg := cfg.Languages[name]
		field := "languages." + name

		profile, ok := registry.Get(name)
		if !ok {
			result.warn(field, name, "unknown language %q; it will be ignored", name)
			continue
		}

		for i, ext := range langCfg.Extensions {
			if len(ext) < 2 || ext[0] != '.' {
				result.fail(fmt.Sprintf("%s.extensions[%d]", field, i), ext, "invalid extension %q; must start with a dot", ext)
			}
		}

		if langCfg.Options == nil {
			continue
		}
		if _, err := profile.Rules(langCfg.Options); err != nil {
			result.fail(field+".options", langCfg.Options, "%v", err)
		}
	}
}

// ValidateWithFile validates a configuration read from filePath and
// attributes every finding to that file.
func ValidateWithFile(cfg *config.Config, filePath string, registry *lang.Registry) *ValidationResult {
	result := Validate(cfg, registry)
	for _, findings := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	return result
}
