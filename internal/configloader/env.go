package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/config"
)

// envVarPrefix is the prefix for all wsfmt environment variables.
const envVarPrefix = "WSFMT_"

// envSetter applies one raw environment value to a configuration.
type envSetter func(cfg *config.Config, value string) error

// envMapping ties an environment variable to a configuration field.
type envMapping struct {
	field       string
	description string
	set         envSetter
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"INDENT_SIZE": {"indent_size", "Columns per indentation level", intSetter(func(c *config.Config, v int) { c.IndentSize = v })},
	"TAB_SIZE":    {"tab_size", "Column width of a tab", intSetter(func(c *config.Config, v int) { c.TabSize = v })},
	"USE_TABS":    {"use_tabs", "Indent with tabs: true or false", boolSetter(func(c *config.Config, v bool) { c.UseTabs = &v })},
	"NEWLINE": {"newline", "Line terminator: auto, lf, crlf, or cr", func(c *config.Config, v string) error {
		c.NewLine = config.NewLine(strings.ToLower(v))
		return nil
	}},
	"JOBS": {"jobs", "Number of parallel workers (0 = auto)", intSetter(func(c *config.Config, v int) { c.Jobs = v })},
	"FORMAT": {"format", "Output format: text, json, diff, or summary", func(c *config.Config, v string) error {
		c.Format = config.OutputFormat(strings.ToLower(v))
		return nil
	}},
	"IGNORE": {"ignore", "Comma-separated list of ignore patterns", func(c *config.Config, v string) error {
		c.Ignore = splitList(v)
		return nil
	}},
	"DISABLE_LANGUAGES": {"languages.<name>.enabled", "Comma-separated languages to skip", func(c *config.Config, v string) error {
		for _, name := range splitList(v) {
			disableLanguage(c, strings.ToLower(name))
		}
		return nil
	}},
	"BACKUPS_ENABLED": {"backups.enabled", "Enable backups when writing: true or false", boolSetter(func(c *config.Config, v bool) { c.Backups.Enabled = v })},
	"BACKUPS_MODE": {"backups.mode", "Backup mode: sidecar or none", func(c *config.Config, v string) error {
		c.Backups.Mode = strings.ToLower(v)
		return nil
	}},
	"NO_BACKUPS": {"no_backups", "Disable backups: true or false", boolSetter(func(c *config.Config, v bool) { c.NoBackups = v })},
}

func intSetter(assign func(*config.Config, int)) envSetter {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		assign(cfg, n)
		return nil
	}
}

func boolSetter(assign func(*config.Config, bool)) envSetter {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		assign(cfg, b)
		return nil
	}
}

func disableLanguage(cfg *config.Config, name string) {
	if cfg.Languages == nil {
		cfg.Languages = make(map[string]config.LanguageConfig)
	}
	disabled := false
	langCfg := cfg.Languages[name]
	langCfg.Enabled = &disabled
	cfg.Languages[name] = langCfg
}

// LoadFromEnv applies WSFMT_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		name := envVarPrefix + suffix
		value := getenv(name)
		if value == "" {
			continue
		}
		if err := mapping.set(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank entries.
func splitList(value string) []string {
	var result []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
